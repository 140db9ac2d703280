// Package session owns the client's identity: bootstrap from a persisted
// token, login/register/logout, and the invariant that the persisted token
// and the in-memory user are only ever updated together.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"go-hireloop-client/internal/api"
	"go-hireloop-client/internal/apierr"
	"go-hireloop-client/internal/models"
)

type State string

const (
	StateBootstrapping State = "bootstrapping"
	StateAuthenticated State = "authenticated"
	StateAnonymous     State = "anonymous"
)

// Bootstrap outcome errors. ErrNoSession is the quiet "not logged in" case;
// the other two carry differentiated messaging for the caller.
var (
	ErrNoSession      = errors.New("no persisted session")
	ErrTokenInvalid   = errors.New("persisted token is expired or invalid")
	ErrBackendOffline = errors.New("backend unreachable, try again later")
)

type Store struct {
	client    *api.Client
	credsPath string
	log       *zap.Logger

	mu    sync.RWMutex
	state State
	token string
	user  *models.User
}

// New builds a Store and wires it into the api client: the client reads the
// token from the store at dispatch time, and any 401 anywhere expires the
// session. The returned store starts in the bootstrapping state.
func New(client *api.Client, credsPath string, log *zap.Logger) *Store {
	s := &Store{
		client:    client,
		credsPath: credsPath,
		log:       log,
		state:     StateBootstrapping,
	}
	return s
}

// TokenSource exposes the current token for the api client.
func (s *Store) TokenSource() api.TokenSource {
	return api.TokenSourceFunc(func() string {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.token
	})
}

// Bootstrap restores a persisted session. On success the store is
// authenticated; on any failure it falls back to anonymous and clears the
// persisted token, so a token exists on disk iff the session is active. The
// returned error still distinguishes an unreachable backend from a rejected
// token.
func (s *Store) Bootstrap(ctx context.Context) error {
	creds, err := loadCredentials(s.credsPath)
	if err != nil {
		s.setSession("", nil)
		return ErrNoSession
	}
	if creds.Token == "" {
		s.setSession("", nil)
		return ErrNoSession
	}

	if tokenExpired(creds.Token, time.Now()) {
		s.log.Info("persisted token already expired, skipping bootstrap request",
			zap.String("subject", tokenSubject(creds.Token)))
		s.clearSession()
		return ErrTokenInvalid
	}

	// Attach the token before the /users/me round-trip so the request
	// carries it; the user half of the session follows on success.
	s.setSession(creds.Token, nil)

	user, err := s.client.Me(ctx)
	if err != nil {
		s.clearSession()
		if apierr.KindOf(err) == apierr.KindNetwork {
			return ErrBackendOffline
		}
		return ErrTokenInvalid
	}

	s.setSession(creds.Token, user)
	s.log.Info("session restored", zap.String("user", user.Email), zap.String("role", string(user.Role)))
	return nil
}

func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	resp, err := s.client.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := s.persist(resp.Token, email); err != nil {
		return nil, err
	}
	s.setSession(resp.Token, &resp.User)
	return &resp.User, nil
}

func (s *Store) Register(ctx context.Context, req api.RegisterRequest) (*models.User, error) {
	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.persist(resp.Token, req.Email); err != nil {
		return nil, err
	}
	s.setSession(resp.Token, &resp.User)
	return &resp.User, nil
}

// Logout clears the persisted token and the in-memory user together.
func (s *Store) Logout() {
	s.clearSession()
}

// Expire is the 401 handler: identical to logout, minus any server call.
func (s *Store) Expire() {
	s.mu.RLock()
	wasAuthenticated := s.user != nil
	s.mu.RUnlock()
	if wasAuthenticated {
		s.log.Warn("session expired by server, logging out")
	}
	s.clearSession()
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Authenticated is true iff a non-nil user is held.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) persist(token, email string) error {
	return saveCredentials(s.credsPath, credentials{
		Token:   token,
		Email:   email,
		SavedAt: time.Now(),
	})
}

// setSession is the single write path for the token/user pair.
func (s *Store) setSession(token string, user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
	if user != nil {
		s.state = StateAuthenticated
	} else {
		s.state = StateAnonymous
	}
}

// clearSession wipes disk and memory under one lock so no reader can observe
// a token without its user or vice versa.
func (s *Store) clearSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := clearCredentials(s.credsPath); err != nil {
		s.log.Warn("failed to clear credentials file", zap.Error(err))
	}
	s.token = ""
	s.user = nil
	s.state = StateAnonymous
}
