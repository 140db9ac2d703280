// Package appsync keeps a local view of an application thread in step with
// the backend: optimistic sends with rollback, interval-poll reconciliation,
// and atomic adoption of status changes together with the system notice the
// backend appends to the thread.
package appsync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-hireloop-client/internal/api"
	"go-hireloop-client/internal/apierr"
	"go-hireloop-client/internal/models"
)

// ErrClosed is returned when an operation reaches a thread after Close.
var ErrClosed = errors.New("thread is closed")

type Thread struct {
	client *api.Client
	log    *zap.Logger
	appID  string
	sender models.Sender

	mu       sync.Mutex
	status   models.ApplicationStatus
	messages []models.Message
	draft    string
	closed   bool
}

// NewThread seeds a sync view from a fetched application. The sender is the
// role messages from this side are tagged with.
func NewThread(client *api.Client, log *zap.Logger, app *models.Application, sender models.Sender) *Thread {
	msgs := make([]models.Message, len(app.Messages))
	copy(msgs, app.Messages)
	return &Thread{
		client:   client,
		log:      log,
		appID:    app.ID,
		sender:   sender,
		status:   app.Status,
		messages: msgs,
	}
}

func (t *Thread) Status() models.ApplicationStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// Messages returns a snapshot copy of the thread.
func (t *Thread) Messages() []models.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Thread) Draft() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.draft
}

func (t *Thread) SetDraft(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.draft = text
}

// Close marks the thread unmounted. Poll results that resolve afterwards are
// discarded instead of mutating a dead view.
func (t *Thread) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
}

// Send posts the current draft. The message is appended locally and the
// draft cleared before the request goes out; on failure the append is
// reverted and the draft restored so nothing the user typed is lost.
func (t *Thread) Send(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ErrClosed
	}
	content := t.draft
	if content == "" {
		t.mu.Unlock()
		return nil
	}

	kickoff := t.sender == models.SenderCandidate &&
		t.status == models.StatusPending &&
		len(t.messages) == 0

	optimistic := models.Message{
		ID:        "local-" + uuid.NewString(),
		Sender:    t.sender,
		Content:   content,
		CreatedAt: time.Now(),
		Local:     true,
	}
	t.messages = append(t.messages, optimistic)
	t.draft = ""
	t.mu.Unlock()

	payload, err := t.client.SendMessage(ctx, t.appID, content)
	if err != nil {
		t.mu.Lock()
		t.dropLocal(optimistic.ID)
		t.draft = content
		t.mu.Unlock()
		return err
	}

	t.mu.Lock()
	if payload.Full {
		t.messages = payload.Messages
	} else {
		t.dropLocal(optimistic.ID)
		t.messages = append(t.messages, payload.Messages...)
	}
	t.mu.Unlock()

	if kickoff {
		// First candidate message on a pending application starts the AI
		// interview. Failure here is not a send failure: the message is
		// already on the server.
		if err := t.client.EvaluateScreening(ctx, t.appID); err != nil {
			t.log.Warn("interview kickoff request failed",
				zap.String("application", t.appID), zap.Error(err))
		}
	}
	return nil
}

// dropLocal removes the optimistic entry with the given id. Caller holds mu.
func (t *Thread) dropLocal(id string) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Local && t.messages[i].ID == id {
			t.messages = append(t.messages[:i], t.messages[i+1:]...)
			return
		}
	}
}

// Poll re-fetches the thread and reconciles. 401/403 are swallowed: they
// occur transiently while roles or permissions shift and the next tick
// usually succeeds. Other failures propagate so the poller logs them.
func (t *Thread) Poll(ctx context.Context) error {
	payload, err := t.client.GetMessages(ctx, t.appID)
	if err != nil {
		switch apierr.KindOf(err) {
		case apierr.KindUnauthorized, apierr.KindForbidden:
			return nil
		}
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		// Stale response after unmount.
		return nil
	}
	if changed(t.messages, payload.Messages) {
		t.messages = payload.Messages
	}
	return nil
}

// Refresh re-fetches the whole application and adopts status and messages
// together, the application-detail flavor of polling.
func (t *Thread) Refresh(ctx context.Context) error {
	app, err := t.client.GetApplication(ctx, t.appID)
	if err != nil {
		switch apierr.KindOf(err) {
		case apierr.KindUnauthorized, apierr.KindForbidden:
			return nil
		}
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.status = app.Status
	if changed(t.messages, app.Messages) {
		t.messages = app.Messages
	}
	return nil
}

// ChangeStatus performs a company-side transition. The response carries the
// new status and the thread including the appended system notice; both are
// adopted under one lock, never one without the other.
func (t *Thread) ChangeStatus(ctx context.Context, status models.ApplicationStatus) error {
	update, err := t.client.UpdateApplicationStatus(ctx, t.appID, status)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	t.status = update.Status
	t.messages = update.Messages
	return nil
}

// changed compares by length and trailing id so an unchanged thread does not
// churn the local slice on every tick. Appends and replacements both trip it.
func changed(local, remote []models.Message) bool {
	if len(local) != len(remote) {
		return true
	}
	if len(local) == 0 {
		return false
	}
	return local[len(local)-1].ID != remote[len(remote)-1].ID
}
