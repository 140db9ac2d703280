package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"go-hireloop-client/internal/api"
	"go-hireloop-client/internal/assets"
	"go-hireloop-client/internal/config"
	"go-hireloop-client/internal/session"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	loginEmail := flag.String("login", "", "log in with this email before running")
	password := flag.String("password", "", "password for -login (or HIRELOOP_PASSWORD)")
	applyJob := flag.String("apply", "", "apply to this job id, then exit")
	chatApp := flag.String("chat", "", "open the interview chat for this application id")
	uploadPath := flag.String("upload-resume", "", "upload and register this resume file, then exit")
	logout := flag.Bool("logout", false, "clear the stored session, then exit")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("config error", zap.Error(err))
	}

	// The client reads the token and the 401 handler from the store through
	// late-bound closures; a 401 anywhere logs the session out.
	var store *session.Store
	client := api.New(cfg.APIBaseURL,
		api.WithLogger(logger),
		api.WithTokenSource(api.TokenSourceFunc(func() string { return store.Token() })),
		api.WithUnauthorizedHandler(func() { store.Expire() }))
	store = session.New(client, cfg.CredentialsPath, logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *logout {
		store.Logout()
		fmt.Println("Logged out.")
		return
	}

	if err := authenticate(ctx, store, *loginEmail, *password); err != nil {
		logger.Fatal("authentication failed", zap.Error(err))
	}
	user := store.User()
	logger.Info("signed in", zap.String("user", user.Email), zap.String("role", string(user.Role)))

	switch {
	case *uploadPath != "":
		uploader := assets.NewUploader(cfg.AssetUploadURL, cfg.AssetUploadPreset)
		if err := runUploadResume(ctx, client, uploader, *uploadPath); err != nil {
			logger.Fatal("resume upload failed", zap.Error(err))
		}
	case *applyJob != "":
		if err := runApply(ctx, client, *applyJob); err != nil {
			logger.Fatal("apply failed", zap.Error(err))
		}
	case *chatApp != "":
		if err := runChat(ctx, client, cfg, *chatApp, logger); err != nil {
			logger.Fatal("chat failed", zap.Error(err))
		}
	default:
		if err := runWatch(ctx, client, store, cfg, logger); err != nil {
			logger.Fatal("watch failed", zap.Error(err))
		}
	}
}

// authenticate logs in with explicit credentials or restores the persisted
// session, with differentiated messaging for the failure modes.
func authenticate(ctx context.Context, store *session.Store, email, password string) error {
	if email != "" {
		if password == "" {
			password = os.Getenv("HIRELOOP_PASSWORD")
		}
		if password == "" {
			return fmt.Errorf("no password: pass -password or set HIRELOOP_PASSWORD")
		}
		_, err := store.Login(ctx, email, password)
		return err
	}

	switch err := store.Bootstrap(ctx); err {
	case nil:
		return nil
	case session.ErrNoSession:
		return fmt.Errorf("not logged in: run with -login <email>")
	case session.ErrTokenInvalid:
		return fmt.Errorf("stored session expired, log in again with -login <email>")
	case session.ErrBackendOffline:
		return fmt.Errorf("backend unreachable, log in again with -login <email> once it is back")
	default:
		return err
	}
}

func runUploadResume(ctx context.Context, client *api.Client, uploader *assets.Uploader, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open resume: %w", err)
	}
	defer file.Close()

	filename := filepath.Base(path)
	assetURL, err := uploader.Upload(ctx, filename, file)
	if err != nil {
		return err
	}

	// The backend wants the hosted URL alongside the file itself, so rewind
	// and send it again.
	if _, err := file.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind resume file: %w", err)
	}
	resume, err := client.RegisterResume(ctx, filename, assetURL, filename, file)
	if err != nil {
		return err
	}
	fmt.Printf("Resume registered: %s (%s)\n", resume.Name, resume.ID)
	return nil
}
