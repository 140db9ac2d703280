package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"go-hireloop-client/internal/api"
	"go-hireloop-client/internal/appsync"
	"go-hireloop-client/internal/config"
	"go-hireloop-client/internal/models"
	"go-hireloop-client/internal/poll"
	"go-hireloop-client/internal/store"
)

// runReview opens one application for review: candidate summary, screening
// answers, then a live chat with /shortlist and /status commands.
func runReview(ctx context.Context, client *api.Client, cfg *config.Config, appID string, logger *zap.Logger) error {
	app, err := client.GetApplication(ctx, appID)
	if err != nil {
		return fmt.Errorf("failed to load application %s: %w", appID, err)
	}
	printSummary(app)

	thread := appsync.NewThread(client, logger, app, models.SenderCompany)
	defer thread.Close()

	var mu sync.Mutex
	rendered := 0
	render := func() {
		mu.Lock()
		defer mu.Unlock()
		rendered = printNew(thread.Messages(), rendered, func(m models.Message) {
			fmt.Printf("[%s] %s\n", m.Sender, m.Content)
		})
	}
	render()

	poller := poll.New("review", cfg.MessagePollInterval.Std(), func(ctx context.Context) error {
		if err := thread.Poll(ctx); err != nil {
			return err
		}
		render()
		return nil
	}, logger)
	poller.Start(ctx)
	defer poller.Stop()

	fmt.Println("Type a message, /shortlist, /status <next>, or /quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return nil
		case line == "/shortlist":
			updated, err := client.Shortlist(ctx, appID)
			if err != nil {
				fmt.Printf("! %v\n", err)
				continue
			}
			fmt.Printf("Shortlisted (status %s)\n", updated.Status)
		case strings.HasPrefix(line, "/status "):
			next := models.ApplicationStatus(strings.TrimSpace(strings.TrimPrefix(line, "/status ")))
			if err := thread.ChangeStatus(ctx, next); err != nil {
				fmt.Printf("! %v\n", err)
				continue
			}
			recordStatus(ctx, cfg, appID, next, logger)
			fmt.Printf("Status: %s\n", thread.Status())
			render()
		default:
			thread.SetDraft(line)
			if err := thread.Send(ctx); err != nil {
				fmt.Printf("! send failed, draft kept: %v\n", err)
				continue
			}
			render()
		}
	}
	return scanner.Err()
}

// printNew prints entries past the cursor and returns the new cursor. The
// cursor rewinds when the thread shrank (a reverted optimistic send), so
// entries appearing at the same positions later are not skipped.
func printNew(msgs []models.Message, cursor int, print func(models.Message)) int {
	if cursor > len(msgs) {
		cursor = len(msgs)
	}
	for ; cursor < len(msgs); cursor++ {
		print(msgs[cursor])
	}
	return cursor
}

func printSummary(app *models.Application) {
	name := "?"
	if app.Candidate != nil {
		name = fmt.Sprintf("%s <%s>", app.Candidate.Name, app.Candidate.Email)
	}
	title := "?"
	if app.Job != nil {
		title = app.Job.Title
	}
	fmt.Printf("Application %s\n", app.ID)
	fmt.Printf("Candidate: %s\n", name)
	fmt.Printf("Job:       %s\n", title)
	fmt.Printf("Status:    %s   match score %d\n", app.Status, app.MatchScore)
	if app.Resume != nil {
		fmt.Printf("Resume:    %s (%s)\n", app.Resume.Name, app.Resume.FileURL)
	}
	if app.CoverLetter != "" {
		fmt.Printf("Cover letter:\n%s\n", app.CoverLetter)
	}
	if len(app.ScreeningResponses) > 0 {
		fmt.Println("Screening answers:")
		for _, r := range app.ScreeningResponses {
			fmt.Printf("  Q: %s\n  A: %s\n", r.Question, r.Response)
			if r.LLMEvaluation != "" {
				fmt.Printf("  Eval: %s\n", r.LLMEvaluation)
			}
		}
	}
}

// recordStatus appends the transition to the local tracking store when one is
// configured. Best effort, review flow continues regardless.
func recordStatus(ctx context.Context, cfg *config.Config, appID string, status models.ApplicationStatus, logger *zap.Logger) {
	if cfg.DatabaseURL == "" {
		return
	}
	db, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Warn("tracking store unavailable", zap.Error(err))
		return
	}
	defer db.Close()
	if err := db.Migrate(ctx); err != nil {
		logger.Warn("tracking store migration failed", zap.Error(err))
		return
	}
	if err := db.RecordStatus(ctx, appID, status); err != nil {
		logger.Warn("failed to record status", zap.String("app", appID), zap.Error(err))
	}
}
