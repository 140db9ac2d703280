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
)

// runChat opens the screening interview for one application as a terminal
// REPL. A background poller picks up the interviewer's replies while the
// candidate types.
func runChat(ctx context.Context, client *api.Client, cfg *config.Config, appID string, logger *zap.Logger) error {
	app, err := client.GetApplication(ctx, appID)
	if err != nil {
		return fmt.Errorf("failed to load application %s: %w", appID, err)
	}

	title := "your application"
	if app.Job != nil {
		title = app.Job.Title
	}
	fmt.Printf("Chat for %s (status %s). Type a message, /status, or /quit.\n", title, app.Status)

	thread := appsync.NewThread(client, logger, app, models.SenderCandidate)
	defer thread.Close()

	var mu sync.Mutex
	rendered := 0
	render := func() {
		mu.Lock()
		defer mu.Unlock()
		rendered = printNew(thread.Messages(), rendered, printMessage)
	}
	render()

	poller := poll.New("chat", cfg.MessagePollInterval.Std(), func(ctx context.Context) error {
		if err := thread.Poll(ctx); err != nil {
			return err
		}
		render()
		return nil
	}, logger)
	poller.Start(ctx)
	defer poller.Stop()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit":
			return nil
		case line == "/status":
			if err := thread.Refresh(ctx); err != nil {
				fmt.Printf("! %v\n", err)
				continue
			}
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

func printMessage(m models.Message) {
	tag := string(m.Sender)
	if m.Local {
		tag += " (sending)"
	}
	fmt.Printf("[%s] %s\n", tag, m.Content)
}
