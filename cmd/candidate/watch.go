package main

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"go-hireloop-client/internal/api"
	"go-hireloop-client/internal/appsync"
	"go-hireloop-client/internal/config"
	"go-hireloop-client/internal/discovery"
	"go-hireloop-client/internal/match"
	"go-hireloop-client/internal/models"
	"go-hireloop-client/internal/notify"
	"go-hireloop-client/internal/poll"
	"go-hireloop-client/internal/seen"
	"go-hireloop-client/internal/session"
	"go-hireloop-client/internal/store"
)

// watcher bundles the long-running candidate loop: cron-scheduled job
// discovery plus pollers for application status, conversations and
// notifications.
type watcher struct {
	client   *api.Client
	session  *session.Store
	cfg      *config.Config
	log      *zap.Logger
	notifier *notify.Telegram
	cache    *seen.Cache
	db       *store.Store
}

// runWatch runs until the context is cancelled.
func runWatch(ctx context.Context, client *api.Client, sess *session.Store, cfg *config.Config, logger *zap.Logger) error {
	w := &watcher{
		client:  client,
		session: sess,
		cfg:     cfg,
		log:     logger,
		cache:   seen.NewCache(cfg.CachePath, logger),
	}

	if cfg.TelegramToken != "" {
		notifier, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return fmt.Errorf("failed to init telegram: %w", err)
		}
		w.notifier = notifier
	}

	if cfg.DatabaseURL != "" {
		db, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect tracking store: %w", err)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate tracking store: %w", err)
		}
		w.db = db
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.DiscoverySpec, func() {
		if err := w.discover(ctx); err != nil {
			logger.Error("discovery cycle failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("bad discovery_spec %q: %w", cfg.DiscoverySpec, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	appPoller := poll.New("applications", cfg.ApplicationsInterval.Std(), w.checkApplications, logger, poll.WithImmediate())
	appPoller.Start(ctx)
	defer appPoller.Stop()

	convPoller := poll.New("conversations", cfg.MessagePollInterval.Std(), w.checkConversations, logger)
	convPoller.Start(ctx)
	defer convPoller.Stop()

	notifyPoller := poll.New("notifications", cfg.NotifyPollInterval.Std(), w.checkNotifications, logger, poll.WithImmediate())
	notifyPoller.Start(ctx)
	defer notifyPoller.Stop()

	// Run discovery once up front instead of waiting on the first cron fire.
	if err := w.discover(ctx); err != nil {
		logger.Error("initial discovery failed", zap.Error(err))
	}

	logger.Info("watching", zap.String("discovery", cfg.DiscoverySpec))
	<-ctx.Done()
	return nil
}

// discover pulls the current job list, runs it through the filter pipeline
// and alerts on matching jobs not seen before.
func (w *watcher) discover(ctx context.Context) error {
	var jobs []models.JobPosting
	var err error
	if w.cfg.Search.AIMatching {
		jobs, err = w.client.MatchingJobs(ctx)
	} else {
		jobs, err = w.client.ListJobs(ctx, api.JobQuery{Search: w.cfg.Search.Query})
	}
	if err != nil {
		return err
	}

	apps, err := w.client.ListApplications(ctx)
	if err != nil {
		return err
	}
	applied := appsync.BuildAppliedIndex(apps)

	filters := discovery.Filters{
		Location:        w.cfg.Search.Location,
		Industry:        w.cfg.Search.Industry,
		WorkType:        w.cfg.Search.WorkType,
		Skills:          w.cfg.Search.Skills,
		JobType:         w.cfg.Search.JobType,
		ExperienceLevel: w.cfg.Search.ExperienceLevel,
		SalaryMin:       w.cfg.Search.SalaryMin,
		SalaryMax:       w.cfg.Search.SalaryMax,
	}
	result := discovery.Run(jobs, w.cfg.Search.Query, filters, w.cfg.ProfileSkills, w.cfg.Search.AIMatching)

	scoreCtx := match.Context{
		Skills:          w.cfg.ProfileSkills,
		Location:        w.cfg.Search.Location,
		Industry:        w.cfg.Search.Industry,
		WorkType:        w.cfg.Search.WorkType,
		ExperienceLevel: w.cfg.Search.ExperienceLevel,
		SalaryMin:       w.cfg.Search.SalaryMin,
		SalaryMax:       w.cfg.Search.SalaryMax,
	}

	fresh := 0
	for i := range result.Matching {
		job := &result.Matching[i]
		key := "job:" + job.ID
		if w.cache.Contains(key) || applied.Applied(job.ID) {
			continue
		}
		score := match.Effective(job, scoreCtx, w.cfg.Search.AIMatching)
		if w.db != nil {
			if err := w.db.RecordJob(ctx, job, score); err != nil {
				w.log.Warn("failed to record job", zap.String("job", job.ID), zap.Error(err))
			}
		}
		if err := w.notifier.SendJob(*job, score); err != nil {
			w.log.Warn("failed to notify job", zap.String("job", job.ID), zap.Error(err))
		}
		w.cache.Add(key)
		fresh++
	}

	w.log.Info("discovery cycle done",
		zap.Int("fetched", len(jobs)),
		zap.Int("matching", len(result.Matching)),
		zap.Int("new", fresh))
	return nil
}

// checkApplications alerts on status transitions and unread interview
// messages across the candidate's applications.
func (w *watcher) checkApplications(ctx context.Context) error {
	apps, err := w.client.ListApplications(ctx)
	if err != nil {
		return err
	}

	for i := range apps {
		app := &apps[i]
		title := ""
		if app.Job != nil {
			title = app.Job.Title
		}

		statusKey := fmt.Sprintf("status:%s:%s", app.ID, app.Status)
		if !w.cache.Contains(statusKey) {
			w.cache.Add(statusKey)
			if app.Status != models.StatusPending {
				if w.db != nil {
					if err := w.db.RecordStatus(ctx, app.ID, app.Status); err != nil {
						w.log.Warn("failed to record status", zap.String("app", app.ID), zap.Error(err))
					}
				}
				if err := w.notifier.SendStatusChange(title, app.Status); err != nil {
					w.log.Warn("failed to notify status", zap.String("app", app.ID), zap.Error(err))
				}
			}
		}

		for j := range app.Messages {
			m := &app.Messages[j]
			if m.Sender == models.SenderCandidate || m.ID == "" {
				continue
			}
			msgKey := "msg:" + app.ID + ":" + m.ID
			if w.cache.Contains(msgKey) {
				continue
			}
			w.cache.Add(msgKey)
			if err := w.notifier.SendMessageAlert(title, *m); err != nil {
				w.log.Warn("failed to notify message", zap.String("app", app.ID), zap.Error(err))
			}
		}
	}
	return nil
}

// checkConversations alerts on direct conversations with unread messages.
func (w *watcher) checkConversations(ctx context.Context) error {
	convs, err := w.client.ListConversations(ctx)
	if err != nil {
		return err
	}
	userID := ""
	if u := w.session.User(); u != nil {
		userID = u.ID
	}
	for i := range convs {
		conv := &convs[i]
		if conv.UnreadCount[userID] == 0 || conv.LastMessage == nil {
			continue
		}
		key := "conv:" + conv.ID + ":" + conv.LastMessage.ID
		if w.cache.Contains(key) {
			continue
		}
		w.cache.Add(key)
		if err := w.notifier.SendMessageAlert("Direct message", *conv.LastMessage); err != nil {
			w.log.Warn("failed to notify conversation", zap.String("id", conv.ID), zap.Error(err))
		}
		if err := w.client.MarkConversationRead(ctx, conv.ID); err != nil {
			w.log.Warn("failed to mark conversation read", zap.String("id", conv.ID), zap.Error(err))
		}
	}
	return nil
}

// checkNotifications mirrors the in-app notification feed to telegram and
// marks what it forwards as read.
func (w *watcher) checkNotifications(ctx context.Context) error {
	items, err := w.client.ListNotifications(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		n := &items[i]
		if n.Read {
			continue
		}
		key := "notif:" + n.ID
		if w.cache.Contains(key) {
			continue
		}
		w.cache.Add(key)
		if err := w.notifier.SendStatus(n.Title + ": " + n.Body); err != nil {
			w.log.Warn("failed to forward notification", zap.String("id", n.ID), zap.Error(err))
		}
		if err := w.client.MarkNotificationRead(ctx, n.ID); err != nil {
			w.log.Warn("failed to mark notification read", zap.String("id", n.ID), zap.Error(err))
		}
	}
	return nil
}
