package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"go-hireloop-client/internal/api"
	"go-hireloop-client/internal/appsync"
	"go-hireloop-client/internal/config"
	"go-hireloop-client/internal/models"
	"go-hireloop-client/internal/session"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	loginEmail := flag.String("login", "", "log in with this email before running")
	password := flag.String("password", "", "password for -login (or HIRELOOP_PASSWORD)")
	jobs := flag.Bool("jobs", false, "list the company's job postings")
	applicants := flag.Bool("applicants", false, "list applicants across the company's jobs")
	dashboard := flag.Bool("dashboard", false, "print the hiring dashboard")
	review := flag.String("review", "", "open the review chat for this application id")
	shortlist := flag.String("shortlist", "", "shortlist this application id")
	status := flag.String("status", "", "application id for -to")
	to := flag.String("to", "", "target status for -status (reviewing/shortlisted/rejected/hired)")
	setActive := flag.String("set-active", "", "job id for -active")
	active := flag.Bool("active", true, "value for -set-active")
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

	if err := login(ctx, store, *loginEmail, *password); err != nil {
		logger.Fatal("authentication failed", zap.Error(err))
	}
	user := store.User()
	if user.Role != models.RoleCompany {
		logger.Fatal("account is not a company account", zap.String("role", string(user.Role)))
	}

	switch {
	case *jobs:
		err = listJobs(ctx, client)
	case *applicants:
		err = listApplicants(ctx, client)
	case *dashboard:
		err = printDashboard(ctx, client, user.ID, logger)
	case *review != "":
		err = runReview(ctx, client, cfg, *review, logger)
	case *shortlist != "":
		err = runShortlist(ctx, client, *shortlist)
	case *status != "":
		err = setStatus(ctx, client, cfg, *status, *to, logger)
	case *setActive != "":
		err = toggleJob(ctx, client, *setActive, *active)
	default:
		flag.Usage()
		return
	}
	if err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}

func login(ctx context.Context, store *session.Store, email, password string) error {
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
	if err := store.Bootstrap(ctx); err != nil {
		return fmt.Errorf("no valid session, log in with -login <email>: %w", err)
	}
	return nil
}

func listJobs(ctx context.Context, client *api.Client) error {
	jobs, err := client.CompanyJobs(ctx)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("No job postings yet.")
		return nil
	}
	for i := range jobs {
		j := &jobs[i]
		state := "active"
		if !j.IsActive {
			state = "closed"
		}
		fmt.Printf("%-24s %-8s shortlisted %-3d %s\n", j.ID, state, j.ShortlistCount, j.Title)
	}
	return nil
}

func listApplicants(ctx context.Context, client *api.Client) error {
	apps, err := client.ListApplications(ctx)
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		fmt.Println("No applicants yet.")
		return nil
	}
	for i := range apps {
		a := &apps[i]
		name, title := "?", "?"
		if a.Candidate != nil {
			name = a.Candidate.Name
		}
		if a.Job != nil {
			title = a.Job.Title
		}
		fmt.Printf("%-24s %-12s score %-3d %-20s %s\n", a.ID, a.Status, a.MatchScore, name, title)
	}
	return nil
}

func runShortlist(ctx context.Context, client *api.Client, appID string) error {
	app, err := client.Shortlist(ctx, appID)
	if err != nil {
		return err
	}
	fmt.Printf("Shortlisted %s (status %s)\n", app.ID, app.Status)
	return nil
}

func setStatus(ctx context.Context, client *api.Client, cfg *config.Config, appID, target string, logger *zap.Logger) error {
	target = strings.ToLower(strings.TrimSpace(target))
	next := models.ApplicationStatus(target)
	switch next {
	case models.StatusReviewing, models.StatusShortlisted, models.StatusRejected, models.StatusHired:
	default:
		return fmt.Errorf("unknown status %q", target)
	}

	app, err := client.GetApplication(ctx, appID)
	if err != nil {
		return err
	}
	thread := appsync.NewThread(client, logger, app, models.SenderCompany)
	defer thread.Close()
	if err := thread.ChangeStatus(ctx, next); err != nil {
		return err
	}
	recordStatus(ctx, cfg, appID, next, logger)
	fmt.Printf("Application %s is now %s\n", appID, thread.Status())
	return nil
}

func toggleJob(ctx context.Context, client *api.Client, jobID string, active bool) error {
	job, err := client.SetJobActive(ctx, jobID, active)
	if err != nil {
		return err
	}
	state := "closed"
	if job.IsActive {
		state = "active"
	}
	fmt.Printf("Job %q is now %s\n", job.Title, state)
	return nil
}
