package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-hireloop-client/internal/api"
)

// printDashboard renders the three analytics sections. Each section degrades
// to an empty block on failure so one broken endpoint does not blank the
// whole dashboard.
func printDashboard(ctx context.Context, client *api.Client, companyID string, logger *zap.Logger) error {
	stats, err := client.DashboardStats(ctx, companyID)
	if err != nil {
		logger.Warn("dashboard stats unavailable", zap.Error(err))
	}
	fmt.Println("== Overview ==")
	if stats != nil {
		fmt.Printf("Active jobs:       %d\n", stats.ActiveJobs)
		fmt.Printf("Applications:      %d\n", stats.TotalApplications)
		fmt.Printf("Shortlisted:       %d\n", stats.ShortlistedCount)
		fmt.Printf("Hired:             %d\n", stats.HiredCount)
		fmt.Printf("Avg match score:   %.1f\n", stats.AvgMatchScore)
	} else {
		fmt.Println("(no data)")
	}

	funnel, err := client.HiringFunnel(ctx, companyID)
	if err != nil {
		logger.Warn("hiring funnel unavailable", zap.Error(err))
	}
	fmt.Println("\n== Hiring funnel ==")
	if funnel != nil && len(funnel.Stages) > 0 {
		for _, stage := range funnel.Stages {
			fmt.Printf("%-14s %d\n", stage.Stage, stage.Count)
		}
	} else {
		fmt.Println("(no data)")
	}

	perJob, err := client.JobAnalytics(ctx, companyID)
	if err != nil {
		logger.Warn("job analytics unavailable", zap.Error(err))
	}
	fmt.Println("\n== Per-job ==")
	if len(perJob) > 0 {
		for _, j := range perJob {
			fmt.Printf("%-28s apps %-4d shortlisted %-4d avg %.1f views %-5d conv %.1f%%\n",
				j.Title, j.Applications, j.Shortlisted, j.AvgMatchScore, j.ViewsLast30Days, j.ConversionRate*100)
		}
	} else {
		fmt.Println("(no data)")
	}
	return nil
}
