package api

import (
	"context"
	"net/http"

	"go-hireloop-client/internal/models"
)

// Analytics are precomputed server-side; the client only renders them.

func (c *Client) DashboardStats(ctx context.Context, companyID string) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/analytics/dashboard/"+companyID, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) HiringFunnel(ctx context.Context, companyID string) (*models.HiringFunnel, error) {
	var funnel models.HiringFunnel
	if err := c.do(ctx, http.MethodGet, "/analytics/hiring-funnel/"+companyID, nil, &funnel); err != nil {
		return nil, err
	}
	return &funnel, nil
}

func (c *Client) JobAnalytics(ctx context.Context, companyID string) ([]models.JobStats, error) {
	var stats []models.JobStats
	if err := c.do(ctx, http.MethodGet, "/analytics/jobs/"+companyID, nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
