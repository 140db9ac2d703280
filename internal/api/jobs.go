package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"go-hireloop-client/internal/models"
)

// JobQuery is serialized into the /jobs query string. Zero values are omitted.
type JobQuery struct {
	Search   string
	Location string
	Type     string
	Page     int
	Limit    int
}

func (q JobQuery) encode() string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Location != "" {
		v.Set("location", q.Location)
	}
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.Page > 0 {
		v.Set("page", fmt.Sprint(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", fmt.Sprint(q.Limit))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (c *Client) ListJobs(ctx context.Context, q JobQuery) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	if err := c.do(ctx, http.MethodGet, "/jobs"+q.encode(), nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := c.do(ctx, http.MethodGet, "/jobs/"+id, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// MatchingJobs returns postings annotated with backend-computed AI scores.
func (c *Client) MatchingJobs(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	if err := c.do(ctx, http.MethodGet, "/jobs/matching", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// CompanyJobs lists the postings owned by the authenticated company.
func (c *Client) CompanyJobs(ctx context.Context) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	if err := c.do(ctx, http.MethodGet, "/jobs/company/me", nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) CreateJob(ctx context.Context, job models.JobPosting) (*models.JobPosting, error) {
	var created models.JobPosting
	if err := c.do(ctx, http.MethodPost, "/jobs", job, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateJob(ctx context.Context, job models.JobPosting) (*models.JobPosting, error) {
	var updated models.JobPosting
	if err := c.do(ctx, http.MethodPut, "/jobs/"+job.ID, job, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/jobs/"+id, nil, nil)
}

// SetJobActive toggles whether a posting accepts new applications.
func (c *Client) SetJobActive(ctx context.Context, id string, active bool) (*models.JobPosting, error) {
	body := map[string]bool{"isActive": active}
	var updated models.JobPosting
	if err := c.do(ctx, http.MethodPut, "/jobs/"+id, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
