package api

import (
	"context"
	"net/http"

	"go-hireloop-client/internal/models"
)

type ApplyRequest struct {
	JobID              string                     `json:"jobId"`
	ResumeID           string                     `json:"resumeId"`
	CoverLetter        string                     `json:"coverLetter,omitempty"`
	ScreeningResponses []models.ScreeningResponse `json:"screeningResponses,omitempty"`
}

// Apply creates an application. The backend answers with the full record,
// status "pending".
func (c *Client) Apply(ctx context.Context, req ApplyRequest) (*models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodPost, "/applications", req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// ListApplications returns the caller's applications: the candidate's own,
// or all applicants across the company's jobs depending on role.
func (c *Client) ListApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application
	if err := c.do(ctx, http.MethodGet, "/applications", nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *Client) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodGet, "/applications/"+id, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// StatusUpdate is the response to a status change. The backend appends a
// system notice to the thread in the same transaction, so both fields arrive
// together and must be adopted together.
type StatusUpdate struct {
	Status   models.ApplicationStatus `json:"status"`
	Messages []models.Message         `json:"messages"`
}

func (c *Client) UpdateApplicationStatus(ctx context.Context, id string, status models.ApplicationStatus) (*StatusUpdate, error) {
	body := map[string]models.ApplicationStatus{"status": status}
	var update StatusUpdate
	if err := c.do(ctx, http.MethodPut, "/applications/"+id+"/status", body, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

// Shortlist adds the application to the job's shortlist. The backend
// enforces the shortlistCount cap; a full shortlist comes back as a
// validation error rather than being pre-checked here.
func (c *Client) Shortlist(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := c.do(ctx, http.MethodPost, "/applications/"+id+"/shortlist", nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// EvaluateScreening asks the AI backend to evaluate the screening responses
// and open the interview thread. Fired automatically by the sync layer on
// the first candidate message of a pending application.
func (c *Client) EvaluateScreening(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/applications/"+id+"/evaluate-screening", nil, nil)
}
