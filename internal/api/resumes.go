package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"go-hireloop-client/internal/models"
)

func (c *Client) ListResumes(ctx context.Context) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := c.do(ctx, http.MethodGet, "/resumes", nil, &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

// DefaultResume returns the candidate's default resume, used when applying
// without an explicit pick.
func (c *Client) DefaultResume(ctx context.Context) (*models.Resume, error) {
	var resume models.Resume
	if err := c.do(ctx, http.MethodGet, "/resumes/default", nil, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// RegisterResume records an uploaded resume with the backend. The file has
// already been pushed to the asset host; the backend receives the resulting
// URL alongside the file itself (multipart, matching the upload contract).
func (c *Client) RegisterResume(ctx context.Context, name, assetURL, filename string, file io.Reader) (*models.Resume, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("name", name); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := w.WriteField("fileUrl", assetURL); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy resume file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	var resume models.Resume
	if err := c.doRaw(ctx, http.MethodPost, "/resumes", buf.Bytes(), w.FormDataContentType(), &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}
