// Package assets uploads resume files to the third-party asset host. The
// upload happens first; the resulting URL is then registered with the
// backend by the api package.
package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

type Uploader struct {
	uploadURL  string
	preset     string
	httpClient *http.Client
}

// NewUploader targets an unsigned-upload endpoint. preset is the host's
// unsigned upload preset name.
func NewUploader(uploadURL, preset string) *Uploader {
	return &Uploader{
		uploadURL:  uploadURL,
		preset:     preset,
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Upload pushes the file and returns the hosted URL.
func (u *Uploader) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("upload_preset", u.preset); err != nil {
		return "", fmt.Errorf("failed to write form field: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to copy file: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("asset host returned status %d: %s", resp.StatusCode, string(data))
	}

	var parsed uploadResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("asset host error: %s", parsed.Error.Message)
	}
	if parsed.SecureURL != "" {
		return parsed.SecureURL, nil
	}
	if parsed.URL != "" {
		return parsed.URL, nil
	}
	return "", fmt.Errorf("asset host returned no file URL")
}
