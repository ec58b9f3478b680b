// Package posting drives the job-posting conversation: opportunistic field
// extraction, review and confirmation, and submission to the jobs API.
package posting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/hirehub/voice-agents/internal/models"
)

// SubmitResult reports the outcome of a submission attempt. Failures are
// values, never panics or propagated errors: the session continues and the
// draft is preserved so the user may retry.
type SubmitResult struct {
	Success bool            `json:"success"`
	Job     json.RawMessage `json:"job,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Client posts finished drafts to the external jobs API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
}

// Submit POSTs the draft to {base}/jobs. Each failure mode maps to its own
// user-facing message: timeout, connection refused, non-201 status, and
// anything unexpected.
func (c *Client) Submit(ctx context.Context, draft models.JobPostingDraft) SubmitResult {
	body, err := json.Marshal(draft)
	if err != nil {
		return SubmitResult{Success: false, Error: fmt.Sprintf("Unexpected error: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/jobs", bytes.NewReader(body))
	if err != nil {
		return SubmitResult{Success: false, Error: fmt.Sprintf("Unexpected error: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return SubmitResult{Success: false, Error: submitErrorMessage(err)}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return SubmitResult{Success: false, Error: fmt.Sprintf("API error %d: %s", resp.StatusCode, string(respBody))}
	}
	return SubmitResult{Success: true, Job: respBody}
}

func submitErrorMessage(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return "Request timed out. Please try again."
	case errors.Is(err, syscall.ECONNREFUSED):
		return "Could not connect to the job posting service. Please ensure the web app is running."
	default:
		return fmt.Sprintf("Unexpected error: %v", err)
	}
}
