// Package api is the HTTP client for the HireFlux REST API: job feed,
// applications, resumes and pipeline analytics.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hireflux/cli/internal/types"
)

const requestTimeout = 30 * time.Second

// Client talks to the HireFlux API. A zero token leaves requests
// unauthenticated; the API answers those with 401.
type Client struct {
	baseURL    string
	token      func() string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. token supplies the current access
// token per request so a refreshed session is picked up without rebuilding
// the client.
func NewClient(baseURL string, token func() string) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Error is a non-2xx API response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// do executes a request and decodes the JSON response into out (skipped when
// out is nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(respBody, &payload) == nil {
			if payload.Message != "" {
				apiErr.Message = payload.Message
			} else {
				apiErr.Message = payload.Error
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// JobQuery narrows the job feed.
type JobQuery struct {
	Search     string
	Location   string
	RemoteOnly bool
	Limit      int
}

// ListJobs fetches the job feed.
func (c *Client) ListJobs(ctx context.Context, q JobQuery) ([]types.Job, error) {
	query := url.Values{}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Location != "" {
		query.Set("location", q.Location)
	}
	if q.RemoteOnly {
		query.Set("remote", "true")
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	var jobs []types.Job
	if err := c.do(ctx, http.MethodGet, "/jobs", query, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetJob fetches one posting with its full description.
func (c *Client) GetJob(ctx context.Context, id string) (*types.Job, error) {
	var job types.Job
	if err := c.do(ctx, http.MethodGet, "/jobs/"+url.PathEscape(id), nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListApplications fetches the seeker's applications, optionally filtered by
// status.
func (c *Client) ListApplications(ctx context.Context, status string) ([]types.Application, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}

	var apps []types.Application
	if err := c.do(ctx, http.MethodGet, "/applications", query, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// SubmitApplication applies to a job with the given resume.
func (c *Client) SubmitApplication(ctx context.Context, jobID, resumeID, notes string) (*types.Application, error) {
	payload := map[string]string{
		"jobId":    jobID,
		"resumeId": resumeID,
		"notes":    notes,
	}

	var app types.Application
	if err := c.do(ctx, http.MethodPost, "/applications", nil, payload, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// WithdrawApplication withdraws a submitted application.
func (c *Client) WithdrawApplication(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/applications/"+url.PathEscape(id)+"/withdraw", nil, nil, nil)
}

// ListResumes fetches the seeker's stored resumes.
func (c *Client) ListResumes(ctx context.Context) ([]types.Resume, error) {
	var resumes []types.Resume
	if err := c.do(ctx, http.MethodGet, "/resumes", nil, nil, &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

// Analytics fetches the pipeline summary.
func (c *Client) Analytics(ctx context.Context) (*types.AnalyticsSummary, error) {
	var summary types.AnalyticsSummary
	if err := c.do(ctx, http.MethodGet, "/analytics/summary", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Me fetches the authenticated account identity.
func (c *Client) Me(ctx context.Context) (email, name string, err error) {
	var payload struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := c.do(ctx, http.MethodGet, "/me", nil, nil, &payload); err != nil {
		return "", "", err
	}
	return payload.Email, payload.Name, nil
}
