// Package client provides a typed HTTP client for the publish API, used by
// tools and services that submit postings from outside the server process.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jcabanilla/internhub/internal/form"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client talks to a job-board backend.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Options configures the client.
type Options struct {
	Timeout time.Duration
}

// New creates a client for the backend at baseURL. token is the employer's
// bearer token; it rides along on every request.
func New(baseURL, token string, opts *Options) *Client {
	timeout := DefaultTimeout
	if opts != nil && opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError represents a non-success response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// PublishJob submits a posting for publication and returns the new job ID.
func (c *Client) PublishJob(ctx context.Context, f form.PostingForm) (string, error) {
	body, err := c.post(ctx, "/api/employers/post-a-job", form.NewPublishRequest(f, form.ActionPublish))
	if err != nil {
		return "", err
	}

	jobID := extractJobID(body)
	if jobID == "" {
		return "", fmt.Errorf("publish succeeded but no job ID found in response: %s", snippet(body))
	}
	return jobID, nil
}

// SaveDraft stores the posting as a draft and returns the draft ID.
func (c *Client) SaveDraft(ctx context.Context, f form.PostingForm) (string, error) {
	body, err := c.post(ctx, "/api/employers/post-a-job", form.NewPublishRequest(f, form.ActionSaveDraft))
	if err != nil {
		return "", err
	}

	var resp struct {
		DraftID string `json:"draft_id"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || resp.DraftID == "" {
		return "", fmt.Errorf("draft saved but no draft ID found in response: %s", snippet(body))
	}
	return resp.DraftID, nil
}

// UpdateJob pushes a quick-edit update. original is the posting as it was
// loaded into the editor; its title decides whether ai_skills ride along.
func (c *Client) UpdateJob(ctx context.Context, jobID string, f form.PostingForm, original *form.PostingForm) error {
	payload, err := json.Marshal(form.NewUpdateRequest(f, original))
	if err != nil {
		return fmt.Errorf("failed to encode update request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut,
		"/api/job-listings/job-cards/"+jobID+"/update", bytes.NewReader(payload))
	if err != nil {
		return err
	}

	_, err = c.do(req)
	return err
}

// DeleteDraft removes a stored draft. Callers treat failures as advisory; a
// leftover draft does not block anything.
func (c *Client) DeleteDraft(ctx context.Context, draftID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete,
		"/api/job-listings/actionsDraft?id="+draftID, nil)
	if err != nil {
		return err
	}

	_, err = c.do(req)
	return err
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeError(resp, body)
	}
	return body, nil
}

// decodeError turns a non-2xx response into an APIError with the most
// user-relevant message it can find. Older backends answer with HTML error
// pages, bare strings, or JSON under varying keys, so the body is sniffed
// rather than trusted.
func decodeError(resp *http.Response, body []byte) error {
	message := probeMessage(resp, body)

	// A timestamp syntax error means the deadline text never parsed; the raw
	// database message is useless to the person filling in the form.
	if strings.Contains(message, "invalid input syntax for type timestamp") {
		message = "The application deadline could not be saved. Please re-enter the deadline date and time."
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}

func probeMessage(resp *http.Response, body []byte) string {
	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		var parsed map[string]any
		if err := json.Unmarshal(body, &parsed); err == nil {
			for _, key := range []string{"error", "message", "detail"} {
				if msg, ok := parsed[key].(string); ok && msg != "" {
					return msg
				}
			}
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "<") {
		return snippet(body)
	}
	return http.StatusText(resp.StatusCode)
}

// extractJobID digs the job ID out of a publish response. The canonical shape
// is {"job_id": "..."}; older backends nested it under result or data, so
// every historical shape is probed before giving up.
func extractJobID(body []byte) string {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}

	if id := stringAt(parsed, "job_id"); id != "" {
		return id
	}
	if result, ok := parsed["result"].(map[string]any); ok {
		if id := firstString(result, "job_id", "id"); id != "" {
			return id
		}
	}
	switch data := parsed["data"].(type) {
	case []any:
		if len(data) > 0 {
			if record, ok := data[0].(map[string]any); ok {
				if id := firstString(record, "job_id", "id"); id != "" {
					return id
				}
			}
		}
	case map[string]any:
		if id := firstString(data, "job_id", "id"); id != "" {
			return id
		}
		if job, ok := data["job"].(map[string]any); ok {
			if id := firstString(job, "job_id", "id"); id != "" {
				return id
			}
		}
	}
	return stringAt(parsed, "id")
}

func firstString(record map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := stringAt(record, key); s != "" {
			return s
		}
	}
	return ""
}

func stringAt(record map[string]any, key string) string {
	s, _ := record[key].(string)
	return s
}

func snippet(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		return text[:200] + "..."
	}
	return text
}
