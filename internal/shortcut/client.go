package shortcut

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const DefaultBaseURL = "https://api.app.shortcut.com/api/v3"

// Client talks to the Shortcut v3 API. Create calls are retried on 429,
// 500, 503, 504 and on network failures with exponential backoff; see
// retry.go for the schedule.
//
// Create endpoints are not idempotent server-side. A retry after an
// ambiguous failure (request delivered, response lost) may leave a
// duplicate resource behind; the client does not detect or correct this.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Timeout    time.Duration
	Log        zerolog.Logger
	// Sleep is the retry wait; overridable in tests. Nil means a
	// context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// New creates a client with sane defaults.
func New(token string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		Token:   token,
		Timeout: 10 * time.Second,
		Log:     zerolog.Nop(),
	}
}

// APIError wraps a definitive non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (HTTP %d): %s", e.Status, e.Message)
}

// ListMembers returns workspace members, including disabled ones.
func (c *Client) ListMembers(ctx context.Context) ([]Member, error) {
	var out []Member
	err := c.do(ctx, http.MethodGet, "/members", nil, &out)
	return out, err
}

// ListGroups returns workspace teams, including archived ones.
func (c *Client) ListGroups(ctx context.Context) ([]Group, error) {
	var out []Group
	err := c.do(ctx, http.MethodGet, "/groups", nil, &out)
	return out, err
}

// ListWorkflows returns all workflows with their states.
func (c *Client) ListWorkflows(ctx context.Context) ([]Workflow, error) {
	var out []Workflow
	err := c.do(ctx, http.MethodGet, "/workflows", nil, &out)
	return out, err
}

func (c *Client) CreateObjective(ctx context.Context, req CreateObjectiveRequest) (Objective, error) {
	var out Objective
	err := c.do(ctx, http.MethodPost, "/objectives", req, &out)
	return out, err
}

func (c *Client) CreateEpic(ctx context.Context, req CreateEpicRequest) (Epic, error) {
	var out Epic
	err := c.do(ctx, http.MethodPost, "/epics", req, &out)
	return out, err
}

func (c *Client) CreateStory(ctx context.Context, req CreateStoryRequest) (Story, error) {
	var out Story
	err := c.do(ctx, http.MethodPost, "/stories", req, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = b
	}
	url := c.base() + "/" + strings.TrimLeft(endpoint, "/")

	var lastErr error
	for attempt := 0; ; attempt++ {
		resp, err := c.send(ctx, method, url, payload)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if attempt >= maxRetries {
				return &RetryError{Attempts: attempt + 1, Err: lastErr}
			}
			delay := backoffDelay(attempt, 0, "")
			c.Log.Debug().Err(err).Int("attempt", attempt+1).Dur("wait", delay).Msg("request failed, retrying")
			if err := c.wait(ctx, delay); err != nil {
				return err
			}
			continue
		}
		if retryableStatus(resp.StatusCode) {
			retryAfter := resp.Header.Get("Retry-After")
			status := resp.StatusCode
			drain(resp)
			if attempt >= maxRetries {
				return &RetryError{Status: status, Attempts: attempt + 1}
			}
			delay := backoffDelay(attempt, status, retryAfter)
			c.Log.Debug().Int("status", status).Int("attempt", attempt+1).Dur("wait", delay).Msg("retryable status, backing off")
			if err := c.wait(ctx, delay); err != nil {
				return err
			}
			continue
		}
		return handleResponse(resp, out)
	}
}

func (c *Client) send(ctx context.Context, method, url string, payload []byte) (*http.Response, error) {
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Shortcut-Token", c.Token)
	return c.HTTPClient.Do(req)
}

func handleResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return &APIError{Status: resp.StatusCode, Message: errorMessage(b)}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("malformed response body: %v", err)}
		}
	}
	return nil
}

// errorMessage prefers the "message" field of a JSON error body, falling
// back to the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}

func (c *Client) wait(ctx context.Context, d time.Duration) error {
	if c.Sleep != nil {
		return c.Sleep(ctx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func (c *Client) base() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}
