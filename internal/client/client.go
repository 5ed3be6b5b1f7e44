// Package client provides an HTTP client for the date-invite REST API.
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

	"github.com/evcraddock/date-invite/internal/submission"
)

// DefaultBaseURL is the API origin used when none is configured.
const DefaultBaseURL = "http://localhost:5000"

// Client is an HTTP client for the date-invite API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client. An empty baseURL selects DefaultBaseURL.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// BaseURL returns the API origin requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the shape of every API response body.
type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message,omitempty"`
	Count     int             `json:"count,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error: %s", http.StatusText(e.StatusCode))
}

// Health is the response from GET /api/health.
type Health struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// SaveDate posts a finished invitation.
func (c *Client) SaveDate(ctx context.Context, p submission.Payload) (*submission.Submission, error) {
	var sub submission.Submission
	if _, err := c.post(ctx, "/api/save-date", p, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListDates returns every stored submission.
func (c *Client) ListDates(ctx context.Context) ([]*submission.Submission, error) {
	var subs []*submission.Submission
	if _, err := c.get(ctx, "/api/dates", &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// GetDate returns one submission by id.
func (c *Client) GetDate(ctx context.Context, id int64) (*submission.Submission, error) {
	var sub submission.Submission
	if _, err := c.get(ctx, fmt.Sprintf("/api/dates/%d", id), &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	env, err := c.get(ctx, "/api/health", nil)
	if err != nil {
		return nil, err
	}
	return &Health{Message: env.Message, Timestamp: env.Timestamp}, nil
}

// get performs a GET request and decodes the envelope's data into result.
func (c *Client) get(ctx context.Context, path string, result interface{}) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) (*envelope, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// do executes an HTTP request and unwraps the response envelope.
func (c *Client) do(req *http.Request, result interface{}) (*envelope, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(respBody, &env)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = env.Message
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decoding response: %w", decodeErr)
	}

	if result != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, result); err != nil {
			return nil, fmt.Errorf("decoding data: %w", err)
		}
	}

	return &env, nil
}
