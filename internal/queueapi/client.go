package queueapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// QueueService defines the operations the waitlist API exposes.
// This interface is implemented by *Client and can be used for testing.
type QueueService interface {
	FetchQueue(ctx context.Context, status Status) ([]QueueEntry, error)
	Create(ctx context.Context, entry QueueEntry) (QueueEntry, error)
	Update(ctx context.Context, id string, patch EntryPatch) (QueueEntry, error)
	Remove(ctx context.Context, id string) error
}

// Ensure Client implements QueueService at compile time.
var _ QueueService = (*Client)(nil)

// Client talks to the waitlist HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultUserAgent      = "waitline/0.1"
	defaultRequestTimeout = 10 * time.Second
	queuePath             = "/queue"
)

// NewClient builds a Client for the given base address. The address may be a
// full URL or a bare host:port; the scheme defaults to https for anything
// that is not localhost.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// APIError is an application-level failure: the API answered with a non-2xx
// status, optionally carrying a message in the response body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// FetchQueue retrieves the current waitlist. A non-empty status narrows the
// result server-side; the empty status fetches everything.
func (c *Client) FetchQueue(ctx context.Context, status Status) ([]QueueEntry, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	var payload queueList
	if err := c.do(ctx, http.MethodGet, queuePath, query, nil, &payload); err != nil {
		return nil, err
	}
	return payload.Entries, nil
}

// Create adds a new entry to the waitlist and returns the stored record.
func (c *Client) Create(ctx context.Context, entry QueueEntry) (QueueEntry, error) {
	if c == nil {
		return QueueEntry{}, fmt.Errorf("client is nil")
	}
	var created QueueEntry
	if err := c.do(ctx, http.MethodPost, queuePath, nil, entry, &created); err != nil {
		return QueueEntry{}, err
	}
	return created, nil
}

// Update applies a partial update to an entry and returns the updated record.
func (c *Client) Update(ctx context.Context, id string, patch EntryPatch) (QueueEntry, error) {
	if c == nil {
		return QueueEntry{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return QueueEntry{}, fmt.Errorf("entry id required")
	}
	if patch.IsEmpty() {
		return QueueEntry{}, fmt.Errorf("patch is empty")
	}
	var updated QueueEntry
	if err := c.do(ctx, http.MethodPut, queuePath+"/"+url.PathEscape(id), nil, patch, &updated); err != nil {
		return QueueEntry{}, err
	}
	return updated, nil
}

// Remove deletes an entry from the waitlist.
func (c *Client) Remove(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("entry id required")
	}
	return c.do(ctx, http.MethodDelete, queuePath+"/"+url.PathEscape(id), nil, nil, nil)
}

// do issues a request against the base URL. The path is appended to any
// path prefix the base URL carries (API gateways mount the queue behind a
// stage path).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any) error {
	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + path
	reqURL.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return apiErr
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		apiErr.Message = strings.TrimSpace(payload.Message)
	}
	return apiErr
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		if strings.HasPrefix(trimmed, "localhost") || strings.HasPrefix(trimmed, "127.0.0.1") {
			trimmed = "http://" + trimmed
		} else {
			trimmed = "https://" + trimmed
		}
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
