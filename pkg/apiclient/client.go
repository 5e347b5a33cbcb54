// Package apiclient is a small JSON HTTP client: method verbs over a
// base URL with timeouts, bounded retry and cancellation of superseded
// requests.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// APIError is the single failure shape every request resolves to.
// StatusCode is 0 for transport-level failures.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("api request failed: %s", e.Message)
	}
	return fmt.Sprintf("api request failed with status %d: %s", e.StatusCode, e.Message)
}

// errorBody is the server's error envelope.
type errorBody struct {
	Error string `json:"error"`
}

type Config struct {
	BaseURL string
	// HTTPClient defaults to a fresh http.Client.
	HTTPClient *http.Client
	// Timeout bounds each attempt. Default 15s.
	Timeout time.Duration
	// RetryCount is the number of extra attempts after the first, on
	// transport errors and 5xx responses. Default 0.
	RetryCount int
	// RetryDelay is the fixed pause between attempts. Default 300ms.
	RetryDelay time.Duration
	// CancelPrevious aborts the previous in-flight GET from this
	// client when a new GET is issued.
	CancelPrevious bool
}

type Client struct {
	baseURL        string
	httpClient     *http.Client
	timeout        time.Duration
	retryCount     int
	retryDelay     time.Duration
	cancelPrevious bool

	mu        sync.Mutex
	getGen    uint64
	cancelGet context.CancelFunc
}

func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 300 * time.Millisecond
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     cfg.HTTPClient,
		timeout:        cfg.Timeout,
		retryCount:     cfg.RetryCount,
		retryDelay:     cfg.RetryDelay,
		cancelPrevious: cfg.CancelPrevious,
	}, nil
}

// Get issues a GET request. When CancelPrevious is enabled the
// previous in-flight GET from this client is aborted first.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	if c.cancelPrevious {
		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(ctx)

		c.mu.Lock()
		if c.cancelGet != nil {
			c.cancelGet()
		}
		c.getGen++
		gen := c.getGen
		c.cancelGet = cancel
		c.mu.Unlock()

		defer func() {
			c.mu.Lock()
			if c.getGen == gen {
				c.cancelGet = nil
			}
			c.mu.Unlock()
			cancel()
		}()
	}
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	fullURL := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("failed to encode request body: %v", err)}
		}
	}

	var lastErr *APIError
	for attempt := 0; attempt <= c.retryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return &APIError{Message: ctx.Err().Error()}
			case <-time.After(c.retryDelay):
			}
		}

		apiErr, retryable := c.attempt(ctx, method, fullURL, payload, out)
		if apiErr == nil {
			return nil
		}
		lastErr = apiErr
		if !retryable {
			return apiErr
		}
	}
	return lastErr
}

// attempt runs one request. The second return reports whether the
// failure is worth retrying (transport error or 5xx).
func (c *Client) attempt(ctx context.Context, method, fullURL string, payload []byte, out any) (*APIError, bool) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, fullURL, bodyReader)
	if err != nil {
		return &APIError{Message: err.Error()}, false
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Do not retry when the caller's context is gone.
		if ctx.Err() != nil {
			return &APIError{Message: ctx.Err().Error()}, false
		}
		return &APIError{Message: err.Error()}, true
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &APIError{Message: err.Error()}, true
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(raw, resp.StatusCode)}
		return apiErr, resp.StatusCode >= 500
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to decode response: %v", err)}, false
		}
	}
	return nil, false
}

func errorMessage(raw []byte, statusCode int) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return http.StatusText(statusCode)
}
