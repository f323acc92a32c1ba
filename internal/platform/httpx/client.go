// Package httpx provides the JSON-over-HTTP client used for every
// inter-service call in the suite: bounded per-call timeouts, an optional
// fixed-delay retry policy, and errors that carry the upstream status so
// handlers can classify failures.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// StatusError reports a non-2xx response from an upstream service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Body)
}

// IsTimeout reports whether err is a deadline/timeout failure on the wire.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Timeout()
	}
	return false
}

// IsConnError reports whether err is a transport failure that is not a
// timeout (connection refused, DNS failure, reset).
func IsConnError(err error) bool {
	if err == nil || IsTimeout(err) {
		return false
	}
	var uerr *url.Error
	return errors.As(err, &uerr)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.httpClient = c }
}

// WithMaxAttempts sets the total number of attempts (1 = no retries).
func WithMaxAttempts(n int) ClientOption {
	return func(cl *Client) {
		if n > 0 {
			cl.maxAttempts = n
		}
	}
}

// WithRetryDelay sets the fixed delay between attempts.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(cl *Client) { cl.retryDelay = d }
}

// Client is a small JSON HTTP client. The zero retry configuration performs
// a single attempt; with retries enabled it re-issues the request on
// timeout, connection error, and 5xx responses, but never on 4xx.
type Client struct {
	httpClient  *http.Client
	maxAttempts int
	retryDelay  time.Duration
}

func NewClient(timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxAttempts: 1,
		retryDelay:  500 * time.Millisecond,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// GetJSON issues a GET and decodes the 2xx response body into out. A non-2xx
// response returns a *StatusError; transport failures return the wrapped
// url.Error. When out is nil the body is discarded.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out any) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		lastErr = c.getOnce(ctx, rawURL, out)
		if lastErr == nil {
			return nil
		}
		if !retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) getOnce(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Read at most 1KB of the error body.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// retryable reports whether the failure is worth another attempt: timeouts,
// connection errors, and server-side (5xx) errors. Client errors are final.
func retryable(err error) bool {
	var serr *StatusError
	if errors.As(err, &serr) {
		return serr.StatusCode >= 500
	}
	return true
}
