// Package remote holds the HTTP clients for the catalog read API and the
// wishlist service. Transient failures (network errors, timeouts, 5xx) are
// surfaced as domain.ErrRemoteUnavailable; idempotent reads retry with
// exponential backoff before giving up.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/medghazdali/product-trial-master/internal/domain"
)

const (
	defaultTimeout = 10 * time.Second
	maxRetries     = 3
	baseDelay      = 250 * time.Millisecond
	maxDelay       = 2 * time.Second
)

// statusError is a non-2xx response that is not a transport failure.
// Callers map status codes to domain errors per endpoint.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.Code, e.Body)
}

func (e *statusError) retryable() bool {
	return e.Code == http.StatusTooManyRequests ||
		e.Code == http.StatusRequestTimeout ||
		e.Code >= 500
}

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string, httpClient *http.Client) *client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// getJSON issues a GET and decodes the response body into out, retrying
// transient failures.
func (c *client) getJSON(ctx context.Context, path string, out any) error {
	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, backoffDelay(attempt)); err != nil {
				return err
			}
		}

		body, err := c.do(ctx, http.MethodGet, path)
		if err != nil {
			lastErr = err
			var se *statusError
			if errors.As(err, &se) && !se.retryable() {
				return err
			}
			if ctx.Err() != nil {
				return wrapTransient(lastErr)
			}
			continue
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response from %s: %w", path, err)
		}
		return nil
	}
	return wrapTransient(lastErr)
}

// wrapTransient converts retryable status errors (5xx, 429) into
// domain.ErrRemoteUnavailable. Non-retryable statuses pass through for
// per-endpoint mapping.
func wrapTransient(err error) error {
	var se *statusError
	if errors.As(err, &se) && se.retryable() {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	return err
}

// do performs a single attempt and returns the response body. Mutating
// endpoints call it directly: no retries, a duplicate POST is not harmless.
func (c *client) do(ctx context.Context, method, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", method, path, domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w: %v", method, path, domain.ErrRemoteUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		return nil, &statusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

func backoffDelay(attempt int) time.Duration {
	delay := baseDelay << uint(attempt-1)
	if delay > maxDelay {
		delay = maxDelay
	}
	// up to 25% jitter to spread concurrent retries
	jitter := time.Duration(rand.Int63n(int64(delay) / 4))
	return delay + jitter
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
