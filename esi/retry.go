package esi

import (
	"context"
	"io"
	"log"
	"math/rand"
	"net/http"
	"time"
)

// retryOptions configures retry behavior for ESI requests.
type retryOptions struct {
	maxAttempts int
	baseBackoff time.Duration
}

func defaultRetryOptions() retryOptions {
	return retryOptions{
		maxAttempts: 3,
		baseBackoff: 500 * time.Millisecond,
	}
}

// retryableStatus reports whether a status code should trigger a retry.
func retryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusInternalServerError ||
		statusCode == http.StatusBadGateway ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout
}

// backoffWithJitter grows the backoff exponentially per attempt and adds
// jitter so concurrent retries spread out.
func backoffWithJitter(baseBackoff time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return baseBackoff
	}
	backoff := baseBackoff << uint(attempt-1)
	jitter := time.Duration(rand.Int63n(int64(backoff / 2)))
	return backoff + jitter
}

// doWithRetries executes the request built by build, retrying transport
// errors and retryable upstream statuses. The request is rebuilt per attempt
// so retries never reuse a consumed body. The last typed error is returned
// when every attempt fails.
func (c *Client) doWithRetries(ctx context.Context, build func() (*http.Request, error)) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt < c.retry.maxAttempts; attempt++ {
		if attempt > 0 {
			log.Printf("ESI: retry %d/%d after error: %v", attempt, c.retry.maxAttempts-1, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoffWithJitter(c.retry.baseBackoff, attempt)):
			}
		}

		req, err := build()
		if err != nil {
			return nil, err
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if retryableStatus(resp.StatusCode) {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			resp.Body.Close()
			lastErr = &StatusError{URL: req.URL.String(), StatusCode: resp.StatusCode, Body: string(body)}
			continue
		}

		return resp, nil
	}
	return nil, lastErr
}
