// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the TSDR fetchers.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultMaxRetries = 1
	defaultRetryAfter = 15 * time.Second
)

// BackoffFunc returns how long to wait after a 429 response before the
// next attempt.
type BackoffFunc func(resp *http.Response) time.Duration

// RetryPolicy bounds the retries DoWithRetry performs on HTTP 429.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	// Zero or negative selects the default (1).
	MaxRetries int

	// Backoff computes the wait before each retry. Nil selects
	// RetryAfter(15s).
	Backoff BackoffFunc
}

// RetryAfter returns a BackoffFunc that honors the Retry-After header
// (integer seconds) and waits fallback when the header is absent or
// unparseable.
func RetryAfter(fallback time.Duration) BackoffFunc {
	return func(resp *http.Response) time.Duration {
		return ParseRetryAfter(resp.Header.Get("Retry-After"), fallback)
	}
}

// ParseRetryAfter converts a Retry-After value in seconds to a duration.
// Empty, negative, or non-numeric values yield fallback.
func ParseRetryAfter(value string, fallback time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs < 0 {
		return fallback
	}
	return time.Duration(secs) * time.Second
}

// DoWithRetry executes an HTTP request and retries on HTTP 429 (Too Many
// Requests) up to policy.MaxRetries times, waiting policy.Backoff(resp)
// between attempts.
//
// On each 429 the response body is drained and closed before sleeping. If
// the context is cancelled during a wait the function returns ctx.Err().
// After exhausting retries the last 429 response is returned so the caller
// can inspect it. Waits are logged through the zerolog logger carried by ctx.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, policy RetryPolicy) (*http.Response, error) {
	maxRetries := policy.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	backoff := policy.Backoff
	if backoff == nil {
		backoff = RetryAfter(defaultRetryAfter)
	}
	log := zerolog.Ctx(ctx)

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		if attempt >= maxRetries {
			return resp, nil
		}

		wait := backoff(resp)
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		log.Warn().
			Str("url", req.URL.String()).
			Dur("wait", wait).
			Int("attempt", attempt+1).
			Int("max_retries", maxRetries).
			Msg("rate limited, waiting before retry")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
