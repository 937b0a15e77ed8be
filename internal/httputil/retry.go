// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers for talking to rate-limited
// upstream APIs.
package httputil

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay is the first backoff after an HTTP 429. Tests override
// this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

// MaxRetryAfter caps a server-supplied Retry-After delay.
var MaxRetryAfter = 60 * time.Second

const defaultMaxRetries = 3

// RetryPolicy configures DoWithRetry.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	// Zero means the default (3).
	MaxRetries int

	// Logger receives one Warn line per backoff. Nil discards.
	Logger *slog.Logger
}

// DoWithRetry executes req and retries only on HTTP 429 (Too Many
// Requests). The wait honours a Retry-After header in seconds or HTTP-date
// form, capped at MaxRetryAfter; otherwise it doubles from RetryBaseDelay.
//
// On each 429 the body is drained and closed before waiting. A cancelled
// context during a wait returns ctx.Err(). Once retries are exhausted the
// last 429 response is returned so the caller can report it. Every other
// status, and every transport error, is returned as-is on first sight.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, policy RetryPolicy) (*http.Response, error) {
	maxRetries := policy.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	logger := policy.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		wait := RetryAfter(resp.Header.Get("Retry-After"), time.Now())
		if wait <= 0 {
			wait = RetryBaseDelay << attempt
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		logger.Warn("rate limited",
			"url", req.URL.String(), "wait", wait,
			"attempt", attempt+1, "max_retries", maxRetries)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// RetryAfter parses a Retry-After header value relative to now. It returns
// zero for an empty or unparseable value, and never more than MaxRetryAfter.
func RetryAfter(v string, now time.Time) time.Duration {
	if v == "" {
		return 0
	}
	var d time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		d = time.Duration(secs) * time.Second
	} else if at, err := http.ParseTime(v); err == nil {
		d = at.Sub(now)
	}
	if d < 0 {
		return 0
	}
	return min(d, MaxRetryAfter)
}
