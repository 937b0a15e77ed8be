// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves Wiktionary pages for single characters. Requests
// are serialized: each one starts no sooner than MinGap after the previous
// one finished, and the overall rate is capped at RequestsPerSecond. An
// optional page cache is consulted first; a hit does not touch the network
// and does not count against the gap.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/wangyun/internal/httputil"
	"github.com/pdiddy/wangyun/pkg/types"
)

// MaxPageBytes is the largest page body accepted. A longer body fails
// with a *TransportError rather than being parsed truncated.
var MaxPageBytes int64 = 16 << 20

// ErrTransport matches any *TransportError via errors.Is.
var ErrTransport = errors.New("transport error")

// TransportError reports a failed retrieval: a network failure, a timeout,
// or a non-200 response. It is never a statement about the page content.
type TransportError struct {
	Char   string
	Status int // HTTP status, zero when no response arrived
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching %s: HTTP %d", e.Char, e.Status)
	}
	return fmt.Sprintf("fetching %s: %v", e.Char, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// PageCache stores raw pages by character. *pagecache.Cache satisfies it.
type PageCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, page string) error
}

// Client fetches pages one at a time.
type Client struct {
	cfg     types.FetchConfig
	http    *http.Client
	cache   PageCache
	limiter *rate.Limiter
	logger  *slog.Logger

	mu      sync.Mutex
	lastEnd time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithCache makes the client read and fill cache.
func WithCache(cache PageCache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithHTTPClient replaces the default HTTP client. Its Timeout is kept.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New returns a Client for cfg.
func New(cfg types.FetchConfig, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserAgent builds the User-Agent header value, with the operator contact
// in parentheses when one is known.
func UserAgent(version, contact string) string {
	if contact == "" {
		return "wangyun/" + version
	}
	return "wangyun/" + version + " (" + contact + ")"
}

// PageURL returns the endpoint for char.
func (c *Client) PageURL(char string) string {
	return strings.TrimSuffix(c.cfg.BaseURL, "/") + "/" + url.PathEscape(char)
}

// Fetch returns the page for char.
func (c *Client) Fetch(ctx context.Context, char string) (string, error) {
	if c.cache != nil {
		page, ok, err := c.cache.Get(ctx, char)
		if err != nil {
			c.logger.Warn("page cache read failed", "char", char, "error", err)
		} else if ok {
			c.logger.Debug("page cache hit", "char", char)
			return page, nil
		}
	}

	page, err := c.request(ctx, char)
	if err != nil {
		return "", err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, char, page); err != nil {
			c.logger.Warn("page cache write failed", "char", char, "error", err)
		}
	}
	return page, nil
}

// FetchAll fetches every character in order and stops at the first error.
func (c *Client) FetchAll(ctx context.Context, chars []string) ([]string, error) {
	pages := make([]string, 0, len(chars))
	for _, char := range chars {
		page, err := c.Fetch(ctx, char)
		if err != nil {
			return pages, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func (c *Client) request(ctx context.Context, char string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.waitTurn(ctx); err != nil {
		return "", err
	}
	defer func() { c.lastEnd = time.Now() }()

	c.logger.Info("requesting page", "char", char)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PageURL(char), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, httputil.RetryPolicy{
		MaxRetries: c.cfg.MaxRetries,
		Logger:     c.logger,
	})
	if err != nil {
		return "", &TransportError{Char: char, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{Char: char, Status: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPageBytes+1))
	if err != nil {
		return "", &TransportError{Char: char, Err: fmt.Errorf("reading body: %w", err)}
	}
	if int64(len(body)) > MaxPageBytes {
		return "", &TransportError{Char: char, Err: fmt.Errorf("page exceeds %d bytes", MaxPageBytes)}
	}
	return string(body), nil
}

// waitTurn blocks until the gap since the previous request has elapsed and
// the rate limiter admits one more request. The caller holds c.mu.
func (c *Client) waitTurn(ctx context.Context) error {
	if !c.lastEnd.IsZero() {
		if wait := c.cfg.MinGap - time.Since(c.lastEnd); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	if c.limiter != nil {
		return c.limiter.Wait(ctx)
	}
	return nil
}
