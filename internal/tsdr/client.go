// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tsdr fetches trademark case status and case documents from the
// USPTO Trademark Status and Document Retrieval (TSDR) API.
package tsdr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/tsdr-status/internal/httputil"
	"github.com/pdiddy/tsdr-status/pkg/types"
)

const (
	// DefaultBaseURL is the production TSDR API root.
	DefaultBaseURL = "https://tsdrapi.uspto.gov"

	// DefaultUserAgent mimics a desktop browser; TSDR rejects bot-like agents.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0 Safari/537.36"

	// DefaultTimeout bounds every TSDR request.
	DefaultTimeout = 60 * time.Second

	// DefaultRetryAfter is the wait used when a 429 has no Retry-After header.
	DefaultRetryAfter = 15 * time.Second

	apiKeyHeader = "USPTO-API-KEY"

	statusPathTemplate   = "/ts/cd/casestatus/%s/info"
	documentPathTemplate = "/ts/cd/casedocs/%s/download.pdf"
)

// Client talks to the TSDR API. It is safe to reuse across calls.
type Client struct {
	httpc *http.Client
	cfg   types.TSDRConfig
	log   zerolog.Logger
}

// NewClient returns a Client for cfg, filling unset fields with defaults.
// A nil httpClient selects one with cfg.Timeout.
func NewClient(httpClient *http.Client, cfg types.TSDRConfig, log zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	if cfg.DefaultRetryAfter <= 0 {
		cfg.DefaultRetryAfter = DefaultRetryAfter
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{httpc: httpClient, cfg: cfg, log: log}
}

// StatusURL returns the case status endpoint for caseID.
func (c *Client) StatusURL(caseID string) string {
	return c.cfg.BaseURL + fmt.Sprintf(statusPathTemplate, url.PathEscape(caseID))
}

// DocumentURL returns the case document endpoint for caseID.
func (c *Client) DocumentURL(caseID string) string {
	return c.cfg.BaseURL + fmt.Sprintf(documentPathTemplate, url.PathEscape(caseID))
}

// get issues a GET with the TSDR headers, retrying once on HTTP 429. The
// returned response always has status 200; the caller closes its body.
func (c *Client) get(ctx context.Context, op, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", op, err)
	}
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	policy := httputil.RetryPolicy{
		MaxRetries: c.cfg.MaxRetries,
		Backoff:    httputil.RetryAfter(c.cfg.DefaultRetryAfter),
	}
	resp, err := httputil.DoWithRetry(c.log.WithContext(ctx), c.httpc, req, policy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{
			Op:         op,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(snippet(body)),
		}
	}
	return resp, nil
}
