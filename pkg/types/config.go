// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the fetchers.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. The TSDR
	// API blocks non-browser agents, so the default mimics a desktop browser.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// TSDRConfig holds settings for the TSDR status and document fetchers.
type TSDRConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the TSDR API root (default "https://tsdrapi.uspto.gov").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is sent in the USPTO-API-KEY header.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retries after an HTTP 429 (default 1).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// DefaultRetryAfter is the wait used when a 429 carries no Retry-After
	// header (default 15s).
	DefaultRetryAfter time.Duration `json:"default_retry_after" yaml:"default_retry_after"`

	// OutputDir is where the case document is written (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// SummaryConfig holds settings for the summary spreadsheet.
type SummaryConfig struct {
	// Path is the spreadsheet file written by lookup (default "case_summary.xlsx").
	Path string `json:"path" yaml:"path"`
}
