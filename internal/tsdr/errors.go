// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tsdr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for errors.Is checks. The typed errors below match them.
var (
	ErrRateLimited = errors.New("rate limited")
	ErrTransport   = errors.New("transport failure")
	ErrParse       = errors.New("parse failure")
	ErrWrite       = errors.New("write failure")
)

// maxBodySnippet caps how much of an error response body is kept.
const maxBodySnippet = 512

// StatusError reports a non-200 final response from the TSDR API. A final
// 429 (still rate limited after the retry) matches both ErrTransport and
// ErrRateLimited.
type StatusError struct {
	Op         string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s: HTTP %d from %s", e.Op, e.StatusCode, e.URL)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is matches ErrTransport, and ErrRateLimited for HTTP 429.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return true
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// ParseError reports a status response whose body is not well-formed XML.
type ParseError struct {
	CaseID string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing status XML for case %s: %v", e.CaseID, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// WriteError reports a downloaded document that could not be saved.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrWrite }

// snippet trims a response body for inclusion in an error message.
func snippet(body []byte) string {
	if len(body) > maxBodySnippet {
		return string(body[:maxBodySnippet]) + "..."
	}
	return string(body)
}
