// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup runs one case lookup: fetch the status, download the
// document, and write the summary spreadsheet.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/tsdr-status/internal/summary"
	"github.com/pdiddy/tsdr-status/pkg/types"
)

// StatusFetcher retrieves the status record for a case.
type StatusFetcher interface {
	FetchStatus(ctx context.Context, caseID string) (*types.CaseStatus, error)
}

// DocumentFetcher downloads a case document and returns its path.
type DocumentFetcher interface {
	FetchDocument(ctx context.Context, caseID string) (string, error)
}

// WriteFunc persists the collected records to path.
type WriteFunc func(path string, records []types.CaseStatus) error

// Outcome classifies how a run ended.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeFetchFailed
	OutcomeNoInput
	OutcomeWriteFailed
)

// ExitCode maps the outcome to the process exit status.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeOK:
		return 0
	case OutcomeFetchFailed:
		return 1
	case OutcomeNoInput:
		return 2
	default:
		return 3
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeFetchFailed:
		return "fetch failed"
	case OutcomeNoInput:
		return "no input"
	case OutcomeWriteFailed:
		return "write failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result holds the outcome of a run.
type Result struct {
	Outcome Outcome

	// Record is the fetched case, nil when the status fetch failed.
	Record *types.CaseStatus

	// SummaryPath is set when the spreadsheet was written.
	SummaryPath string

	// Err is the failure behind a non-OK outcome. DocumentErr records a
	// download failure, which does not change the outcome.
	Err         error
	DocumentErr error
}

// Runner wires the fetchers and the summary writer together.
type Runner struct {
	Status StatusFetcher

	// Document may be nil to skip the download.
	Document DocumentFetcher

	// Write defaults to summary.Write.
	Write WriteFunc

	// SummaryPath defaults to summary.DefaultPath.
	SummaryPath string

	// Out receives the user-facing progress messages.
	Out io.Writer
	Log zerolog.Logger
}

// Run looks up caseID. An empty (or whitespace) caseID returns
// OutcomeNoInput without touching the network or the filesystem. A failed
// status fetch ends the run with nothing written; a failed document
// download only replaces the document filename with
// types.DocumentDownloadError.
func (r *Runner) Run(ctx context.Context, caseID string) Result {
	out := r.Out
	if out == nil {
		out = io.Discard
	}

	caseID = strings.TrimSpace(caseID)
	if caseID == "" {
		fmt.Fprintln(out, "No case ID entered. Exiting.")
		return Result{Outcome: OutcomeNoInput}
	}

	status, err := r.Status.FetchStatus(ctx, caseID)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		fmt.Fprintln(out, "Failed to retrieve case data.")
		return Result{Outcome: OutcomeFetchFailed, Err: err}
	}

	res := Result{Record: status}
	if r.Document != nil {
		path, err := r.Document.FetchDocument(ctx, caseID)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			r.Log.Warn().Err(err).Str("case_id", caseID).Msg("continuing without case document")
			status.DocumentFilename = types.DocumentDownloadError
			res.DocumentErr = err
		} else {
			fmt.Fprintf(out, "Downloaded document for case %s as %s\n", caseID, path)
			status.DocumentFilename = path
		}
	}

	records := []types.CaseStatus{*status}
	write := r.Write
	if write == nil {
		write = summary.Write
	}
	path := r.SummaryPath
	if path == "" {
		path = summary.DefaultPath
	}

	if err := write(path, records); err != nil {
		if errors.Is(err, summary.ErrNoRecords) {
			fmt.Fprintln(out, "No case data available to write.")
			res.Outcome = OutcomeOK
			return res
		}
		fmt.Fprintf(out, "Error: %v\n", err)
		res.Outcome = OutcomeWriteFailed
		res.Err = err
		return res
	}

	fmt.Fprintf(out, "Case summary written to %s\n", path)
	res.Outcome = OutcomeOK
	res.SummaryPath = path
	return res
}
