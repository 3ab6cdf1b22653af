// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary writes case status records to an xlsx spreadsheet and
// reads them back.
package summary

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/tsdr-status/pkg/types"
)

// DefaultPath is the spreadsheet written when no path is configured.
const DefaultPath = "case_summary.xlsx"

var (
	// ErrNoRecords is returned by Write when there is nothing to write.
	ErrNoRecords = errors.New("no case records to write")

	// ErrWrite wraps any failure to produce the spreadsheet file.
	ErrWrite = errors.New("writing summary")
)

// Write stores records at path as a single sheet: one header row with the
// CaseStatus column names, then one row per record. An existing file at
// path is replaced. With no records nothing is written.
func Write(path string, records []types.CaseStatus) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := types.CaseStatusColumns()
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%w: header row: %w", ErrWrite, err)
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWrite, err)
		}
		values := rec.Values()
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("%w: row for case %s: %w", ErrWrite, rec.CaseID, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: saving %s: %w", ErrWrite, path, err)
	}
	return nil
}

// Read loads the records from the first sheet of the spreadsheet at path.
// Columns are matched by header name.
func Read(path string) ([]types.CaseStatus, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading rows from %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s has no header row", path)
	}

	header := rows[0]
	var records []types.CaseStatus
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		records = append(records, types.CaseStatusFromRow(header, row))
	}
	return records, nil
}
