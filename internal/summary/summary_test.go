// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/tsdr-status/pkg/types"
)

func fullRecord() types.CaseStatus {
	return types.CaseStatus{
		CaseID:            "97890330",
		ApplicationNumber: "97890330",
		ApplicationDate:   "2023-04-05-04:00",
		FilingPlace:       "US",
		StatusCode:        "688",
		StatusDate:        "2024-01-09-05:00",
		MarkVerbalElement: "ACME ROCKETS",
		ImageFileName:     "97890330.png",
		ApplicantName:     "Wile E. Coyote",
		StatusDescription: "A Notice of Allowance has been issued.",
		DocumentFilename:  "97890330_document.pdf",
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		records []types.CaseStatus
	}{
		{"full record", []types.CaseStatus{fullRecord()}},
		{"sparse record", []types.CaseStatus{{CaseID: "123", StatusCode: "700", DocumentFilename: types.DocumentDownloadError}}},
		{"id only", []types.CaseStatus{{CaseID: "42"}}},
		{"two records", []types.CaseStatus{fullRecord(), {CaseID: "555", FilingPlace: "US"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultPath)
			require.NoError(t, Write(path, tt.records))

			got, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, tt.records, got)
		})
	}
}

func TestWriteHeaderOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, Write(path, []types.CaseStatus{fullRecord()}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetList()[0])
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, types.CaseStatusColumns(), rows[0])
	assert.Equal(t, "case_id", rows[0][0])
	assert.Equal(t, "document_filename", rows[0][len(rows[0])-1])
}

func TestWriteNoRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	err := Write(path, nil)
	assert.ErrorIs(t, err, ErrNoRecords)
	assert.NoFileExists(t, path)
}

func TestWriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, Write(path, []types.CaseStatus{fullRecord(), {CaseID: "2"}}))
	require.NoError(t, Write(path, []types.CaseStatus{{CaseID: "3"}}))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []types.CaseStatus{{CaseID: "3"}}, got)
}

func TestWriteUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", DefaultPath)
	err := Write(path, []types.CaseStatus{fullRecord()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func TestReadNotSpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))
	_, err := Read(path)
	assert.Error(t, err)
}
