// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tsdr

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DocumentFilename returns the file name used for caseID's document.
// Path separators in caseID are replaced so the file stays in the output
// directory.
func DocumentFilename(caseID string) string {
	safe := strings.NewReplacer("/", "_", `\`, "_").Replace(caseID)
	return safe + "_document.pdf"
}

// FetchDocument downloads the case document for caseID into the configured
// output directory, overwriting any existing file, and returns its path.
func (c *Client) FetchDocument(ctx context.Context, caseID string) (string, error) {
	reqURL := c.DocumentURL(caseID)
	c.log.Info().Str("case_id", caseID).Str("url", reqURL).Msg("downloading case document")

	resp, err := c.get(ctx, "downloading document for case "+caseID, reqURL)
	if err != nil {
		c.log.Error().Err(err).Str("case_id", caseID).Msg("case document request failed")
		return "", err
	}
	defer resp.Body.Close()

	destPath := filepath.Join(c.cfg.OutputDir, DocumentFilename(caseID))
	if err := writeFile(resp.Body, destPath); err != nil {
		c.log.Error().Err(err).Str("path", destPath).Msg("saving case document failed")
		return "", err
	}

	c.log.Info().Str("case_id", caseID).Str("path", destPath).Msg("downloaded case document")
	return destPath, nil
}

// writeFile copies r to destPath through a temporary file in the same
// directory, renamed over destPath once fully written.
func writeFile(r io.Reader, destPath string) error {
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: destPath, Err: fmt.Errorf("creating directory: %w", err)}
	}

	tmpFile, err := os.CreateTemp(dir, ".tsdr-*.tmp")
	if err != nil {
		return &WriteError{Path: destPath, Err: fmt.Errorf("creating temp file: %w", err)}
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, r)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: destPath, Err: fmt.Errorf("writing download: %w", copyErr)}
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: destPath, Err: fmt.Errorf("closing temp file: %w", closeErr)}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return &WriteError{Path: destPath, Err: fmt.Errorf("renaming temp file: %w", err)}
	}
	return nil
}
