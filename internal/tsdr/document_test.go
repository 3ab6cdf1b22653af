// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tsdr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tsdr-status/pkg/types"
)

var fakePDF = []byte("%PDF-1.4\n%fake document\n%%EOF\n")

func TestFetchDocument(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ts/cd/casedocs/97890330/download.pdf", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("USPTO-API-KEY"))
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(fakePDF)
	}))
	defer ts.Close()

	client := newTestClient(t, ts)
	path, err := client.FetchDocument(context.Background(), "97890330")
	require.NoError(t, err)
	assert.Equal(t, "97890330_document.pdf", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fakePDF, data)

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFetchDocumentOverwrites(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(fakePDF)
	}))
	defer ts.Close()

	dir := t.TempDir()
	existing := filepath.Join(dir, "97890330_document.pdf")
	require.NoError(t, os.WriteFile(existing, []byte("stale content that is longer than the new one, much longer"), 0o644))

	client := NewClient(ts.Client(), types.TSDRConfig{BaseURL: ts.URL, OutputDir: dir}, zerolog.Nop())
	path, err := client.FetchDocument(context.Background(), "97890330")
	require.NoError(t, err)
	assert.Equal(t, existing, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fakePDF, data)
}

func TestFetchDocumentRateLimitedThenOK(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write(fakePDF)
	}))
	defer ts.Close()

	path, err := newTestClient(t, ts).FetchDocument(context.Background(), "97890330")
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchDocumentFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no documents", http.StatusNotFound)
	}))
	defer ts.Close()

	client := newTestClient(t, ts)
	_, err := client.FetchDocument(context.Background(), "97890330")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.NoFileExists(t, filepath.Join(client.cfg.OutputDir, "97890330_document.pdf"))
}

func TestFetchDocumentUnwritableDir(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(fakePDF)
	}))
	defer ts.Close()

	// A regular file where the output directory should be.
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	client := NewClient(ts.Client(), types.TSDRConfig{BaseURL: ts.URL, OutputDir: blocker}, zerolog.Nop())
	_, err := client.FetchDocument(context.Background(), "97890330")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
}

func TestDocumentFilename(t *testing.T) {
	assert.Equal(t, "97890330_document.pdf", DocumentFilename("97890330"))
	assert.Equal(t, "a_b_document.pdf", DocumentFilename("a/b"))
	assert.Equal(t, "a_b_document.pdf", DocumentFilename(`a\b`))
}
