// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCaseID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "97890330\n", "97890330"},
		{"padded", "  97890330 \t\n", "97890330"},
		{"windows line ending", "97890330\r\n", "97890330"},
		{"no newline", "97890330", "97890330"},
		{"only first line", "111\n222\n", "111"},
		{"empty line", "\n", ""},
		{"whitespace only", "   \n", ""},
		{"eof", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := ReadCaseID(strings.NewReader(tt.input), &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, Prompt, out.String())
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestReadCaseIDReadError(t *testing.T) {
	_, err := ReadCaseID(failingReader{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}
