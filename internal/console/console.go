// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package console reads the case identifier typed by the user.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompt is shown before reading the case identifier.
const Prompt = "Please enter a case ID (e.g., 97890330): "

// ReadCaseID writes Prompt to out and reads one line from in. The result is
// trimmed; an empty string means the user entered nothing (or in hit EOF).
func ReadCaseID(in io.Reader, out io.Writer) (string, error) {
	if _, err := fmt.Fprint(out, Prompt); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading case ID: %w", err)
	}
	return strings.TrimSpace(line), nil
}
