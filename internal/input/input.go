// Package input reads and validates the text handed to the synthesizer.
package input

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyText indicates that the input file contained only whitespace.
// Callers treat this as a controlled early exit rather than a failure.
var ErrEmptyText = errors.New("text file is empty")

// ReadText reads the file at path as UTF-8 text and trims surrounding
// whitespace. It returns ErrEmptyText when nothing remains after trimming.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read text file '%s': %w", path, err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", ErrEmptyText
	}

	return text, nil
}
