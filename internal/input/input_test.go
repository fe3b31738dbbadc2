// Package input_test tests input file reading and validation.
package input_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/book-expert/speech-publisher/internal/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTextFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "speech.txt")
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}

func TestReadText_TrimsWhitespace(t *testing.T) {
	t.Parallel()

	path := writeTextFile(t, "  Hello world\n\n")

	text, err := input.ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
}

func TestReadText_WhitespaceOnly(t *testing.T) {
	t.Parallel()

	path := writeTextFile(t, "   \n  ")

	_, err := input.ReadText(path)
	require.ErrorIs(t, err, input.ErrEmptyText)
}

func TestReadText_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := input.ReadText(filepath.Join(t.TempDir(), "no-such-file.txt"))
	require.Error(t, err)
	require.NotErrorIs(t, err, input.ErrEmptyText)
}
