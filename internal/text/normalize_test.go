// Package text_test tests the synthesis input normalizer.
package text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/book-expert/speech-publisher/internal/text"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	normalizer := text.NewNormalizer()

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses whitespace",
			input: "Hello\n\n  world\t!",
			want:  "Hello world !",
		},
		{
			name:  "expands abbreviations",
			input: "Dr. Smith met Mr. Jones",
			want:  "Doctor Smith met Mister Jones",
		},
		{
			name:  "normalizes quotes and dashes",
			input: "“Stop” — she said… ‘now’",
			want:  `"Stop" - she said... 'now'`,
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, normalizer.Normalize(testCase.input))
		})
	}
}
