package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylometer/internal/merror"
	"stylometer/internal/textmodel"
)

func TestFormatStrings(t *testing.T) {
	c := textmodel.Counts[string]{"is": 2, "it": 1, "don't": 1, `say "hi"`: 3}
	assert.Equal(t, `{"don't": 1, 'is': 2, 'it': 1, 'say "hi"': 3}`, FormatStrings(c))
	assert.Equal(t, "{}", FormatStrings(textmodel.Counts[string]{}))
}

func TestFormatInts(t *testing.T) {
	assert.Equal(t, "{2: 3, 4: 1, 11: 1}", FormatInts(textmodel.Counts[int]{11: 1, 2: 3, 4: 1}))
}

func TestStringsRoundTrip(t *testing.T) {
	c := textmodel.Counts[string]{
		"plain":      4,
		"it's":       1,
		`"quoted"`:   2,
		`both'"`:     1,
		`back\slash`: 1,
		"tab\there":  1,
		"naïve":      7,
		"bell\a":     1,
		"":           1,
	}
	got, err := ParseStrings(FormatStrings(c))
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestIntsRoundTrip(t *testing.T) {
	c := textmodel.Counts[int]{1: 4, 7: 1, 12: 2}
	got, err := ParseInts(FormatInts(c))
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestParseAcceptsHandWrittenLiterals(t *testing.T) {
	got, err := ParseStrings("{ \"it\" :1,\n 'is': 2, }\n")
	require.NoError(t, err)
	assert.Equal(t, textmodel.Counts[string]{"it": 1, "is": 2}, got)

	ints, err := ParseInts("{}")
	require.NoError(t, err)
	assert.Empty(t, ints)
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"",
		"{'a': 1",
		"{'a' 1}",
		"{'a': }",
		"{'a': 0}",
		"{'a': -2}",
		"{'a: 1}",
		"{'a': 1, 'a': 2}",
		"{'a': 1} trailing",
		`{'\q': 1}`,
		"{a: 1}",
	}
	for _, text := range bad {
		_, err := ParseStrings(text)
		assert.ErrorIs(t, err, merror.ErrParse, "input %q", text)
	}

	_, err := ParseInts("{'a': 1}")
	var perr *merror.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Offset)
}
