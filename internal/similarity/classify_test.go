package similarity

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylometer/internal/textmodel"
)

func TestVote(t *testing.T) {
	a := Vector{-5, -3, -4, -2, -6}
	b := Vector{-4, -4, -5, -1, -7}
	votesA, votesB := Vote(a, b)
	assert.Equal(t, 3, votesA)
	assert.Equal(t, 2, votesB)

	r := decide("unknown", "first", "second", a, b)
	assert.Equal(t, "first", r.Winner)
}

func TestVoteTiesGoToSecond(t *testing.T) {
	a := Vector{-1, -1, -1, -1, -1}
	votesA, votesB := Vote(a, a)
	assert.Equal(t, 0, votesA)
	assert.Equal(t, 5, votesB)
	assert.Equal(t, "second", decide("u", "first", "second", a, a).Winner)
}

func TestClassify(t *testing.T) {
	source1 := textmodel.New("source1")
	source1.AddString("It is interesting that she is interested.")
	source2 := textmodel.New("source2")
	source2.AddString("I am very, very excited about this!")
	mystery := textmodel.New("mystery")
	mystery.AddString("Is he interested? No, but I am.")

	r, err := Classify(mystery, source1, source2)
	require.NoError(t, err)
	assert.Equal(t, "source1", r.Winner)
	assert.Equal(t, Vector{-17.087, -15.008, -16.394, -1.386, -1.386}, r.Candidates[1].Scores)
	// the sentence length scores tie and that vote goes to source2
	assert.Equal(t, 3, r.Candidates[0].Votes)
	assert.Equal(t, 2, r.Candidates[1].Votes)

	var out bytes.Buffer
	require.NoError(t, r.Report(&out))
	assert.Equal(t, "scores for source1: [-16.394, -9.92, -14.315, -1.386, -3.584]\n"+
		"scores for source2: [-17.087, -15.008, -16.394, -1.386, -1.386]\n"+
		"mystery is more likely to have come from source1\n", out.String())
}

func TestClassifyPropagatesEmptyReference(t *testing.T) {
	source1 := textmodel.New("source1")
	source1.AddString("It is what it is.")
	empty := textmodel.New("empty")
	mystery := textmodel.New("mystery")
	mystery.AddString("What is it?")

	_, err := Classify(mystery, source1, empty)
	assert.ErrorIs(t, err, ErrEmptyReference)
}
