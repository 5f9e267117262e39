package textmodel

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Feature identifies one of the five distributions of a Model.
type Feature int

const (
	FeatureWords Feature = iota
	FeatureWordLengths
	FeatureStems
	FeatureSentenceLengths
	FeatureCommonWords
)

// Features lists every feature in scoring order.
var Features = []Feature{FeatureWords, FeatureWordLengths, FeatureStems, FeatureSentenceLengths, FeatureCommonWords}

func (f Feature) String() string {
	switch f {
	case FeatureWords:
		return "words"
	case FeatureWordLengths:
		return "word_lengths"
	case FeatureStems:
		return "stems"
	case FeatureSentenceLengths:
		return "sentence_lengths"
	case FeatureCommonWords:
		return "common_words"
	default:
		return fmt.Sprintf("feature(%d)", int(f))
	}
}

// Suffix is appended to a model name to build the feature's artifact name.
func (f Feature) Suffix() string {
	return "_" + f.String()
}

// IntKeyed reports whether the feature is keyed by a length rather than a string.
func (f Feature) IntKeyed() bool {
	return f == FeatureWordLengths || f == FeatureSentenceLengths
}

func (f Feature) Label() string {
	return strings.ReplaceAll(f.String(), "_", " ")
}

// ParseFeature maps a feature name such as "word_lengths" back to its Feature.
func ParseFeature(name string) (Feature, error) {
	for _, f := range Features {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown feature %q", name)
}

// Model accumulates the five feature distributions of a body of text.
// It only grows; there is no way to remove text once added. A Model is not
// safe for concurrent mutation.
type Model struct {
	Name            string
	Words           Counts[string]
	WordLengths     Counts[int]
	Stems           Counts[string]
	SentenceLengths Counts[int]
	CommonWords     Counts[string]
}

func New(name string) *Model {
	return &Model{
		Name:            name,
		Words:           Counts[string]{},
		WordLengths:     Counts[int]{},
		Stems:           Counts[string]{},
		SentenceLengths: Counts[int]{},
		CommonWords:     Counts[string]{},
	}
}

// AddString analyzes text and adds its pieces to every distribution.
func (m *Model) AddString(text string) {
	for _, n := range SentenceLengths(text) {
		m.SentenceLengths.Add(n)
	}

	for _, w := range CleanText(text) {
		m.Words.Add(w)
		m.WordLengths.Add(utf8.RuneCountInString(w))
		m.Stems.Add(Stem(w))
		if IsCommonWord(w) {
			m.CommonWords.Add(w)
		}
	}
}

// StringCounts returns the string keyed distribution for f, or nil when f is
// keyed by integers.
func (m *Model) StringCounts(f Feature) Counts[string] {
	switch f {
	case FeatureWords:
		return m.Words
	case FeatureStems:
		return m.Stems
	case FeatureCommonWords:
		return m.CommonWords
	default:
		return nil
	}
}

// IntCounts returns the integer keyed distribution for f, or nil when f is
// keyed by strings.
func (m *Model) IntCounts(f Feature) Counts[int] {
	switch f {
	case FeatureWordLengths:
		return m.WordLengths
	case FeatureSentenceLengths:
		return m.SentenceLengths
	default:
		return nil
	}
}

// Distinct reports how many different keys the feature holds.
func (m *Model) Distinct(f Feature) int {
	if f.IntKeyed() {
		return len(m.IntCounts(f))
	}
	return len(m.StringCounts(f))
}

// Empty reports whether no text has contributed a word to the model.
func (m *Model) Empty() bool {
	return len(m.Words) == 0 && len(m.SentenceLengths) == 0
}

func (m *Model) String() string {
	var b strings.Builder
	b.WriteString("text model name: " + m.Name)
	for _, f := range Features {
		fmt.Fprintf(&b, "\n  number of %s: %d", f.Label(), m.Distinct(f))
	}
	return b.String()
}
