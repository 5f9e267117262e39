package similarity

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"

	"stylometer/internal/textmodel"
)

// unseenWeight is the pseudo-count given to a query key the reference never saw.
const unseenWeight = 0.5

// ErrEmptyReference is returned when scoring against a distribution with no
// observations, where every probability would divide by zero.
var ErrEmptyReference = errors.New("reference distribution is empty")

// Vector holds one rounded score per feature, in textmodel.Features order.
type Vector [5]float64

// LogSimilarity returns the log likelihood of query under reference: the sum,
// over every query key, of its count times the log of the key's probability in
// reference. Keys reference never saw get probability 0.5/total.
func LogSimilarity[K cmp.Ordered](reference, query textmodel.Counts[K]) (float64, error) {
	total := reference.Total()
	if total == 0 {
		return 0, ErrEmptyReference
	}

	score := 0.0
	for _, k := range query.Keys() {
		seen := unseenWeight
		if n, ok := reference[k]; ok {
			seen = float64(n)
		}
		score += float64(query[k]) * math.Log(seen/float64(total))
	}
	return score, nil
}

// Scores compares every feature of query against the same feature of
// reference. Each score is rounded to three decimals.
func Scores(query, reference *textmodel.Model) (Vector, error) {
	var v Vector
	for i, f := range textmodel.Features {
		var (
			s   float64
			err error
		)
		if f.IntKeyed() {
			s, err = LogSimilarity(reference.IntCounts(f), query.IntCounts(f))
		} else {
			s, err = LogSimilarity(reference.StringCounts(f), query.StringCounts(f))
		}
		if err != nil {
			return Vector{}, fmt.Errorf("score %s against %s: %w", f, reference.Name, err)
		}
		v[i] = Round3(s)
	}
	return v, nil
}

func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func (v Vector) String() string {
	return fmt.Sprintf("[%s, %s, %s, %s, %s]", formatScore(v[0]), formatScore(v[1]), formatScore(v[2]), formatScore(v[3]), formatScore(v[4]))
}

func formatScore(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
