package similarity

import (
	"fmt"
	"io"

	"stylometer/internal/textmodel"
)

// Candidate is one possible source together with how the unknown text scored
// against it.
type Candidate struct {
	Name   string `json:"name"`
	Scores Vector `json:"scores"`
	Votes  int    `json:"votes"`
}

type Result struct {
	Unknown    string       `json:"unknown"`
	Candidates [2]Candidate `json:"candidates"`
	Winner     string       `json:"winner"`
}

// Vote awards each feature position to the candidate with the strictly higher
// score. Equal scores go to b.
func Vote(a, b Vector) (votesA, votesB int) {
	for i := range a {
		if a[i] > b[i] {
			votesA++
		} else {
			votesB++
		}
	}
	return votesA, votesB
}

// Classify decides which of source1 and source2 more likely produced unknown.
// source1 wins only with strictly more votes.
func Classify(unknown, source1, source2 *textmodel.Model) (Result, error) {
	scores1, err := Scores(unknown, source1)
	if err != nil {
		return Result{}, err
	}
	scores2, err := Scores(unknown, source2)
	if err != nil {
		return Result{}, err
	}
	return decide(unknown.Name, source1.Name, source2.Name, scores1, scores2), nil
}

func decide(unknown, name1, name2 string, scores1, scores2 Vector) Result {
	votes1, votes2 := Vote(scores1, scores2)
	winner := name2
	if votes1 > votes2 {
		winner = name1
	}
	return Result{
		Unknown: unknown,
		Candidates: [2]Candidate{
			{Name: name1, Scores: scores1, Votes: votes1},
			{Name: name2, Scores: scores2, Votes: votes2},
		},
		Winner: winner,
	}
}

// Report writes the score vectors and the verdict as plain text.
func (r Result) Report(w io.Writer) error {
	for _, c := range r.Candidates {
		if _, err := fmt.Fprintf(w, "scores for %s: %s\n", c.Name, c.Scores); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s is more likely to have come from %s\n", r.Unknown, r.Winner)
	return err
}
