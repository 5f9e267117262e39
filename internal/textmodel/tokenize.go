package textmodel

import "strings"

// stripped holds every character CleanText deletes outright. They are removed,
// not replaced with a space, so "well-known" becomes "wellknown".
var stripped = strings.NewReplacer(
	".", "",
	"?", "",
	"!", "",
	`"`, "",
	";", "",
	":", "",
	",", "",
	"-", "",
)

var sentenceMarks = strings.NewReplacer("?", ".", "!", ".")

// CleanText returns the words of text after punctuation removal and lowercasing.
func CleanText(text string) []string {
	return strings.Fields(strings.ToLower(stripped.Replace(text)))
}

// SentenceSplit returns the word count of every non-empty sentence in text and
// the number of fragments that held no words at all. Sentences end at '.', '?'
// or '!'; words are counted on the raw fragment, before punctuation removal.
func SentenceSplit(text string) (lengths []int, empty int) {
	fragments := strings.Split(sentenceMarks.Replace(text), ".")
	lengths = make([]int, 0, len(fragments))
	for _, frag := range fragments {
		n := len(strings.Fields(frag))
		if n == 0 {
			empty++
			continue
		}
		lengths = append(lengths, n)
	}
	return lengths, empty
}

func SentenceLengths(text string) []int {
	lengths, _ := SentenceSplit(text)
	return lengths
}
