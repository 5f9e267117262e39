package textmodel

// commonWords is the closed set of function words tracked by the CommonWords
// feature. "I" is kept upper-case, so it never matches a cleaned token.
var commonWords = map[string]struct{}{
	"the": {}, "be": {}, "to": {}, "of": {}, "and": {}, "a": {},
	"in": {}, "that": {}, "have": {}, "I": {}, "it": {}, "for": {},
	"not": {}, "on": {}, "with": {}, "he": {}, "as": {}, "you": {},
	"do": {}, "at": {}, "this": {}, "but": {}, "his": {}, "by": {},
	"from": {}, "they": {}, "we": {}, "say": {}, "her": {}, "she": {},
}

func IsCommonWord(w string) bool {
	_, ok := commonWords[w]
	return ok
}

// CommonWordCount reports the size of the common word list.
func CommonWordCount() int {
	return len(commonWords)
}
