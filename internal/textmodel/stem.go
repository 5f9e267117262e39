package textmodel

import "strings"

type rule struct {
	match func(s string) bool
	apply func(s string) string
}

func hasSuffix(suffixes ...string) func(string) bool {
	return func(s string) bool {
		for _, suf := range suffixes {
			if strings.HasSuffix(s, suf) {
				return true
			}
		}
		return false
	}
}

func hasPrefix(prefixes ...string) func(string) bool {
	return func(s string) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(s, p) {
				return true
			}
		}
		return false
	}
}

func dropSuffix(n int) func(string) string {
	return func(s string) string { return s[:len(s)-n] }
}

func dropPrefix(n int) func(string) string {
	return func(s string) string { return s[n:] }
}

// Suffixes are tried longest first. All suffixes are ASCII, so byte slicing
// stays on rune boundaries.
var suffixRules = []rule{
	{hasSuffix("able", "ible", "tion", "ment", "ness", "less"), dropSuffix(4)},
	{hasSuffix("ing", "ful", "ary", "ity", "ise", "ize"), dropSuffix(3)},
	{hasSuffix("es", "ed", "er", "ly", "ic", "al"), dropSuffix(2)},
	{hasSuffix("s"), dropSuffix(1)},
}

var prefixRules = []rule{
	{func(s string) bool { return strings.HasPrefix(s, "under") && runeLen(s) > 5 }, dropPrefix(5)},
	{hasPrefix("trans", "super", "multi"), dropPrefix(5)},
	{hasPrefix("anti", "auto"), dropPrefix(4)},
	{func(s string) bool { return strings.HasPrefix(s, "un") && !strings.HasPrefix(s, "under") }, dropPrefix(2)},
	{hasPrefix("re"), dropPrefix(2)},
}

var repairRules = []rule{
	// taking -> tak -> take
	{hasSuffix("at", "is", "ur", "ad", "ag", "ak", "ac", "go", "be", "id", "gl", "az", "v"), func(s string) string { return s + "e" }},
	// beginning -> beginn -> begin
	{func(s string) bool {
		r := []rune(s)
		n := len(r)
		return n > 1 && r[n-1] == r[n-2] && r[n-1] != 'z'
	}, func(s string) string {
		r := []rune(s)
		return string(r[:len(r)-1])
	}},
	// parties -> parti -> party
	{func(s string) bool { return runeLen(s) > 1 && strings.HasSuffix(s, "i") }, func(s string) string { return s[:len(s)-1] + "y" }},
}

func firstMatch(rules []rule, s string) string {
	for _, r := range rules {
		if r.match(s) {
			return r.apply(s)
		}
	}
	return s
}

// Stem reduces word to an approximate root: one suffix strip, one prefix
// strip, then one orthographic repair. Each stage applies at most one rule.
// Short words may collapse to an empty stem ("s" -> "").
func Stem(word string) string {
	s := firstMatch(suffixRules, word)
	s = firstMatch(prefixRules, s)
	return firstMatch(repairRules, s)
}

func runeLen(s string) int {
	return len([]rune(s))
}
