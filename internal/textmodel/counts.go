package textmodel

import (
	"cmp"
	"maps"
	"slices"
)

// Counts maps a feature value to the number of times it was seen. A missing
// key means zero; stored counts are always at least 1.
type Counts[K cmp.Ordered] map[K]int

func (c Counts[K]) Add(k K) {
	c[k]++
}

func (c Counts[K]) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Keys returns the keys in ascending order.
func (c Counts[K]) Keys() []K {
	return slices.Sorted(maps.Keys(c))
}

func (c Counts[K]) Clone() Counts[K] {
	out := make(Counts[K], len(c))
	maps.Copy(out, c)
	return out
}
