package stats

import (
	"sort"
)

// Count is the number of records sharing one key value
type Count[K comparable] struct {
	Key   K
	Count int
}

// CountBy counts records per distinct key, sorted by count descending.
// Ties keep the order in which keys first appeared.
func CountBy[T any, K comparable](items []T, key func(T) K) []Count[K] {
	index := make(map[K]int)
	counts := make([]Count[K], 0)
	for _, it := range items {
		k := key(it)
		if i, ok := index[k]; ok {
			counts[i].Count++
			continue
		}
		index[k] = len(counts)
		counts = append(counts, Count[K]{Key: k, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// TopN returns the first n entries of a sorted count list. n <= 0 means all.
func TopN[K comparable](counts []Count[K], n int) []Count[K] {
	if n <= 0 || n >= len(counts) {
		return counts
	}
	return counts[:n]
}
