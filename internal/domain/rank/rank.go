// Package rank assigns dense ranks to scored entities and computes movement
// against a reference ranking.
package rank

import "sort"

// Entry is one ranked entity.
type Entry struct {
	// Index is the entity's position in the input slice.
	Index int
	Score float64
	// Rank is the dense rank by score descending (1,2,2,3,...).
	Rank int
	// Delta is referenceRank - Rank. Positive means the entity moved up
	// relative to the reference. Zero when the reference rank is missing.
	Delta int
}

const scoreEpsilon = 1e-9

// Dense ranks scores descending and returns entries ordered best-first.
// Ties share a rank (dense ranking) and are ordered by input position.
// reference[i] holds the external rank for input i; values < 1 are treated
// as missing. A nil reference skips delta computation.
func Dense(scores []float64, reference []int) []Entry {
	entries := make([]Entry, len(scores))
	for i, s := range scores {
		entries[i] = Entry{Index: i, Score: s}
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Score > entries[b].Score
	})

	current := 0
	for i := range entries {
		if i == 0 || entries[i-1].Score-entries[i].Score > scoreEpsilon {
			current++
		}
		entries[i].Rank = current
		if reference != nil {
			if ref := reference[entries[i].Index]; ref >= 1 {
				entries[i].Delta = ref - entries[i].Rank
			}
		}
	}
	return entries
}

// ByIndex reindexes ranked entries back to input order.
func ByIndex(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for _, e := range entries {
		out[e.Index] = e
	}
	return out
}
