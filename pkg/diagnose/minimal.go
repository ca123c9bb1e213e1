package diagnose

import (
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// ReduceToMinimal collapses a family of candidate fault sets into an
// antichain: exact duplicates are dropped, candidates are processed in
// ascending size order, and a candidate is accepted only if no
// already-accepted set is a subset of it. Because acceptance goes smallest
// first, every accepted set is minimal and every rejected candidate is a
// superset of some accepted set.
func ReduceToMinimal(candidates []mapset.Set[string]) []mapset.Set[string] {
	// Deduplicate by the sorted-label form of each candidate.
	byKey := make(map[string]mapset.Set[string])
	keys := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		key := canonicalKey(candidate)
		if _, seen := byKey[key]; !seen {
			byKey[key] = candidate
			keys = append(keys, key)
		}
	}

	// Smallest first; ties broken by the canonical key so the output is
	// deterministic regardless of input order.
	sort.Slice(keys, func(i, j int) bool {
		a, b := byKey[keys[i]], byKey[keys[j]]
		if a.Cardinality() != b.Cardinality() {
			return a.Cardinality() < b.Cardinality()
		}
		return keys[i] < keys[j]
	})

	accepted := make([]mapset.Set[string], 0)
	for _, key := range keys {
		candidate := byKey[key]
		covered := false
		for _, kept := range accepted {
			if kept.IsSubset(candidate) {
				covered = true
				break
			}
		}
		if !covered {
			accepted = append(accepted, candidate)
		}
	}
	return accepted
}

// sortedLabels returns the set's labels in lexicographic order
func sortedLabels(s mapset.Set[string]) []string {
	labels := s.ToSlice()
	sort.Strings(labels)
	return labels
}

// SortedLabels returns the set's labels in lexicographic order, the
// normalized form diagnosis consumers print and compare.
func SortedLabels(s mapset.Set[string]) []string {
	return sortedLabels(s)
}

func canonicalKey(s mapset.Set[string]) string {
	return strings.Join(sortedLabels(s), "\x1f")
}
