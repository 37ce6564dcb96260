package sqltext

import (
	"cmp"
	"slices"
)

// ClausesPresent returns the known clause keywords occurring as whole words
// in the masked text, ordered by first occurrence.
func ClausesPresent(text string) []string {
	return locate(Mask(text), nil)
}

// locate finds the known keywords plus any extra keywords in masked text and
// sorts them by the index of their first whole-word occurrence.
func locate(masked string, extra []string) []string {
	type hit struct {
		keyword string
		pos     int
	}

	var hits []hit
	add := func(keyword string) {
		if loc := wordPattern(keyword).FindStringIndex(masked); loc != nil {
			hits = append(hits, hit{keyword: keyword, pos: loc[0]})
		}
	}
	for _, kw := range knownClauses {
		add(kw)
	}
	for _, kw := range extra {
		if kw == "" || IsKnownClause(kw) {
			continue
		}
		add(kw)
	}

	slices.SortStableFunc(hits, func(a, b hit) int { return cmp.Compare(a.pos, b.pos) })

	clauses := make([]string, len(hits))
	for i, h := range hits {
		clauses[i] = h.keyword
	}
	return clauses
}
