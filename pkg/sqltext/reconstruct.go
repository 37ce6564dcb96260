package sqltext

import (
	"slices"
	"strings"
)

// ResolveOrder returns order if it is non-empty. Otherwise it scans the
// statement kinds alphabetically and returns a copy of the canonical order
// of the first kind that is a key of m.
func ResolveOrder(m *ClauseMap, order []string) ([]string, error) {
	if len(order) > 0 {
		return order, nil
	}
	for _, kind := range statementKinds {
		if m.Has(kind) {
			return slices.Clone(statementOrders[kind]), nil
		}
	}
	return nil, errParse("resolve order", "unrecognized statement kind")
}

// Flatten joins the clauses of m into statement text. Clauses sort by their
// position in order; clauses missing from order go last, in insertion order.
// Each keyword and text is trimmed, empty pieces are dropped, and the rest
// are joined with single spaces.
func Flatten(m *ClauseMap, order []string) Statement {
	rank := func(keyword string) int {
		if i := slices.Index(order, keyword); i >= 0 {
			return i
		}
		return len(order)
	}

	keys := m.Keys()
	slices.SortStableFunc(keys, func(a, b string) int { return rank(a) - rank(b) })

	parts := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		text, _ := m.Get(k)
		for _, p := range [2]string{k, text} {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
	}
	return Statement{text: strings.Join(parts, " ")}
}

// FromDict rebuilds a statement from m. A nil or empty order falls back to
// the canonical order of the statement kind found in m.
func FromDict(m *ClauseMap, order []string) (Statement, error) {
	resolved, err := ResolveOrder(m, order)
	if err != nil {
		return Statement{}, err
	}
	return Flatten(m, resolved), nil
}
