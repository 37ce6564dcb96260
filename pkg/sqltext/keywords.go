package sqltext

import (
	"regexp"
	"slices"
)

// statementOrders maps a statement kind to the canonical order of its clauses.
// Read-only after package initialization.
var statementOrders = map[string][]string{
	"ALTER":   {"ALTER", "TABLE", "RENAME", "ADD", "DROP"},
	"CREATE":  {"CREATE", "TABLE", "INDEX", "TRIGGER", "VIEW", "BEFORE", "AFTER", "INSTEAD", "DELETE", "INSERT", "UPDATE", "BEGIN", "USING"},
	"DELETE":  {"DELETE", "FROM", "WHERE", "ORDER", "LIMIT"},
	"DROP":    {"DROP", "TABLE", "INDEX", "TRIGGER", "VIEW"},
	"INSERT":  {"INSERT", "INTO", "VALUES"},
	"REPLACE": {"REPLACE", "INTO", "VALUES"},
	"SELECT":  {"SELECT", "FROM", "WHERE", "GROUP", "HAVING", "ORDER", "LIMIT", "OFFSET"},
	"UPDATE":  {"UPDATE", "SET", "WHERE", "ORDER", "LIMIT"},
}

// joinableClauses hold comma-separated lists.
var joinableClauses = map[string]bool{
	"SELECT": true,
	"SET":    true,
	"ORDER":  true,
}

// parentheticalClauses hold a parenthesized list that appends go inside of.
var parentheticalClauses = map[string]bool{
	"VALUES": true,
	"INSERT": true,
}

var (
	statementKinds []string
	knownClauses   []string
	knownPatterns  map[string]*regexp.Regexp
)

func init() {
	seen := make(map[string]bool)
	for kind, order := range statementOrders {
		statementKinds = append(statementKinds, kind)
		for _, kw := range order {
			if !seen[kw] {
				seen[kw] = true
				knownClauses = append(knownClauses, kw)
			}
		}
	}
	slices.Sort(statementKinds)
	slices.Sort(knownClauses)

	knownPatterns = make(map[string]*regexp.Regexp, len(knownClauses))
	for _, kw := range knownClauses {
		knownPatterns[kw] = compileWord(kw)
	}
}

// KnownClauses returns every clause keyword that appears in any statement
// order, sorted alphabetically.
func KnownClauses() []string {
	return slices.Clone(knownClauses)
}

// IsKnownClause reports whether keyword belongs to the clause vocabulary.
// Matching is case-exact.
func IsKnownClause(keyword string) bool {
	_, ok := knownPatterns[keyword]
	return ok
}

// StatementKinds returns the statement kinds that have a canonical clause
// order, sorted alphabetically.
func StatementKinds() []string {
	return slices.Clone(statementKinds)
}

// StatementOrder returns the canonical clause order for a statement kind,
// or nil if the kind is unknown.
func StatementOrder(kind string) []string {
	return slices.Clone(statementOrders[kind])
}

func compileWord(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
}

// wordPattern returns the whole-word matcher for keyword.
func wordPattern(keyword string) *regexp.Regexp {
	if re, ok := knownPatterns[keyword]; ok {
		return re
	}
	return compileWord(keyword)
}
