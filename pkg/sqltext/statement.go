// Package sqltext edits SQL statements as semi-structured text.
//
// It locates clause keywords (SELECT, FROM, WHERE, VALUES, ...) in raw
// statement text, splits the statement into a clause map, lets callers
// replace, append to, or remove from a clause, and flattens the result back
// into a single-line statement. Quoted literals and parenthesized spans are
// masked before keyword search, so a WHERE inside a sub-select or a string
// literal is never taken as a clause boundary.
//
// This is not a SQL parser: grammar, types, and semantics are never checked.
package sqltext

import (
	"strings"
)

// Statement is an immutable SQL statement (or clause fragment) text value.
// The zero value is the empty statement.
type Statement struct {
	text string
}

// Parse wraps text as a Statement without validating it.
func Parse(text string) Statement {
	return Statement{text: text}
}

// String returns the statement text.
func (s Statement) String() string { return s.text }

// Clauses returns the known clause keywords present in the statement,
// ordered by first occurrence.
func (s Statement) Clauses() []string {
	return ClausesPresent(s.text)
}

// ToDict splits the statement into a clause map.
func (s Statement) ToDict() (*ClauseMap, error) {
	return defaultEditor.ToDict(s)
}

// SetClause replaces clause with text, inserting the clause in its canonical
// position when the statement does not have it yet.
func (s Statement) SetClause(clause, text string) (Statement, error) {
	return defaultEditor.SetClause(s, clause, text)
}

// DeleteClause removes clause from the statement.
func (s Statement) DeleteClause(clause string) (Statement, error) {
	return defaultEditor.DeleteClause(s, clause)
}

// AppendToClause appends text to clause with implicit joining.
func (s Statement) AppendToClause(clause, text string) (Statement, error) {
	return defaultEditor.AppendToClause(s, clause, text, true)
}

// RemoveFromClause removes the first occurrence of substring from clause.
func (s Statement) RemoveFromClause(clause, substring string) (Statement, error) {
	return defaultEditor.RemoveFromClause(s, clause, substring)
}

// Replace returns a copy with every occurrence of old replaced by new.
func (s Statement) Replace(old, new string) Statement {
	return Statement{text: strings.ReplaceAll(s.text, old, new)}
}

// Concat returns the statement with more appended verbatim.
func (s Statement) Concat(more string) Statement {
	return Statement{text: s.text + more}
}

// Equal reports whether two statements are the same after whitespace
// normalization.
func (s Statement) Equal(other Statement) bool {
	return Normalize(s.text) == Normalize(other.text)
}

// Normalize collapses every run of whitespace to a single space and trims
// both ends.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
