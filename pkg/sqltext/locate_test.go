package sqltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClausesPresent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"select", "SELECT name, MAX(height) FROM people GROUP BY height", []string{"SELECT", "FROM", "GROUP"}},
		{"nested_where_ignored", "UPDATE g SET s='x' WHERE s IN (SELECT v FROM c WHERE b=1)", []string{"UPDATE", "SET", "WHERE"}},
		{"keyword_in_literal", "DELETE FROM q WHERE s LIKE '%ALTER%'", []string{"DELETE", "FROM", "WHERE"}},
		{"whole_word_only", "SELECT offsets, fromage FROM t", []string{"SELECT", "FROM"}},
		{"case_exact", "select a from t", []string{}},
		{"insert", "INSERT INTO t (a) VALUES (1)", []string{"INSERT", "INTO", "VALUES"}},
		{"empty", "", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClausesPresent(tc.input))
		})
	}
}

func TestKnownClauses(t *testing.T) {
	known := KnownClauses()
	for _, kind := range StatementKinds() {
		for _, kw := range StatementOrder(kind) {
			assert.Contains(t, known, kw)
		}
	}
	assert.True(t, IsKnownClause("HAVING"))
	assert.False(t, IsKnownClause("having"))
	assert.False(t, IsKnownClause("JOIN"))

	// Callers get copies.
	known[0] = "MUTATED"
	assert.NotContains(t, KnownClauses(), "MUTATED")
}

func TestStatementKinds_Sorted(t *testing.T) {
	assert.Equal(t,
		[]string{"ALTER", "CREATE", "DELETE", "DROP", "INSERT", "REPLACE", "SELECT", "UPDATE"},
		StatementKinds())
	assert.Nil(t, StatementOrder("MERGE"))
}
