package sqltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOrder(t *testing.T) {
	m := NewClauseMap()
	m.Set("FROM", "t")
	m.Set("SELECT", "a")

	order, err := ResolveOrder(m, nil)
	require.NoError(t, err)
	assert.Equal(t, StatementOrder("SELECT"), order)

	explicit := []string{"FROM", "SELECT"}
	order, err = ResolveOrder(m, explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, order)
}

func TestResolveOrder_CanonicalOrderIsACopy(t *testing.T) {
	m := NewClauseMap()
	m.Set("SELECT", "a")
	m.Set("FROM", "t")

	order, err := ResolveOrder(m, nil)
	require.NoError(t, err)
	order[1] = "CHANGED"

	assert.Equal(t, []string{"SELECT", "FROM", "WHERE", "GROUP", "HAVING", "ORDER", "LIMIT", "OFFSET"}, StatementOrder("SELECT"))

	got, err := Parse("SELECT a FROM t").SetClause("WHERE", "x = 1")
	require.NoError(t, err)
	assert.Equal(t, "SELECT a FROM t WHERE x = 1", got.String())
}

func TestResolveOrder_AlphabeticalTieBreak(t *testing.T) {
	// A CREATE TRIGGER body carries DELETE too; CREATE sorts first.
	m := NewClauseMap()
	m.Set("DELETE", "")
	m.Set("CREATE", "TRIGGER")

	order, err := ResolveOrder(m, nil)
	require.NoError(t, err)
	assert.Equal(t, StatementOrder("CREATE"), order)
}

func TestResolveOrder_UnknownKind(t *testing.T) {
	m := NewClauseMap()
	m.Set("FROM", "t")
	m.Set("WHERE", "x = 1")

	_, err := ResolveOrder(m, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "unrecognized statement kind")
}

func TestFlatten(t *testing.T) {
	m := NewClauseMap()
	m.Set("JOIN", "u ON u.id = t.id")
	m.Set("WHERE", "  x = 1\n")
	m.Set("FROM", "t")
	m.Set("SELECT", "a")
	m.Set("EXTRA", "")

	got := Flatten(m, StatementOrder("SELECT"))
	assert.Equal(t, "SELECT a FROM t WHERE x = 1 JOIN u ON u.id = t.id EXTRA", got.String())
}

func TestFromDict_RoundTrip(t *testing.T) {
	inputs := []string{
		"SELECT name, MAX(height) FROM people GROUP BY height",
		nestedUpdate,
		"DELETE FROM the_queries WHERE sql_statement LIKE '%ALTER%' OR updated > datetime('now')",
		"SELECT 'FROM' AS f FROM t",
		"INSERT INTO people (name, height) VALUES ('ann', 170)",
		"SELECT a, b\n  FROM t\n WHERE x = 'WHERE'\n ORDER BY a\n LIMIT 10",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			stmt := Parse(input)
			m, err := stmt.ToDict()
			require.NoError(t, err)

			own, err := FromDict(m, stmt.Clauses())
			require.NoError(t, err)
			assert.Equal(t, Normalize(input), Normalize(own.String()))

			canonical, err := FromDict(m, nil)
			require.NoError(t, err)
			assert.True(t, canonical.Equal(stmt), "canonical order: %s", canonical)
		})
	}
}
