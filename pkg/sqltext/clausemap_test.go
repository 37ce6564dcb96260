package sqltext

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClauseMap_InsertionOrder(t *testing.T) {
	m := NewClauseMap()
	m.Set("WHERE", "a = 1")
	m.Set("FROM", "t")
	m.Set("SELECT", "a")
	m.Set("WHERE", "a = 2")

	assert.Equal(t, []string{"WHERE", "FROM", "SELECT"}, m.Keys())
	got, ok := m.Get("WHERE")
	assert.True(t, ok)
	assert.Equal(t, "a = 2", got)

	assert.True(t, m.Delete("FROM"))
	assert.False(t, m.Delete("FROM"))
	assert.Equal(t, []string{"WHERE", "SELECT"}, m.Keys())
	assert.Equal(t, 2, m.Len())
}

func TestClauseMap_CloneIsIndependent(t *testing.T) {
	m := NewClauseMap()
	m.Set("SELECT", "a")
	c := m.Clone()
	c.Set("SELECT", "b")
	c.Set("FROM", "t")

	got, _ := m.Get("SELECT")
	assert.Equal(t, "a", got)
	assert.False(t, m.Has("FROM"))
}

func TestClauseMap_NilReceiver(t *testing.T) {
	var m *ClauseMap
	assert.False(t, m.Has("SELECT"))
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
}

func TestClauseMap_JSONKeepsOrder(t *testing.T) {
	m := NewClauseMap()
	m.Set("UPDATE", "t")
	m.Set("SET", `a = "x"`)
	m.Set("WHERE", "id = 1")

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"UPDATE":"t","SET":"a = \"x\"","WHERE":"id = 1"}`, string(data))

	var decoded ClauseMap
	require.NoError(t, json.Unmarshal([]byte(`{"WHERE":"id = 1","UPDATE":"t","SET":"a = 2"}`), &decoded))
	assert.Equal(t, []string{"WHERE", "UPDATE", "SET"}, decoded.Keys())
}

func TestClauseMap_JSONRejectsNonObject(t *testing.T) {
	var m ClauseMap
	assert.Error(t, json.Unmarshal([]byte(`["SELECT"]`), &m))
	assert.Error(t, json.Unmarshal([]byte(`{"SELECT": 1}`), &m))
}

func TestToDict_OccurrenceOrder(t *testing.T) {
	m, err := Parse("SELECT a FROM t WHERE x = 1 LIMIT 3").ToDict()
	require.NoError(t, err)
	assert.Equal(t, []string{"SELECT", "FROM", "WHERE", "LIMIT"}, m.Keys())
}
