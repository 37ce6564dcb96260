package sqltext

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// ClauseMap maps clause keywords to their text. Keys are unique and iterate
// in insertion order; reconstruction order is supplied separately.
type ClauseMap struct {
	keys []string
	text map[string]string
}

// NewClauseMap returns an empty ClauseMap.
func NewClauseMap() *ClauseMap {
	return &ClauseMap{text: make(map[string]string)}
}

// Get returns the text stored for clause.
func (m *ClauseMap) Get(clause string) (string, bool) {
	if m == nil {
		return "", false
	}
	t, ok := m.text[clause]
	return t, ok
}

// Has reports whether clause is present.
func (m *ClauseMap) Has(clause string) bool {
	_, ok := m.Get(clause)
	return ok
}

// Set stores text for clause. An existing clause keeps its position.
func (m *ClauseMap) Set(clause, text string) {
	if m.text == nil {
		m.text = make(map[string]string)
	}
	if _, ok := m.text[clause]; !ok {
		m.keys = append(m.keys, clause)
	}
	m.text[clause] = text
}

// Delete removes clause and reports whether it was present.
func (m *ClauseMap) Delete(clause string) bool {
	if !m.Has(clause) {
		return false
	}
	delete(m.text, clause)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == clause })
	return true
}

// Keys returns the clause keywords in insertion order.
func (m *ClauseMap) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Len returns the number of clauses.
func (m *ClauseMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns an independent copy.
func (m *ClauseMap) Clone() *ClauseMap {
	c := NewClauseMap()
	for _, k := range m.Keys() {
		c.Set(k, m.text[k])
	}
	return c
}

// MarshalJSON encodes the map as a JSON object with keys in insertion order.
func (m *ClauseMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.text[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string values, keeping the key
// order of the document.
func (m *ClauseMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode clause map: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decode clause map: expected object, got %v", tok)
	}

	decoded := NewClauseMap()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode clause map: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decode clause map: unexpected key %v", tok)
		}
		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("decode clause %s: %w", key, err)
		}
		decoded.Set(key, text)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode clause map: %w", err)
	}

	*m = *decoded
	return nil
}
