// Package editscript applies declarative, YAML-defined clause edits to SQL
// statements and files.
package editscript

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"sqltext/pkg/sqltext"
)

// Op names a clause edit operation.
type Op string

// Supported edit operations.
const (
	OpSet    Op = "set"
	OpDelete Op = "delete"
	OpAppend Op = "append"
	OpRemove Op = "remove"
)

// Edit is a single clause edit.
type Edit struct {
	Op           Op     `yaml:"op"`
	Clause       string `yaml:"clause"`
	Text         string `yaml:"text,omitempty"`
	ImplicitJoin *bool  `yaml:"implicit-join,omitempty"` // append only; default true
}

// Script is an ordered list of edits with an optional mode override.
type Script struct {
	Mode  string `yaml:"mode,omitempty"`
	Edits []Edit `yaml:"edits"`
}

// Parse decodes and validates a YAML edit script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse edit script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the edit script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		return nil, fmt.Errorf("read edit script: %w", err)
	}
	return Parse(data)
}

// Validate checks that every edit names a known operation and a clause,
// and that operations needing text have it.
func (s *Script) Validate() error {
	if s.Mode != "" {
		if _, err := sqltext.ParseMode(s.Mode); err != nil {
			return fmt.Errorf("edit script: %w", err)
		}
	}
	if len(s.Edits) == 0 {
		return fmt.Errorf("edit script: no edits")
	}
	for i, e := range s.Edits {
		if strings.TrimSpace(e.Clause) == "" {
			return fmt.Errorf("edit %d: clause is required", i)
		}
		switch e.Op {
		case OpDelete:
		case OpSet, OpAppend, OpRemove:
			if strings.TrimSpace(e.Text) == "" {
				return fmt.Errorf("edit %d: %s requires text", i, e.Op)
			}
		default:
			return fmt.Errorf("edit %d: unknown op %q", i, e.Op)
		}
		if e.ImplicitJoin != nil && e.Op != OpAppend {
			return fmt.Errorf("edit %d: implicit-join only applies to append", i)
		}
	}
	return nil
}

// ResolveMode returns the script's mode, or fallback when it sets none.
func (s *Script) ResolveMode(fallback sqltext.Mode) sqltext.Mode {
	if s.Mode == "" {
		return fallback
	}
	mode, err := sqltext.ParseMode(s.Mode)
	if err != nil {
		return fallback
	}
	return mode
}

// Apply runs the edits in order against stmt. The first failing edit aborts
// and its index is reported in the error.
func (s *Script) Apply(e *sqltext.Editor, stmt sqltext.Statement) (sqltext.Statement, error) {
	for i, edit := range s.Edits {
		var err error
		stmt, err = applyEdit(e, stmt, edit)
		if err != nil {
			return sqltext.Statement{}, fmt.Errorf("edit %d (%s %s): %w", i, edit.Op, edit.Clause, err)
		}
	}
	return stmt, nil
}

func applyEdit(e *sqltext.Editor, stmt sqltext.Statement, edit Edit) (sqltext.Statement, error) {
	switch edit.Op {
	case OpSet:
		return e.SetClause(stmt, edit.Clause, edit.Text)
	case OpDelete:
		return e.DeleteClause(stmt, edit.Clause)
	case OpAppend:
		implicit := edit.ImplicitJoin == nil || *edit.ImplicitJoin
		return e.AppendToClause(stmt, edit.Clause, edit.Text, implicit)
	case OpRemove:
		return e.RemoveFromClause(stmt, edit.Clause, edit.Text)
	default:
		return sqltext.Statement{}, fmt.Errorf("unknown op %q", edit.Op)
	}
}
