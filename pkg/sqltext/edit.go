package sqltext

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"
)

// Mode controls which keywords an Editor accepts as edit targets.
type Mode int

const (
	// ModeStrict only operates on known clauses found in the statement.
	ModeStrict Mode = iota
	// ModeLenient also registers the target keyword as a clause boundary
	// when it occurs as a whole word outside literals and parentheses,
	// even if it is not part of the known vocabulary (JOIN, ON, ...).
	ModeLenient
)

func (m Mode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModeLenient:
		return "lenient"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts "strict" or "lenient" (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return ModeStrict, nil
	case "lenient":
		return ModeLenient, nil
	default:
		return ModeStrict, fmt.Errorf("unknown mode %q: use 'strict' or 'lenient'", s)
	}
}

// Editor applies clause edits to statements. It holds no mutable state and
// is safe for concurrent use.
type Editor struct {
	mode   Mode
	logger *slog.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithMode sets the clause-target mode. The default is ModeStrict.
func WithMode(mode Mode) Option {
	return func(e *Editor) { e.mode = mode }
}

// WithLogger sets the logger used for debug tracing of splits and
// reconstruction. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEditor returns an Editor configured by opts.
func NewEditor(opts ...Option) *Editor {
	e := &Editor{mode: ModeStrict, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEditor = NewEditor()

// Mode returns the editor's mode.
func (e *Editor) Mode() Mode { return e.mode }

// ToDict splits stmt into a clause map keyed by the clauses present.
func (e *Editor) ToDict(stmt Statement) (*ClauseMap, error) {
	return e.toDict(stmt.text, e.clauses(stmt.text, ""))
}

// SetClause overwrites clause with text. An existing clause keeps its
// place; a new clause is inserted according to the canonical order of the
// statement kind.
func (e *Editor) SetClause(stmt Statement, clause, text string) (Statement, error) {
	clauses := e.clauses(stmt.text, clause)
	m, err := e.toDict(stmt.text, clauses)
	if err != nil {
		return Statement{}, err
	}

	var order []string
	if m.Has(clause) {
		order = clauses
	}
	m.Set(clause, text)
	return e.fromDict(m, order)
}

// DeleteClause removes clause. It fails with a ClauseNotFoundError if the
// statement does not have it.
func (e *Editor) DeleteClause(stmt Statement, clause string) (Statement, error) {
	clauses := e.clauses(stmt.text, clause)
	m, err := e.toDict(stmt.text, clauses)
	if err != nil {
		return Statement{}, err
	}
	if !m.Delete(clause) {
		return Statement{}, &ClauseNotFoundError{Clause: clause}
	}
	return e.fromDict(m, clauses)
}

// AppendToClause appends text to clause. With implicitJoin, a
// parenthetical clause (VALUES, INSERT) keeps its closing parenthesis at the
// end, list clauses (SELECT, SET, ORDER and the parenthetical ones) get a
// comma separator, and other clauses get a single space.
func (e *Editor) AppendToClause(stmt Statement, clause, text string, implicitJoin bool) (Statement, error) {
	clauses := e.clauses(stmt.text, clause)
	m, err := e.toDict(stmt.text, clauses)
	if err != nil {
		return Statement{}, err
	}
	current, ok := m.Get(clause)
	if !ok {
		return Statement{}, &ClauseNotFoundError{Clause: clause}
	}

	if implicitJoin && strings.TrimSpace(text) != "" {
		current, text = joinClauseText(clause, current, text)
	}
	m.Set(clause, current+text)
	return e.fromDict(m, clauses)
}

func joinClauseText(clause, current, text string) (string, string) {
	if parentheticalClauses[clause] && strings.HasSuffix(current, ")") && !strings.HasSuffix(text, ")") {
		current = current[:len(current)-1]
		text += ")"
	}

	if parentheticalClauses[clause] || joinableClauses[clause] {
		head := strings.TrimRightFunc(current, unicode.IsSpace)
		if head != "" && !strings.HasSuffix(head, ",") && !strings.HasPrefix(text, ",") {
			text = ", " + text
		}
		return current, text
	}

	if !strings.HasSuffix(current, " ") {
		text = " " + strings.TrimLeftFunc(text, unicode.IsSpace)
	}
	return current, text
}

var (
	repeatedCommas   = regexp.MustCompile(`,(\s*,)+`)
	repeatedSpace    = regexp.MustCompile(`\s{2,}`)
	danglingTrailing = regexp.MustCompile(`,\s*$`)
	danglingLeading  = regexp.MustCompile(`^\s*,`)
)

// RemoveFromClause deletes the first occurrence of substring from clause,
// comparing both with whitespace normalized, then cleans up separators the
// removal left behind. A substring that is empty or all whitespace is not a
// no-op: it fails with a SubstringNotFoundError like any missing substring.
func (e *Editor) RemoveFromClause(stmt Statement, clause, substring string) (Statement, error) {
	clauses := e.clauses(stmt.text, clause)
	m, err := e.toDict(stmt.text, clauses)
	if err != nil {
		return Statement{}, err
	}
	current, ok := m.Get(clause)
	if !ok {
		return Statement{}, &ClauseNotFoundError{Clause: clause}
	}

	current = Normalize(current)
	substring = Normalize(substring)
	if substring == "" || !strings.Contains(current, substring) {
		return Statement{}, &SubstringNotFoundError{Clause: clause, Substring: substring}
	}

	text := strings.Replace(current, substring, "", 1)
	text = repeatedCommas.ReplaceAllString(text, ",")
	text = repeatedSpace.ReplaceAllString(text, " ")
	text = danglingTrailing.ReplaceAllString(text, "")
	text = danglingLeading.ReplaceAllString(text, "")

	m.Set(clause, text)
	return e.fromDict(m, clauses)
}

// clauses returns the clause keywords of text in order of occurrence. In
// lenient mode target is included when it occurs in the masked text.
func (e *Editor) clauses(text, target string) []string {
	masked := Mask(text)
	var extra []string
	if e.mode == ModeLenient && target != "" && !IsKnownClause(target) {
		extra = []string{target}
	}
	clauses := locate(masked, extra)
	e.logger.Debug("located clauses", "clauses", clauses, "mode", e.mode.String())
	return clauses
}

// toDict peels clauses off the end of text, last-occurring first, and
// returns them keyed in order of occurrence. Whatever precedes the first
// clause is discarded.
func (e *Editor) toDict(text string, clauses []string) (*ClauseMap, error) {
	bodies := make([]string, len(clauses))
	rest := text
	for i := len(clauses) - 1; i >= 0; i-- {
		keyword := clauses[i]
		prefix, body, retries, err := splitBalanced(keyword, rest)
		if err != nil {
			return nil, fmt.Errorf("could not convert to dict: %w", err)
		}
		if retries > 0 {
			e.logger.Debug("re-absorbed false clause splits", "clause", keyword, "retries", retries)
		}
		bodies[i] = strings.TrimSpace(body)
		rest = prefix
	}

	m := NewClauseMap()
	for i, keyword := range clauses {
		m.Set(keyword, bodies[i])
	}
	return m, nil
}

func (e *Editor) fromDict(m *ClauseMap, order []string) (Statement, error) {
	resolved, err := ResolveOrder(m, order)
	if err != nil {
		return Statement{}, err
	}
	if len(order) == 0 {
		e.logger.Debug("using canonical clause order", "order", resolved)
	}
	return Flatten(m, resolved), nil
}
