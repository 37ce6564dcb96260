package sqltext

import (
	"errors"
	"fmt"
)

// Sentinel values for errors.Is checks against the typed errors below.
var (
	ErrParse             = errors.New("sqltext: parse error")
	ErrClauseNotFound    = errors.New("sqltext: clause not found")
	ErrSubstringNotFound = errors.New("sqltext: substring not found")
)

// ParseError indicates statement text that could not be split into clauses,
// or a clause map whose statement kind could not be resolved.
type ParseError struct {
	Op      string // operation that failed, e.g. "split WHERE"
	Message string
}

func (e *ParseError) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return e.Op + ": " + e.Message
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ClauseNotFoundError indicates an edit targeting a clause the statement does not have.
type ClauseNotFoundError struct {
	Clause string
}

func (e *ClauseNotFoundError) Error() string {
	return fmt.Sprintf("clause %q not found", e.Clause)
}

// Is reports whether target is ErrClauseNotFound.
func (e *ClauseNotFoundError) Is(target error) bool { return target == ErrClauseNotFound }

// SubstringNotFoundError indicates a removal whose substring is absent from the clause text.
type SubstringNotFoundError struct {
	Clause    string
	Substring string
}

func (e *SubstringNotFoundError) Error() string {
	return fmt.Sprintf("substring %q not found in clause %q", e.Substring, e.Clause)
}

// Is reports whether target is ErrSubstringNotFound.
func (e *SubstringNotFoundError) Is(target error) bool { return target == ErrSubstringNotFound }

func errParse(op, format string, args ...interface{}) *ParseError {
	return &ParseError{Op: op, Message: fmt.Sprintf(format, args...)}
}
