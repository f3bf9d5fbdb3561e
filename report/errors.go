package report

import (
	"errors"
	"fmt"

	"github.com/andrewhickman/protox-sub000/ast"
)

// ErrInvalidSource is returned by the compiler when one or more errors were
// reported but the configured Reporter never itself returned a non-nil
// error (i.e. it chose to keep collecting diagnostics).
var ErrInvalidSource = errors.New("invalid proto source")

// ErrorWithPos is an error about a proto source file that carries the
// location that caused it, plus the unwrapped underlying error.
type ErrorWithPos interface {
	error
	GetPosition() ast.SourcePos
	Unwrap() error
}

// Related is an additional span called out by a Diagnostic: e.g. the
// previous declaration in a DuplicateName error, or the available ranges in
// an InvalidExtensionNumber error.
type Related struct {
	Pos     ast.SourcePos
	Message string
}

// Diagnostic is a structured error carrying a Kind, a primary position, and
// zero or more related positions.
type Diagnostic struct {
	Kind    Kind
	Pos     ast.SourcePos
	Message string
	Related []Related
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

func (d *Diagnostic) GetPosition() ast.SourcePos { return d.Pos }

func (d *Diagnostic) Unwrap() error { return errors.New(d.Message) }

// New builds a Diagnostic of the given kind at the given position.
func New(kind Kind, pos ast.SourcePos, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// WithRelated returns a copy of d with an additional related span attached.
func (d *Diagnostic) WithRelated(pos ast.SourcePos, format string, args ...interface{}) *Diagnostic {
	cp := *d
	cp.Related = append(append([]Related{}, d.Related...), Related{Pos: pos, Message: fmt.Sprintf(format, args...)})
	return &cp
}

// Error constructs a plain ErrorWithPos (no Kind) wrapping err, for lexer
// helpers that need to forward a lower-level error (e.g. strconv) into the
// reporting pipeline.
func Error(pos ast.SourcePos, err error) ErrorWithPos {
	return &genericError{pos: pos, err: err}
}

// Errorf is like Error, but builds the underlying error from a format string.
func Errorf(pos ast.SourcePos, format string, args ...interface{}) ErrorWithPos {
	return &genericError{pos: pos, err: fmt.Errorf(format, args...)}
}

type genericError struct {
	pos ast.SourcePos
	err error
}

func (e *genericError) Error() string            { return fmt.Sprintf("%s: %v", e.pos, e.err) }
func (e *genericError) GetPosition() ast.SourcePos { return e.pos }
func (e *genericError) Unwrap() error             { return e.err }

var (
	_ ErrorWithPos = (*Diagnostic)(nil)
	_ ErrorWithPos = (*genericError)(nil)
)
