package report

import (
	"sync"

	"github.com/andrewhickman/protox-sub000/ast"
)

// ErrorReporter is called for every reported error. Returning a non-nil
// error aborts the operation with that error; returning nil lets the
// calling stage keep collecting diagnostics. Every stage (lexer, parser,
// resolver, generator) is built to recover from its own errors this way.
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is called for every reported warning. Warnings never
// abort an operation.
type WarningReporter func(ErrorWithPos)

// Reporter handles both errors and warnings for one compilation.
type Reporter interface {
	Error(ErrorWithPos) error
	Warning(ErrorWithPos)
}

// NewReporter builds a Reporter from plain functions.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// CollectingReporter is a Reporter that never aborts (Error always returns
// nil) and accumulates everything it sees. This is what a caller that wants
// every error in a file, rather than just the first, should pass in.
type CollectingReporter struct {
	mu       sync.Mutex
	Errors   []ErrorWithPos
	Warnings []ErrorWithPos
}

func (c *CollectingReporter) Error(err ErrorWithPos) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Errors = append(c.Errors, err)
	return nil
}

func (c *CollectingReporter) Warning(err ErrorWithPos) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Warnings = append(c.Warnings, err)
}

// Handler is used by every compilation stage to report errors and warnings
// through a configured Reporter, and to track whether the stage should stop
// (because the Reporter aborted) or keep going.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	err          error
}

// NewHandler creates a Handler that reports through rep. A nil Reporter
// defaults to a fresh CollectingReporter, so by default a Handler never
// aborts early: it keeps collecting diagnostics for the rest of the stage
// and Error reports ErrInvalidSource at the end if anything was reported.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = &CollectingReporter{}
	}
	return &Handler{reporter: rep}
}

// HandleErrorf reports an error built from a format string at pos.
func (h *Handler) HandleErrorf(pos ast.SourcePos, format string, args ...interface{}) error {
	return h.HandleError(Errorf(pos, format, args...))
}

// HandleDiagnostic reports a structured Diagnostic.
func (h *Handler) HandleDiagnostic(d *Diagnostic) error {
	return h.HandleError(d)
}

// HandleError reports err (if it carries position info) and returns
// whatever the underlying Reporter decided. Once the Reporter has aborted
// once, every subsequent call returns that same error without reporting
// anything further.
func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	if ewp, ok := err.(ErrorWithPos); ok {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

// HandleWarning reports a warning with the given position.
func (h *Handler) HandleWarning(pos ast.SourcePos, err error) {
	h.reporter.Warning(Error(pos, err))
}

// HandleWarningDiagnostic reports a structured warning Diagnostic.
func (h *Handler) HandleWarningDiagnostic(d *Diagnostic) {
	h.reporter.Warning(d)
}

// Error returns the terminal result of this handler: nil if no errors were
// reported, ErrInvalidSource if errors were reported but the Reporter never
// itself aborted, or the Reporter's own abort error.
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}

// ReporterError returns the error the configured Reporter returned, if any,
// regardless of whether any errors were reported at all.
func (h *Handler) ReporterError() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}
