package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewhickman/protox-sub000/ast"
)

func TestHandlerNilReporterCollectsAndReturnsErrInvalidSource(t *testing.T) {
	t.Parallel()
	h := NewHandler(nil)
	h.HandleDiagnostic(New(KindDuplicateName, ast.SourcePos{Filename: "a.proto", Line: 1, Col: 1}, "first"))
	h.HandleDiagnostic(New(KindDuplicateNumber, ast.SourcePos{Filename: "a.proto", Line: 2, Col: 1}, "second"))
	assert.ErrorIs(t, h.Error(), ErrInvalidSource)
}

func TestHandlerNoErrorsReturnsNil(t *testing.T) {
	t.Parallel()
	h := NewHandler(nil)
	assert.NoError(t, h.Error())
}

func TestHandlerAbortingReporterStopsEarly(t *testing.T) {
	t.Parallel()
	abortErr := errors.New("stop")
	var calls int
	rep := NewReporter(func(ErrorWithPos) error {
		calls++
		return abortErr
	}, nil)
	h := NewHandler(rep)

	err1 := h.HandleDiagnostic(New(KindDuplicateName, ast.SourcePos{}, "first"))
	assert.Equal(t, abortErr, err1)

	err2 := h.HandleDiagnostic(New(KindDuplicateName, ast.SourcePos{}, "second"))
	assert.Equal(t, abortErr, err2)

	assert.Equal(t, 1, calls, "reporter should not be invoked again once aborted")
	assert.Equal(t, abortErr, h.Error())
}

func TestCollectingReporterAccumulatesErrorsAndWarnings(t *testing.T) {
	t.Parallel()
	var c CollectingReporter
	h := NewHandler(&c)

	h.HandleDiagnostic(New(KindDuplicateName, ast.SourcePos{}, "dup"))
	h.HandleWarning(ast.SourcePos{Filename: "a.proto"}, errors.New("warn"))

	require.Len(t, c.Errors, 1)
	require.Len(t, c.Warnings, 1)
	assert.ErrorIs(t, h.Error(), ErrInvalidSource)
}

func TestDiagnosticErrorFormatsPositionAndMessage(t *testing.T) {
	t.Parallel()
	d := New(KindTypeNameNotFound, ast.SourcePos{Filename: "a.proto", Line: 3, Col: 5}, "%q not found", "Foo")
	assert.Equal(t, `a.proto:3:5: "Foo" not found`, d.Error())
	assert.Equal(t, ast.SourcePos{Filename: "a.proto", Line: 3, Col: 5}, d.GetPosition())
}

func TestDiagnosticWithRelatedDoesNotMutateOriginal(t *testing.T) {
	t.Parallel()
	d := New(KindDuplicateName, ast.SourcePos{Filename: "a.proto"}, "dup")
	d2 := d.WithRelated(ast.SourcePos{Filename: "a.proto", Line: 1, Col: 1}, "previous declaration here")

	assert.Empty(t, d.Related)
	require.Len(t, d2.Related, 1)
	assert.Equal(t, "previous declaration here", d2.Related[0].Message)
}

func TestErrorfWrapsUnderlyingError(t *testing.T) {
	t.Parallel()
	pos := ast.SourcePos{Filename: "a.proto", Line: 1, Col: 1}
	err := Errorf(pos, "bad thing: %d", 42)
	assert.Equal(t, pos, err.GetPosition())
	assert.Equal(t, "bad thing: 42", err.Unwrap().Error())
}

func TestSourcePosStringOmitsLineColWhenUnset(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a.proto", ast.UnknownPos("a.proto").String())
	assert.Equal(t, "a.proto:4:2", ast.SourcePos{Filename: "a.proto", Line: 4, Col: 2}.String())
}
