package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/parser"
	"github.com/andrewhickman/protox-sub000/report"
)

func lower(t *testing.T, src string) *File {
	t.Helper()
	h := report.NewHandler(nil)
	f := parser.Parse("test.proto", []byte(src), h)
	require.NoError(t, h.Error())
	return Lower(f, h)
}

func TestLowerDefaultsToProto2WithoutSyntaxStatement(t *testing.T) {
	t.Parallel()
	f := lower(t, `message Foo { optional int32 x = 1; }`)
	assert.Equal(t, ast.Proto2, f.Syntax)
}

func TestLowerGroupDesugarsToFieldAndNestedMessage(t *testing.T) {
	t.Parallel()
	f := lower(t, `
		syntax = "proto2";
		message Foo {
			optional group Bar = 1 {
				optional int32 x = 1;
			}
		}
	`)
	require.Len(t, f.Messages, 1)
	m := f.Messages[0]
	require.Len(t, m.Fields, 1)
	assert.Equal(t, FieldGroup, m.Fields[0].Kind)
	assert.Equal(t, "bar", m.Fields[0].Name)
	require.Len(t, m.NestedMessages, 1)
	assert.Equal(t, "Bar", m.NestedMessages[0].Name)
	require.Len(t, m.NestedMessages[0].Fields, 1)
}

func TestLowerMapDesugarsToRepeatedEntryField(t *testing.T) {
	t.Parallel()
	f := lower(t, `
		syntax = "proto3";
		message Foo {
			map<string, int32> counts = 1;
		}
	`)
	require.Len(t, f.Messages, 1)
	m := f.Messages[0]
	require.Len(t, m.Fields, 1)
	assert.Equal(t, "counts", m.Fields[0].Name)
	require.Len(t, m.NestedMessages, 1)
	entry := m.NestedMessages[0]
	assert.Equal(t, "CountsEntry", entry.Name)
	assert.True(t, entry.IsMapEntry)
	require.Len(t, entry.Fields, 2)
	assert.Equal(t, "key", entry.Fields[0].Name)
	assert.Equal(t, "value", entry.Fields[1].Name)
}

func TestLowerProto3ExplicitOptionalGetsSyntheticOneof(t *testing.T) {
	t.Parallel()
	f := lower(t, `
		syntax = "proto3";
		message Foo {
			optional int32 x = 1;
			oneof bar {
				int32 y = 2;
			}
		}
	`)
	require.Len(t, f.Messages, 1)
	m := f.Messages[0]
	require.Len(t, m.OneofDecls, 2)
	assert.Equal(t, "bar", m.OneofDecls[0].Name)
	assert.False(t, m.OneofDecls[0].Synthetic)
	assert.Equal(t, "_x", m.OneofDecls[1].Name)
	assert.True(t, m.OneofDecls[1].Synthetic)

	require.Len(t, m.Fields, 2)
	xField := m.Fields[0]
	assert.True(t, xField.Proto3Optional)
	assert.Equal(t, 1, xField.OneofIndex)
}

func TestLowerProto3ExplicitOptionalInUserOneofIsNotSynthesized(t *testing.T) {
	t.Parallel()
	f := lower(t, `
		syntax = "proto3";
		message Foo {
			oneof bar {
				optional int32 x = 1;
			}
		}
	`)
	m := f.Messages[0]
	require.Len(t, m.OneofDecls, 1)
	assert.False(t, m.Fields[0].Proto3Optional)
}

func TestLowerEnumValueOutOfInt32RangeReportsError(t *testing.T) {
	t.Parallel()
	h := report.NewHandler(nil)
	f := parser.Parse("test.proto", []byte(`
		syntax = "proto3";
		enum Extreme {
			ZERO = 0;
			TOO_BIG = 2147483648;
		}
	`), h)
	require.NoError(t, h.Error())
	Lower(f, h)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestLowerEnumValueAtInt32ExtremaIsAccepted(t *testing.T) {
	t.Parallel()
	h := report.NewHandler(nil)
	f := parser.Parse("test.proto", []byte(`
		syntax = "proto3";
		enum Extreme {
			ZERO = 0;
			MIN = -2147483648;
		}
	`), h)
	require.NoError(t, h.Error())
	out := Lower(f, h)
	require.NoError(t, h.Error())
	require.Len(t, out.Enums, 1)
	assert.Equal(t, int32(-2147483648), out.Enums[0].Values[1].Number)
}
