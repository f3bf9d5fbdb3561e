package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/report"
)

func parseOK(t *testing.T, src string) *ast.File {
	t.Helper()
	h := report.NewHandler(nil)
	f := Parse("test.proto", []byte(src), h)
	require.NoError(t, h.Error())
	return f
}

func TestEmptyFile(t *testing.T) {
	t.Parallel()
	f := parseOK(t, "")
	assert.Equal(t, "test.proto", f.Name)
	assert.False(t, f.HasSyntax)
	assert.Empty(t, f.Elements)
}

func TestSyntaxDeclaration(t *testing.T) {
	t.Parallel()
	f := parseOK(t, `syntax = "proto3";`)
	assert.True(t, f.HasSyntax)
	assert.Equal(t, ast.Proto3, f.Syntax)
}

func TestUnknownSyntaxReportsDiagnostic(t *testing.T) {
	t.Parallel()
	h := report.NewHandler(nil)
	Parse("test.proto", []byte(`syntax = "proto4";`), h)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestPackageAndImports(t *testing.T) {
	t.Parallel()
	f := parseOK(t, `
		syntax = "proto3";
		package foo.bar;
		import "other.proto";
		import public "pub.proto";
		import weak "weak.proto";
	`)
	require.NotNil(t, f.Package)
	assert.Equal(t, "foo.bar", f.Package.Name.String())
	require.Len(t, f.Imports, 3)
	assert.Equal(t, "other.proto", f.Imports[0].Path)
	assert.Equal(t, ast.ImportPublic, f.Imports[1].Qualifier)
	assert.Equal(t, ast.ImportWeak, f.Imports[2].Qualifier)
}

func TestSimpleMessage(t *testing.T) {
	t.Parallel()
	f := parseOK(t, `
		syntax = "proto3";
		message Foo {
			string name = 1;
			repeated int32 values = 2;
		}
	`)
	msgs := f.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "Foo", msgs[0].Name.Name)
	require.Len(t, msgs[0].Elements, 2)
}

func TestGroupFieldRequiresCapitalizedName(t *testing.T) {
	t.Parallel()
	h := report.NewHandler(nil)
	Parse("test.proto", []byte(`
		syntax = "proto2";
		message Foo {
			optional group lowercase = 1 { optional int32 x = 1; }
		}
	`), h)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestOneofMustNotBeEmpty(t *testing.T) {
	t.Parallel()
	h := report.NewHandler(nil)
	Parse("test.proto", []byte(`
		syntax = "proto3";
		message Foo {
			oneof bar {
			}
		}
	`), h)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestEnumWithNegativeValue(t *testing.T) {
	t.Parallel()
	f := parseOK(t, `
		syntax = "proto2";
		enum Foo {
			A = -1;
			B = 0;
		}
	`)
	enums := f.Enums()
	require.Len(t, enums, 1)
	require.Len(t, enums[0].Values, 2)
	assert.Equal(t, int64(-1), enums[0].Values[0].Number.Int64())
}

func TestServiceWithStreamingMethod(t *testing.T) {
	t.Parallel()
	f := parseOK(t, `
		syntax = "proto3";
		service Greeter {
			rpc Chat(stream Req) returns (stream Resp);
		}
	`)
	svcs := f.Services()
	require.Len(t, svcs, 1)
	require.Len(t, svcs[0].Methods, 1)
	m := svcs[0].Methods[0]
	assert.True(t, m.InputStreaming)
	assert.True(t, m.OutputStreaming)
}

func TestOptionWithAggregateValue(t *testing.T) {
	t.Parallel()
	f := parseOK(t, `
		syntax = "proto3";
		option (my_option) = {
			name: "foo"
			values: [1, 2, 3]
		};
	`)
	require.Len(t, f.Options, 1)
	opt := f.Options[0]
	assert.Equal(t, ast.ValueAggregate, opt.Value.Kind)
	require.Len(t, opt.Value.Aggregate, 2)
}

func TestUnterminatedStringReportsDiagnostic(t *testing.T) {
	t.Parallel()
	h := report.NewHandler(nil)
	Parse("test.proto", []byte("option foo = \"bar\n;"), h)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestStringEscapes(t *testing.T) {
	t.Parallel()
	f := parseOK(t, `option foo = "a\tb\x41\101";`)
	require.Len(t, f.Options, 1)
	assert.Equal(t, "a\tbAA", string(f.Options[0].Value.Str.Value))
}
