package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewhickman/protox-sub000/ir"
	"github.com/andrewhickman/protox-sub000/parser"
	"github.com/andrewhickman/protox-sub000/report"
)

func collect(t *testing.T, src string, imports map[string]*NameMap) (*NameMap, *report.Handler) {
	t.Helper()
	h := report.NewHandler(nil)
	astFile := parser.Parse("test.proto", []byte(src), h)
	require.NoError(t, h.Error())
	irFile := ir.Lower(astFile, h)
	names := CollectNames(irFile, imports, h)
	return names, h
}

func TestCollectNamesSingleFile(t *testing.T) {
	t.Parallel()
	names, h := collect(t, `
		syntax = "proto3";
		package foo.bar;
		message Outer {
			string name = 1;
			message Inner {}
		}
		enum Color {
			RED = 0;
			BLUE = 1;
		}
		service Greeter {
			rpc Hello(Outer) returns (Outer);
		}
	`, nil)
	require.NoError(t, h.Error())

	for _, fqn := range []string{
		"foo", "foo.bar",
		"foo.bar.Outer", "foo.bar.Outer.name", "foo.bar.Outer.Inner",
		"foo.bar.Color", "foo.bar.RED", "foo.bar.BLUE",
		"foo.bar.Greeter", "foo.bar.Greeter.Hello",
	} {
		_, ok := (*names)[fqn]
		assert.True(t, ok, "expected %q in name map", fqn)
	}
}

func TestCollectNamesDuplicateMessageNameReportsError(t *testing.T) {
	t.Parallel()
	_, h := collect(t, `
		syntax = "proto3";
		message Foo {}
		message Foo {}
	`, nil)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestCollectNamesDuplicateCamelCaseFieldName(t *testing.T) {
	t.Parallel()
	_, h := collect(t, `
		syntax = "proto3";
		message Foo {
			string my_field = 1;
			string myField = 2;
		}
	`, nil)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestCollectNamesEnumValuesLiveInEnclosingScope(t *testing.T) {
	t.Parallel()
	names, h := collect(t, `
		syntax = "proto2";
		enum Color {
			RED = 0;
		}
	`, nil)
	require.NoError(t, h.Error())
	_, hasQualified := (*names)["Color.RED"]
	assert.False(t, hasQualified)
	_, hasEnclosing := (*names)["RED"]
	assert.True(t, hasEnclosing)
}

func TestCollectNamesMergesPublicImport(t *testing.T) {
	t.Parallel()
	depNames := NameMap{
		"dep.Foo": {Kind: KindMessage, Public: true},
		"dep":     {Kind: KindPackage, Public: true},
	}
	names, h := collect(t, `
		syntax = "proto3";
		package main;
		import public "dep.proto";
	`, map[string]*NameMap{"dep.proto": &depNames})
	require.NoError(t, h.Error())
	entry, ok := (*names)["dep.Foo"]
	require.True(t, ok)
	assert.True(t, entry.Public)
}

func TestCollectNamesPlainImportReexportsAsNonPublic(t *testing.T) {
	t.Parallel()
	depNames := NameMap{
		"dep.Foo": {Kind: KindMessage, Public: true},
		"dep":     {Kind: KindPackage, Public: true},
	}
	names, h := collect(t, `
		syntax = "proto3";
		package main;
		import "dep.proto";
	`, map[string]*NameMap{"dep.proto": &depNames})
	require.NoError(t, h.Error())
	entry, ok := (*names)["dep.Foo"]
	require.True(t, ok)
	assert.False(t, entry.Public)
}

func TestCollectNamesUnresolvedImportIsSkipped(t *testing.T) {
	t.Parallel()
	names, h := collect(t, `
		syntax = "proto3";
		package main;
		import "missing.proto";
	`, nil)
	require.NoError(t, h.Error())
	assert.NotNil(t, names)
}
