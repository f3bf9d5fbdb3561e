package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/andrewhickman/protox-sub000/ir"
	"github.com/andrewhickman/protox-sub000/parser"
	"github.com/andrewhickman/protox-sub000/report"
)

func generate(t *testing.T, src string, includeSourceInfo bool) (*descriptorpb.FileDescriptorProto, *report.Handler) {
	t.Helper()
	h := report.NewHandler(nil)
	astFile := parser.Parse("test.proto", []byte(src), h)
	require.NoError(t, h.Error())
	irFile := ir.Lower(astFile, h)
	names := CollectNames(irFile, nil, h)
	require.NoError(t, h.Error())
	fd := GenerateFile(irFile, names, h, includeSourceInfo)
	return fd, h
}

func TestGenerateSimpleMessage(t *testing.T) {
	t.Parallel()
	fd, h := generate(t, `
		syntax = "proto3";
		package foo;
		message Greeting {
			string text = 1;
		}
	`, false)
	require.NoError(t, h.Error())
	assert.Equal(t, "foo", fd.GetPackage())
	assert.Equal(t, "proto3", fd.GetSyntax())
	require.Len(t, fd.GetMessageType(), 1)
	msg := fd.GetMessageType()[0]
	assert.Equal(t, "Greeting", msg.GetName())
	require.Len(t, msg.GetField(), 1)
	assert.Equal(t, "text", msg.GetField()[0].GetName())
	assert.Equal(t, descriptorpb.FieldDescriptorProto_TYPE_STRING, msg.GetField()[0].GetType())
	assert.Equal(t, "text", msg.GetField()[0].GetJsonName())
}

func TestGenerateResolvesMessageFieldType(t *testing.T) {
	t.Parallel()
	fd, h := generate(t, `
		syntax = "proto3";
		package foo;
		message Inner {}
		message Outer {
			Inner inner = 1;
		}
	`, false)
	require.NoError(t, h.Error())
	outer := fd.GetMessageType()[1]
	require.Len(t, outer.GetField(), 1)
	f := outer.GetField()[0]
	assert.Equal(t, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, f.GetType())
	assert.Equal(t, ".foo.Inner", f.GetTypeName())
}

func TestGenerateUnresolvedTypeNameReportsError(t *testing.T) {
	t.Parallel()
	_, h := generate(t, `
		syntax = "proto3";
		message Foo {
			Bar bar = 1;
		}
	`, false)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestGenerateMapFieldIsMapEntry(t *testing.T) {
	t.Parallel()
	fd, h := generate(t, `
		syntax = "proto3";
		message Foo {
			map<string, int32> counts = 1;
		}
	`, false)
	require.NoError(t, h.Error())
	msg := fd.GetMessageType()[0]
	require.Len(t, msg.GetNestedType(), 1)
	entry := msg.GetNestedType()[0]
	assert.True(t, entry.GetOptions().GetMapEntry())
}

func TestGenerateJSONNameOverride(t *testing.T) {
	t.Parallel()
	fd, h := generate(t, `
		syntax = "proto2";
		message Foo {
			optional string my_field = 1 [json_name = "customName"];
		}
	`, false)
	require.NoError(t, h.Error())
	f := fd.GetMessageType()[0].GetField()[0]
	assert.Equal(t, "customName", f.GetJsonName())
}

func TestGenerateProto2DefaultValue(t *testing.T) {
	t.Parallel()
	fd, h := generate(t, `
		syntax = "proto2";
		message Foo {
			optional int32 x = 1 [default = 42];
		}
	`, false)
	require.NoError(t, h.Error())
	f := fd.GetMessageType()[0].GetField()[0]
	assert.Equal(t, "42", f.GetDefaultValue())
}

func TestGenerateProto3ForbidsDefaultValue(t *testing.T) {
	t.Parallel()
	_, h := generate(t, `
		syntax = "proto3";
		message Foo {
			int32 x = 1 [default = 42];
		}
	`, false)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestGenerateSourceCodeInfoIncludesComments(t *testing.T) {
	t.Parallel()
	fd, h := generate(t, `
		syntax = "proto3";
		// a greeting message
		message Greeting {
			string text = 1;
		}
	`, true)
	require.NoError(t, h.Error())
	require.NotNil(t, fd.SourceCodeInfo)
	assert.NotEmpty(t, fd.SourceCodeInfo.Location)

	var found bool
	for _, loc := range fd.SourceCodeInfo.Location {
		if loc.GetLeadingComments() != "" {
			found = true
		}
	}
	assert.True(t, found, "expected at least one location with a leading comment")
}

func TestGenerateUninterpretedOptionForUnknownOption(t *testing.T) {
	t.Parallel()
	fd, h := generate(t, `
		syntax = "proto3";
		option (my.custom_option) = "value";
	`, false)
	require.NoError(t, h.Error())
	require.Len(t, fd.GetOptions().GetUninterpretedOption(), 1)
	opt := fd.GetOptions().GetUninterpretedOption()[0]
	require.Len(t, opt.GetName(), 1)
	assert.True(t, opt.GetName()[0].GetIsExtension())
	assert.Equal(t, "my.custom_option", opt.GetName()[0].GetNamePart())
	assert.Equal(t, "value", string(opt.GetStringValue()))
}

func TestGenerateDuplicateFieldNumberReportsError(t *testing.T) {
	t.Parallel()
	_, h := generate(t, `
		syntax = "proto3";
		message Foo {
			int32 a = 1;
			int32 b = 1;
		}
	`, false)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestGenerateReservedRangeOverlapsFieldReportsError(t *testing.T) {
	t.Parallel()
	_, h := generate(t, `
		syntax = "proto2";
		message Foo {
			optional int32 a = 5;
			reserved 1 to 10;
		}
	`, false)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestGenerateReservedRangeOverlapsReservedRangeReportsError(t *testing.T) {
	t.Parallel()
	_, h := generate(t, `
		syntax = "proto2";
		message Foo {
			reserved 1 to 10;
			reserved 5 to 20;
		}
	`, false)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestGenerateExtensionRangeOverlapsExtensionRangeReportsError(t *testing.T) {
	t.Parallel()
	_, h := generate(t, `
		syntax = "proto2";
		message Foo {
			extensions 100 to 200;
			extensions 150 to 250;
		}
	`, false)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestGenerateExtensionRangeOverlapsReservedRangeReportsError(t *testing.T) {
	t.Parallel()
	_, h := generate(t, `
		syntax = "proto2";
		message Foo {
			reserved 100 to 200;
			extensions 150 to 250;
		}
	`, false)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestGenerateAdjacentRangesDoNotOverlap(t *testing.T) {
	t.Parallel()
	_, h := generate(t, `
		syntax = "proto2";
		message Foo {
			optional int32 a = 10;
			reserved 1 to 9;
			extensions 11 to 20;
		}
	`, false)
	assert.NoError(t, h.Error())
}

func TestGenerateReservedRangeBackwardsReportsInvalidRange(t *testing.T) {
	t.Parallel()
	_, h := generate(t, `
		syntax = "proto2";
		message Foo {
			reserved 5 to 1;
		}
	`, false)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestGenerateReservedRangeSingleValueIsOK(t *testing.T) {
	t.Parallel()
	_, h := generate(t, `
		syntax = "proto2";
		message Foo {
			reserved 1 to 1;
		}
	`, false)
	assert.NoError(t, h.Error())
}

func TestGenerateEnumReservedRangeOverlapsValueReportsError(t *testing.T) {
	t.Parallel()
	_, h := generate(t, `
		syntax = "proto3";
		enum Foo {
			ZERO = 0;
			FIVE = 5;
			reserved 1 to 10;
		}
	`, false)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestGenerateEnumReservedRangeOverlapsReservedRangeReportsError(t *testing.T) {
	t.Parallel()
	_, h := generate(t, `
		syntax = "proto3";
		enum Foo {
			ZERO = 0;
			reserved 1 to 10;
			reserved 5 to 20;
		}
	`, false)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestGenerateEnumReservedRangeBackwardsReportsInvalidRange(t *testing.T) {
	t.Parallel()
	_, h := generate(t, `
		syntax = "proto3";
		enum Foo {
			ZERO = 0;
			reserved 5 to 1;
		}
	`, false)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}

func TestGenerateEnumReservedRangeAllowsNegativeNumbers(t *testing.T) {
	t.Parallel()
	_, h := generate(t, `
		syntax = "proto3";
		enum Foo {
			ZERO = 0;
			reserved -10 to -1;
		}
	`, false)
	assert.NoError(t, h.Error())
}

func TestGenerateEnumReservedRangeExtremaOutOfInt32ReportsError(t *testing.T) {
	t.Parallel()
	_, h := generate(t, `
		syntax = "proto3";
		enum Foo {
			ZERO = 0;
			reserved 1 to 2147483648;
		}
	`, false)
	assert.ErrorIs(t, h.Error(), report.ErrInvalidSource)
}
