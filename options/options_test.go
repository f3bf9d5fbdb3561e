package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewhickman/protox-sub000/ast"
	"github.com/andrewhickman/protox-sub000/parser"
	"github.com/andrewhickman/protox-sub000/report"
)

func parseOptions(t *testing.T, src string) []ast.Option {
	t.Helper()
	h := report.NewHandler(nil)
	f := parser.Parse("test.proto", []byte(src), h)
	require.NoError(t, h.Error())
	return f.Options
}

func TestSplitRecognizesBuiltins(t *testing.T) {
	t.Parallel()
	opts := parseOptions(t, `
		option deprecated = true;
		option (my_custom_option) = "value";
	`)
	special, rest := Split(opts, NameDeprecated)
	require.Contains(t, special, NameDeprecated)
	require.Len(t, rest, 1)

	b, ok := BoolValue(special[NameDeprecated])
	require.True(t, ok)
	assert.True(t, b)
}

func TestSplitIgnoresUnrecognizedNames(t *testing.T) {
	t.Parallel()
	opts := parseOptions(t, `option json_name = "x";`)
	special, rest := Split(opts, NameDeprecated)
	assert.Empty(t, special)
	require.Len(t, rest, 1)
}

func TestSplitTreatsExtensionOptionsAsNeverBuiltin(t *testing.T) {
	t.Parallel()
	opts := parseOptions(t, `option (deprecated) = true;`)
	special, rest := Split(opts, NameDeprecated)
	assert.Empty(t, special)
	require.Len(t, rest, 1)
}

func TestToUninterpretedSimpleName(t *testing.T) {
	t.Parallel()
	opts := parseOptions(t, `option my_option = "hello";`)
	u := ToUninterpreted(opts[0])
	require.Len(t, u.GetName(), 1)
	assert.Equal(t, "my_option", u.GetName()[0].GetNamePart())
	assert.False(t, u.GetName()[0].GetIsExtension())
	assert.Equal(t, "hello", string(u.GetStringValue()))
}

func TestToUninterpretedExtensionName(t *testing.T) {
	t.Parallel()
	opts := parseOptions(t, `option (my.ext).field = 5;`)
	u := ToUninterpreted(opts[0])
	require.Len(t, u.GetName(), 2)
	assert.True(t, u.GetName()[0].GetIsExtension())
	assert.Equal(t, "my.ext", u.GetName()[0].GetNamePart())
	assert.False(t, u.GetName()[1].GetIsExtension())
	assert.Equal(t, "field", u.GetName()[1].GetNamePart())
	assert.Equal(t, uint64(5), u.GetPositiveIntValue())
}

func TestToUninterpretedNegativeInt(t *testing.T) {
	t.Parallel()
	opts := parseOptions(t, `option my_option = -7;`)
	u := ToUninterpreted(opts[0])
	assert.Equal(t, int64(-7), u.GetNegativeIntValue())
}

func TestToUninterpretedAggregateValue(t *testing.T) {
	t.Parallel()
	opts := parseOptions(t, `
		option (my_option) = {
			name: "foo"
			values: [1, 2]
		};
	`)
	u := ToUninterpreted(opts[0])
	assert.Equal(t, `{name:"foo" values:[1,2]}`, u.GetAggregateValue())
}

func TestToUninterpretedIdentifierValue(t *testing.T) {
	t.Parallel()
	opts := parseOptions(t, `option my_option = SOME_IDENT;`)
	u := ToUninterpreted(opts[0])
	assert.Equal(t, "SOME_IDENT", u.GetIdentifierValue())
}

func TestStringValueRejectsNonString(t *testing.T) {
	t.Parallel()
	opts := parseOptions(t, `option my_option = 5;`)
	_, ok := StringValue(opts[0])
	assert.False(t, ok)
}

func TestBoolValueRejectsNonBool(t *testing.T) {
	t.Parallel()
	opts := parseOptions(t, `option my_option = "x";`)
	_, ok := BoolValue(opts[0])
	assert.False(t, ok)
}
