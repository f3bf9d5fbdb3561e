package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONName(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"foo_bar":   "fooBar",
		"foo":       "foo",
		"_foo":      "Foo",
		"foo__bar":  "fooBar",
		"foo_":      "foo",
		"FOO_BAR":   "FOOBAR",
	}
	for in, want := range cases {
		assert.Equal(t, want, JSONName(in), "JSONName(%q)", in)
	}
}

func TestPascalCase(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"my_field": "MyField",
		"foo":      "Foo",
		"":         "",
		"a_b_c":    "ABC",
	}
	for in, want := range cases {
		assert.Equal(t, want, PascalCase(in), "PascalCase(%q)", in)
	}
}
