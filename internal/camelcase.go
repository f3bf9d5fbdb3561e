package internal

import "strings"

// JSONName computes the default json_name for a field: the field's
// underscore_name converted to lowerCamelCase, exactly as protoc does when
// no explicit json_name option is present.
func JSONName(fieldName string) string {
	var sb strings.Builder
	upperNext := false
	for _, r := range fieldName {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		upperNext = false
		sb.WriteRune(r)
	}
	return sb.String()
}

// PascalCase upper-cases the first letter of an identifier and the letter
// after each underscore, dropping the underscores; the IR uses it for the
// map entry message name rule.
func PascalCase(name string) string {
	if name == "" {
		return name
	}
	// Mirror protoc's TO_UPPER behavior: capitalize the first rune, and
	// capitalize the rune after each underscore, dropping the underscores,
	// so e.g. "my_field" -> "MyField" (used for map-entry synthesis, which
	// is always applied to a lower_snake field name).
	var sb strings.Builder
	upperNext := true
	for _, r := range name {
		if r == '_' {
			upperNext = true
			continue
		}
		if upperNext && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		upperNext = false
		sb.WriteRune(r)
	}
	return sb.String()
}
