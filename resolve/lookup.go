package resolve

import "strings"

// lookup implements protobuf's C++-style scope search: for a reference R
// made inside scope S, search S, then each enclosing prefix of S, then the
// root, for a matching name. A leading '.' on R means "absolute": only the
// root is searched, with the dot stripped.
func lookup(names NameMap, scope, ref string) (string, Entry, bool) {
	if strings.HasPrefix(ref, ".") {
		abs := ref[1:]
		e, ok := names[abs]
		return abs, e, ok
	}

	scopeParts := splitNonEmpty(scope)
	for i := len(scopeParts); i >= 0; i-- {
		candidate := ref
		if i > 0 {
			candidate = strings.Join(scopeParts[:i], ".") + "." + ref
		}
		if e, ok := names[candidate]; ok {
			return candidate, e, true
		}
	}
	return "", Entry{}, false
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ".")
}
