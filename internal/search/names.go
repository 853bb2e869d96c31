package search

import (
	"strings"
	"unicode"
)

const datePrefixLen = len("2006-01-02")

// SplitDatePrefix splits "YYYY-MM-DD-rest" into its date and rest. Only the
// dash positions are checked, mirroring how names are produced.
func SplitDatePrefix(name string) (date, rest string, ok bool) {
	if len(name) <= datePrefixLen || name[4] != '-' || name[7] != '-' || name[datePrefixLen] != '-' {
		return "", name, false
	}
	return name[:datePrefixLen], name[datePrefixLen+1:], true
}

// NormalizeQuery collapses whitespace runs into single dashes so a typed
// query can be compared with existing names.
func NormalizeQuery(query string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(query), unicode.IsSpace)
	return strings.Join(fields, "-")
}

// HasExactName reports whether any name, ignoring its date prefix, equals
// the normalized query.
func HasExactName(query string, names []string) bool {
	want := NormalizeQuery(query)
	if want == "" {
		return false
	}
	for _, name := range names {
		if _, rest, ok := SplitDatePrefix(name); ok {
			name = rest
		}
		if name == want {
			return true
		}
	}
	return false
}
