package sanitizer

import "strings"

// htmlEntities lists replacements in the order they are applied.
// The ampersand must stay first.
var htmlEntities = [...]struct {
	char   string
	entity string
}{
	{"&", "&amp;"},
	{"<", "&lt;"},
	{">", "&gt;"},
	{`"`, "&quot;"},
	{"'", "&#x27;"},
	{"/", "&#x2F;"},
}

// EscapeHTML replaces & < > " ' / with their HTML entities.
func EscapeHTML(s string) string {
	if s == "" {
		return s
	}
	for _, e := range htmlEntities {
		s = strings.ReplaceAll(s, e.char, e.entity)
	}
	return s
}

// Input sanitizes a raw input value coming from a form field.
// Anything that is not a string yields an empty string.
func Input(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return EscapeHTML(s)
}
