package sanitizer

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

// strictPolicy strips every element. Policies are safe for concurrent use once built.
var strictPolicy = bluemonday.StrictPolicy()

// PlainText converts an escaped form value back into the text the visitor
// typed, NFC normalised. Nothing is stripped: chat text is never rendered as
// HTML.
var PlainText = Compose(
	html.UnescapeString,
	norm.NFC.String,
)

// StripTags removes every element from trusted-but-unchecked markup such as
// operator supplied labels and returns plain, trimmed text.
var StripTags = Compose(
	strictPolicy.Sanitize,
	// bluemonday re-escapes text nodes on output
	html.UnescapeString,
	strings.TrimSpace,
	norm.NFC.String,
)

// SanitizeURL returns the normalised URL when raw is an absolute http or https
// URL with a host. Any other input is rejected.
func SanitizeURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", false
	}
	if u.Host == "" {
		return "", false
	}

	return u.String(), true
}
