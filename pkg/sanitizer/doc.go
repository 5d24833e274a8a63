// Package sanitizer cleans user-supplied form input before it is kept in
// memory, validated or handed to a delivery provider.
//
// The helpers fall into two groups:
//
//   - Escaping – EscapeHTML and Input replace the markup-significant
//     characters & < > " ' / with HTML entities. The ampersand is always
//     replaced first so entities produced by later replacements are never
//     escaped again. Escaping is not idempotent: "&amp;" becomes "&amp;amp;".
//
//   - Rendering – PlainText turns previously escaped values back into the
//     text the visitor typed (entities decoded, NFC normalised). StripTags
//     drops every element from operator supplied labels. SanitizeURL accepts
//     only absolute http(s) URLs.
//
// Apply and Compose build reusable pipelines out of string transforms:
//
//	clean := sanitizer.Compose(strings.TrimSpace, sanitizer.EscapeHTML)
//	safe := clean("  <b>hi</b> ") // "&lt;b&gt;hi&lt;&#x2F;b&gt;"
//
// # Error handling
//
// None of the helpers returns an error. Unusable input yields a safe zero
// value (an empty string, or false for SanitizeURL).
//
// All functions are stateless and safe for concurrent use.
package sanitizer
