// Package richtext cleans up rich-text content coming out of the CMS.
// Legacy dumps left SQL/JSON escape artifacts baked into the stored HTML
// (literal \r\n sequences, backslash-escaped quotes and slashes); pages
// render the normalized form.
package richtext

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// Normalize collapses escape artifacts in a fixed order: newline sequences
// (the two-character \r\n form before the single forms), then quotes, then
// slashes, then stray backslashes before angle brackets. Content without
// artifacts passes through unchanged. Best effort: whatever remains after
// the pass is served as-is.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, `\r\n`, "\n")
	s = strings.ReplaceAll(s, `\r`, "\n")
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\'`, "'")
	s = strings.ReplaceAll(s, `\/`, "/")
	s = strings.ReplaceAll(s, `<\/`, "</")
	s = strings.ReplaceAll(s, `\<`, "<")
	s = strings.ReplaceAll(s, `\>`, ">")
	return s
}

// IsHTML reports whether the content still carries markup after
// normalization. HTML content is inserted as markup by the client; anything
// else is shown as literal text with newlines kept as line breaks.
func IsHTML(s string) bool {
	return tagPattern.MatchString(s)
}
