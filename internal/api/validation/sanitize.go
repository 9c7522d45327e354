package validation

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	scriptRegex = regexp.MustCompile(`(?is)<script.*?>.*?</script>`)
	tagRegex    = regexp.MustCompile(`(?s)<[^>]*>`)
)

// SanitizeString neutralizes markup in a flat string field before
// storage. Script elements go first (content included), then any
// remaining tags, then null bytes and control characters. The result is
// a fixed point: sanitizing it again changes nothing.
//
// Rich-text editor documents are NOT run through this; they are stored
// as structured payloads and rendered through a constrained renderer.
func SanitizeString(s string) string {
	s = scriptRegex.ReplaceAllString(s, "")
	s = tagRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "\x00", "")

	var result strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || !unicode.IsControl(r) {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// EscapeHTML escapes HTML special characters
func EscapeHTML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}

// TruncateString truncates a string to maxLen bytes
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
