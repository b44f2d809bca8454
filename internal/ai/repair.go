package ai

import (
	"regexp"
	"strings"
)

// Model output often wraps the JSON in markdown fences or leaves stray
// backslashes from half-escaped LaTeX. stripFences and repairJSON clean up
// the two failure shapes we actually see; anything else stays a parse error.

var badEscape = regexp.MustCompile(`\\([^/u"\\bfnrt])`)

// stripFences removes a leading markdown code fence (with or without a
// language tag) and a trailing one, plus surrounding whitespace.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// repairJSON doubles every backslash that does not start a valid JSON escape
// sequence, turning it into a literal backslash.
func repairJSON(s string) string {
	return badEscape.ReplaceAllString(s, `\\$1`)
}
