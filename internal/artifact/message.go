package artifact

import (
	"regexp"
	"strings"
)

var (
	fencedBlockRegex = regexp.MustCompile("(?s)```.*?```")
	manyNewlineRegex = regexp.MustCompile(`\n{3,}`)
)

// ExtractMessage strips every recognized code or artifact block out of
// response text, leaving the human-readable explanation. Runs of three or
// more newlines collapse to exactly one blank line and the result is
// trimmed.
func ExtractMessage(text string) string {
	out := containerRegex.ReplaceAllString(text, "")
	out = fileTagRegex.ReplaceAllString(out, "")
	// Stray action units from a container that never closed.
	out = actionRegex.ReplaceAllString(out, "")
	out = fencedBlockRegex.ReplaceAllString(out, "")

	out = manyNewlineRegex.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}
