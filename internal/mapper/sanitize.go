package mapper

import "strings"

const (
	// descriptionLimit bounds sanitized free text.
	descriptionLimit = 100

	ellipsis = "..."
)

// Sanitize collapses every whitespace run (newlines included) into a single
// space, trims the ends, and caps the result at descriptionLimit characters
// with a trailing ellipsis. Sanitize is idempotent.
func Sanitize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > descriptionLimit {
		s = string(r[:descriptionLimit-len(ellipsis)]) + ellipsis
	}
	return s
}
