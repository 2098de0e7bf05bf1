package mapper

import "strings"

const (
	// placeholderCandidate is used when a display name yields no words.
	placeholderCandidate = "tmp"

	// collisionSuffix is appended until a candidate identifier is unused.
	collisionSuffix = "x"

	// fallbackMaxLen caps synthesized candidates.
	fallbackMaxLen = 4
)

// shortCodeCandidate turns a source short code into an identifier candidate.
// It returns "" when the short code is absent or has no identifier-safe
// characters, which sends the caller down the fallback path.
func shortCodeCandidate(shortCode string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(strings.TrimSpace(shortCode)) {
		if isAlnum(c) {
			b.WriteRune(c)
		}
	}
	return noLeadingDigit(b.String())
}

// fallbackCandidate synthesizes an identifier candidate from a display name:
// uppercase-initials capped at four characters for multi-word names, a short
// prefix for single-word names. Hyphens separate words, so
// "Oracle e-Business Suite" yields "oebs".
func fallbackCandidate(name string) string {
	words := strings.Fields(identWords(name))
	var c string
	switch {
	case len(words) == 0:
		c = placeholderCandidate
	case len(words) > 1:
		initials := make([]byte, 0, len(words))
		for _, w := range words {
			initials = append(initials, w[0])
		}
		if len(initials) > fallbackMaxLen {
			initials = initials[:fallbackMaxLen]
		}
		c = string(initials)
	default:
		w := words[0]
		if len(w) >= fallbackMaxLen {
			c = w[:fallbackMaxLen]
		} else {
			c = w
		}
	}
	return noLeadingDigit(strings.ToLower(c))
}

// identWords keeps letters, digits and spaces, turning hyphens into word
// separators and dropping everything else.
func identWords(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch {
		case isAlnum(c) || c == ' ' || c == '\t' || c == '\n':
			b.WriteRune(c)
		case c == '-':
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// noLeadingDigit keeps identifiers grammar-valid: the host DSL forbids a
// leading digit, so such candidates get a letter prefix before collision
// resolution.
func noLeadingDigit(s string) string {
	if s != "" && s[0] >= '0' && s[0] <= '9' {
		return "x" + s
	}
	return s
}

func isAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// RelationshipBase composes the base identifier of an edge from its endpoint
// identifiers: source + "To" + capitalized destination. The result still goes
// through the run's collision-resolution path.
func RelationshipBase(source, destination string) string {
	if destination == "" {
		return source + "To"
	}
	return source + "To" + strings.ToUpper(destination[:1]) + destination[1:]
}
