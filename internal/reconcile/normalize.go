// Package reconcile joins the schedule feed to the odds feed and reduces
// bookmaker quotes into display strings.
//
// Everything here is a pure function over in-memory values: no I/O, no
// logging, no state retained between calls. Odds are indexed first with
// BuildIndex and the finished index is then probed once per schedule event
// by Join.
package reconcile

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a participant name for comparison: lower-cased,
// everything but letters, digits and whitespace dropped, whitespace runs
// collapsed and trimmed. Accented letters are kept as they are.
func Normalize(name string) string {
	if name == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// sameName compares two names after normalization. Empty names never match.
func sameName(a, b string) bool {
	na := Normalize(a)
	return na != "" && na == Normalize(b)
}
