package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims the string and collapses internal whitespace runs to
// a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeComment keeps internal line structure but trims the edges; review
// comments are free text and should not be collapsed.
func NormalizeComment(comment string) string {
	return strings.TrimSpace(comment)
}

// NormalizeStateID trims and upper-cases a jurisdiction identifier.
func NormalizeStateID(stateID string) string {
	return strings.ToUpper(TrimAndNormalize(stateID))
}
