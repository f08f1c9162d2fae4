package str

import (
	"strings"
	"unicode"
)

// ToScreamingSnakeCase transforms a given identifier into screaming snake case format.
// Acronyms are kept together: "HTTPServer" becomes "HTTP_SERVER".
func ToScreamingSnakeCase(in string) string {
	runes := []rune(strings.TrimSpace(in))
	if len(runes) == 0 {
		return ""
	}

	sb := strings.Builder{}
	sb.Grow(len(runes) + len(runes)/3) // estimate space for underscores

	lastWasSeparator := true
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			if !lastWasSeparator {
				sb.WriteByte('_')
			}
			lastWasSeparator = true
			continue
		}

		if i > 0 && !lastWasSeparator && startsWord(runes, i) {
			sb.WriteByte('_')
		}
		sb.WriteRune(unicode.ToUpper(r))
		lastWasSeparator = false
	}

	return strings.TrimSuffix(sb.String(), "_")
}

// startsWord tells if the rune at index i begins a new word in a camel or pascal case identifier.
func startsWord(runes []rune, i int) bool {
	prev, cur := runes[i-1], runes[i]
	switch {
	case unicode.IsUpper(cur):
		if unicode.IsLower(prev) || unicode.IsDigit(prev) {
			return true
		}
		// end of an acronym: "HTTPServer" splits before "S"
		return i+1 < len(runes) && unicode.IsLower(runes[i+1])
	case unicode.IsDigit(cur):
		return !unicode.IsDigit(prev)
	default:
		return false
	}
}

// ToEnvKey builds an environment variable name from a prefix and a path of identifiers.
func ToEnvKey(prefix string, path ...string) string {
	parts := make([]string, 0, len(path)+1)
	if prefix = ToScreamingSnakeCase(prefix); prefix != "" {
		parts = append(parts, prefix)
	}
	for _, p := range path {
		parts = append(parts, ToScreamingSnakeCase(p))
	}
	return strings.Join(parts, "_")
}
