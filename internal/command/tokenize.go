package command

import "unicode"

// Tokenize splits a raw command line into argument tokens. Runs of
// whitespace separate tokens; a single-quoted segment is one literal token
// with the quotes stripped. An unterminated quote still yields whatever
// accumulated before the line ended.
func Tokenize(line string) []string {
	var tokens []string
	var current []rune
	inQuotes := false

	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, string(current))
			current = current[:0]
		}
	}

	for _, r := range line {
		switch {
		case r == '\'' && !inQuotes:
			inQuotes = true
		case r == '\'':
			inQuotes = false
			flush()
		case unicode.IsSpace(r) && !inQuotes:
			flush()
		default:
			current = append(current, r)
		}
	}
	flush()
	return tokens
}
