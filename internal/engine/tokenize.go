package engine

import "strings"

// tokenize splits a trimmed command line into tokens on single spaces,
// respecting double-quoted fields: a quoted region may contain spaces
// without splitting the token. Quote characters are kept in the token;
// flag parsing strips them later. Runs of spaces produce no empty
// tokens.
//
// Returns ok=false for an unterminated quote, which is a syntax error
// for the whole line.
func tokenize(line string) (tokens []string, ok bool) {
	var b strings.Builder
	inQuote := false

	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == ' ' && !inQuote:
			flush()
		default:
			b.WriteByte(c)
		}
	}
	if inQuote {
		return nil, false
	}
	flush()
	return tokens, true
}

// splitFlag parses a "-key=value" argument. The value may be empty;
// callers validate it. Returns ok=false when the argument is not
// flag-shaped.
func splitFlag(arg string) (key, value string, ok bool) {
	if len(arg) < 2 || arg[0] != '-' {
		return "", "", false
	}
	eq := strings.IndexByte(arg, '=')
	if eq < 2 {
		return "", "", false
	}
	return arg[1:eq], arg[eq+1:], true
}

// unquote strips a surrounding double-quote pair. The quoted value
// must be at least one character; a missing or lone quote is
// malformed.
func unquote(value string) (string, bool) {
	if len(value) < 3 || value[0] != '"' || value[len(value)-1] != '"' {
		return "", false
	}
	return value[1 : len(value)-1], true
}
