// Package validate provides field validation predicates for bookstore
// records.
//
// All predicates are pure functions over strings. They enforce the
// charset and length limits of the fixed-layout record schema, so a
// value that passes validation can always be stored without
// truncation.
package validate

import "strings"

// Length limits for record fields.
const (
	MaxUserIDLen   = 30
	MaxUsernameLen = 30
	MaxISBNLen     = 20
	MaxBookNameLen = 60
	MaxKeywordLen  = 60
	MaxQuantityLen = 10
	MaxPriceLen    = 13
)

// printableChar reports whether c is printable ASCII. The quote
// character is additionally excluded when allowQuote is false, since
// it delimits quoted flag values on the command line.
func printableChar(c byte, allowQuote bool) bool {
	if c < 32 || c > 126 {
		return false
	}
	if !allowQuote && c == '"' {
		return false
	}
	return true
}

// UserID reports whether s is a valid account identity: 1-30
// characters, alphanumeric or underscore.
func UserID(s string) bool {
	if s == "" || len(s) > MaxUserIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		default:
			return false
		}
	}
	return true
}

// Password shares the userID charset and length limit.
func Password(s string) bool {
	return UserID(s)
}

// Username reports whether s is a valid display name: 1-30 printable
// ASCII characters.
func Username(s string) bool {
	if s == "" || len(s) > MaxUsernameLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !printableChar(s[i], true) {
			return false
		}
	}
	return true
}

// ISBN reports whether s is a valid book key: 1-20 printable ASCII
// characters.
func ISBN(s string) bool {
	if s == "" || len(s) > MaxISBNLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !printableChar(s[i], true) {
			return false
		}
	}
	return true
}

// BookName reports whether s is a valid book name or author: 1-60
// printable ASCII characters excluding the quote character.
func BookName(s string) bool {
	if s == "" || len(s) > MaxBookNameLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !printableChar(s[i], false) {
			return false
		}
	}
	return true
}

// Keywords reports whether s is a valid |-joined keyword set: the
// whole field at most 60 characters, every token nonempty with the
// book-name charset, and all tokens pairwise distinct.
func Keywords(s string) bool {
	if s == "" || len(s) > MaxKeywordLen {
		return false
	}
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, "|") {
		if part == "" {
			return false
		}
		for i := 0; i < len(part); i++ {
			if !printableChar(part[i], false) {
				return false
			}
		}
		if seen[part] {
			return false
		}
		seen[part] = true
	}
	return true
}

// Quantity reports whether s is a valid non-negative integer literal:
// 1-10 decimal digits. The numeric range check (e.g. quantity > 0 for
// buy) belongs to the command handler, not the syntax.
func Quantity(s string) bool {
	if s == "" || len(s) > MaxQuantityLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Price reports whether s is a valid non-negative decimal literal:
// at most 13 characters, at least one digit before an optional dot,
// and at most two digits after it.
func Price(s string) bool {
	if s == "" || len(s) > MaxPriceLen {
		return false
	}
	hasDot := false
	beforeDot, afterDot := 0, 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '.':
			if hasDot {
				return false
			}
			hasDot = true
		case c >= '0' && c <= '9':
			if hasDot {
				afterDot++
			} else {
				beforeDot++
			}
		default:
			return false
		}
	}
	if beforeDot == 0 {
		return false
	}
	return !hasDot || afterDot <= 2
}
