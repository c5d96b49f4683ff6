package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "root", true},
		{"digits and underscore", "user_01", true},
		{"max length", strings.Repeat("a", 30), true},
		{"too long", strings.Repeat("a", 31), false},
		{"empty", "", false},
		{"space", "a b", false},
		{"dash", "a-b", false},
		{"quote", `a"b`, false},
		{"non-ascii", "usér", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserID(tt.input))
		})
	}
}

func TestPassword_SharesUserIDRules(t *testing.T) {
	assert.True(t, Password("sjtu"))
	assert.False(t, Password("with space"))
	assert.False(t, Password(strings.Repeat("x", 31)))
}

func TestUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain", "Alice", true},
		{"with space", "Alice Smith", true},
		{"with punctuation", "O'Brien, J.", true},
		{"max length", strings.Repeat("x", 30), true},
		{"too long", strings.Repeat("x", 31), false},
		{"empty", "", false},
		{"control char", "a\tb", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Username(tt.input))
		})
	}
}

func TestISBN(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"digits", "9780134190440", true},
		{"with dashes", "978-0-13-419044", true},
		{"max length", strings.Repeat("1", 20), true},
		{"too long", strings.Repeat("1", 21), false},
		{"empty", "", false},
		{"control char", "97\x01", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ISBN(tt.input))
		})
	}
}

func TestBookName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain", "The Go Programming Language", true},
		{"max length", strings.Repeat("n", 60), true},
		{"too long", strings.Repeat("n", 61), false},
		{"empty", "", false},
		{"quote excluded", `say "hi"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BookName(tt.input))
		})
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"single", "go", true},
		{"multiple", "go|programming|lang", true},
		{"max length", strings.Repeat("k", 60), true},
		{"too long", strings.Repeat("k", 61), false},
		{"empty", "", false},
		{"empty token leading", "|go", false},
		{"empty token trailing", "go|", false},
		{"empty token middle", "go||lang", false},
		{"duplicate tokens", "go|lang|go", false},
		{"quote in token", `go|"x"`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Keywords(tt.input))
		})
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"zero", "0", true},
		{"plain", "42", true},
		{"max length", "1234567890", true},
		{"too long", "12345678901", false},
		{"empty", "", false},
		{"negative", "-1", false},
		{"decimal", "1.5", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quantity(tt.input))
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"integer", "10", true},
		{"two decimals", "9.99", true},
		{"one decimal", "9.9", true},
		{"trailing dot", "9.", true},
		{"three decimals", "9.999", false},
		{"leading dot", ".99", false},
		{"two dots", "1.2.3", false},
		{"empty", "", false},
		{"negative", "-1.00", false},
		{"too long", "12345678901234", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Price(tt.input))
		})
	}
}
