package engine

import "github.com/google/uuid"

// SessionTokenGenerator produces the correlation token attached to
// every log record of one interpreter session.
// Implemented by UUIDv7Generator (production) and FixedGenerator
// (tests).
type SessionTokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, making
// tokens sortable by creation time, which keeps interleaved logs from
// multiple sessions easy to read.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns a predetermined token, for deterministic
// tests and golden transcript comparison.
type FixedGenerator struct {
	Token string
}

// Generate returns the fixed token.
func (g FixedGenerator) Generate() string {
	return g.Token
}
