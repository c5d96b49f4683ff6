package engine

import (
	"errors"
	"fmt"
)

// CommandError represents a rejected command.
//
// Rejections fall into three kinds:
//   - Syntax: malformed tokens, wrong arity, bad flags, invalid field
//     charset or length
//   - Authorization: privilege below threshold, credential mismatch,
//     state-dependent preconditions (deleting a logged-in account,
//     duplicate ISBN on rename)
//   - Domain: insufficient stock, non-positive quantity or cost, count
//     exceeding ledger size
//
// All three are reported identically on the output transport as a
// single "Invalid" line; the code exists for logging and tests.
type CommandError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Command is the command name being rejected.
	Command string

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes command rejections.
type ErrorCode string

const (
	// ErrCodeSyntax indicates a malformed command line or field.
	ErrCodeSyntax ErrorCode = "SYNTAX"

	// ErrCodeAuthorization indicates a privilege or credential failure.
	ErrCodeAuthorization ErrorCode = "AUTHORIZATION"

	// ErrCodeDomain indicates a business-rule failure.
	ErrCodeDomain ErrorCode = "DOMAIN"
)

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s: %s (command=%s)", e.Code, e.Message, e.Command)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsSyntaxError returns true if the error is a syntax rejection.
// Uses errors.As to handle wrapped errors.
func IsSyntaxError(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce) && ce.Code == ErrCodeSyntax
}

// IsAuthorizationError returns true if the error is an authorization
// rejection. Uses errors.As to handle wrapped errors.
func IsAuthorizationError(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce) && ce.Code == ErrCodeAuthorization
}

// IsDomainError returns true if the error is a domain rejection.
// Uses errors.As to handle wrapped errors.
func IsDomainError(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce) && ce.Code == ErrCodeDomain
}

func syntaxErr(command, format string, args ...any) *CommandError {
	return &CommandError{Code: ErrCodeSyntax, Command: command, Message: fmt.Sprintf(format, args...)}
}

func authErr(command, format string, args ...any) *CommandError {
	return &CommandError{Code: ErrCodeAuthorization, Command: command, Message: fmt.Sprintf(format, args...)}
}

func domainErr(command, format string, args ...any) *CommandError {
	return &CommandError{Code: ErrCodeDomain, Command: command, Message: fmt.Sprintf(format, args...)}
}
