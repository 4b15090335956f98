package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Handlers translate these to
// HTTP status codes; nothing below the handler layer knows about HTTP.
var (
	// ErrNotFound indicates the requested account or record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates a failed credential or session check.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports missing or malformed input.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DuplicateError reports a contact field already in use within the same
// role's store.
type DuplicateError struct {
	// Field is "email" or "phone".
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "phone" {
		return "phone number is used already"
	}
	return "email is used already"
}

// IsDuplicate reports whether err is a DuplicateError.
func IsDuplicate(err error) bool {
	var de *DuplicateError
	return errors.As(err, &de)
}
