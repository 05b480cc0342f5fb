// Package apperr defines the error taxonomy shared by the service layer:
// validation failures surface to the caller, per-record serialization
// failures are isolated, and store failures propagate wrapped.
package apperr

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("record not found")

// ValidationError marks caller mistakes (missing job id, malformed input,
// failed question validation). Never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// SerializationError marks a stored document that cannot be parsed. It is
// scoped to a single record; bulk loads log it and skip the record.
type SerializationError struct {
	RecordID uint
	Err      error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("record %d cannot be deserialized: %v", e.RecordID, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
