package validate

import "errors"

// Error reports input that was rejected before any cluster call was made.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsInvalid reports whether err, or anything it wraps, is a validation failure.
func IsInvalid(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

func invalid(field, message string) *Error {
	return &Error{Field: field, Message: message}
}
