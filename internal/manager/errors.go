package manager

import (
	"errors"
	"net/http"
)

// invalidRequestError signals caller input that can never succeed (400 mapping).
type invalidRequestError struct{ msg string }

func (e invalidRequestError) Error() string { return e.msg }

func (e invalidRequestError) StatusCode() int { return http.StatusBadRequest }

// ErrInvalidRequest constructs an invalidRequestError.
func ErrInvalidRequest(msg string) error { return invalidRequestError{msg: msg} }

// IsInvalidRequest reports whether err was caused by invalid caller input.
func IsInvalidRequest(err error) bool {
	var e invalidRequestError
	return errors.As(err, &e)
}
