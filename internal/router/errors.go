package router

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed dispatch.
type ErrorKind string

const (
	ErrNetwork    ErrorKind = "network"
	ErrAuth       ErrorKind = "auth"
	ErrHTTPStatus ErrorKind = "http_status"
	ErrConfig     ErrorKind = "config"
)

// Error is the failure half of a Result.
type Error struct {
	Kind   ErrorKind
	Status int
	Detail string
	cause  error
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.cause }

// StatusCode lets the HTTP layer reuse the backend status where one exists.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case ErrConfig:
		return http.StatusBadRequest
	case ErrNetwork:
		return http.StatusBadGateway
	}
	if e.Status != 0 {
		return e.Status
	}
	return http.StatusBadGateway
}

func networkError(err error) *Error {
	return &Error{Kind: ErrNetwork, Detail: fmt.Sprintf("request failed: %v", err), cause: err}
}

func configError(format string, a ...any) *Error {
	return &Error{Kind: ErrConfig, Detail: fmt.Sprintf(format, a...)}
}

// statusError builds the error for a non-success response. 403 gets its own wording.
func statusError(status int, body []byte) *Error {
	if status == http.StatusForbidden {
		return &Error{
			Kind:   ErrAuth,
			Status: status,
			Detail: "access denied (HTTP 403): the API key is missing or invalid, check the API key in the service configuration",
		}
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		text = http.StatusText(status)
	}
	return &Error{Kind: ErrHTTPStatus, Status: status, Detail: fmt.Sprintf("HTTP %d: %s", status, text)}
}

func isKind(err error, k ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e != nil && e.Kind == k
}

// IsAuth reports whether err is an authentication failure (HTTP 403).
func IsAuth(err error) bool { return isKind(err, ErrAuth) }

// IsNetwork reports whether err is a transport-level failure.
func IsNetwork(err error) bool { return isKind(err, ErrNetwork) }

// IsHTTPStatus reports whether err is a generic non-success HTTP status.
func IsHTTPStatus(err error) bool { return isKind(err, ErrHTTPStatus) }

// IsConfig reports whether err comes from an unusable service configuration.
func IsConfig(err error) bool { return isKind(err, ErrConfig) }
