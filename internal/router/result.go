package router

import (
	"time"

	"llmrouter/pkg/types"
)

const (
	// ErrorPrefix starts every rendered failure.
	ErrorPrefix = "Error: "
	// NoResponseText is rendered when a successful envelope carries no recognised text.
	NoResponseText = "No response generated"
)

// Attempt records one HTTP try.
type Attempt struct {
	URL      string
	Kind     types.BackendKind
	Status   int
	Duration time.Duration
}

// Result is the tagged outcome of Dispatcher.Send.
type Result struct {
	// Text is the generated reply when Err is nil.
	Text string
	// Empty is set when the response carried none of the known text fields.
	Empty bool
	// Err is non-nil on failure.
	Err *Error
	// Kind is the classification of the configured endpoint.
	Kind     types.BackendKind
	Attempts []Attempt
	Duration time.Duration
}

// OK reports whether the backend answered successfully.
func (r Result) OK() bool { return r.Err == nil }

// String renders the single-channel form: the reply, NoResponseText or "Error: ...".
func (r Result) String() string {
	switch {
	case r.Err != nil:
		return ErrorPrefix + r.Err.Detail
	case r.Empty:
		return NoResponseText
	}
	return r.Text
}

// Status is the HTTP status of the last attempt, or zero if none completed.
func (r Result) Status() int {
	if n := len(r.Attempts); n > 0 {
		return r.Attempts[n-1].Status
	}
	return 0
}
