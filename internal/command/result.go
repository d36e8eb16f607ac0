package command

import "fmt"

// Status indicates the outcome of an action.
type Status uint8

const (
	// StatusOK indicates the document was changed.
	StatusOK Status = iota
	// StatusNoOp indicates there was nothing to do.
	StatusNoOp
	// StatusError indicates the action could not run.
	StatusError
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of dispatching an action.
type Result struct {
	Status  Status
	Error   error
	Message string
}

// IsOK returns true if the action changed the document.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the action failed.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Changed converts an operation's "did anything change" report to a result.
func Changed(changed bool) Result {
	if changed {
		return Result{Status: StatusOK}
	}
	return Result{Status: StatusNoOp}
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err, Message: err.Error()}
}

// Errorf creates an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

// WithMessage returns a copy of the result with the specified message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}
