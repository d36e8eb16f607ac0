package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrScratchDocument indicates a file operation on a document with no path.
	ErrScratchDocument = errors.New("document has no file")

	// ErrActionFailed indicates an action returned StatusError.
	ErrActionFailed = errors.New("action failed")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "open", "save", "script")
	Target string // Target of the operation (e.g., file path, action name)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
