package apperror

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Error is the one error type that crosses layer boundaries. Repositories
// and services classify failures into a Kind; handlers map the Kind to an
// HTTP status and send Message to the client.
type Error struct {
	Kind    Kind   // machine readable classification
	Op      string // <layer>.<domain>.<action>
	Err     error  // wrapped cause
	Message string // client safe message
	Stack   []byte
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.Op != "":
		return e.Op
	default:
		return "unknown error"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, op string, err error) *Error {
	e := &Error{
		Kind: kind,
		Op:   op,
		Err:  err,
	}

	if kind == Internal || kind == Dependency {
		e.Stack = debug.Stack()
	}

	return e
}

func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

func IsKind(err error, kind Kind) bool {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind == kind
	}
	return false
}
