package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies why a strategy or portfolio write failed, independent
// of the store that rejected it.
type ErrorCode string

const (
	// CodeValidation: the input never reached the store.
	CodeValidation ErrorCode = "validation"
	// CodeNotFound: the parent row does not exist for this owner.
	CodeNotFound ErrorCode = "not_found"
	// CodeConflict: a same-titled record already exists for the owner.
	CodeConflict ErrorCode = "conflict"
	// CodeInvariantViolation: children observed without their parent.
	CodeInvariantViolation ErrorCode = "invariant_violation"
	CodePreconditionFailed ErrorCode = "precondition_failed"
	// CodeRetryable: transient store failure, safe to replay the whole write.
	CodeRetryable ErrorCode = "retryable"
	CodeInternal  ErrorCode = "internal"
)

// Error carries a code, the failing operation and an optional cause. It is
// the only error type the write layer lets escape to callers.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	if op := strings.TrimSpace(e.Op); op != "" {
		b.WriteString(op)
	}
	if msg := strings.TrimSpace(e.Message); msg != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString(msg)
	}
	if b.Len() == 0 {
		return string(e.Code)
	}
	fmt.Fprintf(&b, " (%s)", e.Code)
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an aggregate error with an explicit code and operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap gives an existing error aggregate semantics, keeping it as the cause.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode reports whether err, anywhere in its chain, carries code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code && code != ""
}

// CodeOf extracts the code, or "" when err is not an aggregate error.
func CodeOf(err error) ErrorCode {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Code
}
