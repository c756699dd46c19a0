package domain

import (
	"errors"
	"fmt"
)

// Error kinds returned by the engine. Handlers map these onto HTTP codes and
// callers decide retry policy; the engine itself never retries.
type errKind int

const (
	kindValidation errKind = iota
	kindConflict
	kindNotFound
	kindInvalidOperation
	kindTransient
)

// Error is the single error type of the engine's taxonomy. Kind predicates
// below are the supported way to classify one.
type Error struct {
	kind errKind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Is makes errors.Is match any two taxonomy errors of the same kind, so
// sentinel comparisons like errors.Is(err, domain.ErrConflict) work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.kind == e.kind
}

// Sentinels for errors.Is checks.
var (
	ErrValidation       = &Error{kind: kindValidation, msg: "validation error"}
	ErrConflict         = &Error{kind: kindConflict, msg: "conflict"}
	ErrNotFound         = &Error{kind: kindNotFound, msg: "not found"}
	ErrInvalidOperation = &Error{kind: kindInvalidOperation, msg: "invalid operation"}
	ErrTransient        = &Error{kind: kindTransient, msg: "transient failure"}
)

func ValidationError(format string, args ...any) error {
	return &Error{kind: kindValidation, msg: fmt.Sprintf(format, args...)}
}

func ConflictError(format string, args ...any) error {
	return &Error{kind: kindConflict, msg: fmt.Sprintf(format, args...)}
}

func NotFoundError(format string, args ...any) error {
	return &Error{kind: kindNotFound, msg: fmt.Sprintf(format, args...)}
}

func InvalidOperationError(format string, args ...any) error {
	return &Error{kind: kindInvalidOperation, msg: fmt.Sprintf(format, args...)}
}

// TransientError wraps a lower-level failure that is safe to retry with
// backoff (lock timeout, deadlock, lost connection).
func TransientError(msg string, err error) error {
	return &Error{kind: kindTransient, msg: msg, err: err}
}

// IsRetryable reports whether the caller may retry the operation.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransient)
}
