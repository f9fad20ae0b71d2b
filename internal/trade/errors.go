package trade

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a trade error. Validation and not-found errors are
// surfaced to the caller as-is; configuration errors indicate a caller bug
// (bad enum value, malformed table) rather than a runtime condition.
type ErrorKind uint8

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConfiguration
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConfiguration:
		return "configuration"
	}
	return "unknown"
}

// Error is a typed calculation failure.
type Error struct {
	kind  ErrorKind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

// Kind returns the error classification.
func (e *Error) Kind() ErrorKind { return e.kind }

// NewValidation creates a validation error (null/malformed input).
func NewValidation(msg string) *Error {
	return &Error{kind: KindValidation, msg: msg}
}

// NewNotFound creates a not-found error (unknown cargo, settlement, or season key).
func NewNotFound(msg string) *Error {
	return &Error{kind: KindNotFound, msg: msg}
}

// NewConfiguration creates a configuration error (invalid enum or table).
func NewConfiguration(msg string) *Error {
	return &Error{kind: KindConfiguration, msg: msg}
}

// WrapValidation wraps err with validation context.
func WrapValidation(err error, msg string) *Error {
	return &Error{kind: KindValidation, msg: msg, cause: err}
}

func kindIs(err error, kind ErrorKind) bool {
	var te *Error
	return errors.As(err, &te) && te.kind == kind
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return kindIs(err, KindValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return kindIs(err, KindNotFound) }

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return kindIs(err, KindConfiguration) }
