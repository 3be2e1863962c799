// Package fserrors defines the small error taxonomy every command-level
// operation surfaces (spec.md §7): each sentinel names one failure class,
// and a command-boundary wrap (github.com/pkg/errors, per the stack this
// module borrows from linuxkit-linuxkit) attaches the offending name/path so
// the shell can print one diagnostic line and return to the prompt without
// retrying anything.
package fserrors

import "github.com/pkg/errors"

// Sentinel classes. Use errors.Is against these, never string-matching.
var (
	ErrUsage        = errors.New("usage error")
	ErrName         = errors.New("invalid name")
	ErrNotFound     = errors.New("not found")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrExists       = errors.New("already exists")
	ErrState        = errors.New("invalid state")
	ErrSpace        = errors.New("not enough space left")
	ErrRange        = errors.New("range error")
	ErrFatal        = errors.New("fatal error")
)

// classError carries a formatted, user-facing message and a sentinel class
// for errors.Is, without pkg/errors' Wrapf concatenating the sentinel's own
// text onto the message: spec.md's one-line diagnostics are the formatted
// message alone (e.g. "sub not found."), not "sub not found.: not found".
type classError struct {
	class   error
	message string
}

func (e *classError) Error() string { return e.message }
func (e *classError) Unwrap() error { return e.class }

func newClassError(class error, format string, args ...interface{}) error {
	return &classError{class: class, message: errors.Errorf(format, args...).Error()}
}

// Usage wraps ErrUsage with a message, e.g. a usage string for a command.
func Usage(format string, args ...interface{}) error {
	return newClassError(ErrUsage, format, args...)
}

// Name wraps ErrName.
func Name(format string, args ...interface{}) error {
	return newClassError(ErrName, format, args...)
}

// NotFound wraps ErrNotFound.
func NotFound(format string, args ...interface{}) error {
	return newClassError(ErrNotFound, format, args...)
}

// TypeMismatch wraps ErrTypeMismatch.
func TypeMismatch(format string, args ...interface{}) error {
	return newClassError(ErrTypeMismatch, format, args...)
}

// Exists wraps ErrExists.
func Exists(format string, args ...interface{}) error {
	return newClassError(ErrExists, format, args...)
}

// State wraps ErrState.
func State(format string, args ...interface{}) error {
	return newClassError(ErrState, format, args...)
}

// Space wraps ErrSpace.
func Space(format string, args ...interface{}) error {
	return newClassError(ErrSpace, format, args...)
}

// Range wraps ErrRange.
func Range(format string, args ...interface{}) error {
	return newClassError(ErrRange, format, args...)
}

// Fatal wraps ErrFatal. Callers of a Fatal-class error should terminate the
// process (spec.md §7): an empty cluster chain where one was required, or an
// I/O failure against the backing image.
func Fatal(format string, args ...interface{}) error {
	return newClassError(ErrFatal, format, args...)
}
