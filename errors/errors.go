package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError is the unified library error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError with the same code, so the
// package sentinels match every error of their kind.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Sentinels for errors.Is checks against a whole error kind.
var (
	ErrInvalidArgument = &AppError{Code: ErrCodeInvalidArgument}
	ErrEmptyInput      = &AppError{Code: ErrCodeEmptyInput}
	ErrNoSuchElement   = &AppError{Code: ErrCodeNoSuchElement}
	ErrLengthMismatch  = &AppError{Code: ErrCodeLengthMismatch}
	ErrIncompleteBatch = &AppError{Code: ErrCodeIncompleteBatch}
	ErrShutdown        = &AppError{Code: ErrCodeShutdown}
	ErrTimeout         = &AppError{Code: ErrCodeTimeout}
)

// --- Constructors ---

// InvalidArgument creates an error for a bad parameter. The message names
// the parameter so callers can tell which argument was rejected.
func InvalidArgument(param, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidArgument,
		Message: fmt.Sprintf("'%s' %s", param, reason),
		Details: map[string]any{"param": param},
	}
}

// EmptyInput creates an error for an aggregate over an empty sequence.
func EmptyInput(op string) *AppError {
	return &AppError{
		Code:    ErrCodeEmptyInput,
		Message: fmt.Sprintf("%s(): empty sequence", op),
		Details: map[string]any{"op": op},
	}
}

// NoSuchElement creates an error for a positional accessor that ran out of
// items. A negative index means the accessor has no fixed position, as with
// last().
func NoSuchElement(op string, index int) *AppError {
	if index < 0 {
		return &AppError{
			Code:    ErrCodeNoSuchElement,
			Message: fmt.Sprintf("%s(): empty sequence", op),
			Details: map[string]any{"op": op},
		}
	}
	return &AppError{
		Code:    ErrCodeNoSuchElement,
		Message: fmt.Sprintf("%s(): sequence has no item at index %d", op, index),
		Details: map[string]any{"op": op, "index": index},
	}
}

// LengthMismatch creates an error for strict zipping over unequal lengths.
func LengthMismatch(op string) *AppError {
	return &AppError{
		Code:    ErrCodeLengthMismatch,
		Message: fmt.Sprintf("%s(): sequence lengths differ", op),
		Details: map[string]any{"op": op},
	}
}

// IncompleteBatch creates an error for a strict batch that ended short.
func IncompleteBatch(op string, got, want int) *AppError {
	return &AppError{
		Code:    ErrCodeIncompleteBatch,
		Message: fmt.Sprintf("%s(): incomplete batch of %d, want %d", op, got, want),
		Details: map[string]any{"op": op, "got": got, "want": want},
	}
}

// Shutdown creates an error for a task submitted after an executor stopped.
func Shutdown(executor string) *AppError {
	return &AppError{
		Code:    ErrCodeShutdown,
		Message: fmt.Sprintf("cannot submit to %s after shutdown", executor),
		Details: map[string]any{"executor": executor},
	}
}

// Timeout creates an error for an operation that gave up waiting.
func Timeout(operation string) *AppError {
	return &AppError{
		Code:    ErrCodeTimeout,
		Message: fmt.Sprintf("%s timed out", operation),
		Details: map[string]any{"operation": operation},
	}
}

// Internal creates an error for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "an unexpected error occurred",
		Cause:   cause,
	}
}

// --- Inspection ---

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err, or anything it wraps, is an AppError with code.
func IsCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, &AppError{Code: code})
}

// --- Aggregation ---

// AggregateError carries every failure observed within one resolution round
// of a multi-upstream cursor.
type AggregateError struct {
	Op     string
	Errors []error
}

// Error lists every collected failure.
func (e *AggregateError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s: %s(): %d failure(s): %s",
		ErrCodeAggregateFailure, e.Op, len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap exposes the collected failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// Aggregate builds an AggregateError from errs. Nil entries are dropped and
// nested aggregates are flattened. Returns nil when nothing remains.
func Aggregate(op string, errs ...error) error {
	var flat []error
	for _, err := range errs {
		flat = appendFlat(flat, err)
	}
	if len(flat) == 0 {
		return nil
	}
	return &AggregateError{Op: op, Errors: flat}
}

func appendFlat(dst []error, err error) []error {
	if err == nil {
		return dst
	}
	var agg *AggregateError
	if e, ok := err.(*AggregateError); ok {
		agg = e
	}
	if agg == nil {
		return append(dst, err)
	}
	for _, sub := range agg.Errors {
		dst = appendFlat(dst, sub)
	}
	return dst
}

// Failures returns the individual failures carried by err. An AggregateError
// anywhere in the chain yields its members; any other non-nil error yields
// itself.
func Failures(err error) []error {
	if err == nil {
		return nil
	}
	var agg *AggregateError
	if stderrors.As(err, &agg) {
		out := make([]error, len(agg.Errors))
		copy(out, agg.Errors)
		return out
	}
	return []error{err}
}
