package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Argument errors, raised at construction or on the first pull.
const (
	// ErrCodeInvalidArgument indicates a nil sequence or an out-of-range parameter.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Empty-input errors, raised by reductions that have no default.
const (
	// ErrCodeEmptyInput indicates an aggregate (min, max, sum) over no items.
	ErrCodeEmptyInput ErrorCode = "EMPTY_INPUT"
	// ErrCodeNoSuchElement indicates a positional accessor (first, last, nth) found no item.
	ErrCodeNoSuchElement ErrorCode = "NO_SUCH_ELEMENT"
)

// Shape errors, raised only by strict adapters.
const (
	// ErrCodeLengthMismatch indicates strict zipping over sequences of unequal length.
	ErrCodeLengthMismatch ErrorCode = "LENGTH_MISMATCH"
	// ErrCodeIncompleteBatch indicates a strict batch ended with a short group.
	ErrCodeIncompleteBatch ErrorCode = "INCOMPLETE_BATCH"
)

// Concurrency errors
const (
	// ErrCodeAggregateFailure indicates several upstream failures within one round.
	ErrCodeAggregateFailure ErrorCode = "AGGREGATE_FAILURE"
	// ErrCodeShutdown indicates a task was submitted to a stopped executor.
	ErrCodeShutdown ErrorCode = "SHUTDOWN"
	// ErrCodeTimeout indicates an executor could not accept a task in time.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInternal indicates an unexpected failure such as a recovered panic.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var knownCodes = map[ErrorCode]bool{
	ErrCodeInvalidArgument:  true,
	ErrCodeEmptyInput:       true,
	ErrCodeNoSuchElement:    true,
	ErrCodeLengthMismatch:   true,
	ErrCodeIncompleteBatch:  true,
	ErrCodeAggregateFailure: true,
	ErrCodeShutdown:         true,
	ErrCodeTimeout:          true,
	ErrCodeInternal:         true,
}

// IsKnownCode returns true if code is one of the codes defined by this package.
func IsKnownCode(code ErrorCode) bool {
	return knownCodes[code]
}
