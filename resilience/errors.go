package resilience

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for error classification.
var (
	// ErrAttemptsExhausted indicates that every allowed attempt failed
	// and no fallback rescued the operation.
	ErrAttemptsExhausted = errors.New("all attempts exhausted")

	// ErrTimeout indicates that a single attempt exceeded its deadline.
	ErrTimeout = errors.New("operation timed out")

	// ErrCircuitOpen indicates that the circuit breaker refused to
	// attempt execution.
	ErrCircuitOpen = errors.New("circuit open")
)

// OperationError is the final failure of a retried operation. It carries
// everything a caller needs to act without stack inspection: the operation
// name, the total attempt count, and the last underlying cause.
type OperationError struct {
	// Op is the operation name the caller registered failures under.
	Op string

	// Attempts is the total number of attempts made.
	Attempts int

	// Last is the error from the final attempt.
	Last error
}

// Error returns the failure message.
func (e *OperationError) Error() string {
	return fmt.Sprintf("operation %q failed after %d attempts: %v", e.Op, e.Attempts, e.Last)
}

// Unwrap returns the last underlying error for errors.Is and errors.As.
func (e *OperationError) Unwrap() error {
	return e.Last
}

// Is reports whether this error matches the target.
// OperationError matches ErrAttemptsExhausted for sentinel-style checks.
func (e *OperationError) Is(target error) bool {
	return target == ErrAttemptsExhausted
}

// TimeoutError is returned when an attempt exceeds its deadline. It is
// distinguishable from non-timeout failures so diagnostics can tell the two
// apart.
type TimeoutError struct {
	// Op is the operation name.
	Op string

	// Limit is the deadline that was exceeded.
	Limit time.Duration
}

// Error returns the failure message.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Op, e.Limit)
}

// Is reports whether this error matches the target.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// CircuitOpenError is returned when the breaker fast-fails an operation
// before any attempt. Callers should back off rather than retry.
type CircuitOpenError struct {
	// Op is the operation name.
	Op string

	// Failures is the number of recent failures that tripped the gate.
	Failures int

	// Window is the trailing window the failures were counted over.
	Window time.Duration
}

// Error returns the failure message.
func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("circuit open for %q: %d failures in the last %s", e.Op, e.Failures, e.Window)
}

// Is reports whether this error matches the target.
func (e *CircuitOpenError) Is(target error) bool {
	return target == ErrCircuitOpen
}
