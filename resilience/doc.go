// Package resilience wraps unreliable operations with bounded, observable
// failure handling: retry with optional exponential backoff, timeout racing,
// and a sliding-window circuit breaker.
//
// The package is generic over any operation of the form
// func(context.Context) (any, error); it knows nothing about what the
// operation does. Typical use is wrapping calls into a remote rendering
// surface, composed after validation (validate first, retry only the
// execution).
//
// # Architecture
//
//   - [Strategy]: retry policy configuration. A plain value, never shared
//     mutable state.
//   - [History]: per-operation failure bookkeeping over a trailing window.
//     Explicitly owned and injectable so tests can construct isolated
//     instances with a mock clock.
//   - [Executor]: runs operations under a Strategy, records failures into a
//     History, and gates attempts behind the circuit breaker.
//
// # Error Taxonomy
//
// Final failures carry typed errors matching distinct sentinels via
// errors.Is:
//
//   - [*OperationError] / [ErrAttemptsExhausted]: every attempt failed and
//     no fallback rescued the call. Names the operation, the attempt count,
//     and the last underlying cause.
//   - [*TimeoutError] / [ErrTimeout]: a single attempt exceeded its bound.
//     Retryable when composed with retry.
//   - [*CircuitOpenError] / [ErrCircuitOpen]: the breaker refused to attempt
//     execution at all. Callers should back off rather than retry
//     immediately.
//
// # Cancellation
//
// Waiting between retries and racing against a timeout are the only
// suspension points, and both honor context cancellation. A timed-out
// attempt has its context canceled but is not forcibly aborted: operations
// that ignore their context keep running in the background until they
// return. Wrapped operations should honor ctx to avoid leaking work.
package resilience
