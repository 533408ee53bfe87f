package resilience

import (
	"context"
	"time"
)

// Default retry policy values.
const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
)

// Operation is any unreliable asynchronous call the executor can wrap.
//
// Contract:
// - Context: implementations should honor cancellation; a timed-out
//   attempt is not forcibly aborted otherwise.
// - Errors: a nil error means success; the result value may be nil.
type Operation func(ctx context.Context) (any, error)

// Strategy is the retry policy for one execution. It is a configuration
// value, not shared mutable state; callers may reuse one Strategy across
// operations.
type Strategy struct {
	// MaxRetries is the number of retries after the first attempt.
	// Total attempts are MaxRetries + 1.
	MaxRetries int

	// RetryDelay is the wait between attempts.
	RetryDelay time.Duration

	// ExponentialBackoff doubles the delay per completed attempt:
	// delay, 2*delay, 4*delay, and so on.
	ExponentialBackoff bool

	// Fallback, when set, is invoked once after the final attempt
	// fails. Its result becomes the overall result; its failure
	// propagates as the overall failure and is not retried.
	Fallback Operation
}

// DefaultStrategy returns the standard policy: three retries at a fixed
// one-second delay, no fallback. The zero Strategy is also valid and
// means a single attempt with no delay.
func DefaultStrategy() Strategy {
	return Strategy{
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// delayFor returns the wait before attempt attemptIndex+1, where
// attemptIndex is the 0-based index of the attempt that just failed.
func (s Strategy) delayFor(attemptIndex int) time.Duration {
	if !s.ExponentialBackoff {
		return s.RetryDelay
	}
	return s.RetryDelay << uint(attemptIndex)
}
