package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Executor runs operations with retry, timeout, and circuit-breaker
// protection, recording failures in a shared History.
//
// Contract:
// - Concurrency: safe for concurrent use; the underlying History is
//   mutex-guarded and Strategy values are passed by value.
// - Context: every attempt receives the caller's context. Cancellation
//   stops waiting between attempts; a running attempt must observe its
//   own context to stop early.
// - Errors: executor methods return the typed errors from this package
//   alongside the operation's result.
type Executor struct {
	history *History
	logger  Logger
}

// ExecutorOption customizes an Executor.
type ExecutorOption func(*Executor)

// WithLogger attaches a logger for per-attempt diagnostics.
func WithLogger(l Logger) ExecutorOption {
	return func(e *Executor) { e.logger = l }
}

// WithHistory supplies a shared failure history. When omitted the
// executor creates its own with default settings.
func WithHistory(h *History) ExecutorOption {
	return func(e *Executor) {
		if h != nil {
			e.history = h
		}
	}
}

// NewExecutor returns a ready Executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.history == nil {
		e.history = NewHistory()
	}
	return e
}

// History exposes the executor's failure history for inspection.
func (e *Executor) History() *History { return e.history }

// ErrorStats reports the current per-operation failure counts.
func (e *Executor) ErrorStats() map[string]Stat { return e.history.Stats() }

func (e *Executor) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Logf(format, args...)
	}
}

// ExecuteWithRetry runs op up to strategy.MaxRetries+1 times. Success
// clears the operation's failure history; each failure records one
// entry. When all attempts fail the fallback, if set, runs exactly
// once and its outcome is returned. Without a fallback the result is
// an *OperationError wrapping the final attempt's error.
func (e *Executor) ExecuteWithRetry(ctx context.Context, op Operation, name string, strategy Strategy) (any, error) {
	attempts := strategy.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			e.history.Clear(name)
			return result, nil
		}
		lastErr = err
		e.history.RecordError(name)
		e.logf("operation %q attempt %d/%d failed: %v", name, attempt+1, attempts, err)

		if attempt < attempts-1 {
			if werr := waitRetry(ctx, strategy.delayFor(attempt)); werr != nil {
				return nil, fmt.Errorf("operation %q canceled while waiting to retry: %w", name, werr)
			}
		}
	}

	if strategy.Fallback != nil {
		e.logf("operation %q exhausted %d attempts, running fallback", name, attempts)
		return strategy.Fallback(ctx)
	}
	return nil, &OperationError{Op: name, Attempts: attempts, Last: lastErr}
}

// ExecuteWithTimeout runs op with a deadline. The operation runs in
// its own goroutine against a context that expires after timeout; if
// the deadline fires first the result is a *TimeoutError. An
// abandoned operation keeps running until it observes its context.
func (e *Executor) ExecuteWithTimeout(ctx context.Context, op Operation, timeout time.Duration, name string) (any, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		value any
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := op(attemptCtx)
		done <- outcome{value: v, err: err}
	}()

	select {
	case out := <-done:
		return out.value, out.err
	case <-attemptCtx.Done():
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			e.logf("operation %q timed out after %s", name, timeout)
			return nil, &TimeoutError{Op: name, Limit: timeout}
		}
		return nil, attemptCtx.Err()
	}
}

// ExecuteWithRetryAndTimeout bounds each attempt by timeout and
// retries per strategy. A timed-out attempt counts as a failure and
// is retried like any other error.
func (e *Executor) ExecuteWithRetryAndTimeout(ctx context.Context, op Operation, name string, strategy Strategy, timeout time.Duration) (any, error) {
	bounded := func(ctx context.Context) (any, error) {
		return e.ExecuteWithTimeout(ctx, op, timeout, name)
	}
	return e.ExecuteWithRetry(ctx, bounded, name, strategy)
}

// ExecuteWithBreaker fast-fails with a *CircuitOpenError when the
// operation has at least threshold recorded failures inside the
// history window. The check is read-only, so a rejected call neither
// consumes an attempt nor records a failure. A threshold of zero or
// less uses DefaultThreshold.
func (e *Executor) ExecuteWithBreaker(ctx context.Context, op Operation, name string, strategy Strategy, threshold int) (any, error) {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if e.history.IsFrequentlyFailing(name, threshold) {
		e.logf("operation %q rejected: circuit open", name)
		return nil, &CircuitOpenError{
			Op:       name,
			Failures: e.history.Count(name),
			Window:   e.history.Window(),
		}
	}
	return e.ExecuteWithRetry(ctx, op, name, strategy)
}

// waitRetry sleeps for d unless the context ends first.
func waitRetry(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
