package strudel

import (
	"context"
	"errors"
	"fmt"
)

// ErrConnectionClosed reports that the browser session has ended.
var ErrConnectionClosed = errors.New("strudel: connection closed")

// EvalError reports a JavaScript exception raised while evaluating an
// expression in the REPL tab.
type EvalError struct {
	// Expression is the evaluated JavaScript.
	Expression string
	// Detail is the exception description from the page.
	Detail string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("strudel: evaluating %s: %s", e.Expression, e.Detail)
}

// Client is the control surface for a live Strudel REPL.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use;
//   operations may interleave in arrival order at the browser.
// - Context: every method honors ctx for the round trip to the
//   browser. An expression already dispatched keeps executing in the
//   page even when the caller gives up waiting.
// - Errors: methods return *EvalError for page-side exceptions and
//   ErrConnectionClosed once the session has ended.
// - Ownership: Close releases the underlying connection; the client
//   is unusable afterward.
type Client interface {
	// WritePattern replaces the editor buffer with code without
	// starting playback.
	WritePattern(ctx context.Context, code string) error
	// Play evaluates the current editor buffer, starting or updating
	// playback.
	Play(ctx context.Context) error
	// Stop halts playback. The editor buffer is left intact.
	Stop(ctx context.Context) error
	// CurrentPattern returns the editor buffer's current contents.
	CurrentPattern(ctx context.Context) (string, error)
	// Close ends the browser session.
	Close() error
}
