package strudel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// fakeTab is a minimal DevTools endpoint that answers Runtime.evaluate
// with canned results keyed by expression substring.
type fakeTab struct {
	mu      sync.Mutex
	replies map[string]string // expression substring -> result JSON
	seen    []string

	srv *httptest.Server
}

func newFakeTab(t *testing.T) *fakeTab {
	t.Helper()
	tab := &fakeTab{replies: make(map[string]string)}
	upgrader := websocket.Upgrader{}
	tab.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var req cdpRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			expr, _ := req.Params["expression"].(string)
			tab.mu.Lock()
			tab.seen = append(tab.seen, expr)
			result := `{"result":{"type":"undefined"}}`
			for sub, canned := range tab.replies {
				if strings.Contains(expr, sub) {
					result = canned
				}
			}
			tab.mu.Unlock()
			if err := conn.WriteJSON(map[string]any{
				"id":     req.ID,
				"result": json.RawMessage(result),
			}); err != nil {
				return
			}
		}
	}))
	t.Cleanup(tab.srv.Close)
	return tab
}

func (tab *fakeTab) wsURL() string {
	return "ws" + strings.TrimPrefix(tab.srv.URL, "http")
}

func (tab *fakeTab) reply(exprSubstring, resultJSON string) {
	tab.mu.Lock()
	defer tab.mu.Unlock()
	tab.replies[exprSubstring] = resultJSON
}

func (tab *fakeTab) expressions() []string {
	tab.mu.Lock()
	defer tab.mu.Unlock()
	return append([]string(nil), tab.seen...)
}

func dialFake(t *testing.T, tab *fakeTab) *CDPClient {
	t.Helper()
	c, err := Dial(context.Background(), tab.wsURL())
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestWritePatternEncodesCode(t *testing.T) {
	tab := newFakeTab(t)
	c := dialFake(t, tab)

	code := "s(\"bd*4\")\n.gain(0.8)"
	if err := c.WritePattern(context.Background(), code); err != nil {
		t.Fatalf("WritePattern() error = %v", err)
	}

	exprs := tab.expressions()
	if len(exprs) != 1 {
		t.Fatalf("expressions sent = %d, want 1", len(exprs))
	}
	want := `window.strudelMirror.setCode("s(\"bd*4\")\n.gain(0.8)")`
	if exprs[0] != want {
		t.Fatalf("expression = %s, want %s", exprs[0], want)
	}
}

func TestPlayAndStopExpressions(t *testing.T) {
	tab := newFakeTab(t)
	c := dialFake(t, tab)
	ctx := context.Background()

	if err := c.Play(ctx); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if err := c.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}

	exprs := tab.expressions()
	if len(exprs) != 2 {
		t.Fatalf("expressions sent = %d, want 2", len(exprs))
	}
	if exprs[0] != "window.strudelMirror.evaluate()" {
		t.Fatalf("play expression = %s", exprs[0])
	}
	if exprs[1] != "window.strudelMirror.stop()" {
		t.Fatalf("stop expression = %s", exprs[1])
	}
}

func TestCurrentPattern(t *testing.T) {
	tab := newFakeTab(t)
	tab.reply("strudelMirror.code", `{"result":{"type":"string","value":"s(\"bd*4\")"}}`)
	c := dialFake(t, tab)

	got, err := c.CurrentPattern(context.Background())
	if err != nil {
		t.Fatalf("CurrentPattern() error = %v", err)
	}
	if got != `s("bd*4")` {
		t.Fatalf("CurrentPattern() = %q", got)
	}
}

func TestPageExceptionBecomesEvalError(t *testing.T) {
	tab := newFakeTab(t)
	tab.reply("evaluate()", `{
		"result":{"type":"object"},
		"exceptionDetails":{"text":"Uncaught","exception":{"description":"ReferenceError: bd is not defined"}}
	}`)
	c := dialFake(t, tab)

	err := c.Play(context.Background())
	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("error = %v, want *EvalError", err)
	}
	if !strings.Contains(evalErr.Detail, "ReferenceError") {
		t.Fatalf("EvalError.Detail = %q", evalErr.Detail)
	}
}

func TestCallsFailAfterClose(t *testing.T) {
	tab := newFakeTab(t)
	c := dialFake(t, tab)

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := c.Play(context.Background()); !errors.Is(err, ErrConnectionClosed) {
		t.Fatalf("Play() after Close error = %v, want ErrConnectionClosed", err)
	}
}

func TestCallHonorsContext(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		// Swallow requests without answering.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	c, err := Dial(context.Background(), "ws"+strings.TrimPrefix(srv.URL, "http"))
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := c.Play(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Play() error = %v, want deadline exceeded", err)
	}
}
