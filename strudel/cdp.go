package strudel

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const dialTimeout = 10 * time.Second

// CDPClient controls a Strudel REPL tab through the Chrome DevTools
// Protocol. It implements Client.
type CDPClient struct {
	conn *websocket.Conn

	writeMu sync.Mutex // serializes websocket writes

	mu      sync.Mutex
	nextID  int64
	pending map[int64]chan cdpResponse
	closed  bool
	readErr error
}

var _ Client = (*CDPClient)(nil)

type cdpRequest struct {
	ID     int64          `json:"id"`
	Method string         `json:"method"`
	Params map[string]any `json:"params,omitempty"`
}

type cdpResponse struct {
	ID     int64           `json:"id"`
	Method string          `json:"method,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *cdpProtoError  `json:"error,omitempty"`
}

type cdpProtoError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type evaluateResult struct {
	Result struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value,omitempty"`
	} `json:"result"`
	ExceptionDetails *struct {
		Text      string `json:"text"`
		Exception *struct {
			Description string `json:"description"`
		} `json:"exception,omitempty"`
	} `json:"exceptionDetails,omitempty"`
}

// Dial connects to a DevTools page websocket endpoint, the
// webSocketDebuggerUrl of the tab hosting the Strudel REPL.
func Dial(ctx context.Context, wsURL string) (*CDPClient, error) {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("strudel: dial %s: %w", wsURL, err)
	}

	c := &CDPClient{
		conn:    conn,
		pending: make(map[int64]chan cdpResponse),
	}
	go c.readLoop()
	return c, nil
}

// readLoop owns the websocket read side. Responses are routed to the
// waiting caller by id; protocol events carry no id and are dropped.
func (c *CDPClient) readLoop() {
	for {
		var resp cdpResponse
		if err := c.conn.ReadJSON(&resp); err != nil {
			c.failPending(err)
			return
		}
		if resp.ID == 0 {
			continue
		}
		c.mu.Lock()
		ch, ok := c.pending[resp.ID]
		if ok {
			delete(c.pending, resp.ID)
		}
		c.mu.Unlock()
		if ok {
			ch <- resp
		}
	}
}

// failPending marks the session dead and unblocks every waiter.
func (c *CDPClient) failPending(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		c.readErr = err
	}
	for id, ch := range c.pending {
		delete(c.pending, id)
		close(ch)
	}
}

// call sends one CDP request and waits for its response.
func (c *CDPClient) call(ctx context.Context, method string, params map[string]any) (json.RawMessage, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrConnectionClosed
	}
	c.nextID++
	id := c.nextID
	ch := make(chan cdpResponse, 1)
	c.pending[id] = ch
	c.mu.Unlock()

	req := cdpRequest{ID: id, Method: method, Params: params}
	c.writeMu.Lock()
	err := c.conn.WriteJSON(req)
	c.writeMu.Unlock()
	if err != nil {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, fmt.Errorf("strudel: send %s: %w", method, err)
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return nil, ErrConnectionClosed
		}
		if resp.Error != nil {
			return nil, fmt.Errorf("strudel: %s: %s (code %d)", method, resp.Error.Message, resp.Error.Code)
		}
		return resp.Result, nil
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
		return nil, ctx.Err()
	}
}

// evaluate runs a JavaScript expression in the page and returns its
// JSON-encoded value.
func (c *CDPClient) evaluate(ctx context.Context, expression string) (json.RawMessage, error) {
	raw, err := c.call(ctx, "Runtime.evaluate", map[string]any{
		"expression":    expression,
		"returnByValue": true,
		"awaitPromise":  true,
	})
	if err != nil {
		return nil, err
	}

	var res evaluateResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("strudel: decode evaluate result: %w", err)
	}
	if res.ExceptionDetails != nil {
		detail := res.ExceptionDetails.Text
		if res.ExceptionDetails.Exception != nil && res.ExceptionDetails.Exception.Description != "" {
			detail = res.ExceptionDetails.Exception.Description
		}
		return nil, &EvalError{Expression: expression, Detail: detail}
	}
	return res.Result.Value, nil
}

// WritePattern replaces the editor buffer with code.
func (c *CDPClient) WritePattern(ctx context.Context, code string) error {
	literal, err := json.Marshal(code)
	if err != nil {
		return fmt.Errorf("strudel: encode pattern: %w", err)
	}
	_, err = c.evaluate(ctx, fmt.Sprintf("window.strudelMirror.setCode(%s)", literal))
	return err
}

// Play evaluates the current editor buffer.
func (c *CDPClient) Play(ctx context.Context) error {
	_, err := c.evaluate(ctx, "window.strudelMirror.evaluate()")
	return err
}

// Stop halts playback.
func (c *CDPClient) Stop(ctx context.Context) error {
	_, err := c.evaluate(ctx, "window.strudelMirror.stop()")
	return err
}

// CurrentPattern returns the editor buffer's contents.
func (c *CDPClient) CurrentPattern(ctx context.Context) (string, error) {
	value, err := c.evaluate(ctx, "window.strudelMirror.code")
	if err != nil {
		return "", err
	}
	var code string
	if err := json.Unmarshal(value, &code); err != nil {
		return "", fmt.Errorf("strudel: decode pattern text: %w", err)
	}
	return code, nil
}

// Close ends the session and unblocks pending calls.
func (c *CDPClient) Close() error {
	c.failPending(ErrConnectionClosed)
	return c.conn.Close()
}
