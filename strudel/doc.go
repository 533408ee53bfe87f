// Package strudel drives a live Strudel REPL running in a
// Chromium-based browser tab.
//
// # Architecture
//
// The package talks the Chrome DevTools Protocol over a websocket to
// the tab hosting the REPL. Every operation is expressed as a single
// Runtime.evaluate call against the page's strudelMirror editor
// object, so the package never needs to know how the REPL renders or
// schedules audio. A background read loop owns the websocket read
// side and routes responses to waiting callers by request id.
//
// # Connection Lifecycle
//
// Dial establishes the websocket session. The client stays usable
// until Close is called or the read loop observes a connection error;
// after either, every pending and future call fails with
// ErrConnectionClosed. The client does not reconnect on its own.
package strudel
