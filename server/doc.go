// Package server exposes pattern validation, analysis, and live REPL
// control as MCP tools over stdio.
//
// # Architecture
//
// The server wires three layers together:
//
//   - [pattern]: pure text analysis, always available.
//   - [strudel.Client]: the live browser session, optional. Tools that
//     need it fail cleanly when no session is attached.
//   - [resilience.Executor]: wraps every browser round trip with
//     retry, timeout, and circuit-breaker protection.
//
// Each tool is a typed handler registered on an mcp.Server. Validation
// tools never touch the browser; playback tools validate first and
// refuse patterns with errors so a live session is never handed broken
// code.
//
// # Tool Surface
//
// validate_pattern, analyze_pattern, auto_fix, write_pattern, play,
// stop, get_pattern, and error_stats. The first three are pure and
// deterministic; the rest drive or inspect the live session.
package server
