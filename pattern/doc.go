// Package pattern provides validation and static analysis for Strudel
// pattern text without executing or rendering it.
//
// Strudel patterns are short textual descriptions of rhythmic and melodic
// loops: a whitespace- and bracket-structured mini-language describing sound
// selection, grouping, and per-cycle transformations. This package decides
// whether a given text is syntactically sound, structurally meaningful, and
// safe to hand to a rendering surface, and produces actionable diagnostics
// along the way.
//
// # Architecture
//
// Validation composes four independent scanners:
//
//   - [CheckBalance]: single-pass bracket/paren/brace balance with exact
//     failure offsets.
//   - [CheckQuotes]: single-pass quote closure across single, double, and
//     backtick modes with backslash-escape suppression.
//   - [CheckSafety]: pattern-matching for known-dangerous constructs
//     (excessive gain, unbounded loops, dynamic code evaluation).
//   - [CheckHeuristics]: allow-list based feedback on unknown function
//     names, missing sound sources, and missing tempo calls.
//
// [Validate] aggregates the four into a single [Result]. A separate
// [Analyze] pass extracts descriptive metrics (tempo, shape, event count,
// complexity) into [Metadata], and [AutoFix] applies best-effort textual
// rewrites for a small set of issue classes.
//
// # Purity
//
// Every function in this package is a pure, synchronous computation over its
// input string: no I/O, no shared state, no clock reads. Calling any of them
// twice with identical input yields structurally identical output, and all
// of them are safe for concurrent use without locking.
//
// # Heuristic Limits
//
// The syntax checks are pattern-matching heuristics over a fixed vocabulary,
// not a verified grammar. Unknown-function warnings can fire for legitimate
// but unlisted functions, and the dangerous-construct scan is a best-effort
// safety net, not a security boundary.
package pattern
