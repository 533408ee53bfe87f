package pattern

import "fmt"

// BalanceResult is the verdict of a single delimiter or quote scan.
type BalanceResult struct {
	// Valid is true when the scan found no problem.
	Valid bool

	// Message describes the first failure, including the offending
	// character and its 0-based offset where one can be pinpointed.
	// Empty when Valid is true.
	Message string
}

// balanceOK is the shared success verdict.
var balanceOK = BalanceResult{Valid: true}

// CheckBalance scans text left to right and verifies that every round,
// square, and curly bracket is matched and properly nested. It fails on the
// first unmatched or mismatched closer, and at end of input on the innermost
// still-open opener. Quoting is handled separately by [CheckQuotes]; this
// scan treats quoted brackets like any other character.
func CheckBalance(text string) BalanceResult {
	pairs := map[rune]rune{')': '(', ']': '[', '}': '{'}
	var stack []rune
	for i, c := range text {
		switch c {
		case '(', '[', '{':
			stack = append(stack, c)
		case ')', ']', '}':
			if len(stack) == 0 {
				return BalanceResult{Message: fmt.Sprintf("unmatched '%c' at position %d", c, i)}
			}
			top := stack[len(stack)-1]
			if top != pairs[c] {
				return BalanceResult{Message: fmt.Sprintf("mismatched '%c' at position %d: still-open '%c' expects a different closer", c, i, top)}
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return BalanceResult{Message: fmt.Sprintf("unclosed '%c'", stack[len(stack)-1])}
	}
	return balanceOK
}

// quoteMode tracks which quote delimiter, if any, is currently open.
type quoteMode int

const (
	quoteNone quoteMode = iota
	quoteSingle
	quoteDouble
	quoteBacktick
)

// CheckQuotes scans text left to right and verifies that every single,
// double, and backtick quote is closed. The three modes are mutually
// exclusive: inside one mode the other two delimiters are plain characters.
// A delimiter immediately preceded by an unescaped backslash never opens or
// closes a mode.
func CheckQuotes(text string) BalanceResult {
	mode := quoteNone
	escaped := false
	for _, c := range text {
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		switch {
		case c == '\'' && mode == quoteNone:
			mode = quoteSingle
		case c == '\'' && mode == quoteSingle:
			mode = quoteNone
		case c == '"' && mode == quoteNone:
			mode = quoteDouble
		case c == '"' && mode == quoteDouble:
			mode = quoteNone
		case c == '`' && mode == quoteNone:
			mode = quoteBacktick
		case c == '`' && mode == quoteBacktick:
			mode = quoteNone
		}
	}
	switch mode {
	case quoteSingle:
		return BalanceResult{Message: "unclosed single quote"}
	case quoteDouble:
		return BalanceResult{Message: "unclosed double quote"}
	case quoteBacktick:
		return BalanceResult{Message: "unclosed backtick"}
	}
	return balanceOK
}
