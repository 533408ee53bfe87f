package pattern

import "strings"

// Result is the aggregated validation verdict for one pattern text.
// Messages appear in the order the checks ran.
type Result struct {
	// Valid is true iff Errors is empty.
	Valid bool `json:"valid"`

	// Errors are fatal findings: the pattern must not be sent downstream.
	Errors []string `json:"errors"`

	// Warnings are non-fatal findings.
	Warnings []string `json:"warnings"`

	// Suggestions are concrete next steps for the author.
	Suggestions []string `json:"suggestions"`
}

// Validate runs every scanner over text and aggregates their findings into
// a single verdict. It always returns a complete Result and never fails as
// a Go error: all problems are reported as data.
//
// Empty or all-whitespace input short-circuits with a single error; no
// other scanner runs. Otherwise the delimiter and quote scans, the safety
// scan, and the heuristics scan all run regardless of earlier failures, so
// an invalid pattern still gets full advisory feedback.
func Validate(text string) Result {
	var result Result

	if strings.TrimSpace(text) == "" {
		result.Errors = append(result.Errors, "pattern is empty")
		result.Suggestions = append(result.Suggestions, "try a minimal pattern like "+MinimalExample)
		return result
	}

	if balance := CheckBalance(text); !balance.Valid {
		result.Errors = append(result.Errors, balance.Message)
		result.Suggestions = append(result.Suggestions, "check that every bracket has a matching closer")
	}
	if quotes := CheckQuotes(text); !quotes.Valid {
		result.Errors = append(result.Errors, quotes.Message)
		result.Suggestions = append(result.Suggestions, "check that every quote is closed")
	}

	safety := CheckSafety(text)
	result.Errors = append(result.Errors, safety.Errors...)
	result.Warnings = append(result.Warnings, safety.Warnings...)

	heuristics := CheckHeuristics(text)
	result.Warnings = append(result.Warnings, heuristics.Warnings...)
	result.Suggestions = append(result.Suggestions, heuristics.Suggestions...)

	result.Valid = len(result.Errors) == 0
	return result
}
