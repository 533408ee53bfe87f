package pattern

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FixResult is the outcome of a best-effort textual rewrite.
type FixResult struct {
	// Text is the possibly rewritten pattern.
	Text string `json:"text"`

	// Fixes describes each applied rewrite, in order. Empty when the
	// input needed no changes.
	Fixes []string `json:"fixes"`
}

var (
	gainValueRe   = regexp.MustCompile(`(\bgain\s*\(\s*)(\d+(?:\.\d+)?)`)
	unquotedArgRe = regexp.MustCompile(`(\b(?:s|sound|note|n)\s*\(\s*)([^)"'` + "`" + `][^)"'` + "`" + `]*?)(\s*\))`)
)

// AutoFix applies purely textual rewrites for a small set of issue
// classes: gain arguments above the soft ceiling are clamped to it, and
// sound-call arguments lacking quote characters are wrapped in double
// quotes. Each issue class is handled independently. AutoFix never fails;
// at worst it returns the input unchanged with an empty fix list.
func AutoFix(text string) FixResult {
	result := FixResult{Text: text}

	result.Text = gainValueRe.ReplaceAllStringFunc(result.Text, func(call string) string {
		m := gainValueRe.FindStringSubmatch(call)
		value, err := strconv.ParseFloat(m[2], 64)
		if err != nil || value <= GainSoftCeiling {
			return call
		}
		result.Fixes = append(result.Fixes,
			fmt.Sprintf("clamped gain %s to %g", m[2], GainSoftCeiling))
		return m[1] + strconv.FormatFloat(GainSoftCeiling, 'g', -1, 64)
	})

	result.Text = unquotedArgRe.ReplaceAllStringFunc(result.Text, func(call string) string {
		m := unquotedArgRe.FindStringSubmatch(call)
		arg := strings.TrimSpace(m[2])
		if arg == "" || !looksLikeMiniNotation(arg) {
			return call
		}
		result.Fixes = append(result.Fixes,
			fmt.Sprintf("added quotes around %s", arg))
		return m[1] + `"` + arg + `"` + m[3]
	})

	return result
}

// looksLikeMiniNotation reports whether an unquoted argument reads as
// mini-notation rather than a numeric or expression argument. n(0) and
// note(60) are legitimate without quotes; bd*4 is not.
func looksLikeMiniNotation(arg string) bool {
	if _, err := strconv.ParseFloat(arg, 64); err == nil {
		return false
	}
	// Nested calls and variables stay untouched.
	return !strings.ContainsAny(arg, "(),")
}
