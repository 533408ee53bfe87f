package pattern

import (
	"fmt"
	"regexp"

	"golang.org/x/text/cases"
)

// MinimalExample is the smallest pattern that produces sound. It is offered
// as a suggestion whenever a pattern looks inert or is empty.
const MinimalExample = `s("bd*4")`

// HeuristicsResult carries advisory findings only; nothing in it affects
// validity.
type HeuristicsResult struct {
	Warnings    []string
	Suggestions []string
}

var (
	callTokenRe   = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
	soundSourceRe = regexp.MustCompile(`\b(?:s|sound|note|n|stack)\s*\(`)
	tempoCallRe   = regexp.MustCompile(`\bsetcp[ms]\s*\(`)
)

// foldName case-folds a function name for vocabulary lookup.
// A fresh Caser per call: cases.Caser is not safe for concurrent use.
func foldName(name string) string {
	return cases.Fold().String(name)
}

// CheckHeuristics applies advisory syntax checks: a missing sound source, a
// missing tempo call, and call-style tokens whose names are not in
// [KnownFunctions]. The unknown-function check is a heuristic over a fixed
// vocabulary and can flag legitimate but unlisted functions.
func CheckHeuristics(text string) HeuristicsResult {
	var result HeuristicsResult

	if !soundSourceRe.MatchString(text) {
		result.Warnings = append(result.Warnings, "pattern may not produce sound: no sound, note, or stack call found")
		result.Suggestions = append(result.Suggestions, "try a minimal pattern like "+MinimalExample)
	}

	seen := make(map[string]struct{})
	for _, m := range callTokenRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if IsKnownFunction(name) {
			continue
		}
		folded := foldName(name)
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		result.Warnings = append(result.Warnings, fmt.Sprintf("unknown function %q", name))
	}

	if !tempoCallRe.MatchString(text) {
		result.Suggestions = append(result.Suggestions, "add setcpm(<cycles per minute>) to set the tempo")
	}

	return result
}
