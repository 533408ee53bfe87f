package pattern

import (
	"regexp"
	"strconv"
	"strings"
)

// Metadata is a descriptive snapshot of one pattern text. It is recomputed
// fresh on every [Analyze] call and never cached: pattern text that differs
// by one character can differ in every field.
type Metadata struct {
	// BPM is the numeric argument of the first tempo-setting call, or
	// nil when the pattern sets no tempo.
	BPM *float64 `json:"bpm,omitempty"`

	// Complexity is a bounded heuristic score in [0,1].
	Complexity float64 `json:"complexity"`

	// EventsPerCycle counts top-level rhythmic slots in the first sound
	// or note argument. Sub-groups count as a single slot.
	EventsPerCycle int `json:"events_per_cycle"`

	// UniqueValues holds the distinct non-rest tokens of that same
	// argument, in order of first appearance.
	UniqueValues []string `json:"unique_values"`

	// FunctionsUsed holds the distinct call-style identifiers found in
	// the pattern, in order of first appearance. It is purely
	// descriptive and independent of the heuristics allow-list.
	FunctionsUsed []string `json:"functions_used"`

	// IsStack is true iff a parallel-grouping call is present.
	IsStack bool `json:"is_stack"`

	// UsesSound and UsesNote report whether the corresponding source
	// call appears anywhere.
	UsesSound bool `json:"uses_sound"`
	UsesNote  bool `json:"uses_note"`
}

// Complexity factor caps. Each factor saturates before summation and the
// total is re-clamped, so the score stays in [0,1] for pathological input
// while remaining monotone in every factor.
const (
	stackWeight      = 0.2
	perFunctionScore = 0.05
	functionsCap     = 0.3
	perChainScore    = 0.04
	chainCap         = 0.25
	densityDivisor   = 16.0
	densityCap       = 0.25
)

var (
	tempoValueRe  = regexp.MustCompile(`\bsetcp[ms]\s*\(\s*(\d+(?:\.\d+)?)`)
	stackCallRe   = regexp.MustCompile(`\bstack\s*\(`)
	soundCallRe   = regexp.MustCompile(`\b(?:s|sound)\s*\(`)
	noteCallRe    = regexp.MustCompile(`\b(?:note|n)\s*\(`)
	chainedCallRe = regexp.MustCompile(`\.[A-Za-z_][A-Za-z0-9_]*\s*\(`)
	sourceArgRe   = regexp.MustCompile(`\b(?:s|sound|note|n)\s*\(\s*(?:"([^"]*)"|'([^']*)'|` + "`([^`]*)`" + `)`)
)

// Analyze extracts descriptive metrics from text. It is a pure function:
// identical input yields identical output, and arbitrary input, however
// long or deeply nested, yields a Complexity within [0,1].
func Analyze(text string) Metadata {
	meta := Metadata{
		UniqueValues:  []string{},
		FunctionsUsed: []string{},
	}

	if m := tempoValueRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			meta.BPM = &v
		}
	}

	meta.IsStack = stackCallRe.MatchString(text)
	meta.UsesSound = soundCallRe.MatchString(text)
	meta.UsesNote = noteCallRe.MatchString(text)

	seen := make(map[string]struct{})
	for _, m := range callTokenRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		meta.FunctionsUsed = append(meta.FunctionsUsed, name)
	}

	if arg, ok := firstSourceArg(text); ok {
		tokens := splitTopLevel(arg)
		meta.EventsPerCycle = len(tokens)
		unique := make(map[string]struct{})
		for _, tok := range tokens {
			if tok == "~" {
				continue
			}
			if _, dup := unique[tok]; dup {
				continue
			}
			unique[tok] = struct{}{}
			meta.UniqueValues = append(meta.UniqueValues, tok)
		}
	}

	meta.Complexity = complexity(meta, text)
	return meta
}

// firstSourceArg returns the quoted argument of the first sound or note
// call, in any of the three quote styles.
func firstSourceArg(text string) (string, bool) {
	m := sourceArgRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	for _, group := range m[1:] {
		if group != "" {
			return group, true
		}
	}
	// An empty quoted argument matches with all groups empty.
	return "", true
}

// splitTopLevel splits a mini-notation string into top-level tokens.
// Bracketed sub-groups ([...]) and alternations (<...>) count as a single
// token; they are not expanded into the top-level count. A rest marker is a
// token like any other.
func splitTopLevel(arg string) []string {
	var tokens []string
	var current strings.Builder
	depth := 0
	for _, c := range arg {
		switch c {
		case '[', '<':
			depth++
			current.WriteRune(c)
		case ']', '>':
			if depth > 0 {
				depth--
			}
			current.WriteRune(c)
		case ' ', '\t', '\n', '\r':
			if depth > 0 {
				current.WriteRune(c)
				continue
			}
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(c)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// complexity combines stacking, function variety, modifier chaining, and
// event density with diminishing returns.
func complexity(meta Metadata, text string) float64 {
	score := 0.0
	if meta.IsStack {
		score += stackWeight
	}
	score += capAt(float64(len(meta.FunctionsUsed))*perFunctionScore, functionsCap)
	chains := len(chainedCallRe.FindAllString(text, -1))
	score += capAt(float64(chains)*perChainScore, chainCap)
	score += capAt(float64(meta.EventsPerCycle)/densityDivisor*densityCap, densityCap)
	return clamp01(score)
}

func capAt(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	return v
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
