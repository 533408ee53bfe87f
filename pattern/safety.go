package pattern

import (
	"fmt"
	"regexp"
	"strconv"
)

// Gain ceilings. Values above the soft ceiling draw a warning; values above
// the hard ceiling are rejected outright and named in the error.
const (
	GainSoftCeiling = 2.0
	GainHardCeiling = 5.0
)

// SafetyResult is the verdict of the dangerous-construct scan.
type SafetyResult struct {
	// Safe is true iff no hard errors were found. Warnings never
	// affect it.
	Safe bool

	// Errors lists hard failures: constructs that must never reach the
	// rendering surface.
	Errors []string

	// Warnings lists risky but permissible findings.
	Warnings []string
}

var (
	gainCallRe = regexp.MustCompile(`\bgain\s*\(\s*(\d+(?:\.\d+)?)`)
	loopRe     = regexp.MustCompile(`while\s*\(\s*true\s*\)|for\s*\(\s*;\s*;`)
	evalRe     = regexp.MustCompile(`\beval\s*\(|new\s+Function\b|\bFunction\s*\(`)
)

// CheckSafety scans text for known-dangerous constructs: gain values beyond
// the ceilings, unconditional loops, and dynamic code evaluation. The scan
// is regex-based and best-effort; it is a safety net, not a security
// boundary.
func CheckSafety(text string) SafetyResult {
	result := SafetyResult{Safe: true}

	for _, m := range gainCallRe.FindAllStringSubmatch(text, -1) {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		switch {
		case value > GainHardCeiling:
			result.Errors = append(result.Errors,
				fmt.Sprintf("gain %s exceeds the maximum of %g and would be clamped", m[1], GainHardCeiling))
		case value > GainSoftCeiling:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("gain %s may be too loud", m[1]))
		}
	}

	if loopRe.MatchString(text) {
		result.Errors = append(result.Errors, "unbounded loop construct is not allowed")
	}
	if evalRe.MatchString(text) {
		result.Errors = append(result.Errors, "dynamic code evaluation is not allowed")
	}

	result.Safe = len(result.Errors) == 0
	return result
}
