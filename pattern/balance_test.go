package pattern

import (
	"strings"
	"testing"
)

func TestCheckBalance_Valid(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"no brackets", "bd sd bd sd"},
		{"empty", ""},
		{"simple call", `s("bd*4")`},
		{"nested kinds", `stack(s("[bd sd]"), n("{0 1}"))`},
		{"deep nesting", strings.Repeat("(", 50) + strings.Repeat(")", 50)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckBalance(tc.text)
			if !got.Valid {
				t.Errorf("CheckBalance(%q) = %q, want valid", tc.text, got.Message)
			}
			if got.Message != "" {
				t.Errorf("valid result carries message %q", got.Message)
			}
		})
	}
}

func TestCheckBalance_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		wantSub string
	}{
		{"unmatched closer", `s"bd")`, "unmatched ')' at position 5"},
		{"unmatched closer at start", `)`, "unmatched ')' at position 0"},
		{"mismatched closer", `s([bd)`, "mismatched ')' at position 5"},
		{"unclosed paren", `s("bd*4"`, "unclosed '('"},
		{"unclosed bracket", `s("x") [`, "unclosed '['"},
		{"unclosed brace", `{`, "unclosed '{'"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckBalance(tc.text)
			if got.Valid {
				t.Fatalf("CheckBalance(%q) valid, want failure", tc.text)
			}
			if !strings.Contains(got.Message, tc.wantSub) {
				t.Errorf("message %q does not contain %q", got.Message, tc.wantSub)
			}
		})
	}
}

func TestCheckBalance_RemovingLastCloserFails(t *testing.T) {
	// Property: a balanced nesting sequence minus its final closer always
	// reports the innermost opener as unclosed.
	sequences := []string{"()", "([]{})", "((()))", "[{()}]"}
	for _, seq := range sequences {
		if got := CheckBalance(seq); !got.Valid {
			t.Fatalf("CheckBalance(%q) = %q, want valid", seq, got.Message)
		}
		truncated := seq[:len(seq)-1]
		got := CheckBalance(truncated)
		if got.Valid {
			t.Errorf("CheckBalance(%q) valid, want unclosed failure", truncated)
		}
		if !strings.Contains(got.Message, "unclosed") {
			t.Errorf("CheckBalance(%q) = %q, want unclosed message", truncated, got.Message)
		}
	}
}

func TestCheckQuotes(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		valid   bool
		wantSub string
	}{
		{"no quotes", "bd sd", true, ""},
		{"closed double", `s("bd")`, true, ""},
		{"closed single", `s('bd')`, true, ""},
		{"closed backtick", "s(`bd`)", true, ""},
		{"double inside single", `'he said "hi"'`, true, ""},
		{"escaped double", `"a \" b"`, true, ""},
		{"escaped backslash then close", `"a\\"`, true, ""},
		{"open double", `s("bd`, false, "unclosed double quote"},
		{"open single", `s('bd`, false, "unclosed single quote"},
		{"open backtick", "s(`bd", false, "unclosed backtick"},
		{"escape disables close", `"a\"`, false, "unclosed double quote"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := CheckQuotes(tc.text)
			if got.Valid != tc.valid {
				t.Fatalf("CheckQuotes(%q).Valid = %v, want %v (message %q)", tc.text, got.Valid, tc.valid, got.Message)
			}
			if !tc.valid && !strings.Contains(got.Message, tc.wantSub) {
				t.Errorf("message %q does not contain %q", got.Message, tc.wantSub)
			}
		})
	}
}
