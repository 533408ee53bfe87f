package resilience

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "operation",
			err:  &OperationError{Op: "play", Attempts: 4, Last: errors.New("boom")},
			want: `operation "play" failed after 4 attempts`,
		},
		{
			name: "timeout",
			err:  &TimeoutError{Op: "play", Limit: 5 * time.Second},
			want: `operation "play" timed out after 5s`,
		},
		{
			name: "circuit",
			err:  &CircuitOpenError{Op: "play", Failures: 3, Window: time.Minute},
			want: `circuit open for "play"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); !strings.Contains(got, tt.want) {
				t.Fatalf("Error() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestSentinelMatching(t *testing.T) {
	last := errors.New("boom")
	opErr := &OperationError{Op: "play", Attempts: 2, Last: last}

	if !errors.Is(opErr, ErrAttemptsExhausted) {
		t.Fatal("OperationError does not match ErrAttemptsExhausted")
	}
	if !errors.Is(opErr, last) {
		t.Fatal("OperationError does not unwrap its cause")
	}
	if errors.Is(opErr, ErrTimeout) {
		t.Fatal("OperationError matches ErrTimeout")
	}
	if !errors.Is(&TimeoutError{Op: "play"}, ErrTimeout) {
		t.Fatal("TimeoutError does not match ErrTimeout")
	}
	if !errors.Is(&CircuitOpenError{Op: "play"}, ErrCircuitOpen) {
		t.Fatal("CircuitOpenError does not match ErrCircuitOpen")
	}
}
