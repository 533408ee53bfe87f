package resilience_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/williamzujkowski/strudel-mcp-server-sub002/resilience"
)

func ExampleExecutor_ExecuteWithRetry() {
	e := resilience.NewExecutor()

	attempts := 0
	op := func(ctx context.Context) (any, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("transient failure")
		}
		return "connected", nil
	}

	result, err := e.ExecuteWithRetry(context.Background(), op, "connect", resilience.Strategy{MaxRetries: 3})
	fmt.Println(result, err)
	fmt.Println("attempts:", attempts)
	// Output:
	// connected <nil>
	// attempts: 3
}

func ExampleExecutor_ExecuteWithRetry_fallback() {
	e := resilience.NewExecutor()

	op := func(ctx context.Context) (any, error) {
		return nil, errors.New("always fails")
	}
	strategy := resilience.Strategy{
		Fallback: func(ctx context.Context) (any, error) {
			return "cached value", nil
		},
	}

	result, err := e.ExecuteWithRetry(context.Background(), op, "fetch", strategy)
	fmt.Println(result, err)
	// Output:
	// cached value <nil>
}

func ExampleExecutor_ExecuteWithBreaker() {
	e := resilience.NewExecutor()

	op := func(ctx context.Context) (any, error) {
		return nil, errors.New("browser gone")
	}

	// Each call makes one attempt and records one failure.
	for i := 0; i < 3; i++ {
		_, _ = e.ExecuteWithBreaker(context.Background(), op, "play", resilience.Strategy{}, 3)
	}

	_, err := e.ExecuteWithBreaker(context.Background(), op, "play", resilience.Strategy{}, 3)
	fmt.Println(errors.Is(err, resilience.ErrCircuitOpen))
	// Output:
	// true
}
