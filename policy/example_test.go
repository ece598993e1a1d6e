package policy_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/faultops/circuit"
	"github.com/jonwraymond/faultops/fallback"
	"github.com/jonwraymond/faultops/policy"
	"github.com/jonwraymond/faultops/retry"
)

func ExamplePolicy() {
	r := retry.New[string](retry.Config{
		MaxRetries: 2,
		Schedule:   retry.NoDelay(),
	})

	attempts := 0
	out := r.Execute(context.Background(), func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 2 {
			return "", errors.New("transient failure")
		}
		return "hello", nil
	})

	fmt.Println(out.Value(), attempts)
	// Output:
	// hello 2
}

func ExampleWrap() {
	// Retry around a circuit breaker: the breaker trips on repeated
	// failures and the retry layer sees its rejections.
	breaker := circuit.New[int](circuit.Config{
		FailureThreshold: 2,
		BreakDuration:    time.Minute,
	})
	r := retry.New[int](retry.Config{
		MaxRetries: 5,
		Schedule:   retry.NoDelay(),
	})

	p := policy.Wrap[int](r, breaker)

	out := p.Execute(context.Background(), func(ctx context.Context) (int, error) {
		return 0, errors.New("service down")
	})

	fmt.Println(policy.KindOf(out.Err()))
	// Output:
	// circuit_open
}

func ExampleCompose() {
	// Fallback outermost so it catches everything below, including the
	// retry layer exhausting its schedule.
	fb := fallback.New[string](fallback.Config[string]{Value: "cached"})
	r := retry.New[string](retry.Config{MaxRetries: 1, Schedule: retry.NoDelay()})

	p := policy.Compose[string](fb, r)

	out := p.Execute(context.Background(), func(ctx context.Context) (string, error) {
		return "", errors.New("service down")
	})

	fmt.Println(out.Value())
	// Output:
	// cached
}

func ExampleGo() {
	p := policy.NoOp[int]{}

	f := policy.Go[int](context.Background(), p, func(ctx context.Context) (int, error) {
		return 42, nil
	})

	out := f.Outcome()
	fmt.Println(out.Value())
	// Output:
	// 42
}
