package policy

import "context"

// wrapped is the composite produced by Wrap: outer executes an operation
// that executes inner.
type wrapped[T any] struct {
	outer Policy[T]
	inner Policy[T]
}

// Wrap composes two policies into one. The returned policy's Execute
// delegates to outer, handing it an operation that runs the caller's
// operation through inner. Each layer only observes the Outcome crossing
// its own boundary; it cannot see a sibling layer's internal decisions.
//
// Wrapping is associative: Wrap(a, Wrap(b, c)) and Wrap(Wrap(a, b), c)
// produce the same execution order a → b → c → operation.
func Wrap[T any](outer, inner Policy[T]) Policy[T] {
	return wrapped[T]{outer: outer, inner: inner}
}

// Execute runs op through the composite, outermost layer first.
func (w wrapped[T]) Execute(ctx context.Context, op Operation[T]) Outcome[T] {
	return w.outer.Execute(ctx, func(ctx context.Context) (T, error) {
		return w.inner.Execute(ctx, op).Unwrap()
	})
}

// Compose folds policies into a single one, outermost first, innermost
// last. Compose() returns a NoOp and Compose(p) returns p unchanged.
func Compose[T any](policies ...Policy[T]) Policy[T] {
	switch len(policies) {
	case 0:
		return NoOp[T]{}
	case 1:
		return policies[0]
	}

	composite := policies[len(policies)-1]
	for i := len(policies) - 2; i >= 0; i-- {
		composite = Wrap(policies[i], composite)
	}
	return composite
}
