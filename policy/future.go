package policy

import "context"

// Future is the handle to an execution started with Go. It resolves
// exactly once.
type Future[T any] struct {
	done    chan struct{}
	outcome Outcome[T]
}

// Go executes op through p on its own goroutine and returns a Future the
// caller can poll or wait on. Cancellation flows through ctx as in the
// blocking mode; an abandoned Future does not leak beyond the execution
// itself.
func Go[T any](ctx context.Context, p Policy[T], op Operation[T]) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		f.outcome = p.Execute(ctx, op)
		close(f.done)
	}()
	return f
}

// Done returns a channel closed when the outcome is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Outcome blocks until the execution finishes and returns its outcome.
func (f *Future[T]) Outcome() Outcome[T] {
	<-f.done
	return f.outcome
}

// Poll returns the outcome if the execution has finished. The second
// return value reports availability.
func (f *Future[T]) Poll() (Outcome[T], bool) {
	select {
	case <-f.done:
		return f.outcome, true
	default:
		return Outcome[T]{}, false
	}
}
