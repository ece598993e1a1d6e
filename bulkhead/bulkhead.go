package bulkhead

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/jonwraymond/faultops/policy"
)

// UnboundedQueue configures a queue with no length limit: callers wait for
// an execution slot instead of being rejected.
const UnboundedQueue = -1

// Config configures the bulkhead.
type Config struct {
	// MaxConcurrent is the maximum number of operations running at once.
	// Default: 10
	MaxConcurrent int

	// MaxQueue is the maximum number of callers waiting for a slot.
	// 0 rejects as soon as all slots are busy; UnboundedQueue never
	// rejects.
	MaxQueue int
}

// Bulkhead limits concurrent operations, queueing or rejecting the excess.
type Bulkhead[T any] struct {
	config Config
	sem    *semaphore.Weighted

	mu        sync.Mutex
	active    int
	queued    int
	maxActive int
	rejected  int64
}

// New creates a bulkhead.
func New[T any](config Config) *Bulkhead[T] {
	// Apply defaults
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 10
	}
	if config.MaxQueue < 0 {
		config.MaxQueue = UnboundedQueue
	}

	return &Bulkhead[T]{
		config: config,
		sem:    semaphore.NewWeighted(int64(config.MaxConcurrent)),
	}
}

// Execute runs the operation inside an execution slot, waiting in the
// queue if one is configured. Callers beyond MaxConcurrent + MaxQueue are
// rejected with policy.ErrBulkheadFull without the operation running.
func (b *Bulkhead[T]) Execute(ctx context.Context, op policy.Operation[T]) policy.Outcome[T] {
	if err := b.acquire(ctx); err != nil {
		return policy.Failure[T](err)
	}
	defer b.release()

	value, err := op(ctx)
	if err != nil {
		return policy.Failure[T](err)
	}
	return policy.Success(value)
}

// acquire takes an execution slot, occupying a queue slot while waiting.
// The semaphore hands slots to waiters in arrival order, so no queued
// caller starves.
func (b *Bulkhead[T]) acquire(ctx context.Context) error {
	// Fast path: free execution slot, no queueing.
	if b.sem.TryAcquire(1) {
		b.enterSlot()
		return nil
	}

	b.mu.Lock()
	if b.config.MaxQueue != UnboundedQueue && b.queued >= b.config.MaxQueue {
		b.rejected++
		b.mu.Unlock()
		return policy.ErrBulkheadFull
	}
	b.queued++
	b.mu.Unlock()

	err := b.sem.Acquire(ctx, 1)

	b.mu.Lock()
	b.queued--
	b.mu.Unlock()

	if err != nil {
		// Canceled while queued; the queue slot is already released.
		return err
	}

	b.enterSlot()
	return nil
}

func (b *Bulkhead[T]) enterSlot() {
	b.mu.Lock()
	b.active++
	if b.active > b.maxActive {
		b.maxActive = b.active
	}
	b.mu.Unlock()
}

func (b *Bulkhead[T]) release() {
	b.sem.Release(1)
	b.mu.Lock()
	b.active--
	b.mu.Unlock()
}

// Metrics contains a snapshot of bulkhead accounting.
type Metrics struct {
	Active        int
	Queued        int
	MaxActive     int
	MaxConcurrent int
	Rejected      int64
}

// Metrics returns a snapshot of slot accounting.
func (b *Bulkhead[T]) Metrics() Metrics {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Metrics{
		Active:        b.active,
		Queued:        b.queued,
		MaxActive:     b.maxActive,
		MaxConcurrent: b.config.MaxConcurrent,
		Rejected:      b.rejected,
	}
}
