package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/jonwraymond/faultops/policy"
)

// Config configures the rate limiter.
type Config struct {
	// Rate is the number of operations allowed per second.
	// Default: 100
	Rate float64

	// Burst is the maximum burst size.
	// Default: 10
	Burst int

	// WaitOnLimit waits for a token instead of rejecting.
	// Default: false
	WaitOnLimit bool

	// MaxWait is the maximum time to wait for a token.
	// Default: 1 second
	MaxWait time.Duration
}

// Limiter is a token bucket rate limiting policy.
type Limiter[T any] struct {
	config Config

	mu          sync.Mutex
	tokens      float64
	lastRefresh time.Time
}

// New creates a rate limiter.
func New[T any](config Config) *Limiter[T] {
	// Apply defaults
	if config.Rate <= 0 {
		config.Rate = 100
	}
	if config.Burst <= 0 {
		config.Burst = 10
	}
	if config.MaxWait <= 0 {
		config.MaxWait = time.Second
	}

	return &Limiter[T]{
		config:      config,
		tokens:      float64(config.Burst),
		lastRefresh: time.Now(),
	}
}

// Execute runs the operation if a token is available, rejecting or
// waiting per the configuration. Rejected calls never run the operation.
func (l *Limiter[T]) Execute(ctx context.Context, op policy.Operation[T]) policy.Outcome[T] {
	if l.config.WaitOnLimit {
		if err := l.wait(ctx); err != nil {
			return policy.Failure[T](err)
		}
	} else if !l.allow() {
		return policy.Failure[T](policy.ErrRateLimited)
	}

	value, err := op(ctx)
	if err != nil {
		return policy.Failure[T](err)
	}
	return policy.Success(value)
}

// Allow reports whether a call would be admitted right now, spending a
// token if so.
func (l *Limiter[T]) Allow() bool {
	return l.allow()
}

func (l *Limiter[T]) allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.refillLocked()

	if l.tokens >= 1 {
		l.tokens--
		return true
	}
	return false
}

// wait blocks until a token is available, the wait cap is hit, or ctx is
// canceled.
func (l *Limiter[T]) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if l.allow() {
		return nil
	}

	l.mu.Lock()
	needed := 1 - l.tokens
	waitTime := time.Duration(needed / l.config.Rate * float64(time.Second))
	l.mu.Unlock()

	if waitTime > l.config.MaxWait {
		waitTime = l.config.MaxWait
	}

	timer := time.NewTimer(waitTime)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		if l.allow() {
			return nil
		}
		return policy.ErrRateLimited
	}
}

// Tokens returns the current number of available tokens.
func (l *Limiter[T]) Tokens() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refillLocked()
	return l.tokens
}

// Reset refills the bucket to full capacity.
func (l *Limiter[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens = float64(l.config.Burst)
	l.lastRefresh = time.Now()
}

func (l *Limiter[T]) refillLocked() {
	now := time.Now()
	elapsed := now.Sub(l.lastRefresh)
	l.lastRefresh = now

	l.tokens += elapsed.Seconds() * l.config.Rate
	if l.tokens > float64(l.config.Burst) {
		l.tokens = float64(l.config.Burst)
	}
}
