package retry

import (
	"math/rand/v2"
	"time"
)

// Schedule computes the delay before the retry following a given attempt.
// Attempts are numbered from 1. A Schedule must be a pure function of the
// attempt index; any per-call state belongs in the policy, not the
// schedule.
type Schedule func(attempt int) time.Duration

// NoDelay retries immediately.
func NoDelay() Schedule {
	return func(int) time.Duration { return 0 }
}

// Constant waits the same delay between every attempt.
func Constant(delay time.Duration) Schedule {
	return func(int) time.Duration { return delay }
}

// Exponential doubles the delay each attempt starting from base, capped at
// max. A max of zero or less leaves the growth uncapped.
func Exponential(base, max time.Duration) Schedule {
	return func(attempt int) time.Duration {
		delay := base
		for i := 1; i < attempt; i++ {
			delay *= 2
			if max > 0 && delay >= max {
				return max
			}
		}
		if max > 0 && delay > max {
			return max
		}
		return delay
	}
}

// WithJitter spreads the schedule's delay by up to fraction of itself to
// avoid synchronized retries. Fraction is clamped to [0, 1].
func WithJitter(s Schedule, fraction float64) Schedule {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	return func(attempt int) time.Duration {
		delay := s(attempt)
		if delay <= 0 || fraction == 0 {
			return delay
		}
		span := int64(float64(delay) * fraction)
		if span <= 0 {
			return delay
		}
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		return delay + time.Duration(rand.Int64N(span))
	}
}
