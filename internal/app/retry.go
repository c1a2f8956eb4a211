package app

import (
	"errors"
	"math"
	"time"
)

// RetryPolicy decides, per attempt and error kind, whether the requester
// should try again and after how long. It is a pure value so backoff timing
// is unit-testable without a transport or real sleeps.
type RetryPolicy struct {
	MaxAttempts int     // attempts for rate-limit errors, including the first
	BackoffBase float64 // seconds
	BackoffMax  float64 // seconds
}

// DefaultRetryPolicy mirrors the config defaults.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BackoffBase: 1.0, BackoffMax: 8.0}
}

// Decide reports whether attempt (1-based) should be followed by another try.
// Rate limits retry up to MaxAttempts, transport failures retry exactly once,
// everything else is terminal. Delay is exponential: min(base*2^(n-1), max).
func (p RetryPolicy) Decide(attempt int, err error) (retry bool, delay time.Duration) {
	switch {
	case errors.Is(err, ErrRateLimited):
		if attempt >= p.MaxAttempts {
			return false, 0
		}
	case errors.Is(err, ErrTransport):
		if attempt >= 2 {
			return false, 0
		}
	default:
		return false, 0
	}
	return true, p.backoff(attempt)
}

func (p RetryPolicy) backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	secs := p.BackoffBase * math.Pow(2, float64(attempt-1))
	if secs > p.BackoffMax {
		secs = p.BackoffMax
	}
	return time.Duration(secs * float64(time.Second))
}
