package app

import (
	"context"
	"time"
)

// StdSleeper waits with the wall clock. Tests substitute a fake.
type StdSleeper struct{}

func (StdSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
