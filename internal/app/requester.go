package app

import (
	"context"
	"time"

	"github.com/commitgpt/commitgpt/internal/ports"
)

// Requester issues the single completion call for a run and applies the
// retry policy. Retries are sequential so a flaky connection never produces
// duplicate billable requests.
type Requester struct {
	completer ports.Completer
	sleeper   ports.Sleeper
	policy    RetryPolicy
	timeout   time.Duration
}

// NewRequester wires a requester. timeout bounds each individual attempt so
// a stalled connection cannot hang the run.
func NewRequester(completer ports.Completer, sleeper ports.Sleeper, policy RetryPolicy, timeout time.Duration) *Requester {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Requester{
		completer: completer,
		sleeper:   sleeper,
		policy:    policy,
		timeout:   timeout,
	}
}

// Request asks the service for req.N completions. The returned batch may be
// shorter than N; partial batches are for the normalizer to judge, only
// classified errors surface here.
func (r *Requester) Request(ctx context.Context, req ports.CompletionRequest) ([]string, error) {
	for attempt := 1; ; attempt++ {
		reqCtx, cancel := context.WithTimeout(ctx, r.timeout)
		batch, err := r.completer.Complete(reqCtx, req)
		cancel()
		if err == nil {
			return batch, nil
		}

		retry, delay := r.policy.Decide(attempt, err)
		if !retry {
			return nil, err
		}
		if serr := r.sleeper.Sleep(ctx, delay); serr != nil {
			// Interrupted mid-backoff; the original classified error is the
			// one worth reporting.
			return nil, err
		}
	}
}
