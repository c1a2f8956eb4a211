package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commitgpt/commitgpt/internal/ports"
	"github.com/commitgpt/commitgpt/internal/testutil"
)

func newTestRequester(c *testutil.FakeCompleter, s *testutil.FakeSleeper) *Requester {
	return NewRequester(c, s, DefaultRetryPolicy(), time.Minute)
}

func TestRequesterSuccessFirstTry(t *testing.T) {
	completer := &testutil.FakeCompleter{Batches: [][]string{{"one", "two"}}}
	sleeper := &testutil.FakeSleeper{}

	batch, err := newTestRequester(completer, sleeper).Request(context.Background(), ports.CompletionRequest{N: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, batch)
	assert.Equal(t, 1, completer.Calls)
	assert.Empty(t, sleeper.Slept)
}

func TestRequesterRateLimitExhausted(t *testing.T) {
	rl := fmt.Errorf("%w: 429", ErrRateLimited)
	completer := &testutil.FakeCompleter{Errs: []error{rl, rl, rl}}
	sleeper := &testutil.FakeSleeper{}

	_, err := newTestRequester(completer, sleeper).Request(context.Background(), ports.CompletionRequest{N: 5})
	require.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 3, completer.Calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, sleeper.Slept)
}

func TestRequesterRateLimitThenSuccess(t *testing.T) {
	rl := fmt.Errorf("%w: 429", ErrRateLimited)
	completer := &testutil.FakeCompleter{
		Errs:    []error{rl, nil},
		Batches: [][]string{nil, {"recovered"}},
	}
	sleeper := &testutil.FakeSleeper{}

	batch, err := newTestRequester(completer, sleeper).Request(context.Background(), ports.CompletionRequest{N: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"recovered"}, batch)
	assert.Equal(t, 2, completer.Calls)
}

func TestRequesterTransportRetriedOnce(t *testing.T) {
	tr := fmt.Errorf("%w: connection reset", ErrTransport)
	completer := &testutil.FakeCompleter{Errs: []error{tr, tr}}
	sleeper := &testutil.FakeSleeper{}

	_, err := newTestRequester(completer, sleeper).Request(context.Background(), ports.CompletionRequest{N: 5})
	require.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, 2, completer.Calls)
	assert.Len(t, sleeper.Slept, 1)
}

func TestRequesterUnauthorizedNotRetried(t *testing.T) {
	completer := &testutil.FakeCompleter{Errs: []error{fmt.Errorf("%w: 401", ErrUnauthorized)}}
	sleeper := &testutil.FakeSleeper{}

	_, err := newTestRequester(completer, sleeper).Request(context.Background(), ports.CompletionRequest{N: 5})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, completer.Calls)
	assert.Empty(t, sleeper.Slept)
}

func TestRequesterInterruptedBackoffSurfacesOriginalError(t *testing.T) {
	rl := fmt.Errorf("%w: 429", ErrRateLimited)
	completer := &testutil.FakeCompleter{Errs: []error{rl, rl, rl}}
	sleeper := &testutil.FakeSleeper{Err: context.Canceled}

	_, err := newTestRequester(completer, sleeper).Request(context.Background(), ports.CompletionRequest{N: 5})
	require.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 1, completer.Calls)
}

func TestRequesterPassesPartialBatchThrough(t *testing.T) {
	// The service returned fewer than N completions; that is not an error
	// here, the normalizer judges the batch.
	completer := &testutil.FakeCompleter{Batches: [][]string{{"only one"}}}
	sleeper := &testutil.FakeSleeper{}

	batch, err := newTestRequester(completer, sleeper).Request(context.Background(), ports.CompletionRequest{N: 5})
	require.NoError(t, err)
	assert.Len(t, batch, 1)
}
