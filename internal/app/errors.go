package app

import "errors"

// Error kinds the pipeline can terminate with. Callers match with errors.Is
// and map each kind to a message and exit status.
var (
	// ErrNoStagedChanges means the diff collector found nothing to summarize.
	ErrNoStagedChanges = errors.New("no staged changes")

	// ErrUnauthorized means the completion service rejected the API key.
	// Fatal and non-retryable.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited means the completion service returned 429. Retried with
	// bounded backoff before it surfaces.
	ErrRateLimited = errors.New("rate limited")

	// ErrTransport means the request never got a usable response
	// (network failure, timeout). Retried once before it surfaces.
	ErrTransport = errors.New("transport failure")

	// ErrService means the completion service answered but the answer was
	// unusable (5xx, malformed body). Not retried.
	ErrService = errors.New("completion service error")

	// ErrNoUsableSuggestions means the request succeeded but normalization
	// left no candidates.
	ErrNoUsableSuggestions = errors.New("no usable suggestions")

	// ErrCommitFailed means git rejected the final commit (hooks, races).
	ErrCommitFailed = errors.New("commit failed")

	// ErrCancelled is the user walking away. A normal outcome, not a failure.
	ErrCancelled = errors.New("cancelled")
)
