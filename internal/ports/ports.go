package ports

import (
	"context"
	"time"
)

// Git is the version-control collaborator. The pipeline only ever needs the
// staged diff and a single commit call.
type Git interface {
	StagedDiff(ctx context.Context, opts DiffOptions) (string, error)
	Commit(ctx context.Context, message string, dryRun bool) (hash string, err error)
	IsInRepository(ctx context.Context) (bool, error)
}

// DiffOptions controls how the staged diff is produced.
type DiffOptions struct {
	IgnoreSpace bool     // pass --ignore-space-change --ignore-blank-lines
	Paths       []string // optional path filters; empty means everything staged
}

// Completer is the completion-service transport. One call returns up to N
// independent completions for the same prompt.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) ([]string, error)
}

// CompletionRequest is the input to Completer.Complete.
type CompletionRequest struct {
	System      string
	User        string
	Model       string
	MaxTokens   int
	Temperature float32
	N           int
}

// Sleeper waits between retry attempts. Injected so backoff timing is
// testable without real sleeps.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Redactor scrubs sensitive data from text.
type Redactor interface {
	Redact(text string) string
	RedactLog(text string) string // for logging (more aggressive)
	ContainsSecret(text string) bool
}
