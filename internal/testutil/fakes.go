package testutil

import (
	"context"
	"time"

	"github.com/commitgpt/commitgpt/internal/ports"
)

// FakeGit is a scripted ports.Git.
type FakeGit struct {
	Diff         string
	DiffErr      error
	DiffCalls    int
	LastDiffOpts ports.DiffOptions
	CommitErr    error
	Committed    []string
	CommitHash   string
	InRepo       bool
	InRepoErr    error
}

func (f *FakeGit) StagedDiff(_ context.Context, opts ports.DiffOptions) (string, error) {
	f.DiffCalls++
	f.LastDiffOpts = opts
	if f.DiffErr != nil {
		return "", f.DiffErr
	}
	return f.Diff, nil
}

func (f *FakeGit) Commit(_ context.Context, message string, dryRun bool) (string, error) {
	if f.CommitErr != nil {
		return "", f.CommitErr
	}
	if !dryRun {
		f.Committed = append(f.Committed, message)
	}
	if f.CommitHash != "" {
		return f.CommitHash, nil
	}
	return "abc123d", nil
}

func (f *FakeGit) IsInRepository(_ context.Context) (bool, error) {
	return f.InRepo, f.InRepoErr
}

// FakeCompleter replays scripted results call by call: Errs[i] wins over
// Batches[i]; past the script it repeats the last entry.
type FakeCompleter struct {
	Batches [][]string
	Errs    []error
	Calls   int
	LastReq ports.CompletionRequest
}

func (f *FakeCompleter) Complete(_ context.Context, req ports.CompletionRequest) ([]string, error) {
	i := f.Calls
	f.Calls++
	f.LastReq = req

	if i >= len(f.Errs) && i >= len(f.Batches) {
		i = max(len(f.Errs), len(f.Batches)) - 1
	}
	if i >= 0 && i < len(f.Errs) && f.Errs[i] != nil {
		return nil, f.Errs[i]
	}
	if i >= 0 && i < len(f.Batches) {
		return f.Batches[i], nil
	}
	return nil, nil
}

// FakeSleeper records requested delays without sleeping.
type FakeSleeper struct {
	Slept []time.Duration
	Err   error
}

func (f *FakeSleeper) Sleep(_ context.Context, d time.Duration) error {
	f.Slept = append(f.Slept, d)
	return f.Err
}

// PassthroughRedactor leaves text untouched. SecretFound scripts the
// detection result.
type PassthroughRedactor struct {
	SecretFound bool
}

func (r PassthroughRedactor) Redact(text string) string    { return text }
func (r PassthroughRedactor) RedactLog(text string) string { return text }
func (r PassthroughRedactor) ContainsSecret(_ string) bool { return r.SecretFound }
