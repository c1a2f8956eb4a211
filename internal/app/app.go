package app

import (
	"context"
	"fmt"
	"time"

	"github.com/commitgpt/commitgpt/internal/domain"
	"github.com/commitgpt/commitgpt/internal/ports"
)

// Options are the per-run knobs the resolved configuration hands the
// pipeline. The loader has already validated ranges; the pipeline trusts
// them.
type Options struct {
	ContextPrefix string
	Model         string
	Suggestions   int
	MaxTokens     int
	Temperature   float32
	DiffCharLimit int
	IgnoreSpace   bool
	Paths         []string
	Redact        bool
}

// Run is the single-use state of one invocation: the collected diff and the
// prompt derived from it. Re-rolls reuse the same Run. SecretsExposed is set
// when the diff contains credential-looking content that was NOT scrubbed
// (redaction disabled); callers surface that as a warning before sending.
type Run struct {
	Diff           StagedDiff
	Prompt         Prompt
	SecretsExposed bool
}

// SuggestService drives the suggestion pipeline: collect, build, request,
// normalize.
type SuggestService struct {
	git       ports.Git
	requester *Requester
	redactor  ports.Redactor
	opts      Options
}

// NewSuggestService creates the suggestion service.
func NewSuggestService(git ports.Git, requester *Requester, redactor ports.Redactor, opts Options) *SuggestService {
	return &SuggestService{
		git:       git,
		requester: requester,
		redactor:  redactor,
		opts:      opts,
	}
}

// Prepare collects and bounds the staged diff and derives the prompt.
// Called once per invocation; nothing here talks to the completion service.
func (s *SuggestService) Prepare(ctx context.Context) (*Run, error) {
	inRepo, err := s.git.IsInRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("check repository: %w", err)
	}
	if !inRepo {
		return nil, fmt.Errorf("%w: not inside a git repository", ErrNoStagedChanges)
	}

	diff, err := CollectDiff(ctx, s.git, ports.DiffOptions{
		IgnoreSpace: s.opts.IgnoreSpace,
		Paths:       s.opts.Paths,
	}, s.opts.DiffCharLimit)
	if err != nil {
		return nil, err
	}

	exposed := false
	if s.redactor != nil {
		if s.opts.Redact {
			diff.Text = s.redactor.Redact(diff.Text)
		} else {
			exposed = s.redactor.ContainsSecret(diff.Text)
		}
	}

	return &Run{
		Diff:           diff,
		Prompt:         BuildPrompt(s.opts.ContextPrefix, diff),
		SecretsExposed: exposed,
	}, nil
}

// Suggest issues one completion request for the run's prompt and normalizes
// the batch. Safe to call repeatedly on the same Run; that is what a re-roll
// is.
func (s *SuggestService) Suggest(ctx context.Context, run *Run) ([]domain.Candidate, error) {
	batch, err := s.requester.Request(ctx, ports.CompletionRequest{
		System:      run.Prompt.System,
		User:        run.Prompt.User,
		Model:       s.opts.Model,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
		N:           s.opts.Suggestions,
	})
	if err != nil {
		return nil, err
	}
	return NormalizeBatch(batch)
}

// CommitService executes the one commit a successful run ends with.
type CommitService struct {
	git     ports.Git
	timeout time.Duration
}

// NewCommitService creates the commit service.
func NewCommitService(git ports.Git) *CommitService {
	return &CommitService{git: git, timeout: 10 * time.Second}
}

// Commit runs git commit with the final message.
func (c *CommitService) Commit(ctx context.Context, message string, dryRun bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if message == "" {
		return "", fmt.Errorf("%w: empty message", ErrCommitFailed)
	}

	hash, err := c.git.Commit(ctx, message, dryRun)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}
	return hash, nil
}

// App is the container with both services wired.
type App struct {
	Suggest *SuggestService
	Commit  *CommitService
}

// New wires the application from its collaborators.
func New(git ports.Git, completer ports.Completer, sleeper ports.Sleeper, redactor ports.Redactor, policy RetryPolicy, timeout time.Duration, opts Options) *App {
	requester := NewRequester(completer, sleeper, policy, timeout)
	return &App{
		Suggest: NewSuggestService(git, requester, redactor, opts),
		Commit:  NewCommitService(git),
	}
}
