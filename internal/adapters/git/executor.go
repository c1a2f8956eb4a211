package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/commitgpt/commitgpt/internal/ports"
)

// Executor implements ports.Git by shelling out to git.
type Executor struct{}

// NewExecutor creates the exec-based git adapter.
func NewExecutor() *Executor {
	return &Executor{}
}

// IsInRepository reports whether the working directory is inside a work tree.
func (e *Executor) IsInRepository(ctx context.Context) (bool, error) {
	out, err := exec.CommandContext(ctx, "git", "rev-parse", "--is-inside-work-tree").Output()
	if err != nil {
		return false, nil
	}
	return strings.TrimSpace(string(out)) == "true", nil
}

// StagedDiff returns the staged diff text.
func (e *Executor) StagedDiff(ctx context.Context, opts ports.DiffOptions) (string, error) {
	cmd := exec.CommandContext(ctx, "git", diffArgs(opts)...)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git diff failed: %s", stderrOf(err))
	}
	return string(out), nil
}

// diffArgs builds the git argument list for the staged diff.
func diffArgs(opts ports.DiffOptions) []string {
	args := []string{"--no-pager", "diff", "--staged", "--no-color"}
	if opts.IgnoreSpace {
		args = append(args, "--ignore-space-change", "--ignore-blank-lines")
	}
	if len(opts.Paths) > 0 {
		args = append(args, "--")
		args = append(args, opts.Paths...)
	}
	return args
}

// Commit runs git commit, passing the message through a temp file so
// multi-line bodies survive intact.
func (e *Executor) Commit(ctx context.Context, message string, dryRun bool) (string, error) {
	if dryRun {
		return "[dry run] would commit:\n" + message, nil
	}

	tmp, err := os.CreateTemp("", "commitgpt-msg-*.txt")
	if err != nil {
		return "", fmt.Errorf("create message file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(message); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write message file: %w", err)
	}
	tmp.Close()

	out, err := exec.CommandContext(ctx, "git", "commit", "-F", tmp.Name()).Output()
	if err != nil {
		return "", fmt.Errorf("git commit failed: %s", stderrOf(err))
	}

	hash := extractCommitHash(string(out))
	if hash == "" {
		hash = "(committed)"
	}
	return hash, nil
}

// stderrOf prefers git's stderr over exec's generic exit message.
func stderrOf(err error) string {
	if exitErr, ok := err.(*exec.ExitError); ok {
		if s := strings.TrimSpace(string(exitErr.Stderr)); s != "" {
			return s
		}
	}
	return err.Error()
}

// extractCommitHash pulls the short hash out of "[branch hash] subject".
func extractCommitHash(output string) string {
	for _, line := range strings.Split(output, "\n") {
		start := strings.IndexByte(line, '[')
		end := strings.IndexByte(line, ']')
		if start == -1 || end == -1 || end < start {
			continue
		}
		fields := strings.Fields(line[start+1 : end])
		if len(fields) >= 2 {
			return fields[len(fields)-1]
		}
	}
	return ""
}
