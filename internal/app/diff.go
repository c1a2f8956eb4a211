package app

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/commitgpt/commitgpt/internal/ports"
)

// StagedDiff is the collected staged-change text. Truncated is set when the
// text had to be cut to fit the prompt budget; callers surface that as a
// warning since the model silently sees less than the user staged.
type StagedDiff struct {
	Text      string
	Truncated bool
}

// CollectDiff reads the staged diff through the Git port and bounds it to
// maxChars, cutting at a line boundary.
func CollectDiff(ctx context.Context, git ports.Git, opts ports.DiffOptions, maxChars int) (StagedDiff, error) {
	raw, err := git.StagedDiff(ctx, opts)
	if err != nil {
		return StagedDiff{}, fmt.Errorf("read staged diff: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		return StagedDiff{}, ErrNoStagedChanges
	}

	text, truncated := truncateAtLine(raw, maxChars)
	return StagedDiff{Text: text, Truncated: truncated}, nil
}

// truncateAtLine cuts s to at most max bytes, preferring the last full line
// that fits. max <= 0 means unbounded.
func truncateAtLine(s string, max int) (string, bool) {
	if max <= 0 || len(s) <= max {
		return s, false
	}
	cut := s[:max]
	if i := strings.LastIndexByte(cut, '\n'); i > 0 {
		cut = cut[:i+1]
	} else {
		// One giant line; a byte cut may land mid-rune.
		for len(cut) > 0 && !utf8.ValidString(cut) {
			cut = cut[:len(cut)-1]
		}
	}
	return cut, true
}
