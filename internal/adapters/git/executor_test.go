package git

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commitgpt/commitgpt/internal/ports"
)

func TestDiffArgs(t *testing.T) {
	cases := []struct {
		name string
		opts ports.DiffOptions
		want []string
	}{
		{
			name: "plain",
			opts: ports.DiffOptions{},
			want: []string{"--no-pager", "diff", "--staged", "--no-color"},
		},
		{
			name: "ignore space",
			opts: ports.DiffOptions{IgnoreSpace: true},
			want: []string{"--no-pager", "diff", "--staged", "--no-color", "--ignore-space-change", "--ignore-blank-lines"},
		},
		{
			name: "path filter",
			opts: ports.DiffOptions{Paths: []string{"src/", "README.md"}},
			want: []string{"--no-pager", "diff", "--staged", "--no-color", "--", "src/", "README.md"},
		},
		{
			name: "both",
			opts: ports.DiffOptions{IgnoreSpace: true, Paths: []string{"cmd"}},
			want: []string{"--no-pager", "diff", "--staged", "--no-color", "--ignore-space-change", "--ignore-blank-lines", "--", "cmd"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, diffArgs(tc.opts))
		})
	}
}

func TestExtractCommitHash(t *testing.T) {
	cases := []struct {
		name   string
		output string
		want   string
	}{
		{
			name:   "standard",
			output: "[main 1a2b3c4] Add retry policy\n 1 file changed, 10 insertions(+)",
			want:   "1a2b3c4",
		},
		{
			name:   "detached head",
			output: "[detached HEAD f00ba42] Fix parser\n",
			want:   "f00ba42",
		},
		{
			name:   "root commit",
			output: "[main (root-commit) abc1234] Initial commit\n",
			want:   "abc1234",
		},
		{
			name:   "no bracket line",
			output: "nothing to commit, working tree clean",
			want:   "",
		},
		{
			name:   "empty",
			output: "",
			want:   "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, extractCommitHash(tc.output))
		})
	}
}

func TestCommitDryRun(t *testing.T) {
	e := NewExecutor()
	out, err := e.Commit(context.Background(), "Add feature\n\nWith a body.", true)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[dry run]"))
	assert.Contains(t, out, "Add feature")
	assert.Contains(t, out, "With a body.")
}
