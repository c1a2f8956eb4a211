package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCandidateTrimsWhitespace(t *testing.T) {
	c, ok := NewCandidate("  add new line \t\n")
	require.True(t, ok)
	assert.Equal(t, "add new line", c.String())
}

func TestNewCandidateCollapsesBlankRuns(t *testing.T) {
	c, ok := NewCandidate("fix: stop the bleeding\n\n\n\nThe old code leaked handles.\n\n\nNow it does not.")
	require.True(t, ok)
	assert.Equal(t, "fix: stop the bleeding\n\nThe old code leaked handles.\n\nNow it does not.", c.String())
}

func TestNewCandidateNormalizesCRLF(t *testing.T) {
	c, ok := NewCandidate("subject\r\n\r\nbody line\r\n")
	require.True(t, ok)
	assert.Equal(t, "subject\n\nbody line", c.String())
}

func TestNewCandidateDropsEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\n\n", " \t \n \t "} {
		_, ok := NewCandidate(raw)
		assert.False(t, ok, "raw %q should not yield a candidate", raw)
	}
}

func TestNewCandidateIdempotent(t *testing.T) {
	inputs := []string{
		"feat: add retry budget",
		"fix: handle empty diff\n\nBody paragraph.",
		"chore: bump deps\n\nfirst\n\nsecond footer",
	}
	for _, in := range inputs {
		once, ok := NewCandidate(in)
		require.True(t, ok)
		twice, ok := NewCandidate(once.String())
		require.True(t, ok)
		assert.Equal(t, once, twice)
	}
}

func TestSummaryIsFirstLine(t *testing.T) {
	c, ok := NewCandidate("feat: one thing\n\nand a body")
	require.True(t, ok)
	assert.Equal(t, "feat: one thing", c.Summary())

	single, ok := NewCandidate("just a subject")
	require.True(t, ok)
	assert.Equal(t, "just a subject", single.Summary())
}
