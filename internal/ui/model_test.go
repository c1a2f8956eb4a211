package ui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commitgpt/commitgpt/internal/app"
	"github.com/commitgpt/commitgpt/internal/testutil"
)

func newTestModel(git *testutil.FakeGit, completer *testutil.FakeCompleter) *Model {
	application := app.New(git, completer, &testutil.FakeSleeper{}, testutil.PassthroughRedactor{}, app.DefaultRetryPolicy(), time.Minute, app.Options{
		Model:         "gpt-4o-mini",
		Suggestions:   3,
		MaxTokens:     400,
		Temperature:   0.7,
		DiffCharLimit: 3800,
	})
	return New(application, false)
}

// step feeds a message and keeps the concrete model type.
func step(t *testing.T, m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(*Model)
	require.True(t, ok)
	return nm, cmd
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// load runs the initial suggestion fetch synchronously.
func load(t *testing.T, m *Model) *Model {
	t.Helper()
	msg := m.cmdSuggest(nil)()
	m, _ = step(t, m, msg)
	return m
}

func TestSelectEditCommit(t *testing.T) {
	git := &testutil.FakeGit{Diff: "+added line\n", InRepo: true}
	completer := &testutil.FakeCompleter{Batches: [][]string{{"feat: first", "feat: second", "feat: third"}}}
	m := newTestModel(git, completer)

	m = load(t, m)
	require.Equal(t, StatePresenting, m.state)
	require.Len(t, m.candidates, 3)

	// Pick candidate 2 of 3.
	m, _ = step(t, m, key(tea.KeyDown))
	m, _ = step(t, m, key(tea.KeyEnter))
	require.Equal(t, StateEditing, m.state)
	assert.Equal(t, "feat: second", m.editor.Value())

	// Edit: append a footer, then confirm.
	m.editor.SetValue("feat: second\n\nCloses #42")
	m, cmd := step(t, m, key(tea.KeyCtrlS))
	require.Equal(t, StateCommitting, m.state)
	require.NotNil(t, cmd)

	m, _ = step(t, m, cmd())
	assert.Equal(t, StateCommitted, m.state)

	require.Len(t, git.Committed, 1)
	assert.Equal(t, "feat: second\n\nCloses #42", git.Committed[0])

	state, err := m.Outcome()
	assert.Equal(t, StateCommitted, state)
	assert.NoError(t, err)
}

func TestCommitHappensAtMostOnce(t *testing.T) {
	git := &testutil.FakeGit{Diff: "+x\n", InRepo: true}
	completer := &testutil.FakeCompleter{Batches: [][]string{{"feat: only"}}}
	m := newTestModel(git, completer)

	m = load(t, m)
	m, _ = step(t, m, key(tea.KeyEnter))
	m, cmd := step(t, m, key(tea.KeyCtrlS))
	require.NotNil(t, cmd)

	// A second confirm while the first is in flight must be a no-op.
	m, cmd2 := step(t, m, key(tea.KeyCtrlS))
	assert.Nil(t, cmd2)

	m, _ = step(t, m, cmd())
	assert.Len(t, git.Committed, 1)
}

func TestCancelAtSelection(t *testing.T) {
	git := &testutil.FakeGit{Diff: "+x\n", InRepo: true}
	completer := &testutil.FakeCompleter{Batches: [][]string{{"feat: a", "feat: b"}}}
	m := newTestModel(git, completer)

	m = load(t, m)
	m, cmd := step(t, m, keyRune('q'))

	state, err := m.Outcome()
	assert.Equal(t, StateCancelled, state)
	assert.NoError(t, err)
	assert.Empty(t, git.Committed)
	assert.NotNil(t, cmd, "cancel quits the program")
}

func TestInterruptAnywhereCancels(t *testing.T) {
	git := &testutil.FakeGit{Diff: "+x\n", InRepo: true}
	completer := &testutil.FakeCompleter{Batches: [][]string{{"feat: a"}}}
	m := newTestModel(git, completer)

	m = load(t, m)
	m, _ = step(t, m, key(tea.KeyEnter))
	m, _ = step(t, m, key(tea.KeyCtrlC))

	state, _ := m.Outcome()
	assert.Equal(t, StateCancelled, state)
	assert.Empty(t, git.Committed)
}

func TestReRollFetchesFreshBatchWithSamePrompt(t *testing.T) {
	git := &testutil.FakeGit{Diff: "+x\n", InRepo: true}
	completer := &testutil.FakeCompleter{Batches: [][]string{
		{"feat: roll one"},
		{"feat: roll two"},
	}}
	m := newTestModel(git, completer)

	m = load(t, m)
	firstReq := completer.LastReq

	m, cmd := step(t, m, keyRune('r'))
	require.Equal(t, StateReRolling, m.state)
	require.NotNil(t, cmd)

	m, _ = step(t, m, cmd())
	require.Equal(t, StatePresenting, m.state)
	assert.Equal(t, "feat: roll two", m.candidates[0].String())
	assert.Equal(t, 2, completer.Calls)
	assert.Equal(t, firstReq, completer.LastReq)
	assert.Equal(t, 1, git.DiffCalls, "re-roll must not re-collect the diff")
}

func TestEscFromEditReturnsToList(t *testing.T) {
	git := &testutil.FakeGit{Diff: "+x\n", InRepo: true}
	completer := &testutil.FakeCompleter{Batches: [][]string{{"feat: a", "feat: b"}}}
	m := newTestModel(git, completer)

	m = load(t, m)
	m, _ = step(t, m, key(tea.KeyEnter))
	require.Equal(t, StateEditing, m.state)

	m, _ = step(t, m, key(tea.KeyEsc))
	assert.Equal(t, StatePresenting, m.state)
	assert.Empty(t, git.Committed)
}

func TestPipelineErrorEndsFailed(t *testing.T) {
	git := &testutil.FakeGit{Diff: "+x\n", InRepo: true}
	rl := fmt.Errorf("%w: 429", app.ErrRateLimited)
	completer := &testutil.FakeCompleter{Errs: []error{rl, rl, rl}}
	m := newTestModel(git, completer)

	m = load(t, m)
	state, err := m.Outcome()
	assert.Equal(t, StateFailed, state)
	assert.ErrorIs(t, err, app.ErrRateLimited)
	assert.Empty(t, git.Committed)
}

func TestCommitFailureSurfaces(t *testing.T) {
	git := &testutil.FakeGit{Diff: "+x\n", InRepo: true, CommitErr: fmt.Errorf("pre-commit hook declined")}
	completer := &testutil.FakeCompleter{Batches: [][]string{{"feat: a"}}}
	m := newTestModel(git, completer)

	m = load(t, m)
	m, _ = step(t, m, key(tea.KeyEnter))
	m, cmd := step(t, m, key(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())

	state, err := m.Outcome()
	assert.Equal(t, StateFailed, state)
	assert.ErrorIs(t, err, app.ErrCommitFailed)
}

func TestTruncationWarningShown(t *testing.T) {
	git := &testutil.FakeGit{Diff: "+x\n", InRepo: true}
	completer := &testutil.FakeCompleter{Batches: [][]string{{"feat: a"}}}
	m := newTestModel(git, completer)

	m = load(t, m)
	m.run.Diff.Truncated = true
	assert.Contains(t, m.View(), "truncated")
}
