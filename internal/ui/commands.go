package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/commitgpt/commitgpt/internal/app"
	"github.com/commitgpt/commitgpt/internal/domain"
)

type msgSuggestions struct {
	run        *app.Run
	candidates []domain.Candidate
	err        error
}

type msgCommitDone struct {
	hash string
	err  error
}

// cmdSuggest fetches a candidate batch. With run == nil it first prepares
// the run (collects the diff, builds the prompt); a re-roll passes the
// existing run so the identical prompt is re-sent.
func (m *Model) cmdSuggest(run *app.Run) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if run == nil {
			prepared, err := m.app.Suggest.Prepare(ctx)
			if err != nil {
				return msgSuggestions{err: err}
			}
			run = prepared
		}
		candidates, err := m.app.Suggest.Suggest(ctx, run)
		return msgSuggestions{run: run, candidates: candidates, err: err}
	}
}

// cmdCommit performs the run's single commit with the (possibly edited)
// message.
func (m *Model) cmdCommit(message string) tea.Cmd {
	return func() tea.Msg {
		hash, err := m.app.Commit.Commit(context.Background(), message, m.dryRun)
		return msgCommitDone{hash: hash, err: err}
	}
}
