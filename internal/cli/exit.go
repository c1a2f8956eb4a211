package cli

import (
	"errors"

	"github.com/commitgpt/commitgpt/internal/app"
	"github.com/commitgpt/commitgpt/internal/config"
)

// errUsage marks bad flags/arguments, distinct from runtime failures.
var errUsage = errors.New("usage error")

// Exit statuses. Cancellation is intentional and must never look like a
// failure, hence the conventional interrupt status.
const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 2
	exitNoChanges = 3
	exitConfig    = 4
	exitService   = 5
	exitCommit    = 6
	exitCancelled = 130
)

// ExitCode maps an error kind to the documented exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, app.ErrCancelled):
		return exitCancelled
	case errors.Is(err, errUsage):
		return exitUsage
	case errors.Is(err, app.ErrNoStagedChanges):
		return exitNoChanges
	case errors.Is(err, config.ErrInvalid), errors.Is(err, app.ErrUnauthorized):
		return exitConfig
	case errors.Is(err, app.ErrRateLimited),
		errors.Is(err, app.ErrTransport),
		errors.Is(err, app.ErrService),
		errors.Is(err, app.ErrNoUsableSuggestions):
		return exitService
	case errors.Is(err, app.ErrCommitFailed):
		return exitCommit
	default:
		return exitFailure
	}
}
