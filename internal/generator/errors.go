package generator

import (
	"github.com/doxai/doxai/internal/errors"
)

var (
	// ErrInvalidCommand is recorded on the report when the trigger comment
	// names a known command with unusable options.
	ErrInvalidCommand = errors.New("invalid command")
	// ErrPRNotMerged is recorded on the report when the pull request is
	// still open or was closed without merging.
	ErrPRNotMerged = errors.New("pull request is not merged")
	// ErrCatastrophic marks errors that abort the whole run. Only these are
	// returned from Run.
	ErrCatastrophic = errors.New("documentation run aborted")
)

const defaultHint = "check the workflow logs for details and re-run the command"

// catastrophic marks err as aborting the run and guarantees a user hint.
func catastrophic(err error, format string, args ...any) error {
	wrapped := errors.Mark(errors.Wrapf(err, format, args...), ErrCatastrophic)
	if errors.Hint(wrapped) == "" {
		wrapped = errors.WithHint(wrapped, defaultHint)
	}
	return wrapped
}
