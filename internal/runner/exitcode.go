// internal/runner/exitcode.go
package runner

import (
	"fmt"

	"github.com/doxai/doxai/internal/errors"
	"github.com/doxai/doxai/internal/generator"
)

// ExitError is returned when the command should exit with a non-zero code.
// Using a typed error instead of os.Exit ensures deferred cleanup runs.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeFor maps the error returned by a run to a process exit code:
// 0 for success and for handled outcomes, 1 for catastrophic failures, and
// 2 for anything else, such as configuration errors.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, generator.ErrCatastrophic):
		return 1
	default:
		var exit *ExitError
		if errors.As(err, &exit) {
			return exit.Code
		}
		return 2
	}
}
