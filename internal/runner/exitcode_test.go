// internal/runner/exitcode_test.go
package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doxai/doxai/internal/errors"
	"github.com/doxai/doxai/internal/generator"
)

func TestExitCodeFor(t *testing.T) {
	assert.Equal(t, 0, ExitCodeFor(nil))
	assert.Equal(t, 1, ExitCodeFor(errors.Mark(errors.New("listing files"), generator.ErrCatastrophic)))
	assert.Equal(t, 2, ExitCodeFor(errors.New("bad config")))
	assert.Equal(t, 3, ExitCodeFor(&ExitError{Code: 3}))
}

func TestExitErrorMessage(t *testing.T) {
	assert.Equal(t, "exit code 4", (&ExitError{Code: 4}).Error())

	inner := errors.New("boom")
	e := &ExitError{Code: 1, Err: inner}
	assert.Equal(t, "boom", e.Error())
	assert.True(t, errors.Is(e, inner))
}
