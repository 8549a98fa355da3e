package generator

import (
	"fmt"
	"time"
)

// State is a phase of a documentation run.
type State string

const (
	StateIdle            State = "idle"
	StateValidating      State = "validating"
	StateBranchResolving State = "branch_resolving"
	StateProcessingFiles State = "processing_files"
	StateCommitting      State = "committing"
	StatePublishing      State = "publishing"
	StateDone            State = "done"
	StateFailed          State = "failed"
)

// IsTerminal reports whether the run has finished.
func IsTerminal(s State) bool {
	return s == StateDone || s == StateFailed
}

// Transition records one state change.
type Transition struct {
	From State
	To   State
	At   time.Time
}

func isAllowedTransition(from, to State) bool {
	if to == StateFailed {
		return !IsTerminal(from)
	}
	switch from {
	case StateIdle:
		return to == StateValidating
	case StateValidating:
		return to == StateBranchResolving || to == StateDone
	case StateBranchResolving:
		return to == StateProcessingFiles || to == StateDone
	case StateProcessingFiles:
		return to == StateCommitting || to == StatePublishing
	case StateCommitting:
		return to == StatePublishing
	case StatePublishing:
		return to == StateDone
	default:
		return false
	}
}

// advance moves the report to state to, rejecting transitions the run
// lifecycle does not allow.
func (r *Report) advance(to State, at time.Time) error {
	from := r.State
	if !isAllowedTransition(from, to) {
		return fmt.Errorf("disallowed transition: %s -> %s", from, to)
	}
	r.State = to
	r.Transitions = append(r.Transitions, Transition{From: from, To: to, At: at})
	return nil
}
