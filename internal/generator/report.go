package generator

import (
	"time"

	"github.com/doxai/doxai/internal/commands"
	"github.com/doxai/doxai/internal/docsync"
	"github.com/doxai/doxai/internal/errors"
	"github.com/doxai/doxai/internal/output"
)

// EventIssueComment is the GitHub event name of a comment on an issue or
// pull request.
const EventIssueComment = "issue_comment"

// Event is the trigger of a run.
type Event struct {
	Name string
	// Action is the webhook action; only "created" comments trigger a run.
	Action string
	// Number is the issue or pull request number the comment was made on.
	Number        int
	IsPullRequest bool
	Body          string
	Author        string
}

// Report describes what a run did. Result is only written by Run and must
// be treated as read-only afterwards.
type Report struct {
	RunID       string
	Number      int
	State       State
	Transitions []Transition
	// Ignored is set when the event carried no command for this bot.
	Ignored bool
	Command *commands.Command
	// Err is a non-fatal outcome that stopped the run early, such as
	// ErrInvalidCommand or ErrPRNotMerged. Catastrophic errors are returned
	// from Run instead.
	Err        error
	PR         *docsync.PRDetails
	Branch     *docsync.DocsBranchState
	DocsPR     *docsync.DocsPRRef
	CommitSHA  string
	CommentURL string
	Result     output.Result
	Usage      output.Usage
	DryRun     bool
	Planned    []string
	StartedAt  time.Time
	FinishedAt time.Time
}

func newReport(runID string, now time.Time) *Report {
	return &Report{RunID: runID, State: StateIdle, StartedAt: now}
}

// Summary converts the report into the form rendered for users. fatal is
// the error returned by Run, if any.
func (r *Report) Summary(repository string, fatal error) *output.RunSummary {
	s := &output.RunSummary{
		RunID:      r.RunID,
		Repository: repository,
		PRNumber:   r.Number,
		State:      string(r.State),
		DryRun:     r.DryRun,
		Planned:    r.Planned,
		Result:     r.Result,
		Usage:      r.Usage,
		Duration:   r.FinishedAt.Sub(r.StartedAt),
	}
	if r.Command != nil {
		s.Command = r.Command.String()
		s.Lang = string(r.Command.Options.Lang)
	}
	if r.Branch != nil {
		s.DocsBranch = r.Branch.BranchName
	}
	if r.DocsPR != nil {
		s.DocsPR = &output.PRLink{Number: r.DocsPR.Number, URL: r.DocsPR.URL}
	}
	err := fatal
	if err == nil {
		err = r.Err
	}
	if err != nil {
		s.Error = err.Error()
		s.Hint = errors.Hint(err)
	}
	if s.Duration < 0 {
		s.Duration = 0
	}
	return s
}
