// internal/output/formatter.go
package output

import "time"

// Skip records a source file that needed no documentation work.
type Skip struct {
	Source string `json:"source"`
	Doc    string `json:"doc"`
	Reason string `json:"reason"`
}

// Failure records a file that could not be processed.
type Failure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Result is the per-file outcome of one run. Generated and Updated hold
// doc paths, Deleted holds doc paths removed from the docs branch.
type Result struct {
	Generated []string  `json:"generated"`
	Updated   []string  `json:"updated"`
	Deleted   []string  `json:"deleted"`
	Skipped   []Skip    `json:"skipped"`
	Failed    []Failure `json:"failed"`
}

// Succeeded counts files that produced a change on the docs branch.
func (r Result) Succeeded() int {
	return len(r.Generated) + len(r.Updated) + len(r.Deleted)
}

// Empty reports whether the run touched no file at all.
func (r Result) Empty() bool {
	return r.Succeeded() == 0 && len(r.Skipped) == 0 && len(r.Failed) == 0
}

// PRLink identifies a pull request in rendered output.
type PRLink struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// Usage totals the AI calls of a run.
type Usage struct {
	Requests     int `json:"requests"`
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// RunSummary is everything reported about a run: to the pull request, to
// the Actions step summary, and to stdout.
type RunSummary struct {
	RunID      string        `json:"run_id"`
	Repository string        `json:"repository"`
	PRNumber   int           `json:"pr_number"`
	Command    string        `json:"command,omitempty"`
	Lang       string        `json:"lang,omitempty"`
	State      string        `json:"state"`
	DocsBranch string        `json:"docs_branch,omitempty"`
	DocsPR     *PRLink       `json:"docs_pr,omitempty"`
	DryRun     bool          `json:"dry_run,omitempty"`
	Planned    []string      `json:"planned,omitempty"`
	Result     Result        `json:"result"`
	Usage      Usage         `json:"usage"`
	Error      string        `json:"error,omitempty"`
	Hint       string        `json:"hint,omitempty"`
	Duration   time.Duration `json:"-"`
	DurationMs int64         `json:"duration_ms"`
}

// Formatter formats a RunSummary into output bytes.
type Formatter interface {
	Format(summary *RunSummary) ([]byte, error)
}

// ForName returns the formatter for "json" or "markdown".
func ForName(name string) (Formatter, bool) {
	switch name {
	case "json":
		return NewJSONFormatter(), true
	case "markdown", "md", "":
		return NewMarkdownFormatter(), true
	}
	return nil, false
}
