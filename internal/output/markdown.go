// internal/output/markdown.go
package output

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter outputs RunSummary as the Markdown used for the
// Actions step summary and for stdout.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format renders the RunSummary as Markdown.
func (f *MarkdownFormatter) Format(s *RunSummary) ([]byte, error) {
	var b strings.Builder

	title := "Documentation run"
	if s.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintf(&b, "## %s for %s#%d\n\n", title, s.Repository, s.PRNumber)

	if s.Error != "" {
		b.WriteString("### Error\n\n")
		b.WriteString(s.Error + "\n")
		if s.Hint != "" {
			b.WriteString("\n> " + s.Hint + "\n")
		}
		b.WriteString("\n")
	}

	writeCounts(&b, s.Result)
	if s.DocsPR != nil {
		fmt.Fprintf(&b, "\nDocumentation PR: [#%d](%s)\n", s.DocsPR.Number, s.DocsPR.URL)
	} else if s.DocsBranch != "" {
		fmt.Fprintf(&b, "\nDocumentation branch: `%s`\n", s.DocsBranch)
	}
	writeLists(&b, s.Result)

	if len(s.Planned) > 0 {
		b.WriteString("\n### Planned writes\n\n")
		for _, p := range s.Planned {
			b.WriteString("- " + p + "\n")
		}
	}

	writeFooter(&b, s)
	return []byte(b.String()), nil
}

// SummaryComment is the single comment posted on the originating PR once
// a run completes.
func SummaryComment(s *RunSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### Documentation %s\n\n", verb(s.Result))
	writeCounts(&b, s.Result)
	if s.DocsPR != nil {
		fmt.Fprintf(&b, "\nReview the documentation in #%d.\n", s.DocsPR.Number)
	}
	if len(s.Result.Failed) > 0 {
		b.WriteString("\n<details><summary>Failed files</summary>\n\n")
		writeFailures(&b, s.Result.Failed)
		b.WriteString("\n</details>\n")
	}
	writeFooter(&b, s)
	return b.String()
}

// PRBody is the description of a newly created documentation PR.
func PRBody(s *RunSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Documentation for #%d", s.PRNumber)
	if s.Command != "" {
		fmt.Fprintf(&b, ", generated by `%s`", s.Command)
	}
	b.WriteString(".\n\n")
	writeCounts(&b, s.Result)
	writeLists(&b, s.Result)
	writeFooter(&b, s)
	return b.String()
}

// UpdateComment is posted on an existing documentation PR when a later run
// pushes to its branch.
func UpdateComment(s *RunSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Documentation refreshed for #%d.\n\n", s.PRNumber)
	writeCounts(&b, s.Result)
	writeLists(&b, s.Result)
	writeFooter(&b, s)
	return b.String()
}

// FailureComment is posted when no file succeeded and at least one failed.
func FailureComment(s *RunSummary) string {
	var b strings.Builder
	b.WriteString("### Documentation could not be generated\n\n")
	writeFailures(&b, s.Result.Failed)
	writeFooter(&b, s)
	return b.String()
}

// HelpComment explains why a command was rejected and how to use it.
func HelpComment(errs []string, help string) string {
	var b strings.Builder
	b.WriteString("The command could not be run:\n\n")
	for _, e := range errs {
		b.WriteString("- " + e + "\n")
	}
	b.WriteString("\n" + help)
	return b.String()
}

// NotMergedComment tells the author to retry after merging.
func NotMergedComment(number int, command string) string {
	return fmt.Sprintf("#%d is not merged yet. Documentation is generated from merged changes only; "+
		"comment `!%s` again after merging.\n", number, command)
}

// ErrorComment reports a run that aborted before producing results.
func ErrorComment(runID, msg, hint string) string {
	var b strings.Builder
	b.WriteString("### Documentation run failed\n\n")
	b.WriteString("```\n" + msg + "\n```\n")
	if hint != "" {
		b.WriteString("\n" + hint + "\n")
	}
	if runID != "" {
		fmt.Fprintf(&b, "\n<sub>run `%s`</sub>\n", runID)
	}
	return b.String()
}

func verb(r Result) string {
	switch {
	case r.Succeeded() == 0 && len(r.Failed) > 0:
		return "failed"
	case r.Succeeded() == 0:
		return "already up to date"
	case len(r.Failed) > 0:
		return "partially updated"
	default:
		return "updated"
	}
}

func writeCounts(b *strings.Builder, r Result) {
	b.WriteString("| Generated | Updated | Deleted | Skipped | Failed |\n")
	b.WriteString("|-----------|---------|---------|---------|--------|\n")
	fmt.Fprintf(b, "| %d | %d | %d | %d | %d |\n",
		len(r.Generated), len(r.Updated), len(r.Deleted), len(r.Skipped), len(r.Failed))
}

func writeLists(b *strings.Builder, r Result) {
	writePaths(b, "Generated", r.Generated)
	writePaths(b, "Updated", r.Updated)
	writePaths(b, "Deleted", r.Deleted)
	if len(r.Skipped) > 0 {
		b.WriteString("\n#### Skipped\n\n")
		for _, s := range r.Skipped {
			fmt.Fprintf(b, "- `%s`: %s\n", s.Source, s.Reason)
		}
	}
	if len(r.Failed) > 0 {
		b.WriteString("\n#### Failed\n\n")
		writeFailures(b, r.Failed)
	}
}

func writePaths(b *strings.Builder, heading string, paths []string) {
	if len(paths) == 0 {
		return
	}
	fmt.Fprintf(b, "\n#### %s\n\n", heading)
	for _, p := range paths {
		fmt.Fprintf(b, "- `%s`\n", p)
	}
}

func writeFailures(b *strings.Builder, failed []Failure) {
	for _, f := range failed {
		fmt.Fprintf(b, "- `%s`: %s\n", f.File, f.Reason)
	}
}

func writeFooter(b *strings.Builder, s *RunSummary) {
	var parts []string
	if s.RunID != "" {
		parts = append(parts, fmt.Sprintf("run `%s`", s.RunID))
	}
	if s.Usage.Requests > 0 {
		parts = append(parts, fmt.Sprintf("%d AI requests, %d/%d tokens in/out",
			s.Usage.Requests, s.Usage.InputTokens, s.Usage.OutputTokens))
	}
	if s.Duration > 0 {
		parts = append(parts, s.Duration.Round(100*time.Millisecond).String())
	}
	if len(parts) == 0 {
		return
	}
	b.WriteString("\n---\n<sub>" + strings.Join(parts, " · ") + "</sub>\n")
}
