// internal/output/markdown_test.go
package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() *RunSummary {
	return &RunSummary{
		RunID:      "7f1c",
		Repository: "acme/widgets",
		PRNumber:   42,
		Command:    "!doxai --lang en --scope all",
		State:      "done",
		DocsBranch: "docs/doxai-pr-42",
		DocsPR:     &PRLink{Number: 43, URL: "https://github.com/acme/widgets/pull/43"},
		Result: Result{
			Generated: []string{"docs/doxai/src/auth.adoc", "docs/doxai/src/utils.adoc"},
			Deleted:   []string{"docs/doxai/src/old.adoc"},
			Skipped:   []Skip{{Source: "src/same.py", Doc: "docs/doxai/src/same.adoc", Reason: "source unchanged"}},
		},
		Usage:    Usage{Requests: 2, InputTokens: 900, OutputTokens: 400},
		Duration: 2 * time.Second,
	}
}

func TestMarkdownFormatterBasic(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(sampleSummary())
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "acme/widgets#42")
	assert.Contains(t, s, "| 2 | 0 | 1 | 1 | 0 |")
	assert.Contains(t, s, "[#43](https://github.com/acme/widgets/pull/43)")
	assert.Contains(t, s, "- `docs/doxai/src/old.adoc`")
	assert.Contains(t, s, "run `7f1c`")
	assert.Contains(t, s, "2s")
}

func TestMarkdownFormatterDryRunAndError(t *testing.T) {
	s := sampleSummary()
	s.DryRun = true
	s.Planned = []string{"commit 2 files to docs/doxai-pr-42"}
	s.Error = "listing files: boom"
	s.Hint = "check the token"

	out, err := NewMarkdownFormatter().Format(s)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "(dry run)")
	assert.Contains(t, text, "### Planned writes")
	assert.Contains(t, text, "> check the token")
}

func TestSummaryComment(t *testing.T) {
	s := sampleSummary()
	text := SummaryComment(s)
	assert.Contains(t, text, "Documentation updated")
	assert.Contains(t, text, "#43")
	assert.NotContains(t, text, "Failed files")

	s.Result.Failed = []Failure{{File: "src/x.py", Reason: "blocked"}}
	text = SummaryComment(s)
	assert.Contains(t, text, "partially updated")
	assert.Contains(t, text, "- `src/x.py`: blocked")
}

func TestSummaryCommentNothingToDo(t *testing.T) {
	text := SummaryComment(&RunSummary{PRNumber: 1, Result: Result{Skipped: []Skip{{Source: "a.go"}}}})
	assert.Contains(t, text, "already up to date")
	assert.Equal(t, 1, strings.Count(text, "| 0 | 0 | 0 | 1 | 0 |"))
}

func TestPRBodyListsAllOutcomes(t *testing.T) {
	s := sampleSummary()
	s.Result.Failed = []Failure{{File: "src/x.py", Reason: "blocked"}}
	body := PRBody(s)
	for _, want := range []string{"#### Generated", "#### Deleted", "#### Skipped", "#### Failed", "`!doxai --lang en --scope all`", "run `7f1c`"} {
		assert.Contains(t, body, want)
	}
	assert.NotContains(t, body, "#### Updated")
}

func TestHelpAndStatusComments(t *testing.T) {
	help := HelpComment([]string{`invalid value "fr" for --lang`}, "### usage\n")
	assert.Contains(t, help, `- invalid value "fr" for --lang`)
	assert.True(t, strings.HasSuffix(help, "### usage\n"))

	assert.Contains(t, NotMergedComment(42, "doxai"), "`!doxai`")

	errText := ErrorComment("r1", "getting PR #42: 401", "check that the workflow passes a valid GITHUB_TOKEN")
	assert.Contains(t, errText, "GITHUB_TOKEN")
	assert.Contains(t, errText, "run `r1`")

	fail := FailureComment(&RunSummary{Result: Result{Failed: []Failure{{File: "a.go", Reason: "x"}}}})
	assert.Contains(t, fail, "- `a.go`: x")
}

func TestWriteMarkdownToNonTerminalIsVerbatim(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, "# Title\n"))
	assert.Equal(t, "# Title\n", buf.String())
	assert.False(t, IsTerminal(&buf))
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Title\n\nbody", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}
