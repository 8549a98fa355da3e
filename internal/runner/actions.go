// internal/runner/actions.go
package runner

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/doxai/doxai/internal/output"
)

// Outputs are the step outputs published for later workflow steps.
func Outputs(s *output.RunSummary) map[string]string {
	out := map[string]string{
		"run_id":    s.RunID,
		"generated": strconv.Itoa(len(s.Result.Generated)),
		"updated":   strconv.Itoa(len(s.Result.Updated)),
		"deleted":   strconv.Itoa(len(s.Result.Deleted)),
		"skipped":   strconv.Itoa(len(s.Result.Skipped)),
		"failed":    strconv.Itoa(len(s.Result.Failed)),
	}
	if s.DocsPR != nil {
		out["docs_pr_url"] = s.DocsPR.URL
	} else {
		out["docs_pr_url"] = ""
	}
	return out
}

// WriteOutputs appends outputs to the $GITHUB_OUTPUT file in key order.
// Multi-line values use the heredoc form. An empty path is a no-op.
func WriteOutputs(path string, outputs map[string]string) error {
	if path == "" {
		return nil
	}
	keys := make([]string, 0, len(outputs))
	for k := range outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		v := outputs[k]
		if strings.ContainsAny(v, "\r\n") {
			delim := "doxai_" + uuid.NewString()
			fmt.Fprintf(&b, "%s<<%s\n%s\n%s\n", k, delim, v, delim)
			continue
		}
		fmt.Fprintf(&b, "%s=%s\n", k, v)
	}
	return appendFile(path, b.String())
}

// AppendStepSummary appends markdown to the $GITHUB_STEP_SUMMARY file. An
// empty path is a no-op.
func AppendStepSummary(path string, markdown []byte) error {
	if path == "" {
		return nil
	}
	return appendFile(path, string(markdown)+"\n")
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
