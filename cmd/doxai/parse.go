// cmd/doxai/parse.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doxai/doxai/internal/commands"
	"github.com/doxai/doxai/internal/output"
	"github.com/doxai/doxai/internal/runner"
)

type parseResult struct {
	Command  string            `json:"command"`
	Valid    bool              `json:"valid"`
	Scope    string            `json:"scope"`
	Lang     string            `json:"lang"`
	Values   map[string]string `json:"values"`
	Errors   []string          `json:"errors"`
	Warnings []string          `json:"warnings"`
}

func parseCmd(g *globalOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "parse [comment]",
		Short: "Check how a comment would be interpreted",
		Long: "Parse a pull request comment the way a run would and print the resolved command.\n" +
			"The comment is read from the argument, --file, or stdin.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			return runParse(cmd.OutOrStdout(), stdinReader(cmd), g, arg, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "read the comment from a file")
	return cmd
}

// stdinReader returns the command's input, or nil when it is an
// interactive terminal.
func stdinReader(cmd *cobra.Command) io.Reader {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && output.IsTerminal(f) {
		return nil
	}
	return in
}

func runParse(stdout io.Writer, stdin io.Reader, g *globalOptions, arg, file string) error {
	text, err := runner.ResolveComment(arg, file, stdin)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	spec := commands.DocsSpec(cfg.Docs.Command, commands.Lang(cfg.Docs.Language))
	parsed := commands.NewParser(logger, spec).Parse(text)
	if parsed == nil {
		return &runner.ExitError{Code: 1, Err: fmt.Errorf("no !%s command found", spec.Name)}
	}

	if g.output == "json" {
		data, err := json.MarshalIndent(newParseResult(parsed), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(data))
	} else if err := output.WriteMarkdown(stdout, describeCommand(parsed, spec)); err != nil {
		return err
	}

	if !parsed.Valid {
		return &runner.ExitError{Code: 1, Err: fmt.Errorf("invalid !%s command", spec.Name)}
	}
	return nil
}

func newParseResult(c *commands.Command) parseResult {
	res := parseResult{
		Command:  c.String(),
		Valid:    c.Valid,
		Scope:    c.Options.Scope.String(),
		Lang:     string(c.Options.Lang),
		Values:   c.Values,
		Errors:   c.Errors,
		Warnings: c.Warnings,
	}
	if res.Errors == nil {
		res.Errors = []string{}
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}
	return res
}

func describeCommand(c *commands.Command, spec commands.Spec) string {
	if !c.Valid {
		return output.HelpComment(c.Errors, spec.Help())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "`%s`\n\n", c.String())
	b.WriteString("| Option | Value |\n|--------|-------|\n")
	names := make([]string, 0, len(c.Values))
	for name := range c.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "| `--%s` | `%s` |\n", name, c.Values[name])
	}
	for _, w := range c.Warnings {
		fmt.Fprintf(&b, "\n> %s\n", w)
	}
	return b.String()
}
