// cmd/doxai/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/doxai/doxai/internal/commands"
	"github.com/doxai/doxai/internal/config"
	"github.com/doxai/doxai/internal/docsync"
	"github.com/doxai/doxai/internal/generator"
	"github.com/doxai/doxai/internal/integrations"
	"github.com/doxai/doxai/internal/logging"
	"github.com/doxai/doxai/internal/output"
	"github.com/doxai/doxai/internal/prompt"
	"github.com/doxai/doxai/internal/provider"
	"github.com/doxai/doxai/internal/runner"
	"github.com/doxai/doxai/internal/store"

	// Register providers via init() side effects.
	_ "github.com/doxai/doxai/internal/provider/anthropic"
	_ "github.com/doxai/doxai/internal/provider/ollama"
	_ "github.com/doxai/doxai/internal/provider/openai"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionString() string {
	return fmt.Sprintf("doxai %s (commit: %s, built: %s)", version, commit, date)
}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logJSON    bool
	logLevel   string
	ledger     string
	output     string
}

// runOptions are the flags of the run command.
type runOptions struct {
	dryRun     bool
	timeout    time.Duration
	eventName  string
	eventPath  string
	repository string
}

func main() {
	root := newRootCmd(os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(runner.ExitCodeFor(err))
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	g := &globalOptions{}
	r := &runOptions{}

	rootCmd := &cobra.Command{
		Use:   "doxai",
		Short: "Generate documentation for merged pull requests",
		Long: "doxai is a CI bot. On a trigger comment in a merged pull request, it generates or updates\n" +
			"per-file documentation with an AI backend and publishes it as a companion pull request.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "doxai.toml", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&g.logJSON, "log-json", false, "log JSON to stderr")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&g.ledger, "ledger", "", "path of the SQLite run ledger (empty disables it)")
	rootCmd.PersistentFlags().StringVar(&g.output, "output", "markdown", "output format: json, markdown")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Handle the GitHub Actions event that triggered this job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDocs(cmd.Context(), cmd.OutOrStdout(), g, r)
		},
	}
	runCmd.Flags().BoolVar(&r.dryRun, "dry-run", false, "read and generate but do not write to GitHub")
	runCmd.Flags().DurationVar(&r.timeout, "timeout", 20*time.Minute, "abort the run after this long")
	runCmd.Flags().StringVar(&r.eventName, "event-name", "", "event name (default $GITHUB_EVENT_NAME)")
	runCmd.Flags().StringVar(&r.eventPath, "event-path", "", "event payload file (default $GITHUB_EVENT_PATH)")
	runCmd.Flags().StringVar(&r.repository, "repo", "", "owner/name (default $GITHUB_REPOSITORY)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}

	rootCmd.AddCommand(runCmd, parseCmd(g), historyCmd(g), versionCmd)
	return rootCmd
}

// loadConfig loads the config file, overlays the environment, and applies
// flag overrides.
func loadConfig(g *globalOptions) (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}
	if g.logJSON {
		cfg.Log.JSON = true
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	if g.ledger != "" {
		cfg.Ledger.Path = g.ledger
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.SugaredLogger, error) {
	return logging.New(logging.Options{JSON: cfg.Log.JSON, Level: cfg.Log.Level})
}

func runDocs(ctx context.Context, stdout io.Writer, g *globalOptions, r *runOptions) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	env := config.LoadActionsEnv()
	eventName := firstNonEmpty(r.eventName, env.EventName)
	ev, err := runner.LoadEvent(eventName, firstNonEmpty(r.eventPath, env.EventPath))
	if err != nil {
		return err
	}

	// Comments without a command never need credentials.
	parser := commands.NewParser(logger, commands.DocsSpec(cfg.Docs.Command, commands.Lang(cfg.Docs.Language)))
	parsed := parser.Parse(ev.Body)
	if ev.Name != generator.EventIssueComment || !ev.IsPullRequest || parsed == nil {
		logger.Infow("no command in event, nothing to do", "event", ev.Name)
		return nil
	}

	repository := firstNonEmpty(r.repository, cfg.GitHub.Repository, env.Repository)
	token, err := cfg.GitHubToken()
	if err != nil {
		return fmt.Errorf("resolving GitHub token: %w", err)
	}
	client, err := docsync.New(repository, docsync.Options{
		Token:             token,
		BaseURL:           cfg.GitHub.APIURL,
		RequestsPerSecond: cfg.GitHub.RequestsPerSecond,
		Logger:            logger,
	})
	if err != nil {
		return err
	}

	// An invalid command only gets the help comment, which needs no AI key.
	var ai generator.TextGenerator
	if parsed.Valid {
		gateway, err := newGateway(cfg, logger)
		if err != nil {
			return err
		}
		ai = gateway
	}

	gen := generator.New(client, ai, prompt.NewBuilder(prompt.NewRegistry(), logger), generator.Config{
		Command:     cfg.Docs.Command,
		DocsRoot:    cfg.Docs.Root,
		Extension:   cfg.Docs.Extension,
		DefaultLang: commands.Lang(cfg.Docs.Language),
		Version:     version,
		DryRun:      r.dryRun,
		Logger:      logger,
	})

	// Single top-level timeout governs the entire run.
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	report, runErr := gen.Run(runCtx, ev)
	if report.Ignored {
		return runErr
	}
	summary := report.Summary(repository, runErr)

	if err := publishSummary(ctx, stdout, g.output, cfg, env, report, summary, logger); err != nil {
		logger.Warnw("reporting run failed", "error", err)
	}
	return runErr
}

func newGateway(cfg *config.Config, logger *zap.SugaredLogger) (*integrations.Gateway, error) {
	p, err := provider.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}
	temperature := cfg.Provider.Temperature
	return integrations.NewGateway(p, integrations.GatewayConfig{
		Model:             cfg.Provider.Model,
		MaxTokens:         cfg.Provider.MaxTokens,
		Temperature:       &temperature,
		RequestsPerMinute: cfg.Provider.RequestsPerMinute,
		Logger:            logger,
	}), nil
}

// publishSummary writes the run summary to stdout, to the Actions step
// summary and outputs, and to the ledger.
func publishSummary(ctx context.Context, stdout io.Writer, format string, cfg *config.Config, env config.ActionsEnv,
	report *generator.Report, summary *output.RunSummary, logger *zap.SugaredLogger) error {
	formatter, ok := output.ForName(format)
	if !ok {
		return fmt.Errorf("unknown output format %q", format)
	}
	rendered, err := formatter.Format(summary)
	if err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	if format == "json" {
		fmt.Fprintln(stdout, string(rendered))
	} else if err := output.WriteMarkdown(stdout, string(rendered)); err != nil {
		return err
	}

	md, err := output.NewMarkdownFormatter().Format(summary)
	if err != nil {
		return err
	}
	if err := runner.AppendStepSummary(env.StepSummary, md); err != nil {
		logger.Warnw("writing step summary failed", "error", err)
	}
	if err := runner.WriteOutputs(env.Output, runner.Outputs(summary)); err != nil {
		logger.Warnw("writing step outputs failed", "error", err)
	}

	if cfg.Ledger.Path == "" {
		return nil
	}
	ledger, err := store.NewStore(cfg.Ledger.Path)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer ledger.Close()
	run, files := store.FromSummary(summary, report.StartedAt)
	return ledger.RecordRun(ctx, run, files)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
