// Package generator drives a documentation run: it validates the trigger
// comment, resolves the docs branch, decides per changed file whether to
// generate, update, skip, or delete its documentation, commits the result,
// and reports back on the pull request.
package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doxai/doxai/internal/commands"
	"github.com/doxai/doxai/internal/config"
	"github.com/doxai/doxai/internal/docsync"
	"github.com/doxai/doxai/internal/errors"
	"github.com/doxai/doxai/internal/filter"
	"github.com/doxai/doxai/internal/integrations"
	"github.com/doxai/doxai/internal/logging"
	"github.com/doxai/doxai/internal/output"
	"github.com/doxai/doxai/internal/prompt"
)

// Repository is the GitHub surface a run needs. *docsync.Client
// implements it.
type Repository interface {
	GetPRDetails(ctx context.Context, number int) (*docsync.PRDetails, error)
	GetChangedFiles(ctx context.Context, number int) ([]docsync.ChangedFile, error)
	GetFileContent(ctx context.Context, path, ref string) (string, error)
	HasSourceChanged(ctx context.Context, sourcePath, docPath, docsBranch, sourceRef string) bool
	FindExistingDocsPR(ctx context.Context, number int, project string) (*docsync.DocsPRRef, error)
	CreateOrGetDocsBranch(ctx context.Context, base, proposed string, number int, project string) (*docsync.DocsBranchState, error)
	CommitMultipleChanges(ctx context.Context, branch string, writes []docsync.FileWrite, deletes []string, message string) (string, error)
	CommitFile(ctx context.Context, branch, path, content, message string) error
	DeleteFile(ctx context.Context, branch, path, message string) error
	CreatePR(ctx context.Context, title, body, head, base string) (*docsync.DocsPRRef, error)
	CreateComment(ctx context.Context, number int, body string) (string, error)
}

// TextGenerator turns a (system, user) prompt pair into documentation.
type TextGenerator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// PromptBuilder renders the prompt for one file.
type PromptBuilder interface {
	Build(ctx context.Context, req prompt.Request) (prompt.Prompt, error)
}

// usageReporter is implemented by text generators that count tokens.
type usageReporter interface {
	Usage() integrations.Usage
}

// Config holds the per-installation settings of a Generator.
type Config struct {
	// Command is the trigger name without "!", and also names the docs
	// directory, branch, and PR title.
	Command     string
	DocsRoot    string
	Extension   string
	DefaultLang commands.Lang
	// Version is the running bot version checked against min_version in
	// the repository's .doxai.yaml.
	Version string
	DryRun  bool
	Table   *filter.Table
	Logger  *zap.SugaredLogger
}

// Generator runs documentation jobs against one repository.
type Generator struct {
	repo    Repository
	ai      TextGenerator
	prompts PromptBuilder
	cfg     Config
	logger  *zap.SugaredLogger
	now     func() time.Time
	runID   func() string
}

// New creates a Generator. ai may be nil when the caller knows the run ends
// before any text is generated, as for an invalid command.
func New(repo Repository, ai TextGenerator, prompts PromptBuilder, cfg Config) *Generator {
	if cfg.Command == "" {
		cfg.Command = "doxai"
	}
	if cfg.DocsRoot == "" {
		cfg.DocsRoot = "docs"
	}
	if cfg.Extension == "" {
		cfg.Extension = ".adoc"
	}
	if cfg.DefaultLang == "" {
		cfg.DefaultLang = commands.LangKo
	}
	if cfg.Table == nil {
		cfg.Table = filter.DefaultTable()
	}
	return &Generator{
		repo:    repo,
		ai:      ai,
		prompts: prompts,
		cfg:     cfg,
		logger:  logging.OrNop(cfg.Logger),
		now:     time.Now,
		runID:   uuid.NewString,
	}
}

// run carries the mutable state of one Run call.
type run struct {
	report  *Report
	repo    Repository
	logger  *zap.SugaredLogger
	table   *filter.Table
	writes  []pendingWrite
	deletes []pendingDelete
}

// Run executes one documentation job for ev. Outcomes that stop the run
// early, such as an invalid command or an unmerged PR, are recorded on the
// Report. The returned error is non-nil only for catastrophic failures and
// then matches ErrCatastrophic.
func (g *Generator) Run(ctx context.Context, ev Event) (*Report, error) {
	r := &run{
		report: newReport(g.runID(), g.now()),
		repo:   g.repo,
		table:  g.cfg.Table,
	}
	r.report.Number = ev.Number
	r.report.DryRun = g.cfg.DryRun
	r.logger = g.logger.With("run_id", r.report.RunID, "pr", ev.Number)

	var recorder *dryRun
	if g.cfg.DryRun {
		recorder = newDryRun(g.repo)
		r.repo = recorder
	}

	err := g.execute(ctx, r, ev)
	if recorder != nil {
		r.report.Planned = recorder.actions
	}
	if u, ok := g.ai.(usageReporter); ok {
		usage := u.Usage()
		r.report.Usage = output.Usage{
			Requests:     usage.Requests,
			InputTokens:  usage.InputTokens,
			OutputTokens: usage.OutputTokens,
		}
	}
	r.report.FinishedAt = g.now()

	if err != nil {
		r.logger.Errorw("run aborted", "state", r.report.State, "error", err)
		_ = r.report.advance(StateFailed, g.now())
		g.postError(ctx, r, ev.Number, err)
		return r.report, err
	}
	r.logger.Infow("run finished", "state", r.report.State, "ignored", r.report.Ignored,
		"generated", len(r.report.Result.Generated), "updated", len(r.report.Result.Updated),
		"deleted", len(r.report.Result.Deleted), "skipped", len(r.report.Result.Skipped),
		"failed", len(r.report.Result.Failed))
	return r.report, nil
}

func (g *Generator) execute(ctx context.Context, r *run, ev Event) error {
	if err := g.advance(r, StateValidating); err != nil {
		return err
	}
	parser := commands.NewParser(r.logger, commands.DocsSpec(g.cfg.Command, g.cfg.DefaultLang))
	if ev.Name != EventIssueComment || !ev.IsPullRequest || (ev.Action != "" && ev.Action != "created") {
		r.logger.Debugw("ignoring event", "event", ev.Name, "action", ev.Action)
		r.report.Ignored = true
		return g.advance(r, StateDone)
	}
	cmd := parser.Parse(ev.Body)
	if cmd == nil {
		r.report.Ignored = true
		return g.advance(r, StateDone)
	}
	r.report.Command = cmd
	if !cmd.Valid {
		r.report.Err = errors.Mark(errors.Newf("invalid command: %s", strings.Join(cmd.Errors, "; ")), ErrInvalidCommand)
		spec, _ := parser.Spec(cmd.Name)
		g.comment(ctx, r, ev.Number, output.HelpComment(cmd.Errors, spec.Help()))
		return g.advance(r, StateDone)
	}

	if err := g.advance(r, StateBranchResolving); err != nil {
		return err
	}
	pr, err := r.repo.GetPRDetails(ctx, ev.Number)
	if err != nil {
		return catastrophic(err, "reading PR #%d", ev.Number)
	}
	r.report.PR = pr
	if !pr.Merged {
		r.logger.Infow("PR not merged, nothing to do", "state", pr.State)
		r.report.Err = errors.Wrapf(ErrPRNotMerged, "PR #%d is %s", pr.Number, pr.State)
		g.comment(ctx, r, ev.Number, output.NotMergedComment(ev.Number, g.cfg.Command))
		return g.advance(r, StateDone)
	}

	g.applyProjectConfig(ctx, r, pr.BaseRef, ev.Body)

	all, err := r.repo.GetChangedFiles(ctx, ev.Number)
	if err != nil {
		return catastrophic(err, "listing files of PR #%d", ev.Number)
	}
	files := filter.ByScope(filter.New(r.table, r.logger), all, r.report.Command.Options.Scope)
	r.logger.Infow("selected files", "changed", len(all), "selected", len(files),
		"scope", r.report.Command.Options.Scope.String())
	if len(files) == 0 {
		g.postSummary(ctx, r, ev.Number)
		return g.advance(r, StateDone)
	}

	branch, err := r.repo.CreateOrGetDocsBranch(ctx, pr.BaseRef,
		docsync.BranchName(g.cfg.Command, pr.Number), pr.Number, g.cfg.Command)
	if err != nil {
		return catastrophic(err, "resolving docs branch")
	}
	r.report.Branch = branch
	r.logger = r.logger.With("branch", branch.BranchName)

	if err := g.advance(r, StateProcessingFiles); err != nil {
		return err
	}
	for _, f := range files {
		if err := expired(ctx, "processing files"); err != nil {
			return err
		}
		g.processFile(ctx, r, f)
	}
	// The deadline may fire during the last file.
	if err := expired(ctx, "processing files"); err != nil {
		return err
	}

	if len(r.writes) > 0 || len(r.deletes) > 0 {
		if err := g.advance(r, StateCommitting); err != nil {
			return err
		}
		g.commit(ctx, r)
		if err := expired(ctx, "committing documentation"); err != nil {
			return err
		}
	}

	if err := g.advance(r, StatePublishing); err != nil {
		return err
	}
	g.publish(ctx, r)
	if err := expired(ctx, "publishing documentation"); err != nil {
		return err
	}
	g.postSummary(ctx, r, ev.Number)
	return g.advance(r, StateDone)
}

// expired reports a done ctx as a catastrophic error.
func expired(ctx context.Context, stage string) error {
	if err := ctx.Err(); err != nil {
		return catastrophic(errors.WithHint(err, "the run exceeded its time limit; narrow --scope or raise --timeout"),
			"%s", stage)
	}
	return nil
}

func (g *Generator) advance(r *run, to State) error {
	if err := r.report.advance(to, g.now()); err != nil {
		return catastrophic(err, "internal state error")
	}
	r.logger.Debugw("state", "state", to)
	return nil
}

// applyProjectConfig reads .doxai.yaml from the base branch. Any problem
// with it is logged and the installation defaults are kept.
func (g *Generator) applyProjectConfig(ctx context.Context, r *run, ref, body string) {
	raw, err := r.repo.GetFileContent(ctx, config.ProjectConfigPath, ref)
	if err != nil {
		if !errors.Is(err, docsync.ErrNotFound) {
			r.logger.Warnw("reading project config failed, using defaults", "error", err)
		}
		return
	}
	pc, err := config.ParseProjectConfig([]byte(raw))
	if err != nil {
		r.logger.Warnw("ignoring invalid project config", "error", err)
		return
	}
	if pc == nil {
		return
	}
	if err := pc.CheckVersion(g.cfg.Version); err != nil {
		r.logger.Warnw("project config version check failed", "error", err)
	}
	if len(pc.Extensions) > 0 || len(pc.Exclude) > 0 {
		r.table = r.table.Extend(pc.Extensions, pc.Exclude)
	}
	if pc.Language != "" && commands.Lang(pc.Language) != g.cfg.DefaultLang {
		reparsed := commands.NewParser(r.logger, commands.DocsSpec(g.cfg.Command, commands.Lang(pc.Language))).Parse(body)
		if reparsed != nil && reparsed.Valid {
			r.report.Command = reparsed
		}
	}
}

func (g *Generator) comment(ctx context.Context, r *run, number int, body string) {
	url, err := r.repo.CreateComment(ctx, number, body)
	if err != nil {
		r.logger.Warnw("posting comment failed", "error", err)
		return
	}
	r.report.CommentURL = url
}

func (g *Generator) postSummary(ctx context.Context, r *run, number int) {
	s := r.report.Summary("", nil)
	s.Duration = g.now().Sub(r.report.StartedAt)
	body := output.SummaryComment(s)
	if r.report.Result.Succeeded() == 0 && len(r.report.Result.Failed) > 0 {
		body = output.FailureComment(s)
	}
	g.comment(ctx, r, number, body)
}

// postError makes one best-effort attempt to tell the PR about an aborted
// run. It uses a fresh context so a timeout can still be reported.
func (g *Generator) postError(ctx context.Context, r *run, number int, err error) {
	if number == 0 {
		return
	}
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 15*time.Second)
	defer cancel()
	body := output.ErrorComment(r.report.RunID, err.Error(), errors.Hint(err))
	if _, cerr := r.repo.CreateComment(cctx, number, body); cerr != nil {
		r.logger.Warnw("posting error comment failed", "error", cerr)
	}
}

func commitMessage(number int, runID string) string {
	return fmt.Sprintf("docs: update documentation for PR #%d\n\nRun-Id: %s", number, runID)
}
