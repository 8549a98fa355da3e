package generator

import (
	"context"
	"strings"

	"github.com/doxai/doxai/internal/docsync"
	"github.com/doxai/doxai/internal/errors"
	"github.com/doxai/doxai/internal/output"
	"github.com/doxai/doxai/internal/prompt"
	"github.com/doxai/doxai/internal/provider"
)

// Origin says where an existing doc was found.
type Origin string

const (
	OriginNone       Origin = "none"
	OriginDocsBranch Origin = "docs_branch"
	OriginBaseBranch Origin = "base_branch"
)

// DocArtifact is the documentation file derived from one source file.
type DocArtifact struct {
	Path    string
	Exists  bool
	Content string
	Origin  Origin
}

type pendingWrite struct {
	source  string
	doc     string
	content string
	updated bool
}

type pendingDelete struct {
	source string
	doc    string
}

func (g *Generator) docPath(source string) string {
	return docsync.DocPath(g.cfg.DocsRoot, g.cfg.Command, source, g.cfg.Extension)
}

// lookupDoc looks for the doc on the docs branch first, then on the base
// branch. Only ErrNotFound means absent; other errors are returned.
func (g *Generator) lookupDoc(ctx context.Context, r *run, path string) (DocArtifact, error) {
	refs := []struct {
		ref    string
		origin Origin
	}{
		{r.report.Branch.BranchName, OriginDocsBranch},
		{r.report.PR.BaseRef, OriginBaseBranch},
	}
	for _, c := range refs {
		content, err := r.repo.GetFileContent(ctx, path, c.ref)
		if err == nil {
			return DocArtifact{Path: path, Exists: true, Content: content, Origin: c.origin}, nil
		}
		if !errors.Is(err, docsync.ErrNotFound) {
			return DocArtifact{}, err
		}
	}
	return DocArtifact{Path: path, Origin: OriginNone}, nil
}

// processFile routes one filtered source file to exactly one outcome. A
// renamed source that was documented additionally queues removal of the doc
// at its old path.
func (g *Generator) processFile(ctx context.Context, r *run, f docsync.ChangedFile) {
	log := r.logger.With("file", f.Path)
	doc := g.docPath(f.Path)

	if f.Removed() {
		g.queueDelete(ctx, r, f.Path, doc)
		return
	}

	if err := g.document(ctx, r, f.Path, doc); err != nil {
		log.Warnw("documenting file failed", "error", err)
		r.fail(f.Path, err)
		return
	}

	// The old doc goes only once its replacement is queued or up to date.
	if f.Status == docsync.StatusRenamed && f.PreviousPath != "" {
		if old := g.docPath(f.PreviousPath); old != doc {
			g.queueDelete(ctx, r, f.PreviousPath, old)
		}
	}
}

func (g *Generator) queueDelete(ctx context.Context, r *run, source, doc string) {
	_, err := r.repo.GetFileContent(ctx, doc, r.report.Branch.BranchName)
	switch {
	case err == nil:
		r.deletes = append(r.deletes, pendingDelete{source: source, doc: doc})
		r.report.Result.Deleted = append(r.report.Result.Deleted, doc)
	case errors.Is(err, docsync.ErrNotFound):
		r.logger.Debugw("removed source had no documentation", "file", source)
	default:
		r.logger.Warnw("probing documentation of removed source failed", "file", source, "error", err)
		r.fail(source, err)
	}
}

func (g *Generator) document(ctx context.Context, r *run, source, doc string) error {
	pr := r.report.PR
	code, err := r.repo.GetFileContent(ctx, source, pr.BaseRef)
	if err != nil {
		return err
	}
	artifact, err := g.lookupDoc(ctx, r, doc)
	if err != nil {
		return err
	}

	req := prompt.Request{
		Project: g.cfg.Command,
		Path:    source,
		Source:  code,
		Lang:    prompt.Lang(r.report.Command.Options.Lang),
	}
	if artifact.Exists {
		if !r.repo.HasSourceChanged(ctx, source, doc, r.report.Branch.BranchName, pr.BaseRef) {
			r.report.Result.Skipped = append(r.report.Result.Skipped, output.Skip{
				Source: source,
				Doc:    doc,
				Reason: "documentation is newer than the source",
			})
			return nil
		}
		req.ExistingDoc = &artifact.Content
	}

	p, err := g.prompts.Build(ctx, req)
	if err != nil {
		return err
	}
	text, err := g.ai.Generate(ctx, p.System, p.User)
	if err != nil {
		return err
	}

	r.writes = append(r.writes, pendingWrite{source: source, doc: doc, content: text, updated: artifact.Exists})
	if artifact.Exists {
		r.report.Result.Updated = append(r.report.Result.Updated, doc)
	} else {
		r.report.Result.Generated = append(r.report.Result.Generated, doc)
	}
	r.logger.Infow("documented file", "file", source, "doc", doc, "origin", artifact.Origin)
	return nil
}

func (r *run) fail(file string, err error) {
	r.report.Result.Failed = append(r.report.Result.Failed, output.Failure{File: file, Reason: failureReason(err)})
}

// failureReason is the one-line explanation shown in comments.
func failureReason(err error) string {
	switch {
	case errors.Is(err, provider.ErrRateLimited):
		return "AI provider rate limit reached; retry later"
	case errors.Is(err, provider.ErrBlocked):
		return "AI provider declined to document this file"
	case errors.Is(err, docsync.ErrNotFound):
		return "file not found: " + firstLine(err.Error())
	}
	return firstLine(err.Error())
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
