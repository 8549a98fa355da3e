package generator

import (
	"context"
	"slices"

	"github.com/doxai/doxai/internal/docsync"
	"github.com/doxai/doxai/internal/errors"
	"github.com/doxai/doxai/internal/output"
)

// commit writes all queued changes in one commit, falling back to one
// commit per file when the batch fails.
func (g *Generator) commit(ctx context.Context, r *run) {
	branch := r.report.Branch.BranchName
	msg := commitMessage(r.report.PR.Number, r.report.RunID)

	res := &r.report.Result

	writes := make([]docsync.FileWrite, 0, len(r.writes))
	written := make(map[string]bool, len(r.writes))
	for _, w := range r.writes {
		writes = append(writes, docsync.FileWrite{Path: w.doc, Content: w.content})
		written[w.doc] = true
	}
	// A doc that is rewritten in this run, e.g. after a.js -> a.ts, is not
	// also deleted.
	kept := r.deletes[:0]
	deletes := make([]string, 0, len(r.deletes))
	for _, d := range r.deletes {
		if written[d.doc] {
			res.Deleted = remove(res.Deleted, d.doc)
			continue
		}
		kept = append(kept, d)
		deletes = append(deletes, d.doc)
	}
	r.deletes = kept

	sha, err := r.repo.CommitMultipleChanges(ctx, branch, writes, deletes, msg)
	if err == nil {
		r.report.CommitSHA = sha
		return
	}
	r.logger.Warnw("batch commit failed, committing files one by one", "error", err)

	for _, w := range r.writes {
		if err := r.repo.CommitFile(ctx, branch, w.doc, w.content, msg); err != nil {
			r.logger.Warnw("committing file failed", "file", w.source, "error", err)
			if w.updated {
				res.Updated = remove(res.Updated, w.doc)
			} else {
				res.Generated = remove(res.Generated, w.doc)
			}
			r.fail(w.source, err)
		}
	}
	for _, d := range r.deletes {
		err := r.repo.DeleteFile(ctx, branch, d.doc, msg)
		switch {
		case err == nil:
		case errors.Is(err, docsync.ErrNotFound):
			res.Deleted = remove(res.Deleted, d.doc)
		default:
			r.logger.Warnw("deleting file failed", "file", d.source, "error", err)
			res.Deleted = remove(res.Deleted, d.doc)
			r.fail(d.source, err)
		}
	}
}

// publish opens the docs PR, or comments on the one that already exists.
func (g *Generator) publish(ctx context.Context, r *run) {
	if r.report.Result.Succeeded() == 0 {
		return
	}
	branch := r.report.Branch
	pr := r.report.PR
	summary := r.report.Summary("", nil)

	if branch.ExistingPR != nil {
		r.report.DocsPR = branch.ExistingPR
		g.commentOnDocsPR(ctx, r, summary)
		return
	}

	created, err := r.repo.CreatePR(ctx, docsync.PRTitle(g.cfg.Command, pr.Number),
		output.PRBody(summary), branch.BranchName, pr.BaseRef)
	switch {
	case err == nil:
		r.report.DocsPR = created
	case errors.Is(err, docsync.ErrPRExists):
		existing, ferr := r.repo.FindExistingDocsPR(ctx, pr.Number, g.cfg.Command)
		if ferr != nil || existing == nil {
			r.logger.Warnw("docs PR exists but could not be found", "error", ferr)
			return
		}
		r.report.DocsPR = existing
		g.commentOnDocsPR(ctx, r, summary)
	default:
		r.logger.Errorw("creating docs PR failed", "error", err)
	}
}

func (g *Generator) commentOnDocsPR(ctx context.Context, r *run, summary *output.RunSummary) {
	if _, err := r.repo.CreateComment(ctx, r.report.DocsPR.Number, output.UpdateComment(summary)); err != nil {
		r.logger.Warnw("commenting on docs PR failed", "docs_pr", r.report.DocsPR.Number, "error", err)
	}
}

func remove(list []string, v string) []string {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}
