package generator

import (
	"context"
	"fmt"

	"github.com/doxai/doxai/internal/docsync"
)

// dryRun passes reads through to the wrapped repository and records
// writes instead of performing them.
type dryRun struct {
	Repository
	actions []string
}

func newDryRun(repo Repository) *dryRun {
	return &dryRun{Repository: repo}
}

func (d *dryRun) record(format string, args ...any) {
	d.actions = append(d.actions, fmt.Sprintf(format, args...))
}

func (d *dryRun) CreateOrGetDocsBranch(ctx context.Context, base, proposed string, number int, project string) (*docsync.DocsBranchState, error) {
	existing, err := d.FindExistingDocsPR(ctx, number, project)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &docsync.DocsBranchState{BranchName: existing.HeadRef, ExistingPR: existing}, nil
	}
	d.record("create branch `%s` from `%s`", proposed, base)
	return &docsync.DocsBranchState{BranchName: proposed, Created: true}, nil
}

func (d *dryRun) CommitMultipleChanges(_ context.Context, branch string, writes []docsync.FileWrite, deletes []string, _ string) (string, error) {
	for _, w := range writes {
		d.record("write `%s` on `%s` (%d bytes)", w.Path, branch, len(w.Content))
	}
	for _, p := range deletes {
		d.record("delete `%s` on `%s`", p, branch)
	}
	return "", nil
}

func (d *dryRun) CommitFile(_ context.Context, branch, path, content, _ string) error {
	d.record("write `%s` on `%s` (%d bytes)", path, branch, len(content))
	return nil
}

func (d *dryRun) DeleteFile(_ context.Context, branch, path, _ string) error {
	d.record("delete `%s` on `%s`", path, branch)
	return nil
}

func (d *dryRun) CreatePR(_ context.Context, title, _, head, base string) (*docsync.DocsPRRef, error) {
	d.record("open PR %q from `%s` into `%s`", title, head, base)
	return &docsync.DocsPRRef{HeadRef: head, BaseRef: base}, nil
}

func (d *dryRun) CreateComment(_ context.Context, number int, body string) (string, error) {
	d.record("comment on #%d (%d bytes)", number, len(body))
	return "", nil
}
