package generator

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/doxai/doxai/internal/docsync"
	"github.com/doxai/doxai/internal/errors"
	"github.com/doxai/doxai/internal/integrations"
	"github.com/doxai/doxai/internal/prompt"
)

type postedComment struct {
	number int
	body   string
}

type batchCall struct {
	branch  string
	writes  []docsync.FileWrite
	deletes []string
}

// fakeRepo is an in-memory GitHub. Branches created from base see base
// content until they overwrite it.
type fakeRepo struct {
	pr       *docsync.PRDetails
	prErr    error
	files    []docsync.ChangedFile
	filesErr error
	// contents is keyed by "ref:path".
	contents map[string]string
	// stale lists docs whose source is newer; docs not listed and present
	// on the docs branch count as up to date.
	stale     map[string]bool
	openPRs   []*docsync.DocsPRRef
	branchErr error
	batchErr  error
	commitErr map[string]error
	deleteErr map[string]error

	calls     []string
	branches  []string
	batches   []batchCall
	committed []string
	deleted   []string
	created   []string
	comments  []postedComment
	nextPR    int
}

func newFakeRepo(pr *docsync.PRDetails, files ...docsync.ChangedFile) *fakeRepo {
	return &fakeRepo{
		pr:        pr,
		files:     files,
		contents:  map[string]string{},
		stale:     map[string]bool{},
		commitErr: map[string]error{},
		deleteErr: map[string]error{},
		nextPR:    100,
	}
}

func mergedPR(number int) *docsync.PRDetails {
	return &docsync.PRDetails{Number: number, State: "closed", Merged: true, BaseRef: "main", HeadRef: "feature"}
}

func (f *fakeRepo) call(name string) { f.calls = append(f.calls, name) }

func (f *fakeRepo) isDocsBranch(ref string) bool { return strings.HasPrefix(ref, "docs/") }

func (f *fakeRepo) GetPRDetails(_ context.Context, number int) (*docsync.PRDetails, error) {
	f.call("GetPRDetails")
	if f.prErr != nil {
		return nil, f.prErr
	}
	return f.pr, nil
}

func (f *fakeRepo) GetChangedFiles(_ context.Context, number int) ([]docsync.ChangedFile, error) {
	f.call("GetChangedFiles")
	return f.files, f.filesErr
}

func (f *fakeRepo) GetFileContent(_ context.Context, path, ref string) (string, error) {
	f.call("GetFileContent")
	if c, ok := f.contents[ref+":"+path]; ok {
		if c == "\x00deleted" {
			return "", errors.Mark(errors.Newf("%s deleted", path), docsync.ErrNotFound)
		}
		return c, nil
	}
	if f.isDocsBranch(ref) {
		if c, ok := f.contents[f.pr.BaseRef+":"+path]; ok {
			return c, nil
		}
	}
	return "", errors.Mark(errors.Newf("%s@%s", path, ref), docsync.ErrNotFound)
}

func (f *fakeRepo) HasSourceChanged(_ context.Context, sourcePath, docPath, docsBranch, sourceRef string) bool {
	f.call("HasSourceChanged")
	return f.stale[docPath]
}

func (f *fakeRepo) FindExistingDocsPR(_ context.Context, number int, project string) (*docsync.DocsPRRef, error) {
	f.call("FindExistingDocsPR")
	for _, pr := range f.openPRs {
		if strings.HasPrefix(pr.HeadRef, docsync.BranchName(project, number)) {
			return pr, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CreateOrGetDocsBranch(ctx context.Context, base, proposed string, number int, project string) (*docsync.DocsBranchState, error) {
	f.call("CreateOrGetDocsBranch")
	if f.branchErr != nil {
		return nil, f.branchErr
	}
	existing, _ := f.FindExistingDocsPR(ctx, number, project)
	if existing != nil {
		return &docsync.DocsBranchState{BranchName: existing.HeadRef, ExistingPR: existing}, nil
	}
	f.branches = append(f.branches, proposed)
	return &docsync.DocsBranchState{BranchName: proposed, Created: true}, nil
}

func (f *fakeRepo) store(branch, path, content string) {
	f.contents[branch+":"+path] = content
	delete(f.stale, path)
}

func (f *fakeRepo) CommitMultipleChanges(ctx context.Context, branch string, writes []docsync.FileWrite, deletes []string, _ string) (string, error) {
	f.call("CommitMultipleChanges")
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.batches = append(f.batches, batchCall{branch: branch, writes: writes, deletes: deletes})
	if f.batchErr != nil {
		return "", f.batchErr
	}
	for _, w := range writes {
		f.store(branch, w.Path, w.Content)
	}
	for _, d := range deletes {
		f.contents[branch+":"+d] = "\x00deleted"
	}
	return fmt.Sprintf("sha-%d", len(f.batches)), nil
}

func (f *fakeRepo) CommitFile(ctx context.Context, branch, path, content, _ string) error {
	f.call("CommitFile")
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := f.commitErr[path]; err != nil {
		return err
	}
	f.committed = append(f.committed, path)
	f.store(branch, path, content)
	return nil
}

func (f *fakeRepo) DeleteFile(ctx context.Context, branch, path, _ string) error {
	f.call("DeleteFile")
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := f.deleteErr[path]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, path)
	f.contents[branch+":"+path] = "\x00deleted"
	return nil
}

func (f *fakeRepo) CreatePR(ctx context.Context, title, body, head, base string) (*docsync.DocsPRRef, error) {
	f.call("CreatePR")
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.created = append(f.created, title)
	f.nextPR++
	ref := &docsync.DocsPRRef{
		Number:  f.nextPR,
		URL:     fmt.Sprintf("https://github.com/acme/widgets/pull/%d", f.nextPR),
		HeadRef: head,
		BaseRef: base,
	}
	f.openPRs = append(f.openPRs, ref)
	return ref, nil
}

func (f *fakeRepo) CreateComment(ctx context.Context, number int, body string) (string, error) {
	f.call("CreateComment")
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.comments = append(f.comments, postedComment{number: number, body: body})
	return fmt.Sprintf("https://github.com/acme/widgets/pull/%d#issuecomment-%d", number, len(f.comments)), nil
}

func (f *fakeRepo) commentsOn(number int) []string {
	var out []string
	for _, c := range f.comments {
		if c.number == number {
			out = append(out, c.body)
		}
	}
	return out
}

// fakeAI returns a doc derived from the user prompt. Errors are keyed by a
// substring of the prompt. onCall, when set, runs before each generation.
type fakeAI struct {
	errs   map[string]error
	onCall func(user string)
	calls  int
}

func (a *fakeAI) Generate(ctx context.Context, system, user string) (string, error) {
	a.calls++
	if a.onCall != nil {
		a.onCall(user)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for key, err := range a.errs {
		if strings.Contains(user, key) {
			return "", err
		}
	}
	return "= Documentation\n\n" + user, nil
}

func (a *fakeAI) Usage() integrations.Usage {
	return integrations.Usage{Requests: a.calls, InputTokens: 10 * a.calls, OutputTokens: 5 * a.calls}
}

// fakePrompts records requests and renders a trivial prompt.
type fakePrompts struct {
	requests []prompt.Request
}

func (p *fakePrompts) Build(_ context.Context, req prompt.Request) (prompt.Prompt, error) {
	p.requests = append(p.requests, req)
	mode := "create"
	if req.ExistingDoc != nil {
		mode = "update"
	}
	return prompt.Prompt{
		System: "system",
		User:   fmt.Sprintf("%s %s %s", mode, req.Path, req.Lang),
		Group:  prompt.GroupFor(req.Path),
	}, nil
}

type harness struct {
	repo    *fakeRepo
	ai      *fakeAI
	prompts *fakePrompts
	gen     *Generator
}

func newHarness(t *testing.T, repo *fakeRepo, mutate ...func(*Config)) *harness {
	t.Helper()
	cfg := Config{Command: "doxai", Version: "1.2.0"}
	for _, m := range mutate {
		m(&cfg)
	}
	h := &harness{repo: repo, ai: &fakeAI{}, prompts: &fakePrompts{}}
	h.gen = New(repo, h.ai, h.prompts, cfg)
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	h.gen.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	h.gen.runID = func() string { return "run-1" }
	return h
}

func comment(number int, body string) Event {
	return Event{Name: EventIssueComment, Number: number, IsPullRequest: true, Body: body}
}
