package docsync

import (
	"context"

	"github.com/google/go-github/v68/github"

	"github.com/doxai/doxai/internal/errors"
)

// FileWrite is one file to create or overwrite in a batch commit.
type FileWrite struct {
	Path    string
	Content string
}

// CommitMultipleChanges writes and deletes files on branch in a single
// commit through the git data API and returns the new commit SHA. Any
// failure matches ErrBatchCommit and leaves the branch untouched.
func (c *Client) CommitMultipleChanges(ctx context.Context, branch string, writes []FileWrite, deletes []string, message string) (string, error) {
	if len(writes) == 0 && len(deletes) == 0 {
		return "", nil
	}
	fail := func(err error) (string, error) {
		return "", errors.Mark(err, ErrBatchCommit)
	}

	parentSHA, err := c.branchSHA(ctx, branch)
	if err != nil {
		return fail(err)
	}
	parent, _, err := c.gh.Git.GetCommit(ctx, c.owner, c.repo, parentSHA)
	if err != nil {
		return fail(wrap(err, "getting commit %s", parentSHA))
	}

	entries := make([]*github.TreeEntry, 0, len(writes)+len(deletes))
	for _, w := range writes {
		entries = append(entries, &github.TreeEntry{
			Path:    github.Ptr(w.Path),
			Mode:    github.Ptr("100644"),
			Type:    github.Ptr("blob"),
			Content: github.Ptr(w.Content),
		})
	}
	// An entry with neither SHA nor content removes the path.
	for _, d := range deletes {
		entries = append(entries, &github.TreeEntry{
			Path: github.Ptr(d),
			Mode: github.Ptr("100644"),
			Type: github.Ptr("blob"),
		})
	}

	tree, _, err := c.gh.Git.CreateTree(ctx, c.owner, c.repo, parent.GetTree().GetSHA(), entries)
	if err != nil {
		return fail(wrap(err, "creating tree on %s", branch))
	}
	commit, _, err := c.gh.Git.CreateCommit(ctx, c.owner, c.repo, &github.Commit{
		Message: github.Ptr(message),
		Tree:    &github.Tree{SHA: tree.SHA},
		Parents: []*github.Commit{{SHA: github.Ptr(parentSHA)}},
	}, nil)
	if err != nil {
		return fail(wrap(err, "creating commit on %s", branch))
	}
	_, _, err = c.gh.Git.UpdateRef(ctx, c.owner, c.repo, &github.Reference{
		Ref:    github.Ptr("refs/heads/" + branch),
		Object: &github.GitObject{SHA: commit.SHA},
	}, false)
	if err != nil {
		return fail(wrap(err, "updating branch %s", branch))
	}

	c.logger.Infow("committed batch", "branch", branch, "commit", commit.GetSHA(),
		"writes", len(writes), "deletes", len(deletes))
	return commit.GetSHA(), nil
}
