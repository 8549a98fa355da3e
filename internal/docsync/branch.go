package docsync

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v68/github"

	"github.com/doxai/doxai/internal/errors"
)

// DocsBranchState describes the branch documentation is committed to.
type DocsBranchState struct {
	BranchName string
	// Created is true when this run created the branch.
	Created bool
	// ExistingPR is set when an open docs PR already targets the branch.
	ExistingPR *DocsPRRef
}

func (c *Client) branchSHA(ctx context.Context, branch string) (string, error) {
	ref, _, err := c.gh.Git.GetRef(ctx, c.owner, c.repo, "heads/"+branch)
	if err != nil {
		return "", wrap(err, "resolving branch %s", branch)
	}
	return ref.GetObject().GetSHA(), nil
}

func (c *Client) createBranch(ctx context.Context, name, sha string) error {
	_, _, err := c.gh.Git.CreateRef(ctx, c.owner, c.repo, &github.Reference{
		Ref:    github.Ptr("refs/heads/" + name),
		Object: &github.GitObject{SHA: github.Ptr(sha)},
	})
	if err == nil {
		return nil
	}
	if statusCode(err) == http.StatusUnprocessableEntity && hasMessage(err, "already exists") {
		return errors.Mark(wrap(err, "creating branch %s", name), ErrRefExists)
	}
	return wrap(err, "creating branch %s", name)
}

// CreateOrGetDocsBranch resolves the branch documentation for PR number is
// committed to. An open docs PR's head branch is reused as is. Otherwise
// proposed is created from base; if it already exists a branch with a
// unix-seconds suffix is tried once, and reused if that exists too.
func (c *Client) CreateOrGetDocsBranch(ctx context.Context, base, proposed string, number int, project string) (*DocsBranchState, error) {
	existing, err := c.FindExistingDocsPR(ctx, number, project)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		c.logger.Infow("reusing docs branch of open PR", "branch", existing.HeadRef, "docs_pr", existing.Number)
		return &DocsBranchState{BranchName: existing.HeadRef, ExistingPR: existing}, nil
	}

	sha, err := c.branchSHA(ctx, base)
	if err != nil {
		return nil, err
	}

	err = c.createBranch(ctx, proposed, sha)
	if err == nil {
		c.logger.Infow("created docs branch", "branch", proposed)
		return &DocsBranchState{BranchName: proposed, Created: true}, nil
	}
	if !errors.Is(err, ErrRefExists) {
		return nil, err
	}

	suffixed := fmt.Sprintf("%s-%d", proposed, c.now().Unix())
	c.logger.Warnw("docs branch exists without an open PR, trying suffixed name", "branch", proposed, "fallback", suffixed)
	err = c.createBranch(ctx, suffixed, sha)
	switch {
	case err == nil:
		return &DocsBranchState{BranchName: suffixed, Created: true}, nil
	case errors.Is(err, ErrRefExists):
		return &DocsBranchState{BranchName: suffixed}, nil
	default:
		return nil, errors.Mark(err, ErrBranchConflict)
	}
}
