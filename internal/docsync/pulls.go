package docsync

import (
	"context"
	"net/http"
	"time"

	"github.com/google/go-github/v68/github"

	"github.com/doxai/doxai/internal/errors"
)

// PRDetails is the subset of pull request metadata the generator needs.
type PRDetails struct {
	Number    int
	Title     string
	State     string
	Merged    bool
	MergedAt  time.Time
	BaseRef   string
	HeadRef   string
	HeadSHA   string
	Author    string
	URL       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// File status values reported by the pull request files API.
const (
	StatusAdded     = "added"
	StatusModified  = "modified"
	StatusRemoved   = "removed"
	StatusRenamed   = "renamed"
	StatusCopied    = "copied"
	StatusChanged   = "changed"
	StatusUnchanged = "unchanged"
)

// ChangedFile is one file touched by a pull request.
type ChangedFile struct {
	Path         string
	Status       string
	PreviousPath string
}

// FilePath implements filter.File.
func (f ChangedFile) FilePath() string { return f.Path }

// Removed reports whether the pull request deleted the file.
func (f ChangedFile) Removed() bool { return f.Status == StatusRemoved }

// DocsPRRef identifies an open documentation pull request.
type DocsPRRef struct {
	Number  int
	URL     string
	HeadRef string
	BaseRef string
}

// GetPRDetails fetches pull request metadata.
func (c *Client) GetPRDetails(ctx context.Context, number int) (*PRDetails, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, wrap(err, "getting PR #%d", number)
	}
	return &PRDetails{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		State:     pr.GetState(),
		Merged:    pr.GetMerged(),
		MergedAt:  pr.GetMergedAt().Time,
		BaseRef:   pr.GetBase().GetRef(),
		HeadRef:   pr.GetHead().GetRef(),
		HeadSHA:   pr.GetHead().GetSHA(),
		Author:    pr.GetUser().GetLogin(),
		URL:       pr.GetHTMLURL(),
		CreatedAt: pr.GetCreatedAt().Time,
		UpdatedAt: pr.GetUpdatedAt().Time,
	}, nil
}

// GetChangedFiles lists every file of a pull request, following pagination.
func (c *Client) GetChangedFiles(ctx context.Context, number int) ([]ChangedFile, error) {
	opts := &github.ListOptions{PerPage: 100}
	var out []ChangedFile
	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			return nil, wrap(err, "listing files of PR #%d", number)
		}
		for _, f := range files {
			out = append(out, ChangedFile{
				Path:         f.GetFilename(),
				Status:       f.GetStatus(),
				PreviousPath: f.GetPreviousFilename(),
			})
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	c.logger.Debugw("listed changed files", "pr", number, "count", len(out))
	return out, nil
}

// FindExistingDocsPR returns the first open pull request whose title or
// head branch identifies it as the docs PR for number, or nil.
func (c *Client) FindExistingDocsPR(ctx context.Context, number int, project string) (*DocsPRRef, error) {
	title := PRTitle(project, number)
	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		prs, resp, err := c.gh.PullRequests.List(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, wrap(err, "listing open pull requests")
		}
		for _, pr := range prs {
			head := pr.GetHead().GetRef()
			if pr.GetTitle() == title || isDocsBranchFor(head, project, number) {
				return &DocsPRRef{
					Number:  pr.GetNumber(),
					URL:     pr.GetHTMLURL(),
					HeadRef: head,
					BaseRef: pr.GetBase().GetRef(),
				}, nil
			}
		}
		if resp == nil || resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreatePR opens a pull request from head into base.
func (c *Client) CreatePR(ctx context.Context, title, body, head, base string) (*DocsPRRef, error) {
	pr, _, err := c.gh.PullRequests.Create(ctx, c.owner, c.repo, &github.NewPullRequest{
		Title:               github.Ptr(title),
		Head:                github.Ptr(head),
		Base:                github.Ptr(base),
		Body:                github.Ptr(body),
		MaintainerCanModify: github.Ptr(true),
	})
	if err != nil {
		if statusCode(err) == http.StatusUnprocessableEntity {
			switch {
			case hasMessage(err, "already exists"):
				return nil, errors.Mark(wrap(err, "creating pull request %s -> %s", head, base), ErrPRExists)
			case hasMessage(err, "invalid head"), hasMessage(err, "invalid base"):
				return nil, errors.Mark(wrap(err, "creating pull request %s -> %s", head, base), ErrBranchMissing)
			}
		}
		return nil, wrap(err, "creating pull request %s -> %s", head, base)
	}
	c.logger.Infow("created pull request", "number", pr.GetNumber(), "branch", head)
	return &DocsPRRef{
		Number:  pr.GetNumber(),
		URL:     pr.GetHTMLURL(),
		HeadRef: pr.GetHead().GetRef(),
		BaseRef: pr.GetBase().GetRef(),
	}, nil
}

// CreateComment posts a comment on an issue or pull request and returns its URL.
func (c *Client) CreateComment(ctx context.Context, number int, body string) (string, error) {
	comment, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, number, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		return "", wrap(err, "commenting on #%d", number)
	}
	return comment.GetHTMLURL(), nil
}
