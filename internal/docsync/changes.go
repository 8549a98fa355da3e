package docsync

import (
	"context"
	"time"

	"github.com/google/go-github/v68/github"
)

// lastCommitTime returns the committer time of the newest commit touching
// path on ref. ok is false when no commit touches it.
func (c *Client) lastCommitTime(ctx context.Context, path, ref string) (t time.Time, ok bool, err error) {
	commits, _, err := c.gh.Repositories.ListCommits(ctx, c.owner, c.repo, &github.CommitsListOptions{
		SHA:         ref,
		Path:        path,
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return time.Time{}, false, wrap(err, "listing commits for %s@%s", path, ref)
	}
	if len(commits) == 0 {
		return time.Time{}, false, nil
	}
	return commits[0].GetCommit().GetCommitter().GetDate().Time, true, nil
}

// HasSourceChanged reports whether sourcePath was committed on sourceRef
// after docPath was last committed on docsBranch. A doc with no history
// counts as changed, a source with no history as unchanged, and any lookup
// failure as changed.
func (c *Client) HasSourceChanged(ctx context.Context, sourcePath, docPath, docsBranch, sourceRef string) bool {
	docTime, ok, err := c.lastCommitTime(ctx, docPath, docsBranch)
	if err != nil {
		c.logger.Warnw("doc history lookup failed, regenerating", "file", sourcePath, "doc", docPath, "error", err)
		return true
	}
	if !ok {
		return true
	}

	srcTime, ok, err := c.lastCommitTime(ctx, sourcePath, sourceRef)
	if err != nil {
		c.logger.Warnw("source history lookup failed, regenerating", "file", sourcePath, "error", err)
		return true
	}
	if !ok {
		return false
	}
	return srcTime.After(docTime)
}
