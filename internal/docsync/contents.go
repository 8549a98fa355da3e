package docsync

import (
	"context"

	"github.com/google/go-github/v68/github"

	"github.com/doxai/doxai/internal/errors"
)

// getFile returns the contents API entry for a file at ref. Directories
// are reported as ErrNotFound.
func (c *Client) getFile(ctx context.Context, path, ref string) (*github.RepositoryContent, error) {
	file, _, _, err := c.gh.Repositories.GetContents(ctx, c.owner, c.repo, path,
		&github.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return nil, wrap(err, "getting %s@%s", path, ref)
	}
	if file == nil {
		return nil, errors.Mark(errors.Newf("%s@%s is a directory", path, ref), ErrNotFound)
	}
	return file, nil
}

// GetFileContent returns the decoded text of path at ref, or an error
// matching ErrNotFound when the file does not exist there.
func (c *Client) GetFileContent(ctx context.Context, path, ref string) (string, error) {
	file, err := c.getFile(ctx, path, ref)
	if err != nil {
		return "", err
	}
	content, err := file.GetContent()
	if err != nil {
		return "", errors.Wrapf(err, "decoding %s@%s", path, ref)
	}
	return content, nil
}

// CommitFile creates or updates a single file on branch.
func (c *Client) CommitFile(ctx context.Context, branch, path, content, message string) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		Content: []byte(content),
		Branch:  github.Ptr(branch),
	}

	existing, err := c.getFile(ctx, path, branch)
	switch {
	case err == nil:
		opts.SHA = existing.SHA
		if _, _, err := c.gh.Repositories.UpdateFile(ctx, c.owner, c.repo, path, opts); err != nil {
			return wrap(err, "updating %s on %s", path, branch)
		}
	case errors.Is(err, ErrNotFound):
		if _, _, err := c.gh.Repositories.CreateFile(ctx, c.owner, c.repo, path, opts); err != nil {
			return wrap(err, "creating %s on %s", path, branch)
		}
	default:
		return err
	}
	c.logger.Debugw("committed file", "file", path, "branch", branch)
	return nil
}

// DeleteFile removes a single file from branch. A missing file yields an
// error matching ErrNotFound.
func (c *Client) DeleteFile(ctx context.Context, branch, path, message string) error {
	existing, err := c.getFile(ctx, path, branch)
	if err != nil {
		return err
	}
	_, _, err = c.gh.Repositories.DeleteFile(ctx, c.owner, c.repo, path, &github.RepositoryContentFileOptions{
		Message: github.Ptr(message),
		SHA:     existing.SHA,
		Branch:  github.Ptr(branch),
	})
	if err != nil {
		return wrap(err, "deleting %s on %s", path, branch)
	}
	c.logger.Debugw("deleted file", "file", path, "branch", branch)
	return nil
}
