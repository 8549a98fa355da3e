package docsync

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"

	"github.com/doxai/doxai/internal/errors"
)

var (
	// ErrNotFound reports a missing PR, ref, or file.
	ErrNotFound = errors.ErrNotFound
	// ErrUnauthorized reports a rejected or under-privileged token.
	ErrUnauthorized = errors.ErrUnauthorized
	// ErrRefExists reports that a branch ref already exists.
	ErrRefExists = errors.New("reference already exists")
	// ErrBranchConflict reports that neither the proposed docs branch nor its
	// suffixed fallback could be created or reused.
	ErrBranchConflict = errors.New("docs branch conflict")
	// ErrBatchCommit reports a failed multi-file commit.
	ErrBatchCommit = errors.New("batch commit failed")
	// ErrPRExists reports that a pull request between the branches is open.
	ErrPRExists = errors.New("pull request already exists")
	// ErrBranchMissing reports a PR whose head or base branch does not exist.
	ErrBranchMissing = errors.New("pull request branch missing")
	// ErrRateLimited reports an exhausted primary or secondary API rate limit.
	ErrRateLimited = errors.New("GitHub API rate limit exceeded")
)

// statusCode extracts the HTTP status of a go-github error, or 0.
func statusCode(err error) int {
	var er *github.ErrorResponse
	if errors.As(err, &er) && er.Response != nil {
		return er.Response.StatusCode
	}
	return 0
}

// messages returns the top-level and per-field messages of a go-github error.
func messages(err error) []string {
	var er *github.ErrorResponse
	if !errors.As(err, &er) {
		return nil
	}
	out := []string{er.Message}
	for _, e := range er.Errors {
		out = append(out, e.Message, e.Code+" "+e.Field)
	}
	return out
}

func hasMessage(err error, substr string) bool {
	for _, m := range messages(err) {
		if strings.Contains(strings.ToLower(m), strings.ToLower(substr)) {
			return true
		}
	}
	return false
}

// wrap adds context to a go-github error and marks it with the matching
// sentinel so callers can use errors.Is without knowing about go-github.
func wrap(err error, format string, args ...any) error {
	wrapped := errors.Wrapf(err, format, args...)

	// Rate limit errors are not *github.ErrorResponse values.
	var rl *github.RateLimitError
	if errors.As(err, &rl) {
		return errors.WithHintf(errors.Mark(wrapped, ErrRateLimited),
			"GitHub API rate limit resets at %s", rl.Rate.Reset.UTC().Format("15:04:05 MST"))
	}
	var abuse *github.AbuseRateLimitError
	if errors.As(err, &abuse) {
		hint := "GitHub secondary rate limit hit; wait a few minutes and re-run the command"
		if d := abuse.GetRetryAfter(); d > 0 {
			hint = fmt.Sprintf("GitHub secondary rate limit hit; retry after %s", d.Round(time.Second))
		}
		return errors.WithHint(errors.Mark(wrapped, ErrRateLimited), hint)
	}

	switch statusCode(err) {
	case http.StatusNotFound:
		return errors.Mark(wrapped, ErrNotFound)
	case http.StatusUnauthorized:
		return errors.WithHint(errors.Mark(wrapped, ErrUnauthorized),
			"check that the workflow passes a valid GITHUB_TOKEN")
	case http.StatusForbidden:
		return errors.WithHint(errors.Mark(wrapped, ErrUnauthorized),
			"the token needs contents: write and pull-requests: write permissions")
	}
	return wrapped
}
