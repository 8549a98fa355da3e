// internal/runner/event.go
package runner

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/go-github/v68/github"

	"github.com/doxai/doxai/internal/generator"
)

// LoadEvent reads the webhook payload GitHub Actions stores at path and
// converts it into a generator.Event. Events other than issue comments are
// returned with only their name set, which the generator ignores.
func LoadEvent(name, path string) (generator.Event, error) {
	if name != generator.EventIssueComment {
		return generator.Event{Name: name}, nil
	}
	if path == "" {
		return generator.Event{}, fmt.Errorf("GITHUB_EVENT_PATH is not set")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return generator.Event{}, fmt.Errorf("reading event payload: %w", err)
	}
	return ParseIssueComment(data)
}

// ParseIssueComment converts an issue_comment webhook payload.
func ParseIssueComment(data []byte) (generator.Event, error) {
	var payload github.IssueCommentEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return generator.Event{}, fmt.Errorf("parsing issue_comment payload: %w", err)
	}
	issue := payload.GetIssue()
	if issue == nil {
		return generator.Event{}, fmt.Errorf("issue_comment payload has no issue")
	}
	return generator.Event{
		Name:          generator.EventIssueComment,
		Action:        payload.GetAction(),
		Number:        issue.GetNumber(),
		IsPullRequest: issue.IsPullRequest(),
		Body:          payload.GetComment().GetBody(),
		Author:        payload.GetComment().GetUser().GetLogin(),
	}, nil
}
