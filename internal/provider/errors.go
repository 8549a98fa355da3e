package provider

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/doxai/doxai/internal/errors"
)

var (
	// ErrRateLimited means the provider throttled the request.
	ErrRateLimited = errors.New("rate limited by AI provider")
	// ErrBlocked means the provider refused or safety-filtered the output.
	ErrBlocked = errors.New("response blocked by AI provider")
	// ErrProvider covers every other provider-side failure.
	ErrProvider = errors.New("AI provider error")
)

// Error is a classified provider failure. Kind is one of the sentinels above
// and is what errors.Is matches.
type Error struct {
	Provider   string
	StatusCode int
	Message    string
	Kind       error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %v (HTTP %d): %s", e.Provider, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %v: %s", e.Provider, e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Kind }

// blockedMarkers are substrings providers put in 400 bodies for
// policy refusals.
var blockedMarkers = []string{"content_filter", "content_policy", "safety", "moderation", "refusal"}

// ClassifyHTTP builds an Error from a non-200 response.
func ClassifyHTTP(providerName string, status int, body []byte) *Error {
	msg := strings.TrimSpace(string(body))
	e := &Error{Provider: providerName, StatusCode: status, Message: msg, Kind: ErrProvider}

	switch {
	case status == http.StatusTooManyRequests, status == 529:
		e.Kind = ErrRateLimited
	case status == http.StatusBadRequest || status == http.StatusForbidden:
		lower := strings.ToLower(msg)
		for _, m := range blockedMarkers {
			if strings.Contains(lower, m) {
				e.Kind = ErrBlocked
				break
			}
		}
	}
	return e
}

// Blocked builds an Error for a stream that ended with a refusal.
func Blocked(providerName, reason string) *Error {
	return &Error{Provider: providerName, Message: "stop reason " + reason, Kind: ErrBlocked}
}

// IsRateLimited reports whether err is a rate-limit failure.
func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }

// IsBlocked reports whether err is a refusal or safety block.
func IsBlocked(err error) bool { return errors.Is(err, ErrBlocked) }
