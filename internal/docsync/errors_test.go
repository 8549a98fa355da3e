package docsync

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doxai/doxai/internal/errors"
)

func TestWrapPrimaryRateLimit(t *testing.T) {
	c, mux := setup(t)
	mux.HandleFunc("GET /repos/acme/widgets/pulls/42", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "5000")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", "1700003600")
		writeJSON(t, w, http.StatusForbidden, map[string]any{
			"message": "API rate limit exceeded for installation ID 1.",
		})
	})

	_, err := c.GetPRDetails(t.Context(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateLimited))
	assert.False(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "GitHub API rate limit resets at 23:13:20 UTC", errors.Hint(err))
}

func TestWrapSecondaryRateLimit(t *testing.T) {
	c, mux := setup(t)
	mux.HandleFunc("POST /repos/acme/widgets/issues/42/comments", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "60")
		writeJSON(t, w, http.StatusForbidden, map[string]any{
			"message":           "You have exceeded a secondary rate limit.",
			"documentation_url": "https://docs.github.com/rest/overview/rate-limits-for-the-rest-api#about-secondary-rate-limits",
		})
	})

	_, err := c.CreateComment(t.Context(), 42, "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateLimited))
	assert.Contains(t, errors.Hint(err), "retry after 1m0s")
}

func TestWrapForbiddenIsUnauthorized(t *testing.T) {
	c, mux := setup(t)
	mux.HandleFunc("GET /repos/acme/widgets/pulls/42", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusForbidden, map[string]any{"message": "Resource not accessible by integration"})
	})

	_, err := c.GetPRDetails(t.Context(), 42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.False(t, errors.Is(err, ErrRateLimited))
	assert.Contains(t, errors.Hint(err), "pull-requests: write")
}
