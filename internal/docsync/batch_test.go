package docsync

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doxai/doxai/internal/errors"
)

func TestCommitMultipleChanges(t *testing.T) {
	c, mux := setup(t)

	var treeReq struct {
		BaseTree string           `json:"base_tree"`
		Tree     []map[string]any `json:"tree"`
	}
	var updatedTo string

	mux.HandleFunc("GET /repos/acme/widgets/git/ref/heads/docs/doxai-pr-42", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"object": map[string]any{"sha": "parent"}})
	})
	mux.HandleFunc("GET /repos/acme/widgets/git/commits/parent", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"sha": "parent", "tree": map[string]any{"sha": "base-tree"}})
	})
	mux.HandleFunc("POST /repos/acme/widgets/git/trees", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&treeReq))
		writeJSON(t, w, http.StatusCreated, map[string]any{"sha": "new-tree"})
	})
	mux.HandleFunc("POST /repos/acme/widgets/git/commits", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "new-tree", body["tree"])
		assert.Equal(t, []any{"parent"}, body["parents"])
		writeJSON(t, w, http.StatusCreated, map[string]any{"sha": "new-commit"})
	})
	mux.HandleFunc("PATCH /repos/acme/widgets/git/refs/heads/docs/doxai-pr-42", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		updatedTo, _ = body["sha"].(string)
		writeJSON(t, w, http.StatusOK, map[string]any{"object": map[string]any{"sha": updatedTo}})
	})

	sha, err := c.CommitMultipleChanges(t.Context(), "docs/doxai-pr-42",
		[]FileWrite{{Path: "docs/doxai/src/auth.adoc", Content: "= Auth"}},
		[]string{"docs/doxai/src/gone.adoc"},
		"docs: update")
	require.NoError(t, err)
	assert.Equal(t, "new-commit", sha)
	assert.Equal(t, "new-commit", updatedTo)

	assert.Equal(t, "base-tree", treeReq.BaseTree)
	require.Len(t, treeReq.Tree, 2)
	assert.Equal(t, "docs/doxai/src/auth.adoc", treeReq.Tree[0]["path"])
	assert.Equal(t, "= Auth", treeReq.Tree[0]["content"])
	assert.Equal(t, "docs/doxai/src/gone.adoc", treeReq.Tree[1]["path"])
	assert.Contains(t, treeReq.Tree[1], "sha")
	assert.Nil(t, treeReq.Tree[1]["sha"])
}

func TestCommitMultipleChangesFailureIsBatchError(t *testing.T) {
	c, mux := setup(t)
	mux.HandleFunc("GET /repos/acme/widgets/git/ref/heads/docs/doxai-pr-42", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"object": map[string]any{"sha": "parent"}})
	})
	mux.HandleFunc("GET /repos/acme/widgets/git/commits/parent", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"sha": "parent", "tree": map[string]any{"sha": "base-tree"}})
	})
	mux.HandleFunc("POST /repos/acme/widgets/git/trees", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{"message": "tree.path contains a malformed path component"})
	})

	_, err := c.CommitMultipleChanges(t.Context(), "docs/doxai-pr-42",
		[]FileWrite{{Path: "docs/x.adoc", Content: "x"}}, nil, "docs: update")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBatchCommit))
}

func TestCommitMultipleChangesNothingToDo(t *testing.T) {
	c, _ := setup(t)
	sha, err := c.CommitMultipleChanges(t.Context(), "docs/doxai-pr-42", nil, nil, "docs: update")
	require.NoError(t, err)
	assert.Empty(t, sha)
}
