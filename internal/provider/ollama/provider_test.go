package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doxai/doxai/internal/provider"
)

func TestStreamNDJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)

		var body apiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "llama3.2:3b", body.Model)
		require.NotNil(t, body.Options)
		assert.Equal(t, 256, body.Options.NumPredict)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)

		w.Write([]byte(`{"message":{"role":"assistant","content":"= A"},"done":false}
{"message":{"role":"assistant","content":"doc"},"done":false}
{"message":{"role":"assistant","content":""},"done":true,"done_reason":"stop","prompt_eval_count":7,"eval_count":3}
`))
	}))
	defer server.Close()

	ch, err := New(server.URL).Stream(context.Background(), provider.CompletionRequest{
		Model:     "llama3.2:3b",
		System:    "sys",
		Messages:  []provider.Message{provider.NewUserMessage("u")},
		MaxTokens: 256,
	})
	require.NoError(t, err)

	var text string
	var stop provider.StreamEvent
	for evt := range ch {
		switch evt.Type {
		case provider.EventTextDelta:
			text += evt.Text
		case provider.EventStop:
			stop = evt
		}
	}
	assert.Equal(t, "= Adoc", text)
	assert.Equal(t, "stop", stop.StopReason)
	assert.Equal(t, 7, stop.InputTokens)
	assert.Equal(t, 3, stop.OutputTokens)
}

func TestStreamInlineError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"model not found"}` + "\n"))
	}))
	defer server.Close()

	ch, err := New(server.URL).Stream(context.Background(), provider.CompletionRequest{})
	require.NoError(t, err)

	evt := <-ch
	assert.Equal(t, provider.EventError, evt.Type)
	assert.ErrorIs(t, evt.Error, provider.ErrProvider)
}

func TestStreamHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := New(server.URL).Stream(context.Background(), provider.CompletionRequest{})
	assert.True(t, provider.IsRateLimited(err))
}
