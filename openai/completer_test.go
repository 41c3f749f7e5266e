package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MelvilleC99/profiler"
	popenai "github.com/MelvilleC99/profiler/openai"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *openai.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	return openai.NewClientWithConfig(config)
}

func TestCompleter_Complete(t *testing.T) {
	t.Parallel()

	t.Run("sends system and user messages with sampling knobs", func(t *testing.T) {
		t.Parallel()

		var got openai.ChatCompletionRequest
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			resp := openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{{
					Message: openai.ChatCompletionMessage{Content: `{"cover_page": {}}`},
				}},
			}
			w.Header().Set("Content-Type", "application/json")
			require.NoError(t, json.NewEncoder(w).Encode(resp))
		})

		completer := popenai.NewCompleter(client, popenai.WithModel(openai.GPT4))
		out, err := completer.Complete(context.Background(), profiler.CompletionRequest{
			System:      "You are a precise data extraction assistant.",
			Prompt:      "Extract the profile.",
			Temperature: 0.1,
			MaxTokens:   3000,
		})
		require.NoError(t, err)

		assert.Equal(t, `{"cover_page": {}}`, out)
		assert.Equal(t, openai.GPT4, got.Model)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
		assert.Equal(t, openai.ChatMessageRoleUser, got.Messages[1].Role)
		assert.Equal(t, "Extract the profile.", got.Messages[1].Content)
		assert.InDelta(t, 0.1, got.Temperature, 0.001)
		assert.Equal(t, 3000, got.MaxTokens)
	})

	t.Run("requires a prompt", func(t *testing.T) {
		t.Parallel()

		completer := popenai.NewCompleter(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("unexpected request")
		}))

		_, err := completer.Complete(context.Background(), profiler.CompletionRequest{})

		assert.Equal(t, profiler.EINVALID, profiler.ErrorCode(err))
	})

	t.Run("maps API failures to EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		completer := popenai.NewCompleter(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
		}))

		_, err := completer.Complete(context.Background(), profiler.CompletionRequest{Prompt: "x"})

		assert.Equal(t, profiler.EUNAVAILABLE, profiler.ErrorCode(err))
	})
}
