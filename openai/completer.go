// Package openai implements profiler.Completer using the OpenAI chat
// completions API.
package openai

import (
	"context"

	"github.com/MelvilleC99/profiler"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT4o

// Ensure Completer implements profiler.Completer at compile time.
var _ profiler.Completer = (*Completer)(nil)

// Completer answers completion requests with the OpenAI chat API.
type Completer struct {
	client *openai.Client
	model  string
}

// Option configures a Completer.
type Option func(*Completer)

// WithModel overrides the chat model. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(c *Completer) {
		c.model = model
	}
}

// NewCompleter creates a Completer on top of an existing client.
func NewCompleter(client *openai.Client, opts ...Option) *Completer {
	c := &Completer{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends the request as a chat completion and returns the raw text
// of the first choice.
func (c *Completer) Complete(ctx context.Context, req profiler.CompletionRequest) (string, error) {
	if req.Prompt == "" {
		return "", profiler.Errorf(profiler.EINVALID, "prompt required")
	}

	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", profiler.Errorf(profiler.EUNAVAILABLE, "chat completion: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", profiler.Errorf(profiler.EINTERNAL, "chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
