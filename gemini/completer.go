// Package gemini implements profiler.Completer using Google Gemini.
package gemini

import (
	"context"

	"github.com/MelvilleC99/profiler"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Completer implements profiler.Completer at compile time.
var _ profiler.Completer = (*Completer)(nil)

// Completer answers completion requests with the Gemini API.
type Completer struct {
	client *genai.Client
}

// NewCompleter creates a new Completer.
func NewCompleter(client *genai.Client) *Completer {
	return &Completer{client: client}
}

// Complete sends the request's prompt to Gemini and returns the raw text of
// the response.
func (c *Completer) Complete(ctx context.Context, req profiler.CompletionRequest) (string, error) {
	if req.Prompt == "" {
		return "", profiler.Errorf(profiler.EINVALID, "prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: req.Prompt}},
		}},
		BuildConfig(req),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", profiler.Errorf(profiler.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for a completion request.
func BuildConfig(req profiler.CompletionRequest) *genai.GenerateContentConfig {
	temp := req.Temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	return config
}
