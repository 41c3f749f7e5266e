package profiler

import "context"

// CompletionRequest describes a single chat completion call.
type CompletionRequest struct {
	// System is the system-role instruction.
	System string

	// Prompt is the user-role message.
	Prompt string

	// Temperature controls sampling; extraction uses low values for
	// deterministic-leaning output.
	Temperature float32

	// MaxTokens caps the size of the completion.
	MaxTokens int
}

// Completer produces a single synchronous chat completion.
// No streaming, no multi-turn: one request, one text reply.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
