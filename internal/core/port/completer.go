package port

import (
	"context"

	"bitbot/internal/core/domain"
)

type Completer interface {
	// Complete sends one completion request to the provider and returns its
	// response, which either carries final text or a pending tool call.
	Complete(ctx context.Context, req domain.CompletionRequest) (domain.Completion, error)
	// SubmitToolResult answers a pending tool call on the conversation
	// identified by previousID and returns the provider's next response.
	// Instructions must be passed again: the provider does not inherit them
	// across continuation IDs.
	SubmitToolResult(ctx context.Context, instructions, previousID string, call domain.ToolCall,
		output string) (domain.Completion, error)
}
