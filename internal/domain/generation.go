package domain

import "context"

// Completion carries generated text and token usage from the LLM provider.
type Completion struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Generator is the chat completion contract between layers.
type Generator interface {
	Complete(ctx context.Context, system, user string) (Completion, error)
}
