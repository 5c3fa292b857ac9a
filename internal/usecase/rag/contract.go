package rag

import (
	"context"

	"github.com/homescout-ai/homescout/internal/domain"
)

// Retriever runs vector similarity search over stored property chunks.
type Retriever interface {
	Search(ctx context.Context, vector []float32, k int) ([]domain.Match, error)
}

// Embedder vectorizes the user query.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Generator produces the grounded answer from the assembled prompt.
type Generator interface {
	Complete(ctx context.Context, system, user string) (domain.Completion, error)
}
