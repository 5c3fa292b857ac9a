package ingest

import (
	"context"

	"github.com/homescout-ai/homescout/internal/domain"
)

// Scraper fetches property listings from source URLs.
type Scraper interface {
	ScrapeListings(ctx context.Context, urls []string) ([]domain.Listing, error)
}

// Embedder vectorizes chunk texts in batches.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}

// Repository persists chunks and their vectors.
type Repository interface {
	EnsureIndex(ctx context.Context) error
	Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error
	Count(ctx context.Context) (int, error)
}
