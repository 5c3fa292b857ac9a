package domain

import "errors"

// Sentinel errors shared across layers. Transport maps these to the
// response envelope; provider adapters wrap raw API failures with the
// *Provider sentinels, and the RAG pipeline converts retry exhaustion
// into the *Unavailable sentinels.
var (
	// ErrInvalidQuery signals user input that fails validation.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrEmbeddingUnavailable signals embedding retry exhaustion.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
	// ErrRetrievalUnavailable signals vector store retry exhaustion.
	ErrRetrievalUnavailable = errors.New("retrieval service unavailable")
	// ErrGenerationUnavailable signals LLM retry exhaustion.
	ErrGenerationUnavailable = errors.New("generation service unavailable")

	// ErrEmbeddingProvider signals a single embedding API failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrLLMProvider signals a single LLM API failure.
	ErrLLMProvider = errors.New("llm provider error")
	// ErrScraperProvider signals a scraping API failure.
	ErrScraperProvider = errors.New("scraper provider error")
)
