// Package stats reports static configuration facts plus the live vector
// count for the /stats endpoint.
package stats

import (
	"context"
	"fmt"
)

// Counter reports the number of indexed documents.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Info is the /stats payload.
type Info struct {
	Status         string
	EmbeddingModel string
	LLMModel       string
	IndexName      string
	TotalVectors   int
}

// Config carries the models and index the service is wired to.
type Config struct {
	EmbeddingModel string
	LLMModel       string
	IndexName      string
}

// Service answers stats requests.
type Service struct {
	counter Counter
	cfg     Config
}

// New creates a stats service.
func New(counter Counter, cfg Config) *Service {
	return &Service{counter: counter, cfg: cfg}
}

// Stats returns the current system facts.
func (s *Service) Stats(ctx context.Context) (Info, error) {
	count, err := s.counter.Count(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("count vectors: %w", err)
	}

	return Info{
		Status:         "ready",
		EmbeddingModel: s.cfg.EmbeddingModel,
		LLMModel:       s.cfg.LLMModel,
		IndexName:      s.cfg.IndexName,
		TotalVectors:   count,
	}, nil
}
