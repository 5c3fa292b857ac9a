// Package rag implements the retrieval-augmented generation pipeline:
// validate → embed → KNN retrieve → prompt assembly → chat completion →
// citation parsing. Each outbound stage retries with backoff and maps
// exhaustion to a stage-specific sentinel so transport can answer with a
// graceful fallback instead of a 5xx.
package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/homescout-ai/homescout/internal/domain"
	"github.com/homescout-ai/homescout/internal/metrics"
	"github.com/homescout-ai/homescout/internal/retry"
)

// Fallback answers returned to the user when a pipeline stage is down.
const (
	// NoResultsAnswer is returned when retrieval finds nothing; the LLM is
	// not invoked in that case.
	NoResultsAnswer = "No relevant property information found."
	// FallbackRetrievalAnswer covers vector store exhaustion.
	FallbackRetrievalAnswer = "Sorry, I encountered a database error. Please try again."
	// FallbackGenerationAnswer covers LLM exhaustion.
	FallbackGenerationAnswer = "Sorry, I couldn't generate a response. Please try again."
	// FallbackInternalAnswer covers everything else.
	FallbackInternalAnswer = "Sorry, I encountered an error processing your request. Please try again."
)

// Config bounds query validation and stage retries.
type Config struct {
	DefaultTopK int
	MaxTopK     int
	MinQueryLen int
	MaxQueryLen int
	Retry       retry.Policy
}

// Service answers natural-language property questions against the vector
// store.
type Service struct {
	embed  Embedder
	retr   Retriever
	gen    Generator
	cfg    Config
	logger *zap.Logger
}

// New creates a RAG service.
func New(embed Embedder, retr Retriever, gen Generator, cfg Config, logger *zap.Logger) *Service {
	return &Service{embed: embed, retr: retr, gen: gen, cfg: cfg, logger: logger}
}

// Query runs the full pipeline for one user question. A topK of zero
// selects the configured default. Validation failures return
// domain.ErrInvalidQuery without touching any provider; stage exhaustion
// returns the matching *Unavailable sentinel wrapping the last provider
// error.
func (s *Service) Query(ctx context.Context, query string, topK int) (domain.Answer, error) {
	start := time.Now()

	query = strings.TrimSpace(query)
	if topK == 0 {
		topK = s.cfg.DefaultTopK
	}
	if err := s.validate(query, topK); err != nil {
		metrics.QueriesTotal.WithLabelValues("invalid").Inc()
		return domain.Answer{}, err
	}

	vector, err := s.embedQuery(ctx, query)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues("embedding_error").Inc()
		return domain.Answer{}, err
	}

	matches, err := s.retrieve(ctx, vector, topK)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues("retrieval_error").Inc()
		return domain.Answer{}, err
	}

	metrics.ChunksRetrieved.Observe(float64(len(matches)))

	if len(matches) == 0 {
		s.logger.Info("no matches retrieved", zap.String("query", query))
		metrics.QueriesTotal.WithLabelValues("success").Inc()
		metrics.QueryDuration.WithLabelValues("total").Observe(time.Since(start).Seconds())
		return domain.Answer{Text: NoResultsAnswer}, nil
	}

	text, err := s.generate(ctx, query, matches)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues("generation_error").Inc()
		return domain.Answer{}, err
	}

	answer := domain.Answer{
		Text:       text,
		Matches:    matches,
		CitedRanks: parseCitations(text, len(matches)),
	}

	metrics.QueriesTotal.WithLabelValues("success").Inc()
	metrics.QueryDuration.WithLabelValues("total").Observe(time.Since(start).Seconds())

	s.logger.Info("query answered",
		zap.Int("top_k", topK),
		zap.Int("chunks", len(matches)),
		zap.Int("cited", len(answer.CitedRanks)),
		zap.Duration("took", time.Since(start)),
	)

	return answer, nil
}

func (s *Service) validate(query string, topK int) error {
	if len(query) < s.cfg.MinQueryLen {
		return fmt.Errorf("%w: query must be at least %d characters",
			domain.ErrInvalidQuery, s.cfg.MinQueryLen)
	}
	if len(query) > s.cfg.MaxQueryLen {
		return fmt.Errorf("%w: query must be at most %d characters",
			domain.ErrInvalidQuery, s.cfg.MaxQueryLen)
	}
	if topK < 1 || topK > s.cfg.MaxTopK {
		return fmt.Errorf("%w: top_k must be between 1 and %d",
			domain.ErrInvalidQuery, s.cfg.MaxTopK)
	}
	return nil
}

func (s *Service) embedQuery(ctx context.Context, query string) ([]float32, error) {
	stageStart := time.Now()

	var result domain.EmbeddingResult
	err := s.cfg.Retry.Do(ctx, func(ctx context.Context) error {
		var embErr error
		result, embErr = s.embed.Embed(ctx, query)
		if embErr != nil {
			s.logger.Warn("embed attempt failed", zap.Error(embErr))
		}
		return embErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	metrics.QueryDuration.WithLabelValues("embed").Observe(time.Since(stageStart).Seconds())
	return result.Embedding, nil
}

func (s *Service) retrieve(ctx context.Context, vector []float32, topK int) ([]domain.Match, error) {
	stageStart := time.Now()

	var matches []domain.Match
	err := s.cfg.Retry.Do(ctx, func(ctx context.Context) error {
		var searchErr error
		matches, searchErr = s.retr.Search(ctx, vector, topK)
		if searchErr != nil {
			s.logger.Warn("retrieval attempt failed", zap.Error(searchErr))
		}
		return searchErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRetrievalUnavailable, err)
	}

	metrics.QueryDuration.WithLabelValues("retrieve").Observe(time.Since(stageStart).Seconds())
	return matches, nil
}

func (s *Service) generate(ctx context.Context, query string, matches []domain.Match) (string, error) {
	stageStart := time.Now()

	texts := make([]string, len(matches))
	for i, m := range matches {
		texts[i] = m.Text
	}
	user := buildUserPrompt(query, buildContext(texts))

	var completion domain.Completion
	err := s.cfg.Retry.Do(ctx, func(ctx context.Context) error {
		var genErr error
		completion, genErr = s.gen.Complete(ctx, systemPrompt, user)
		if genErr != nil {
			s.logger.Warn("generation attempt failed", zap.Error(genErr))
		}
		return genErr
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrGenerationUnavailable, err)
	}

	metrics.QueryDuration.WithLabelValues("generate").Observe(time.Since(stageStart).Seconds())
	return completion.Text, nil
}
