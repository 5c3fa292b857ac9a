// Package ingest builds the vector index: scrape listings, summarize and
// chunk their text, embed the chunks in batches, and upsert them into the
// store. Chunk IDs are deterministic, so re-running over the same listings
// overwrites records in place instead of duplicating them.
package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/homescout-ai/homescout/internal/domain"
)

const defaultEmbedBatchSize = 100

// Config bounds chunking and embedding batches.
type Config struct {
	ChunkSize      int
	ChunkOverlap   int
	EmbedBatchSize int
}

// Result summarizes one ingestion run.
type Result struct {
	Listings    int
	Chunks      int
	IndexedDocs int // total docs in the index after the run
}

// Service drives the ingestion pipeline.
type Service struct {
	scraper   Scraper
	embed     Embedder
	repo      Repository
	chunker   Chunker
	batchSize int
	logger    *zap.Logger
}

// New creates an ingestion service.
func New(scraper Scraper, embed Embedder, repo Repository, cfg Config, logger *zap.Logger) *Service {
	batchSize := cfg.EmbedBatchSize
	if batchSize <= 0 {
		batchSize = defaultEmbedBatchSize
	}
	return &Service{
		scraper:   scraper,
		embed:     embed,
		repo:      repo,
		chunker:   NewChunker(cfg.ChunkSize, cfg.ChunkOverlap),
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run scrapes the given URLs and ingests the resulting listings.
func (s *Service) Run(ctx context.Context, urls []string) (Result, error) {
	logger := s.logger.With(zap.String("run_id", uuid.NewString()))

	logger.Info("scraping listings", zap.Int("urls", len(urls)))

	listings, err := s.scraper.ScrapeListings(ctx, urls)
	if err != nil {
		return Result{}, fmt.Errorf("scrape listings: %w", err)
	}
	if len(listings) == 0 {
		return Result{}, fmt.Errorf("scraper returned no listings for %d urls", len(urls))
	}

	return s.ingest(ctx, logger, listings)
}

// IngestListings indexes pre-fetched listings, bypassing the scraper.
// Used for sample data and replays of saved scrape output.
func (s *Service) IngestListings(ctx context.Context, listings []domain.Listing) (Result, error) {
	logger := s.logger.With(zap.String("run_id", uuid.NewString()))
	return s.ingest(ctx, logger, listings)
}

func (s *Service) ingest(ctx context.Context, logger *zap.Logger, listings []domain.Listing) (Result, error) {
	if err := s.repo.EnsureIndex(ctx); err != nil {
		return Result{}, fmt.Errorf("ensure index: %w", err)
	}

	chunks := s.chunkListings(listings)
	logger.Info("chunked listings",
		zap.Int("listings", len(listings)),
		zap.Int("chunks", len(chunks)),
	)

	for from := 0; from < len(chunks); from += s.batchSize {
		to := from + s.batchSize
		if to > len(chunks) {
			to = len(chunks)
		}
		batch := chunks[from:to]

		texts := make([]string, len(batch))
		for i, ch := range batch {
			texts[i] = ch.Text
		}

		embRes, err := s.embed.BatchEmbed(ctx, texts)
		if err != nil {
			return Result{}, fmt.Errorf("embed batch [%d:%d]: %w", from, to, err)
		}

		if err := s.repo.Upsert(ctx, batch, embRes.Embeddings); err != nil {
			return Result{}, fmt.Errorf("upsert batch [%d:%d]: %w", from, to, err)
		}

		logger.Info("indexed batch",
			zap.Int("from", from),
			zap.Int("to", to),
			zap.Int("tokens", embRes.TotalTokens),
		)
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		logger.Warn("index count unavailable", zap.Error(err))
		count = len(chunks)
	}

	logger.Info("ingestion complete",
		zap.Int("listings", len(listings)),
		zap.Int("chunks", len(chunks)),
		zap.Int("indexed_docs", count),
	)

	return Result{Listings: len(listings), Chunks: len(chunks), IndexedDocs: count}, nil
}

// chunkListings expands every listing into metadata-carrying chunks with
// deterministic IDs.
func (s *Service) chunkListings(listings []domain.Listing) []domain.Chunk {
	var out []domain.Chunk
	for _, l := range listings {
		texts := s.chunker.Split(Summarize(l))
		for i, text := range texts {
			out = append(out, domain.Chunk{
				ID:   domain.ChunkID(l.ID, i),
				Text: text,
				Meta: domain.ChunkMeta{
					Title:        l.Title,
					Location:     l.Location,
					Price:        l.Price,
					PropertyType: l.PropertyType,
					BHK:          l.BHK,
					Area:         l.Area,
					URL:          l.URL,
					ChunkIndex:   i,
					TotalChunks:  len(texts),
				},
			})
		}
	}
	return out
}
