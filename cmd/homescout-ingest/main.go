// Ingestion pipeline for homescout. Scrapes property listings through the
// Apify actor (or loads the bundled sample set), chunks and embeds their
// text, and upserts the chunks into the Redis vector index.
//
// Usage:
//
//	homescout-ingest -urls https://www.magicbricks.com/...,https://...
//	homescout-ingest -urls-file urls.txt
//	homescout-ingest -sample
//	homescout-ingest -reset -sample
//
// Configuration comes from config/<ENV>.yaml plus the environment, same as
// the API server. Scraper credentials are only required when scraping.
package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/homescout-ai/homescout/internal/config"
	dbRedis "github.com/homescout-ai/homescout/internal/db/redis"
	logpkg "github.com/homescout-ai/homescout/internal/logger"
	"github.com/homescout-ai/homescout/internal/metrics"
	chunkrepo "github.com/homescout-ai/homescout/internal/repository/chunk"
	"github.com/homescout-ai/homescout/internal/transport/apify"
	openaiTransport "github.com/homescout-ai/homescout/internal/transport/openai"
	ingestuc "github.com/homescout-ai/homescout/internal/usecase/ingest"
)

type flags struct {
	urls     string
	urlsFile string
	sample   bool
	reset    bool
}

func main() {
	var f flags
	flag.StringVar(&f.urls, "urls", "", "comma-separated listing URLs to scrape")
	flag.StringVar(&f.urlsFile, "urls-file", "", "file with one listing URL per line")
	flag.BoolVar(&f.sample, "sample", false, "ingest the bundled sample listings instead of scraping")
	flag.BoolVar(&f.reset, "reset", false, "drop the index and stored chunks before ingesting")
	flag.Parse()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	if err := run(ctx, cfg, f, logger); err != nil {
		logger.Fatal("Ingestion failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, f flags, logger *zap.Logger) error {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.VectorStore.Addrs,
		Password: cfg.VectorStore.Password,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.VectorStore.ReadinessTimeout)*time.Second); err != nil {
		return err
	}

	metrics.RegisterEmbeddingMetrics()

	embedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   "openai",
		Logger:     logger,
	})
	repo := chunkrepo.New(store, chunkrepo.Config{
		IndexName:       cfg.Index.Name,
		Dimensions:      cfg.Embedding.Dimensions,
		HNSWM:           cfg.Index.HNSWM,
		HNSWEFConstruct: cfg.Index.HNSWEFConstruct,
	})

	scraper := apify.NewClient(&apify.Config{
		APIToken: cfg.Scraper.APIToken,
		BaseURL:  cfg.Scraper.BaseURL,
		ActorID:  cfg.Scraper.ActorID,
		Logger:   logger,
	})

	svc := ingestuc.New(scraper, embedder, repo, ingestuc.Config{
		ChunkSize:    cfg.Chunking.Size,
		ChunkOverlap: cfg.Chunking.Overlap,
	}, logger)

	urls, err := resolveURLs(f)
	if err != nil {
		return err
	}

	if f.reset {
		logger.Warn("Resetting index and stored chunks", zap.String("index", cfg.Index.Name))
		if err := repo.Reset(ctx); err != nil {
			return err
		}
	}

	var result ingestuc.Result
	switch {
	case f.sample || len(urls) == 0:
		if len(urls) == 0 && !f.sample {
			logger.Warn("No URLs given, falling back to sample listings")
		}
		result, err = svc.IngestListings(ctx, apify.SampleListings())
	default:
		if err := cfg.ValidateScraper(); err != nil {
			return err
		}
		result, err = svc.Run(ctx, urls)
	}
	if err != nil {
		return err
	}

	logger.Info("Done",
		zap.Int("listings", result.Listings),
		zap.Int("chunks", result.Chunks),
		zap.Int("indexed_docs", result.IndexedDocs),
	)
	return nil
}

func resolveURLs(f flags) ([]string, error) {
	var urls []string
	for _, u := range strings.Split(f.urls, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}

	if f.urlsFile != "" {
		file, err := os.Open(f.urlsFile)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
				urls = append(urls, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	return urls, nil
}
