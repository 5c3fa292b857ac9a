package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/homescout-ai/homescout/internal/domain"
)

// --- Mocks ---

type mockScraper struct {
	listings []domain.Listing
	err      error
	lastURLs []string
}

func (m *mockScraper) ScrapeListings(_ context.Context, urls []string) ([]domain.Listing, error) {
	m.lastURLs = urls
	return m.listings, m.err
}

type mockEmbedder struct {
	err     error
	calls   int
	batches [][]string
}

func (m *mockEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.calls++
	m.batches = append(m.batches, texts)
	if m.err != nil {
		return domain.BatchEmbeddingResult{}, m.err
	}
	embeddings := make([][]float32, len(texts))
	for i := range embeddings {
		embeddings[i] = []float32{0.1, 0.2}
	}
	return domain.BatchEmbeddingResult{Embeddings: embeddings, TotalTokens: len(texts) * 10}, nil
}

type mockRepo struct {
	ensureCalls int
	upsertErr   error
	chunks      []domain.Chunk
	vectors     [][]float32
	countErr    error
}

func (m *mockRepo) EnsureIndex(_ context.Context) error {
	m.ensureCalls++
	return nil
}

func (m *mockRepo) Upsert(_ context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.chunks = append(m.chunks, chunks...)
	m.vectors = append(m.vectors, vectors...)
	return nil
}

func (m *mockRepo) Count(_ context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.chunks), nil
}

func sampleListing(id string) domain.Listing {
	return domain.Listing{
		ID:           id,
		Title:        "2 BHK Apartment in Baner",
		Price:        "₹75 Lakh",
		Location:     "Baner, Pune",
		PropertyType: "Apartment",
		BHK:          "2 BHK",
		Area:         "980 sq ft",
		Amenities:    []string{"Gym", "Pool"},
		URL:          "https://example.com/property-" + id,
	}
}

func newTestService(sc *mockScraper, em *mockEmbedder, repo *mockRepo) *Service {
	return New(sc, em, repo, Config{ChunkSize: 512, ChunkOverlap: 50}, zap.NewNop())
}

// --- Tests ---

func TestRun_ScrapeAndIndex(t *testing.T) {
	scraper := &mockScraper{listings: []domain.Listing{sampleListing("a"), sampleListing("b")}}
	embed := &mockEmbedder{}
	repo := &mockRepo{}
	svc := newTestService(scraper, embed, repo)

	urls := []string{"https://example.com/search"}
	res, err := svc.Run(context.Background(), urls)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(scraper.lastURLs) != 1 || scraper.lastURLs[0] != urls[0] {
		t.Errorf("scraper got urls %v", scraper.lastURLs)
	}
	if repo.ensureCalls != 1 {
		t.Errorf("EnsureIndex calls = %d, want 1", repo.ensureCalls)
	}
	if res.Listings != 2 {
		t.Errorf("Listings = %d, want 2", res.Listings)
	}
	if res.Chunks != len(repo.chunks) || res.Chunks == 0 {
		t.Errorf("Chunks = %d, repo stored %d", res.Chunks, len(repo.chunks))
	}
	if len(repo.vectors) != len(repo.chunks) {
		t.Errorf("vectors %d != chunks %d", len(repo.vectors), len(repo.chunks))
	}
}

func TestRun_ScrapeError(t *testing.T) {
	scraper := &mockScraper{err: domain.ErrScraperProvider}
	svc := newTestService(scraper, &mockEmbedder{}, &mockRepo{})

	_, err := svc.Run(context.Background(), []string{"https://example.com"})
	if !errors.Is(err, domain.ErrScraperProvider) {
		t.Fatalf("Run() error = %v, want ErrScraperProvider", err)
	}
}

func TestRun_NoListings(t *testing.T) {
	scraper := &mockScraper{}
	svc := newTestService(scraper, &mockEmbedder{}, &mockRepo{})

	if _, err := svc.Run(context.Background(), []string{"https://example.com"}); err == nil {
		t.Fatal("Run() expected error for zero listings")
	}
}

func TestIngestListings_ChunkMetadata(t *testing.T) {
	embed := &mockEmbedder{}
	repo := &mockRepo{}
	svc := newTestService(&mockScraper{}, embed, repo)

	l := sampleListing("listing-1")
	if _, err := svc.IngestListings(context.Background(), []domain.Listing{l}); err != nil {
		t.Fatalf("IngestListings() error = %v", err)
	}

	if len(repo.chunks) == 0 {
		t.Fatal("no chunks stored")
	}
	ch := repo.chunks[0]
	if ch.ID != domain.ChunkID("listing-1", 0) {
		t.Errorf("chunk ID = %q, want deterministic id", ch.ID)
	}
	if ch.Meta.Location != "Baner, Pune" || ch.Meta.Price != "₹75 Lakh" {
		t.Errorf("metadata not copied: %+v", ch.Meta)
	}
	if ch.Meta.TotalChunks != len(repo.chunks) {
		t.Errorf("TotalChunks = %d, want %d", ch.Meta.TotalChunks, len(repo.chunks))
	}
	if !strings.Contains(ch.Text, "Property: 2 BHK Apartment in Baner") {
		t.Errorf("chunk text missing summary header: %q", ch.Text)
	}
}

func TestIngestListings_Idempotent(t *testing.T) {
	embed := &mockEmbedder{}
	repo := &mockRepo{}
	svc := newTestService(&mockScraper{}, embed, repo)

	listings := []domain.Listing{sampleListing("x")}
	if _, err := svc.IngestListings(context.Background(), listings); err != nil {
		t.Fatalf("first run error = %v", err)
	}
	firstIDs := make([]string, len(repo.chunks))
	for i, ch := range repo.chunks {
		firstIDs[i] = ch.ID
	}

	repo.chunks = nil
	repo.vectors = nil

	if _, err := svc.IngestListings(context.Background(), listings); err != nil {
		t.Fatalf("second run error = %v", err)
	}
	for i, ch := range repo.chunks {
		if ch.ID != firstIDs[i] {
			t.Errorf("chunk %d ID changed between runs: %q vs %q", i, firstIDs[i], ch.ID)
		}
	}
}

func TestIngestListings_BatchesEmbedding(t *testing.T) {
	embed := &mockEmbedder{}
	repo := &mockRepo{}
	svc := New(&mockScraper{}, embed, repo,
		Config{ChunkSize: 512, ChunkOverlap: 50, EmbedBatchSize: 2}, zap.NewNop())

	listings := make([]domain.Listing, 5)
	for i := range listings {
		listings[i] = sampleListing(string(rune('a' + i)))
	}
	if _, err := svc.IngestListings(context.Background(), listings); err != nil {
		t.Fatalf("IngestListings() error = %v", err)
	}

	if embed.calls != 3 { // 5 chunks in batches of 2
		t.Errorf("embed calls = %d, want 3", embed.calls)
	}
	for i, batch := range embed.batches {
		if len(batch) > 2 {
			t.Errorf("batch %d has %d texts, want <= 2", i, len(batch))
		}
	}
}

func TestIngestListings_EmbedError(t *testing.T) {
	embed := &mockEmbedder{err: domain.ErrEmbeddingProvider}
	repo := &mockRepo{}
	svc := newTestService(&mockScraper{}, embed, repo)

	_, err := svc.IngestListings(context.Background(), []domain.Listing{sampleListing("a")})
	if !errors.Is(err, domain.ErrEmbeddingProvider) {
		t.Fatalf("error = %v, want ErrEmbeddingProvider", err)
	}
	if len(repo.chunks) != 0 {
		t.Errorf("chunks stored despite embed failure")
	}
}

func TestIngestListings_CountFailureNonFatal(t *testing.T) {
	embed := &mockEmbedder{}
	repo := &mockRepo{countErr: errors.New("count failed")}
	svc := newTestService(&mockScraper{}, embed, repo)

	res, err := svc.IngestListings(context.Background(), []domain.Listing{sampleListing("a")})
	if err != nil {
		t.Fatalf("IngestListings() error = %v", err)
	}
	if res.IndexedDocs != res.Chunks {
		t.Errorf("IndexedDocs = %d, want fallback to chunk count %d", res.IndexedDocs, res.Chunks)
	}
}
