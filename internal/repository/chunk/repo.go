// Package chunk persists listing chunks and their embeddings in the vector
// store and runs KNN retrieval over them.
package chunk

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/homescout-ai/homescout/internal/db"
	"github.com/homescout-ai/homescout/internal/domain"
)

// ChunkKeyPrefix namespaces chunk hash keys in the store.
const ChunkKeyPrefix = domain.KeyPrefix + "chunk:"

// store is the consumer interface for chunk persistence and retrieval.
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	DropIndex(ctx context.Context, name string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	Del(ctx context.Context, key string) error
}

// Repo stores chunks as hashes under ChunkKeyPrefix and searches them
// through an FT index with an HNSW vector field.
type Repo struct {
	store     store
	indexName string
	dim       int
	hnswM     int
	hnswEF    int
}

// Config holds index parameters for the chunk repository.
type Config struct {
	IndexName       string
	Dimensions      int
	HNSWM           int
	HNSWEFConstruct int
}

// New creates a chunk repository.
func New(s store, cfg Config) *Repo {
	return &Repo{
		store:     s,
		indexName: cfg.IndexName,
		dim:       cfg.Dimensions,
		hnswM:     cfg.HNSWM,
		hnswEF:    cfg.HNSWEFConstruct,
	}
}

// EnsureIndex creates the FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName)
	if err != nil {
		return fmt.Errorf("check index %s: %w", r.indexName, err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:        r.indexName,
		StorageType: db.StorageHash,
		Prefixes:    []string{ChunkKeyPrefix},
		Fields: []db.IndexField{
			{
				Name:              "vector",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         r.dim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.hnswM,
				VectorEFConstruct: r.hnswEF,
			},
			{Name: "text", Type: db.IndexFieldText},
			{Name: "location", Type: db.IndexFieldTag, TagSeparator: ","},
			{Name: "property_type", Type: db.IndexFieldTag, TagSeparator: ","},
		},
	}
	if err := def.Validate(); err != nil {
		return fmt.Errorf("index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if err == db.ErrIndexExists {
			return nil // concurrent creation
		}
		return fmt.Errorf("create index %s: %w", r.indexName, err)
	}
	return nil
}

// Reset drops the FT index and deletes all stored chunk hashes. Used
// before a full re-ingest when chunking or index parameters change.
func (r *Repo) Reset(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, r.indexName); err != nil && err != db.ErrIndexNotFound {
		return fmt.Errorf("drop index %s: %w", r.indexName, err)
	}

	keys, err := r.store.Scan(ctx, ChunkKeyPrefix+"*")
	if err != nil {
		return fmt.Errorf("scan chunks: %w", err)
	}
	for _, key := range keys {
		if err := r.store.Del(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

// Upsert writes chunks and their vectors in one pipelined round-trip.
// Chunk IDs are content-stable, so re-ingesting overwrites in place.
func (r *Repo) Upsert(ctx context.Context, chunks []domain.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}
	if len(chunks) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(chunks))
	for i, c := range chunks {
		items[i] = db.HashSetItem{
			Key:    ChunkKeyPrefix + c.ID,
			Fields: chunkToFields(c, vectors[i]),
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert %d chunks: %w", len(chunks), err)
	}
	return nil
}

// Search runs KNN retrieval and returns matches in rank order
// (non-increasing similarity).
func (r *Repo) Search(ctx context.Context, vector []float32, k int) ([]domain.Match, error) {
	q := &db.KNNQuery{
		IndexName: r.indexName,
		Vector:    vector,
		K:         k,
		ReturnFields: []string{
			"text", "title", "location", "price", "property_type",
			"bhk", "area", "url", "chunk_index", "total_chunks",
			"__vector_score",
		},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("knn search %s: %w", r.indexName, err)
	}
	if sr == nil || len(sr.Entries) == 0 {
		return nil, nil
	}

	matches := make([]domain.Match, 0, len(sr.Entries))
	for i, entry := range sr.Entries {
		matches = append(matches, entryToMatch(i+1, entry))
	}
	return matches, nil
}

// Count returns the number of indexed chunks.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName, "*")
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.indexName, err)
	}
	return n, nil
}

// vectorToBytes serializes []float32 to the binary layout FT.SEARCH expects.
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
