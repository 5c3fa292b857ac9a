package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// KeyPrefix namespaces every key this service writes to the vector store.
const KeyPrefix = "homescout:"

// Listing is a scraped property record. It is created by the scraper
// adapter, normalized by the ingestion pipeline, and immutable once stored.
type Listing struct {
	ID           string
	Title        string
	Price        string
	Location     string
	PropertyType string
	BHK          string
	Bathrooms    string
	Area         string
	Amenities    []string
	Description  string
	Builder      string
	LocalityInfo string
	URL          string
	ScrapedAt    time.Time
}

// ChunkMeta is the metadata copied from a listing onto each of its chunks
// and returned with every retrieved match.
type ChunkMeta struct {
	Title        string
	Location     string
	Price        string
	PropertyType string
	BHK          string
	Area         string
	URL          string
	ChunkIndex   int
	TotalChunks  int
}

// Chunk is a bounded-length slice of a listing's text plus a copy of its
// metadata. Its ID doubles as the deduplication key: re-ingesting the same
// listing produces the same IDs, so upserts overwrite instead of duplicating.
type Chunk struct {
	ID   string
	Text string
	Meta ChunkMeta
}

// ChunkID derives the stable deduplication key for chunk n of a listing.
func ChunkID(listingID string, index int) string {
	h := sha256.Sum256([]byte(listingID + ":" + strconv.Itoa(index)))
	return hex.EncodeToString(h[:16])
}
