package chunk

import (
	"strconv"
	"strings"

	"github.com/homescout-ai/homescout/internal/db"
	"github.com/homescout-ai/homescout/internal/domain"
)

// chunkToFields converts a chunk and its vector into a flat map[string]string for HSET.
func chunkToFields(c domain.Chunk, vector []float32) map[string]string {
	return map[string]string{
		"vector":        vectorToBytes(vector),
		"text":          c.Text,
		"title":         c.Meta.Title,
		"location":      c.Meta.Location,
		"price":         c.Meta.Price,
		"property_type": c.Meta.PropertyType,
		"bhk":           c.Meta.BHK,
		"area":          c.Meta.Area,
		"url":           c.Meta.URL,
		"chunk_index":   strconv.Itoa(c.Meta.ChunkIndex),
		"total_chunks":  strconv.Itoa(c.Meta.TotalChunks),
	}
}

// entryToMatch converts a search hit back into a ranked domain match.
func entryToMatch(rank int, entry db.SearchEntry) domain.Match {
	f := entry.Fields
	chunkIndex, _ := strconv.Atoi(f["chunk_index"])
	totalChunks, _ := strconv.Atoi(f["total_chunks"])

	return domain.Match{
		Rank:  rank,
		Score: entry.Score,
		Text:  f["text"],
		Meta: domain.ChunkMeta{
			Title:        f["title"],
			Location:     f["location"],
			Price:        f["price"],
			PropertyType: f["property_type"],
			BHK:          f["bhk"],
			Area:         f["area"],
			URL:          f["url"],
			ChunkIndex:   chunkIndex,
			TotalChunks:  totalChunks,
		},
	}
}

// ChunkIDFromKey strips the store key prefix, returning the bare chunk ID.
func ChunkIDFromKey(key string) string {
	return strings.TrimPrefix(key, ChunkKeyPrefix)
}
