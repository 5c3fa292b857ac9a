package domain

// Match is a single retrieved chunk for a query, ordered by descending
// score. Rank is 1-based and corresponds to the numbered entry in the
// generation prompt, so citation markers resolve back to it.
type Match struct {
	Rank  int
	Score float64
	Text  string
	Meta  ChunkMeta
}

// Answer is the outcome of one retrieval/generation round.
//
// Matches is the full retrieved list in rank order (non-increasing score);
// CitedRanks lists the 1-based ranks the model actually cited, deduplicated
// and in citation order. When citation parsing finds no markers, CitedRanks
// covers every match in rank order.
type Answer struct {
	Text       string
	Matches    []Match
	CitedRanks []int
}
