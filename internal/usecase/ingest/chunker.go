package ingest

import (
	"strings"
	"unicode/utf8"
)

// sentenceBreaks are tried in order; the first one found late enough in
// the window ends the chunk there.
var sentenceBreaks = []string{". ", ".\n", "! ", "?\n"}

// Chunker splits summary text into overlapping windows, preferring to cut
// at a sentence boundary in the last 30% of the window.
type Chunker struct {
	size    int // window length in runes
	overlap int // runes carried over into the next window
}

// NewChunker creates a chunker. size must exceed overlap or the walk
// would never advance.
func NewChunker(size, overlap int) Chunker {
	if overlap >= size {
		overlap = size / 10
	}
	return Chunker{size: size, overlap: overlap}
}

// Split cuts text into chunks of at most size runes. Chunks overlap by
// the configured amount so sentences spanning a boundary stay retrievable.
// Text at most one window long is returned as a single chunk, untrimmed.
func (c Chunker) Split(text string) []string {
	runes := []rune(text)
	if len(runes) <= c.size {
		return []string{text}
	}

	var chunks []string
	start := 0

	for start < len(runes) {
		end := start + c.size

		if end < len(runes) {
			end = c.breakAt(runes, start, end)
		} else {
			end = len(runes)
		}

		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(runes) {
			break
		}

		// A sentence cut can shrink the window below the overlap; the
		// next start must still move forward.
		if next := end - c.overlap; next > start {
			start = next
		} else {
			start = end
		}
	}

	return chunks
}

// breakAt moves the window end back to the last sentence boundary, as long
// as that keeps at least 70% of the window.
func (c Chunker) breakAt(runes []rune, start, end int) int {
	window := string(runes[start:end])
	for _, punct := range sentenceBreaks {
		idx := strings.LastIndex(window, punct)
		if idx < 0 {
			continue
		}
		at := utf8.RuneCountInString(window[:idx])
		if float64(at) > float64(c.size)*0.7 {
			return start + at + utf8.RuneCountInString(punct)
		}
	}
	return end
}
