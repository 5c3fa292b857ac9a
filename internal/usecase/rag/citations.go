package rag

import (
	"regexp"
	"strconv"
)

var citationPattern = regexp.MustCompile(`\[SOURCE:(\d+)\]`)

// parseCitations extracts [SOURCE:N] markers from the generated answer and
// returns the cited 1-based ranks, deduplicated in citation order. Markers
// outside [1, numMatches] are dropped. When the answer carries no valid
// markers, every rank is considered cited so the caller still gets a
// source list.
func parseCitations(answer string, numMatches int) []int {
	var ranks []int
	seen := make(map[int]bool)

	for _, m := range citationPattern.FindAllStringSubmatch(answer, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > numMatches {
			continue
		}
		if !seen[n] {
			seen[n] = true
			ranks = append(ranks, n)
		}
	}

	if len(ranks) == 0 {
		ranks = make([]int, numMatches)
		for i := range ranks {
			ranks[i] = i + 1
		}
	}
	return ranks
}
