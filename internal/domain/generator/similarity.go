package generator

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	apperrors "github.com/postforge/postforge/pkg/errors"
)

const (
	// similarityFloor drops weak matches from the report entirely.
	similarityFloor = 50
	// regenerateAbove triggers the single regeneration pass. Strictly
	// greater-than: a score of exactly 85 does not regenerate.
	regenerateAbove = 85
)

// CosineSimilarity returns the cosine of the angle between a and b, clamped
// to [0, 1]. A length mismatch means the stored embedding came from a
// different model and is rejected rather than coerced.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, apperrors.Wrap("dimension_mismatch", fmt.Sprintf("vector lengths differ: %d vs %d", len(a), len(b)), nil)
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0, nil
	}
	if sim > 1 {
		return 1, nil
	}
	return sim, nil
}

// ToPercentage rounds a [0,1] similarity to an integer percentage.
func ToPercentage(similarity float64) int {
	return int(math.Round(similarity * 100))
}

// FindSimilar scores every candidate with an embedding against vector, keeps
// scores above the floor, and returns the topN highest, descending. A single
// malformed candidate is skipped; it never aborts the whole comparison.
func FindSimilar(vector []float32, candidates []HistoryPost, topN, maxPreview int) []SimilarPost {
	if len(vector) == 0 || topN <= 0 {
		return nil
	}
	matches := make([]SimilarPost, 0, len(candidates))
	for _, candidate := range candidates {
		if len(candidate.Embedding) == 0 {
			continue
		}
		sim, err := CosineSimilarity(vector, candidate.Embedding)
		if err != nil {
			continue
		}
		score := ToPercentage(sim)
		if score <= similarityFloor {
			continue
		}
		matches = append(matches, SimilarPost{
			ID:      candidate.ID,
			Score:   score,
			Preview: snippet(candidate.Content, maxPreview),
			Content: candidate.Content,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}

// ShouldRegenerate reports whether any match is similar enough to warrant
// the one-shot regeneration pass.
func ShouldRegenerate(results []SimilarPost) bool {
	for _, result := range results {
		if result.Score > regenerateAbove {
			return true
		}
	}
	return false
}

func highestScore(results []SimilarPost) int {
	highest := 0
	for _, result := range results {
		if result.Score > highest {
			highest = result.Score
		}
	}
	return highest
}

func snippet(body string, max int) string {
	if max <= 0 || len(body) <= max {
		return body
	}
	// back up to a rune start so a multi-byte character is never split
	cut := max
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return strings.TrimSpace(body[:cut]) + "..."
}
