package generator

import (
	"math"
	"testing"
	"unicode/utf8"
)

func TestCosineSimilarityIdenticalVectors(t *testing.T) {
	v := []float32{0.5, 0.3, 0.2}
	sim, err := CosineSimilarity(v, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(sim-1) > 1e-9 {
		t.Fatalf("expected similarity 1, got %f", sim)
	}
	if ToPercentage(sim) != 100 {
		t.Fatalf("expected 100%%, got %d", ToPercentage(sim))
	}
}

func TestCosineSimilarityOrthogonalVectors(t *testing.T) {
	sim, err := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 0 {
		t.Fatalf("expected 0, got %f", sim)
	}
}

func TestCosineSimilarityClampsNegative(t *testing.T) {
	sim, err := CosineSimilarity([]float32{1, 0}, []float32{-1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 0 {
		t.Fatalf("opposed vectors should clamp to 0, got %f", sim)
	}
}

func TestCosineSimilarityDimensionMismatch(t *testing.T) {
	if _, err := CosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}); err == nil {
		t.Fatal("expected error for mismatched dimensions")
	}
}

func TestCosineSimilarityZeroVector(t *testing.T) {
	sim, err := CosineSimilarity([]float32{0, 0}, []float32{1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 0 {
		t.Fatalf("expected 0 for zero vector, got %f", sim)
	}
}

func TestToPercentageRounds(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{1, 100},
		{0.506, 51},
		{0.504, 50},
		{0.856, 86},
	}
	for _, tc := range tests {
		if got := ToPercentage(tc.in); got != tc.want {
			t.Fatalf("ToPercentage(%f): expected %d got %d", tc.in, tc.want, got)
		}
	}
}

func TestFindSimilarFiltersAndSorts(t *testing.T) {
	target := []float32{1, 0}
	candidates := []HistoryPost{
		{ID: "b", Content: "sixty", Embedding: []float32{0.6, 0.8}},
		{ID: "a", Content: "hundred", Embedding: []float32{1, 0}},
		{ID: "skip-nil", Content: "legacy post"},
		{ID: "skip-dim", Content: "bad dims", Embedding: []float32{1, 0, 0}},
		{ID: "drop-low", Content: "orthogonal", Embedding: []float32{0, 1}},
		{ID: "d", Content: "ninety", Embedding: []float32{0.9, float32(math.Sqrt(0.19))}},
	}

	got := FindSimilar(target, candidates, 3, 120)
	wantIDs := []string{"a", "d", "b"}
	wantScores := []int{100, 90, 60}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d matches, got %d (%v)", len(wantIDs), len(got), got)
	}
	for i := range got {
		if got[i].ID != wantIDs[i] || got[i].Score != wantScores[i] {
			t.Fatalf("position %d: expected %s/%d got %s/%d", i, wantIDs[i], wantScores[i], got[i].ID, got[i].Score)
		}
	}
}

func TestFindSimilarDropsFloorScores(t *testing.T) {
	// exactly 50 sits on the floor and must not be reported
	target := []float32{1, 0}
	candidates := []HistoryPost{
		{ID: "fifty", Embedding: []float32{0.5, float32(math.Sqrt(0.75))}},
	}
	if got := FindSimilar(target, candidates, 3, 120); len(got) != 0 {
		t.Fatalf("expected no matches at the floor, got %v", got)
	}
}

func TestFindSimilarTruncatesToTopN(t *testing.T) {
	target := []float32{1, 0}
	var candidates []HistoryPost
	for i := 0; i < 5; i++ {
		candidates = append(candidates, HistoryPost{ID: string(rune('a' + i)), Embedding: []float32{1, 0}})
	}
	if got := FindSimilar(target, candidates, 3, 120); len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
}

func TestShouldRegenerateBoundary(t *testing.T) {
	if ShouldRegenerate([]SimilarPost{{Score: 85}}) {
		t.Fatal("score of exactly 85 must not trigger regeneration")
	}
	if !ShouldRegenerate([]SimilarPost{{Score: 60}, {Score: 86}}) {
		t.Fatal("score of 86 must trigger regeneration")
	}
	if ShouldRegenerate(nil) {
		t.Fatal("empty report must not trigger regeneration")
	}
}

func TestSnippetTruncates(t *testing.T) {
	if got := snippet("short", 120); got != "short" {
		t.Fatalf("expected unchanged content, got %q", got)
	}
	long := "this is a reasonably long piece of content"
	got := snippet(long, 10)
	if len(got) > 13 || got[len(got)-3:] != "..." {
		t.Fatalf("expected truncated snippet with ellipsis, got %q", got)
	}
}

func TestSnippetKeepsRuneBoundaries(t *testing.T) {
	// the cut point lands inside the 4-byte emoji
	body := "launch day \U0001F680\U0001F680\U0001F680"
	got := snippet(body, 13)
	if !utf8.ValidString(got) {
		t.Fatalf("snippet produced invalid UTF-8: %q", got)
	}
	if got != "launch day"+"..." {
		t.Fatalf("expected clean truncation before the emoji, got %q", got)
	}
}
