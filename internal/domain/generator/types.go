package generator

import (
	"context"
	"time"

	"github.com/postforge/postforge/pkg/metrics"
)

// Settings captures the wizard fields that shape a generated post.
type Settings struct {
	Tone               string `json:"tone"`
	Style              string `json:"style"`
	Length             string `json:"length"`
	Language           string `json:"language"`
	Purpose            string `json:"purpose"`
	Audience           string `json:"audience"`
	EmojiUsage         string `json:"emojiUsage"`
	IncludeCTA         bool   `json:"includeCta"`
	CustomInstructions string `json:"customInstructions"`
}

// Profile describes the author whose voice the post should carry.
type Profile struct {
	Name     string `json:"name"`
	Headline string `json:"headline"`
	Industry string `json:"industry"`
}

// HistoryPost is a prior post supplied for duplication checking. Posts that
// predate embedding support carry a nil Embedding and are skipped silently.
type HistoryPost struct {
	ID        string
	Content   string
	Embedding []float32
}

// SimilarPost reports one prior post's resemblance to the generated content.
type SimilarPost struct {
	ID      string `json:"id"`
	Score   int    `json:"score"`
	Preview string `json:"preview"`
	Content string `json:"-"`
}

// SimilarityReport summarizes the duplication check outcome.
type SimilarityReport struct {
	SimilarPosts          []SimilarPost `json:"similarPosts"`
	WasRegenerated        bool          `json:"wasRegenerated"`
	RegenerationAttempted bool          `json:"regenerationAttempted,omitempty"`
	HighestSimilarity     int           `json:"highestSimilarity"`
}

// Outcome distinguishes a full pipeline run from a degraded one.
type Outcome string

const (
	// OutcomeComplete means the duplication check ran against history.
	OutcomeComplete Outcome = "complete"
	// OutcomeNoDuplicateCheck means embedding failed and the check was skipped.
	OutcomeNoDuplicateCheck Outcome = "no_duplicate_check"
)

// Request carries everything the orchestrator needs for one generation.
// Persistence of the result is the caller's responsibility.
type Request struct {
	Input            string
	Settings         Settings
	Profile          Profile
	ReferenceContent string
	RecentPosts      []HistoryPost
	// PreviewContent/PreviewHash let the caller hand back a preview it was
	// shown earlier; the content is reused only when the hash still matches.
	PreviewContent string
	PreviewHash    string
}

// Result is returned to the caller for persistence and presentation.
type Result struct {
	Content     string
	UsedPreview bool
	Report      SimilarityReport
	Topics      []string
	Embedding   []float32
	Outcome     Outcome
	TokenUsage  metrics.TokenUsage
}

// PreviewRequest asks for a draft without running the duplication pipeline.
type PreviewRequest struct {
	Input            string
	Settings         Settings
	Profile          Profile
	ReferenceContent string
	RecentPosts      []HistoryPost
}

// PreviewResult pairs the draft with the hash that validates its reuse.
type PreviewResult struct {
	Content     string
	ContentHash string
	TokenUsage  metrics.TokenUsage
}

// PreviewEntry is what the cache stores per settings key.
type PreviewEntry struct {
	Content   string    `json:"content"`
	Hash      string    `json:"hash"`
	CreatedAt time.Time `json:"createdAt"`
}

// PreviewCache is the injected preview store. Implementations own TTL
// enforcement; concurrent writers may race with last-write-wins semantics.
type PreviewCache interface {
	Get(ctx context.Context, key string) (PreviewEntry, bool, error)
	Put(ctx context.Context, key string, entry PreviewEntry, ttl time.Duration) error
}
