package posts

import (
	"time"

	"github.com/google/uuid"

	"github.com/postforge/postforge/internal/domain/generator"
	"github.com/postforge/postforge/pkg/metrics"
)

// Status tracks a post's lifecycle.
type Status string

const (
	// StatusDraft is a generated post not yet queued for publication.
	StatusDraft Status = "draft"
	// StatusScheduled means the post has a future publish time.
	StatusScheduled Status = "scheduled"
	// StatusPublished is terminal.
	StatusPublished Status = "published"
)

// Post is the persisted record of a generated post.
type Post struct {
	ID         uuid.UUID          `json:"id"`
	UserID     int64              `json:"-"`
	CampaignID *uuid.UUID         `json:"campaignId,omitempty"`
	Content    string             `json:"content"`
	Topics     []string           `json:"topics"`
	Embedding  []float32          `json:"-"`
	Settings   generator.Settings `json:"settings"`
	Status     Status             `json:"status"`
	PublishAt  *time.Time         `json:"publishAt,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// PreviewRequest asks for a draft without persisting anything.
type PreviewRequest struct {
	UserID           int64              `json:"-"`
	Input            string             `json:"input"`
	Settings         generator.Settings `json:"settings"`
	Profile          generator.Profile  `json:"profile"`
	ReferenceContent string             `json:"referenceContent"`
}

// PreviewResponse carries the draft plus the hash the client must echo
// back on Generate for the draft to be reused.
type PreviewResponse struct {
	Content     string             `json:"content"`
	ContentHash string             `json:"contentHash"`
	TokenUsage  metrics.TokenUsage `json:"tokenUsage"`
}

// GenerateRequest runs the full pipeline and persists the result.
type GenerateRequest struct {
	UserID           int64              `json:"-"`
	CampaignID       *uuid.UUID         `json:"campaignId,omitempty"`
	Input            string             `json:"input"`
	Settings         generator.Settings `json:"settings"`
	Profile          generator.Profile  `json:"profile"`
	ReferenceContent string             `json:"referenceContent"`
	PreviewContent   string             `json:"previewContent"`
	PreviewHash      string             `json:"previewHash"`
}

// GenerateResponse is returned to the HTTP transport.
type GenerateResponse struct {
	ID                 uuid.UUID               `json:"id"`
	Content            string                  `json:"content"`
	UsedPreviewContent bool                    `json:"usedPreviewContent"`
	SimilarPosts       []generator.SimilarPost `json:"similarPosts"`
	WasRegenerated     bool                    `json:"wasRegenerated"`
	HighestSimilarity  int                     `json:"highestSimilarity"`
	Topics             []string                `json:"topics"`
	Outcome            generator.Outcome       `json:"outcome"`
	TokenUsage         metrics.TokenUsage      `json:"tokenUsage"`
}

// ScheduleRequest assigns a publish time to an existing draft.
type ScheduleRequest struct {
	PublishAt time.Time `json:"publishAt"`
}
