package generator

import "time"

// Config holds runtime knobs for the generation pipeline.
type Config struct {
	Model          string
	EmbeddingModel string
	Temperature    float32
	// HistoryLimit caps how many recent posts feed the duplication check.
	HistoryLimit int
	// TopSimilar caps the similarity report length.
	TopSimilar int
	// MaxTopics caps the extracted topic list.
	MaxTopics int
	// MaxPreviewChars truncates similar-post snippets in the report.
	MaxPreviewChars int
	// PreviewTTL bounds how long a cached preview stays reusable.
	PreviewTTL time.Duration
}

func (c Config) withDefaults() Config {
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = 10
	}
	if c.TopSimilar <= 0 {
		c.TopSimilar = 3
	}
	if c.MaxTopics <= 0 {
		c.MaxTopics = 10
	}
	if c.MaxPreviewChars <= 0 {
		c.MaxPreviewChars = 120
	}
	if c.PreviewTTL <= 0 {
		c.PreviewTTL = 5 * time.Minute
	}
	return c
}
