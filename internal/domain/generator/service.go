package generator

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/postforge/postforge/internal/infra/llm/chatgpt"
	apperrors "github.com/postforge/postforge/pkg/errors"
	"github.com/postforge/postforge/pkg/metrics"
)

// ChatClient is the slice of the LLM client the pipeline needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
	CreateEmbedding(ctx context.Context, req chatgpt.EmbeddingRequest) (chatgpt.EmbeddingResponse, error)
}

// generationState makes the at-most-one-regeneration invariant structural:
// regenerating always transitions to final, never back to drafted.
type generationState int

const (
	stateDrafted generationState = iota
	stateRegenerating
	stateFinal
)

// Service runs the generation pipeline: prompt, draft, embed, compare,
// regenerate once if needed. It never persists anything.
type Service struct {
	cfg    Config
	client ChatClient
	cache  PreviewCache
	logger *slog.Logger
}

// NewService wires up the generation pipeline.
func NewService(cfg Config, client ChatClient, cache PreviewCache, logger *slog.Logger) *Service {
	return &Service{
		cfg:    cfg.withDefaults(),
		client: client,
		cache:  cache,
		logger: logger.With("component", "generator.service"),
	}
}

// Preview produces a draft and caches it against the settings key so a
// follow-up Generate with unchanged input can skip the model call.
func (s *Service) Preview(ctx context.Context, req PreviewRequest) (PreviewResult, error) {
	input := strings.TrimSpace(req.Input)
	if input == "" {
		return PreviewResult{}, apperrors.Wrap("invalid_input", "input cannot be empty", nil)
	}

	hash := ComputeHash(input, req.Settings, req.ReferenceContent)
	key := CacheKey(req.Settings)
	if entry, found := s.cachedEntry(ctx, key); found && entry.Hash == hash {
		return PreviewResult{Content: entry.Content, ContentHash: hash}, nil
	}

	system, user := buildPrompt(req.Profile, req.Settings, req.RecentPosts, input, req.ReferenceContent)
	content, usage, err := s.complete(ctx, system, user, req.Settings.Length)
	if err != nil {
		return PreviewResult{}, err
	}

	entry := PreviewEntry{Content: content, Hash: hash, CreatedAt: time.Now()}
	if err := s.cache.Put(ctx, key, entry, s.cfg.PreviewTTL); err != nil {
		s.logger.Warn("preview cache write failed", "error", err)
	}

	return PreviewResult{Content: content, ContentHash: hash, TokenUsage: usage}, nil
}

// Generate runs the full pipeline for one request. A primary generation
// failure is fatal; embedding and regeneration failures degrade instead.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	input := strings.TrimSpace(req.Input)
	if input == "" {
		return Result{}, apperrors.Wrap("invalid_input", "input cannot be empty", nil)
	}

	history := req.RecentPosts
	if len(history) > s.cfg.HistoryLimit {
		history = history[:s.cfg.HistoryLimit]
	}

	hash := ComputeHash(input, req.Settings, req.ReferenceContent)
	system, user := buildPrompt(req.Profile, req.Settings, history, input, req.ReferenceContent)

	result := Result{Outcome: OutcomeComplete}
	content, usedPreview := s.resolvePreview(ctx, req, hash)
	if usedPreview {
		result.Content = content
		result.UsedPreview = true
	} else {
		fresh, usage, err := s.complete(ctx, system, user, req.Settings.Length)
		if err != nil {
			return Result{}, err
		}
		result.Content = fresh
		result.TokenUsage = usage
	}

	for state := stateDrafted; state != stateFinal; {
		switch state {
		case stateDrafted:
			embedding, err := s.embed(ctx, result.Content)
			if err != nil {
				// Duplication detection is best-effort: the request must
				// still succeed with the content we already have.
				s.logger.Warn("embedding failed, skipping duplicate check", "error", err)
				result.Outcome = OutcomeNoDuplicateCheck
				state = stateFinal
				continue
			}
			result.Embedding = embedding
			result.Report.SimilarPosts = FindSimilar(embedding, history, s.cfg.TopSimilar, s.cfg.MaxPreviewChars)
			result.Report.HighestSimilarity = highestScore(result.Report.SimilarPosts)
			result.Topics = ExtractTopics(result.Content, s.cfg.MaxTopics)
			// Reused preview content was already shown to the user and must
			// come back verbatim, with no model call, even when it scores
			// high against history.
			if !result.UsedPreview && ShouldRegenerate(result.Report.SimilarPosts) {
				state = stateRegenerating
			} else {
				state = stateFinal
			}
		case stateRegenerating:
			s.regenerate(ctx, &result, system, user, req.Settings.Length, history)
			state = stateFinal
		}
	}

	return result, nil
}

// regenerate replaces the draft with one additional attempt. Failure keeps
// the original content; the report records that the attempt happened.
func (s *Service) regenerate(ctx context.Context, result *Result, system, userMessage, length string, history []HistoryPost) {
	result.Report.RegenerationAttempted = true
	augmented := avoidSimilarityInstruction(userMessage, result.Report.SimilarPosts)

	content, usage, err := s.complete(ctx, system, augmented, length)
	if err != nil {
		s.logger.Warn("regeneration pass failed, keeping original content", "error", err)
		return
	}

	result.Content = content
	result.Report.WasRegenerated = true
	result.TokenUsage = sumUsage(result.TokenUsage, usage)
	result.Topics = ExtractTopics(content, s.cfg.MaxTopics)

	embedding, err := s.embed(ctx, content)
	if err != nil {
		s.logger.Warn("embedding failed for regenerated content", "error", err)
		result.Embedding = nil
		result.Report.SimilarPosts = nil
		result.Report.HighestSimilarity = 0
		result.Outcome = OutcomeNoDuplicateCheck
		return
	}
	result.Embedding = embedding
	result.Report.SimilarPosts = FindSimilar(embedding, history, s.cfg.TopSimilar, s.cfg.MaxPreviewChars)
	result.Report.HighestSimilarity = highestScore(result.Report.SimilarPosts)
}

func (s *Service) resolvePreview(ctx context.Context, req Request, hash string) (string, bool) {
	if req.PreviewContent != "" && req.PreviewHash == hash {
		return req.PreviewContent, true
	}
	if entry, found := s.cachedEntry(ctx, CacheKey(req.Settings)); found && entry.Hash == hash {
		return entry.Content, true
	}
	return "", false
}

func (s *Service) cachedEntry(ctx context.Context, key string) (PreviewEntry, bool) {
	if s.cache == nil {
		return PreviewEntry{}, false
	}
	entry, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("preview cache read failed", "error", err)
		return PreviewEntry{}, false
	}
	return entry, found
}

func (s *Service) complete(ctx context.Context, system, user, length string) (string, metrics.TokenUsage, error) {
	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    []chatgpt.Message{{Role: "system", Content: system}, {Role: "user", Content: user}},
		Temperature: s.cfg.Temperature,
		MaxTokens:   maxTokensFor(length),
	})
	if err != nil {
		return "", metrics.TokenUsage{}, apperrors.Wrap("llm_error", "text generation failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", metrics.TokenUsage{}, apperrors.Wrap("llm_error", "text generation returned no choices", errors.New("empty choices"))
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", metrics.TokenUsage{}, apperrors.Wrap("llm_error", "text generation response empty", nil)
	}
	usage := metrics.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	if usage.IsZero() {
		usage.PromptTokens = countTokens(s.cfg.Model, system, user)
		usage.TotalTokens = usage.PromptTokens + countTokens(s.cfg.Model, content)
	}
	return content, usage, nil
}

func (s *Service) embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.client.CreateEmbedding(ctx, chatgpt.EmbeddingRequest{
		Model: s.cfg.EmbeddingModel,
		Input: text,
	})
	if err != nil {
		return nil, apperrors.Wrap("embedding_error", "embedding generation failed", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, apperrors.Wrap("embedding_error", "embedding response empty", nil)
	}
	vector := make([]float32, len(resp.Data[0].Embedding))
	copy(vector, resp.Data[0].Embedding)
	return vector, nil
}

func sumUsage(a, b metrics.TokenUsage) metrics.TokenUsage {
	return metrics.TokenUsage{
		PromptTokens:     a.PromptTokens + b.PromptTokens,
		CompletionTokens: a.CompletionTokens + b.CompletionTokens,
		TotalTokens:      a.TotalTokens + b.TotalTokens,
	}
}
