package posts

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/postforge/postforge/internal/domain/generator"
	apperrors "github.com/postforge/postforge/pkg/errors"
	"github.com/postforge/postforge/pkg/util"
)

// Service exposes post generation and management.
type Service interface {
	Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error)
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	List(ctx context.Context, userID int64) ([]Post, error)
	Get(ctx context.Context, userID int64, id uuid.UUID) (Post, error)
	Delete(ctx context.Context, userID int64, id uuid.UUID) error
	Schedule(ctx context.Context, userID int64, id uuid.UUID, req ScheduleRequest) (Post, error)
}

// GenerationEngine is the slice of the generation pipeline the posts
// domain depends on.
type GenerationEngine interface {
	Preview(ctx context.Context, req generator.PreviewRequest) (generator.PreviewResult, error)
	Generate(ctx context.Context, req generator.Request) (generator.Result, error)
}

// CampaignCounter updates campaign statistics after a post lands.
type CampaignCounter interface {
	IncrementPostCount(ctx context.Context, userID int64, id uuid.UUID) error
}

type service struct {
	cfg       Config
	repo      Repository
	engine    GenerationEngine
	campaigns CampaignCounter
	logger    *slog.Logger
}

// NewService wires up the posts domain.
func NewService(cfg Config, repo Repository, engine GenerationEngine, campaigns CampaignCounter, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg.withDefaults(),
		repo:      repo,
		engine:    engine,
		campaigns: campaigns,
		logger:    logger.With("component", "posts.service"),
	}
}

func (s *service) Preview(ctx context.Context, req PreviewRequest) (PreviewResponse, error) {
	history, err := s.recentHistory(ctx, req.UserID)
	if err != nil {
		return PreviewResponse{}, err
	}
	result, err := s.engine.Preview(ctx, generator.PreviewRequest{
		Input:            req.Input,
		Settings:         req.Settings,
		Profile:          req.Profile,
		ReferenceContent: req.ReferenceContent,
		RecentPosts:      history,
	})
	if err != nil {
		return PreviewResponse{}, err
	}
	return PreviewResponse{
		Content:     result.Content,
		ContentHash: result.ContentHash,
		TokenUsage:  result.TokenUsage,
	}, nil
}

func (s *service) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	history, err := s.recentHistory(ctx, req.UserID)
	if err != nil {
		return GenerateResponse{}, err
	}

	result, err := s.engine.Generate(ctx, generator.Request{
		Input:            req.Input,
		Settings:         req.Settings,
		Profile:          req.Profile,
		ReferenceContent: req.ReferenceContent,
		RecentPosts:      history,
		PreviewContent:   req.PreviewContent,
		PreviewHash:      req.PreviewHash,
	})
	if err != nil {
		return GenerateResponse{}, err
	}

	post := Post{
		ID:         uuid.New(),
		UserID:     req.UserID,
		CampaignID: req.CampaignID,
		Content:    result.Content,
		Topics:     result.Topics,
		Embedding:  result.Embedding,
		Settings:   req.Settings,
		Status:     StatusDraft,
		CreatedAt:  util.NowUTC(),
	}
	saved, err := s.repo.Create(ctx, post)
	if err != nil {
		return GenerateResponse{}, apperrors.Wrap("post_error", "failed to save post", err)
	}

	if req.CampaignID != nil && s.campaigns != nil {
		if err := s.campaigns.IncrementPostCount(ctx, req.UserID, *req.CampaignID); err != nil {
			s.logger.Warn("campaign post count update failed", "campaignId", req.CampaignID, "error", err)
		}
	}

	return GenerateResponse{
		ID:                 saved.ID,
		Content:            result.Content,
		UsedPreviewContent: result.UsedPreview,
		SimilarPosts:       similarOrEmpty(result.Report.SimilarPosts),
		WasRegenerated:     result.Report.WasRegenerated,
		HighestSimilarity:  result.Report.HighestSimilarity,
		Topics:             topicsOrEmpty(result.Topics),
		Outcome:            result.Outcome,
		TokenUsage:         result.TokenUsage,
	}, nil
}

func (s *service) List(ctx context.Context, userID int64) ([]Post, error) {
	records, err := s.repo.List(ctx, userID, s.cfg.ListLimit)
	if err != nil {
		return nil, apperrors.Wrap("post_error", "failed to list posts", err)
	}
	return records, nil
}

func (s *service) Get(ctx context.Context, userID int64, id uuid.UUID) (Post, error) {
	record, found, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Post{}, apperrors.Wrap("post_error", "failed to load post", err)
	}
	if !found {
		return Post{}, apperrors.Wrap("not_found", "post not found", nil)
	}
	return record, nil
}

func (s *service) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return apperrors.Wrap("post_error", "failed to delete post", err)
	}
	if !deleted {
		return apperrors.Wrap("not_found", "post not found", nil)
	}
	return nil
}

func (s *service) Schedule(ctx context.Context, userID int64, id uuid.UUID, req ScheduleRequest) (Post, error) {
	publishAt := req.PublishAt.UTC()
	if publishAt.IsZero() {
		return Post{}, apperrors.Wrap("invalid_input", "publishAt is required", nil)
	}
	if publishAt.Before(util.NowUTC().Add(-time.Minute)) {
		return Post{}, apperrors.Wrap("invalid_input", "publishAt must be in the future", nil)
	}
	record, found, err := s.repo.UpdateSchedule(ctx, userID, id, publishAt, StatusScheduled)
	if err != nil {
		return Post{}, apperrors.Wrap("post_error", "failed to schedule post", err)
	}
	if !found {
		return Post{}, apperrors.Wrap("not_found", "post not found", nil)
	}
	return record, nil
}

func (s *service) recentHistory(ctx context.Context, userID int64) ([]generator.HistoryPost, error) {
	records, err := s.repo.ListRecent(ctx, userID, s.cfg.RecentLimit)
	if err != nil {
		return nil, apperrors.Wrap("post_error", "failed to load recent posts", err)
	}
	history := make([]generator.HistoryPost, 0, len(records))
	for _, record := range records {
		content := strings.TrimSpace(record.Content)
		if content == "" {
			continue
		}
		history = append(history, generator.HistoryPost{
			ID:        record.ID.String(),
			Content:   content,
			Embedding: record.Embedding,
		})
	}
	return history, nil
}

func similarOrEmpty(posts []generator.SimilarPost) []generator.SimilarPost {
	if posts == nil {
		return []generator.SimilarPost{}
	}
	return posts
}

func topicsOrEmpty(topics []string) []string {
	if topics == nil {
		return []string{}
	}
	return topics
}
