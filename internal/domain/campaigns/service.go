package campaigns

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	apperrors "github.com/postforge/postforge/pkg/errors"
	"github.com/postforge/postforge/pkg/util"
)

const maxNameLength = 120

// Service exposes campaign management.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (Campaign, error)
	List(ctx context.Context, userID int64) ([]Campaign, error)
	Get(ctx context.Context, userID int64, id uuid.UUID) (Campaign, error)
	Delete(ctx context.Context, userID int64, id uuid.UUID) error
	IncrementPostCount(ctx context.Context, userID int64, id uuid.UUID) error
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires up the campaigns domain.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "campaigns.service"),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (Campaign, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Campaign{}, apperrors.Wrap("invalid_input", "campaign name cannot be empty", nil)
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return Campaign{}, apperrors.Wrap("invalid_input", "campaign name too long", nil)
	}
	campaign := Campaign{
		ID:          uuid.New(),
		UserID:      req.UserID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Status:      StatusActive,
		CreatedAt:   util.NowUTC(),
	}
	saved, err := s.repo.Create(ctx, campaign)
	if err != nil {
		return Campaign{}, apperrors.Wrap("campaign_error", "failed to save campaign", err)
	}
	return saved, nil
}

func (s *service) List(ctx context.Context, userID int64) ([]Campaign, error) {
	records, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap("campaign_error", "failed to list campaigns", err)
	}
	return records, nil
}

func (s *service) Get(ctx context.Context, userID int64, id uuid.UUID) (Campaign, error) {
	record, found, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Campaign{}, apperrors.Wrap("campaign_error", "failed to load campaign", err)
	}
	if !found {
		return Campaign{}, apperrors.Wrap("not_found", "campaign not found", nil)
	}
	return record, nil
}

func (s *service) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return apperrors.Wrap("campaign_error", "failed to delete campaign", err)
	}
	if !deleted {
		return apperrors.Wrap("not_found", "campaign not found", nil)
	}
	return nil
}

func (s *service) IncrementPostCount(ctx context.Context, userID int64, id uuid.UUID) error {
	updated, err := s.repo.IncrementPostCount(ctx, userID, id)
	if err != nil {
		return apperrors.Wrap("campaign_error", "failed to update campaign", err)
	}
	if !updated {
		return apperrors.Wrap("not_found", "campaign not found", nil)
	}
	return nil
}
