package posts

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository encapsulates post persistence. All lookups are scoped to a
// user; a post belonging to someone else behaves as absent.
type Repository interface {
	Create(ctx context.Context, post Post) (Post, error)
	Get(ctx context.Context, userID int64, id uuid.UUID) (Post, bool, error)
	List(ctx context.Context, userID int64, limit int) ([]Post, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]Post, error)
	Delete(ctx context.Context, userID int64, id uuid.UUID) (bool, error)
	UpdateSchedule(ctx context.Context, userID int64, id uuid.UUID, publishAt time.Time, status Status) (Post, bool, error)
}
