package campaigns

import (
	"context"

	"github.com/google/uuid"
)

// Repository encapsulates campaign persistence, scoped to a user.
type Repository interface {
	Create(ctx context.Context, campaign Campaign) (Campaign, error)
	Get(ctx context.Context, userID int64, id uuid.UUID) (Campaign, bool, error)
	List(ctx context.Context, userID int64) ([]Campaign, error)
	Delete(ctx context.Context, userID int64, id uuid.UUID) (bool, error)
	IncrementPostCount(ctx context.Context, userID int64, id uuid.UUID) (bool, error)
}
