package campaigns

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks whether a campaign still accepts new posts.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Campaign groups generated posts under one theme.
type Campaign struct {
	ID          uuid.UUID `json:"id"`
	UserID      int64     `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	PostCount   int       `json:"postCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateRequest is the transport payload for a new campaign.
type CreateRequest struct {
	UserID      int64  `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
