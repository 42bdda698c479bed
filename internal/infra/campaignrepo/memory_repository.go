package campaignrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/postforge/postforge/internal/domain/campaigns"
)

// MemoryRepository is an in-memory campaigns.Repository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]campaigns.Campaign
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[uuid.UUID]campaigns.Campaign)}
}

// Create implements campaigns.Repository.
func (r *MemoryRepository) Create(_ context.Context, campaign campaigns.Campaign) (campaigns.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[campaign.ID] = campaign
	return campaign, nil
}

// Get implements campaigns.Repository.
func (r *MemoryRepository) Get(_ context.Context, userID int64, id uuid.UUID) (campaigns.Campaign, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok || record.UserID != userID {
		return campaigns.Campaign{}, false, nil
	}
	return record, true, nil
}

// List implements campaigns.Repository, newest first.
func (r *MemoryRepository) List(_ context.Context, userID int64) ([]campaigns.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]campaigns.Campaign, 0, len(r.records))
	for _, record := range r.records {
		if record.UserID == userID {
			matched = append(matched, record)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

// Delete implements campaigns.Repository.
func (r *MemoryRepository) Delete(_ context.Context, userID int64, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok || record.UserID != userID {
		return false, nil
	}
	delete(r.records, id)
	return true, nil
}

// IncrementPostCount implements campaigns.Repository.
func (r *MemoryRepository) IncrementPostCount(_ context.Context, userID int64, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok || record.UserID != userID {
		return false, nil
	}
	record.PostCount++
	r.records[id] = record
	return true, nil
}

var _ campaigns.Repository = (*MemoryRepository)(nil)
