package postrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/postforge/postforge/internal/domain/posts"
)

// MemoryRepository is an in-memory posts.Repository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]posts.Post
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[uuid.UUID]posts.Post)}
}

// Create implements posts.Repository.
func (r *MemoryRepository) Create(_ context.Context, post posts.Post) (posts.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := clonePost(post)
	r.records[post.ID] = stored
	return clonePost(stored), nil
}

// Get implements posts.Repository.
func (r *MemoryRepository) Get(_ context.Context, userID int64, id uuid.UUID) (posts.Post, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok || record.UserID != userID {
		return posts.Post{}, false, nil
	}
	return clonePost(record), true, nil
}

// List implements posts.Repository.
func (r *MemoryRepository) List(ctx context.Context, userID int64, limit int) ([]posts.Post, error) {
	return r.ListRecent(ctx, userID, limit)
}

// ListRecent implements posts.Repository, newest first.
func (r *MemoryRepository) ListRecent(_ context.Context, userID int64, limit int) ([]posts.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]posts.Post, 0, len(r.records))
	for _, record := range r.records {
		if record.UserID == userID {
			matched = append(matched, clonePost(record))
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// Delete implements posts.Repository.
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

// UpdateSchedule implements posts.Repository.
func (r *MemoryRepository) UpdateSchedule(_ context.Context, userID int64, id uuid.UUID, publishAt time.Time, status posts.Status) (posts.Post, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok || record.UserID != userID {
		return posts.Post{}, false, nil
	}
	when := publishAt
	record.PublishAt = &when
	record.Status = status
	r.records[id] = record
	return clonePost(record), true, nil
}

func clonePost(post posts.Post) posts.Post {
	clone := post
	clone.Topics = append([]string(nil), post.Topics...)
	clone.Embedding = append([]float32(nil), post.Embedding...)
	if post.PublishAt != nil {
		when := *post.PublishAt
		clone.PublishAt = &when
	}
	if post.CampaignID != nil {
		cid := *post.CampaignID
		clone.CampaignID = &cid
	}
	return clone
}

var _ posts.Repository = (*MemoryRepository)(nil)
