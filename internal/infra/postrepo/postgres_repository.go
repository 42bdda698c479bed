package postrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/postforge/postforge/internal/domain/posts"
)

// PostgresRepository implements posts.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const postColumns = `id, user_id, campaign_id, content, topics, embedding, settings, status, publish_at, created_at`

// Create inserts a new post row.
func (r *PostgresRepository) Create(ctx context.Context, post posts.Post) (posts.Post, error) {
	var embedding any
	if len(post.Embedding) > 0 {
		embedding = pgvector.NewVector(post.Embedding)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (id, user_id, campaign_id, content, topics, embedding, settings, status, publish_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+postColumns+`
	`, post.ID, post.UserID, post.CampaignID, post.Content, post.Topics, embedding, post.Settings, post.Status, post.PublishAt, post.CreatedAt)
	return scanPost(row)
}

// Get fetches one post scoped to the user.
func (r *PostgresRepository) Get(ctx context.Context, userID int64, id uuid.UUID) (posts.Post, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE id = $1 AND user_id = $2
		LIMIT 1
	`, id, userID)
	if err != nil {
		return posts.Post{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return posts.Post{}, false, rows.Err()
	}
	record, err := scanPost(rows)
	if err != nil {
		return posts.Post{}, false, err
	}
	return record, true, rows.Err()
}

// List returns the user's posts, newest first.
func (r *PostgresRepository) List(ctx context.Context, userID int64, limit int) ([]posts.Post, error) {
	return r.ListRecent(ctx, userID, limit)
}

// ListRecent returns the user's most recent posts with embeddings included.
func (r *PostgresRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]posts.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	records := make([]posts.Post, 0, limit)
	for rows.Next() {
		record, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Delete removes one post scoped to the user.
func (r *PostgresRepository) Delete(ctx context.Context, userID int64, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM posts
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateSchedule stamps a publish time and status on an existing post.
func (r *PostgresRepository) UpdateSchedule(ctx context.Context, userID int64, id uuid.UUID, publishAt time.Time, status posts.Status) (posts.Post, bool, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE posts
		SET publish_at = $3, status = $4
		WHERE id = $1 AND user_id = $2
		RETURNING `+postColumns+`
	`, id, userID, publishAt, status)
	if err != nil {
		return posts.Post{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return posts.Post{}, false, rows.Err()
	}
	record, err := scanPost(rows)
	if err != nil {
		return posts.Post{}, false, err
	}
	return record, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (posts.Post, error) {
	var (
		record    posts.Post
		embedding *pgvector.Vector
	)
	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.CampaignID,
		&record.Content,
		&record.Topics,
		&embedding,
		&record.Settings,
		&record.Status,
		&record.PublishAt,
		&record.CreatedAt,
	)
	if err != nil {
		return posts.Post{}, err
	}
	if embedding != nil {
		record.Embedding = embedding.Slice()
	}
	return record, nil
}

var _ posts.Repository = (*PostgresRepository)(nil)
