package campaignrepo

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/postforge/postforge/internal/domain/campaigns"
)

// PostgresRepository implements campaigns.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const campaignColumns = `id, user_id, name, description, status, post_count, created_at`

// Create inserts a new campaign row.
func (r *PostgresRepository) Create(ctx context.Context, campaign campaigns.Campaign) (campaigns.Campaign, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (id, user_id, name, description, status, post_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+campaignColumns+`
	`, campaign.ID, campaign.UserID, campaign.Name, campaign.Description, campaign.Status, campaign.PostCount, campaign.CreatedAt)
	return scanCampaign(row)
}

// Get fetches one campaign scoped to the user.
func (r *PostgresRepository) Get(ctx context.Context, userID int64, id uuid.UUID) (campaigns.Campaign, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns
		WHERE id = $1 AND user_id = $2
		LIMIT 1
	`, id, userID)
	if err != nil {
		return campaigns.Campaign{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return campaigns.Campaign{}, false, rows.Err()
	}
	record, err := scanCampaign(rows)
	if err != nil {
		return campaigns.Campaign{}, false, err
	}
	return record, true, rows.Err()
}

// List returns the user's campaigns, newest first.
func (r *PostgresRepository) List(ctx context.Context, userID int64) ([]campaigns.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []campaigns.Campaign
	for rows.Next() {
		record, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Delete removes one campaign scoped to the user.
func (r *PostgresRepository) Delete(ctx context.Context, userID int64, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM campaigns
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// IncrementPostCount bumps the denormalized post counter.
func (r *PostgresRepository) IncrementPostCount(ctx context.Context, userID int64, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE campaigns
		SET post_count = post_count + 1
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (campaigns.Campaign, error) {
	var record campaigns.Campaign
	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.Name,
		&record.Description,
		&record.Status,
		&record.PostCount,
		&record.CreatedAt,
	)
	if err != nil {
		return campaigns.Campaign{}, err
	}
	return record, nil
}

var _ campaigns.Repository = (*PostgresRepository)(nil)
