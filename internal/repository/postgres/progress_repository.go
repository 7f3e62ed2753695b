package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/badgerly/badgerly-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type progressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

type progressRow struct {
	ID              string                    `db:"id"`
	ChallengeID     string                    `db:"challenge_id"`
	UpdateType      domain.ProgressUpdateType `db:"update_type"`
	Content         string                    `db:"content"`
	MediaURLs       pq.StringArray            `db:"media_urls"`
	Metadata        []byte                    `db:"metadata"`
	ProgressPercent int                       `db:"progress_percent"`
	CreatedAt       time.Time                 `db:"created_at"`
}

func (row *progressRow) toDomain() *domain.ProgressUpdate {
	return &domain.ProgressUpdate{
		ID:              row.ID,
		ChallengeID:     row.ChallengeID,
		UpdateType:      row.UpdateType,
		Content:         row.Content,
		MediaURLs:       []string(row.MediaURLs),
		Metadata:        json.RawMessage(row.Metadata),
		ProgressPercent: row.ProgressPercent,
		CreatedAt:       row.CreatedAt,
	}
}

func (r *progressRepository) Create(ctx context.Context, update *domain.ProgressUpdate) error {
	if update.ID == "" {
		update.ID = uuid.New().String()
	}
	metadata := update.Metadata
	if len(metadata) == 0 {
		metadata = json.RawMessage(`{}`)
	}

	query := `
		INSERT INTO progress_updates (id, challenge_id, update_type, content, media_urls, metadata, progress_percent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		update.ID, update.ChallengeID, update.UpdateType, update.Content,
		pq.Array(update.MediaURLs), []byte(metadata), update.ProgressPercent,
	).Scan(&update.CreatedAt)
}

func (r *progressRepository) ListByChallenge(ctx context.Context, challengeID string, limit int) ([]*domain.ProgressUpdate, error) {
	query := `SELECT * FROM progress_updates WHERE challenge_id = $1 ORDER BY created_at DESC`
	args := []interface{}{challengeID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	var rows []*progressRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	updates := make([]*domain.ProgressUpdate, 0, len(rows))
	for _, row := range rows {
		updates = append(updates, row.toDomain())
	}
	return updates, nil
}
