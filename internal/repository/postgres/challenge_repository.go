package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/badgerly/badgerly-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type challengeRepository struct {
	db *sqlx.DB
}

func NewChallengeRepository(db *sqlx.DB) repository.ChallengeRepository {
	return &challengeRepository{db: db}
}

// challengeRow mirrors domain.Challenge with pq.StringArray for reward_media.
type challengeRow struct {
	domain.Challenge
	RewardMediaArr pq.StringArray `db:"reward_media"`
}

func (row *challengeRow) toDomain() *domain.Challenge {
	c := row.Challenge
	c.RewardMedia = []string(row.RewardMediaArr)
	return &c
}

func (r *challengeRepository) Create(ctx context.Context, challenge *domain.Challenge) error {
	if challenge.ID == "" {
		challenge.ID = uuid.New().String()
	}
	if challenge.Status == "" {
		challenge.Status = domain.ChallengePending
	}

	query := `
		INSERT INTO challenges (
			id, title, description, type, difficulty, deadline,
			verification_method, reward_type, reward_amount, reward_message, reward_media,
			sender_id, recipient_id, status, stripe_payment_intent_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		challenge.ID, challenge.Title, challenge.Description, challenge.Type,
		challenge.Difficulty, challenge.Deadline, challenge.VerificationMethod,
		challenge.RewardType, challenge.RewardAmount, challenge.RewardMessage,
		pq.Array(challenge.RewardMedia), challenge.SenderID, challenge.RecipientID,
		challenge.Status, challenge.StripePaymentIntentID,
	).Scan(&challenge.CreatedAt)
}

func (r *challengeRepository) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	var row challengeRow
	query := `SELECT * FROM challenges WHERE id = $1`
	err := r.db.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChallengeNotFound
		}
		return nil, err
	}
	return row.toDomain(), nil
}

func (r *challengeRepository) ListForUser(ctx context.Context, userID string, filter repository.ChallengeFilter) ([]*domain.Challenge, error) {
	query := `SELECT * FROM challenges WHERE (sender_id = $1 OR recipient_id = $1)`
	switch filter.Role {
	case "sent":
		query = `SELECT * FROM challenges WHERE sender_id = $1`
	case "received":
		query = `SELECT * FROM challenges WHERE recipient_id = $1`
	}

	args := []interface{}{userID}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	var rows []*challengeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	challenges := make([]*domain.Challenge, 0, len(rows))
	for _, row := range rows {
		challenges = append(challenges, row.toDomain())
	}
	return challenges, nil
}

func (r *challengeRepository) ListWithPaymentIntent(ctx context.Context, senderID string) ([]*domain.Challenge, error) {
	query := `
		SELECT * FROM challenges
		WHERE sender_id = $1 AND stripe_payment_intent_id IS NOT NULL
		ORDER BY created_at DESC
	`
	var rows []*challengeRow
	if err := r.db.SelectContext(ctx, &rows, query, senderID); err != nil {
		return nil, err
	}

	challenges := make([]*domain.Challenge, 0, len(rows))
	for _, row := range rows {
		challenges = append(challenges, row.toDomain())
	}
	return challenges, nil
}

func (r *challengeRepository) SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error {
	query := `UPDATE challenges SET stripe_payment_intent_id = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, paymentIntentID, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrChallengeNotFound
	}
	return nil
}

func (r *challengeRepository) UpdateStatus(ctx context.Context, id string, status domain.ChallengeStatus, startedAt, completedAt *time.Time) error {
	query := `
		UPDATE challenges
		SET status = $1,
		    started_at = COALESCE($2, started_at),
		    completed_at = COALESCE($3, completed_at)
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, status, startedAt, completedAt, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrChallengeNotFound
	}
	return nil
}
