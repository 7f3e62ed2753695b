package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/badgerly/badgerly-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type badgerRepository struct {
	db *sqlx.DB
}

func NewBadgerRepository(db *sqlx.DB) repository.BadgerRepository {
	return &badgerRepository{db: db}
}

func (r *badgerRepository) Create(ctx context.Context, badger *domain.Badger) error {
	if badger.ID == "" {
		badger.ID = uuid.New().String()
	}
	if badger.Level == 0 {
		badger.Level = 1
	}

	query := `
		INSERT INTO honey_badgers (id, owner_id, name, personality, avatar, level, experience, successful_challenges, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		badger.ID, badger.OwnerID, badger.Name, badger.Personality, badger.Avatar,
		badger.Level, badger.Experience, badger.SuccessfulChallenges, badger.IsActive,
	).Scan(&badger.CreatedAt, &badger.UpdatedAt)
}

func (r *badgerRepository) GetByID(ctx context.Context, id string) (*domain.Badger, error) {
	var badger domain.Badger
	query := `SELECT * FROM honey_badgers WHERE id = $1`
	err := r.db.GetContext(ctx, &badger, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBadgerNotFound
		}
		return nil, err
	}
	return &badger, nil
}

func (r *badgerRepository) GetByChallenge(ctx context.Context, challengeID string) (*domain.Badger, error) {
	var badger domain.Badger
	query := `SELECT * FROM honey_badgers WHERE challenge_id = $1`
	err := r.db.GetContext(ctx, &badger, query, challengeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBadgerNotFound
		}
		return nil, err
	}
	return &badger, nil
}

func (r *badgerRepository) GetByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.Badger, error) {
	var badgers []*domain.Badger
	query := `SELECT * FROM honey_badgers WHERE owner_id = $1 ORDER BY created_at DESC`
	if activeOnly {
		query = `SELECT * FROM honey_badgers WHERE owner_id = $1 AND is_active = true ORDER BY created_at DESC`
	}
	err := r.db.SelectContext(ctx, &badgers, query, ownerID)
	return badgers, err
}

func (r *badgerRepository) CountActiveByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM honey_badgers WHERE owner_id = $1 AND is_active = true`
	err := r.db.GetContext(ctx, &count, query, ownerID)
	return count, err
}

func (r *badgerRepository) Rename(ctx context.Context, id, name string) error {
	query := `UPDATE honey_badgers SET name = $1, updated_at = NOW() WHERE id = $2`
	return r.execExpectingRow(ctx, query, name, id)
}

func (r *badgerRepository) Assign(ctx context.Context, id, challengeID string) error {
	// The challenge_id IS NULL guard keeps the one-challenge-per-badger
	// invariant even under concurrent assignment attempts.
	query := `
		UPDATE honey_badgers
		SET challenge_id = $1, updated_at = NOW()
		WHERE id = $2 AND is_active = true AND challenge_id IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, challengeID, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrBadgerUnavailable
	}
	return nil
}

func (r *badgerRepository) Release(ctx context.Context, id string) error {
	query := `UPDATE honey_badgers SET challenge_id = NULL, updated_at = NOW() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id)
}

func (r *badgerRepository) AwardCompletion(ctx context.Context, id string, experience int) error {
	// The level expression is domain.LevelForExperience in SQL; it lives here
	// so the whole award stays one atomic update.
	query := `
		UPDATE honey_badgers
		SET successful_challenges = successful_challenges + 1,
		    experience = experience + $1,
		    level = 1 + (experience + $1) / 500,
		    updated_at = NOW()
		WHERE id = $2
	`
	return r.execExpectingRow(ctx, query, experience, id)
}

func (r *badgerRepository) Retire(ctx context.Context, id string) error {
	query := `UPDATE honey_badgers SET is_active = false, updated_at = NOW() WHERE id = $1`
	return r.execExpectingRow(ctx, query, id)
}

func (r *badgerRepository) execExpectingRow(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrBadgerNotFound
	}
	return nil
}
