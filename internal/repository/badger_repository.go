package repository

import (
	"context"

	"github.com/badgerly/badgerly-backend/internal/domain"
)

type BadgerRepository interface {
	Create(ctx context.Context, badger *domain.Badger) error
	GetByID(ctx context.Context, id string) (*domain.Badger, error)
	// GetByChallenge returns the badger currently assigned to the challenge,
	// or domain.ErrBadgerNotFound if none is.
	GetByChallenge(ctx context.Context, challengeID string) (*domain.Badger, error)
	GetByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.Badger, error)
	CountActiveByOwner(ctx context.Context, ownerID string) (int, error)
	Rename(ctx context.Context, id, name string) error
	// Assign binds an available badger to a challenge; Release clears the
	// binding regardless of which challenge held it.
	Assign(ctx context.Context, id, challengeID string) error
	Release(ctx context.Context, id string) error
	// AwardCompletion atomically bumps the success counter, adds experience
	// and recomputes the level.
	AwardCompletion(ctx context.Context, id string, experience int) error
	Retire(ctx context.Context, id string) error
}
