package repository

import (
	"context"
	"time"

	"github.com/badgerly/badgerly-backend/internal/domain"
)

// ChallengeFilter narrows ListForUser. Zero values mean "no constraint".
type ChallengeFilter struct {
	Status domain.ChallengeStatus
	Type   domain.ChallengeType
	// Role is "sent", "received" or empty for both sides.
	Role string
}

type ChallengeRepository interface {
	Create(ctx context.Context, challenge *domain.Challenge) error
	GetByID(ctx context.Context, id string) (*domain.Challenge, error)
	ListForUser(ctx context.Context, userID string, filter ChallengeFilter) ([]*domain.Challenge, error)
	ListWithPaymentIntent(ctx context.Context, senderID string) ([]*domain.Challenge, error)
	UpdateStatus(ctx context.Context, id string, status domain.ChallengeStatus, startedAt, completedAt *time.Time) error
	SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error
}
