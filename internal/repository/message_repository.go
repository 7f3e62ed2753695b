package repository

import (
	"context"

	"github.com/badgerly/badgerly-backend/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.ChatMessage) error
	// ListByChallenge returns messages in ascending creation order; limit <= 0
	// means no limit.
	ListByChallenge(ctx context.Context, challengeID string, limit int) ([]*domain.ChatMessage, error)
}

type ProgressRepository interface {
	Create(ctx context.Context, update *domain.ProgressUpdate) error
	// ListByChallenge returns the most recent updates first.
	ListByChallenge(ctx context.Context, challengeID string, limit int) ([]*domain.ProgressUpdate, error)
}
