package notification

import (
	"context"
	"encoding/json"

	"github.com/badgerly/badgerly-backend/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Notification is a fire-and-forget push payload.
type Notification struct {
	Type    string                 `json:"type"`
	Title   string                 `json:"title"`
	Body    string                 `json:"body"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// InbandDeliverer delivers a notification over an existing live connection.
// Returns false when the user has no connection.
type InbandDeliverer interface {
	Deliver(userID string, n Notification) bool
}

// Service fans a notification out to the user's live connection when one
// exists, otherwise publishes it for the push pipeline. Failures on either
// path are never surfaced to callers.
type Service struct {
	redis  *redis.Client
	inband InbandDeliverer
	log    *logger.Logger
}

func NewService(redisClient *redis.Client, log *logger.Logger) *Service {
	return &Service{
		redis: redisClient,
		log:   log,
	}
}

// SetInbandDeliverer attaches the live-connection registry. Called once at
// wiring time; the registry needs the notification service's consumers first.
func (s *Service) SetInbandDeliverer(d InbandDeliverer) {
	s.inband = d
}

// Notify delivers best-effort and never returns an error.
func (s *Service) Notify(ctx context.Context, userID string, n Notification) {
	if s.inband != nil && s.inband.Deliver(userID, n) {
		return
	}

	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		s.log.Error("failed to marshal notification", "user_id", userID, "error", err)
		return
	}
	if err := s.redis.Publish(ctx, "notifications:"+userID, payload).Err(); err != nil {
		s.log.Debug("notification publish failed", "user_id", userID, "error", err)
	}
}
