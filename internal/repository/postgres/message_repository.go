package postgres

import (
	"context"
	"time"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/badgerly/badgerly-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

// messageRow splits the sender union across two nullable columns; a CHECK
// constraint in the schema enforces exactly-one.
type messageRow struct {
	ID             string             `db:"id"`
	ChallengeID    string             `db:"challenge_id"`
	Content        string             `db:"content"`
	MessageType    domain.MessageType `db:"message_type"`
	MediaURL       *string            `db:"media_url"`
	SenderUserID   *string            `db:"sender_user_id"`
	SenderBadgerID *string            `db:"sender_badger_id"`
	CreatedAt      time.Time          `db:"created_at"`
}

func (row *messageRow) toDomain() *domain.ChatMessage {
	msg := &domain.ChatMessage{
		ID:          row.ID,
		ChallengeID: row.ChallengeID,
		Content:     row.Content,
		Type:        row.MessageType,
		MediaURL:    row.MediaURL,
		CreatedAt:   row.CreatedAt,
	}
	if row.SenderBadgerID != nil {
		msg.Sender = domain.BadgerSender(*row.SenderBadgerID)
	} else if row.SenderUserID != nil {
		msg.Sender = domain.HumanSender(*row.SenderUserID)
	}
	return msg
}

func (r *messageRepository) Create(ctx context.Context, message *domain.ChatMessage) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	var senderUserID, senderBadgerID *string
	switch message.Sender.Kind {
	case domain.SenderBadger:
		senderBadgerID = &message.Sender.ID
	default:
		senderUserID = &message.Sender.ID
	}

	query := `
		INSERT INTO chat_messages (id, challenge_id, content, message_type, media_url, sender_user_id, sender_badger_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query,
		message.ID, message.ChallengeID, message.Content, message.Type,
		message.MediaURL, senderUserID, senderBadgerID,
	).Scan(&message.CreatedAt)
}

func (r *messageRepository) ListByChallenge(ctx context.Context, challengeID string, limit int) ([]*domain.ChatMessage, error) {
	query := `SELECT * FROM chat_messages WHERE challenge_id = $1 ORDER BY created_at ASC`
	args := []interface{}{challengeID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	var rows []*messageRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	messages := make([]*domain.ChatMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, row.toDomain())
	}
	return messages, nil
}
