package domain

import "time"

type MessageType string

const (
	MessageText              MessageType = "TEXT"
	MessageSystem            MessageType = "SYSTEM"
	MessagePhotoVerification MessageType = "PHOTO_VERIFICATION"
	MessageVideoVerification MessageType = "VIDEO_VERIFICATION"
)

type SenderKind string

const (
	SenderHuman  SenderKind = "HUMAN"
	SenderBadger SenderKind = "BADGER"
)

// MessageSender identifies who authored a chat message: exactly one of a
// human user or a honey badger. Construct via HumanSender or BadgerSender so
// the kind and id never disagree.
type MessageSender struct {
	Kind SenderKind `json:"kind"`
	ID   string     `json:"id"`
}

func HumanSender(userID string) MessageSender {
	return MessageSender{Kind: SenderHuman, ID: userID}
}

func BadgerSender(badgerID string) MessageSender {
	return MessageSender{Kind: SenderBadger, ID: badgerID}
}

func (s MessageSender) IsBadger() bool {
	return s.Kind == SenderBadger
}

// ChatMessage is append-only; messages are never updated or deleted while
// their challenge exists.
type ChatMessage struct {
	ID          string        `json:"id" db:"id"`
	ChallengeID string        `json:"challenge_id" db:"challenge_id"`
	Content     string        `json:"content" db:"content"`
	Type        MessageType   `json:"message_type" db:"message_type"`
	MediaURL    *string       `json:"media_url" db:"media_url"`
	Sender      MessageSender `json:"sender"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}
