package ws

import (
	"encoding/json"

	"github.com/badgerly/badgerly-backend/internal/domain"
)

// Inbound event names.
const (
	EventJoinChallenge  = "join_challenge"
	EventLeaveChallenge = "leave_challenge"
	EventSendMessage    = "send_message"
	EventPokeBadger     = "poke_badger"
	EventTypingStart    = "typing_start"
	EventTypingStop     = "typing_stop"
)

// Outbound event names.
const (
	EventJoinedChallenge = "joined_challenge"
	EventLeftChallenge   = "left_challenge"
	EventMessageSent     = "message_sent"
	EventNewMessage      = "new_message"
	EventUserTyping      = "user_typing"
	EventNotification    = "notification"
	EventError           = "error"
)

// Envelope is the inbound wire frame: an event name plus a payload decoded
// per event.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// OutEvent is the outbound wire frame.
type OutEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type ChallengePayload struct {
	ChallengeID string `json:"challenge_id"`
}

type SendMessagePayload struct {
	ChallengeID string  `json:"challenge_id"`
	Content     string  `json:"content"`
	MessageType string  `json:"message_type"`
	MediaURL    *string `json:"media_url"`
}

// MessageEvent wraps a chat message with per-receiver flags so clients can
// distinguish own, incoming and badger messages without comparing ids.
type MessageEvent struct {
	*domain.ChatMessage
	IsOwn    bool `json:"is_own"`
	IsBadger bool `json:"is_badger"`
}

type JoinedEvent struct {
	ChallengeID string `json:"challenge_id"`
	Message     string `json:"message"`
}

type TypingEvent struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	IsTyping bool   `json:"is_typing"`
}

type ErrorEvent struct {
	Message string `json:"message"`
}

func errorEvent(message string) OutEvent {
	return OutEvent{Event: EventError, Data: ErrorEvent{Message: message}}
}

func messageEvent(msg *domain.ChatMessage, isOwn bool) OutEvent {
	name := EventNewMessage
	if isOwn {
		name = EventMessageSent
	}
	return OutEvent{Event: name, Data: MessageEvent{
		ChatMessage: msg,
		IsOwn:       isOwn,
		IsBadger:    msg.Sender.IsBadger(),
	}}
}
