package ws

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/badgerly/badgerly-backend/internal/notification"
	"github.com/badgerly/badgerly-backend/internal/pkg/logger"
	"github.com/badgerly/badgerly-backend/internal/usecase/auth"
	"github.com/badgerly/badgerly-backend/internal/usecase/chat"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// replyTimeout bounds the whole deferred badger reply, generation included.
const replyTimeout = 5 * time.Second

// Handler owns the live-chat surface: connection auth, room membership,
// message fan-out and badger reply scheduling.
type Handler struct {
	authUC   *auth.AuthUseCase
	chatUC   *chat.ChatUseCase
	registry *SessionRegistry
	hub      *Hub
	notifier *notification.Service
	upgrader websocket.Upgrader
	log      *logger.Logger

	// replyDelay produces the simulated thinking delay before a badger
	// reply; overridable in tests.
	replyDelay func() time.Duration
}

func NewHandler(
	authUC *auth.AuthUseCase,
	chatUC *chat.ChatUseCase,
	registry *SessionRegistry,
	hub *Hub,
	notifier *notification.Service,
	log *logger.Logger,
) *Handler {
	return &Handler{
		authUC:   authUC,
		chatUC:   chatUC,
		registry: registry,
		hub:      hub,
		notifier: notifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: log,
		replyDelay: func() time.Duration {
			// 1-3 seconds, like a badger pausing to think.
			return time.Second + time.Duration(rand.Int63n(int64(2*time.Second)))
		},
	}
}

// HandleWS authenticates and upgrades a connection, then serves its event
// loop until disconnect.
func (h *Handler) HandleWS(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required: no token provided"})
		return
	}

	user, err := h.authUC.VerifyToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication failed: invalid token"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("websocket upgrade failed", "user_id", user.ID, "error", err)
		return
	}

	client := newClient(conn, user)
	h.registry.Register(client)
	h.log.Info("user connected", "user_id", user.ID, "username", user.Username)

	go client.writePump()
	h.readLoop(client)

	h.registry.Unregister(client)
	h.hub.RemoveClient(client)
	client.close()
	h.log.Info("user disconnected", "user_id", user.ID)
}

func bearerToken(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return header[7:]
	}
	return ""
}

func (h *Handler) readLoop(client *Client) {
	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var env Envelope
		if err := client.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket read error", "user_id", client.UserID(), "error", err)
			}
			return
		}
		h.dispatch(client, env)
	}
}

func (h *Handler) dispatch(client *Client, env Envelope) {
	ctx := context.Background()

	switch env.Event {
	case EventJoinChallenge:
		var p ChallengePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			client.Enqueue(errorEvent("malformed payload"))
			return
		}
		h.handleJoin(ctx, client, p.ChallengeID)

	case EventLeaveChallenge:
		var p ChallengePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			client.Enqueue(errorEvent("malformed payload"))
			return
		}
		h.hub.Leave(p.ChallengeID, client)
		client.Enqueue(OutEvent{Event: EventLeftChallenge, Data: JoinedEvent{
			ChallengeID: p.ChallengeID,
			Message:     "Left challenge chat",
		}})

	case EventSendMessage:
		var p SendMessagePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			client.Enqueue(errorEvent("malformed payload"))
			return
		}
		h.handleSendMessage(ctx, client, p)

	case EventPokeBadger:
		var p ChallengePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		h.handlePoke(ctx, client, p.ChallengeID)

	case EventTypingStart, EventTypingStop:
		var p ChallengePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		h.hub.Broadcast(p.ChallengeID, OutEvent{Event: EventUserTyping, Data: TypingEvent{
			UserID:   client.user.ID,
			Username: client.user.Username,
			IsTyping: env.Event == EventTypingStart,
		}}, client)

	default:
		client.Enqueue(errorEvent("unknown event: " + env.Event))
	}
}

func (h *Handler) handleJoin(ctx context.Context, client *Client, challengeID string) {
	if _, err := h.chatUC.AuthorizeRoom(ctx, client.UserID(), challengeID); err != nil {
		if errors.Is(err, domain.ErrAccessDenied) || errors.Is(err, domain.ErrChallengeNotFound) {
			client.Enqueue(errorEvent("Access denied to challenge"))
		} else {
			h.log.Error("join failed", "challenge_id", challengeID, "error", err)
			client.Enqueue(errorEvent("Failed to join challenge"))
		}
		return
	}

	h.hub.Join(challengeID, client)
	client.Enqueue(OutEvent{Event: EventJoinedChallenge, Data: JoinedEvent{
		ChallengeID: challengeID,
		Message:     "Successfully joined challenge chat",
	}})
	h.log.Info("user joined challenge", "user_id", client.UserID(), "challenge_id", challengeID)
}

func (h *Handler) handleSendMessage(ctx context.Context, client *Client, p SendMessagePayload) {
	result, err := h.chatUC.SendMessage(ctx, client.user, p.ChallengeID, p.Content, domain.MessageType(p.MessageType), p.MediaURL)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccessDenied), errors.Is(err, domain.ErrChallengeNotFound):
			client.Enqueue(errorEvent("Access denied to challenge"))
		default:
			h.log.Error("send message failed", "challenge_id", p.ChallengeID, "error", err)
			client.Enqueue(errorEvent("Failed to send message"))
		}
		return
	}

	// Others get the broadcast, the sender gets its own acknowledgment copy.
	h.hub.Broadcast(p.ChallengeID, messageEvent(result.Message, false), client)
	client.Enqueue(messageEvent(result.Message, true))

	// Offline counterpart gets a push instead of a broadcast.
	if other, ok := result.Challenge.OtherParticipant(client.UserID()); ok && !h.hub.InRoom(p.ChallengeID, other) {
		h.notifier.Notify(ctx, other, notification.Notification{
			Type:  "new_message",
			Title: result.Challenge.Title,
			Body:  client.user.FullName() + ": " + p.Content,
			Payload: map[string]interface{}{
				"challenge_id": p.ChallengeID,
			},
		})
	}

	if result.Reply != nil {
		h.scheduleReply(result.Reply, p.ChallengeID, p.Content)
	}
}

// scheduleReply fires the badger reply after the thinking delay. The timer
// is deliberately not cancelled on later room or challenge state changes:
// a reply scheduled against an ACTIVE challenge fires even if the challenge
// is cancelled mid-delay.
func (h *Handler) scheduleReply(plan *chat.ReplyPlan, challengeID, userMessage string) {
	time.AfterFunc(h.replyDelay(), func() {
		defer func() {
			if r := recover(); r != nil {
				h.log.Error("badger reply panicked", "challenge_id", challengeID, "panic", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()

		message, err := h.chatUC.GenerateReply(ctx, plan, userMessage)
		if err != nil {
			h.log.Error("badger reply failed", "challenge_id", challengeID, "error", err)
			return
		}

		// Badger replies go to the whole room, original sender included.
		h.hub.Broadcast(challengeID, messageEvent(message, false), nil)
	})
}

func (h *Handler) handlePoke(ctx context.Context, client *Client, challengeID string) {
	message, err := h.chatUC.Poke(ctx, client.UserID(), challengeID)
	if err != nil || message == nil {
		return
	}
	// Poke responses go to the poking connection only.
	client.Enqueue(messageEvent(message, false))
}
