package ws

import (
	"context"
	"testing"
	"time"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/badgerly/badgerly-backend/internal/notification"
	"github.com/badgerly/badgerly-backend/internal/personality"
	"github.com/badgerly/badgerly-backend/internal/pkg/logger"
	"github.com/badgerly/badgerly-backend/internal/repository"
	"github.com/badgerly/badgerly-backend/internal/usecase/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChallengeRepo struct {
	challenge *domain.Challenge
}

func (r *stubChallengeRepo) Create(ctx context.Context, c *domain.Challenge) error { return nil }

func (r *stubChallengeRepo) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	if r.challenge == nil || r.challenge.ID != id {
		return nil, domain.ErrChallengeNotFound
	}
	return r.challenge, nil
}

func (r *stubChallengeRepo) ListForUser(ctx context.Context, userID string, filter repository.ChallengeFilter) ([]*domain.Challenge, error) {
	return nil, nil
}

func (r *stubChallengeRepo) ListWithPaymentIntent(ctx context.Context, senderID string) ([]*domain.Challenge, error) {
	return nil, nil
}

func (r *stubChallengeRepo) UpdateStatus(ctx context.Context, id string, status domain.ChallengeStatus, startedAt, completedAt *time.Time) error {
	return nil
}

func (r *stubChallengeRepo) SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error {
	return nil
}

type stubBadgerRepo struct {
	badger *domain.Badger
}

func (r *stubBadgerRepo) Create(ctx context.Context, b *domain.Badger) error { return nil }

func (r *stubBadgerRepo) GetByID(ctx context.Context, id string) (*domain.Badger, error) {
	return nil, domain.ErrBadgerNotFound
}

func (r *stubBadgerRepo) GetByChallenge(ctx context.Context, challengeID string) (*domain.Badger, error) {
	if r.badger == nil {
		return nil, domain.ErrBadgerNotFound
	}
	return r.badger, nil
}

func (r *stubBadgerRepo) GetByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.Badger, error) {
	return nil, nil
}

func (r *stubBadgerRepo) CountActiveByOwner(ctx context.Context, ownerID string) (int, error) {
	return 0, nil
}

func (r *stubBadgerRepo) Rename(ctx context.Context, id, name string) error           { return nil }
func (r *stubBadgerRepo) Assign(ctx context.Context, id, challengeID string) error    { return nil }
func (r *stubBadgerRepo) Release(ctx context.Context, id string) error                { return nil }
func (r *stubBadgerRepo) AwardCompletion(ctx context.Context, id string, e int) error { return nil }
func (r *stubBadgerRepo) Retire(ctx context.Context, id string) error                 { return nil }

type stubMessageRepo struct{}

func (r *stubMessageRepo) Create(ctx context.Context, m *domain.ChatMessage) error { return nil }

func (r *stubMessageRepo) ListByChallenge(ctx context.Context, challengeID string, limit int) ([]*domain.ChatMessage, error) {
	return nil, nil
}

func newReplyFixture(t *testing.T) (*Handler, *Hub, *chat.ReplyPlan, *domain.Challenge) {
	t.Helper()

	challenge := &domain.Challenge{
		ID:          "ch-1",
		Title:       "Run 5k",
		SenderID:    "sender-1",
		RecipientID: "recipient-1",
		Status:      domain.ChallengeActive,
	}
	badger := &domain.Badger{ID: "badger-1", Name: "Buzz", Personality: personality.Relentless, Level: 1}
	profile, err := personality.Resolve(personality.Relentless)
	require.NoError(t, err)

	chatUC := chat.NewChatUseCase(
		&stubChallengeRepo{challenge: challenge},
		&stubBadgerRepo{badger: badger},
		&stubMessageRepo{},
		nil,
		logger.NewNop(),
	)

	hub := NewHub()
	handler := NewHandler(
		nil,
		chatUC,
		NewSessionRegistry(),
		hub,
		notification.NewService(nil, logger.NewNop()),
		logger.NewNop(),
	)
	handler.replyDelay = func() time.Duration { return time.Millisecond }

	plan := &chat.ReplyPlan{
		Challenge: challenge,
		Badger:    badger,
		Profile:   profile,
		Sender:    &domain.User{ID: "recipient-1", FirstName: "Sam"},
	}
	return handler, hub, plan, challenge
}

func TestSendMessageNotifiesOfflineCounterpart(t *testing.T) {
	challenge := &domain.Challenge{
		ID:          "ch-1",
		Title:       "Run 5k",
		SenderID:    "sender-1",
		RecipientID: "recipient-1",
		Status:      domain.ChallengeActive,
	}
	chatUC := chat.NewChatUseCase(
		&stubChallengeRepo{challenge: challenge},
		&stubBadgerRepo{},
		&stubMessageRepo{},
		nil,
		logger.NewNop(),
	)

	registry := NewSessionRegistry()
	hub := NewHub()
	notifier := notification.NewService(nil, logger.NewNop())
	notifier.SetInbandDeliverer(registry)
	handler := NewHandler(nil, chatUC, registry, hub, notifier, logger.NewNop())

	sender := newClient(nil, &domain.User{ID: "recipient-1", FirstName: "Sam", LastName: "Rivera"})
	counterpart := testClient("sender-1")
	registry.Register(sender)
	// connected, but not in the challenge room
	registry.Register(counterpart)
	hub.Join("ch-1", sender)

	handler.handleSendMessage(context.Background(), sender, SendMessagePayload{
		ChallengeID: "ch-1",
		Content:     "on my way",
	})

	events := drain(sender)
	require.Len(t, events, 1)
	assert.Equal(t, EventMessageSent, events[0].Event)

	events = drain(counterpart)
	require.Len(t, events, 1)
	assert.Equal(t, EventNotification, events[0].Event)
	n, ok := events[0].Data.(notification.Notification)
	require.True(t, ok)
	assert.Equal(t, "Run 5k", n.Title)
	assert.Equal(t, "Sam Rivera: on my way", n.Body)
	assert.Equal(t, "ch-1", n.Payload["challenge_id"])
}

func TestScheduleReplyBroadcastsToWholeRoom(t *testing.T) {
	handler, hub, plan, _ := newReplyFixture(t)

	sender := testClient("recipient-1")
	other := testClient("sender-1")
	hub.Join("ch-1", sender)
	hub.Join("ch-1", other)

	handler.scheduleReply(plan, "ch-1", "almost there")

	require.Eventually(t, func() bool {
		return len(sender.send) == 1 && len(other.send) == 1
	}, time.Second, 5*time.Millisecond)

	for _, c := range []*Client{sender, other} {
		events := drain(c)
		require.Len(t, events, 1)
		assert.Equal(t, EventNewMessage, events[0].Event)
		msg, ok := events[0].Data.(MessageEvent)
		require.True(t, ok)
		assert.True(t, msg.IsBadger)
		assert.False(t, msg.IsOwn)
		assert.Contains(t, plan.Profile.Phrases[personality.CategoryMotivation], msg.Content)
	}
}

func TestScheduleReplyFiresDespiteCancellation(t *testing.T) {
	handler, hub, plan, challenge := newReplyFixture(t)

	member := testClient("recipient-1")
	hub.Join("ch-1", member)

	handler.scheduleReply(plan, "ch-1", "one more rep")
	// the reply was planned against ACTIVE state; a cancellation landing
	// inside the thinking delay does not recall it
	challenge.Status = domain.ChallengeCancelled

	require.Eventually(t, func() bool {
		return len(member.send) == 1
	}, time.Second, 5*time.Millisecond)

	events := drain(member)
	require.Len(t, events, 1)
	assert.Equal(t, EventNewMessage, events[0].Event)
}
