package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/badgerly/badgerly-backend/internal/infrastructure/gemini"
	"github.com/badgerly/badgerly-backend/internal/personality"
	"github.com/badgerly/badgerly-backend/internal/pkg/logger"
	"github.com/badgerly/badgerly-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChallengeRepo struct {
	challenges map[string]*domain.Challenge
}

func (r *fakeChallengeRepo) Create(ctx context.Context, c *domain.Challenge) error { return nil }

func (r *fakeChallengeRepo) GetByID(ctx context.Context, id string) (*domain.Challenge, error) {
	c, ok := r.challenges[id]
	if !ok {
		return nil, domain.ErrChallengeNotFound
	}
	return c, nil
}

func (r *fakeChallengeRepo) ListForUser(ctx context.Context, userID string, filter repository.ChallengeFilter) ([]*domain.Challenge, error) {
	return nil, nil
}

func (r *fakeChallengeRepo) ListWithPaymentIntent(ctx context.Context, senderID string) ([]*domain.Challenge, error) {
	return nil, nil
}

func (r *fakeChallengeRepo) UpdateStatus(ctx context.Context, id string, status domain.ChallengeStatus, startedAt, completedAt *time.Time) error {
	return nil
}

func (r *fakeChallengeRepo) SetPaymentIntent(ctx context.Context, id, paymentIntentID string) error {
	return nil
}

type fakeBadgerRepo struct {
	byChallenge map[string]*domain.Badger
}

func (r *fakeBadgerRepo) Create(ctx context.Context, b *domain.Badger) error { return nil }

func (r *fakeBadgerRepo) GetByID(ctx context.Context, id string) (*domain.Badger, error) {
	return nil, domain.ErrBadgerNotFound
}

func (r *fakeBadgerRepo) GetByChallenge(ctx context.Context, challengeID string) (*domain.Badger, error) {
	b, ok := r.byChallenge[challengeID]
	if !ok {
		return nil, domain.ErrBadgerNotFound
	}
	return b, nil
}

func (r *fakeBadgerRepo) GetByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.Badger, error) {
	return nil, nil
}

func (r *fakeBadgerRepo) CountActiveByOwner(ctx context.Context, ownerID string) (int, error) {
	return 0, nil
}

func (r *fakeBadgerRepo) Rename(ctx context.Context, id, name string) error          { return nil }
func (r *fakeBadgerRepo) Assign(ctx context.Context, id, challengeID string) error   { return nil }
func (r *fakeBadgerRepo) Release(ctx context.Context, id string) error               { return nil }
func (r *fakeBadgerRepo) AwardCompletion(ctx context.Context, id string, e int) error { return nil }
func (r *fakeBadgerRepo) Retire(ctx context.Context, id string) error                { return nil }

type fakeMessageRepo struct {
	created []*domain.ChatMessage
	fail    bool
}

func (r *fakeMessageRepo) Create(ctx context.Context, m *domain.ChatMessage) error {
	if r.fail {
		return errors.New("insert failed")
	}
	m.ID = "msg-1"
	m.CreatedAt = time.Now()
	r.created = append(r.created, m)
	return nil
}

func (r *fakeMessageRepo) ListByChallenge(ctx context.Context, challengeID string, limit int) ([]*domain.ChatMessage, error) {
	return r.created, nil
}

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (g *fakeGenerator) GenerateBadgerReply(ctx context.Context, req gemini.ReplyRequest) (string, error) {
	g.calls++
	return g.reply, g.err
}

func activeFixture() (*fakeChallengeRepo, *fakeBadgerRepo, *fakeMessageRepo, *domain.User) {
	challenge := &domain.Challenge{
		ID:          "ch-1",
		Title:       "Run 5k",
		Description: "Run five kilometers without stopping",
		SenderID:    "sender-1",
		RecipientID: "recipient-1",
		Status:      domain.ChallengeActive,
	}
	badger := &domain.Badger{
		ID:          "badger-1",
		OwnerID:     "sender-1",
		Name:        "Buzz",
		Personality: personality.Relentless,
		Level:       2,
	}
	user := &domain.User{ID: "recipient-1", FirstName: "Sam"}
	return &fakeChallengeRepo{challenges: map[string]*domain.Challenge{"ch-1": challenge}},
		&fakeBadgerRepo{byChallenge: map[string]*domain.Badger{"ch-1": badger}},
		&fakeMessageRepo{},
		user
}

func newChatUseCase(challengeRepo *fakeChallengeRepo, badgerRepo *fakeBadgerRepo, messageRepo *fakeMessageRepo, gen ReplyGenerator) *ChatUseCase {
	return NewChatUseCase(challengeRepo, badgerRepo, messageRepo, gen, logger.NewNop())
}

func TestSendMessagePersistsAndPlansReply(t *testing.T) {
	challengeRepo, badgerRepo, messageRepo, user := activeFixture()
	uc := newChatUseCase(challengeRepo, badgerRepo, messageRepo, nil)

	result, err := uc.SendMessage(context.Background(), user, "ch-1", "on my way!", "", nil)
	require.NoError(t, err)

	require.Len(t, messageRepo.created, 1)
	assert.Equal(t, "on my way!", result.Message.Content)
	assert.Equal(t, domain.MessageText, result.Message.Type)
	assert.Equal(t, domain.HumanSender(user.ID), result.Message.Sender)

	require.NotNil(t, result.Reply)
	assert.Equal(t, "badger-1", result.Reply.Badger.ID)
	assert.Equal(t, personality.Relentless, result.Reply.Profile.Type)
}

func TestSendMessageNoReplyOutsideActive(t *testing.T) {
	for _, status := range []domain.ChallengeStatus{
		domain.ChallengePending,
		domain.ChallengeCompleted,
		domain.ChallengeCancelled,
	} {
		challengeRepo, badgerRepo, messageRepo, user := activeFixture()
		challengeRepo.challenges["ch-1"].Status = status
		uc := newChatUseCase(challengeRepo, badgerRepo, messageRepo, nil)

		result, err := uc.SendMessage(context.Background(), user, "ch-1", "hello", "", nil)
		require.NoError(t, err, status)
		assert.Nil(t, result.Reply, status)
		assert.Len(t, messageRepo.created, 1, status)
	}
}

func TestSendMessageNoReplyWithoutBadger(t *testing.T) {
	challengeRepo, badgerRepo, messageRepo, user := activeFixture()
	delete(badgerRepo.byChallenge, "ch-1")
	uc := newChatUseCase(challengeRepo, badgerRepo, messageRepo, nil)

	result, err := uc.SendMessage(context.Background(), user, "ch-1", "hello", "", nil)
	require.NoError(t, err)
	assert.Nil(t, result.Reply)
}

func TestSendMessageAccessDenied(t *testing.T) {
	challengeRepo, badgerRepo, messageRepo, _ := activeFixture()
	uc := newChatUseCase(challengeRepo, badgerRepo, messageRepo, nil)

	stranger := &domain.User{ID: "stranger-1"}
	_, err := uc.SendMessage(context.Background(), stranger, "ch-1", "hello", "", nil)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	assert.Empty(t, messageRepo.created)
}

func TestSendMessageUnknownChallenge(t *testing.T) {
	challengeRepo, badgerRepo, messageRepo, user := activeFixture()
	uc := newChatUseCase(challengeRepo, badgerRepo, messageRepo, nil)

	_, err := uc.SendMessage(context.Background(), user, "ch-missing", "hello", "", nil)
	assert.ErrorIs(t, err, domain.ErrChallengeNotFound)
}

func TestGenerateReplyUsesGeneratedText(t *testing.T) {
	challengeRepo, badgerRepo, messageRepo, user := activeFixture()
	gen := &fakeGenerator{reply: "You've got this, Sam!"}
	uc := newChatUseCase(challengeRepo, badgerRepo, messageRepo, gen)

	result, err := uc.SendMessage(context.Background(), user, "ch-1", "I'm tired", "", nil)
	require.NoError(t, err)
	require.NotNil(t, result.Reply)

	reply, err := uc.GenerateReply(context.Background(), result.Reply, "I'm tired")
	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "You've got this, Sam!", reply.Content)
	assert.True(t, reply.Sender.IsBadger())
	assert.Equal(t, "badger-1", reply.Sender.ID)
}

func TestGenerateReplyFallsBackOnError(t *testing.T) {
	challengeRepo, badgerRepo, messageRepo, user := activeFixture()
	gen := &fakeGenerator{err: errors.New("backend down")}
	uc := newChatUseCase(challengeRepo, badgerRepo, messageRepo, gen)

	result, err := uc.SendMessage(context.Background(), user, "ch-1", "hi", "", nil)
	require.NoError(t, err)

	reply, err := uc.GenerateReply(context.Background(), result.Reply, "hi")
	require.NoError(t, err)
	assert.Contains(t, result.Reply.Profile.Phrases[personality.CategoryMotivation], reply.Content)
}

func TestGenerateReplyFallsBackWithoutGenerator(t *testing.T) {
	challengeRepo, badgerRepo, messageRepo, user := activeFixture()
	uc := newChatUseCase(challengeRepo, badgerRepo, messageRepo, nil)

	result, err := uc.SendMessage(context.Background(), user, "ch-1", "hi", "", nil)
	require.NoError(t, err)

	reply, err := uc.GenerateReply(context.Background(), result.Reply, "hi")
	require.NoError(t, err)
	assert.Contains(t, result.Reply.Profile.Phrases[personality.CategoryMotivation], reply.Content)
}

func TestPokeDeliversCheckIn(t *testing.T) {
	challengeRepo, badgerRepo, messageRepo, _ := activeFixture()
	uc := newChatUseCase(challengeRepo, badgerRepo, messageRepo, nil)

	msg, err := uc.Poke(context.Background(), "recipient-1", "ch-1")
	require.NoError(t, err)
	require.NotNil(t, msg)

	profile, err := personality.Resolve(personality.Relentless)
	require.NoError(t, err)
	assert.Contains(t, profile.Phrases[personality.CategoryCheckIn], msg.Content)
	assert.True(t, msg.Sender.IsBadger())
}

func TestPokeGuardsAreSilent(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeChallengeRepo, *fakeBadgerRepo)
		user  string
	}{
		{
			name:  "unknown challenge is ignored",
			setup: func(cr *fakeChallengeRepo, br *fakeBadgerRepo) { delete(cr.challenges, "ch-1") },
			user:  "recipient-1",
		},
		{
			name:  "sender cannot poke",
			setup: func(cr *fakeChallengeRepo, br *fakeBadgerRepo) {},
			user:  "sender-1",
		},
		{
			name: "inactive challenge is ignored",
			setup: func(cr *fakeChallengeRepo, br *fakeBadgerRepo) {
				cr.challenges["ch-1"].Status = domain.ChallengePending
			},
			user: "recipient-1",
		},
		{
			name:  "missing badger is ignored",
			setup: func(cr *fakeChallengeRepo, br *fakeBadgerRepo) { delete(br.byChallenge, "ch-1") },
			user:  "recipient-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			challengeRepo, badgerRepo, messageRepo, _ := activeFixture()
			tt.setup(challengeRepo, badgerRepo)
			uc := newChatUseCase(challengeRepo, badgerRepo, messageRepo, nil)

			msg, err := uc.Poke(context.Background(), tt.user, "ch-1")
			assert.NoError(t, err)
			assert.Nil(t, msg)
			assert.Empty(t, messageRepo.created)
		})
	}
}

func TestHistoryAccessChecked(t *testing.T) {
	challengeRepo, badgerRepo, messageRepo, user := activeFixture()
	uc := newChatUseCase(challengeRepo, badgerRepo, messageRepo, nil)

	_, err := uc.SendMessage(context.Background(), user, "ch-1", "first", "", nil)
	require.NoError(t, err)

	history, err := uc.History(context.Background(), user.ID, "ch-1", 0)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	_, err = uc.History(context.Background(), "stranger-1", "ch-1", 0)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}
