package badger

import (
	"context"
	"testing"
	"time"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/badgerly/badgerly-backend/internal/personality"
	"github.com/badgerly/badgerly-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBadgerRepo struct {
	badgers map[string]*domain.Badger
	retired []string
	nextID  int
}

func newFakeBadgerRepo() *fakeBadgerRepo {
	return &fakeBadgerRepo{badgers: make(map[string]*domain.Badger)}
}

func (r *fakeBadgerRepo) Create(ctx context.Context, b *domain.Badger) error {
	r.nextID++
	b.ID = "badger-created"
	r.badgers[b.ID] = b
	return nil
}

func (r *fakeBadgerRepo) GetByID(ctx context.Context, id string) (*domain.Badger, error) {
	b, ok := r.badgers[id]
	if !ok {
		return nil, domain.ErrBadgerNotFound
	}
	return b, nil
}

func (r *fakeBadgerRepo) GetByChallenge(ctx context.Context, challengeID string) (*domain.Badger, error) {
	return nil, domain.ErrBadgerNotFound
}

func (r *fakeBadgerRepo) GetByOwner(ctx context.Context, ownerID string, activeOnly bool) ([]*domain.Badger, error) {
	var out []*domain.Badger
	for _, b := range r.badgers {
		if b.OwnerID == ownerID && (!activeOnly || b.IsActive) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBadgerRepo) CountActiveByOwner(ctx context.Context, ownerID string) (int, error) {
	n := 0
	for _, b := range r.badgers {
		if b.OwnerID == ownerID && b.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *fakeBadgerRepo) Rename(ctx context.Context, id, name string) error        { return nil }
func (r *fakeBadgerRepo) Assign(ctx context.Context, id, challengeID string) error { return nil }
func (r *fakeBadgerRepo) Release(ctx context.Context, id string) error             { return nil }
func (r *fakeBadgerRepo) AwardCompletion(ctx context.Context, id string, e int) error {
	return nil
}

func (r *fakeBadgerRepo) Retire(ctx context.Context, id string) error {
	if b, ok := r.badgers[id]; ok {
		b.IsActive = false
	}
	r.retired = append(r.retired, id)
	return nil
}

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

func newUseCase() (*BadgerUseCase, *fakeBadgerRepo, *fakeChallengeRepo) {
	badgerRepo := newFakeBadgerRepo()
	challengeRepo := &fakeChallengeRepo{challenges: make(map[string]*domain.Challenge)}
	return NewBadgerUseCase(badgerRepo, challengeRepo), badgerRepo, challengeRepo
}

func TestCreateBadger(t *testing.T) {
	uc, _, _ := newUseCase()

	result, err := uc.Create(context.Background(), "owner-1", &CreateRequest{
		Name:        "Buzz",
		Personality: "COACH",
	})
	require.NoError(t, err)
	assert.Equal(t, "Buzz", result.Name)
	assert.Equal(t, personality.Coach, result.Personality)
	assert.Equal(t, 1, result.Level)
	assert.True(t, result.IsActive)
	assert.Equal(t, personality.Coach, result.PersonalityInfo.Type)
	assert.NotEmpty(t, result.PersonalityInfo.Name)
}

func TestCreateBadgerUnknownPersonality(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.Create(context.Background(), "owner-1", &CreateRequest{
		Name:        "Buzz",
		Personality: "MILD_MANNERED",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateBadgerEnforcesLimit(t *testing.T) {
	uc, repo, _ := newUseCase()
	for i := 0; i < MaxActiveBadgers; i++ {
		repo.badgers[string(rune('a'+i))] = &domain.Badger{
			OwnerID: "owner-1", Personality: personality.Buddy, IsActive: true,
		}
	}

	_, err := uc.Create(context.Background(), "owner-1", &CreateRequest{
		Name:        "One too many",
		Personality: "BUDDY",
	})
	assert.ErrorIs(t, err, domain.ErrBadgerLimit)

	// retired badgers do not count toward the cap
	for _, b := range repo.badgers {
		b.IsActive = false
		break
	}
	_, err = uc.Create(context.Background(), "owner-1", &CreateRequest{
		Name:        "Fits now",
		Personality: "BUDDY",
	})
	assert.NoError(t, err)
}

func TestGetOwnerChecked(t *testing.T) {
	uc, repo, _ := newUseCase()
	repo.badgers["badger-1"] = &domain.Badger{
		ID: "badger-1", OwnerID: "owner-1", Personality: personality.Buddy, IsActive: true,
	}

	_, err := uc.Get(context.Background(), "owner-1", "badger-1")
	assert.NoError(t, err)

	_, err = uc.Get(context.Background(), "owner-2", "badger-1")
	assert.ErrorIs(t, err, domain.ErrBadgerNotFound)
}

func TestRetire(t *testing.T) {
	uc, repo, _ := newUseCase()
	repo.badgers["badger-1"] = &domain.Badger{
		ID: "badger-1", OwnerID: "owner-1", Personality: personality.Buddy, IsActive: true,
	}

	err := uc.Retire(context.Background(), "owner-1", "badger-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"badger-1"}, repo.retired)
	assert.False(t, repo.badgers["badger-1"].IsActive)
}

func TestRetireBlockedByLiveChallenge(t *testing.T) {
	uc, repo, challenges := newUseCase()
	cid := "ch-1"
	repo.badgers["badger-1"] = &domain.Badger{
		ID: "badger-1", OwnerID: "owner-1", Personality: personality.Buddy,
		IsActive: true, ChallengeID: &cid,
	}
	challenges.challenges["ch-1"] = &domain.Challenge{ID: "ch-1", Status: domain.ChallengeActive}

	err := uc.Retire(context.Background(), "owner-1", "badger-1")
	assert.ErrorIs(t, err, domain.ErrBadgerAssigned)

	// a finished challenge no longer pins the badger
	challenges.challenges["ch-1"].Status = domain.ChallengeCompleted
	err = uc.Retire(context.Background(), "owner-1", "badger-1")
	assert.NoError(t, err)
}

func TestPersonalityTypesCoversCatalog(t *testing.T) {
	uc, _, _ := newUseCase()

	descriptions := uc.PersonalityTypes()
	require.Len(t, descriptions, len(personality.Types()))
	for i, typ := range personality.Types() {
		assert.Equal(t, typ, descriptions[i].Type)
	}
}
