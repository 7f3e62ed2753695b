package auth

import (
	"context"
	"testing"
	"time"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if _, exists := r.byEmail[user.Email]; exists {
		return domain.ErrEmailTaken
	}
	r.nextID++
	user.ID = "user-1"
	user.CreatedAt = time.Now()
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *domain.User) error { return nil }

const testSecret = "0123456789abcdef0123456789abcdef"

func registerReq() *RegisterRequest {
	return &RegisterRequest{
		Email:     "Sam@Example.com",
		Username:  "sam42",
		FirstName: "Sam",
		LastName:  "Rivera",
		Password:  "correct horse battery",
	}
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testSecret, 1)

	resp, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "sam@example.com", resp.User.Email)
	assert.True(t, resp.ExpiresAt.After(time.Now()))

	user, err := uc.VerifyToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testSecret, 1)

	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testSecret, 1)

	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	resp, err := uc.Login(context.Background(), &LoginRequest{
		Email:    "sam@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = uc.Login(context.Background(), &LoginRequest{
		Email:    "sam@example.com",
		Password: "wrong password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	uc := NewAuthUseCase(newFakeUserRepo(), testSecret, 1)

	_, err := uc.VerifyToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testSecret, 1)

	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	forgedString, err := forged.SignedString([]byte("another-secret-entirely-32-chars"))
	require.NoError(t, err)

	_, err = uc.VerifyToken(context.Background(), forgedString)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testSecret, 1)

	_, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = uc.VerifyToken(context.Background(), expiredString)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyTokenRejectsDeletedUser(t *testing.T) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, testSecret, 1)

	resp, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)

	delete(repo.byID, resp.User.ID)

	_, err = uc.VerifyToken(context.Background(), resp.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
