package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/badgerly/badgerly-backend/internal/personality"
	"github.com/badgerly/badgerly-backend/internal/repository"
)

// MaxActiveBadgers caps how many active badgers one owner may keep.
const MaxActiveBadgers = 5

type BadgerUseCase struct {
	badgerRepo    repository.BadgerRepository
	challengeRepo repository.ChallengeRepository
}

func NewBadgerUseCase(badgerRepo repository.BadgerRepository, challengeRepo repository.ChallengeRepository) *BadgerUseCase {
	return &BadgerUseCase{
		badgerRepo:    badgerRepo,
		challengeRepo: challengeRepo,
	}
}

// CreateRequest represents a new badger
type CreateRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=50"`
	Personality string `json:"personality" binding:"required,oneof=RELENTLESS CHEERLEADER COACH BUDDY COMPETITOR"`
}

// BadgerResponse is a badger enriched with its personality presentation
type BadgerResponse struct {
	*domain.Badger
	PersonalityInfo personality.Description `json:"personality_info"`
}

func enrich(b *domain.Badger) (*BadgerResponse, error) {
	profile, err := personality.Resolve(b.Personality)
	if err != nil {
		return nil, err
	}
	return &BadgerResponse{Badger: b, PersonalityInfo: personality.Describe(profile)}, nil
}

// Create creates a new honey badger for the owner
func (uc *BadgerUseCase) Create(ctx context.Context, ownerID string, req *CreateRequest) (*BadgerResponse, error) {
	profile, err := personality.Resolve(personality.Type(req.Personality))
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	count, err := uc.badgerRepo.CountActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count badgers: %w", err)
	}
	if count >= MaxActiveBadgers {
		return nil, domain.ErrBadgerLimit
	}

	badger := &domain.Badger{
		OwnerID:     ownerID,
		Name:        req.Name,
		Personality: profile.Type,
		Avatar:      profile.Avatar,
		Level:       1,
		IsActive:    true,
	}
	if err := uc.badgerRepo.Create(ctx, badger); err != nil {
		return nil, fmt.Errorf("failed to create badger: %w", err)
	}

	return enrich(badger)
}

// List returns the owner's active badgers
func (uc *BadgerUseCase) List(ctx context.Context, ownerID string) ([]*BadgerResponse, error) {
	badgers, err := uc.badgerRepo.GetByOwner(ctx, ownerID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list badgers: %w", err)
	}

	responses := make([]*BadgerResponse, 0, len(badgers))
	for _, b := range badgers {
		resp, err := enrich(b)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Get returns one badger, owner-checked
func (uc *BadgerUseCase) Get(ctx context.Context, ownerID, badgerID string) (*BadgerResponse, error) {
	badger, err := uc.badgerRepo.GetByID(ctx, badgerID)
	if err != nil {
		return nil, err
	}
	if badger.OwnerID != ownerID {
		return nil, domain.ErrBadgerNotFound
	}
	return enrich(badger)
}

// Rename updates a badger's display name
func (uc *BadgerUseCase) Rename(ctx context.Context, ownerID, badgerID, name string) (*BadgerResponse, error) {
	badger, err := uc.badgerRepo.GetByID(ctx, badgerID)
	if err != nil {
		return nil, err
	}
	if badger.OwnerID != ownerID {
		return nil, domain.ErrBadgerNotFound
	}

	if err := uc.badgerRepo.Rename(ctx, badgerID, name); err != nil {
		return nil, fmt.Errorf("failed to rename badger: %w", err)
	}
	badger.Name = name
	return enrich(badger)
}

// Retire soft-deletes a badger. Rejected while the badger's challenge is
// still in a non-terminal state.
func (uc *BadgerUseCase) Retire(ctx context.Context, ownerID, badgerID string) error {
	badger, err := uc.badgerRepo.GetByID(ctx, badgerID)
	if err != nil {
		return err
	}
	if badger.OwnerID != ownerID {
		return domain.ErrBadgerNotFound
	}

	if badger.ChallengeID != nil {
		challenge, err := uc.challengeRepo.GetByID(ctx, *badger.ChallengeID)
		if err != nil && !errors.Is(err, domain.ErrChallengeNotFound) {
			return fmt.Errorf("failed to get challenge: %w", err)
		}
		if challenge != nil && !challenge.Status.IsTerminal() {
			return domain.ErrBadgerAssigned
		}
	}

	return uc.badgerRepo.Retire(ctx, badgerID)
}

// PersonalityTypes lists the available personality variants
func (uc *BadgerUseCase) PersonalityTypes() []personality.Description {
	types := personality.Types()
	descriptions := make([]personality.Description, 0, len(types))
	for _, t := range types {
		profile, err := personality.Resolve(t)
		if err != nil {
			continue
		}
		descriptions = append(descriptions, personality.Describe(profile))
	}
	return descriptions
}
