package domain

import (
	"time"

	"github.com/badgerly/badgerly-backend/internal/personality"
)

// Badger is a user-owned honey badger companion. At most one challenge may
// hold a badger at a time: ChallengeID is set on assignment and cleared on
// release (cancellation). Retirement is a soft delete via IsActive.
type Badger struct {
	ID                   string           `json:"id" db:"id"`
	OwnerID              string           `json:"owner_id" db:"owner_id"`
	Name                 string           `json:"name" db:"name"`
	Personality          personality.Type `json:"personality" db:"personality"`
	Avatar               string           `json:"avatar" db:"avatar"`
	Level                int              `json:"level" db:"level"`
	Experience           int              `json:"experience" db:"experience"`
	SuccessfulChallenges int              `json:"successful_challenges" db:"successful_challenges"`
	ChallengeID          *string          `json:"challenge_id" db:"challenge_id"`
	IsActive             bool             `json:"is_active" db:"is_active"`
	CreatedAt            time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at" db:"updated_at"`
}

// ExperiencePerChallenge is awarded to the assigned badger when a challenge
// completes.
const ExperiencePerChallenge = 100

// LevelForExperience derives a badger's level from accumulated experience.
func LevelForExperience(experience int) int {
	return 1 + experience/500
}

func (b *Badger) IsAvailable() bool {
	return b.IsActive && b.ChallengeID == nil
}
