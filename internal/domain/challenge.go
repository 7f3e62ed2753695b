package domain

import "time"

type ChallengeStatus string

const (
	ChallengePending   ChallengeStatus = "PENDING"
	ChallengeActive    ChallengeStatus = "ACTIVE"
	ChallengeCompleted ChallengeStatus = "COMPLETED"
	ChallengeCancelled ChallengeStatus = "CANCELLED"
	ChallengeFailed    ChallengeStatus = "FAILED"
)

// IsTerminal reports whether the status is a sink state.
func (s ChallengeStatus) IsTerminal() bool {
	switch s {
	case ChallengeCompleted, ChallengeCancelled, ChallengeFailed:
		return true
	}
	return false
}

type ChallengeType string

const (
	ChallengeFitness  ChallengeType = "FITNESS"
	ChallengeHabit    ChallengeType = "HABIT"
	ChallengeLearning ChallengeType = "LEARNING"
	ChallengeCreative ChallengeType = "CREATIVE"
	ChallengeSocial   ChallengeType = "SOCIAL"
	ChallengeCustom   ChallengeType = "CUSTOM"
)

type VerificationMethod string

const (
	VerifyPhoto          VerificationMethod = "PHOTO"
	VerifyVideo          VerificationMethod = "VIDEO"
	VerifyFitnessTracker VerificationMethod = "FITNESS_TRACKER"
	VerifyLocation       VerificationMethod = "LOCATION"
	VerifyManual         VerificationMethod = "MANUAL"
	VerifyTimeBased      VerificationMethod = "TIME_BASED"
	VerifyCheckin        VerificationMethod = "CHECKIN"
)

type RewardType string

const (
	RewardMoney    RewardType = "MONEY"
	RewardGiftCard RewardType = "GIFT_CARD"
	RewardMessage  RewardType = "MESSAGE"
	RewardPhoto    RewardType = "PHOTO"
	RewardVideo    RewardType = "VIDEO"
	RewardCustom   RewardType = "CUSTOM"
)

type Challenge struct {
	ID                    string             `json:"id" db:"id"`
	Title                 string             `json:"title" db:"title"`
	Description           string             `json:"description" db:"description"`
	Type                  ChallengeType      `json:"type" db:"type"`
	Difficulty            string             `json:"difficulty" db:"difficulty"`
	Deadline              *time.Time         `json:"deadline" db:"deadline"`
	VerificationMethod    VerificationMethod `json:"verification_method" db:"verification_method"`
	RewardType            RewardType         `json:"reward_type" db:"reward_type"`
	RewardAmount          *float64           `json:"reward_amount" db:"reward_amount"`
	RewardMessage         *string            `json:"reward_message" db:"reward_message"`
	RewardMedia           []string           `json:"reward_media" db:"reward_media"`
	SenderID              string             `json:"sender_id" db:"sender_id"`
	RecipientID           string             `json:"recipient_id" db:"recipient_id"`
	Status                ChallengeStatus    `json:"status" db:"status"`
	StripePaymentIntentID *string            `json:"stripe_payment_intent_id" db:"stripe_payment_intent_id"`
	CreatedAt             time.Time          `json:"created_at" db:"created_at"`
	StartedAt             *time.Time         `json:"started_at" db:"started_at"`
	CompletedAt           *time.Time         `json:"completed_at" db:"completed_at"`
}

// HasParticipant reports whether the user is the challenge's sender or
// recipient. Room access and message sending are restricted to participants.
func (c *Challenge) HasParticipant(userID string) bool {
	return c.SenderID == userID || c.RecipientID == userID
}

func (c *Challenge) OtherParticipant(userID string) (string, bool) {
	if c.SenderID == userID {
		return c.RecipientID, true
	}
	if c.RecipientID == userID {
		return c.SenderID, true
	}
	return "", false
}
