package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/badgerly/badgerly-backend/internal/infrastructure/payments"
	"github.com/badgerly/badgerly-backend/internal/personality"
	"github.com/badgerly/badgerly-backend/internal/pkg/logger"
	"github.com/badgerly/badgerly-backend/internal/repository"
)

// PaymentClient is the payment-processor collaborator. Nil means monetary
// rewards cannot be set up.
type PaymentClient interface {
	CreateRewardIntent(amount float64, currency, senderID, recipientID, challengeID string) (*payments.PaymentIntent, error)
	ConfirmIntent(paymentIntentID string) (*payments.PaymentIntent, error)
}

var ErrPaymentSetupFailed = errors.New("payment setup failed")

type ChallengeUseCase struct {
	challengeRepo repository.ChallengeRepository
	badgerRepo    repository.BadgerRepository
	messageRepo   repository.MessageRepository
	progressRepo  repository.ProgressRepository
	userRepo      repository.UserRepository
	paymentClient PaymentClient
	log           *logger.Logger
}

func NewChallengeUseCase(
	challengeRepo repository.ChallengeRepository,
	badgerRepo repository.BadgerRepository,
	messageRepo repository.MessageRepository,
	progressRepo repository.ProgressRepository,
	userRepo repository.UserRepository,
	paymentClient PaymentClient,
	log *logger.Logger,
) *ChallengeUseCase {
	return &ChallengeUseCase{
		challengeRepo: challengeRepo,
		badgerRepo:    badgerRepo,
		messageRepo:   messageRepo,
		progressRepo:  progressRepo,
		userRepo:      userRepo,
		paymentClient: paymentClient,
		log:           log,
	}
}

// CreateRequest represents a new challenge
type CreateRequest struct {
	Title              string     `json:"title" binding:"required,min=1,max=100"`
	Description        string     `json:"description" binding:"required,min=1,max=1000"`
	Type               string     `json:"type" binding:"required,oneof=FITNESS HABIT LEARNING CREATIVE SOCIAL CUSTOM"`
	Difficulty         string     `json:"difficulty" binding:"omitempty,oneof=EASY MEDIUM HARD EXTREME"`
	Deadline           *time.Time `json:"deadline"`
	VerificationMethod string     `json:"verification_method" binding:"required,oneof=PHOTO VIDEO FITNESS_TRACKER LOCATION MANUAL TIME_BASED CHECKIN"`
	RewardType         string     `json:"reward_type" binding:"required,oneof=MONEY GIFT_CARD MESSAGE PHOTO VIDEO CUSTOM"`
	RewardAmount       *float64   `json:"reward_amount" binding:"omitempty,gte=0"`
	RewardMessage      *string    `json:"reward_message" binding:"omitempty,max=500"`
	RewardMedia        []string   `json:"reward_media"`
	RecipientEmail     string     `json:"recipient_email" binding:"required,email"`
	BadgerID           string     `json:"honey_badger_id" binding:"required"`
}

// CreateResponse carries the created challenge plus the payment client
// secret when a monetary reward was escrowed.
type CreateResponse struct {
	Challenge           *domain.Challenge `json:"challenge"`
	Badger              *domain.Badger    `json:"honey_badger"`
	PaymentClientSecret *string           `json:"payment_client_secret,omitempty"`
}

// Create builds a challenge, escrows a monetary reward, assigns the badger
// and posts its greeting.
func (uc *ChallengeUseCase) Create(ctx context.Context, senderID string, req *CreateRequest) (*CreateResponse, error) {
	recipient, err := uc.userRepo.GetByEmail(ctx, req.RecipientEmail)
	if err != nil {
		return nil, err
	}

	badger, err := uc.badgerRepo.GetByID(ctx, req.BadgerID)
	if err != nil {
		return nil, err
	}
	if badger.OwnerID != senderID || !badger.IsAvailable() {
		return nil, domain.ErrBadgerUnavailable
	}

	profile, err := personality.Resolve(badger.Personality)
	if err != nil {
		return nil, fmt.Errorf("badger has unknown personality: %w", err)
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "MEDIUM"
	}

	challenge := &domain.Challenge{
		Title:              req.Title,
		Description:        req.Description,
		Type:               domain.ChallengeType(req.Type),
		Difficulty:         difficulty,
		Deadline:           req.Deadline,
		VerificationMethod: domain.VerificationMethod(req.VerificationMethod),
		RewardType:         domain.RewardType(req.RewardType),
		RewardAmount:       req.RewardAmount,
		RewardMessage:      req.RewardMessage,
		RewardMedia:        req.RewardMedia,
		SenderID:           senderID,
		RecipientID:        recipient.ID,
		Status:             domain.ChallengePending,
	}

	// Monetary rewards are escrowed before the challenge exists; a payment
	// failure aborts creation entirely.
	var clientSecret *string
	if challenge.RewardType == domain.RewardMoney && req.RewardAmount != nil && *req.RewardAmount > 0 {
		if uc.paymentClient == nil {
			return nil, ErrPaymentSetupFailed
		}
		intent, err := uc.paymentClient.CreateRewardIntent(*req.RewardAmount, "usd", senderID, recipient.ID, "")
		if err != nil {
			uc.log.Error("payment intent creation failed", "sender_id", senderID, "error", err)
			return nil, ErrPaymentSetupFailed
		}
		challenge.StripePaymentIntentID = &intent.ID
		clientSecret = &intent.ClientSecret
	}

	if err := uc.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	if err := uc.badgerRepo.Assign(ctx, badger.ID, challenge.ID); err != nil {
		return nil, err
	}
	badger.ChallengeID = &challenge.ID

	greeting := &domain.ChatMessage{
		ChallengeID: challenge.ID,
		Content:     personality.PickPhrase(profile, personality.CategoryGreeting),
		Type:        domain.MessageText,
		Sender:      domain.BadgerSender(badger.ID),
	}
	if err := uc.messageRepo.Create(ctx, greeting); err != nil {
		uc.log.Error("failed to persist greeting message", "challenge_id", challenge.ID, "error", err)
	}

	uc.log.Info("challenge created", "challenge_id", challenge.ID, "sender_id", senderID)

	return &CreateResponse{
		Challenge:           challenge,
		Badger:              badger,
		PaymentClientSecret: clientSecret,
	}, nil
}

// ListFilter mirrors the query parameters of the list endpoint
type ListFilter struct {
	Status string
	Type   string
	Role   string
}

// List returns the user's challenges, newest first
func (uc *ChallengeUseCase) List(ctx context.Context, userID string, filter ListFilter) ([]*domain.Challenge, error) {
	return uc.challengeRepo.ListForUser(ctx, userID, repository.ChallengeFilter{
		Status: domain.ChallengeStatus(filter.Status),
		Type:   domain.ChallengeType(filter.Type),
		Role:   filter.Role,
	})
}

// Detail is a challenge with its badger, recent progress and chat history
type Detail struct {
	Challenge       *domain.Challenge        `json:"challenge"`
	Badger          *domain.Badger           `json:"honey_badger,omitempty"`
	ProgressUpdates []*domain.ProgressUpdate `json:"progress_updates"`
	Messages        []*domain.ChatMessage    `json:"chat_messages"`
}

// Get returns one challenge with its associations, access-checked
func (uc *ChallengeUseCase) Get(ctx context.Context, userID, challengeID string) (*Detail, error) {
	challenge, err := uc.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if !challenge.HasParticipant(userID) {
		return nil, domain.ErrChallengeNotFound
	}

	detail := &Detail{Challenge: challenge}

	badger, err := uc.badgerRepo.GetByChallenge(ctx, challengeID)
	if err == nil {
		detail.Badger = badger
	} else if !errors.Is(err, domain.ErrBadgerNotFound) {
		return nil, err
	}

	if detail.ProgressUpdates, err = uc.progressRepo.ListByChallenge(ctx, challengeID, 20); err != nil {
		return nil, err
	}
	if detail.Messages, err = uc.messageRepo.ListByChallenge(ctx, challengeID, 0); err != nil {
		return nil, err
	}
	return detail, nil
}

// Accept moves a PENDING challenge to ACTIVE. Recipient only.
func (uc *ChallengeUseCase) Accept(ctx context.Context, userID, challengeID string) (*domain.Challenge, error) {
	challenge, err := uc.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.RecipientID != userID {
		return nil, domain.ErrChallengeNotFound
	}
	if challenge.Status != domain.ChallengePending {
		return nil, domain.ErrInvalidState
	}

	now := time.Now()
	if err := uc.challengeRepo.UpdateStatus(ctx, challengeID, domain.ChallengeActive, &now, nil); err != nil {
		return nil, fmt.Errorf("failed to accept challenge: %w", err)
	}
	challenge.Status = domain.ChallengeActive
	challenge.StartedAt = &now

	if badger, err := uc.badgerRepo.GetByChallenge(ctx, challengeID); err == nil {
		if profile, perr := personality.Resolve(badger.Personality); perr == nil {
			msg := &domain.ChatMessage{
				ChallengeID: challengeID,
				Content:     "Great! Let's get started! " + personality.PickPhrase(profile, personality.CategoryMotivation),
				Type:        domain.MessageSystem,
				Sender:      domain.BadgerSender(badger.ID),
			}
			if err := uc.messageRepo.Create(ctx, msg); err != nil {
				uc.log.Error("failed to persist acceptance message", "challenge_id", challengeID, "error", err)
			}
		}
	}

	uc.log.Info("challenge accepted", "challenge_id", challengeID, "user_id", userID)
	return challenge, nil
}

// ProgressRequest represents a recipient progress submission. Metadata is
// free-form JSON passed through as-is.
type ProgressRequest struct {
	Content         string          `json:"content"`
	MediaURLs       []string        `json:"media_urls"`
	Metadata        json.RawMessage `json:"metadata"`
	ProgressPercent int             `json:"progress_percent" binding:"gte=0,lte=100"`
}

// ProgressResult is what a progress submission produced
type ProgressResult struct {
	Update        *domain.ProgressUpdate `json:"progress_update"`
	BadgerMessage *domain.ChatMessage    `json:"badger_message,omitempty"`
	Completed     bool                   `json:"completed"`
}

// SubmitProgress records recipient progress on an ACTIVE challenge. Reaching
// 100% completes the challenge and awards the badger; the badger stays
// assigned until an explicit cancellation.
func (uc *ChallengeUseCase) SubmitProgress(ctx context.Context, userID, challengeID string, req *ProgressRequest) (*ProgressResult, error) {
	challenge, err := uc.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.RecipientID != userID {
		return nil, domain.ErrChallengeNotFound
	}
	if challenge.Status != domain.ChallengeActive {
		return nil, domain.ErrInvalidState
	}

	content := req.Content
	if content == "" {
		content = "Progress update submitted"
	}

	update := &domain.ProgressUpdate{
		ChallengeID:     challengeID,
		UpdateType:      updateTypeFor(challenge.VerificationMethod),
		Content:         content,
		MediaURLs:       req.MediaURLs,
		Metadata:        req.Metadata,
		ProgressPercent: req.ProgressPercent,
	}
	if err := uc.progressRepo.Create(ctx, update); err != nil {
		return nil, fmt.Errorf("failed to persist progress update: %w", err)
	}

	result := &ProgressResult{Update: update}

	badger, badgerErr := uc.badgerRepo.GetByChallenge(ctx, challengeID)
	if badgerErr == nil {
		if profile, perr := personality.Resolve(badger.Personality); perr == nil {
			msg := &domain.ChatMessage{
				ChallengeID: challengeID,
				Content:     progressPhrase(profile, req.ProgressPercent),
				Type:        domain.MessageText,
				Sender:      domain.BadgerSender(badger.ID),
			}
			if err := uc.messageRepo.Create(ctx, msg); err != nil {
				uc.log.Error("failed to persist progress response", "challenge_id", challengeID, "error", err)
			} else {
				result.BadgerMessage = msg
			}
		}
	}

	if req.ProgressPercent >= 100 {
		now := time.Now()
		if err := uc.challengeRepo.UpdateStatus(ctx, challengeID, domain.ChallengeCompleted, nil, &now); err != nil {
			return nil, fmt.Errorf("failed to complete challenge: %w", err)
		}
		if badgerErr == nil {
			if err := uc.badgerRepo.AwardCompletion(ctx, badger.ID, domain.ExperiencePerChallenge); err != nil {
				uc.log.Error("failed to award badger", "badger_id", badger.ID, "error", err)
			}
		}
		result.Completed = true
		uc.log.Info("challenge completed", "challenge_id", challengeID)
	}

	return result, nil
}

// Cancel moves a PENDING or ACTIVE challenge to CANCELLED and releases its
// badger. Sender only. The badger posts nothing.
func (uc *ChallengeUseCase) Cancel(ctx context.Context, userID, challengeID string) error {
	challenge, err := uc.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return err
	}
	if challenge.SenderID != userID {
		return domain.ErrChallengeNotFound
	}
	if challenge.Status != domain.ChallengePending && challenge.Status != domain.ChallengeActive {
		return domain.ErrInvalidState
	}

	if err := uc.challengeRepo.UpdateStatus(ctx, challengeID, domain.ChallengeCancelled, nil, nil); err != nil {
		return fmt.Errorf("failed to cancel challenge: %w", err)
	}

	if badger, err := uc.badgerRepo.GetByChallenge(ctx, challengeID); err == nil {
		if err := uc.badgerRepo.Release(ctx, badger.ID); err != nil {
			uc.log.Error("failed to release badger", "badger_id", badger.ID, "error", err)
		}
	}

	uc.log.Info("challenge cancelled", "challenge_id", challengeID, "user_id", userID)
	return nil
}

// CreatePaymentIntent sets up (or replaces) the escrow intent for a monetary
// reward, for senders who deferred payment past challenge creation.
func (uc *ChallengeUseCase) CreatePaymentIntent(ctx context.Context, userID, challengeID string) (*payments.PaymentIntent, error) {
	challenge, err := uc.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge.SenderID != userID {
		return nil, domain.ErrChallengeNotFound
	}
	if challenge.RewardType != domain.RewardMoney || challenge.RewardAmount == nil || *challenge.RewardAmount <= 0 {
		return nil, domain.ErrInvalidState
	}
	if challenge.Status.IsTerminal() {
		return nil, domain.ErrInvalidState
	}

	if uc.paymentClient == nil {
		return nil, ErrPaymentSetupFailed
	}
	intent, err := uc.paymentClient.CreateRewardIntent(*challenge.RewardAmount, "usd", challenge.SenderID, challenge.RecipientID, challengeID)
	if err != nil {
		uc.log.Error("payment intent creation failed", "challenge_id", challengeID, "error", err)
		return nil, ErrPaymentSetupFailed
	}

	if err := uc.challengeRepo.SetPaymentIntent(ctx, challengeID, intent.ID); err != nil {
		return nil, fmt.Errorf("failed to store payment intent: %w", err)
	}
	challenge.StripePaymentIntentID = &intent.ID
	return intent, nil
}

// ConfirmPayment confirms the reward intent for a completed challenge.
func (uc *ChallengeUseCase) ConfirmPayment(ctx context.Context, userID, challengeID, paymentIntentID string) (string, error) {
	challenge, err := uc.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return "", err
	}
	if challenge.SenderID != userID ||
		challenge.Status != domain.ChallengeCompleted ||
		challenge.StripePaymentIntentID == nil ||
		*challenge.StripePaymentIntentID != paymentIntentID {
		return "", domain.ErrChallengeNotFound
	}

	if uc.paymentClient == nil {
		return "", ErrPaymentSetupFailed
	}
	intent, err := uc.paymentClient.ConfirmIntent(paymentIntentID)
	if err != nil {
		uc.log.Error("payment confirmation failed", "challenge_id", challengeID, "error", err)
		return "", ErrPaymentSetupFailed
	}
	return intent.Status, nil
}

// PaymentHistory lists the sender's challenges that carry a payment intent.
func (uc *ChallengeUseCase) PaymentHistory(ctx context.Context, userID string) ([]*domain.Challenge, error) {
	return uc.challengeRepo.ListWithPaymentIntent(ctx, userID)
}

func updateTypeFor(method domain.VerificationMethod) domain.ProgressUpdateType {
	switch method {
	case domain.VerifyPhoto:
		return domain.ProgressPhotoVerification
	case domain.VerifyVideo:
		return domain.ProgressVideoVerification
	default:
		return domain.ProgressGeneral
	}
}

// progressPhrase picks the response category for a progress percentage:
// celebration at 100, motivation at 50+, otherwise encouragement with a
// motivation fallback for profiles without an encouragement bank.
func progressPhrase(profile *personality.Profile, percent int) string {
	switch {
	case percent >= 100:
		return personality.PickPhrase(profile, personality.CategoryCelebration)
	case percent >= 50:
		return personality.PickPhrase(profile, personality.CategoryMotivation)
	default:
		if len(profile.Phrases[personality.CategoryEncouragement]) > 0 {
			return personality.PickPhrase(profile, personality.CategoryEncouragement)
		}
		return personality.PickPhrase(profile, personality.CategoryMotivation)
	}
}
