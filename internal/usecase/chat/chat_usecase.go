package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/badgerly/badgerly-backend/internal/infrastructure/gemini"
	"github.com/badgerly/badgerly-backend/internal/personality"
	"github.com/badgerly/badgerly-backend/internal/pkg/logger"
	"github.com/badgerly/badgerly-backend/internal/repository"
)

// GenerateTimeout bounds a single generative call. It must stay below the
// lower bound of the reply-delay window's outer edge so failure-to-fallback
// resolves before the reply is due.
const GenerateTimeout = 2 * time.Second

// ReplyGenerator is the generative-text collaborator. A nil generator means
// the backend is not configured; phrase banks are used instead.
type ReplyGenerator interface {
	GenerateBadgerReply(ctx context.Context, req gemini.ReplyRequest) (string, error)
}

type ChatUseCase struct {
	challengeRepo repository.ChallengeRepository
	badgerRepo    repository.BadgerRepository
	messageRepo   repository.MessageRepository
	generator     ReplyGenerator
	log           *logger.Logger
}

func NewChatUseCase(
	challengeRepo repository.ChallengeRepository,
	badgerRepo repository.BadgerRepository,
	messageRepo repository.MessageRepository,
	generator ReplyGenerator,
	log *logger.Logger,
) *ChatUseCase {
	return &ChatUseCase{
		challengeRepo: challengeRepo,
		badgerRepo:    badgerRepo,
		messageRepo:   messageRepo,
		generator:     generator,
		log:           log,
	}
}

// AuthorizeRoom checks that the user participates in the challenge. Returns
// domain.ErrAccessDenied for existing challenges the user is not part of.
func (uc *ChatUseCase) AuthorizeRoom(ctx context.Context, userID, challengeID string) (*domain.Challenge, error) {
	challenge, err := uc.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if !challenge.HasParticipant(userID) {
		return nil, domain.ErrAccessDenied
	}
	return challenge, nil
}

// ReplyPlan is the snapshot captured when a user message warrants a badger
// reply. The deferred reply uses this snapshot as-is: later challenge state
// changes do not cancel or alter it.
type ReplyPlan struct {
	Challenge *domain.Challenge
	Badger    *domain.Badger
	Profile   *personality.Profile
	Sender    *domain.User
}

// SendResult is what a successful human message produced. Reply is non-nil
// when a badger reply should be scheduled.
type SendResult struct {
	Message   *domain.ChatMessage
	Challenge *domain.Challenge
	Reply     *ReplyPlan
}

// SendMessage persists a human chat message and, when the challenge has an
// assigned badger and is ACTIVE, returns a ReplyPlan for the caller to
// schedule.
func (uc *ChatUseCase) SendMessage(ctx context.Context, sender *domain.User, challengeID, content string, msgType domain.MessageType, mediaURL *string) (*SendResult, error) {
	challenge, err := uc.AuthorizeRoom(ctx, sender.ID, challengeID)
	if err != nil {
		return nil, err
	}

	if msgType == "" {
		msgType = domain.MessageText
	}

	message := &domain.ChatMessage{
		ChallengeID: challengeID,
		Content:     content,
		Type:        msgType,
		MediaURL:    mediaURL,
		Sender:      domain.HumanSender(sender.ID),
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to persist message: %w", err)
	}

	return &SendResult{
		Message:   message,
		Challenge: challenge,
		Reply:     uc.planReply(ctx, challenge, sender),
	}, nil
}

// planReply returns nil when no badger reply is due. Lookup failures are
// logged and swallowed; a missed reply never fails the human message.
func (uc *ChatUseCase) planReply(ctx context.Context, challenge *domain.Challenge, sender *domain.User) *ReplyPlan {
	if challenge.Status != domain.ChallengeActive {
		return nil
	}

	badger, err := uc.badgerRepo.GetByChallenge(ctx, challenge.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrBadgerNotFound) {
			uc.log.Error("failed to load badger for reply", "challenge_id", challenge.ID, "error", err)
		}
		return nil
	}

	profile, err := personality.Resolve(badger.Personality)
	if err != nil {
		uc.log.Error("badger has unknown personality", "badger_id", badger.ID, "personality", badger.Personality)
		return nil
	}

	return &ReplyPlan{
		Challenge: challenge,
		Badger:    badger,
		Profile:   profile,
		Sender:    sender,
	}
}

// GenerateReply produces and persists the badger's reply to a user message.
// Generation never surfaces an error to the chat flow: any backend failure
// falls back to the personality's motivation bank.
func (uc *ChatUseCase) GenerateReply(ctx context.Context, plan *ReplyPlan, userMessage string) (*domain.ChatMessage, error) {
	content := uc.generate(ctx, plan, userMessage)

	message := &domain.ChatMessage{
		ChallengeID: plan.Challenge.ID,
		Content:     content,
		Type:        domain.MessageText,
		Sender:      domain.BadgerSender(plan.Badger.ID),
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to persist badger reply: %w", err)
	}
	return message, nil
}

func (uc *ChatUseCase) generate(ctx context.Context, plan *ReplyPlan, userMessage string) string {
	if uc.generator == nil {
		return personality.PickPhrase(plan.Profile, personality.CategoryMotivation)
	}

	genCtx, cancel := context.WithTimeout(ctx, GenerateTimeout)
	defer cancel()

	reply, err := uc.generator.GenerateBadgerReply(genCtx, gemini.ReplyRequest{
		SystemPrompt:         plan.Profile.SystemPrompt,
		BadgerName:           plan.Badger.Name,
		BadgerLevel:          plan.Badger.Level,
		ChallengeTitle:       plan.Challenge.Title,
		ChallengeDescription: plan.Challenge.Description,
		UserFirstName:        plan.Sender.FirstName,
		UserMessage:          userMessage,
	})
	if err != nil || reply == "" {
		if err != nil {
			uc.log.Warn("badger reply generation failed, using phrase bank", "badger_id", plan.Badger.ID, "error", err)
		}
		return personality.PickPhrase(plan.Profile, personality.CategoryMotivation)
	}
	return reply
}

// Poke delivers a check-in phrase to the poking recipient. Every guard
// failure is a silent no-op: nil message, nil error.
func (uc *ChatUseCase) Poke(ctx context.Context, userID, challengeID string) (*domain.ChatMessage, error) {
	challenge, err := uc.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return nil, nil
	}
	if challenge.RecipientID != userID || challenge.Status != domain.ChallengeActive {
		return nil, nil
	}

	badger, err := uc.badgerRepo.GetByChallenge(ctx, challengeID)
	if err != nil {
		return nil, nil
	}

	profile, err := personality.Resolve(badger.Personality)
	if err != nil {
		return nil, nil
	}

	message := &domain.ChatMessage{
		ChallengeID: challengeID,
		Content:     personality.PickPhrase(profile, personality.CategoryCheckIn),
		Type:        domain.MessageText,
		Sender:      domain.BadgerSender(badger.ID),
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		uc.log.Error("failed to persist poke response", "challenge_id", challengeID, "error", err)
		return nil, nil
	}
	return message, nil
}

// History returns a challenge's chat log, access-checked.
func (uc *ChatUseCase) History(ctx context.Context, userID, challengeID string, limit int) ([]*domain.ChatMessage, error) {
	if _, err := uc.AuthorizeRoom(ctx, userID, challengeID); err != nil {
		return nil, err
	}
	return uc.messageRepo.ListByChallenge(ctx, challengeID, limit)
}
