package handler

import (
	"errors"
	"net/http"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/badgerly/badgerly-backend/internal/usecase/challenge"
	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	challengeUseCase *challenge.ChallengeUseCase
}

func NewPaymentHandler(challengeUseCase *challenge.ChallengeUseCase) *PaymentHandler {
	return &PaymentHandler{
		challengeUseCase: challengeUseCase,
	}
}

// CreateIntentRequest names the challenge to escrow a reward for
type CreateIntentRequest struct {
	ChallengeID string `json:"challenge_id" binding:"required"`
}

// CreateIntent sets up the payment intent for a monetary reward
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	user, _ := currentUser(c)

	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	intent, err := h.challengeUseCase.CreatePaymentIntent(c.Request.Context(), user.ID, req.ChallengeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrChallengeNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "challenge not found"})
		case errors.Is(err, domain.ErrInvalidState):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "challenge does not carry a payable monetary reward"})
		case errors.Is(err, challenge.ErrPaymentSetupFailed):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unable to set up payment"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create payment intent"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment_intent_id": intent.ID,
		"client_secret":     intent.ClientSecret,
	})
}

// ConfirmRequest carries the payment intent to confirm
type ConfirmRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

// Confirm confirms the escrowed reward payment for a completed challenge
func (h *PaymentHandler) Confirm(c *gin.Context) {
	user, _ := currentUser(c)

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	status, err := h.challengeUseCase.ConfirmPayment(c.Request.Context(), user.ID, c.Param("challengeId"), req.PaymentIntentID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrChallengeNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "no matching completed challenge for this payment"})
		case errors.Is(err, challenge.ErrPaymentSetupFailed):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "payment confirmation failed"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "payment confirmation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "payment confirmed",
		"status":  status,
	})
}

// History lists the caller's challenges that carry a payment intent
func (h *PaymentHandler) History(c *gin.Context) {
	user, _ := currentUser(c)

	challenges, err := h.challengeUseCase.PaymentHistory(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch payment history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": challenges})
}
