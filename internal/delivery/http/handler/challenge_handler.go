package handler

import (
	"errors"
	"net/http"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/badgerly/badgerly-backend/internal/usecase/challenge"
	"github.com/gin-gonic/gin"
)

type ChallengeHandler struct {
	challengeUseCase *challenge.ChallengeUseCase
}

func NewChallengeHandler(challengeUseCase *challenge.ChallengeUseCase) *ChallengeHandler {
	return &ChallengeHandler{
		challengeUseCase: challengeUseCase,
	}
}

// List returns the caller's challenges, filterable by status/type/role
func (h *ChallengeHandler) List(c *gin.Context) {
	user, _ := currentUser(c)

	challenges, err := h.challengeUseCase.List(c.Request.Context(), user.ID, challenge.ListFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Role:   c.Query("role"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch challenges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenges": challenges})
}

// Get returns one challenge with its badger, progress and chat history
func (h *ChallengeHandler) Get(c *gin.Context) {
	user, _ := currentUser(c)

	detail, err := h.challengeUseCase.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrChallengeNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "challenge not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch challenge"})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Create creates a new challenge
func (h *ChallengeHandler) Create(c *gin.Context) {
	user, _ := currentUser(c)

	var req challenge.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.challengeUseCase.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "no user found with the provided email address"})
		case errors.Is(err, domain.ErrBadgerNotFound), errors.Is(err, domain.ErrBadgerUnavailable):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "the selected honey badger is not available or does not belong to you"})
		case errors.Is(err, challenge.ErrPaymentSetupFailed):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unable to process payment for this challenge"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create challenge"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Accept accepts a pending challenge (recipient only)
func (h *ChallengeHandler) Accept(c *gin.Context) {
	user, _ := currentUser(c)

	result, err := h.challengeUseCase.Accept(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.writeLifecycleError(c, err, "challenge not found or not available for acceptance")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "challenge accepted successfully",
		"challenge": result,
	})
}

// SubmitProgress records a progress update (recipient only)
func (h *ChallengeHandler) SubmitProgress(c *gin.Context) {
	user, _ := currentUser(c)

	var req challenge.ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.challengeUseCase.SubmitProgress(c.Request.Context(), user.ID, c.Param("id"), &req)
	if err != nil {
		h.writeLifecycleError(c, err, "active challenge not found or you do not have access to it")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Cancel cancels a challenge (sender only)
func (h *ChallengeHandler) Cancel(c *gin.Context) {
	user, _ := currentUser(c)

	if err := h.challengeUseCase.Cancel(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.writeLifecycleError(c, err, "challenge not found or cannot be cancelled")
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "challenge cancelled successfully"})
}

func (h *ChallengeHandler) writeLifecycleError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrChallengeNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFoundMsg})
	case errors.Is(err, domain.ErrInvalidState):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "challenge is not in a valid state for this operation"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "operation failed"})
	}
}
