package handler

import (
	"errors"
	"net/http"

	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/badgerly/badgerly-backend/internal/usecase/badger"
	"github.com/gin-gonic/gin"
)

type BadgerHandler struct {
	badgerUseCase *badger.BadgerUseCase
}

func NewBadgerHandler(badgerUseCase *badger.BadgerUseCase) *BadgerHandler {
	return &BadgerHandler{
		badgerUseCase: badgerUseCase,
	}
}

// List returns the caller's active honey badgers
func (h *BadgerHandler) List(c *gin.Context) {
	user, _ := currentUser(c)

	badgers, err := h.badgerUseCase.List(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch honey badgers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"honey_badgers": badgers})
}

// Get returns one honey badger
func (h *BadgerHandler) Get(c *gin.Context) {
	user, _ := currentUser(c)

	result, err := h.badgerUseCase.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrBadgerNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "honey badger not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch honey badger"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"honey_badger": result})
}

// Create creates a new honey badger
func (h *BadgerHandler) Create(c *gin.Context) {
	user, _ := currentUser(c)

	var req badger.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.badgerUseCase.Create(c.Request.Context(), user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBadgerLimit):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "you can only have up to 5 active honey badgers at a time"})
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid personality type"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create honey badger"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "honey badger created successfully",
		"honey_badger": result,
	})
}

// UpdateRequest represents a badger rename
type UpdateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// Update renames a honey badger
func (h *BadgerHandler) Update(c *gin.Context) {
	user, _ := currentUser(c)

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.badgerUseCase.Rename(c.Request.Context(), user.ID, c.Param("id"), req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrBadgerNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "honey badger not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update honey badger"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"honey_badger": result})
}

// Retire soft-deletes a honey badger
func (h *BadgerHandler) Retire(c *gin.Context) {
	user, _ := currentUser(c)

	err := h.badgerUseCase.Retire(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBadgerNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "honey badger not found"})
		case errors.Is(err, domain.ErrBadgerAssigned):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "this honey badger is currently working on an active challenge"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to retire honey badger"})
		}
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "honey badger retired successfully"})
}

// PersonalityTypes lists the available personalities
func (h *BadgerHandler) PersonalityTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"personalities": h.badgerUseCase.PersonalityTypes()})
}
