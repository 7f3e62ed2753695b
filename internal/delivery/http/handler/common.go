package handler

import (
	"github.com/badgerly/badgerly-backend/internal/domain"
	"github.com/badgerly/badgerly-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// currentUser returns the user loaded by the auth middleware.
func currentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
