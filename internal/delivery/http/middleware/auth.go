package middleware

import (
	"net/http"
	"strings"

	"github.com/badgerly/badgerly-backend/internal/usecase/auth"
	"github.com/gin-gonic/gin"
)

// ContextUserKey is where RequireAuth stores the authenticated *domain.User.
const ContextUserKey = "auth_user"

type AuthMiddleware struct {
	authUseCase *auth.AuthUseCase
}

func NewAuthMiddleware(authUseCase *auth.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		authUseCase: authUseCase,
	}
}

// RequireAuth verifies the bearer token and loads its user into the context
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "no token provided or invalid format",
			})
			return
		}

		user, err := m.authUseCase.VerifyToken(c.Request.Context(), header[7:])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(ContextUserKey, user)
		c.Set("user_id", user.ID)
		c.Next()
	}
}
