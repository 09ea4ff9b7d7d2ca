package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/lboucha/linkearn/internal/errors"
	"github.com/lboucha/linkearn/internal/repository"
	"github.com/lboucha/linkearn/internal/services"
)

// contextUserIDKey is the gin context key under which the authenticated
// user's ID is stored for downstream handlers.
const contextUserIDKey = "userID"

// AuthRequired verifies the bearer token on protected routes and stores the
// authenticated user's ID in the request context.
// A missing token and a failed verification both abort with 401; the token is
// the sole authorization artifact, so nothing else is consulted.
func AuthRequired(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrMissingToken.Error()})
			return
		}

		claims, err := authService.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.ErrInvalidToken.Error()})
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Next()
	}
}

// AdminRequired enforces the admin flag on top of AuthRequired.
// The flag lives on the user record, not in the token, so a fresh lookup
// decides; demoting an admin takes effect on their next request.
func AdminRequired(userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(contextUserIDKey)

		user, err := userRepo.GetUserByID(userID)
		if err != nil {
			log.Printf("Error loading user %d for admin check: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": apperrors.ErrNotAdmin.Error()})
			return
		}

		c.Next()
	}
}
