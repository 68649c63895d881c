package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/todolist/internal/api/response"
	"github.com/mmynk/todolist/internal/auth"
)

const (
	// UserIDKey is the gin context key for the authenticated user ID.
	UserIDKey = "user_id"
	// EmailKey is the gin context key for the authenticated user's email.
	EmailKey = "email"
)

// GetUserID extracts the user ID from the context.
// Returns empty string if the request carried no valid token.
func GetUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// GetEmail extracts the user email from the context.
func GetEmail(c *gin.Context) string {
	return c.GetString(EmailKey)
}

// RequireAuth rejects requests without a valid Bearer token and stores the
// token's user ID and email in the context.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, response.CodeUnauthorized, err.Error())
			return
		}

		claims, err := jwtManager.Validate(token)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, response.CodeUnauthorized, auth.ErrInvalidToken.Error())
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// OptionalAuth records the caller's identity when a valid token is present
// and lets every request through.
func OptionalAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := auth.BearerToken(c.GetHeader("Authorization")); err == nil {
			if claims, err := jwtManager.Validate(token); err == nil {
				c.Set(UserIDKey, claims.UserID)
				c.Set(EmailKey, claims.Email)
			}
		}
		c.Next()
	}
}
