package middleware

import (
	"errors"
	"strings"

	"github.com/aiinasia/core/internal/pkg/jwt"
	"github.com/aiinasia/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const ContextKeyUserID = "user_id"

// Auth returns a middleware that enforces JWT authentication.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := validateToken(extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// OptionalAuth sets the user ID if a valid token is present, but does not
// block the request.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := validateToken(extractToken(c)); err == nil && userID != "" {
			c.Set(ContextKeyUserID, userID)
		}
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated returns true if the request has a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

func validateToken(rawToken string) (string, error) {
	if rawToken == "" {
		return "", errors.New("token is required")
	}
	claims, err := jwt.Parse(rawToken)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
