package middleware

import (
	stdErrors "errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/transcript-search/errors"
	"github.com/johnquangdev/transcript-search/pkg/jwt"
)

const (
	// UserIDKey is the echo context key holding the caller's uuid.UUID
	UserIDKey = "user_id"
	// ClaimsKey is the echo context key holding *jwt.Claims
	ClaimsKey = "claims"
)

// TokenValidator validates access tokens
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// EchoAuth returns an Echo middleware that validates the bearer JWT and sets
// "user_id" (uuid.UUID) and "claims" (*jwt.Claims) into Echo context
func EchoAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c.Request())
			if token == "" {
				return errors.ErrUnauthenticated()
			}

			claims, err := validator.ValidateAccessToken(token)
			if err != nil {
				if stdErrors.Is(err, jwt.ErrExpired) {
					return errors.ErrTokenExpired()
				}
				return errors.ErrInvalidToken()
			}

			c.Set(ClaimsKey, claims)
			c.Set(UserIDKey, claims.UserID)

			return next(c)
		}
	}
}

// UserID returns the authenticated user's ID from echo context
func UserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(UserIDKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// Helper functions

func extractToken(r *http.Request) string {
	// Try Authorization header first
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	// Try cookie as fallback
	cookie, err := r.Cookie("access_token")
	if err == nil {
		return cookie.Value
	}

	return ""
}
