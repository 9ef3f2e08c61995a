package middleware

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/policy"
)

const (
	// UserContextKey is the echo context key for the authenticated user
	UserContextKey = "user"
	// UserIDContextKey is the echo context key for the authenticated user's ID
	UserIDContextKey = "user_id"

	// AccessTokenCookie carries the access token for browser clients
	AccessTokenCookie = "access_token"
)

// Authenticator resolves an access token to an active user
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*entities.User, error)
}

// EchoAuth returns an Echo middleware that validates the access token and sets
// "user" (*entities.User) and "user_id" (uuid.UUID) into Echo context
func EchoAuth(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c)
			if token == "" {
				return errors.ErrUnauthenticated()
			}

			user, err := authn.Authenticate(c.Request().Context(), token)
			if err != nil {
				return errors.ErrUnauthenticated()
			}

			c.Set(UserContextKey, user)
			c.Set(UserIDContextKey, user.ID)

			return next(c)
		}
	}
}

// RequirePermission rejects callers whose role does not hold perm.
// It must run after EchoAuth.
func RequirePermission(perm policy.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := GetUser(c)
			if !ok {
				return errors.ErrUnauthenticated()
			}
			if !policy.Allowed(user.Role, perm) {
				return errors.ErrPermissionDenied(string(perm))
			}
			return next(c)
		}
	}
}

// GetUser retrieves the authenticated user from the echo context
func GetUser(c echo.Context) (*entities.User, bool) {
	user, ok := c.Get(UserContextKey).(*entities.User)
	return user, ok && user != nil
}

// GetUserID retrieves the authenticated user's ID from the echo context
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(UserIDContextKey).(uuid.UUID)
	return id, ok
}

// ExtractToken reads the bearer token from the Authorization header,
// falling back to the access_token cookie
func ExtractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
		return cookie.Value
	}

	return ""
}
