package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the body of an access token. Role is one of the entities.Role
// values and is re-checked against the stored user on each request.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username,omitempty"`
	Role     string    `json:"role"`
	jwt.RegisteredClaims
}
