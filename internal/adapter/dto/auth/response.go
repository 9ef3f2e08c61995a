package auth

import "time"

// UserResponse represents user information in responses
type UserResponse struct {
	ID           string     `json:"id"`
	Username     string     `json:"username,omitempty"`
	Name         string     `json:"name"`
	Email        string     `json:"email,omitempty"`
	Role         string     `json:"role"`
	LoginMethod  string     `json:"login_method"`
	Department   string     `json:"department,omitempty"`
	IsActive     bool       `json:"is_active"`
	LastSignedIn *time.Time `json:"last_signed_in,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AuthResponse represents the authentication response with tokens
type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int           `json:"expires_in"` // seconds
	TokenType    string        `json:"token_type"` // "Bearer"
	User         *UserResponse `json:"user"`
}
