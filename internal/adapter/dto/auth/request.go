package auth

// LoginRequest is a username/password sign-in
type LoginRequest struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,min=8"`
}

// RefreshTokenRequest represents the request to refresh access token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest ends one session, or every session of the caller when All is set
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required_without=All"`
	All          bool   `json:"all"`
}
