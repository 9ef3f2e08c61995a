package presenter

import (
	authDTO "github.com/johnquangdev/sales-review/internal/adapter/dto/auth"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/usecase/auth"
)

// ToUserResponse converts a PublicUser to UserResponse DTO
func ToUserResponse(u *entities.PublicUser) *authDTO.UserResponse {
	if u == nil {
		return nil
	}

	response := &authDTO.UserResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Role:         string(u.Role),
		LoginMethod:  string(u.LoginMethod),
		IsActive:     u.IsActive,
		LastSignedIn: u.LastSignedIn,
		CreatedAt:    u.CreatedAt,
	}

	// Set optional fields
	if u.Username != nil {
		response.Username = *u.Username
	}
	if u.Email != nil {
		response.Email = *u.Email
	}
	if u.Department != nil {
		response.Department = *u.Department
	}

	return response
}

// ToUserResponses converts a page of users
func ToUserResponses(users []*entities.PublicUser) []*authDTO.UserResponse {
	out := make([]*authDTO.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}

// ToAuthResponse converts usecase AuthResult to DTO AuthResponse
func ToAuthResponse(result *auth.AuthResult) *authDTO.AuthResponse {
	if result == nil {
		return nil
	}

	return &authDTO.AuthResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    int(result.ExpiresIn),
		TokenType:    "Bearer",
		User:         ToUserResponse(result.User),
	}
}
