package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user; a taken username yields entities.ErrUserAlreadyExists
	Create(ctx context.Context, user *entities.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)

	// FindByUsername finds a password account by username (case-insensitive)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	// FindByOAuth finds a user by OAuth provider and ID
	FindByOAuth(ctx context.Context, provider, oauthID string) (*entities.User, error)

	// Update updates a user
	Update(ctx context.Context, user *entities.User) error

	// UpdateRole changes a user's role
	UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// UpdateLastSignIn updates the last login timestamp
	UpdateLastSignIn(ctx context.Context, id uuid.UUID) error

	// Delete hard deletes a user and their sessions
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns a paginated list of users, newest first
	List(ctx context.Context, limit, offset int) ([]*entities.User, error)
}
