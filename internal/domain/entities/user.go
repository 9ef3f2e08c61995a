package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a user in the system
type User struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username *string   `json:"username,omitempty" gorm:"type:varchar(32);uniqueIndex"`
	Name     string    `json:"name" gorm:"type:varchar(255);not null"`
	Email    *string   `json:"email,omitempty" gorm:"type:varchar(320)"`
	Role     UserRole  `json:"role" gorm:"type:varchar(32);default:'salesperson';not null"`
	IsActive bool      `json:"is_active" gorm:"default:true;not null"`

	LoginMethod   LoginMethod `json:"login_method" gorm:"type:varchar(32);not null"`
	PasswordHash  *string     `json:"-" gorm:"column:password_hash;type:text"`
	OAuthProvider *string     `json:"oauth_provider,omitempty" gorm:"column:oauth_provider;type:varchar(50)"`
	OAuthID       *string     `json:"-" gorm:"column:oauth_id;type:varchar(255)"`

	Department   *string    `json:"department,omitempty" gorm:"type:varchar(100)"`
	LastSignedIn *time.Time `json:"last_signed_in,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// UserRole defines user roles
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleEvaluator   UserRole = "evaluator"
	RoleSalesperson UserRole = "salesperson"
	RoleGuest       UserRole = "guest"
)

// IsValid checks if the user role is valid
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEvaluator, RoleSalesperson, RoleGuest:
		return true
	}
	return false
}

// LoginMethod records how an account authenticates.
type LoginMethod string

const (
	LoginMethodPassword LoginMethod = "password"
	LoginMethodGoogle   LoginMethod = "google"
)

// NewPasswordUser creates an admin-provisioned account
func NewPasswordUser(username, name, passwordHash string, role UserRole) *User {
	now := time.Now().UTC()
	uname := strings.ToLower(username)
	if name == "" {
		name = username
	}
	return &User{
		ID:           uuid.New(),
		Username:     &uname,
		Name:         name,
		Role:         role,
		IsActive:     true,
		LoginMethod:  LoginMethodPassword,
		PasswordHash: &passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewOAuthUser creates a user on first external-identity login
func NewOAuthUser(email, name, provider, oauthID string) *User {
	now := time.Now().UTC()
	user := &User{
		ID:            uuid.New(),
		Name:          name,
		Role:          RoleSalesperson,
		IsActive:      true,
		LoginMethod:   LoginMethod(provider),
		OAuthProvider: &provider,
		OAuthID:       &oauthID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if email != "" {
		user.Email = &email
	}
	if user.Name == "" {
		user.Name = email
	}
	return user
}

// UpdateLastSignIn updates the last login timestamp
func (u *User) UpdateLastSignIn() {
	now := time.Now().UTC()
	u.LastSignedIn = &now
	u.UpdatedAt = now
}

// IsAdmin checks if user is admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UsesPassword reports whether the account signs in with a password.
func (u *User) UsesPassword() bool {
	return u.LoginMethod == LoginMethodPassword
}

// DisplayName is the name shown on meetings and evaluations.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Username != nil {
		return *u.Username
	}
	return u.ID.String()
}

// Validate validates user data
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrInvalidName
	}
	if !u.Role.IsValid() {
		return ErrInvalidRole
	}
	if u.UsesPassword() && (u.Username == nil || u.PasswordHash == nil) {
		return ErrInvalidPassword
	}
	return nil
}

// PublicUser returns a user with sensitive fields removed
type PublicUser struct {
	ID           uuid.UUID   `json:"id"`
	Username     *string     `json:"username,omitempty"`
	Name         string      `json:"name"`
	Email        *string     `json:"email,omitempty"`
	Role         UserRole    `json:"role"`
	LoginMethod  LoginMethod `json:"login_method"`
	Department   *string     `json:"department,omitempty"`
	IsActive     bool        `json:"is_active"`
	LastSignedIn *time.Time  `json:"last_signed_in,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ToPublic converts User to PublicUser
func (u *User) ToPublic() *PublicUser {
	return &PublicUser{
		ID:           u.ID,
		Username:     u.Username,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		LoginMethod:  u.LoginMethod,
		Department:   u.Department,
		IsActive:     u.IsActive,
		LastSignedIn: u.LastSignedIn,
		CreatedAt:    u.CreatedAt,
	}
}
