package user

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/sales-review/internal/usecase/errors"
	"github.com/johnquangdev/sales-review/pkg/password"
)

// CreateInput describes an admin-provisioned password account
type CreateInput struct {
	Username   string
	Name       string
	Password   string
	Role       entities.UserRole
	Department *string
}

// Service manages user accounts
type Service struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	logger      *zap.Logger
}

// NewService creates a new user service
func NewService(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository, logger *zap.Logger) *Service {
	return &Service{userRepo: userRepo, sessionRepo: sessionRepo, logger: logger}
}

// List returns a page of users, newest first
func (s *Service) List(ctx context.Context, limit, offset int) ([]*entities.PublicUser, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	out := make([]*entities.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToPublic())
	}
	return out, nil
}

// Create provisions a password account
func (s *Service) Create(ctx context.Context, in CreateInput) (*entities.PublicUser, error) {
	if in.Role == "" {
		in.Role = entities.RoleSalesperson
	}
	if !in.Role.IsValid() {
		return nil, errors.ErrInvalidArgument("invalid role")
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, errors.ErrInvalidArgument(err.Error())
	}

	u := entities.NewPasswordUser(in.Username, in.Name, hash, in.Role)
	u.Department = in.Department
	if err := u.Validate(); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, usecaseErrors.Translate(err)
	}

	s.logger.Info("user created",
		zap.String("user_id", u.ID.String()),
		zap.String("role", string(u.Role)),
	)
	return u.ToPublic(), nil
}

// UpdateRole changes a user's role. Admins cannot change their own role.
func (s *Service) UpdateRole(ctx context.Context, actorID, userID uuid.UUID, role entities.UserRole) (*entities.PublicUser, error) {
	if !role.IsValid() {
		return nil, errors.ErrInvalidArgument("invalid role")
	}
	if actorID == userID {
		return nil, errors.ErrConflict("cannot change your own role")
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, usecaseErrors.Translate(err)
	}

	s.logger.Info("user role updated",
		zap.String("actor_id", actorID.String()),
		zap.String("user_id", userID.String()),
		zap.String("role", string(role)),
	)
	return u.ToPublic(), nil
}

// Delete removes a password account. OAuth accounts and the caller's own
// account cannot be deleted.
func (s *Service) Delete(ctx context.Context, actorID, userID uuid.UUID) error {
	if actorID == userID {
		return errors.ErrConflict("cannot delete your own account")
	}

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return usecaseErrors.Translate(err)
	}
	if !u.UsesPassword() {
		return errors.ErrInvalidArgument("only password accounts can be deleted")
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return usecaseErrors.Translate(err)
	}

	s.logger.Info("user deleted",
		zap.String("actor_id", actorID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// ResetPassword sets a new password for a password account and signs it out everywhere.
func (s *Service) ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return usecaseErrors.Translate(err)
	}
	if !u.UsesPassword() {
		return errors.ErrInvalidArgument("account does not use a password")
	}
	return s.setPassword(ctx, u.ID, newPassword)
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, newPassword string) error {
	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return usecaseErrors.Translate(err)
	}
	if !u.UsesPassword() || u.PasswordHash == nil {
		return errors.ErrInvalidArgument("account does not use a password")
	}
	if err := password.Verify(*u.PasswordHash, current); err != nil {
		if stdErrors.Is(err, password.ErrMismatch) {
			return errors.ErrInvalidArgument("current password is incorrect")
		}
		return errors.ErrInternal(err)
	}
	return s.setPassword(ctx, u.ID, newPassword)
}

func (s *Service) setPassword(ctx context.Context, userID uuid.UUID, plain string) error {
	hash, err := password.Hash(plain)
	if err != nil {
		return errors.ErrInvalidArgument(err.Error())
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return usecaseErrors.Translate(err)
	}
	if err := s.sessionRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return usecaseErrors.Translate(err)
	}

	s.logger.Info("password changed", zap.String("user_id", userID.String()))
	return nil
}
