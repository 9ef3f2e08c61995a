package auth

import (
	"context"
	stdErrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/repositories"
	"github.com/johnquangdev/sales-review/pkg/jwt"
	"github.com/johnquangdev/sales-review/pkg/password"
)

// ClientInfo describes the device a session is opened from
type ClientInfo struct {
	IP        string
	UserAgent string
}

// AuthResult is returned by every successful sign-in or refresh
type AuthResult struct {
	User         *entities.PublicUser `json:"user"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	ExpiresIn    int64                `json:"expires_in"`
}

// Service handles password and OAuth sign-in and refresh-token sessions
type Service struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	jwtManager  *jwt.Manager
	limiter     *LoginLimiter
	logger      *zap.Logger

	google GoogleProvider
	states StateStore
}

// NewService creates a new auth service. Google sign-in stays disabled until WithGoogle is called.
func NewService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	jwtManager *jwt.Manager,
	limiter *LoginLimiter,
	logger *zap.Logger,
) *Service {
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtManager:  jwtManager,
		limiter:     limiter,
		logger:      logger,
	}
}

// LoginWithPassword checks credentials and opens a session. Unknown,
// inactive and OAuth-only accounts fail exactly like a wrong password.
func (s *Service) LoginWithPassword(ctx context.Context, username, plain string, client ClientInfo) (*AuthResult, error) {
	blocked, err := s.limiter.Blocked(ctx, username)
	if err != nil {
		s.logger.Warn("login limiter unavailable", zap.Error(err))
	}
	if blocked {
		return nil, errors.ErrTooManyRequests(s.limiter.Window())
	}

	user, err := s.userRepo.FindByUsername(ctx, normalize(username))
	if err != nil && !stdErrors.Is(err, entities.ErrUserNotFound) {
		return nil, errors.ErrInternal(err)
	}

	if user == nil || !user.IsActive || !user.UsesPassword() || user.PasswordHash == nil ||
		password.Verify(*user.PasswordHash, plain) != nil {
		if _, ferr := s.limiter.RecordFailure(ctx, username); ferr != nil {
			s.logger.Warn("failed to record login failure", zap.Error(ferr))
		}
		return nil, errors.ErrInvalidCredentials()
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.logger.Warn("failed to reset login attempts", zap.Error(err))
	}
	if err := s.userRepo.UpdateLastSignIn(ctx, user.ID); err != nil {
		s.logger.Warn("failed to update last sign-in", zap.String("user_id", user.ID.String()), zap.Error(err))
	}

	s.logger.Info("user signed in",
		zap.String("user_id", user.ID.String()),
		zap.String("method", string(entities.LoginMethodPassword)),
	)
	return s.openSession(ctx, user, client)
}

// Refresh rotates a refresh token: the presented session is revoked and a new one issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string, client ClientInfo) (*AuthResult, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.ErrInvalidRefreshToken()
	}

	session, err := s.findSession(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if !session.IsValid() || session.UserID != userID {
		return nil, errors.ErrInvalidRefreshToken()
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrUserNotFound) {
			return nil, errors.ErrInvalidRefreshToken()
		}
		return nil, errors.ErrInternal(err)
	}
	if !user.IsActive {
		return nil, errors.ErrInvalidRefreshToken()
	}

	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil {
		return nil, errors.ErrInternal(err)
	}
	return s.openSession(ctx, user, client)
}

// Logout revokes the session behind refreshToken. Unknown or already
// revoked tokens are not an error.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	session, err := s.findSession(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, errors.ErrorCode_AUTH_INVALID_REFRESH_TOKEN) {
			return nil
		}
		return err
	}
	if err := s.sessionRepo.Revoke(ctx, session.ID); err != nil && !stdErrors.Is(err, entities.ErrSessionNotFound) {
		return errors.ErrInternal(err)
	}
	return nil
}

// LogoutAll revokes every session of a user
func (s *Service) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.sessionRepo.RevokeAllByUserID(ctx, userID); err != nil {
		return errors.ErrInternal(err)
	}
	return nil
}

// Authenticate resolves an access token to its user. The user is re-read so
// role changes and deactivation apply to tokens already issued.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*entities.User, error) {
	claims, err := s.jwtManager.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, errors.ErrUnauthenticated()
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrUserNotFound) {
			return nil, errors.ErrUnauthenticated()
		}
		return nil, errors.ErrInternal(err)
	}
	if !user.IsActive {
		return nil, errors.ErrUnauthenticated()
	}
	return user, nil
}

// Me returns the public profile of a user
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (*entities.PublicUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if stdErrors.Is(err, entities.ErrUserNotFound) {
			return nil, errors.ErrNotFound("user")
		}
		return nil, errors.ErrInternal(err)
	}
	return user.ToPublic(), nil
}

// PurgeExpiredSessions deletes sessions that expired before now.
func (s *Service) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessionRepo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, errors.ErrInternal(err)
	}
	return n, nil
}

func (s *Service) findSession(ctx context.Context, refreshToken string) (*entities.Session, error) {
	hash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil, errors.ErrInvalidRefreshToken()
	}
	session, err := s.sessionRepo.FindByTokenHash(ctx, hash)
	if err != nil {
		if stdErrors.Is(err, entities.ErrSessionNotFound) {
			return nil, errors.ErrInvalidRefreshToken()
		}
		return nil, errors.ErrInternal(err)
	}
	return session, nil
}

func (s *Service) openSession(ctx context.Context, user *entities.User, client ClientInfo) (*AuthResult, error) {
	username := ""
	if user.Username != nil {
		username = *user.Username
	} else if user.Email != nil {
		username = *user.Email
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, username, string(user.Role))
	if err != nil {
		return nil, errors.ErrInternal(fmt.Errorf("failed to generate access token: %w", err))
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, errors.ErrInternal(fmt.Errorf("failed to generate refresh token: %w", err))
	}
	hash, err := s.jwtManager.HashToken(refreshToken)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}

	session := entities.NewSession(user.ID, hash, time.Now().UTC().Add(s.jwtManager.RefreshTTL())).
		WithDeviceInfo(client.IP, client.UserAgent)
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, errors.ErrInternal(fmt.Errorf("failed to create session: %w", err))
	}

	return &AuthResult{
		User:         user.ToPublic(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.jwtManager.AccessTTL().Seconds()),
	}, nil
}
