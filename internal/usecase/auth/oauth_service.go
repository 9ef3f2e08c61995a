package auth

import (
	"context"
	stdErrors "errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/infrastructure/external/oauth"
)

// GoogleProvider is the part of the OAuth provider the service drives
type GoogleProvider interface {
	Name() string
	AuthURL(state string) string
	Identify(ctx context.Context, code string) (*oauth.Identity, error)
}

// StateStore issues one-time OAuth state tokens
type StateStore interface {
	GenerateState(ctx context.Context) (string, error)
	ConsumeState(ctx context.Context, state string) (bool, error)
}

// GoogleAuthURLResponse represents the response for auth URL request
type GoogleAuthURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// WithGoogle enables Google sign-in
func (s *Service) WithGoogle(provider GoogleProvider, states StateStore) *Service {
	s.google = provider
	s.states = states
	return s
}

func (s *Service) GoogleEnabled() bool {
	return s.google != nil && s.states != nil
}

// GoogleAuthURL generates the Google consent URL with a fresh state
func (s *Service) GoogleAuthURL(ctx context.Context) (*GoogleAuthURLResponse, error) {
	if !s.GoogleEnabled() {
		return nil, errors.ErrNotFound("google sign-in")
	}
	state, err := s.states.GenerateState(ctx)
	if err != nil {
		return nil, errors.ErrInternal(fmt.Errorf("failed to generate state: %w", err))
	}
	return &GoogleAuthURLResponse{URL: s.google.AuthURL(state), State: state}, nil
}

// GoogleCallback completes the OAuth flow. A first sign-in creates a
// salesperson account bound to the Google subject.
func (s *Service) GoogleCallback(ctx context.Context, code, state string, client ClientInfo) (*AuthResult, error) {
	if !s.GoogleEnabled() {
		return nil, errors.ErrNotFound("google sign-in")
	}
	provider := s.google.Name()

	ok, err := s.states.ConsumeState(ctx, state)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	if !ok {
		return nil, errors.ErrOAuthFailed(provider, entities.ErrOAuthStateMismatch)
	}

	identity, err := s.google.Identify(ctx, code)
	if err != nil {
		return nil, errors.ErrOAuthFailed(provider, err)
	}

	user, err := s.userRepo.FindByOAuth(ctx, provider, identity.Subject)
	switch {
	case err == nil:
		if !user.IsActive {
			return nil, errors.ErrOAuthFailed(provider, fmt.Errorf("account %s is inactive", user.ID))
		}
		if err := s.userRepo.UpdateLastSignIn(ctx, user.ID); err != nil {
			s.logger.Warn("failed to update last sign-in", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	case stdErrors.Is(err, entities.ErrUserNotFound):
		user = entities.NewOAuthUser(identity.Email, identity.Name, provider, identity.Subject)
		user.UpdateLastSignIn()
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, errors.ErrInternal(fmt.Errorf("failed to create user: %w", err))
		}
		s.logger.Info("user created from oauth",
			zap.String("user_id", user.ID.String()),
			zap.String("provider", provider),
		)
	default:
		return nil, errors.ErrInternal(err)
	}

	s.logger.Info("user signed in",
		zap.String("user_id", user.ID.String()),
		zap.String("method", provider),
	)
	return s.openSession(ctx, user, client)
}
