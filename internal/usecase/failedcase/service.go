package failedcase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/policy"
	"github.com/johnquangdev/sales-review/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/sales-review/internal/usecase/errors"
)

// MeetingReader loads a meeting within the caller's visibility scope
type MeetingReader interface {
	Get(ctx context.Context, actor *entities.User, id uuid.UUID) (*entities.Meeting, error)
}

// Invalidator drops cached aggregates after a write
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// CreateInput records why a meeting's case was lost. An empty ClientName
// falls back to the meeting's client.
type CreateInput struct {
	MeetingID        uuid.UUID
	ClientName       string
	FailureStage     entities.MeetingStage
	FailureReasons   []entities.FailureReason
	DetailedAnalysis string
	LessonsLearned   *string
}

// ListResult is one page of failed cases
type ListResult struct {
	FailedCases []*entities.FailedCase `json:"failed_cases"`
	Total       int64                  `json:"total"`
}

// Service handles failed cases
type Service struct {
	failedCaseRepo repositories.FailedCaseRepository
	meetings       MeetingReader
	stats          Invalidator
	logger         *zap.Logger
}

// NewService creates a new failed case service
func NewService(failedCaseRepo repositories.FailedCaseRepository, meetings MeetingReader, stats Invalidator, logger *zap.Logger) *Service {
	return &Service{
		failedCaseRepo: failedCaseRepo,
		meetings:       meetings,
		stats:          stats,
		logger:         logger,
	}
}

// Create records a failed case and marks its meeting failed
func (s *Service) Create(ctx context.Context, actor *entities.User, in CreateInput) (*entities.FailedCase, error) {
	if err := policy.Authorize(actor.Role, policy.FailedCasesWrite); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	if !in.FailureStage.IsValid() {
		return nil, errors.ErrInvalidArgument("invalid failure stage")
	}
	if len(in.FailureReasons) == 0 {
		return nil, errors.ErrInvalidArgument("at least one failure reason is required")
	}
	for _, r := range in.FailureReasons {
		if !r.IsValid() {
			return nil, errors.ErrInvalidArgument("invalid failure reason: " + string(r))
		}
	}
	if strings.TrimSpace(in.DetailedAnalysis) == "" {
		return nil, errors.ErrInvalidArgument("detailed_analysis is required")
	}

	m, err := s.meetings.Get(ctx, actor, in.MeetingID)
	if err != nil {
		return nil, err
	}

	fc := entities.NewFailedCase(m, in.FailureStage, in.FailureReasons, in.DetailedAnalysis, in.LessonsLearned)
	if name := strings.TrimSpace(in.ClientName); name != "" {
		fc.ClientName = name
	}
	if err := s.failedCaseRepo.CreateAndMarkFailed(ctx, fc); err != nil {
		return nil, usecaseErrors.Translate(err)
	}

	s.logger.Info("failed case recorded",
		zap.String("meeting_id", m.ID.String()),
		zap.String("stage", string(fc.FailureStage)),
		zap.Strings("reasons", fc.FailureReasons),
	)
	s.stats.Invalidate(ctx)
	return fc, nil
}

// List returns failed cases visible to actor, newest first
func (s *Service) List(ctx context.Context, actor *entities.User, limit, offset int) (*ListResult, error) {
	if err := policy.Authorize(actor.Role, policy.FailedCasesRead); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	scope := policy.MeetingScope(actor.Role, actor.ID)
	cases, total, err := s.failedCaseRepo.List(ctx, repositories.FailedCaseFilters{
		SalespersonID: scope.OwnerID,
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	return &ListResult{FailedCases: cases, Total: total}, nil
}

// GetByMeetingID returns the latest failed case of a meeting
func (s *Service) GetByMeetingID(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*entities.FailedCase, error) {
	if err := policy.Authorize(actor.Role, policy.FailedCasesRead); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	if _, err := s.meetings.Get(ctx, actor, meetingID); err != nil {
		return nil, err
	}
	fc, err := s.failedCaseRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	return fc, nil
}
