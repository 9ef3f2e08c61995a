package meeting

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/policy"
	"github.com/johnquangdev/sales-review/internal/domain/repositories"
	"github.com/johnquangdev/sales-review/internal/usecase/analysis"
	usecaseErrors "github.com/johnquangdev/sales-review/internal/usecase/errors"
)

// Analyzer is the part of the analysis adapter used for meetings
type Analyzer interface {
	Analyze(ctx context.Context, in analysis.AnalyzeInput) analysis.Outcome[entities.AnalysisResult]
	SuggestName(ctx context.Context, transcript string) analysis.Outcome[string]
}

// Invalidator drops cached aggregates after a write
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// CreateInput holds the fields of a new meeting
type CreateInput struct {
	SalesDesigner    *string
	DrawingDesigner  *string
	ProjectName      string
	ProjectType      *string
	ClientName       string
	ClientContact    *string
	ClientBudget     *int
	MeetingStage     entities.MeetingStage
	MeetingDate      time.Time
	TranscriptSource entities.TranscriptSource
	TranscriptText   string
	AudioFileURL     *string
	Notes            *string
}

// CreateResult is a stored meeting with the analysis made at creation.
// AnalysisDegraded is true when the analysis is the fallback default.
type CreateResult struct {
	Meeting          *entities.Meeting    `json:"meeting"`
	Analysis         *entities.AIAnalysis `json:"analysis,omitempty"`
	AnalysisDegraded bool                 `json:"analysis_degraded"`
}

// ListInput narrows a meeting listing
type ListInput struct {
	Status *entities.CaseStatus
	Stage  *entities.MeetingStage
	Limit  int
	Offset int
}

// ListResult is one page of meetings
type ListResult struct {
	Meetings []*entities.Meeting `json:"meetings"`
	Total    int64               `json:"total"`
}

// Service handles meetings and their analyses
type Service struct {
	meetingRepo  repositories.MeetingRepository
	analysisRepo repositories.AnalysisRepository
	analyzer     Analyzer
	stats        Invalidator
	logger       *zap.Logger
}

// NewService creates a new meeting service
func NewService(
	meetingRepo repositories.MeetingRepository,
	analysisRepo repositories.AnalysisRepository,
	analyzer Analyzer,
	stats Invalidator,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetingRepo:  meetingRepo,
		analysisRepo: analysisRepo,
		analyzer:     analyzer,
		stats:        stats,
		logger:       logger,
	}
}

// Create stores a meeting owned by actor, then analyzes its transcript.
// A failed analysis never fails the creation.
func (s *Service) Create(ctx context.Context, actor *entities.User, in CreateInput) (*CreateResult, error) {
	if err := policy.Authorize(actor.Role, policy.MeetingsWrite); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	if strings.TrimSpace(in.ProjectName) == "" {
		return nil, errors.ErrInvalidArgument("project_name is required")
	}
	if in.TranscriptSource == "" {
		in.TranscriptSource = entities.TranscriptManual
	}
	if !in.TranscriptSource.IsValid() {
		return nil, errors.ErrInvalidArgument("invalid transcript source")
	}
	if in.MeetingDate.IsZero() {
		in.MeetingDate = time.Now().UTC()
	}

	m := &entities.Meeting{
		ID:               uuid.New(),
		SalespersonID:    actor.ID,
		SalespersonName:  actor.DisplayName(),
		SalesDesigner:    in.SalesDesigner,
		DrawingDesigner:  in.DrawingDesigner,
		ProjectName:      strings.TrimSpace(in.ProjectName),
		ProjectType:      in.ProjectType,
		ClientName:       strings.TrimSpace(in.ClientName),
		ClientContact:    in.ClientContact,
		ClientBudget:     in.ClientBudget,
		MeetingStage:     in.MeetingStage,
		MeetingDate:      in.MeetingDate.UTC(),
		TranscriptSource: in.TranscriptSource,
		TranscriptText:   in.TranscriptText,
		AudioFileURL:     in.AudioFileURL,
		CaseStatus:       entities.CaseInProgress,
		Notes:            in.Notes,
	}
	if err := m.Validate(); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	if err := s.meetingRepo.Create(ctx, m); err != nil {
		return nil, usecaseErrors.Translate(err)
	}

	s.logger.Info("meeting created",
		zap.String("meeting_id", m.ID.String()),
		zap.String("salesperson_id", actor.ID.String()),
		zap.String("stage", string(m.MeetingStage)),
	)

	res := &CreateResult{Meeting: m}
	outcome := s.analyzer.Analyze(ctx, analysis.AnalyzeInput{
		Transcript: m.TranscriptText,
		Stage:      m.MeetingStage,
		Budget:     m.ClientBudget,
	})
	a := entities.NewAIAnalysis(m.ID, outcome.Value, outcome.Degraded)
	if err := s.analysisRepo.Create(ctx, a); err != nil {
		s.logger.Warn("failed to store meeting analysis",
			zap.String("meeting_id", m.ID.String()),
			zap.Error(err),
		)
	} else {
		res.Analysis = a
		res.AnalysisDegraded = outcome.Degraded
	}

	s.stats.Invalidate(ctx)
	return res, nil
}

// List returns the meetings visible to actor, newest meeting date first
func (s *Service) List(ctx context.Context, actor *entities.User, in ListInput) (*ListResult, error) {
	if err := policy.Authorize(actor.Role, policy.MeetingsRead); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	if in.Status != nil && !in.Status.IsValid() {
		return nil, errors.ErrInvalidArgument("invalid case status")
	}
	if in.Stage != nil && !in.Stage.IsValid() {
		return nil, errors.ErrInvalidArgument("invalid meeting stage")
	}

	scope := policy.MeetingScope(actor.Role, actor.ID)
	meetings, total, err := s.meetingRepo.List(ctx, repositories.MeetingFilters{
		OwnerID: scope.OwnerID,
		Status:  in.Status,
		Stage:   in.Stage,
		Limit:   in.Limit,
		Offset:  in.Offset,
	})
	if err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	return &ListResult{Meetings: meetings, Total: total}, nil
}

// Get returns a meeting visible to actor. Meetings outside the caller's
// scope are reported as not found.
func (s *Service) Get(ctx context.Context, actor *entities.User, id uuid.UUID) (*entities.Meeting, error) {
	if err := policy.Authorize(actor.Role, policy.MeetingsRead); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	m, err := s.meetingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	if !policy.CanView(actor.Role, actor.ID, m.SalespersonID) {
		return nil, errors.ErrNotFound("meeting")
	}
	return m, nil
}

// UpdateStatus sets the case status. Any status may follow any other.
func (s *Service) UpdateStatus(ctx context.Context, actor *entities.User, id uuid.UUID, status entities.CaseStatus) (*entities.Meeting, error) {
	if err := policy.Authorize(actor.Role, policy.MeetingsWrite); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	if !status.IsValid() {
		return nil, errors.ErrInvalidArgument("invalid case status")
	}

	m, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.meetingRepo.UpdateStatus(ctx, m.ID, status); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	m.CaseStatus = status

	s.logger.Info("meeting status updated",
		zap.String("meeting_id", m.ID.String()),
		zap.String("status", string(status)),
	)
	s.stats.Invalidate(ctx)
	return m, nil
}

// Delete removes a meeting with its evaluation, analysis and failed cases
func (s *Service) Delete(ctx context.Context, actor *entities.User, id uuid.UUID) error {
	if err := policy.Authorize(actor.Role, policy.MeetingsDelete); err != nil {
		return usecaseErrors.Translate(err)
	}
	if err := s.meetingRepo.Delete(ctx, id); err != nil {
		return usecaseErrors.Translate(err)
	}

	s.logger.Info("meeting deleted",
		zap.String("meeting_id", id.String()),
		zap.String("actor_id", actor.ID.String()),
	)
	s.stats.Invalidate(ctx)
	return nil
}

// NameSuggestion is a proposed project name
type NameSuggestion struct {
	ProjectName string `json:"project_name"`
	Degraded    bool   `json:"degraded"`
}

// SuggestName proposes a project name from a transcript
func (s *Service) SuggestName(ctx context.Context, actor *entities.User, transcript string) (*NameSuggestion, error) {
	if err := policy.Authorize(actor.Role, policy.MeetingsWrite); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	outcome := s.analyzer.SuggestName(ctx, transcript)
	return &NameSuggestion{ProjectName: outcome.Value, Degraded: outcome.Degraded}, nil
}
