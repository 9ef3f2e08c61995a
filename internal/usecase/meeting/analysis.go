package meeting

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/policy"
	"github.com/johnquangdev/sales-review/internal/usecase/analysis"
	usecaseErrors "github.com/johnquangdev/sales-review/internal/usecase/errors"
)

// AnalysisResult is a stored analysis with its provenance
type AnalysisResult struct {
	Analysis *entities.AIAnalysis `json:"analysis"`
	Degraded bool                 `json:"degraded"`
}

// Analysis returns the stored analysis of a meeting
func (s *Service) Analysis(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*entities.AIAnalysis, error) {
	if err := policy.Authorize(actor.Role, policy.AnalysisRead); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	if _, err := s.Get(ctx, actor, meetingID); err != nil {
		return nil, err
	}
	a, err := s.analysisRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	return a, nil
}

// Analyze runs the analysis of a meeting on demand. It conflicts with a
// stored real analysis; a stored fallback is replaced.
func (s *Service) Analyze(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*AnalysisResult, error) {
	if err := policy.Authorize(actor.Role, policy.AnalysisRun); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	m, err := s.Get(ctx, actor, meetingID)
	if err != nil {
		return nil, err
	}

	existing, err := s.analysisRepo.FindByMeetingID(ctx, m.ID)
	switch {
	case err == nil && !existing.IsFallback:
		return nil, errors.ErrAlreadyExists("analysis")
	case err != nil && !stdErrors.Is(err, entities.ErrAnalysisNotFound):
		return nil, usecaseErrors.Translate(err)
	}

	outcome := s.analyzer.Analyze(ctx, analysis.AnalyzeInput{
		Transcript: m.TranscriptText,
		Stage:      m.MeetingStage,
		Budget:     m.ClientBudget,
	})
	a := entities.NewAIAnalysis(m.ID, outcome.Value, outcome.Degraded)

	if existing != nil {
		err = s.analysisRepo.ReplaceFallback(ctx, a)
	} else {
		err = s.analysisRepo.Create(ctx, a)
	}
	if err != nil {
		return nil, usecaseErrors.Translate(err)
	}

	s.logger.Info("meeting analyzed",
		zap.String("meeting_id", m.ID.String()),
		zap.Bool("degraded", outcome.Degraded),
		zap.Bool("replaced_fallback", existing != nil),
	)
	s.stats.Invalidate(ctx)
	return &AnalysisResult{Analysis: a, Degraded: outcome.Degraded}, nil
}
