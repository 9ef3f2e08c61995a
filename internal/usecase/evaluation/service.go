package evaluation

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/policy"
	"github.com/johnquangdev/sales-review/internal/domain/repositories"
	"github.com/johnquangdev/sales-review/internal/domain/scoring"
	"github.com/johnquangdev/sales-review/internal/usecase/analysis"
	usecaseErrors "github.com/johnquangdev/sales-review/internal/usecase/errors"
)

// MeetingReader loads a meeting within the caller's visibility scope
type MeetingReader interface {
	Get(ctx context.Context, actor *entities.User, id uuid.UUID) (*entities.Meeting, error)
}

// Suggester proposes rubric scores from a transcript
type Suggester interface {
	SuggestEvaluation(ctx context.Context, transcript string, stage entities.MeetingStage) analysis.Outcome[scoring.Sheet]
}

// CreateInput is a submitted score sheet
type CreateInput struct {
	MeetingID   uuid.UUID
	Scores      map[string]int
	ManualNotes *string
}

// Suggestion is a proposed score sheet
type Suggestion struct {
	Scores   map[string]int `json:"scores"`
	Total    int            `json:"total_score"`
	Level    scoring.Level  `json:"performance_level"`
	Degraded bool           `json:"degraded"`
}

// ListResult is one page of evaluations
type ListResult struct {
	Evaluations []*entities.Evaluation `json:"evaluations"`
	Total       int64                  `json:"total"`
}

// Tier is one band of the performance ladder
type Tier struct {
	Level scoring.Level `json:"level"`
	Min   int           `json:"min"`
	Max   int           `json:"max"`
}

// Rubric describes the score sheet
type Rubric struct {
	Items       []scoring.Item `json:"items"`
	ScoreValues []int          `json:"score_values"`
	Tiers       []Tier         `json:"tiers"`
}

// Service handles evaluations
type Service struct {
	evaluationRepo repositories.EvaluationRepository
	meetings       MeetingReader
	suggester      Suggester
	logger         *zap.Logger
}

// NewService creates a new evaluation service
func NewService(evaluationRepo repositories.EvaluationRepository, meetings MeetingReader, suggester Suggester, logger *zap.Logger) *Service {
	return &Service{
		evaluationRepo: evaluationRepo,
		meetings:       meetings,
		suggester:      suggester,
		logger:         logger,
	}
}

// Create scores a meeting. A meeting holds at most one evaluation.
func (s *Service) Create(ctx context.Context, actor *entities.User, in CreateInput) (*entities.Evaluation, error) {
	if err := policy.Authorize(actor.Role, policy.EvaluationsWrite); err != nil {
		return nil, usecaseErrors.Translate(err)
	}

	result, err := scoring.Compute(in.Scores)
	if err != nil {
		return nil, errors.ErrInvalidArgument(err.Error())
	}

	m, err := s.meetings.Get(ctx, actor, in.MeetingID)
	if err != nil {
		return nil, err
	}

	_, err = s.evaluationRepo.FindByMeetingID(ctx, m.ID)
	switch {
	case err == nil:
		return nil, errors.ErrAlreadyExists("evaluation")
	case !stdErrors.Is(err, entities.ErrEvaluationNotFound):
		return nil, usecaseErrors.Translate(err)
	}

	e := entities.NewEvaluation(m.ID, actor.ID, actor.DisplayName(), result, in.ManualNotes)
	if err := s.evaluationRepo.Create(ctx, e); err != nil {
		return nil, usecaseErrors.Translate(err)
	}

	s.logger.Info("evaluation created",
		zap.String("meeting_id", m.ID.String()),
		zap.String("evaluator_id", actor.ID.String()),
		zap.Int("total_score", e.TotalScore),
		zap.String("performance_level", string(e.PerformanceLevel)),
	)
	return e, nil
}

// GetByMeetingID returns the evaluation of a meeting visible to actor
func (s *Service) GetByMeetingID(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*entities.Evaluation, error) {
	if err := policy.Authorize(actor.Role, policy.EvaluationsRead); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	if _, err := s.meetings.Get(ctx, actor, meetingID); err != nil {
		return nil, err
	}
	e, err := s.evaluationRepo.FindByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	return e, nil
}

// List returns evaluations of the meetings visible to actor, newest first
func (s *Service) List(ctx context.Context, actor *entities.User, limit, offset int) (*ListResult, error) {
	if err := policy.Authorize(actor.Role, policy.EvaluationsRead); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	scope := policy.MeetingScope(actor.Role, actor.ID)
	evaluations, total, err := s.evaluationRepo.List(ctx, repositories.EvaluationFilters{
		MeetingOwnerID: scope.OwnerID,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	return &ListResult{Evaluations: evaluations, Total: total}, nil
}

// Suggest proposes scores for a meeting from its transcript
func (s *Service) Suggest(ctx context.Context, actor *entities.User, meetingID uuid.UUID) (*Suggestion, error) {
	if err := policy.Authorize(actor.Role, policy.EvaluationsWrite); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	m, err := s.meetings.Get(ctx, actor, meetingID)
	if err != nil {
		return nil, err
	}

	outcome := s.suggester.SuggestEvaluation(ctx, m.TranscriptText, m.MeetingStage)
	result, err := scoring.ComputeSheet(outcome.Value)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	return &Suggestion{
		Scores:   result.Scores.Map(),
		Total:    result.Total,
		Level:    result.Level,
		Degraded: outcome.Degraded,
	}, nil
}

// GetRubric describes the items, allowed values and tiers of the score sheet
func (s *Service) GetRubric() *Rubric {
	return &Rubric{
		Items:       scoring.Rubric[:],
		ScoreValues: []int{1, 3, 5},
		Tiers:       tiers(),
	}
}

// tiers walks the reachable totals and cuts a band wherever the level changes.
func tiers() []Tier {
	var out []Tier
	lo := scoring.MinTotal
	for total := scoring.MinTotal; total <= scoring.MaxTotal; total++ {
		if total == scoring.MaxTotal || scoring.LevelFor(total+1) != scoring.LevelFor(total) {
			out = append(out, Tier{Level: scoring.LevelFor(total), Min: lo, Max: total})
			lo = total + 1
		}
	}
	return out
}
