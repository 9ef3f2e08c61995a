package evaluation_test

import (
	"context"
	stdErrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/scoring"
	"github.com/johnquangdev/sales-review/internal/mocks"
	"github.com/johnquangdev/sales-review/internal/usecase/analysis"
	"github.com/johnquangdev/sales-review/internal/usecase/evaluation"
)

// scopedMeetings mirrors the meeting service's visibility rule over the mock.
type scopedMeetings struct{ repo *mocks.MockMeetingRepository }

func (s scopedMeetings) Get(ctx context.Context, actor *entities.User, id uuid.UUID) (*entities.Meeting, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil || (actor.Role == entities.RoleSalesperson && m.SalespersonID != actor.ID) {
		return nil, errors.ErrNotFound("meeting")
	}
	return m, nil
}

type fakeSuggester struct{ degraded bool }

func (f fakeSuggester) SuggestEvaluation(context.Context, string, entities.MeetingStage) analysis.Outcome[scoring.Sheet] {
	if f.degraded {
		return analysis.Fallback(scoring.Uniform(3), stdErrors.New("model unavailable"))
	}
	return analysis.Ok(scoring.Uniform(5))
}

type fixture struct {
	svc         *evaluation.Service
	meetings    *mocks.MockMeetingRepository
	evaluations *mocks.MockEvaluationRepository
}

func newFixture(suggester fakeSuggester) *fixture {
	meetings := mocks.NewMockMeetingRepository()
	evaluations := mocks.NewMockEvaluationRepository(meetings)
	meetings.Evaluations = evaluations
	return &fixture{
		svc:         evaluation.NewService(evaluations, scopedMeetings{meetings}, suggester, zap.NewNop()),
		meetings:    meetings,
		evaluations: evaluations,
	}
}

func (f *fixture) addMeeting(t *testing.T, owner uuid.UUID) *entities.Meeting {
	t.Helper()
	m := &entities.Meeting{
		ID:             uuid.New(),
		SalespersonID:  owner,
		ProjectName:    "Villa",
		MeetingStage:   entities.StageSecond,
		MeetingDate:    time.Now().UTC(),
		TranscriptText: "transcript",
		CaseStatus:     entities.CaseInProgress,
	}
	require.NoError(t, f.meetings.Create(context.Background(), m))
	return m
}

func sheet(v int) map[string]int {
	return scoring.Uniform(v).Map()
}

func user(role entities.UserRole) *entities.User {
	return &entities.User{ID: uuid.New(), Name: string(role), Role: role, IsActive: true}
}

func TestCreate(t *testing.T) {
	f := newFixture(fakeSuggester{})
	m := f.addMeeting(t, uuid.New())
	evaluator := user(entities.RoleEvaluator)

	scores := sheet(3)
	scores["score1"] = 5
	e, err := f.svc.Create(context.Background(), evaluator, evaluation.CreateInput{MeetingID: m.ID, Scores: scores})
	require.NoError(t, err)
	assert.Equal(t, 62, e.TotalScore)
	assert.Equal(t, scoring.LevelDeveloping, e.PerformanceLevel)
	assert.Equal(t, evaluator.ID, e.EvaluatorID)
	assert.Equal(t, "evaluator", e.EvaluatorName)
}

func TestCreate_SecondEvaluationConflicts(t *testing.T) {
	f := newFixture(fakeSuggester{})
	m := f.addMeeting(t, uuid.New())
	ctx := context.Background()

	_, err := f.svc.Create(ctx, user(entities.RoleEvaluator), evaluation.CreateInput{MeetingID: m.ID, Scores: sheet(5)})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, user(entities.RoleAdmin), evaluation.CreateInput{MeetingID: m.ID, Scores: sheet(1)})
	var appErr errors.AppError
	require.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, 409, appErr.HTTPCode)
}

func TestCreate_Rejects(t *testing.T) {
	f := newFixture(fakeSuggester{})
	m := f.addMeeting(t, uuid.New())
	ctx := context.Background()

	_, err := f.svc.Create(ctx, user(entities.RoleSalesperson), evaluation.CreateInput{MeetingID: m.ID, Scores: sheet(5)})
	assert.True(t, errors.Is(err, errors.ErrorCode_PERMISSION_DENIED))

	bad := sheet(3)
	bad["score7"] = 4
	_, err = f.svc.Create(ctx, user(entities.RoleEvaluator), evaluation.CreateInput{MeetingID: m.ID, Scores: bad})
	assert.True(t, errors.Is(err, errors.ErrorCode_INVALID_ARGUMENT))

	missing := sheet(3)
	delete(missing, "score20")
	_, err = f.svc.Create(ctx, user(entities.RoleEvaluator), evaluation.CreateInput{MeetingID: m.ID, Scores: missing})
	assert.True(t, errors.Is(err, errors.ErrorCode_INVALID_ARGUMENT))

	_, err = f.svc.Create(ctx, user(entities.RoleEvaluator), evaluation.CreateInput{MeetingID: uuid.New(), Scores: sheet(3)})
	assert.True(t, errors.Is(err, errors.ErrorCode_NOT_FOUND))
	assert.Empty(t, f.evaluations.Evaluations)
}

func TestListAndGet_Scoped(t *testing.T) {
	f := newFixture(fakeSuggester{})
	ctx := context.Background()
	amy := user(entities.RoleSalesperson)
	mine := f.addMeeting(t, amy.ID)
	other := f.addMeeting(t, uuid.New())

	evaluator := user(entities.RoleEvaluator)
	for _, m := range []*entities.Meeting{mine, other} {
		_, err := f.svc.Create(ctx, evaluator, evaluation.CreateInput{MeetingID: m.ID, Scores: sheet(3)})
		require.NoError(t, err)
	}

	own, err := f.svc.List(ctx, amy, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), own.Total)
	assert.Equal(t, mine.ID, own.Evaluations[0].MeetingID)

	all, err := f.svc.List(ctx, evaluator, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)

	_, err = f.svc.GetByMeetingID(ctx, amy, other.ID)
	assert.True(t, errors.Is(err, errors.ErrorCode_NOT_FOUND))

	e, err := f.svc.GetByMeetingID(ctx, amy, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, e.TotalScore)
}

func TestSuggest(t *testing.T) {
	f := newFixture(fakeSuggester{})
	m := f.addMeeting(t, uuid.New())

	got, err := f.svc.Suggest(context.Background(), user(entities.RoleEvaluator), m.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Total)
	assert.Equal(t, scoring.LevelExcellent, got.Level)
	assert.Len(t, got.Scores, scoring.ItemCount)
	assert.False(t, got.Degraded)

	f = newFixture(fakeSuggester{degraded: true})
	m = f.addMeeting(t, uuid.New())
	got, err = f.svc.Suggest(context.Background(), user(entities.RoleAdmin), m.ID)
	require.NoError(t, err)
	assert.Equal(t, 60, got.Total)
	assert.True(t, got.Degraded)
}

func TestGetRubric(t *testing.T) {
	f := newFixture(fakeSuggester{})
	r := f.svc.GetRubric()

	assert.Len(t, r.Items, scoring.ItemCount)
	assert.Equal(t, []evaluation.Tier{
		{Level: scoring.LevelNeedsImprovement, Min: 20, Max: 35},
		{Level: scoring.LevelBasic, Min: 36, Max: 50},
		{Level: scoring.LevelDeveloping, Min: 51, Max: 65},
		{Level: scoring.LevelCompetent, Min: 66, Max: 80},
		{Level: scoring.LevelExcellent, Min: 81, Max: 100},
	}, r.Tiers)
}
