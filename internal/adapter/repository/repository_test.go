package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/johnquangdev/sales-review/internal/adapter/repository"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/repositories"
	"github.com/johnquangdev/sales-review/internal/domain/scoring"
	"github.com/johnquangdev/sales-review/internal/infrastructure/database"
)

// setupTestDB spins up a Postgres container and applies the embedded migrations.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("sales_review_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(connStr, true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.CloseDB(db) })

	_, err = database.Migrate(db)
	require.NoError(t, err)
	return db
}

func newMeeting(owner uuid.UUID, date time.Time) *entities.Meeting {
	return &entities.Meeting{
		ID:               uuid.New(),
		SalespersonID:    owner,
		SalespersonName:  "Linh",
		ProjectName:      "Riverside apartment",
		ClientName:       "Mr. Tran",
		MeetingStage:     entities.StageInitial,
		MeetingDate:      date,
		TranscriptSource: entities.TranscriptManual,
		TranscriptText:   "We discussed the living room layout.",
		CaseStatus:       entities.CaseInProgress,
	}
}

func newEvaluation(t *testing.T, meetingID uuid.UUID, score int) *entities.Evaluation {
	t.Helper()
	res, err := scoring.ComputeSheet(scoring.Uniform(score))
	require.NoError(t, err)
	return entities.NewEvaluation(meetingID, uuid.New(), "Evaluator", res, nil)
}

func TestMeetingRepository_ListScopedAndOrdered(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	meetings := repository.NewMeetingRepository(db)

	alice, bob := uuid.New(), uuid.New()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, meetings.Create(ctx, newMeeting(alice, base)))
	require.NoError(t, meetings.Create(ctx, newMeeting(alice, base.AddDate(0, 0, 2))))
	require.NoError(t, meetings.Create(ctx, newMeeting(bob, base.AddDate(0, 0, 1))))

	all, total, err := meetings.List(ctx, repositories.MeetingFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].MeetingDate.After(all[i-1].MeetingDate), "meetings must be newest first")
	}

	own, total, err := meetings.List(ctx, repositories.MeetingFilters{OwnerID: &alice})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, m := range own {
		assert.Equal(t, alice, m.SalespersonID)
	}

	page, total, err := meetings.List(ctx, repositories.MeetingFilters{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 1)
}

func TestMeetingRepository_UpdateStatusMissing(t *testing.T) {
	db := setupTestDB(t)
	meetings := repository.NewMeetingRepository(db)

	err := meetings.UpdateStatus(context.Background(), uuid.New(), entities.CaseSuccess)
	assert.ErrorIs(t, err, entities.ErrMeetingNotFound)
}

func TestMeetingRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	meetings := repository.NewMeetingRepository(db)
	evaluations := repository.NewEvaluationRepository(db)
	analyses := repository.NewAnalysisRepository(db)
	failedCases := repository.NewFailedCaseRepository(db)

	m := newMeeting(uuid.New(), time.Now().UTC())
	require.NoError(t, meetings.Create(ctx, m))
	require.NoError(t, evaluations.Create(ctx, newEvaluation(t, m.ID, 3)))
	require.NoError(t, analyses.Create(ctx, entities.NewAIAnalysis(m.ID, entities.AnalysisResult{
		SentimentOverall: entities.SentimentNeutral,
		ClientType:       entities.ClientDesign,
	}, false)))
	require.NoError(t, failedCases.CreateAndMarkFailed(ctx,
		entities.NewFailedCase(m, entities.StageInitial, []entities.FailureReason{entities.ReasonCompetitor}, "Lost to a competitor", nil)))

	require.NoError(t, meetings.Delete(ctx, m.ID))

	_, err := meetings.FindByID(ctx, m.ID)
	assert.ErrorIs(t, err, entities.ErrMeetingNotFound)
	_, err = evaluations.FindByMeetingID(ctx, m.ID)
	assert.ErrorIs(t, err, entities.ErrEvaluationNotFound)
	_, err = analyses.FindByMeetingID(ctx, m.ID)
	assert.ErrorIs(t, err, entities.ErrAnalysisNotFound)
	_, err = failedCases.FindByMeetingID(ctx, m.ID)
	assert.ErrorIs(t, err, entities.ErrFailedCaseNotFound)

	assert.ErrorIs(t, meetings.Delete(ctx, m.ID), entities.ErrMeetingNotFound)
}

func TestEvaluationRepository_OnePerMeeting(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	meetings := repository.NewMeetingRepository(db)
	evaluations := repository.NewEvaluationRepository(db)

	m := newMeeting(uuid.New(), time.Now().UTC())
	require.NoError(t, meetings.Create(ctx, m))

	first := newEvaluation(t, m.ID, 5)
	require.NoError(t, evaluations.Create(ctx, first))
	err := evaluations.Create(ctx, newEvaluation(t, m.ID, 1))
	assert.ErrorIs(t, err, entities.ErrEvaluationExists)

	stored, err := evaluations.FindByMeetingID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stored.TotalScore)
	assert.Equal(t, scoring.LevelExcellent, stored.PerformanceLevel)
	assert.Equal(t, scoring.Uniform(5), stored.Sheet())
}

func TestEvaluationRepository_ListByMeetingOwner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	meetings := repository.NewMeetingRepository(db)
	evaluations := repository.NewEvaluationRepository(db)

	alice, bob := uuid.New(), uuid.New()
	ma := newMeeting(alice, time.Now().UTC())
	mb := newMeeting(bob, time.Now().UTC())
	require.NoError(t, meetings.Create(ctx, ma))
	require.NoError(t, meetings.Create(ctx, mb))
	require.NoError(t, evaluations.Create(ctx, newEvaluation(t, ma.ID, 3)))
	require.NoError(t, evaluations.Create(ctx, newEvaluation(t, mb.ID, 3)))

	list, total, err := evaluations.List(ctx, repositories.EvaluationFilters{MeetingOwnerID: &alice})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, ma.ID, list[0].MeetingID)
}

func TestAnalysisRepository_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	meetings := repository.NewMeetingRepository(db)
	analyses := repository.NewAnalysisRepository(db)

	m := newMeeting(uuid.New(), time.Now().UTC())
	require.NoError(t, meetings.Create(ctx, m))

	_, err := analyses.FindByMeetingID(ctx, m.ID)
	assert.ErrorIs(t, err, entities.ErrAnalysisNotFound)

	result := entities.AnalysisResult{
		Keywords:         []string{"walnut", "open plan"},
		SentimentOverall: entities.SentimentPositive,
		SentimentScore:   80,
		ClientType:       entities.ClientQuality,
	}
	require.NoError(t, analyses.Create(ctx, entities.NewAIAnalysis(m.ID, result, false)))
	assert.ErrorIs(t, analyses.Create(ctx, entities.NewAIAnalysis(m.ID, result, false)), entities.ErrAnalysisExists)

	stored, err := analyses.FindByMeetingID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"walnut", "open plan"}, []string(stored.Keywords))
	assert.Empty(t, stored.SuccessFactors)
}

func TestAnalysisRepository_ReplaceFallback(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	meetings := repository.NewMeetingRepository(db)
	analyses := repository.NewAnalysisRepository(db)

	m := newMeeting(uuid.New(), time.Now().UTC())
	require.NoError(t, meetings.Create(ctx, m))

	fallback := entities.AnalysisResult{Keywords: []string{"analysis failed"}, SentimentOverall: entities.SentimentNeutral, ClientType: entities.ClientHesitant}
	require.NoError(t, analyses.Create(ctx, entities.NewAIAnalysis(m.ID, fallback, true)))

	real := entities.AnalysisResult{Keywords: []string{"oak"}, SentimentOverall: entities.SentimentPositive, ClientType: entities.ClientDesign}
	require.NoError(t, analyses.ReplaceFallback(ctx, entities.NewAIAnalysis(m.ID, real, false)))

	stored, err := analyses.FindByMeetingID(ctx, m.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsFallback)
	assert.Equal(t, entities.ClientDesign, stored.ClientType)

	err = analyses.ReplaceFallback(ctx, entities.NewAIAnalysis(m.ID, fallback, true))
	assert.ErrorIs(t, err, entities.ErrAnalysisExists)
}

func TestFailedCaseRepository_MarksMeetingFailed(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	meetings := repository.NewMeetingRepository(db)
	failedCases := repository.NewFailedCaseRepository(db)

	m := newMeeting(uuid.New(), time.Now().UTC())
	require.NoError(t, meetings.Create(ctx, m))

	fc := entities.NewFailedCase(m, entities.StageSecond,
		[]entities.FailureReason{entities.ReasonBudgetMismatch, entities.ReasonTimelineIssue}, "Budget was half the quote", nil)
	require.NoError(t, failedCases.CreateAndMarkFailed(ctx, fc))

	updated, err := meetings.FindByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.CaseFailed, updated.CaseStatus)

	list, total, err := failedCases.List(ctx, repositories.FailedCaseFilters{SalespersonID: &m.SalespersonID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"budget_mismatch", "timeline_issue"}, []string(list[0].FailureReasons))

	orphan := entities.NewFailedCase(newMeeting(uuid.New(), time.Now().UTC()), entities.StageInitial, nil, "x", nil)
	assert.ErrorIs(t, failedCases.CreateAndMarkFailed(ctx, orphan), entities.ErrMeetingNotFound)
}

func TestStatisticsRepository_Empty(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	stats := repository.NewStatisticsRepository(db)

	counts, err := stats.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCounts{}, counts)

	id := uuid.New()
	sp, err := stats.SalespersonCounts(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, sp.SalespersonID)
	assert.Zero(t, sp.Total)
	assert.Zero(t, sp.AvgScore)

	all, err := stats.AllSalespersonCounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	types, err := stats.ClientTypeCounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, types)

	months, err := stats.MonthlyCounts(ctx, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, months)
}

func TestStatisticsRepository_Aggregates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	meetings := repository.NewMeetingRepository(db)
	evaluations := repository.NewEvaluationRepository(db)
	analyses := repository.NewAnalysisRepository(db)
	stats := repository.NewStatisticsRepository(db)

	alice, bob := uuid.New(), uuid.New()
	jan := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)

	m1 := newMeeting(alice, jan)
	m2 := newMeeting(alice, feb)
	m3 := newMeeting(bob, feb)
	for _, m := range []*entities.Meeting{m1, m2, m3} {
		require.NoError(t, meetings.Create(ctx, m))
	}
	require.NoError(t, meetings.UpdateStatus(ctx, m1.ID, entities.CaseSuccess))
	require.NoError(t, meetings.UpdateStatus(ctx, m3.ID, entities.CaseFailed))

	require.NoError(t, evaluations.Create(ctx, newEvaluation(t, m1.ID, 5)))
	require.NoError(t, evaluations.Create(ctx, newEvaluation(t, m2.ID, 3)))

	require.NoError(t, analyses.Create(ctx, entities.NewAIAnalysis(m1.ID, entities.AnalysisResult{
		SentimentOverall: entities.SentimentPositive, ClientType: entities.ClientBudget,
	}, false)))
	require.NoError(t, analyses.Create(ctx, entities.NewAIAnalysis(m2.ID, entities.AnalysisResult{
		SentimentOverall: entities.SentimentNeutral, ClientType: entities.ClientDesign,
	}, true)))

	counts, err := stats.StatusCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCounts{Total: 3, Success: 1, Failed: 1, InProgress: 1}, counts)

	sp, err := stats.SalespersonCounts(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sp.Total)
	assert.Equal(t, int64(1), sp.Success)
	assert.InDelta(t, 80.0, sp.AvgScore, 0.001)

	all, err := stats.AllSalespersonCounts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, alice, all[0].SalespersonID)

	types, err := stats.ClientTypeCounts(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []entities.ClientTypeCount{
		{ClientType: entities.ClientBudget, Count: 1, FallbackCount: 0},
		{ClientType: entities.ClientDesign, Count: 1, FallbackCount: 1},
	}, types)

	months, err := stats.MonthlyCounts(ctx, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, []entities.MonthlyCount{
		{Month: "2025-01", Count: 1, SuccessCount: 1},
		{Month: "2025-02", Count: 2, SuccessCount: 0},
	}, months)

	recent, err := stats.MonthlyCounts(ctx, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "2025-02", recent[0].Month)
}
