package statistics

import (
	"context"
	stdErrors "errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/infrastructure/cache"
	"github.com/johnquangdev/sales-review/internal/mocks"
)

var (
	admin     = &entities.User{ID: uuid.New(), Role: entities.RoleAdmin}
	evaluator = &entities.User{ID: uuid.New(), Role: entities.RoleEvaluator}
	sales     = &entities.User{ID: uuid.New(), Role: entities.RoleSalesperson}
)

func newTestService(t *testing.T, store cache.Store) (*Service, *mocks.MockStatisticsRepository) {
	t.Helper()
	repo := mocks.NewMockStatisticsRepository()
	return NewService(repo, store, time.Minute, zap.NewNop()), repo
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0.0, rate(0, 0))
	assert.Equal(t, float64(1)/float64(3)*100, rate(1, 3))
	assert.InDelta(t, 66.6667, rate(2, 3), 0.0001)
	assert.Equal(t, 50.0, rate(1, 2))
	assert.Equal(t, 100.0, rate(4, 4))
}

func TestSuccessRate(t *testing.T) {
	svc, repo := newTestService(t, nil)
	ctx := context.Background()

	got, err := svc.SuccessRate(ctx, sales)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Total)
	assert.Equal(t, 0.0, got.SuccessRate)

	repo.Status = entities.StatusCounts{Total: 8, Success: 3, Failed: 2, InProgress: 3}
	got, err = svc.SuccessRate(ctx, sales)
	require.NoError(t, err)
	assert.Equal(t, 37.5, got.SuccessRate)
	assert.Equal(t, int64(3), got.InProgress)
}

func TestSuccessRate_Cached(t *testing.T) {
	store := cache.NewMemoryStore()
	t.Cleanup(store.Close)
	svc, repo := newTestService(t, store)
	ctx := context.Background()

	repo.Status = entities.StatusCounts{Total: 2, Success: 1, InProgress: 1}
	first, err := svc.SuccessRate(ctx, admin)
	require.NoError(t, err)

	repo.Status = entities.StatusCounts{Total: 3, Success: 1, InProgress: 2}
	second, err := svc.SuccessRate(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.StatusCalls)

	svc.Invalidate(ctx)
	third, err := svc.SuccessRate(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(3), third.Total)
	assert.Equal(t, 2, repo.StatusCalls)
}

type brokenStore struct{ cache.Store }

var errStore = stdErrors.New("store unavailable")

func (brokenStore) Get(context.Context, string) (string, bool, error) { return "", false, errStore }
func (brokenStore) Set(context.Context, string, string, time.Duration) error {
	return errStore
}
func (brokenStore) DeletePrefix(context.Context, string) error { return errStore }

func TestCacheFailuresAreIgnored(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	repo := mocks.NewMockStatisticsRepository()
	repo.Status = entities.StatusCounts{Total: 1, Success: 1}
	svc := NewService(repo, brokenStore{}, time.Minute, zap.New(core))
	ctx := context.Background()

	got, err := svc.SuccessRate(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.SuccessRate)

	svc.Invalidate(ctx)
	assert.Equal(t, 3, logs.Len())
}

func TestSalespersonPerformance(t *testing.T) {
	svc, repo := newTestService(t, nil)
	ctx := context.Background()
	other := uuid.New()
	repo.Salespeople[sales.ID] = entities.SalespersonCounts{
		SalespersonID: sales.ID,
		StatusCounts:  entities.StatusCounts{Total: 3, Success: 1, Failed: 1, InProgress: 1},
		AvgScore:      71.666666,
	}

	own, err := svc.SalespersonPerformance(ctx, sales, nil)
	require.NoError(t, err)
	assert.Equal(t, sales.ID, own.SalespersonID)
	assert.InDelta(t, 33.3333, own.SuccessRate, 0.0001)
	assert.Equal(t, 71.666666, own.AvgScore)

	_, err = svc.SalespersonPerformance(ctx, sales, &other)
	assert.True(t, errors.Is(err, errors.ErrorCode_PERMISSION_DENIED))

	// own id passed explicitly is fine
	_, err = svc.SalespersonPerformance(ctx, sales, &sales.ID)
	assert.NoError(t, err)

	empty, err := svc.SalespersonPerformance(ctx, evaluator, &other)
	require.NoError(t, err)
	assert.Equal(t, other, empty.SalespersonID)
	assert.Zero(t, empty.TotalMeetings)
	assert.Zero(t, empty.SuccessRate)
	assert.Zero(t, empty.AvgScore)
}

func TestClientTypeDistribution_ZeroFilled(t *testing.T) {
	svc, repo := newTestService(t, nil)
	repo.ClientTypes = []entities.ClientTypeCount{
		{ClientType: entities.ClientHesitant, Count: 2, FallbackCount: 1},
		{ClientType: entities.ClientBudget, Count: 5},
	}

	got, err := svc.ClientTypeDistribution(context.Background(), sales)
	require.NoError(t, err)
	assert.Equal(t, []entities.ClientTypeCount{
		{ClientType: entities.ClientBudget, Count: 5},
		{ClientType: entities.ClientDesign, Count: 0},
		{ClientType: entities.ClientQuality, Count: 0},
		{ClientType: entities.ClientTimeline, Count: 0},
		{ClientType: entities.ClientHesitant, Count: 2, FallbackCount: 1},
	}, got)
}

func TestMonthlyTrend(t *testing.T) {
	svc, repo := newTestService(t, nil)
	svc.now = func() time.Time { return time.Date(2025, 3, 17, 12, 0, 0, 0, time.UTC) }
	repo.Monthly = []entities.MonthlyCount{{Month: "2025-02", Count: 4, SuccessCount: 1}}
	ctx := context.Background()

	got, err := svc.MonthlyTrend(ctx, sales, 6)
	require.NoError(t, err)
	assert.Equal(t, repo.Monthly, got)
	assert.Equal(t, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), repo.MonthlySince)

	_, err = svc.MonthlyTrend(ctx, sales, 0)
	require.NoError(t, err)
	assert.True(t, repo.MonthlySince.IsZero())

	repo.Monthly = nil
	got, err = svc.MonthlyTrend(ctx, sales, 1)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = svc.MonthlyTrend(ctx, sales, -1)
	assert.True(t, errors.Is(err, errors.ErrorCode_INVALID_ARGUMENT))
}

func TestLeaderboard(t *testing.T) {
	svc, repo := newTestService(t, nil)
	a, b := uuid.New(), uuid.New()
	repo.Salespeople[a] = entities.SalespersonCounts{SalespersonID: a, SalespersonName: "Amy", StatusCounts: entities.StatusCounts{Total: 4, Success: 1}}
	repo.Salespeople[b] = entities.SalespersonCounts{SalespersonID: b, SalespersonName: "Ben", StatusCounts: entities.StatusCounts{Total: 2, Success: 2}}

	_, err := svc.Leaderboard(context.Background(), sales)
	assert.True(t, errors.Is(err, errors.ErrorCode_PERMISSION_DENIED))

	got, err := svc.Leaderboard(context.Background(), evaluator)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Amy", got[0].SalespersonName)
	assert.Equal(t, 25.0, got[0].SuccessRate)
	assert.Equal(t, 100.0, got[1].SuccessRate)
}
