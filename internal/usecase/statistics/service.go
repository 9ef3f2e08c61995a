package statistics

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/policy"
	"github.com/johnquangdev/sales-review/internal/domain/repositories"
	"github.com/johnquangdev/sales-review/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/sales-review/internal/usecase/errors"
)

// MaxTrendMonths bounds the monthly trend window.
const MaxTrendMonths = 120

// SuccessRate summarizes case outcomes across all meetings
type SuccessRate struct {
	entities.StatusCounts
	SuccessRate float64 `json:"success_rate"`
}

// Performance is one salesperson's record
type Performance struct {
	SalespersonID   uuid.UUID `json:"salesperson_id"`
	SalespersonName string    `json:"salesperson_name,omitempty"`
	TotalMeetings   int64     `json:"total_meetings"`
	SuccessCount    int64     `json:"success_count"`
	FailedCount     int64     `json:"failed_count"`
	InProgressCount int64     `json:"in_progress_count"`
	SuccessRate     float64   `json:"success_rate"`
	AvgScore        float64   `json:"avg_score"`
}

// Service computes the dashboard aggregates. SuccessRate, ClientTypeDistribution
// and MonthlyTrend are cached in store for ttl; a nil store disables caching.
type Service struct {
	repo   repositories.StatisticsRepository
	store  cache.Store
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new statistics service
func NewService(repo repositories.StatisticsRepository, store cache.Store, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// SuccessRate returns meeting counts by status and the success percentage
func (s *Service) SuccessRate(ctx context.Context, actor *entities.User) (*SuccessRate, error) {
	if err := policy.Authorize(actor.Role, policy.StatisticsRead); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	return cached(ctx, s, cache.StatisticsKey("success_rate"), func() (*SuccessRate, error) {
		counts, err := s.repo.StatusCounts(ctx)
		if err != nil {
			return nil, err
		}
		return &SuccessRate{StatusCounts: counts, SuccessRate: rate(counts.Success, counts.Total)}, nil
	})
}

// SalespersonPerformance returns the record of salespersonID, or of actor
// when nil. Reading someone else's record needs statistics:read_any.
func (s *Service) SalespersonPerformance(ctx context.Context, actor *entities.User, salespersonID *uuid.UUID) (*Performance, error) {
	if err := policy.Authorize(actor.Role, policy.StatisticsRead); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	target := actor.ID
	if salespersonID != nil && *salespersonID != actor.ID {
		if err := policy.Authorize(actor.Role, policy.StatisticsReadAny); err != nil {
			return nil, usecaseErrors.Translate(err)
		}
		target = *salespersonID
	}

	counts, err := s.repo.SalespersonCounts(ctx, target)
	if err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	return performance(counts), nil
}

// ClientTypeDistribution counts analyses per client type. Every type is
// present, in fixed order.
func (s *Service) ClientTypeDistribution(ctx context.Context, actor *entities.User) ([]entities.ClientTypeCount, error) {
	if err := policy.Authorize(actor.Role, policy.StatisticsRead); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	return cached(ctx, s, cache.StatisticsKey("client_types"), func() ([]entities.ClientTypeCount, error) {
		rows, err := s.repo.ClientTypeCounts(ctx)
		if err != nil {
			return nil, err
		}
		byType := make(map[entities.ClientType]entities.ClientTypeCount, len(rows))
		for _, r := range rows {
			b := byType[r.ClientType]
			b.Count += r.Count
			b.FallbackCount += r.FallbackCount
			byType[r.ClientType] = b
		}
		out := make([]entities.ClientTypeCount, 0, len(entities.ClientTypes))
		for _, ct := range entities.ClientTypes {
			b := byType[ct]
			b.ClientType = ct
			out = append(out, b)
		}
		return out, nil
	})
}

// MonthlyTrend counts meetings per calendar month, oldest first. months
// limits the window to the current month and the months-1 before it; 0
// returns every month with meetings.
func (s *Service) MonthlyTrend(ctx context.Context, actor *entities.User, months int) ([]entities.MonthlyCount, error) {
	if err := policy.Authorize(actor.Role, policy.StatisticsRead); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	if months < 0 || months > MaxTrendMonths {
		return nil, errors.ErrInvalidArgument("months must be between 0 and " + strconv.Itoa(MaxTrendMonths))
	}

	var since time.Time
	if months > 0 {
		now := s.now().UTC()
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	}

	key := cache.StatisticsKey("monthly_trend:" + strconv.Itoa(months))
	return cached(ctx, s, key, func() ([]entities.MonthlyCount, error) {
		rows, err := s.repo.MonthlyCounts(ctx, since)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []entities.MonthlyCount{}
		}
		return rows, nil
	})
}

// Leaderboard lists every salesperson with meetings, most meetings first
func (s *Service) Leaderboard(ctx context.Context, actor *entities.User) ([]*Performance, error) {
	if err := policy.Authorize(actor.Role, policy.StatisticsReadAny); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	rows, err := s.repo.AllSalespersonCounts(ctx)
	if err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	out := make([]*Performance, 0, len(rows))
	for _, r := range rows {
		out = append(out, performance(r))
	}
	return out, nil
}

// Invalidate drops every cached aggregate. Failures are logged and ignored.
func (s *Service) Invalidate(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.DeletePrefix(ctx, cache.StatisticsPrefix); err != nil {
		s.logger.Warn("failed to invalidate statistics cache", zap.Error(err))
	}
}

// cached serves key from the store or computes and stores it. The store is
// best effort: its errors are logged and the value is computed.
func cached[T any](ctx context.Context, s *Service, key string, load func() (T, error)) (T, error) {
	var zero T
	if s.store != nil && s.ttl > 0 {
		raw, ok, err := s.store.Get(ctx, key)
		if err != nil {
			s.logger.Warn("statistics cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			var v T
			if err := json.Unmarshal([]byte(raw), &v); err == nil {
				return v, nil
			}
			s.logger.Warn("discarding unreadable statistics cache entry", zap.String("key", key))
		}
	}

	v, err := load()
	if err != nil {
		return zero, usecaseErrors.Translate(err)
	}

	if s.store != nil && s.ttl > 0 {
		if b, err := json.Marshal(v); err == nil {
			if err := s.store.Set(ctx, key, string(b), s.ttl); err != nil {
				s.logger.Warn("statistics cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return v, nil
}

func performance(c entities.SalespersonCounts) *Performance {
	return &Performance{
		SalespersonID:   c.SalespersonID,
		SalespersonName: c.SalespersonName,
		TotalMeetings:   c.Total,
		SuccessCount:    c.Success,
		FailedCount:     c.Failed,
		InProgressCount: c.InProgress,
		SuccessRate:     rate(c.Success, c.Total),
		AvgScore:        c.AvgScore,
	}
}

// rate is part/total as an unrounded percentage, 0 for an empty total.
func rate(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
