package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
)

// StatisticsRepository runs the read-only aggregate queries
type StatisticsRepository interface {
	// StatusCounts counts all meetings by case status
	StatusCounts(ctx context.Context) (entities.StatusCounts, error)

	// SalespersonCounts aggregates one salesperson's meetings and evaluation scores
	SalespersonCounts(ctx context.Context, salespersonID uuid.UUID) (entities.SalespersonCounts, error)

	// AllSalespersonCounts aggregates every salesperson with at least one meeting
	AllSalespersonCounts(ctx context.Context) ([]entities.SalespersonCounts, error)

	// ClientTypeCounts groups analyses by client type; absent types are omitted
	ClientTypeCounts(ctx context.Context) ([]entities.ClientTypeCount, error)

	// MonthlyCounts groups meetings by calendar month of meeting date, ascending.
	// A zero since includes every month.
	MonthlyCounts(ctx context.Context, since time.Time) ([]entities.MonthlyCount, error)
}
