package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/repositories"
)

const statusCountColumns = `
	COUNT(*) AS total,
	COUNT(*) FILTER (WHERE m.case_status = 'success') AS success,
	COUNT(*) FILTER (WHERE m.case_status = 'failed') AS failed,
	COUNT(*) FILTER (WHERE m.case_status = 'in_progress') AS in_progress`

type statisticsRepository struct {
	db *gorm.DB
}

// NewStatisticsRepository creates the aggregate query repository
func NewStatisticsRepository(db *gorm.DB) repositories.StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) StatusCounts(ctx context.Context) (entities.StatusCounts, error) {
	var counts entities.StatusCounts
	err := r.db.WithContext(ctx).
		Raw(`SELECT` + statusCountColumns + ` FROM meetings m`).
		Scan(&counts).Error
	if err != nil {
		return entities.StatusCounts{}, fmt.Errorf("failed to count meetings by status: %w", err)
	}
	return counts, nil
}

// salespersonQuery joins evaluations through the meeting owner, not the evaluator.
const salespersonQuery = `SELECT
	m.salesperson_id,
	MAX(m.salesperson_name) AS salesperson_name,` + statusCountColumns + `,
	COALESCE(AVG(e.total_score), 0)::float8 AS avg_score
FROM meetings m
LEFT JOIN evaluations e ON e.meeting_id = m.id`

func (r *statisticsRepository) SalespersonCounts(ctx context.Context, salespersonID uuid.UUID) (entities.SalespersonCounts, error) {
	var rows []entities.SalespersonCounts
	err := r.db.WithContext(ctx).
		Raw(salespersonQuery+` WHERE m.salesperson_id = ? GROUP BY m.salesperson_id`, salespersonID).
		Scan(&rows).Error
	if err != nil {
		return entities.SalespersonCounts{}, fmt.Errorf("failed to aggregate salesperson: %w", err)
	}
	if len(rows) == 0 {
		return entities.SalespersonCounts{SalespersonID: salespersonID}, nil
	}
	return rows[0], nil
}

func (r *statisticsRepository) AllSalespersonCounts(ctx context.Context) ([]entities.SalespersonCounts, error) {
	rows := []entities.SalespersonCounts{}
	err := r.db.WithContext(ctx).
		Raw(salespersonQuery + ` GROUP BY m.salesperson_id ORDER BY total DESC, salesperson_name ASC`).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate salespeople: %w", err)
	}
	return rows, nil
}

func (r *statisticsRepository) ClientTypeCounts(ctx context.Context) ([]entities.ClientTypeCount, error) {
	rows := []entities.ClientTypeCount{}
	err := r.db.WithContext(ctx).
		Model(&entities.AIAnalysis{}).
		Select("client_type, COUNT(*) AS count, COUNT(*) FILTER (WHERE is_fallback) AS fallback_count").
		Group("client_type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count client types: %w", err)
	}
	return rows, nil
}

func (r *statisticsRepository) MonthlyCounts(ctx context.Context, since time.Time) ([]entities.MonthlyCount, error) {
	rows := []entities.MonthlyCount{}
	err := r.db.WithContext(ctx).
		Raw(`SELECT
	to_char(date_trunc('month', meeting_date AT TIME ZONE 'UTC'), 'YYYY-MM') AS month,
	COUNT(*) AS count,
	COUNT(*) FILTER (WHERE case_status = 'success') AS success_count
FROM meetings
WHERE meeting_date >= ?
GROUP BY 1
ORDER BY 1 ASC`, since).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly trend: %w", err)
	}
	return rows, nil
}
