package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/repositories"
)

type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository creates a new AI analysis repository
func NewAnalysisRepository(db *gorm.DB) repositories.AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(ctx context.Context, analysis *entities.AIAnalysis) error {
	if err := r.db.WithContext(ctx).Create(analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.ErrAnalysisExists
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return entities.ErrMeetingNotFound
		}
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.AIAnalysis, error) {
	var analysis entities.AIAnalysis
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}

// ReplaceFallback swaps a stored fallback analysis for analysis. A real
// analysis is never overwritten.
func (r *analysisRepository) ReplaceFallback(ctx context.Context, analysis *entities.AIAnalysis) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("meeting_id = ? AND is_fallback = ?", analysis.MeetingID, true).Delete(&entities.AIAnalysis{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete fallback analysis: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return entities.ErrAnalysisExists
		}
		if err := tx.Create(analysis).Error; err != nil {
			return fmt.Errorf("failed to create analysis: %w", err)
		}
		return nil
	})
}
