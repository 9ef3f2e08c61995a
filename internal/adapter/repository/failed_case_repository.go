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

type failedCaseRepository struct {
	db *gorm.DB
}

// NewFailedCaseRepository creates a new failed case repository
func NewFailedCaseRepository(db *gorm.DB) repositories.FailedCaseRepository {
	return &failedCaseRepository{db: db}
}

// CreateAndMarkFailed writes the failed case and flips the meeting to failed atomically
func (r *failedCaseRepository) CreateAndMarkFailed(ctx context.Context, failedCase *entities.FailedCase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateMeetingStatus(tx, failedCase.MeetingID, entities.CaseFailed); err != nil {
			return err
		}
		if err := tx.Create(failedCase).Error; err != nil {
			return fmt.Errorf("failed to create failed case: %w", err)
		}
		return nil
	})
}

func (r *failedCaseRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.FailedCase, error) {
	var fc entities.FailedCase
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		First(&fc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrFailedCaseNotFound
		}
		return nil, fmt.Errorf("failed to find failed case: %w", err)
	}
	return &fc, nil
}

func (r *failedCaseRepository) List(ctx context.Context, filters repositories.FailedCaseFilters) ([]*entities.FailedCase, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.FailedCase{})
	if filters.SalespersonID != nil {
		query = query.Where("salesperson_id = ?", *filters.SalespersonID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count failed cases: %w", err)
	}

	var cases []*entities.FailedCase
	if err := paginate(query, filters.Limit, filters.Offset).
		Order("created_at DESC").
		Find(&cases).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list failed cases: %w", err)
	}
	return cases, total, nil
}
