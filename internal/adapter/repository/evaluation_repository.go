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

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository creates a new evaluation repository
func NewEvaluationRepository(db *gorm.DB) repositories.EvaluationRepository {
	return &evaluationRepository{db: db}
}

// Create relies on the unique index on meeting_id to reject a second evaluation
func (r *evaluationRepository) Create(ctx context.Context, evaluation *entities.Evaluation) error {
	if err := r.db.WithContext(ctx).Create(evaluation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entities.ErrEvaluationExists
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return entities.ErrMeetingNotFound
		}
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

func (r *evaluationRepository) FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Evaluation, error) {
	var evaluation entities.Evaluation
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&evaluation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrEvaluationNotFound
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}
	return &evaluation, nil
}

func (r *evaluationRepository) List(ctx context.Context, filters repositories.EvaluationFilters) ([]*entities.Evaluation, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Evaluation{})
	if filters.MeetingOwnerID != nil {
		query = query.Where("meeting_id IN (?)",
			r.db.Model(&entities.Meeting{}).Select("id").Where("salesperson_id = ?", *filters.MeetingOwnerID))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count evaluations: %w", err)
	}

	var evaluations []*entities.Evaluation
	if err := paginate(query, filters.Limit, filters.Offset).
		Order("evaluated_at DESC").
		Find(&evaluations).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list evaluations: %w", err)
	}
	return evaluations, total, nil
}
