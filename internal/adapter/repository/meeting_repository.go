package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create creates a new meeting
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	if err := r.db.WithContext(ctx).Create(meeting).Error; err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

// FindByID retrieves a meeting by its ID
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meeting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to find meeting: %w", err)
	}
	return &meeting, nil
}

// List retrieves meetings matching the filters, most recent meeting date first
func (r *meetingRepository) List(ctx context.Context, filters repositories.MeetingFilters) ([]*entities.Meeting, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.Meeting{})

	if filters.OwnerID != nil {
		query = query.Where("salesperson_id = ?", *filters.OwnerID)
	}
	if filters.Status != nil {
		query = query.Where("case_status = ?", *filters.Status)
	}
	if filters.Stage != nil {
		query = query.Where("meeting_stage = ?", *filters.Stage)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count meetings: %w", err)
	}

	var meetings []*entities.Meeting
	if err := paginate(query, filters.Limit, filters.Offset).
		Order("meeting_date DESC").
		Order("created_at DESC").
		Find(&meetings).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}

	return meetings, total, nil
}

// UpdateStatus updates the case status of a meeting
func (r *meetingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.CaseStatus) error {
	return updateMeetingStatus(r.db.WithContext(ctx), id, status)
}

func updateMeetingStatus(tx *gorm.DB, id uuid.UUID, status entities.CaseStatus) error {
	res := tx.Model(&entities.Meeting{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"case_status": status,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update meeting status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.ErrMeetingNotFound
	}
	return nil
}

// Delete removes a meeting and every row that hangs off it
func (r *meetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		children := []interface{}{
			&entities.Evaluation{},
			&entities.AIAnalysis{},
			&entities.FailedCase{},
		}
		for _, child := range children {
			if err := tx.Where("meeting_id = ?", id).Delete(child).Error; err != nil {
				return fmt.Errorf("failed to delete meeting children: %w", err)
			}
		}

		res := tx.Delete(&entities.Meeting{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete meeting: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return entities.ErrMeetingNotFound
		}
		return nil
	})
}
