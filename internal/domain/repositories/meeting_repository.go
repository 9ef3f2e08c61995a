package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
)

// MeetingFilters narrows a meeting listing. Results are ordered by meeting date, newest first.
type MeetingFilters struct {
	OwnerID *uuid.UUID
	Status  *entities.CaseStatus
	Stage   *entities.MeetingStage
	Limit   int
	Offset  int
}

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// Create creates a new meeting
	Create(ctx context.Context, meeting *entities.Meeting) error

	// FindByID finds a meeting by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// List returns the matching page and the total match count
	List(ctx context.Context, filters MeetingFilters) ([]*entities.Meeting, int64, error)

	// UpdateStatus sets the case status
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.CaseStatus) error

	// Delete removes a meeting with its evaluation, analysis and failed cases
	Delete(ctx context.Context, id uuid.UUID) error
}
