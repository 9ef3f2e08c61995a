package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
)

// FailedCaseFilters narrows a failed-case listing.
type FailedCaseFilters struct {
	SalespersonID *uuid.UUID
	Limit         int
	Offset        int
}

// FailedCaseRepository defines the interface for failed case data access
type FailedCaseRepository interface {
	// CreateAndMarkFailed stores the failed case and sets its meeting's status
	// to failed in one transaction
	CreateAndMarkFailed(ctx context.Context, failedCase *entities.FailedCase) error

	// FindByMeetingID returns the most recent failed case of a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.FailedCase, error)

	// List returns failed cases, newest first
	List(ctx context.Context, filters FailedCaseFilters) ([]*entities.FailedCase, int64, error)
}
