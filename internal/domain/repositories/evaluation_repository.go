package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
)

// EvaluationFilters narrows an evaluation listing. MeetingOwnerID restricts
// to evaluations of meetings owned by that salesperson.
type EvaluationFilters struct {
	MeetingOwnerID *uuid.UUID
	Limit          int
	Offset         int
}

// EvaluationRepository defines the interface for evaluation data access
type EvaluationRepository interface {
	// Create stores an evaluation; a second one for the same meeting yields entities.ErrEvaluationExists
	Create(ctx context.Context, evaluation *entities.Evaluation) error

	// FindByMeetingID finds the evaluation of a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Evaluation, error)

	// List returns evaluations, most recent first
	List(ctx context.Context, filters EvaluationFilters) ([]*entities.Evaluation, int64, error)
}
