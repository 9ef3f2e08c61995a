package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
)

// AnalysisRepository defines the interface for AI analysis data access
type AnalysisRepository interface {
	// Create stores an analysis; a second one for the same meeting yields entities.ErrAnalysisExists
	Create(ctx context.Context, analysis *entities.AIAnalysis) error

	// FindByMeetingID finds the analysis of a meeting
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.AIAnalysis, error)

	// ReplaceFallback overwrites a stored fallback analysis; a real one yields entities.ErrAnalysisExists
	ReplaceFallback(ctx context.Context, analysis *entities.AIAnalysis) error
}
