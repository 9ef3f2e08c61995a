package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FailureReason is one cause recorded against a lost case.
type FailureReason string

const (
	ReasonBudgetMismatch   FailureReason = "budget_mismatch"
	ReasonTimelineIssue    FailureReason = "timeline_issue"
	ReasonStyleMismatch    FailureReason = "style_mismatch"
	ReasonCompetitor       FailureReason = "competitor"
	ReasonClientHesitation FailureReason = "client_hesitation"
	ReasonOther            FailureReason = "other"
)

func (r FailureReason) IsValid() bool {
	switch r {
	case ReasonBudgetMismatch, ReasonTimelineIssue, ReasonStyleMismatch,
		ReasonCompetitor, ReasonClientHesitation, ReasonOther:
		return true
	}
	return false
}

// FailedCase records why a meeting did not convert.
type FailedCase struct {
	ID               uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MeetingID        uuid.UUID                   `json:"meeting_id" gorm:"type:uuid;not null;index"`
	SalespersonID    uuid.UUID                   `json:"salesperson_id" gorm:"type:uuid;not null;index"`
	ClientName       string                      `json:"client_name" gorm:"type:varchar(255);not null"`
	FailureStage     MeetingStage                `json:"failure_stage" gorm:"type:varchar(32);not null"`
	FailureReasons   datatypes.JSONSlice[string] `json:"failure_reasons" gorm:"type:jsonb;not null"`
	DetailedAnalysis string                      `json:"detailed_analysis" gorm:"type:text;not null"`
	LessonsLearned   *string                     `json:"lessons_learned,omitempty" gorm:"type:text"`
	CreatedAt        time.Time                   `json:"created_at" gorm:"autoCreateTime"`
}

// NewFailedCase builds a failed case for meeting m.
func NewFailedCase(m *Meeting, stage MeetingStage, reasons []FailureReason, analysis string, lessons *string) *FailedCase {
	rs := make([]string, 0, len(reasons))
	for _, r := range reasons {
		rs = append(rs, string(r))
	}
	return &FailedCase{
		ID:               uuid.New(),
		MeetingID:        m.ID,
		SalespersonID:    m.SalespersonID,
		ClientName:       m.ClientName,
		FailureStage:     stage,
		FailureReasons:   datatypes.NewJSONSlice(rs),
		DetailedAnalysis: analysis,
		LessonsLearned:   lessons,
		CreatedAt:        time.Now().UTC(),
	}
}
