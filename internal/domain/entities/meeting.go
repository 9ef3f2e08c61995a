package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingStage is the position of a meeting in the sales funnel.
type MeetingStage string

const (
	StageInitial              MeetingStage = "initial"
	StageSecond               MeetingStage = "second"
	StageThird                MeetingStage = "third"
	StageDesignContract       MeetingStage = "design_contract"
	StageConstructionContract MeetingStage = "construction_contract"
)

// MeetingStages lists the funnel in order.
var MeetingStages = []MeetingStage{
	StageInitial,
	StageSecond,
	StageThird,
	StageDesignContract,
	StageConstructionContract,
}

func (s MeetingStage) IsValid() bool {
	for _, v := range MeetingStages {
		if s == v {
			return true
		}
	}
	return false
}

// CaseStatus is the commercial outcome of the case a meeting belongs to.
type CaseStatus string

const (
	CaseInProgress CaseStatus = "in_progress"
	CaseSuccess    CaseStatus = "success"
	CaseFailed     CaseStatus = "failed"
)

func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseInProgress, CaseSuccess, CaseFailed:
		return true
	}
	return false
}

// TranscriptSource records where the transcript text came from.
type TranscriptSource string

const (
	TranscriptRecording TranscriptSource = "recording"
	TranscriptUpload    TranscriptSource = "upload"
	TranscriptManual    TranscriptSource = "manual"
)

func (s TranscriptSource) IsValid() bool {
	switch s {
	case TranscriptRecording, TranscriptUpload, TranscriptManual:
		return true
	}
	return false
}

// Meeting is a logged client consultation owned by the salesperson who created it.
type Meeting struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalespersonID   uuid.UUID `json:"salesperson_id" gorm:"type:uuid;not null;index"`
	SalespersonName string    `json:"salesperson_name" gorm:"type:varchar(255);not null"`
	SalesDesigner   *string   `json:"sales_designer,omitempty" gorm:"type:varchar(255)"`
	DrawingDesigner *string   `json:"drawing_designer,omitempty" gorm:"type:varchar(255)"`

	ProjectName   string  `json:"project_name" gorm:"type:varchar(255);not null"`
	ProjectType   *string `json:"project_type,omitempty" gorm:"type:varchar(100)"`
	ClientName    string  `json:"client_name" gorm:"type:varchar(255);not null"`
	ClientContact *string `json:"client_contact,omitempty" gorm:"type:varchar(255)"`
	ClientBudget  *int    `json:"client_budget,omitempty"`

	MeetingStage     MeetingStage     `json:"meeting_stage" gorm:"type:varchar(32);not null"`
	MeetingDate      time.Time        `json:"meeting_date" gorm:"not null;index"`
	TranscriptSource TranscriptSource `json:"transcript_source" gorm:"type:varchar(16);not null;default:'manual'"`
	TranscriptText   string           `json:"transcript_text" gorm:"type:text;not null"`
	AudioFileURL     *string          `json:"audio_file_url,omitempty" gorm:"column:audio_file_url;type:text"`
	CaseStatus       CaseStatus       `json:"case_status" gorm:"type:varchar(16);not null;default:'in_progress';index"`
	Notes            *string          `json:"notes,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsOwnedBy reports whether userID created the meeting.
func (m *Meeting) IsOwnedBy(userID uuid.UUID) bool {
	return m.SalespersonID == userID
}

// Validate validates meeting data
func (m *Meeting) Validate() error {
	if !m.MeetingStage.IsValid() {
		return ErrInvalidStage
	}
	if !m.CaseStatus.IsValid() {
		return ErrInvalidCaseStatus
	}
	return nil
}
