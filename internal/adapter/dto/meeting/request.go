package meeting

import "time"

// CreateMeetingRequest represents the request to log a client meeting
type CreateMeetingRequest struct {
	SalesDesigner    *string    `json:"sales_designer,omitempty" validate:"omitempty,max=255"`
	DrawingDesigner  *string    `json:"drawing_designer,omitempty" validate:"omitempty,max=255"`
	ProjectName      string     `json:"project_name" validate:"required,max=255"`
	ProjectType      *string    `json:"project_type,omitempty" validate:"omitempty,max=100"`
	ClientName       string     `json:"client_name" validate:"required,max=255"`
	ClientContact    *string    `json:"client_contact,omitempty" validate:"omitempty,max=255"`
	ClientBudget     *int       `json:"client_budget,omitempty" validate:"omitempty,min=0"`
	MeetingStage     string     `json:"meeting_stage" validate:"required,oneof=initial second third design_contract construction_contract"`
	MeetingDate      *time.Time `json:"meeting_date,omitempty"`
	TranscriptSource string     `json:"transcript_source,omitempty" validate:"omitempty,oneof=recording upload manual"`
	TranscriptText   string     `json:"transcript_text" validate:"required"`
	AudioFileURL     *string    `json:"audio_file_url,omitempty" validate:"omitempty,url"`
	Notes            *string    `json:"notes,omitempty"`
}

// ListMeetingsRequest represents query parameters for listing meetings
type ListMeetingsRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=in_progress success failed"`
	Stage  string `query:"stage" validate:"omitempty,oneof=initial second third design_contract construction_contract"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

// UpdateStatusRequest sets a meeting's case status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in_progress success failed"`
}

// SuggestNameRequest asks for a project name derived from a transcript
type SuggestNameRequest struct {
	TranscriptText string `json:"transcript_text" validate:"required"`
}
