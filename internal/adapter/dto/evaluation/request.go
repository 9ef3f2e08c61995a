package evaluation

// CreateEvaluationRequest is a complete 20-item score sheet for one meeting.
// Scores are keyed score1..score20 and each value is 1, 3 or 5.
type CreateEvaluationRequest struct {
	MeetingID   string         `json:"meeting_id" validate:"required,uuid"`
	Scores      map[string]int `json:"scores" validate:"required,len=20,dive,score"`
	ManualNotes *string        `json:"manual_notes,omitempty"`
}
