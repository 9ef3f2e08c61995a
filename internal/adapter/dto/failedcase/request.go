package failedcase

// CreateFailedCaseRequest records why a case was lost
type CreateFailedCaseRequest struct {
	MeetingID        string   `json:"meeting_id" validate:"required,uuid"`
	ClientName       string   `json:"client_name,omitempty" validate:"omitempty,max=255"`
	FailureStage     string   `json:"failure_stage" validate:"required,oneof=initial second third design_contract construction_contract"`
	FailureReasons   []string `json:"failure_reasons" validate:"required,min=1,dive,oneof=budget_mismatch timeline_issue style_mismatch competitor client_hesitation other"`
	DetailedAnalysis string   `json:"detailed_analysis" validate:"required"`
	LessonsLearned   *string  `json:"lessons_learned,omitempty"`
}
