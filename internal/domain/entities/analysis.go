package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Sentiment is the overall tone of a meeting.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ClientType classifies what drives a client's decision.
type ClientType string

const (
	ClientBudget   ClientType = "budget"
	ClientDesign   ClientType = "design"
	ClientQuality  ClientType = "quality"
	ClientTimeline ClientType = "timeline"
	ClientHesitant ClientType = "hesitant"
)

// ClientTypes lists every client type in reporting order.
var ClientTypes = []ClientType{ClientBudget, ClientDesign, ClientQuality, ClientTimeline, ClientHesitant}

// AnalysisResult is the structured output of transcript analysis.
type AnalysisResult struct {
	Keywords               []string   `json:"keywords"`
	SentimentOverall       Sentiment  `json:"sentiment_overall"`
	SentimentScore         int        `json:"sentiment_score"`
	SuccessFactors         []string   `json:"success_factors"`
	QuestionQuality        int        `json:"question_quality"`
	ResponseCompleteness   int        `json:"response_completeness"`
	ProfessionalTermUsage  int        `json:"professional_term_usage"`
	ControlLevel           int        `json:"control_level"`
	ClientType             ClientType `json:"client_type"`
	ClientTypeConfidence   int        `json:"client_type_confidence"`
	ImprovementSuggestions []string   `json:"improvement_suggestions"`
}

// AIAnalysis is the stored analysis of one meeting.
type AIAnalysis struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;uniqueIndex"`

	Keywords               datatypes.JSONSlice[string] `json:"keywords" gorm:"type:jsonb;not null"`
	SentimentOverall       Sentiment                   `json:"sentiment_overall" gorm:"type:varchar(16);not null"`
	SentimentScore         int                         `json:"sentiment_score" gorm:"not null"`
	SuccessFactors         datatypes.JSONSlice[string] `json:"success_factors" gorm:"type:jsonb;not null"`
	QuestionQuality        int                         `json:"question_quality" gorm:"not null"`
	ResponseCompleteness   int                         `json:"response_completeness" gorm:"not null"`
	ProfessionalTermUsage  int                         `json:"professional_term_usage" gorm:"not null"`
	ControlLevel           int                         `json:"control_level" gorm:"not null"`
	ClientType             ClientType                  `json:"client_type" gorm:"type:varchar(16);not null;index"`
	ClientTypeConfidence   int                         `json:"client_type_confidence" gorm:"not null"`
	ImprovementSuggestions datatypes.JSONSlice[string] `json:"improvement_suggestions" gorm:"type:jsonb;not null"`

	// IsFallback marks rows holding the degraded default instead of a real analysis.
	IsFallback bool      `json:"is_fallback" gorm:"not null;default:false"`
	AnalyzedAt time.Time `json:"analyzed_at" gorm:"not null"`
}

// TableName overrides the gorm default of "ai_analysis"
func (AIAnalysis) TableName() string {
	return "ai_analyses"
}

// NewAIAnalysis stores a result for meetingID.
func NewAIAnalysis(meetingID uuid.UUID, r AnalysisResult, fallback bool) *AIAnalysis {
	return &AIAnalysis{
		ID:                     uuid.New(),
		MeetingID:              meetingID,
		Keywords:               datatypes.NewJSONSlice(nonNil(r.Keywords)),
		SentimentOverall:       r.SentimentOverall,
		SentimentScore:         r.SentimentScore,
		SuccessFactors:         datatypes.NewJSONSlice(nonNil(r.SuccessFactors)),
		QuestionQuality:        r.QuestionQuality,
		ResponseCompleteness:   r.ResponseCompleteness,
		ProfessionalTermUsage:  r.ProfessionalTermUsage,
		ControlLevel:           r.ControlLevel,
		ClientType:             r.ClientType,
		ClientTypeConfidence:   r.ClientTypeConfidence,
		ImprovementSuggestions: datatypes.NewJSONSlice(nonNil(r.ImprovementSuggestions)),
		IsFallback:             fallback,
		AnalyzedAt:             time.Now().UTC(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
