package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/scoring"
	"github.com/johnquangdev/sales-review/pkg/validator"
)

const maxNameLength = 100

var errEmptyName = errors.New("model returned an empty name")

// parser turns raw model content into validated values.
type parser struct {
	validate *validator.CustomValidator
}

func newParser() *parser {
	return &parser{validate: validator.New()}
}

// analysisPayload is the wire shape of a model reply. Numbers are pointers
// so an omitted field is rejected instead of reading as zero. Lists must be
// present but may be empty.
type analysisPayload struct {
	Keywords               []string            `json:"keywords" validate:"required"`
	SentimentOverall       entities.Sentiment  `json:"sentiment_overall" validate:"required,oneof=positive neutral negative"`
	SentimentScore         *int                `json:"sentiment_score" validate:"required,min=0,max=100"`
	SuccessFactors         []string            `json:"success_factors" validate:"required"`
	QuestionQuality        *int                `json:"question_quality" validate:"required,min=0,max=100"`
	ResponseCompleteness   *int                `json:"response_completeness" validate:"required,min=0,max=100"`
	ProfessionalTermUsage  *int                `json:"professional_term_usage" validate:"required,min=0,max=100"`
	ControlLevel           *int                `json:"control_level" validate:"required,min=0,max=100"`
	ClientType             entities.ClientType `json:"client_type" validate:"required,oneof=budget design quality timeline hesitant"`
	ClientTypeConfidence   *int                `json:"client_type_confidence" validate:"required,min=0,max=100"`
	ImprovementSuggestions []string            `json:"improvement_suggestions" validate:"required"`
}

func (p *parser) analysis(content string) (entities.AnalysisResult, error) {
	var raw analysisPayload
	dec := json.NewDecoder(strings.NewReader(extractJSON(content)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return entities.AnalysisResult{}, fmt.Errorf("failed to parse analysis: %w", err)
	}
	if err := p.validate.Validate(raw); err != nil {
		return entities.AnalysisResult{}, fmt.Errorf("invalid analysis: %w", err)
	}
	return entities.AnalysisResult{
		Keywords:               raw.Keywords,
		SentimentOverall:       raw.SentimentOverall,
		SentimentScore:         *raw.SentimentScore,
		SuccessFactors:         raw.SuccessFactors,
		QuestionQuality:        *raw.QuestionQuality,
		ResponseCompleteness:   *raw.ResponseCompleteness,
		ProfessionalTermUsage:  *raw.ProfessionalTermUsage,
		ControlLevel:           *raw.ControlLevel,
		ClientType:             raw.ClientType,
		ClientTypeConfidence:   *raw.ClientTypeConfidence,
		ImprovementSuggestions: raw.ImprovementSuggestions,
	}, nil
}

func (p *parser) scores(content string) (scoring.Sheet, error) {
	var raw map[string]int
	if err := json.Unmarshal([]byte(extractJSON(content)), &raw); err != nil {
		return scoring.Sheet{}, fmt.Errorf("failed to parse scores: %w", err)
	}
	res, err := scoring.Compute(raw)
	if err != nil {
		return scoring.Sheet{}, err
	}
	return res.Scores, nil
}

func (p *parser) name(content string) (string, error) {
	name := strings.TrimSpace(content)
	if i := strings.IndexAny(name, "\r\n"); i >= 0 {
		name = name[:i]
	}
	name = strings.Trim(name, "\"'`*# ")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errEmptyName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}
	return name, nil
}

// extractJSON strips a markdown code fence around the payload, if any.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
