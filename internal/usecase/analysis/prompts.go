package analysis

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/scoring"
	"github.com/johnquangdev/sales-review/pkg/ai"
)

const analysisSystemPrompt = `You are an analyst reviewing conversations between interior-design salespeople and their clients.
Assess the transcript along these dimensions:

1. Keywords: 5-10 important terms (style, materials, budget, schedule).
2. Sentiment: overall tone (positive, neutral, negative) and a score from 0 to 100, higher is more positive.
3. Success factors: what helped or hindered closing the deal.
4. Conversation quality, each 0-100:
   - question_quality: use of open questions and follow-up depth
   - response_completeness: whether client concerns were fully answered
   - professional_term_usage: how well professional knowledge was shown
   - control_level: how well the salesperson steered the conversation
5. Client type, one of:
   - budget: price sensitive, keeps returning to cost
   - design: values aesthetics and creative direction
   - quality: focuses on materials and workmanship
   - timeline: under time pressure, focused on completion dates
   - hesitant: needs several meetings, slow to decide
   plus a confidence from 0 to 100.
6. Improvement suggestions: 3-5 concrete, actionable suggestions for the weak areas.

Be objective and practical. Answer with JSON only.`

const nameSystemPrompt = `You help interior-design salespeople name their projects from meeting notes.
Rules:
1. Prefer the location the client mentions (district, street, building).
2. Combine it with the kind of project (apartment, house, office, shop, renovation).
3. Add a distinctive feature such as layout or style when it is obvious.
4. Keep it short, 2 to 6 words, without quotes or trailing punctuation.
Examples: "Riverside Three-Bedroom", "Downtown Office Fit-out", "Old Villa Renovation".
Reply with the project name only.`

var suggestionSystemPrompt = buildSuggestionPrompt()

func buildSuggestionPrompt() string {
	var b strings.Builder
	b.WriteString("You score interior-design sales meetings. For each of the 20 items below give 1 (not done), 3 (done) or 5 (done well).\n\nItems:\n")
	for i, item := range scoring.Rubric {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Description)
	}
	b.WriteString("\nBe objective. When the transcript shows no evidence of an item, give it a low score. Answer with JSON only.")
	return b.String()
}

func analysisUserPrompt(in AnalyzeInput) string {
	var b strings.Builder
	b.WriteString("Analyze the following interior-design sales conversation.\n\n")
	fmt.Fprintf(&b, "Meeting stage: %s\n", in.Stage)
	if in.Budget != nil && *in.Budget > 0 {
		fmt.Fprintf(&b, "Client budget: %d\n", *in.Budget)
	}
	b.WriteString("\nTranscript:\n")
	b.WriteString(in.Transcript)
	return b.String()
}

func suggestionUserPrompt(transcript string, stage entities.MeetingStage) string {
	return fmt.Sprintf("Suggest scores for the following conversation.\n\nMeeting stage: %s\n\nTranscript:\n%s", stage, transcript)
}

func nameUserPrompt(transcript string) string {
	return "Suggest a short project name for this conversation:\n\n" + transcript
}

func stringArray() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
}

func integer(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

func enum(values ...string) map[string]any {
	return map[string]any{"type": "string", "enum": values}
}

func clientTypeNames() []string {
	names := make([]string, len(entities.ClientTypes))
	for i, t := range entities.ClientTypes {
		names[i] = string(t)
	}
	return names
}

// analysisFormat mirrors entities.AnalysisResult.
var analysisFormat = &ai.ResponseFormat{
	Type: "json_schema",
	JSONSchema: &ai.JSONSchema{
		Name:   "meeting_analysis",
		Strict: true,
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"keywords":                stringArray(),
				"sentiment_overall":       enum("positive", "neutral", "negative"),
				"sentiment_score":         integer("0-100, higher is more positive"),
				"success_factors":         stringArray(),
				"question_quality":        integer("0-100"),
				"response_completeness":   integer("0-100"),
				"professional_term_usage": integer("0-100"),
				"control_level":           integer("0-100"),
				"client_type":             enum(clientTypeNames()...),
				"client_type_confidence":  integer("0-100"),
				"improvement_suggestions": stringArray(),
			},
			"required": []string{
				"keywords", "sentiment_overall", "sentiment_score", "success_factors",
				"question_quality", "response_completeness", "professional_term_usage",
				"control_level", "client_type", "client_type_confidence", "improvement_suggestions",
			},
			"additionalProperties": false,
		},
	},
}

var suggestionFormat = buildSuggestionFormat()

func buildSuggestionFormat() *ai.ResponseFormat {
	props := make(map[string]any, scoring.ItemCount)
	required := make([]string, 0, scoring.ItemCount)
	for i := 1; i <= scoring.ItemCount; i++ {
		key := scoring.Key(i)
		props[key] = map[string]any{"type": "integer", "enum": []int{1, 3, 5}}
		required = append(required, key)
	}
	return &ai.ResponseFormat{
		Type: "json_schema",
		JSONSchema: &ai.JSONSchema{
			Name:   "evaluation_suggestion",
			Strict: true,
			Schema: map[string]any{
				"type":                 "object",
				"properties":           props,
				"required":             required,
				"additionalProperties": false,
			},
		},
	}
}
