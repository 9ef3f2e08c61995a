// Package analysis wraps the language model behind calls that never fail:
// each returns an Outcome that is either the model's validated answer or a
// fixed default.
package analysis

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/scoring"
	"github.com/johnquangdev/sales-review/pkg/ai"
)

// DefaultProjectName is suggested when no name can be generated.
const DefaultProjectName = "Untitled project"

const temperature = 0.3

var errEmptyTranscript = errors.New("transcript is empty")

// AnalyzeInput is the material for one transcript analysis.
type AnalyzeInput struct {
	Transcript string
	Stage      entities.MeetingStage
	Budget     *int
}

// FallbackAnalysis is stored when the model cannot produce a valid analysis.
func FallbackAnalysis() entities.AnalysisResult {
	return entities.AnalysisResult{
		Keywords:               []string{"analysis failed"},
		SentimentOverall:       entities.SentimentNeutral,
		SentimentScore:         50,
		SuccessFactors:         []string{"AI analysis temporarily unavailable"},
		QuestionQuality:        50,
		ResponseCompleteness:   50,
		ProfessionalTermUsage:  50,
		ControlLevel:           50,
		ClientType:             entities.ClientHesitant,
		ClientTypeConfidence:   0,
		ImprovementSuggestions: []string{"Please retry the analysis later"},
	}
}

// Service is the analysis adapter
type Service struct {
	client ai.ChatClient
	parser *parser
	logger *zap.Logger
}

// NewService creates the adapter over client
func NewService(client ai.ChatClient, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client: client,
		parser: newParser(),
		logger: logger,
	}
}

// Analyze scores the conversation quality and classifies the client.
func (s *Service) Analyze(ctx context.Context, in AnalyzeInput) Outcome[entities.AnalysisResult] {
	if strings.TrimSpace(in.Transcript) == "" {
		return degrade(s.logger, "analyze", FallbackAnalysis(), errEmptyTranscript)
	}

	content, err := s.complete(ctx, analysisSystemPrompt, analysisUserPrompt(in), analysisFormat)
	if err != nil {
		return degrade(s.logger, "analyze", FallbackAnalysis(), err)
	}
	result, err := s.parser.analysis(content)
	if err != nil {
		return degrade(s.logger, "analyze", FallbackAnalysis(), err)
	}
	return Ok(result)
}

// SuggestName proposes a project name from the transcript.
func (s *Service) SuggestName(ctx context.Context, transcript string) Outcome[string] {
	if strings.TrimSpace(transcript) == "" {
		return degrade(s.logger, "suggest_name", DefaultProjectName, errEmptyTranscript)
	}

	content, err := s.complete(ctx, nameSystemPrompt, nameUserPrompt(transcript), nil)
	if err != nil {
		return degrade(s.logger, "suggest_name", DefaultProjectName, err)
	}
	name, err := s.parser.name(content)
	if err != nil {
		return degrade(s.logger, "suggest_name", DefaultProjectName, err)
	}
	return Ok(name)
}

// SuggestEvaluation proposes a score for each rubric item.
func (s *Service) SuggestEvaluation(ctx context.Context, transcript string, stage entities.MeetingStage) Outcome[scoring.Sheet] {
	fallback := scoring.Uniform(3)
	if strings.TrimSpace(transcript) == "" {
		return degrade(s.logger, "suggest_evaluation", fallback, errEmptyTranscript)
	}

	content, err := s.complete(ctx, suggestionSystemPrompt, suggestionUserPrompt(transcript, stage), suggestionFormat)
	if err != nil {
		return degrade(s.logger, "suggest_evaluation", fallback, err)
	}
	sheet, err := s.parser.scores(content)
	if err != nil {
		return degrade(s.logger, "suggest_evaluation", fallback, err)
	}
	return Ok(sheet)
}

func (s *Service) complete(ctx context.Context, system, user string, format *ai.ResponseFormat) (string, error) {
	if s.client == nil {
		return "", errors.New("analysis client is not configured")
	}
	return s.client.Complete(ctx, ai.ChatRequest{
		Messages: []ai.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    temperature,
		ResponseFormat: format,
	})
}

func degrade[T any](logger *zap.Logger, op string, v T, cause error) Outcome[T] {
	logger.Warn("analysis degraded to fallback",
		zap.String("operation", op),
		zap.Error(cause),
	)
	return Fallback(v, cause)
}
