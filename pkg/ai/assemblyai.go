package ai

import (
	"context"
	"errors"
	"fmt"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
)

// Transcriber turns a reachable audio URL into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// AssemblyAIClient transcribes audio through the AssemblyAI SDK
type AssemblyAIClient struct {
	client *aai.Client
}

var _ Transcriber = (*AssemblyAIClient)(nil)

// NewAssemblyAIClient creates a client for apiKey. Extra options are passed to
// the SDK, e.g. aai.WithBaseURL in tests.
func NewAssemblyAIClient(apiKey string, opts ...aai.ClientOption) *AssemblyAIClient {
	opts = append([]aai.ClientOption{aai.WithAPIKey(apiKey)}, opts...)
	return &AssemblyAIClient{client: aai.NewClientWithOptions(opts...)}
}

// Transcribe submits audioURL and waits for the transcript to complete.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audioURL string) (string, error) {
	params := &aai.TranscriptOptionalParams{
		LanguageDetection: aai.Bool(true),
		Punctuate:         aai.Bool(true),
		FormatText:        aai.Bool(true),
	}

	transcript, err := c.client.Transcripts.TranscribeFromURL(ctx, audioURL, params)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		return "", fmt.Errorf("transcription failed: %s", aai.ToString(transcript.Error))
	}

	text := aai.ToString(transcript.Text)
	if text == "" {
		return "", errors.New("transcription returned no text")
	}
	return text, nil
}
