package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/sales-review/pkg/config"
)

func newTestGroq(t *testing.T, h http.HandlerFunc) *GroqClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewGroqClient(config.GroqConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/",
		Model:   "test-model",
		Timeout: 2 * time.Second,
	})
}

func TestGroqClient_Complete(t *testing.T) {
	var got ChatRequest
	client := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	})

	out, err := client.Complete(context.Background(), ChatRequest{
		Messages:    []Message{{Role: "user", Content: "hi"}},
		Temperature: 0.3,
		ResponseFormat: &ResponseFormat{
			Type:       "json_schema",
			JSONSchema: &JSONSchema{Name: "x", Strict: true, Schema: map[string]any{"type": "object"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 0.3, got.Temperature)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_schema", got.ResponseFormat.Type)
	assert.True(t, got.ResponseFormat.JSONSchema.Strict)
}

func TestGroqClient_StatusError(t *testing.T) {
	calls := 0
	client := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("overloaded"))
	})

	_, err := client.Complete(context.Background(), ChatRequest{Messages: []Message{{Role: "user", Content: "hi"}}})
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, 1, calls, "a failed call is not retried")
}

func TestGroqClient_EmptyCompletion(t *testing.T) {
	client := newTestGroq(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Complete(context.Background(), ChatRequest{})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestGroqClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewGroqClient(config.GroqConfig{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := client.Complete(context.Background(), ChatRequest{})
	assert.Error(t, err)
}

func TestGroqClient_MissingKey(t *testing.T) {
	client := NewGroqClient(config.GroqConfig{BaseURL: "http://unused"})
	_, err := client.Complete(context.Background(), ChatRequest{})
	assert.Error(t, err)
}
