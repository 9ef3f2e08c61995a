package media

import (
	"context"
	stdErrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
)

type memoryStore struct {
	objects map[string]string
	err     error
}

func (m *memoryStore) Upload(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.objects[name] = string(b)
	return "https://media.example.com/bucket/" + name, nil
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f fakeTranscriber) Transcribe(context.Context, string) (string, error) { return f.text, f.err }

var owner = &entities.User{ID: uuid.New(), Role: entities.RoleSalesperson}

func TestUploadAudio(t *testing.T) {
	store := &memoryStore{objects: map[string]string{}}
	svc := NewService(store, nil, zap.NewNop())

	up, err := svc.UploadAudio(context.Background(), owner, UploadInput{
		Filename:    "client call.MP3",
		ContentType: "audio/mpeg",
		Size:        4,
		Body:        strings.NewReader("ID3!"),
	})
	require.NoError(t, err)

	prefix := "audio/" + owner.ID.String() + "/"
	assert.True(t, strings.HasPrefix(up.Object, prefix))
	assert.True(t, strings.HasSuffix(up.Object, ".mp3"))
	assert.Equal(t, "ID3!", store.objects[up.Object])
	assert.Contains(t, up.URL, up.Object)
}

func TestUploadAudio_Rejects(t *testing.T) {
	store := &memoryStore{objects: map[string]string{}}
	svc := NewService(store, nil, zap.NewNop())

	tests := []struct {
		name string
		in   UploadInput
	}{
		{name: "not audio", in: UploadInput{Filename: "a.pdf", ContentType: "application/pdf", Size: 10, Body: strings.NewReader("x")}},
		{name: "too large", in: UploadInput{Filename: "a.wav", ContentType: "audio/wav", Size: MaxAudioSize + 1, Body: strings.NewReader("x")}},
		{name: "empty", in: UploadInput{Filename: "a.wav", ContentType: "audio/wav", Size: 0, Body: strings.NewReader("")}},
		{name: "bad content type", in: UploadInput{Filename: "a.wav", ContentType: ";;", Size: 1, Body: strings.NewReader("x")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UploadAudio(context.Background(), owner, tt.in)
			assert.True(t, errors.Is(err, errors.ErrorCode_INVALID_ARGUMENT), "got %v", err)
		})
	}
	assert.Empty(t, store.objects)
}

func TestUploadAudio_StorageFailure(t *testing.T) {
	svc := NewService(&memoryStore{err: stdErrors.New("bucket gone")}, nil, zap.NewNop())
	_, err := svc.UploadAudio(context.Background(), owner, UploadInput{Filename: "a.wav", ContentType: "audio/wav", Size: 1, Body: strings.NewReader("x")})
	assert.True(t, errors.Is(err, errors.ErrorCode_INTEGRATION_STORAGE_FAILED))
}

func TestTranscribe(t *testing.T) {
	svc := NewService(nil, fakeTranscriber{text: "hello there"}, zap.NewNop())
	got, err := svc.Transcribe(context.Background(), owner, "https://media.example.com/a.mp3")
	require.NoError(t, err)
	assert.Equal(t, "hello there", got.Text)

	_, err = svc.Transcribe(context.Background(), owner, "file:///etc/passwd")
	assert.True(t, errors.Is(err, errors.ErrorCode_INVALID_ARGUMENT))

	failing := NewService(nil, fakeTranscriber{err: stdErrors.New("quota")}, zap.NewNop())
	_, err = failing.Transcribe(context.Background(), owner, "https://media.example.com/a.mp3")
	var appErr errors.AppError
	require.True(t, stdErrors.As(err, &appErr))
	assert.Equal(t, 502, appErr.HTTPCode)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".m4a", extension("memo.M4A", "audio/mp4"))
	assert.Equal(t, ".wav", extension(`C:\calls\x.wav`, "audio/wav"))
	assert.Equal(t, "", extension("noext", "audio/x-unknown-kind"))
}
