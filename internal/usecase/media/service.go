package media

import (
	"context"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/policy"
	usecaseErrors "github.com/johnquangdev/sales-review/internal/usecase/errors"
	"github.com/johnquangdev/sales-review/pkg/ai"
)

// MaxAudioSize is the largest accepted upload, 100 MiB.
const MaxAudioSize int64 = 100 << 20

// ObjectStore stores uploaded files
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

// UploadInput is one uploaded audio file
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Upload is a stored audio file
type Upload struct {
	Object string `json:"object"`
	URL    string `json:"url"`
}

// Transcript is the text of an audio file
type Transcript struct {
	AudioURL string `json:"audio_url"`
	Text     string `json:"text"`
}

// Service handles audio uploads and transcription. Either dependency may be
// nil, which disables the matching operation.
type Service struct {
	store       ObjectStore
	transcriber ai.Transcriber
	logger      *zap.Logger
}

// NewService creates a new media service
func NewService(store ObjectStore, transcriber ai.Transcriber, logger *zap.Logger) *Service {
	return &Service{store: store, transcriber: transcriber, logger: logger}
}

func (s *Service) UploadEnabled() bool     { return s.store != nil }
func (s *Service) TranscribeEnabled() bool { return s.transcriber != nil }

// UploadAudio stores an audio file under audio/<owner>/<random><ext>
func (s *Service) UploadAudio(ctx context.Context, actor *entities.User, in UploadInput) (*Upload, error) {
	if err := policy.Authorize(actor.Role, policy.MediaWrite); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	if s.store == nil {
		return nil, errors.ErrNotFound("audio storage")
	}

	mediaType, _, err := mime.ParseMediaType(in.ContentType)
	if err != nil || !strings.HasPrefix(mediaType, "audio/") {
		return nil, errors.ErrInvalidArgument("only audio files are accepted")
	}
	if in.Size <= 0 {
		return nil, errors.ErrInvalidArgument("file is empty")
	}
	if in.Size > MaxAudioSize {
		return nil, errors.ErrInvalidArgument("file exceeds 100 MiB")
	}

	object := "audio/" + actor.ID.String() + "/" + uuid.NewString() + extension(in.Filename, mediaType)
	u, err := s.store.Upload(ctx, object, io.LimitReader(in.Body, in.Size), in.Size, mediaType)
	if err != nil {
		return nil, errors.ErrStorageFailed("upload", err)
	}

	s.logger.Info("audio uploaded",
		zap.String("object", object),
		zap.String("owner_id", actor.ID.String()),
		zap.Int64("size", in.Size),
	)
	return &Upload{Object: object, URL: u}, nil
}

// Transcribe converts the audio at audioURL to text. Unlike analysis,
// transcription failures are returned to the caller.
func (s *Service) Transcribe(ctx context.Context, actor *entities.User, audioURL string) (*Transcript, error) {
	if err := policy.Authorize(actor.Role, policy.MediaWrite); err != nil {
		return nil, usecaseErrors.Translate(err)
	}
	if s.transcriber == nil {
		return nil, errors.ErrNotFound("transcription")
	}
	u, err := url.Parse(audioURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.ErrInvalidArgument("audio_url must be an http(s) URL")
	}

	text, err := s.transcriber.Transcribe(ctx, audioURL)
	if err != nil {
		return nil, errors.ErrExternalAPIFailed("transcription", err)
	}

	s.logger.Info("audio transcribed",
		zap.String("actor_id", actor.ID.String()),
		zap.Int("chars", len(text)),
	)
	return &Transcript{AudioURL: audioURL, Text: text}, nil
}

// extension keeps a short alphanumeric extension from the client filename,
// else derives one from the media type.
func extension(filename, mediaType string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	if len(ext) > 1 && len(ext) <= 6 && isAlnum(ext[1:]) {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

func isAlnum(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
