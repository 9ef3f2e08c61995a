package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	mediaDTO "github.com/johnquangdev/sales-review/internal/adapter/dto/media"
	"github.com/johnquangdev/sales-review/internal/usecase/media"
)

// Media handles audio upload and transcription requests
type Media struct {
	mediaService *media.Service
	logger       *zap.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService *media.Service, logger *zap.Logger) *Media {
	return &Media{
		mediaService: mediaService,
		logger:       logger,
	}
}

// UploadAudio handles POST /media/audio
// @Summary      Upload a meeting recording
// @Description  Stores an audio file (up to 100 MiB) and returns its URL for audio_file_url and /media/transcriptions.
// @Tags         Media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "Audio file"
// @Success      201   {object}  media.Upload
// @Failure      400   {object}  map[string]interface{}  "Missing or non-audio file"
// @Failure      404   {object}  map[string]interface{}  "Storage not configured"
// @Failure      502   {object}  map[string]interface{}  "Storage failed"
// @Router       /media/audio [post]
func (h *Media) UploadAudio(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("multipart field \"file\" is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	defer file.Close()

	upload, err := h.mediaService.UploadAudio(c.Request().Context(), user, media.UploadInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, upload)
}

// Transcribe handles POST /media/transcriptions
// @Summary      Transcribe a recording
// @Description  Converts the audio at audio_url to text. Failures of the transcription service are returned as 502.
// @Tags         Media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      mediaDTO.TranscribeRequest  true  "Audio URL"
// @Success      200      {object}  media.Transcript
// @Failure      400      {object}  map[string]interface{}  "Invalid URL"
// @Failure      404      {object}  map[string]interface{}  "Transcription not configured"
// @Failure      502      {object}  map[string]interface{}  "Transcription failed"
// @Router       /media/transcriptions [post]
func (h *Media) Transcribe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req mediaDTO.TranscribeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	transcript, err := h.mediaService.Transcribe(c.Request().Context(), user, req.AudioURL)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, transcript)
}
