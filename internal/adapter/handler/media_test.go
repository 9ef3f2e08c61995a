package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/sales-review/internal/domain/entities"
)

func (s *server) upload(t *testing.T, as *entities.User, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/media/audio", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token(t, as))
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func TestUploadAudio(t *testing.T) {
	s := newServer(t)

	rec := s.upload(t, s.salesperson, "visit.mp3", "audio/mpeg", []byte("ID3 fake audio"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var upload struct {
		Object string `json:"object"`
		URL    string `json:"url"`
	}
	decodeData(t, rec, &upload)
	assert.True(t, strings.HasPrefix(upload.Object, "audio/"+s.salesperson.ID.String()+"/"), upload.Object)
	assert.True(t, strings.HasSuffix(upload.Object, ".mp3"), upload.Object)
	assert.Equal(t, "http://objects.test/"+upload.Object, upload.URL)
	assert.Equal(t, []byte("ID3 fake audio"), s.objects.objects[upload.Object])
}

func TestUploadAudio_Rejected(t *testing.T) {
	s := newServer(t)

	rec := s.upload(t, s.salesperson, "notes.txt", "text/plain", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.upload(t, s.salesperson, "empty.mp3", "audio/mpeg", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, s.salesperson, http.MethodPost, "/v1/media/audio", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.objects.objects)
}

func TestTranscribe_Disabled(t *testing.T) {
	s := newServer(t)

	rec := s.do(t, s.salesperson, http.MethodPost, "/v1/media/transcriptions", map[string]string{"audio_url": "https://objects.test/audio/a.mp3"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, s.salesperson, http.MethodPost, "/v1/media/transcriptions", map[string]string{"audio_url": "not a url"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
