package media

// TranscribeRequest asks for the transcript of a stored recording
type TranscribeRequest struct {
	AudioURL string `json:"audio_url" validate:"required,url"`
}
