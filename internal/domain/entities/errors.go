package entities

import "errors"

// Domain errors
var (
	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidName       = errors.New("invalid name")
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidPassword   = errors.New("invalid password")

	// OAuth errors
	ErrOAuthStateMismatch = errors.New("oauth state mismatch")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidToken    = errors.New("invalid token")

	// Meeting errors
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrInvalidStage       = errors.New("invalid meeting stage")
	ErrInvalidCaseStatus  = errors.New("invalid case status")
	ErrEvaluationNotFound = errors.New("evaluation not found")
	ErrEvaluationExists   = errors.New("evaluation already exists for meeting")
	ErrAnalysisNotFound   = errors.New("analysis not found")
	ErrAnalysisExists     = errors.New("analysis already exists for meeting")
	ErrFailedCaseNotFound = errors.New("failed case not found")
)
