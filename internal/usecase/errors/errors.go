// Package errors maps domain and repository failures to application errors.
package errors

import (
	stdErrors "errors"

	appErrors "github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/domain/policy"
)

var notFound = map[error]string{
	entities.ErrUserNotFound:       "user",
	entities.ErrMeetingNotFound:    "meeting",
	entities.ErrEvaluationNotFound: "evaluation",
	entities.ErrAnalysisNotFound:   "analysis",
	entities.ErrFailedCaseNotFound: "failed case",
}

var alreadyExists = map[error]string{
	entities.ErrUserAlreadyExists: "user",
	entities.ErrEvaluationExists:  "evaluation",
	entities.ErrAnalysisExists:    "analysis",
}

var invalid = []error{
	entities.ErrInvalidName,
	entities.ErrInvalidRole,
	entities.ErrInvalidPassword,
	entities.ErrInvalidStage,
	entities.ErrInvalidCaseStatus,
}

// Translate converts err to an AppError. AppErrors pass through unchanged and
// anything unrecognised becomes an internal error.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var appErr appErrors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	var forbidden policy.ErrForbidden
	if stdErrors.As(err, &forbidden) {
		return appErrors.ErrPermissionDenied(string(forbidden.Permission))
	}

	for sentinel, resource := range notFound {
		if stdErrors.Is(err, sentinel) {
			return appErrors.ErrNotFound(resource)
		}
	}
	for sentinel, resource := range alreadyExists {
		if stdErrors.Is(err, sentinel) {
			return appErrors.ErrAlreadyExists(resource)
		}
	}
	for _, sentinel := range invalid {
		if stdErrors.Is(err, sentinel) {
			return appErrors.ErrInvalidArgument(sentinel.Error())
		}
	}

	return appErrors.ErrInternal(err)
}
