package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"time"
)

// Fixed user-facing messages for the two authorization failures.
const (
	UnauthenticatedMessage  = "Please login (10001)"
	PermissionDeniedMessage = "You do not have required permission (10002)"
)

// AppError is the typed failure returned from usecases and rendered by handlers.
type AppError struct {
	Raw       error
	HTTPCode  int
	Code      ErrorCode
	Message   string
	Details   map[string]string
	Timestamp time.Time
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// Is reports whether err is an AppError carrying code.
func Is(err error, code ErrorCode) bool {
	var appErr AppError
	if stdErrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_INTERNAL,
		Message:   "Internal server error",
		Timestamp: time.Now().UTC(),
	}
}

func ErrInvalidArgument(message string) AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_ARGUMENT,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// ErrValidation wraps a validator failure; the raw error lists the offending fields.
func ErrValidation(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_VALIDATION,
		Message:   "Validation failed",
		Timestamp: time.Now().UTC(),
	}
}

func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode:  http.StatusNotFound,
		Code:      ErrorCode_NOT_FOUND,
		Message:   fmt.Sprintf("%s not found", resource),
		Timestamp: time.Now().UTC(),
	}
}

func ErrAlreadyExists(resource string) AppError {
	return AppError{
		HTTPCode:  http.StatusConflict,
		Code:      ErrorCode_ALREADY_EXISTS,
		Message:   fmt.Sprintf("%s already exists", resource),
		Timestamp: time.Now().UTC(),
	}
}

func ErrConflict(message string) AppError {
	return AppError{
		HTTPCode:  http.StatusConflict,
		Code:      ErrorCode_CONFLICT,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

func ErrPermissionDenied(action string) AppError {
	return AppError{
		HTTPCode:  http.StatusForbidden,
		Code:      ErrorCode_PERMISSION_DENIED,
		Message:   PermissionDeniedMessage,
		Timestamp: time.Now().UTC(),
	}.WithDetail("action", action)
}

func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode:  http.StatusUnauthorized,
		Code:      ErrorCode_UNAUTHENTICATED,
		Message:   UnauthenticatedMessage,
		Timestamp: time.Now().UTC(),
	}
}

func ErrTooManyRequests(retryAfter time.Duration) AppError {
	return AppError{
		HTTPCode:  http.StatusTooManyRequests,
		Code:      ErrorCode_TOO_MANY_REQUESTS,
		Message:   "Too many attempts, try again later",
		Timestamp: time.Now().UTC(),
	}.WithDetail("retry_after", retryAfter.String())
}

// Authentication Errors
func ErrInvalidToken() AppError {
	return AppError{
		HTTPCode:  http.StatusUnauthorized,
		Code:      ErrorCode_AUTH_INVALID_TOKEN,
		Message:   "Invalid authentication token",
		Timestamp: time.Now().UTC(),
	}
}

func ErrTokenExpired() AppError {
	return AppError{
		HTTPCode:  http.StatusUnauthorized,
		Code:      ErrorCode_AUTH_TOKEN_EXPIRED,
		Message:   "Authentication token has expired",
		Timestamp: time.Now().UTC(),
	}
}

func ErrInvalidCredentials() AppError {
	return AppError{
		HTTPCode:  http.StatusUnauthorized,
		Code:      ErrorCode_AUTH_INVALID_CREDENTIALS,
		Message:   "Invalid username or password",
		Timestamp: time.Now().UTC(),
	}
}

func ErrInvalidRefreshToken() AppError {
	return AppError{
		HTTPCode:  http.StatusUnauthorized,
		Code:      ErrorCode_AUTH_INVALID_REFRESH_TOKEN,
		Message:   "Invalid refresh token",
		Timestamp: time.Now().UTC(),
	}
}

func ErrOAuthFailed(provider string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusUnauthorized,
		Code:      ErrorCode_AUTH_OAUTH_FAILED,
		Message:   fmt.Sprintf("OAuth authentication failed with %s", provider),
		Timestamp: time.Now().UTC(),
	}
}

// Integration Errors
func ErrStorageFailed(operation string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_INTEGRATION_STORAGE_FAILED,
		Message:   fmt.Sprintf("Storage operation failed: %s", operation),
		Timestamp: time.Now().UTC(),
	}
}

func ErrExternalAPIFailed(service string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusBadGateway,
		Code:      ErrorCode_INTEGRATION_EXTERNAL_API_FAILED,
		Message:   fmt.Sprintf("External API call failed: %s", service),
		Timestamp: time.Now().UTC(),
	}
}

// Database Errors
func ErrDBQueryFailed(query string, err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_DB_QUERY_FAILED,
		Message:   "Database query failed",
		Timestamp: time.Now().UTC(),
	}.WithDetail("query", query)
}

func ErrDBTransactionFailed(err error) AppError {
	return AppError{
		Raw:       err,
		HTTPCode:  http.StatusInternalServerError,
		Code:      ErrorCode_DB_TRANSACTION_FAILED,
		Message:   "Database transaction failed",
		Timestamp: time.Now().UTC(),
	}
}

// Custom Errors
func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode:  http.StatusBadRequest,
		Code:      ErrorCode_INVALID_PAYLOAD,
		Message:   "Invalid payload",
		Timestamp: time.Now().UTC(),
	}
}
