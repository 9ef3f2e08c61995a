package handler

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/sales-review/internal/usecase/auth"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Response shapes
type success struct {
	Code    interface{} `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID reads X-Request-ID from the request, or the one the
// request-id middleware generated for the response
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusOK, data)
}

// HandleCreated writes a standardized 201 response
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusCreated, data)
}

func respond(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	resp := success{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}

	return c.JSON(status, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		if logger != nil {
			log := logger.Warn
			if appErr.HTTPCode >= http.StatusInternalServerError {
				log = logger.Error
			}
			log("http.response.error",
				zap.String("request_id", reqID),
				zap.String("path", c.Path()),
				zap.Any("app_code", appErr.Code),
				zap.Error(err),
			)
		}

		info := ""
		if appErr.Raw != nil && appErr.HTTPCode != http.StatusInternalServerError {
			info = appErr.Raw.Error()
		}

		body := errs{
			Code:    appErr.Code,
			Message: appErr.Message,
			Info:    info,
			Details: appErr.Details,
		}

		return c.JSON(appErr.HTTPCode, body)
	}

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	body := errs{
		Code:    errors.ErrorCode_INTERNAL,
		Message: "Internal server error",
	}

	return c.JSON(http.StatusInternalServerError, body)
}

// ErrorHandler renders errors returned by middleware and unmatched routes
// in the same shape as HandleError
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if stdErrors.As(err, &he) {
			err = fromHTTPError(he)
		}

		if c.Request().Method == http.MethodHead {
			var appErr errors.AppError
			status := http.StatusInternalServerError
			if stdErrors.As(err, &appErr) {
				status = appErr.HTTPCode
			}
			_ = c.NoContent(status)
			return
		}
		_ = HandleError(logger, c, err)
	}
}

func fromHTTPError(he *echo.HTTPError) errors.AppError {
	message := http.StatusText(he.Code)
	if m, ok := he.Message.(string); ok && m != "" {
		message = m
	}

	code := errors.ErrorCode_INTERNAL
	switch he.Code {
	case http.StatusBadRequest, http.StatusMethodNotAllowed:
		code = errors.ErrorCode_INVALID_ARGUMENT
	case http.StatusUnauthorized:
		code = errors.ErrorCode_UNAUTHENTICATED
		message = errors.UnauthenticatedMessage
	case http.StatusForbidden:
		code = errors.ErrorCode_PERMISSION_DENIED
		message = errors.PermissionDeniedMessage
	case http.StatusNotFound:
		code = errors.ErrorCode_NOT_FOUND
	case http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		code = errors.ErrorCode_INVALID_PAYLOAD
	case http.StatusTooManyRequests:
		code = errors.ErrorCode_TOO_MANY_REQUESTS
	}

	return errors.AppError{
		Raw:      he.Internal,
		HTTPCode: he.Code,
		Code:     code,
		Message:  message,
	}
}

// bindAndValidate decodes the request into req and runs its validate tags
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrValidation(err)
	}
	return nil
}

// currentUser returns the user set by the auth middleware
func currentUser(c echo.Context) (*entities.User, error) {
	user, ok := middleware.GetUser(c)
	if !ok {
		return nil, errors.ErrUnauthenticated()
	}
	return user, nil
}

// paramUUID parses a path parameter as a UUID
func paramUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument(fmt.Sprintf("%s must be a valid UUID", name))
	}
	return id, nil
}

// pageParams reads limit/offset query parameters
func pageParams(c echo.Context) (limit, offset int, err error) {
	limit, offset = defaultPageSize, 0
	if v := c.QueryParam("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 || limit > maxPageSize {
			return 0, 0, errors.ErrInvalidArgument(fmt.Sprintf("limit must be between 1 and %d", maxPageSize))
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			return 0, 0, errors.ErrInvalidArgument("offset must not be negative")
		}
	}
	return limit, offset, nil
}

func clientInfo(c echo.Context) auth.ClientInfo {
	return auth.ClientInfo{
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}

// SetCookie sets an HTTP cookie with common security settings
func SetCookie(c echo.Context, name, value string, maxAge int, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// DeleteCookie deletes an HTTP cookie by setting MaxAge to -1
func DeleteCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:   name,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}
