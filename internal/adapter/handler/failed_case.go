package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	failedCaseDTO "github.com/johnquangdev/sales-review/internal/adapter/dto/failedcase"
	"github.com/johnquangdev/sales-review/internal/adapter/presenter"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	"github.com/johnquangdev/sales-review/internal/usecase/failedcase"
)

// FailedCase handles lost-case HTTP requests
type FailedCase struct {
	failedCaseService *failedcase.Service
	logger            *zap.Logger
}

// NewFailedCaseHandler creates a new failed case handler
func NewFailedCaseHandler(failedCaseService *failedcase.Service, logger *zap.Logger) *FailedCase {
	return &FailedCase{
		failedCaseService: failedCaseService,
		logger:            logger,
	}
}

// CreateFailedCase handles POST /failed-cases
// @Summary      Record a lost case
// @Description  Stores why the case of a meeting was lost and marks the meeting failed.
// @Tags         Failed Cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      failedCaseDTO.CreateFailedCaseRequest  true  "Failed case"
// @Success      201      {object}  entities.FailedCase
// @Failure      400      {object}  map[string]interface{}  "Validation failed"
// @Failure      404      {object}  map[string]interface{}  "Meeting not found"
// @Router       /failed-cases [post]
func (h *FailedCase) CreateFailedCase(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req failedCaseDTO.CreateFailedCaseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	reasons := make([]entities.FailureReason, 0, len(req.FailureReasons))
	for _, r := range req.FailureReasons {
		reasons = append(reasons, entities.FailureReason(r))
	}

	fc, err := h.failedCaseService.Create(c.Request().Context(), user, failedcase.CreateInput{
		MeetingID:        uuid.MustParse(req.MeetingID),
		ClientName:       req.ClientName,
		FailureStage:     entities.MeetingStage(req.FailureStage),
		FailureReasons:   reasons,
		DetailedAnalysis: req.DetailedAnalysis,
		LessonsLearned:   req.LessonsLearned,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, fc)
}

// ListFailedCases handles GET /failed-cases
// @Summary      List lost cases
// @Tags         Failed Cases
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (1-100)"  default(20)
// @Param        offset  query     int  false  "Offset"  default(0)
// @Success      200     {object}  common.ListResponse
// @Router       /failed-cases [get]
func (h *FailedCase) ListFailedCases(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	limit, offset, err := pageParams(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.failedCaseService.List(c.Request().Context(), user, limit, offset)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToListResponse(result.FailedCases, limit, offset, result.Total))
}

// GetByMeeting handles GET /meetings/:id/failed-case
// @Summary      Get the failed case of a meeting
// @Tags         Failed Cases
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  entities.FailedCase
// @Failure      404  {object}  map[string]interface{}  "Meeting or failed case not found"
// @Router       /meetings/{id}/failed-case [get]
func (h *FailedCase) GetByMeeting(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	fc, err := h.failedCaseService.GetByMeetingID(c.Request().Context(), user, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, fc)
}
