package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	evaluationDTO "github.com/johnquangdev/sales-review/internal/adapter/dto/evaluation"
	"github.com/johnquangdev/sales-review/internal/adapter/presenter"
	evaluationUsecase "github.com/johnquangdev/sales-review/internal/usecase/evaluation"
)

// Evaluation handles score sheet HTTP requests
type Evaluation struct {
	evaluationService *evaluationUsecase.Service
	logger            *zap.Logger
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evaluationService *evaluationUsecase.Service, logger *zap.Logger) *Evaluation {
	return &Evaluation{
		evaluationService: evaluationService,
		logger:            logger,
	}
}

// CreateEvaluation handles POST /evaluations
// @Summary      Score a meeting
// @Description  Stores the 20-item score sheet of a meeting with its computed total and performance level. One evaluation per meeting.
// @Tags         Evaluations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      evaluationDTO.CreateEvaluationRequest  true  "Score sheet"
// @Success      201      {object}  entities.Evaluation
// @Failure      400      {object}  map[string]interface{}  "Invalid score sheet"
// @Failure      403      {object}  map[string]interface{}  "Missing permission"
// @Failure      404      {object}  map[string]interface{}  "Meeting not found"
// @Failure      409      {object}  map[string]interface{}  "Meeting already evaluated"
// @Router       /evaluations [post]
func (h *Evaluation) CreateEvaluation(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req evaluationDTO.CreateEvaluationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	e, err := h.evaluationService.Create(c.Request().Context(), user, evaluationUsecase.CreateInput{
		MeetingID:   uuid.MustParse(req.MeetingID),
		Scores:      req.Scores,
		ManualNotes: req.ManualNotes,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, e)
}

// ListEvaluations handles GET /evaluations
// @Summary      List evaluations
// @Description  Newest first, limited to evaluations of meetings the caller can see.
// @Tags         Evaluations
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (1-100)"  default(20)
// @Param        offset  query     int  false  "Offset"  default(0)
// @Success      200     {object}  common.ListResponse
// @Router       /evaluations [get]
func (h *Evaluation) ListEvaluations(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	limit, offset, err := pageParams(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.evaluationService.List(c.Request().Context(), user, limit, offset)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToListResponse(result.Evaluations, limit, offset, result.Total))
}

// GetByMeeting handles GET /meetings/:id/evaluation
// @Summary      Get the evaluation of a meeting
// @Tags         Evaluations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  entities.Evaluation
// @Failure      404  {object}  map[string]interface{}  "Meeting or evaluation not found"
// @Router       /meetings/{id}/evaluation [get]
func (h *Evaluation) GetByMeeting(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	e, err := h.evaluationService.GetByMeetingID(c.Request().Context(), user, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, e)
}

// Suggest handles POST /meetings/:id/evaluation/suggestion
// @Summary      Suggest scores for a meeting
// @Description  Proposes a score sheet from the meeting transcript. Never fails: all-3 scores are returned with degraded=true when analysis is unavailable.
// @Tags         Evaluations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  evaluationUsecase.Suggestion
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id}/evaluation/suggestion [post]
func (h *Evaluation) Suggest(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	suggestion, err := h.evaluationService.Suggest(c.Request().Context(), user, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, suggestion)
}

// GetRubric handles GET /evaluations/rubric
// @Summary      Describe the score sheet
// @Tags         Evaluations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  evaluationUsecase.Rubric
// @Router       /evaluations/rubric [get]
func (h *Evaluation) GetRubric(c echo.Context) error {
	return HandleSuccess(h.logger, c, h.evaluationService.GetRubric())
}
