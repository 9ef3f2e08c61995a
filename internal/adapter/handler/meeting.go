package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	meetingDTO "github.com/johnquangdev/sales-review/internal/adapter/dto/meeting"
	"github.com/johnquangdev/sales-review/internal/adapter/presenter"
	"github.com/johnquangdev/sales-review/internal/domain/entities"
	meetingUsecase "github.com/johnquangdev/sales-review/internal/usecase/meeting"
)

// Meeting handles meeting and analysis HTTP requests
type Meeting struct {
	meetingService *meetingUsecase.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService *meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		logger:         logger,
	}
}

// CreateMeeting handles POST /meetings
// @Summary      Log a client meeting
// @Description  Stores the meeting owned by the caller and analyzes its transcript. A failed analysis stores the fallback result and sets analysis_degraded.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meetingDTO.CreateMeetingRequest  true  "Meeting"
// @Success      201      {object}  meetingUsecase.CreateResult
// @Failure      400      {object}  map[string]interface{}  "Validation failed"
// @Failure      401      {object}  map[string]interface{}  "User not authenticated"
// @Failure      403      {object}  map[string]interface{}  "Missing permission"
// @Router       /meetings [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	input := meetingUsecase.CreateInput{
		SalesDesigner:    req.SalesDesigner,
		DrawingDesigner:  req.DrawingDesigner,
		ProjectName:      req.ProjectName,
		ProjectType:      req.ProjectType,
		ClientName:       req.ClientName,
		ClientContact:    req.ClientContact,
		ClientBudget:     req.ClientBudget,
		MeetingStage:     entities.MeetingStage(req.MeetingStage),
		TranscriptSource: entities.TranscriptSource(req.TranscriptSource),
		TranscriptText:   req.TranscriptText,
		AudioFileURL:     req.AudioFileURL,
		Notes:            req.Notes,
	}
	if req.MeetingDate != nil {
		input.MeetingDate = *req.MeetingDate
	} else {
		input.MeetingDate = time.Now().UTC()
	}

	result, err := h.meetingService.Create(c.Request().Context(), user, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, result)
}

// ListMeetings handles GET /meetings
// @Summary      List meetings
// @Description  Newest meeting date first. Salespeople and guests only see their own meetings.
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Case status"  Enums(in_progress, success, failed)
// @Param        stage   query     string  false  "Meeting stage"  Enums(initial, second, third, design_contract, construction_contract)
// @Param        limit   query     int     false  "Page size (1-100)"  default(20)
// @Param        offset  query     int     false  "Offset"  default(0)
// @Success      200     {object}  common.ListResponse
// @Failure      400     {object}  map[string]interface{}  "Invalid filter"
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.ListMeetingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	if req.Limit == 0 {
		req.Limit = defaultPageSize
	}

	input := meetingUsecase.ListInput{
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Status != "" {
		status := entities.CaseStatus(req.Status)
		input.Status = &status
	}
	if req.Stage != "" {
		stage := entities.MeetingStage(req.Stage)
		input.Stage = &stage
	}

	result, err := h.meetingService.List(c.Request().Context(), user, input)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToListResponse(result.Meetings, input.Limit, input.Offset, result.Total))
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get meeting details
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  entities.Meeting
// @Failure      400  {object}  map[string]interface{}  "Invalid meeting ID"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.Get(c.Request().Context(), user, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, m)
}

// UpdateStatus handles PATCH /meetings/:id/status
// @Summary      Set case status
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                           true  "Meeting ID (UUID)"
// @Param        request  body      meetingDTO.UpdateStatusRequest  true  "New status"
// @Success      200      {object}  entities.Meeting
// @Failure      400      {object}  map[string]interface{}  "Invalid status"
// @Failure      404      {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id}/status [patch]
func (h *Meeting) UpdateStatus(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.UpdateStatus(c.Request().Context(), user, id, entities.CaseStatus(req.Status))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, m)
}

// DeleteMeeting handles DELETE /meetings/:id
// @Summary      Delete a meeting
// @Description  Removes the meeting with its evaluation, analysis and failed case.
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}  "Missing permission"
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [delete]
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.Delete(c.Request().Context(), user, id); err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, map[string]string{"id": id.String()})
}

// SuggestName handles POST /meetings/suggest-name
// @Summary      Suggest a project name
// @Description  Derives a project name from a transcript. Never fails: a placeholder is returned with degraded=true when analysis is unavailable.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meetingDTO.SuggestNameRequest  true  "Transcript"
// @Success      200      {object}  meetingUsecase.NameSuggestion
// @Router       /meetings/suggest-name [post]
func (h *Meeting) SuggestName(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.SuggestNameRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	suggestion, err := h.meetingService.SuggestName(c.Request().Context(), user, req.TranscriptText)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, suggestion)
}

// GetAnalysis handles GET /meetings/:id/analysis
// @Summary      Get the transcript analysis of a meeting
// @Tags         AI Analysis
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  entities.AIAnalysis
// @Failure      404  {object}  map[string]interface{}  "Meeting or analysis not found"
// @Router       /meetings/{id}/analysis [get]
func (h *Meeting) GetAnalysis(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	a, err := h.meetingService.Analysis(c.Request().Context(), user, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, a)
}

// Analyze handles POST /meetings/:id/analysis
// @Summary      Analyze a meeting transcript
// @Description  Runs the analysis for a meeting without one, or replaces a stored fallback result.
// @Tags         AI Analysis
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      201  {object}  meetingUsecase.AnalysisResult
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Failure      409  {object}  map[string]interface{}  "Analysis already exists"
// @Router       /meetings/{id}/analysis [post]
func (h *Meeting) Analyze(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	id, err := paramUUID(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.meetingService.Analyze(c.Request().Context(), user, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, result)
}
