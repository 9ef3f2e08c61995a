package handler

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/errors"
	"github.com/johnquangdev/sales-review/internal/usecase/statistics"
)

// Statistics handles dashboard aggregate requests
type Statistics struct {
	statisticsService *statistics.Service
	logger            *zap.Logger
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(statisticsService *statistics.Service, logger *zap.Logger) *Statistics {
	return &Statistics{
		statisticsService: statisticsService,
		logger:            logger,
	}
}

// SuccessRate handles GET /statistics/success-rate
// @Summary      Success rate
// @Description  Meeting counts by case status and the percentage of successful cases.
// @Tags         Statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statistics.SuccessRate
// @Router       /statistics/success-rate [get]
func (h *Statistics) SuccessRate(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.statisticsService.SuccessRate(c.Request().Context(), user)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}

// SalespersonPerformance handles GET /statistics/salesperson-performance
// @Summary      Salesperson performance
// @Description  Defaults to the caller. Reading another salesperson needs statistics:read_any.
// @Tags         Statistics
// @Produce      json
// @Security     BearerAuth
// @Param        salesperson_id  query     string  false  "Salesperson ID (UUID)"
// @Success      200             {object}  statistics.Performance
// @Failure      400             {object}  map[string]interface{}  "Invalid salesperson ID"
// @Failure      403             {object}  map[string]interface{}  "Missing permission"
// @Router       /statistics/salesperson-performance [get]
func (h *Statistics) SalespersonPerformance(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var target *uuid.UUID
	if raw := c.QueryParam("salesperson_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("salesperson_id must be a valid UUID"))
		}
		target = &id
	}

	result, err := h.statisticsService.SalespersonPerformance(c.Request().Context(), user, target)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}

// ClientTypes handles GET /statistics/client-types
// @Summary      Client type distribution
// @Description  Analyzed meetings per client type. Every type is listed.
// @Tags         Statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entities.ClientTypeCount
// @Router       /statistics/client-types [get]
func (h *Statistics) ClientTypes(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.statisticsService.ClientTypeDistribution(c.Request().Context(), user)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}

// MonthlyTrend handles GET /statistics/monthly-trend
// @Summary      Monthly trend
// @Description  Meetings and successes per calendar month, oldest first.
// @Tags         Statistics
// @Produce      json
// @Security     BearerAuth
// @Param        months  query    int  false  "Window in months including the current one; 0 or absent for all"  minimum(0)  maximum(120)
// @Success      200     {array}  entities.MonthlyCount
// @Failure      400     {object}  map[string]interface{}  "Invalid months"
// @Router       /statistics/monthly-trend [get]
func (h *Statistics) MonthlyTrend(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	months := 0
	if raw := c.QueryParam("months"); raw != "" {
		months, err = strconv.Atoi(raw)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrInvalidArgument("months must be an integer"))
		}
	}

	result, err := h.statisticsService.MonthlyTrend(c.Request().Context(), user, months)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}

// Leaderboard handles GET /statistics/salespeople
// @Summary      Salesperson leaderboard
// @Tags         Statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   statistics.Performance
// @Failure      403  {object}  map[string]interface{}  "Missing permission"
// @Router       /statistics/salespeople [get]
func (h *Statistics) Leaderboard(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.statisticsService.Leaderboard(c.Request().Context(), user)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, result)
}
