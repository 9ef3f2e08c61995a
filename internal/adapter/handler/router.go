package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/johnquangdev/sales-review/internal/domain/policy"
	"github.com/johnquangdev/sales-review/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/sales-review/pkg/config"
	pkgvalidator "github.com/johnquangdev/sales-review/pkg/validator"
)

// HealthCheck reports whether a dependency is reachable
type HealthCheck func(ctx context.Context) error

// Handlers groups every HTTP handler mounted by the router
type Handlers struct {
	Auth       *Auth
	Meeting    *Meeting
	Evaluation *Evaluation
	FailedCase *FailedCase
	Statistics *Statistics
	User       *User
	Media      *Media
}

// Router holds all handlers
type Router struct {
	cfg      *config.Config
	logger   *zap.Logger
	authn    middleware.Authenticator
	handlers Handlers
	checks   map[string]HealthCheck
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, logger *zap.Logger, authn middleware.Authenticator, handlers Handlers) *Router {
	return &Router{
		cfg:      cfg,
		logger:   logger,
		authn:    authn,
		handlers: handlers,
		checks:   make(map[string]HealthCheck),
	}
}

// WithHealthCheck adds a dependency check to GET /health
func (rt *Router) WithHealthCheck(name string, check HealthCheck) *Router {
	rt.checks[name] = check
	return rt
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = ErrorHandler(rt.logger)

	// Health check endpoint
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")
	auth := middleware.EchoAuth(rt.authn)

	rt.setupAuthRoutes(v1, auth)
	rt.setupMeetingRoutes(v1, auth)
	rt.setupEvaluationRoutes(v1, auth)
	rt.setupFailedCaseRoutes(v1, auth)
	rt.setupStatisticsRoutes(v1, auth)
	rt.setupUserRoutes(v1, auth)
	rt.setupMediaRoutes(v1, auth)
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	h := rt.handlers.Auth
	authGroup := g.Group("/auth")

	authGroup.POST("/login", h.Login)
	authGroup.POST("/refresh", h.RefreshToken)
	authGroup.GET("/google/login", h.GoogleLogin)
	authGroup.GET("/google/callback", h.GoogleCallback)
	authGroup.POST("/logout", h.Logout, auth)
	authGroup.GET("/me", h.Me, auth)
}

// setupMeetingRoutes configures meeting routes and the per-meeting
// evaluation, analysis and failed-case lookups
func (rt *Router) setupMeetingRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	h := rt.handlers.Meeting
	meetings := g.Group("/meetings", auth)

	meetings.POST("", h.CreateMeeting, middleware.RequirePermission(policy.MeetingsWrite))
	meetings.GET("", h.ListMeetings, middleware.RequirePermission(policy.MeetingsRead))
	meetings.POST("/suggest-name", h.SuggestName, middleware.RequirePermission(policy.MeetingsWrite))
	meetings.GET("/:id", h.GetMeeting, middleware.RequirePermission(policy.MeetingsRead))
	meetings.PATCH("/:id/status", h.UpdateStatus, middleware.RequirePermission(policy.MeetingsWrite))
	meetings.DELETE("/:id", h.DeleteMeeting, middleware.RequirePermission(policy.MeetingsDelete))

	meetings.GET("/:id/analysis", h.GetAnalysis, middleware.RequirePermission(policy.AnalysisRead))
	meetings.POST("/:id/analysis", h.Analyze, middleware.RequirePermission(policy.AnalysisRun))

	ev := rt.handlers.Evaluation
	meetings.GET("/:id/evaluation", ev.GetByMeeting, middleware.RequirePermission(policy.EvaluationsRead))
	meetings.POST("/:id/evaluation/suggestion", ev.Suggest, middleware.RequirePermission(policy.EvaluationsWrite))

	fc := rt.handlers.FailedCase
	meetings.GET("/:id/failed-case", fc.GetByMeeting, middleware.RequirePermission(policy.FailedCasesRead))
}

func (rt *Router) setupEvaluationRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	h := rt.handlers.Evaluation
	evaluations := g.Group("/evaluations", auth)

	evaluations.POST("", h.CreateEvaluation, middleware.RequirePermission(policy.EvaluationsWrite))
	evaluations.GET("", h.ListEvaluations, middleware.RequirePermission(policy.EvaluationsRead))
	evaluations.GET("/rubric", h.GetRubric, middleware.RequirePermission(policy.EvaluationsRead))
}

func (rt *Router) setupFailedCaseRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	h := rt.handlers.FailedCase
	failedCases := g.Group("/failed-cases", auth)

	failedCases.POST("", h.CreateFailedCase, middleware.RequirePermission(policy.FailedCasesWrite))
	failedCases.GET("", h.ListFailedCases, middleware.RequirePermission(policy.FailedCasesRead))
}

func (rt *Router) setupStatisticsRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	h := rt.handlers.Statistics
	stats := g.Group("/statistics", auth, middleware.RequirePermission(policy.StatisticsRead))

	stats.GET("/success-rate", h.SuccessRate)
	stats.GET("/salesperson-performance", h.SalespersonPerformance)
	stats.GET("/client-types", h.ClientTypes)
	stats.GET("/monthly-trend", h.MonthlyTrend)
	stats.GET("/salespeople", h.Leaderboard, middleware.RequirePermission(policy.StatisticsReadAny))
}

// setupUserRoutes configures account management. /users/me/password only
// needs a signed-in caller.
func (rt *Router) setupUserRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	h := rt.handlers.User
	users := g.Group("/users", auth)

	users.POST("/me/password", h.ChangePassword)

	manage := middleware.RequirePermission(policy.UsersManage)
	users.GET("", h.ListUsers, manage)
	users.POST("", h.CreateUser, manage)
	users.PATCH("/:id/role", h.UpdateRole, manage)
	users.DELETE("/:id", h.DeleteUser, manage)
	users.POST("/:id/password", h.ResetPassword, manage)
}

func (rt *Router) setupMediaRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	h := rt.handlers.Media
	media := g.Group("/media", auth, middleware.RequirePermission(policy.MediaWrite))

	// multipart overhead on top of the 100 MiB audio limit
	media.POST("/audio", h.UploadAudio, echoMiddleware.BodyLimit("101M"))
	media.POST("/transcriptions", h.Transcribe)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(rt.checks))
	for name, check := range rt.checks {
		if err := check(ctx); err != nil {
			rt.logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
			checks[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "up"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	return c.JSON(status, map[string]interface{}{
		"status":      overall,
		"environment": rt.cfg.Server.Environment,
		"checks":      checks,
	})
}
