package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/sales-review/docs"
	"github.com/johnquangdev/sales-review/internal/adapter/handler"
	"github.com/johnquangdev/sales-review/internal/adapter/repository"
	"github.com/johnquangdev/sales-review/internal/infrastructure/cache"
	"github.com/johnquangdev/sales-review/internal/infrastructure/database"
	"github.com/johnquangdev/sales-review/internal/infrastructure/external/oauth"
	"github.com/johnquangdev/sales-review/internal/infrastructure/storage"
	"github.com/johnquangdev/sales-review/internal/usecase/analysis"
	"github.com/johnquangdev/sales-review/internal/usecase/auth"
	"github.com/johnquangdev/sales-review/internal/usecase/evaluation"
	"github.com/johnquangdev/sales-review/internal/usecase/failedcase"
	"github.com/johnquangdev/sales-review/internal/usecase/media"
	"github.com/johnquangdev/sales-review/internal/usecase/meeting"
	"github.com/johnquangdev/sales-review/internal/usecase/statistics"
	"github.com/johnquangdev/sales-review/internal/usecase/user"
	pkgai "github.com/johnquangdev/sales-review/pkg/ai"
	"github.com/johnquangdev/sales-review/pkg/config"
	"github.com/johnquangdev/sales-review/pkg/jwt"
)

// @title           Sales Review API
// @version         1.0
// @description     Meeting log, evaluation and statistics API for interior-design sales teams

// @contact.name   API Support

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const sessionPurgeInterval = time.Hour

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Database
	logger.Info("📦 Connecting to database...")
	db, err := database.NewPostgresDB(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	applied, err := database.Migrate(db)
	if err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	logger.Info("🔄 Migrations applied", zap.Int("count", applied))

	// Cache: Redis when configured, in-process otherwise
	store, closeStore, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer closeStore()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	failedCaseRepo := repository.NewFailedCaseRepository(db)
	statisticsRepo := repository.NewStatisticsRepository(db)

	// Initialize services
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
		cfg.JWT.Issuer,
	)
	limiter := auth.NewLoginLimiter(store, cfg.Login.MaxAttempts, cfg.Login.Window)
	authService := auth.NewService(userRepo, sessionRepo, jwtManager, limiter, logger)
	if cfg.GoogleEnabled() {
		logger.Info("🔐 Google sign-in enabled")
		authService.WithGoogle(
			oauth.NewGoogleProvider(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL),
			oauth.NewStateManager(store),
		)
	}

	if cfg.Groq.APIKey == "" {
		logger.Warn("GROQ_API_KEY not set, transcript analysis will use fallback results")
	}
	analyzer := analysis.NewService(pkgai.NewGroqClient(cfg.Groq), logger)

	statisticsService := statistics.NewService(statisticsRepo, store, cfg.Cache.StatisticsTTL, logger)
	meetingService := meeting.NewService(meetingRepo, analysisRepo, analyzer, statisticsService, logger)
	evaluationService := evaluation.NewService(evaluationRepo, meetingService, analyzer, logger)
	failedCaseService := failedcase.NewService(failedCaseRepo, meetingService, statisticsService, logger)
	userService := user.NewService(userRepo, sessionRepo, logger)

	mediaService, objectStore, err := newMediaService(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	handlers := handler.Handlers{
		Auth:       handler.NewAuth(authService, cfg.IsProduction(), logger),
		Meeting:    handler.NewMeetingHandler(meetingService, logger),
		Evaluation: handler.NewEvaluationHandler(evaluationService, logger),
		FailedCase: handler.NewFailedCaseHandler(failedCaseService, logger),
		Statistics: handler.NewStatisticsHandler(statisticsService, logger),
		User:       handler.NewUserHandler(userService, logger),
		Media:      handler.NewMediaHandler(mediaService, logger),
	}

	e := newEcho(cfg, logger)
	router := handler.NewRouter(cfg, logger, authService, handlers).
		WithHealthCheck("database", func(ctx context.Context) error { return database.Ping(ctx, db) }).
		WithHealthCheck("cache", store.Ping)
	if objectStore != nil {
		router.WithHealthCheck("storage", objectStore.Ping)
	}
	router.Setup(e)

	go purgeSessions(ctx, authService, logger)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	logger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	logger.Info("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newEcho(cfg *config.Config, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Cookie"},
		AllowCredentials: true,
	}))
	return e
}

func newStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cache.Store, func(), error) {
	if addr := cfg.GetRedisAddr(); addr != "" {
		logger.Info("📦 Connecting to Redis...", zap.String("addr", addr))
		rs, err := cache.NewRedisStore(ctx, addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	}

	logger.Warn("REDIS_ADDR not set, using in-memory cache (single instance only)")
	ms := cache.NewMemoryStore()
	return ms, ms.Close, nil
}

// newMediaService wires MinIO and AssemblyAI when configured. The returned
// client is nil when storage is disabled.
func newMediaService(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*media.Service, *storage.MinIOClient, error) {
	var (
		objects     media.ObjectStore
		client      *storage.MinIOClient
		transcriber pkgai.Transcriber
	)

	if cfg.StorageEnabled() {
		var err error
		client, err = storage.NewMinIOClient(ctx, cfg.Storage)
		if err != nil {
			return nil, nil, err
		}
		objects = client
		logger.Info("🗄️  Audio storage enabled", zap.String("bucket", cfg.Storage.BucketName))
	}
	if cfg.TranscriptionEnabled() {
		transcriber = pkgai.NewAssemblyAIClient(cfg.AssemblyAI.APIKey)
		logger.Info("🎙️  Transcription enabled")
	}

	return media.NewService(objects, transcriber, logger), client, nil
}

// purgeSessions deletes expired refresh sessions until ctx is done
func purgeSessions(ctx context.Context, authService *auth.Service, logger *zap.Logger) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := authService.PurgeExpiredSessions(ctx)
			if err != nil {
				logger.Warn("failed to purge expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("purged expired sessions", zap.Int64("count", n))
			}
		}
	}
}
