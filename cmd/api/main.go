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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/transcript-search/pkg/validator"

	_ "github.com/johnquangdev/transcript-search/docs"
	"github.com/johnquangdev/transcript-search/internal/adapter/handler"
	"github.com/johnquangdev/transcript-search/internal/adapter/repository"
	"github.com/johnquangdev/transcript-search/internal/infrastructure/cache"
	"github.com/johnquangdev/transcript-search/internal/infrastructure/database"
	"github.com/johnquangdev/transcript-search/internal/infrastructure/external/assemblyai"
	"github.com/johnquangdev/transcript-search/internal/infrastructure/storage"
	searchUsecase "github.com/johnquangdev/transcript-search/internal/usecase/search"
	transcriptUsecase "github.com/johnquangdev/transcript-search/internal/usecase/transcript"
	"github.com/johnquangdev/transcript-search/pkg/config"
	"github.com/johnquangdev/transcript-search/pkg/jwt"
)

// @title           Transcript Search API
// @version         1.0
// @description     Stores meeting transcripts and ranks their segments against free-text queries
// @termsOfService  https://api-meeting.infoquang.id.vn/terms

// @contact.name   API Support
// @contact.url    https://api-meeting.infoquang.id.vn/support
// @contact.email  support@infoquang.id.vn

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(logger)

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Cookie"},
		AllowCredentials: true,
	}))

	ctx, stop := context.WithTimeout(context.Background(), time.Minute)
	defer stop()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Production deployments manage schema with cmd/migrate.
	if cfg.Database.AutoMigrate {
		log.Println("🔄 Running GORM AutoMigrate (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run AutoMigrate: %v", err)
		}
	} else {
		log.Println("🔄 Skipping GORM AutoMigrate; use cmd/migrate for schema migrations")
	}

	// Search history lives in Redis, or in process memory when Redis is disabled
	var history cache.HistoryStore
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		history = cache.NewRedisHistoryStore(redisClient, cfg.Search.HistorySize, cfg.Redis.HistoryTTL)
	} else {
		log.Println("⚠️  Redis disabled, keeping search history in memory")
		memory := cache.NewMemoryHistoryStore(cfg.Search.HistorySize, cfg.Redis.HistoryTTL)
		defer memory.Close()
		history = memory
	}

	// Exports are unavailable without object storage
	var exports searchUsecase.ObjectStorage
	log.Println("🗄️  Connecting to object storage...")
	minioClient, err := storage.NewMinIOClient(ctx, &cfg.Storage)
	if err != nil {
		logger.Warn("⚠️ Object storage unavailable, exports disabled", zap.Error(err))
	} else {
		exports = minioClient
	}

	// AssemblyAI import is optional
	var fetcher transcriptUsecase.Fetcher
	if cfg.Assembly.APIKey != "" {
		log.Println("🤖 Initializing AssemblyAI client...")
		fetcher = assemblyai.NewClient(cfg.Assembly.APIKey, logger)
	} else {
		log.Println("⚠️  ASSEMBLYAI_API_KEY not set, transcript import disabled")
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	transcriptRepo := repository.NewTranscriptRepository(db)
	savedSearchRepo := repository.NewSavedSearchRepository(db)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)

	// Initialize services
	log.Println("✨ Initializing services...")
	transcriptService := transcriptUsecase.NewTranscriptService(transcriptRepo, fetcher, cfg.Assembly.WebhookSecret, logger)
	searchService := searchUsecase.NewSearchService(
		transcriptService,
		savedSearchRepo,
		history,
		exports,
		searchUsecase.Config{
			DefaultMinConfidence: cfg.Search.DefaultMinConfidence,
			ExportURLExpiry:      cfg.Storage.URLExpiry,
		},
		logger,
	)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(
		cfg,
		jwtManager,
		handler.NewTranscriptHandler(transcriptService, logger),
		handler.NewSearchHandler(searchService, logger),
		handler.NewWebhookHandler(transcriptService, logger),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
