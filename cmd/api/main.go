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

	pkgvalidator "github.com/fahmidhamim/echobrief/pkg/validator"

	"github.com/fahmidhamim/echobrief/internal/adapter/handler"
	"github.com/fahmidhamim/echobrief/internal/adapter/repository"
	"github.com/fahmidhamim/echobrief/internal/infrastructure/cache"
	"github.com/fahmidhamim/echobrief/internal/infrastructure/database"
	httpmw "github.com/fahmidhamim/echobrief/internal/infrastructure/http/middleware"
	"github.com/fahmidhamim/echobrief/internal/infrastructure/storage"
	"github.com/fahmidhamim/echobrief/internal/usecase/admin"
	aiuse "github.com/fahmidhamim/echobrief/internal/usecase/ai"
	"github.com/fahmidhamim/echobrief/internal/usecase/auth"
	"github.com/fahmidhamim/echobrief/internal/usecase/meeting"
	pkgai "github.com/fahmidhamim/echobrief/pkg/ai"
	"github.com/fahmidhamim/echobrief/pkg/config"
	"github.com/fahmidhamim/echobrief/pkg/jwt"
)

// @title           EchoBrief API
// @version         1.0
// @description     Meeting management backend with audio transcription and AI summarization

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

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; manage schema with sql-migrate in CI/CD")
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	registry := repository.NewRegistry(db)

	// Summarize lease locking: Redis when configured, in-process otherwise
	var locker cache.Locker
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisLocker, err := cache.NewRedisLocker(cfg.GetRedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisLocker.Close()
		locker = redisLocker
	} else {
		log.Println("📦 Using in-memory lock store")
		locker = cache.NewMemoryLocker()
	}

	// Initialize audio storage
	log.Println("🗄️  Initializing audio storage...")
	var store storage.Store
	if cfg.Storage.Type == "minio" {
		store, err = storage.NewMinIOStore(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO storage: %v", err)
		}
	} else {
		store, err = storage.NewLocalStore(cfg.Storage.LocalDir)
		if err != nil {
			log.Fatalf("Failed to initialize local storage: %v", err)
		}
	}

	// Initialize AI components
	log.Println("🤖 Initializing AI components...")
	var providers []pkgai.SummaryProvider
	if cfg.AI.OpenAIKey != "" {
		providers = append(providers, pkgai.NewOpenAIClient(cfg.AI.OpenAIKey, cfg.AI.OpenAIBaseURL, cfg.AI.OpenAIModel, cfg.AI.RequestTimeout))
	}
	if cfg.AI.GroqKey != "" {
		providers = append(providers, pkgai.NewGroqClient(cfg.AI.GroqKey, cfg.AI.GroqBaseURL, cfg.AI.GroqModel, cfg.AI.RequestTimeout))
	}
	if len(providers) == 0 {
		log.Println("⚠️  No summarization provider configured; extractive fallback only")
	}

	var transcriber pkgai.Transcriber
	if cfg.Transcriber.Backend == "assemblyai" {
		transcriber = pkgai.NewAssemblyAIClient(cfg.Transcriber.AssemblyAIKey)
	} else {
		transcriber = pkgai.NewWhisperClient(cfg.Transcriber.WhisperURL, cfg.Transcriber.WhisperModel, cfg.Transcriber.RequestTimeout)
	}

	aiService := aiuse.NewService(registry, store, locker, aiuse.Options{
		Providers:         providers,
		Transcriber:       transcriber,
		GroqCompatVersion: cfg.AI.GroqCompatVersion,
		ProviderTimeout:   cfg.AI.RequestTimeout,
		TranscribeTimeout: cfg.Transcriber.RequestTimeout,
		TranscribeRetries: cfg.Transcriber.MaxRetries,
	}, logger)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize services
	authService := auth.NewService(registry, jwtManager, logger)
	meetingService := meeting.NewService(registry, logger)
	adminService := admin.NewService(registry, logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	authHandler := handler.NewAuthHandler(authService, logger)
	meetingHandler := handler.NewMeetingHandler(meetingService, logger)
	aiHandler := handler.NewAIHandler(aiService, logger)
	audioHandler := handler.NewAudioHandler(aiService, cfg.Storage.MaxFileSize, logger)
	adminHandler := handler.NewAdminHandler(adminService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	authEchoMW := httpmw.EchoAuth(authService)
	router := handler.NewRouter(cfg, authHandler, meetingHandler, aiHandler, audioHandler, adminHandler, authEchoMW)
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

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
