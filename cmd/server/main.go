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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/sangostudent/backend/docs"
	"github.com/sangostudent/backend/internal/config"
	"github.com/sangostudent/backend/internal/database"
	"github.com/sangostudent/backend/internal/handlers"
	"github.com/sangostudent/backend/internal/logger"
	"github.com/sangostudent/backend/internal/middleware"
	"github.com/sangostudent/backend/internal/quiz"
	"github.com/sangostudent/backend/internal/repositories"
	"github.com/sangostudent/backend/internal/services"
	"github.com/sangostudent/backend/internal/vocabulary"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title Sango Quiz API
// @version 1.0
// @description API for learning Sango vocabulary with flashcards and quizzes in French or Russian

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Sango Quiz Service")

	// Load vocabulary
	store, err := vocabulary.Load()
	if err != nil {
		logger.Logger.Fatal("Failed to load vocabulary", zap.Error(err))
	}
	logger.Logger.Info("Vocabulary loaded",
		zap.Int("categories", len(store.Categories())),
		zap.Int("words", len(store.Words())),
	)

	// Attempt log is optional
	var (
		attempts services.AttemptRepository = services.NoopAttemptRepository{}
		pinger   handlers.Pinger
	)
	if cfg.DatabaseEnabled() {
		db, err := database.Connect(cfg.Database.Driver, cfg.DSN())
		if err != nil {
			logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := database.RunMigrations(db, cfg.Database.Driver); err != nil {
			logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
		}

		attempts = repositories.NewAttemptRepository(db, logger.Logger)
		pinger = db
		logger.Logger.Info("Attempt log enabled", zap.String("driver", cfg.Database.Driver))
	} else {
		logger.Logger.Info("Attempt log disabled, DB_DRIVER is not set")
	}

	// Initialize services
	engine := quiz.NewEngine(store, nil)
	catalogService := services.NewCatalogService(store, cfg.Session.DefaultLanguage, logger.Logger)
	sessionService := services.NewSessionService(store, engine, attempts, services.SessionConfig{
		DefaultLanguage:   cfg.Session.DefaultLanguage,
		InitialHearts:     cfg.Session.InitialHearts,
		InitialExperience: cfg.Session.InitialExperience,
		InitialStreak:     cfg.Session.InitialStreak,
		TTL:               cfg.Session.TTL,
	}, logger.Logger)

	// Evict idle sessions in the background
	janitor := services.NewJanitor(sessionService, cfg.Session.CleanupInterval, logger.Logger)
	janitor.Start()
	defer janitor.Stop()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(sessionService, pinger, logger.Logger)
	catalogHandler := handlers.NewCatalogHandler(catalogService, logger.Logger)
	sessionHandler := handlers.NewSessionHandler(sessionService, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger.Logger))
	r.Use(middleware.Recovery(logger.Logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.RateLimit.RequestsPerMinute, time.Minute))
	r.Use(middleware.RequestSizeLimit(middleware.DefaultMaxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	healthHandler.RegisterRoutes(r)

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		catalogHandler.RegisterRoutes(r)
		sessionHandler.RegisterRoutes(r)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited", zap.Int("sessions", sessionService.Count()))
}
