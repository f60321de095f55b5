package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/souk-intel/service-bestsellers/internal/config"
	"github.com/souk-intel/service-bestsellers/internal/dataset"
	"github.com/souk-intel/service-bestsellers/internal/events"
	"github.com/souk-intel/service-bestsellers/internal/handlers"
	"github.com/souk-intel/service-bestsellers/internal/logger"
	"github.com/souk-intel/service-bestsellers/internal/middleware"
	"github.com/souk-intel/service-bestsellers/internal/monitoring"
	"github.com/souk-intel/service-bestsellers/internal/routes"
	"github.com/souk-intel/service-bestsellers/internal/services"
	"github.com/souk-intel/service-bestsellers/internal/store"
)

func main() {
	// Load .env file in development
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewLogger(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize Sentry for error tracking
	sentryMonitor, err := monitoring.NewSentryMonitor(&monitoring.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		ServiceName:      "bestsellers-service",
		TracesSampleRate: 0.1,
	}, zapLogger)
	if err != nil {
		zapLogger.Warn("Failed to initialize Sentry", zap.Error(err))
	}
	defer sentryMonitor.Flush(2 * time.Second)

	// Open the dataset store
	db, err := store.Open(cfg.Dataset.Path, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to open dataset store", zap.Error(err))
	}
	listingRepo := store.NewListingRepository(db)

	// Connect to Redis (optional - summary cache degrades without it)
	var redisClient *redis.Client
	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
	if err := rc.Ping(pingCtx).Err(); err != nil {
		zapLogger.Warn("Redis unavailable, summary cache disabled", zap.Error(err))
	} else {
		redisClient = rc
		zapLogger.Info("Connected to Redis", zap.String("addr", rc.Options().Addr))
	}
	pingCancel()

	// Initialize the dataset loader and services
	loader := dataset.NewLoader(listingRepo, zapLogger)
	summaryCache := services.NewSummaryCacheService(redisClient, cfg.Dataset.CacheTTL, zapLogger)
	dashboardService := services.NewDashboardService(loader, summaryCache, zapLogger)
	sessionService := services.NewSessionService(zapLogger)

	// Warm the snapshot so the first request does not pay the load. A
	// missing import is not fatal; the conversion utility may not have run.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := loader.Snapshot(warmCtx); err != nil {
		var schemaErr *dataset.SchemaError
		if errors.As(err, &schemaErr) {
			// No category column means nothing downstream can run.
			zapLogger.Fatal("Dataset schema invalid", zap.Error(err))
		}
		zapLogger.Warn("Dataset not loaded at startup", zap.Error(err))
	}
	warmCancel()

	// Connect to NATS (optional - only if configured)
	var natsConn *nats.Conn
	var eventPublisher *events.Publisher
	var eventSubscriber *events.Subscriber

	if cfg.NATS.URL != "" {
		natsConn, err = nats.Connect(cfg.NATS.URL)
		if err != nil {
			zapLogger.Warn("Failed to connect to NATS, dataset auto-refresh disabled", zap.Error(err))
		} else {
			zapLogger.Info("Connected to NATS", zap.String("url", cfg.NATS.URL))
			eventPublisher = events.NewPublisher(natsConn, zapLogger)
			eventSubscriber = events.NewSubscriber(natsConn, dashboardService, zapLogger)
			if err := eventSubscriber.Start(); err != nil {
				zapLogger.Warn("Failed to start event subscriber", zap.Error(err))
			}
		}
	}

	// Initialize JWT manager for the admin endpoints
	jwtManager := middleware.NewJWTManager(cfg.JWT.Secret)

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, sessionService, zapLogger)
	sessionHandler := handlers.NewSessionHandler(sessionService, zapLogger)
	adminHandler := handlers.NewAdminHandler(dashboardService, eventPublisher, zapLogger)

	// Set Gin mode
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := gin.New()

	// Apply global middleware
	router.Use(sentryMonitor.GinMiddleware())
	router.Use(sentryMonitor.RecoveryMiddleware())
	router.Use(middleware.LoggerMiddleware(zapLogger))
	router.Use(middleware.CORSWithOrigins(cfg.HTTP.AllowedOrigins))
	router.Use(middleware.SecurityHeaders())

	// Rate limiting (50 requests per second, burst 100)
	rateLimiter := middleware.NewRateLimiter(50, 100)
	rateLimiter.CleanupLimiters()
	router.Use(rateLimiter.Middleware())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "bestsellers",
			"time":    time.Now().UTC(),
		})
	})

	// Setup routes using the routes package
	routes.SetupRoutes(router, &routes.RouteConfig{
		DashboardHandler: dashboardHandler,
		SessionHandler:   sessionHandler,
		AdminHandler:     adminHandler,
		JWTManager:       jwtManager,
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zapLogger.Info("🚀 Bestsellers service starting on port " + cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if eventSubscriber != nil {
		eventSubscriber.Stop()
	}
	if natsConn != nil {
		natsConn.Close()
	}

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}
