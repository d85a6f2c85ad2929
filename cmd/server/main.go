package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/victorsprings/notification-service/docs"
	"github.com/victorsprings/notification-service/internal/catalog"
	"github.com/victorsprings/notification-service/internal/config"
	"github.com/victorsprings/notification-service/internal/domain"
	"github.com/victorsprings/notification-service/internal/handler"
	"github.com/victorsprings/notification-service/internal/middleware"
	"github.com/victorsprings/notification-service/internal/provider"
	"github.com/victorsprings/notification-service/internal/repository/postgres"
	"github.com/victorsprings/notification-service/internal/repository/redis"
	"github.com/victorsprings/notification-service/internal/service"
	"github.com/victorsprings/notification-service/internal/worker"
)

// @title Victor Springs Notification Service API
// @version 1.0
// @description WhatsApp and SMS delivery for rental-platform events

// @contact.name Victor Springs Support
// @contact.email support@victor-springs.com

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger
	logLevel := slog.LevelInfo
	if cfg.App.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("starting notification service",
		"env", cfg.App.Env,
		"port", cfg.Server.Port,
	)
	if cfg.Auth.JWTSecret == "" {
		logger.Warn("JWT_SECRET is not set, admin routes will reject every request")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize PostgreSQL (applies migrations when DATABASE_MIGRATE is set)
	db, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to PostgreSQL", "migrated", cfg.Database.MigrateOnStart)

	// Initialize Redis
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logger.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	logger.Info("connected to Redis")

	// Initialize repositories
	logRepo := postgres.NewNotificationLogRepository(db)
	alertRepo := postgres.NewVacancyAlertRepository(db)
	queue := redis.NewQueue(redisClient)
	rateLimiter := redis.NewRateLimiter(redisClient, cfg.Worker.RateLimitPerSec)

	// Initialize transports, tried in this order
	normalizer := domain.NewPhoneNormalizer(cfg.Messaging.DefaultCountryCode)
	bridge := provider.NewChatBridge(cfg.Bridge, normalizer, logger)
	sms := provider.NewSMSGateway(cfg.SMS, normalizer, logger)
	if !sms.Configured() {
		logger.Warn("HTTPSMS_API_KEY is not set, SMS fallback is disabled")
	}

	// Initialize catalog and dispatcher
	templates := catalog.New(catalog.Settings{
		SupportPhone: cfg.Messaging.SupportPhone,
		WebsiteURL:   cfg.Messaging.WebsiteURL,
		CompanyName:  cfg.Messaging.CompanyName,
	})
	dispatcher := service.NewDispatcher(templates, logger, bridge, sms)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := handler.NewMetrics(registry)

	// Initialize WebSocket hub
	wsHub := handler.NewWebSocketHub(logger)
	go wsHub.Run(ctx)

	// Outcome hooks: persist, publish, count
	deliveryLog := service.NewDeliveryLog(logRepo, logger)
	deliveryLog.Subscribe(wsHub.BroadcastLog)
	dispatcher.AddOutcomeHook(deliveryLog.Record)
	dispatcher.AddOutcomeHook(metrics.ObserveDispatch)

	// Initialize services
	notificationService := service.NewNotificationService(queue, logRepo, alertRepo, logger)
	templateService := service.NewTemplateService(templates, logger)
	schedulerService := service.NewSchedulerService(queue, logger, cfg.Worker.SchedulerInterval)

	// Initialize worker processor
	processor := worker.NewProcessor(queue, rateLimiter, dispatcher, logger, cfg.Worker)

	// Initialize handlers
	notificationHandler := handler.NewNotificationHandler(notificationService)
	templateHandler := handler.NewTemplateHandler(templateService)
	adminHandler := handler.NewAdminHandler(bridge, dispatcher, handler.CommunicationSettings{
		BridgeURL:          cfg.Bridge.URL,
		SMSAPIKey:          cfg.SMS.APIKey,
		SMSSenderPhone:     cfg.SMS.SenderPhone,
		DefaultCountryCode: cfg.Messaging.DefaultCountryCode,
		TestPhone:          cfg.Messaging.TestPhone,
		SupportPhone:       cfg.Messaging.SupportPhone,
		WebsiteURL:         cfg.Messaging.WebsiteURL,
		CompanyName:        cfg.Messaging.CompanyName,
	}, logger)

	healthHandler := handler.NewHealthHandler()
	healthHandler.AddChecker("postgres", db)
	healthHandler.AddChecker("redis", redisClient)
	healthHandler.AddChecker("queue", handler.HealthCheckerFunc(func(ctx context.Context) error {
		_, err := queue.Depth(ctx)
		return err
	}))

	metricsHandler := handler.NewMetricsHandler(metrics, notificationService, rateLimiter, worker.RateLimitScope)
	wsHandler := handler.NewWebSocketHandler(wsHub)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Correlation)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Metrics(metrics))

	// Health endpoints
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// Metrics endpoints
	r.Handle("/metrics", metricsHandler.Handler())
	r.Get("/metrics/realtime", metricsHandler.RealtimeMetrics)

	// WebSocket endpoint
	r.Get("/ws", wsHandler.HandleWebSocket)

	// API docs
	docs.SwaggerInfo.Host = "localhost:" + cfg.Server.Port
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	adminOnly := func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Auth.JWTSecret))
		r.Use(middleware.RequireRole(middleware.RoleAdmin))
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Compress(5))

		r.Route("/notifications", func(r chi.Router) {
			notificationHandler.RegisterRoutes(r)
			r.Group(func(r chi.Router) {
				adminOnly(r)
				notificationHandler.RegisterAdminRoutes(r)
			})
		})

		r.Route("/templates", func(r chi.Router) {
			templateHandler.RegisterRoutes(r)
			r.Group(func(r chi.Router) {
				adminOnly(r)
				templateHandler.RegisterAdminRoutes(r)
			})
		})

		r.Route("/vacancy-alerts", func(r chi.Router) {
			adminOnly(r)
			r.Post("/unit-available", notificationHandler.UnitAvailable)
		})

		r.Route("/admin", func(r chi.Router) {
			adminOnly(r)
			adminHandler.RegisterRoutes(r)
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start worker processor
	if err := processor.Start(ctx); err != nil {
		logger.Error("failed to start processor", "error", err)
		os.Exit(1)
	}

	// Start scheduler
	if err := schedulerService.Start(ctx); err != nil {
		logger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// Start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Stop accepting new requests
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	// Stop scheduler, then drain in-flight dispatches
	schedulerService.Stop()
	processor.Stop()

	cancel()

	logger.Info("server stopped")
}
