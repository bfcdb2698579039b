package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/adapter/ai/classifier"
	"github.com/ShiroiHyun/StudAIApp/internal/adapter/cache"
	"github.com/ShiroiHyun/StudAIApp/internal/adapter/http/fiber/handlers"
	"github.com/ShiroiHyun/StudAIApp/internal/adapter/http/fiber/middleware"
	"github.com/ShiroiHyun/StudAIApp/internal/adapter/queue"
	"github.com/ShiroiHyun/StudAIApp/internal/adapter/speech"
	"github.com/ShiroiHyun/StudAIApp/internal/adapter/storage/postgres"
	"github.com/ShiroiHyun/StudAIApp/internal/adapter/vault"
	wsAdapter "github.com/ShiroiHyun/StudAIApp/internal/adapter/websocket"
	"github.com/ShiroiHyun/StudAIApp/internal/observability/telemetry"
	"github.com/ShiroiHyun/StudAIApp/internal/ports"
	"github.com/ShiroiHyun/StudAIApp/internal/service/admin"
	"github.com/ShiroiHyun/StudAIApp/internal/service/auth"
	"github.com/ShiroiHyun/StudAIApp/internal/service/course"
	"github.com/ShiroiHyun/StudAIApp/internal/service/email"
	"github.com/ShiroiHyun/StudAIApp/internal/service/health"
	"github.com/ShiroiHyun/StudAIApp/internal/service/notification"
	"github.com/ShiroiHyun/StudAIApp/internal/service/schedule"
	"github.com/ShiroiHyun/StudAIApp/internal/service/voice"
	"github.com/ShiroiHyun/StudAIApp/pkg/config"
)

const serviceName = "studai-server"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting StudAI server",
		zap.String("service", serviceName),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	if cfg.Telemetry.TracingEnabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, cfg.App.Version, cfg.Telemetry.JaegerEndpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// Secrets come from Vault in production. The static source keeps
	// local development working without one.
	var secrets ports.SecretSource
	if cfg.Vault.Enabled {
		secrets, err = vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to connect to Vault", zap.Error(err))
		}
	} else {
		secrets = vault.NewStaticSecrets(cfg.JWT.Secret, cfg.Classifier.APIKey)
	}

	jwtSecret, err := secrets.JWTSecret()
	if err != nil {
		logger.Fatal("Failed to resolve JWT secret", zap.Error(err))
	}

	db, err := postgres.NewConnection(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Redis is preferred; a dropped Redis degrades to the in-process
	// cache rather than taking the voice pipeline down.
	appCache, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using in-process cache", zap.Error(err))
		appCache = cache.NewLocalCache(time.Minute, logger)
	}
	defer appCache.Close()

	messageQueue, err := queue.New(cfg.Queue, logger)
	if err != nil {
		logger.Fatal("Failed to connect to message queue", zap.Error(err))
	}
	defer messageQueue.Close()

	userRepo := postgres.NewUserRepository(db, logger)
	courseRepo := postgres.NewCourseRepository(db, logger)
	appointmentRepo := postgres.NewAppointmentRepository(db, logger)
	notificationRepo := postgres.NewNotificationRepository(db, logger)
	ticketRepo := postgres.NewTicketRepository(db, logger)

	emailProvider, err := email.NewProvider(cfg.Email)
	if err != nil {
		logger.Warn("Email provider not configured, confirmations disabled", zap.Error(err))
		emailProvider = nil
	}

	authService := auth.NewService(userRepo, appCache, jwtSecret, logger)
	courseService := course.NewService(courseRepo, messageQueue, logger)
	scheduleService := schedule.NewService(appointmentRepo, userRepo, emailProvider, logger)
	notificationService := notification.NewService(notificationRepo, messageQueue, logger)
	adminService := admin.NewService(ticketRepo, logger)

	intentClassifier := buildClassifier(cfg, secrets, logger)

	hub := wsAdapter.NewNotificationHub(logger)
	if err := hub.Listen(messageQueue); err != nil {
		logger.Fatal("Failed to subscribe notification hub", zap.Error(err))
	}
	go hub.Run()

	// With no engine configured, spoken feedback travels back over
	// the websocket for client-side synthesis.
	var synthesisEngine voice.SynthesisEngine
	if cfg.Speech.EngineURL != "" {
		engineClient := speech.NewEngineClient(cfg.Speech, logger)
		defer engineClient.Close()
		synthesisEngine = engineClient
	}

	voiceStreamHandler := wsAdapter.NewVoiceStreamHandler(
		intentClassifier, userRepo, appCache, courseService, messageQueue,
		synthesisEngine, cfg.Speech.Locale, logger)

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	} else {
		app.Use(middleware.DefaultCORS())
	}
	app.Use(middleware.CircuitBreaker(logger))

	healthService := health.NewService(&health.Config{
		Version:       cfg.App.Version,
		DB:            sqlDB,
		Cache:         appCache,
		ClassifierURL: cfg.Classifier.URL,
	}, logger)
	health.NewFiberHandler(healthService).RegisterRoutes(app)

	app.Get(metricsPath(cfg), func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	v1 := app.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(authService, logger)
	v1.Post("/auth/login", authHandler.Login)
	v1.Post("/auth/register", authHandler.Register)
	v1.Post("/auth/refresh", authHandler.RefreshToken)

	protected := v1.Group("", middleware.AuthRequired(authService))
	protected.Get("/auth/me", authHandler.Me)

	courseHandler := handlers.NewCourseHandler(courseService, logger)
	protected.Get("/courses", courseHandler.List)
	protected.Post("/courses", courseHandler.Add)

	scheduleHandler := handlers.NewScheduleHandler(scheduleService, logger)
	protected.Get("/appointments", scheduleHandler.List)
	protected.Post("/appointments", scheduleHandler.Add)
	protected.Patch("/appointments/:id/status", scheduleHandler.UpdateStatus)

	notificationHandler := handlers.NewNotificationHandler(notificationService, logger)
	protected.Get("/notifications", notificationHandler.List)
	protected.Patch("/notifications/:id/read", notificationHandler.MarkRead)

	preferencesHandler := handlers.NewPreferencesHandler(userRepo, appCache, logger)
	protected.Get("/preferences", preferencesHandler.Get)
	protected.Put("/preferences", preferencesHandler.Update)
	protected.Post("/preferences/contrast", preferencesHandler.ToggleContrast)
	protected.Put("/preferences/consents", preferencesHandler.UpdateConsents)

	voiceHandler := handlers.NewVoiceHandler(
		intentClassifier, userRepo, appCache, courseService, messageQueue, logger)
	protected.Post("/voice/command", voiceHandler.ProcessCommand)

	adminHandler := handlers.NewAdminHandler(adminService, logger)
	adminRoutes := v1.Group("/admin", middleware.AuthRequired(authService), middleware.AdminRequired())
	adminRoutes.Get("/metrics", adminHandler.Metrics)
	adminRoutes.Get("/tickets", adminHandler.ListTickets)
	adminRoutes.Patch("/tickets/:id/resolve", adminHandler.ResolveTicket)
	adminRoutes.Get("/report", adminHandler.DownloadReport)

	app.Use("/ws", middleware.AuthRequired(authService))
	wsAdapter.SetupVoiceRoutes(app, voiceStreamHandler)
	wsAdapter.SetupNotificationRoutes(app, hub)

	go func() {
		logger.Info("Starting HTTP server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// buildClassifier wires the rule table, and in front of it the remote
// classifier when one is configured.
func buildClassifier(cfg *config.Config, secrets ports.SecretSource, logger *zap.Logger) voice.Classifier {
	rules := voice.NewRuleClassifier(logger)
	if cfg.Classifier.URL == "" {
		logger.Info("No remote classifier configured, rule table runs alone")
		return rules
	}

	apiKey, err := secrets.ClassifierAPIKey()
	if err != nil {
		logger.Warn("Failed to resolve classifier API key, rule table runs alone", zap.Error(err))
		return rules
	}

	remote := classifier.NewClient(cfg.Classifier.URL, apiKey, cfg.Classifier.Timeout, logger)
	return voice.NewRemoteClassifier(remote, rules, voice.RemoteClassifierConfig{
		Timeout:          cfg.Classifier.Timeout,
		BreakerInterval:  cfg.Classifier.BreakerInterval,
		BreakerTimeout:   cfg.Classifier.BreakerTimeout,
		FailureThreshold: cfg.Classifier.FailureThreshold,
	}, logger)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func metricsPath(cfg *config.Config) string {
	if cfg.Telemetry.MetricsPath != "" {
		return cfg.Telemetry.MetricsPath
	}
	return "/metrics"
}
