package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/learnhub/learnhub-backend/config"
	"github.com/learnhub/learnhub-backend/internal/app/controller"
	"github.com/learnhub/learnhub-backend/internal/app/repository"
	"github.com/learnhub/learnhub-backend/internal/app/service"
	"github.com/learnhub/learnhub-backend/internal/db"
	"github.com/learnhub/learnhub-backend/internal/middleware"
	"github.com/learnhub/learnhub-backend/internal/router"
	"github.com/learnhub/learnhub-backend/internal/scheduler"
	"github.com/learnhub/learnhub-backend/internal/web"
	"github.com/learnhub/learnhub-backend/pkg/logger"
	"github.com/learnhub/learnhub-backend/pkg/mailer"
	"github.com/learnhub/learnhub-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting LearnHub server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Session revocation is optional; without Redis logout only clears the cookie
	var revoker service.SessionRevoker
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
		revoker = redis.NewSessionBlacklist(redis.GetClient())
	} else {
		logger.Warn("Redis disabled, logged out sessions stay valid until they expire")
	}

	// Mail goes to the log unless an SMTP relay is configured
	var mail mailer.Mailer = mailer.NewConsoleMailer()
	if cfg.Mail.Enabled() {
		mail = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			UseTLS:   cfg.Mail.UseTLS,
		})
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	resetRepo := repository.NewPasswordResetRepository(db.GetDB())
	courseRepo := repository.NewCourseRepository(db.GetDB())
	contactRepo := repository.NewContactRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, revoker, cfg.Session.Secret, cfg.Session.Expiry)
	passwordResetService := service.NewPasswordResetService(
		userRepo,
		resetRepo,
		service.NewResetTokenGenerator(cfg.PasswordReset.Secret, cfg.PasswordReset.Timeout),
		mail,
		service.PasswordResetOptions{
			FromEmail:      cfg.PasswordReset.FromEmail,
			AuditRetention: cfg.PasswordReset.AuditRetention,
		},
	)
	courseService := service.NewCourseService(courseRepo, userRepo)
	contactService := service.NewContactService(contactRepo)

	// Initialize middleware and controllers
	sessionCookie := middleware.NewSessionCookie(cfg.Session.CookieName, cfg.Session.CookieSecure)
	authMiddleware := middleware.NewAuthMiddleware(authService, sessionCookie)

	authController := controller.NewAuthController(authService, passwordResetService, sessionCookie, cfg.Server.PublicURL, cfg.Server.AllowedHosts)
	pageController := controller.NewPageController(contactService)
	courseController := controller.NewCourseController(courseService)

	templates, err := web.Templates()
	if err != nil {
		logger.Fatal("Failed to parse page templates", err)
	}

	// Setup router
	r := router.NewRouter(
		authController,
		pageController,
		courseController,
		authMiddleware,
		templates,
		cfg,
	)
	engine := r.Setup()

	// Start scheduler
	auditScheduler := scheduler.NewResetAuditScheduler(passwordResetService, cfg.PasswordReset.PurgeSchedule)
	if err := auditScheduler.Start(); err != nil {
		logger.Fatal("Failed to start reset audit scheduler", err)
	}
	defer auditScheduler.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shut down", err)
	}
	logger.Info("Server stopped successfully")
}
