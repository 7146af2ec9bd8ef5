package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/planhub-dev/planhub/db"
	"github.com/planhub-dev/planhub/internal/auth"
	"github.com/planhub-dev/planhub/internal/config"
	"github.com/planhub-dev/planhub/internal/directory"
	"github.com/planhub-dev/planhub/internal/handlers"
	"github.com/planhub-dev/planhub/internal/logger"
	"github.com/planhub-dev/planhub/internal/mailer"
	"github.com/planhub-dev/planhub/internal/notifications"
	"github.com/planhub-dev/planhub/internal/router"
	"github.com/planhub-dev/planhub/internal/scheduler"
	"github.com/planhub-dev/planhub/internal/templates"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg, err := config.Load(os.Getenv("PLANHUB_CONFIG"))

	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(cfg.Log)

	if err := auth.Init(cfg.JWT.Secret, cfg.JWT.TTL); err != nil {
		appLog.WithError(err).Fatal("Failed to initialize auth")
	}

	gormDB, err := db.Connect(cfg.Database)

	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}

	if err := db.Migrate(gormDB); err != nil {
		appLog.WithError(err).Fatal("Failed to run migrations")
	}

	registry := templates.NewRegistry()
	smtp := mailer.NewSMTP(cfg.SMTP)

	repo := notifications.NewRepository(gormDB)
	settings := notifications.NewSettingsStore(gormDB)
	dispatcher := notifications.NewDispatcher(repo, settings, registry, smtp, nil, appLog, cfg.App.BaseURL)
	users := directory.NewService(gormDB)
	scanner := notifications.NewScanner(dispatcher, settings, users, nil, appLog)

	reminders := scheduler.New(scanner, cfg.Reminder.Interval, appLog)
	reminders.Start()
	defer reminders.Stop()

	gin.SetMode(cfg.Server.Mode)

	r := router.New(gormDB, router.Handlers{
		Auth:          handlers.NewAuthHandler(gormDB, registry, smtp, appLog, cfg.App.CookieDomain, cfg.App.BaseURL),
		Users:         handlers.NewUserHandler(gormDB, appLog),
		Projects:      handlers.NewProjectHandler(gormDB, dispatcher, appLog),
		Notifications: handlers.NewNotificationHandler(repo, scanner, appLog),
		Settings:      handlers.NewSettingsHandler(settings, appLog),
		Emails:        handlers.NewEmailHandler(registry, smtp, scanner, appLog),
	}, cfg.App.AllowedOrigins)

	go func() {
		appLog.WithField("addr", cfg.Server.Addr()).Info("Starting server")

		if err := r.Run(cfg.Server.Addr()); err != nil {
			appLog.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down")
}
