package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/hadinata/identity-service/config"
	"github.com/hadinata/identity-service/db"
	"github.com/hadinata/identity-service/internal/identity/handler"
	repo "github.com/hadinata/identity-service/internal/identity/repository/postgres"
	"github.com/hadinata/identity-service/internal/identity/service"
	"github.com/hadinata/identity-service/internal/mailer"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.Migrate(ctx, cfg.DBURL); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := repo.NewPostgresRepository(pool)
	notifier := mailer.NewSMTPNotifier(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.EmailFrom,
	}, logger)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiryMin)
	otpService := service.NewOTPService(cfg.OTPLength, cfg.OTPExpiryMin)
	userService := service.NewUserService(userRepo, notifier, tokenService, otpService, logger)
	authHandler := handler.NewAuthHandler(userService, tokenService, cfg.Env, logger)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(fiberlogger.New())
	handler.RegisterRoutes(app, authHandler)

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
