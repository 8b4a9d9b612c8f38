package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/zap"

	"github.com/kapu/cinepick-go/internal/app"
	"github.com/kapu/cinepick-go/internal/config"
	"github.com/kapu/cinepick-go/internal/util"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	container, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build application", zap.Error(err))
	}
	defer container.Close()

	fiberApp := fiber.New(fiber.Config{
		AppName: "CinePick",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			logger.Error("Unhandled error", zap.Error(err), zap.Int("status", code))
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	fiberApp.Use(recover.New())
	fiberApp.Use(cors.New())

	fiberApp.Get("/health", container.Handler.Health)
	fiberApp.Post("/api/recommendations", container.Handler.Recommend)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("Server starting", zap.String("addr", addr))
		if err := fiberApp.Listen(addr); err != nil {
			logger.Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	if err := fiberApp.Shutdown(); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
}
