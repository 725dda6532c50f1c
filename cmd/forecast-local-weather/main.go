package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/juaquiro/forecastLocalWeather/internal/api/http"
	"github.com/juaquiro/forecastLocalWeather/internal/config"
	"github.com/juaquiro/forecastLocalWeather/internal/export"
	"github.com/juaquiro/forecastLocalWeather/internal/forecast"
	"github.com/juaquiro/forecastLocalWeather/internal/nowcast"
	"github.com/juaquiro/forecastLocalWeather/internal/scheduler"
	"github.com/juaquiro/forecastLocalWeather/internal/store"
)

func main() {
	// Load configuration (.env picked up inside Load).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// In-memory store for the current session.
	sessionStore := store.NewSessionStore()

	// Exporter writing finished sessions into the configured directory.
	writer := export.NewLogWriter(cfg.LogDir)

	// Core service orchestrating store, classifier and exporter.
	service := forecast.NewService(sessionStore, writer, cfg.SpreadThreshold, cfg.MinSamples)

	// Nowcast rule engine with the configured trend window.
	engineCfg := nowcast.DefaultConfig()
	engineCfg.TrendWindow = cfg.NowcastWindow
	engine := nowcast.NewEngine(engineCfg)

	// Scheduler that periodically evaluates and logs the trend.
	sched := scheduler.New(cfg.TrendEvalInterval, service, engine)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "forecast-local-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "forecast-local-weather",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, engine)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	// Exit flushes the in-flight session so no readings are lost.
	if name, exported, err := service.NewSession(); err != nil {
		log.Printf("failed to flush session on exit: %v", err)
	} else if exported {
		log.Printf("session log saved: %s", name)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
