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
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/cv-matcher/internal/config"
	"alfredoptarigan/cv-matcher/internal/handlers"
	"alfredoptarigan/cv-matcher/internal/logger"
	"alfredoptarigan/cv-matcher/internal/matching"
	"alfredoptarigan/cv-matcher/internal/services"
	"alfredoptarigan/cv-matcher/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	lg, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("creating a logger: %v", err)
	}
	defer lg.Sync() //nolint:errcheck

	embedder, closeCache := services.NewEmbedderFromConfig(context.Background(), cfg, lg)
	defer closeCache()

	engine, err := matching.NewEngine(cfg.EngineConfig(), embedder, lg.Named("engine"))
	if err != nil {
		lg.Fatal("invalid matching config", zap.Error(err))
	}

	matchService := services.NewMatchService(engine, lg.Named("match"))
	matchHandler := handlers.NewMatchHandler(matchService, validation.New(), lg.Named("http"), cfg.IsDevelopment())
	healthHandler := handlers.NewHealthHandler(matchService)

	app := fiber.New(fiber.Config{
		AppName:      "CV Matcher API",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: handlers.ErrorHandler(lg.Named("http"), cfg.IsDevelopment()),
	})

	// Middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.IsDevelopment()}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	// Routes
	api := app.Group("/api")
	api.Get("/health", healthHandler.HandleHealth)
	api.Post("/match", matchHandler.HandleMatch)
	api.Post("/report", matchHandler.HandleReport)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CV Matcher API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/match",
				"POST /api/report",
				"GET /api/health",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		lg.Info("shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			lg.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	lg.Info("server starting",
		zap.String("addr", addr),
		zap.String("env", cfg.Server.Env),
		zap.Bool("embedding", embedder != nil),
	)

	if err := app.Listen(addr); err != nil {
		lg.Fatal("failed to start server", zap.Error(err))
	}
}
