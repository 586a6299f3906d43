package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/priyank-dev/edu-sync-service/internal/api"
	"github.com/priyank-dev/edu-sync-service/internal/bus"
	"github.com/priyank-dev/edu-sync-service/internal/config"
	"github.com/priyank-dev/edu-sync-service/internal/handler"
	"github.com/priyank-dev/edu-sync-service/internal/router"
	"github.com/priyank-dev/edu-sync-service/internal/store"
	syncjob "github.com/priyank-dev/edu-sync-service/internal/sync"
	ws "github.com/priyank-dev/edu-sync-service/internal/websocket"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pgStore, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()
	logger.Info("connected to PostgreSQL")

	if err := pgStore.RunMigrations(ctx, "migrations"); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database migrations applied")

	redisStore, err := store.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisStore.Close()
	logger.Info("connected to Redis")

	hub := ws.NewHub(logger)
	go hub.Run()

	// Domain handlers share the one persistence gateway.
	handlers := router.Handlers{
		Users:       handler.NewUserHandler(pgStore),
		Courses:     handler.NewCourseHandler(pgStore),
		Content:     handler.NewContentHandler(pgStore),
		Attendance:  handler.NewAttendanceHandler(pgStore),
		Assessments: handler.NewAssessmentHandler(pgStore),
		Calendar:    handler.NewCalendarHandler(pgStore),
		Projects:    handler.NewProjectHandler(pgStore, redisStore, logger),
	}
	eventRouter := router.NewDefault(handlers, logger)

	consumerCtx, stopConsumer := context.WithCancel(ctx)
	defer stopConsumer()

	consumer := bus.NewConsumer(redisStore.Client(), eventRouter.Route, logger)
	go consumer.Start(consumerCtx)

	contentClient := syncjob.NewContentClient(cfg.ContentAPIURL)
	job := syncjob.NewJob(contentClient, handlers.Courses, handlers.Assessments, pgStore, pgStore, redisStore, hub, logger)

	scheduler := syncjob.NewScheduler(job, cfg.SyncHour, logger)
	go scheduler.Start(consumerCtx)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(job, pgStore, hub),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")
	stopConsumer()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
