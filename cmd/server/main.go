package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/kinderbook/internal/config"
	"github.com/stemsi/kinderbook/internal/database"
	"github.com/stemsi/kinderbook/internal/handler"
	"github.com/stemsi/kinderbook/internal/logger"
	"github.com/stemsi/kinderbook/internal/middleware"
	"github.com/stemsi/kinderbook/internal/repository"
	"github.com/stemsi/kinderbook/internal/router"
	"github.com/stemsi/kinderbook/internal/service"
	"github.com/stemsi/kinderbook/internal/storage"
	"github.com/stemsi/kinderbook/internal/subject"
	"github.com/stemsi/kinderbook/internal/validator"
	"github.com/stemsi/kinderbook/internal/websocket"
	"github.com/stemsi/kinderbook/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("storage", cfg.StorageDriver).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Kinderbook")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Open Storage ──────────────────────────────────────────────────
	store, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer closeStore()

	// ─── Load Address Book ─────────────────────────────────────────────
	book := repository.NewAddressBook(subject.NewDefaultRegistry())
	bookService := service.NewBookService(book, store, log)
	if err := bookService.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load address book")
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	hub := websocket.NewHub(cfg.EventBuffer, log)
	bookService.Subscribe(hub.Observe)
	go hub.Run(workerCtx)

	// ─── Connect to Redis (optional) ───────────────────────────────────
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		scoreWorker := worker.NewScoreEventWorker(rdb, cfg.EventBuffer, log)
		bookService.Subscribe(scoreWorker.Observe)
		go scoreWorker.Start(workerCtx)
	} else {
		log.Info().Msg("REDIS_URL not set, Redis score fan-out disabled")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	go limiter.RunCleanup(workerCtx)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Command: handler.NewCommandHandler(bookService, log),
		Person:  handler.NewPersonHandler(bookService),
		Subject: handler.NewSubjectHandler(bookService),
		WS:      handler.NewWSHandler(bookService, hub, log, cfg.AllowedOrigins),
		System:  handler.NewSystemHandler(bookService, hub, rdb, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, limiter, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and let the Redis worker flush.
	workerCancel()
	time.Sleep(time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
