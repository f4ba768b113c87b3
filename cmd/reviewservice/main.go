package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/broadcast"
	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/review/api"
	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/review/domain"
	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/review/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file loaded", slog.String("error", err.Error()))
	}

	httpPort := envOr("REVIEW_SERVICE_PORT", "8082")

	var reviewStore store.ReviewStore
	if dbURL := os.Getenv("REVIEW_SERVICE_DATABASE_URL"); dbURL != "" {
		db, err := sqlx.Connect("postgres", dbURL)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()
		reviewStore, err = store.NewPostgresReviewStore(db, logger)
		if err != nil {
			logger.Error("Failed to initialize PostgreSQL review store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("PostgreSQL review store initialized")
	} else {
		reviewStore = store.NewInMemoryReviewStore()
		logger.Warn("REVIEW_SERVICE_DATABASE_URL not set, using in-memory review store")
	}

	stream := broadcast.New[domain.Review]()
	defer stream.Close()

	handler := api.NewReviewHandler(reviewStore, logger, validator.New(), stream)
	srv := &http.Server{
		Addr:        ":" + httpPort,
		Handler:     api.NewRouter(handler),
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		logger.Info("Review service HTTP server starting", slog.String("port", httpPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Review service ListenAndServe() failed", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Review service shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Review service HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		logger.Info("Review service HTTP server gracefully stopped")
	}
}
