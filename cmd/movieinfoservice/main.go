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
	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/movieinfo/api"
	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/movieinfo/domain"
	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/movieinfo/store"
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

	httpPort := envOr("MOVIEINFO_SERVICE_PORT", "8081")

	var movieInfoStore store.MovieInfoStore
	if dbURL := os.Getenv("MOVIEINFO_SERVICE_DATABASE_URL"); dbURL != "" {
		db, err := sqlx.Connect("postgres", dbURL)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()
		movieInfoStore, err = store.NewPostgresMovieInfoStore(db, logger)
		if err != nil {
			logger.Error("Failed to initialize PostgreSQL movie info store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("PostgreSQL movie info store initialized")
	} else {
		movieInfoStore = store.NewInMemoryMovieInfoStore()
		logger.Warn("MOVIEINFO_SERVICE_DATABASE_URL not set, using in-memory movie info store")
	}

	// One broadcaster per process; every successful create is re-published on
	// it for the /stream subscribers.
	stream := broadcast.New[domain.MovieInfo]()
	defer stream.Close()

	handler := api.NewMovieInfoHandler(movieInfoStore, logger, validator.New(), stream)
	srv := &http.Server{
		Addr:        ":" + httpPort,
		Handler:     api.NewRouter(handler),
		ReadTimeout: 5 * time.Second,
		// No WriteTimeout: the /stream endpoint holds its response open for
		// the life of the client; bounded endpoints stay fast regardless.
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		logger.Info("Movie info service HTTP server starting", slog.String("port", httpPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Movie info service ListenAndServe() failed", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Movie info service shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Movie info service HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		logger.Info("Movie info service HTTP server gracefully stopped")
	}
}
