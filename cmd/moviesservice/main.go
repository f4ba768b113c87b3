package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/movies/api"
	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/movies/clients"
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

	httpPort := envOr("MOVIES_SERVICE_PORT", "8080")
	movieInfosURL := envOr("MOVIEINFO_SERVICE_URL", "http://localhost:8081/v1/movieinfos")
	reviewsURL := envOr("REVIEW_SERVICE_URL", "http://localhost:8082/v1/reviews")

	handler := api.NewMoviesHandler(
		clients.NewMovieInfoClient(movieInfosURL, logger),
		clients.NewReviewsClient(reviewsURL, logger),
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + httpPort,
		Handler:      api.NewRouter(handler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Movies service HTTP server starting", slog.String("port", httpPort),
			slog.String("movieInfosURL", movieInfosURL), slog.String("reviewsURL", reviewsURL))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Movies service ListenAndServe() failed", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Movies service shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Movies service HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		logger.Info("Movies service HTTP server gracefully stopped")
	}
}
