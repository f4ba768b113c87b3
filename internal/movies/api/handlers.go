package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/movies/clients"
	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/movies/domain"
)

// MoviesHandler composes movie infos and reviews from the upstream services.
type MoviesHandler struct {
	movieInfoClient *clients.MovieInfoClient
	reviewsClient   *clients.ReviewsClient
	logger          *slog.Logger
}

func NewMoviesHandler(mic *clients.MovieInfoClient, rc *clients.ReviewsClient, l *slog.Logger) *MoviesHandler {
	return &MoviesHandler{
		movieInfoClient: mic,
		reviewsClient:   rc,
		logger:          l,
	}
}

func (h *MoviesHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *MoviesHandler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// GetMovieByID fetches the movie info and its reviews and returns the
// composed document. Upstream ClientErrors keep their status; ServerErrors
// (after the clients' retry budget) surface as 500.
func (h *MoviesHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	info, err := h.movieInfoClient.FetchMovieInfo(ctx, id)
	if err != nil {
		h.respondUpstreamError(w, r, err, "movie info")
		return
	}

	reviews, err := h.reviewsClient.FetchReviews(ctx, id)
	if err != nil {
		h.respondUpstreamError(w, r, err, "reviews")
		return
	}

	h.respondJSON(w, r, http.StatusOK, domain.Movie{MovieInfo: *info, ReviewList: reviews})
}

func (h *MoviesHandler) respondUpstreamError(w http.ResponseWriter, r *http.Request, err error, upstream string) {
	ctx := r.Context()

	var clientErr *clients.ClientError
	if errors.As(err, &clientErr) {
		h.logger.WarnContext(ctx, "Upstream client error", slog.String("upstream", upstream),
			slog.Int("status", clientErr.StatusCode), slog.String("message", clientErr.Message))
		h.respondError(w, r, clientErr.StatusCode, clientErr.Message)
		return
	}

	var serverErr *clients.ServerError
	if errors.As(err, &serverErr) {
		h.logger.ErrorContext(ctx, "Upstream server error after retries", slog.String("upstream", upstream),
			slog.Int("status", serverErr.StatusCode), slog.String("message", serverErr.Message))
		h.respondError(w, r, http.StatusInternalServerError, serverErr.Message)
		return
	}

	h.logger.ErrorContext(ctx, "Upstream call failed", slog.String("upstream", upstream), slog.String("error", err.Error()))
	h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve "+upstream)
}
