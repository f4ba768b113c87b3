package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/broadcast"
	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/movieinfo/domain"
	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/movieinfo/store"
)

// MovieInfoHandler holds the dependencies for the movie info HTTP endpoints.
// The stream broadcaster is process-wide, created in main and injected here.
type MovieInfoHandler struct {
	store     store.MovieInfoStore
	logger    *slog.Logger
	validator *validator.Validate
	stream    *broadcast.Broadcaster[domain.MovieInfo]
}

func NewMovieInfoHandler(s store.MovieInfoStore, l *slog.Logger, v *validator.Validate, b *broadcast.Broadcaster[domain.MovieInfo]) *MovieInfoHandler {
	return &MovieInfoHandler{
		store:     s,
		logger:    l,
		validator: v,
		stream:    b,
	}
}

func (h *MovieInfoHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *MovieInfoHandler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// CreateMovieInfo persists a new movie info and re-publishes it on the stream
// broadcaster. The publish is best-effort: its failure is logged and never
// fails the create response.
func (h *MovieInfoHandler) CreateMovieInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var info domain.MovieInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode movie info request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()
	info.MovieInfoID = ""

	if msg := info.Validate(h.validator); msg != "" {
		h.logger.WarnContext(ctx, "Movie info validation failed", slog.String("violations", msg))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(msg))
		return
	}

	if err := h.store.Create(ctx, &info); err != nil {
		h.logger.ErrorContext(ctx, "Failed to create movie info in store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to create movie info")
		return
	}

	if err := h.stream.Publish(info); err != nil {
		h.logger.WarnContext(ctx, "Dropped movie info stream publish", slog.String("movieInfoID", info.MovieInfoID), slog.String("error", err.Error()))
	}

	h.respondJSON(w, r, http.StatusCreated, info)
}

// GetMovieInfos lists movie infos, optionally filtered by year and name; both
// filters combine with AND.
func (h *MovieInfoHandler) GetMovieInfos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	queryParams := r.URL.Query()

	params := store.ListParams{Name: queryParams.Get("name")}
	if yearStr := queryParams.Get("year"); yearStr != "" {
		yearVal, err := strconv.Atoi(yearStr)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, "year must be an integer")
			return
		}
		params.Year = yearVal
	}

	infos, err := h.store.List(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list movie infos from store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve movie infos")
		return
	}
	h.respondJSON(w, r, http.StatusOK, infos)
}

func (h *MovieInfoHandler) GetMovieInfoByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	info, err := h.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrMovieInfoNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Movie info not found")
		} else {
			h.logger.ErrorContext(ctx, "Error finding movie info by id", slog.String("movieInfoID", id), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Error finding movie info")
		}
		return
	}
	h.respondJSON(w, r, http.StatusOK, info)
}

// UpdateMovieInfo replaces the mutable fields of an existing movie info. The
// identifier in the path wins; the body's id is ignored.
func (h *MovieInfoHandler) UpdateMovieInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	var info domain.MovieInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode movie info update body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	updated, err := h.store.Update(ctx, id, &info)
	if err != nil {
		if errors.Is(err, store.ErrMovieInfoNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Movie info not found")
		} else {
			h.logger.ErrorContext(ctx, "Failed to update movie info in store", slog.String("movieInfoID", id), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to update movie info")
		}
		return
	}
	h.respondJSON(w, r, http.StatusOK, updated)
}

// DeleteMovieInfo removes a movie info and answers 204 whether or not the id
// existed; this service does not check existence before the delete.
func (h *MovieInfoHandler) DeleteMovieInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	if err := h.store.Delete(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "Failed to delete movie info from store", slog.String("movieInfoID", id), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to delete movie info")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StreamMovieInfos serves the long-lived NDJSON stream. Each subscriber
// replays the full history of created movie infos before receiving live ones;
// a client disconnect cancels only its own subscription.
func (h *MovieInfoHandler) StreamMovieInfos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	// The stream is unbounded; the server-wide write timeout must not cut it.
	_ = rc.SetWriteDeadline(time.Time{})
	_ = rc.Flush()

	enc := json.NewEncoder(w)
	for info := range h.stream.Subscribe(ctx) {
		if err := enc.Encode(info); err != nil {
			h.logger.DebugContext(ctx, "Movie info stream subscriber gone", slog.String("error", err.Error()))
			return
		}
		_ = rc.Flush()
	}
}
