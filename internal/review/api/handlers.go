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
	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/review/domain"
	"github.com/IevgenSuturin/Reactive-Spring-Webflux/internal/review/store"
)

// ReviewHandler holds the dependencies for the review HTTP endpoints.
type ReviewHandler struct {
	store     store.ReviewStore
	logger    *slog.Logger
	validator *validator.Validate
	stream    *broadcast.Broadcaster[domain.Review]
}

func NewReviewHandler(s store.ReviewStore, l *slog.Logger, v *validator.Validate, b *broadcast.Broadcaster[domain.Review]) *ReviewHandler {
	return &ReviewHandler{
		store:     s,
		logger:    l,
		validator: v,
		stream:    b,
	}
}

func (h *ReviewHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *ReviewHandler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// CreateReview validates and persists a new review, then re-publishes it on
// the stream broadcaster without awaiting delivery.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var review domain.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode review request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()
	review.ReviewID = ""

	if msg := review.Validate(h.validator); msg != "" {
		h.logger.WarnContext(ctx, "Review validation failed", slog.String("violations", msg))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(msg))
		return
	}

	if err := h.store.Create(ctx, &review); err != nil {
		h.logger.ErrorContext(ctx, "Failed to create review in store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to create review")
		return
	}

	if err := h.stream.Publish(review); err != nil {
		h.logger.WarnContext(ctx, "Dropped review stream publish", slog.String("reviewID", review.ReviewID), slog.String("error", err.Error()))
	}

	h.respondJSON(w, r, http.StatusCreated, review)
}

// GetReviews lists reviews, optionally filtered by the movieInfoId query
// parameter.
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var movieInfoID *int64
	if idStr := r.URL.Query().Get("movieInfoId"); idStr != "" {
		idVal, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			h.respondError(w, r, http.StatusBadRequest, "movieInfoId must be an integer")
			return
		}
		movieInfoID = &idVal
	}

	reviews, err := h.store.List(ctx, movieInfoID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list reviews from store", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}
	h.respondJSON(w, r, http.StatusOK, reviews)
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	var review domain.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		h.logger.ErrorContext(ctx, "Failed to decode review update body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	updated, err := h.store.Update(ctx, id, &review)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			h.respondError(w, r, http.StatusNotFound, "Review not found for the given Review id "+id)
		} else {
			h.logger.ErrorContext(ctx, "Failed to update review in store", slog.String("reviewID", id), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to update review")
		}
		return
	}
	h.respondJSON(w, r, http.StatusOK, updated)
}

// DeleteReview checks existence first and silently skips the delete when the
// id is unknown; either way the response is 204. This differs from the movie
// info service, which deletes without checking. The divergence is deliberate
// and preserved per service.
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	_, err := h.store.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrReviewNotFound) {
			h.logger.ErrorContext(ctx, "Error finding review before delete", slog.String("reviewID", id), slog.String("error", err.Error()))
			h.respondError(w, r, http.StatusInternalServerError, "Failed to delete review")
			return
		}
	} else if err := h.store.Delete(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "Failed to delete review from store", slog.String("reviewID", id), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StreamReviews serves the long-lived NDJSON stream of created reviews with
// full replay for late subscribers.
func (h *ReviewHandler) StreamReviews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})
	_ = rc.Flush()

	enc := json.NewEncoder(w)
	for review := range h.stream.Subscribe(ctx) {
		if err := enc.Encode(review); err != nil {
			h.logger.DebugContext(ctx, "Review stream subscriber gone", slog.String("error", err.Error()))
			return
		}
		_ = rc.Flush()
	}
}
