package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

func NewRouter(handler *ReviewHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(handler.logRequests)

	v1 := router.PathPrefix("/v1").Subrouter()

	reviews := v1.PathPrefix("/reviews").Subrouter()
	reviews.HandleFunc("", handler.CreateReview).Methods(http.MethodPost)
	reviews.HandleFunc("", handler.GetReviews).Methods(http.MethodGet)
	reviews.HandleFunc("/stream", handler.StreamReviews).Methods(http.MethodGet)
	reviews.HandleFunc("/{id}", handler.UpdateReview).Methods(http.MethodPut)
	reviews.HandleFunc("/{id}", handler.DeleteReview).Methods(http.MethodDelete)

	return router
}

func (h *ReviewHandler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.InfoContext(r.Context(), "Request handled",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)))
	})
}
