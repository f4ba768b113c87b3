package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

func NewRouter(handler *MoviesHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(handler.logRequests)

	v1 := router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/movies/{id}", handler.GetMovieByID).Methods(http.MethodGet)

	return router
}

func (h *MoviesHandler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.InfoContext(r.Context(), "Request handled",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)))
	})
}
