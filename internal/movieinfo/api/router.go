package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(handler *MovieInfoHandler) *mux.Router {
	router := mux.NewRouter()
	router.Use(handler.logRequests)

	v1 := router.PathPrefix("/v1").Subrouter()

	movieInfos := v1.PathPrefix("/movieinfos").Subrouter()
	movieInfos.HandleFunc("", handler.CreateMovieInfo).Methods(http.MethodPost)
	movieInfos.HandleFunc("", handler.GetMovieInfos).Methods(http.MethodGet)
	// Registered before /{id} so "stream" is not taken for an identifier.
	movieInfos.HandleFunc("/stream", handler.StreamMovieInfos).Methods(http.MethodGet)
	movieInfos.HandleFunc("/{id}", handler.GetMovieInfoByID).Methods(http.MethodGet)
	movieInfos.HandleFunc("/{id}", handler.UpdateMovieInfo).Methods(http.MethodPut)
	movieInfos.HandleFunc("/{id}", handler.DeleteMovieInfo).Methods(http.MethodDelete)

	return router
}
