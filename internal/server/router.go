package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func buildRouter(s *webServer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	// UI
	r.Get("/", s.indexHandler)
	r.Post("/search", s.searchHandler)
	r.Get("/get_sequence/", s.getSequenceHandler)
	r.Get("/searches/{id}", s.searchByIDHandler)

	// Health/info
	r.Get("/healthz", healthzHandler)
	r.Get("/api/v1/server-info", serverInfoHandler)

	// JSON APIs
	r.Get("/api/v1/databases", s.databasesHandler)
	r.Get("/api/v1/searches", s.listSearchesHandler)

	return r
}
