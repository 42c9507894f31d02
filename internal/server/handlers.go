package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zdk123/sequenceserver/internal/blast"
	"github.com/zdk123/sequenceserver/internal/config"
	"github.com/zdk123/sequenceserver/internal/database"
	"github.com/zdk123/sequenceserver/internal/query"
	"github.com/zdk123/sequenceserver/internal/report"
	"github.com/zdk123/sequenceserver/internal/retrieval"
	"github.com/zdk123/sequenceserver/internal/store"
	"github.com/zdk123/sequenceserver/internal/version"
)

func (s *webServer) searchHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	method := r.FormValue("method")
	if !config.ValidMethod(method) {
		http.Error(w, fmt.Sprintf("unsupported method %q", method), http.StatusBadRequest)
		return
	}
	sequence := r.FormValue("sequence")
	if strings.TrimSpace(sequence) == "" {
		http.Error(w, "sequence is required", http.StatusBadRequest)
		return
	}
	names := r.Form["databases"]
	if len(names) == 0 {
		http.Error(w, "select at least one database", http.StatusBadRequest)
		return
	}
	paths := make([]string, 0, len(names))
	for _, name := range names {
		db, ok := database.Find(s.databases, name)
		if !ok {
			http.Error(w, fmt.Sprintf("unknown database %q", name), http.StatusBadRequest)
			return
		}
		paths = append(paths, db.Path)
	}

	normalized := query.Normalize(sequence)
	res, err := s.runner.Run(r.Context(), blast.Request{
		Method:        method,
		Query:         normalized,
		DatabasePaths: paths,
		Options:       s.cfg.Options[method],
		NumThreads:    s.cfg.NumThreads,
	})
	if err != nil {
		slog.Error("blast run failed to start", "method", method, "error", err)
		http.Error(w, "search could not be started", http.StatusInternalServerError)
		return
	}
	if !res.Success {
		// Upstream tool failure is passed through as-is; the rewriter never
		// sees a failed run.
		http.Error(w, fmt.Sprintf("search failed with status %d: %s", res.Status, res.Message), http.StatusInternalServerError)
		return
	}

	rw := report.Rewriter{Databases: names, Resolver: s.resolver}
	html := rw.Rewrite(res.ReportLines)

	if s.store != nil {
		if _, err := s.store.SaveSearch(store.Search{
			Method:     method,
			Databases:  names,
			Options:    s.cfg.Options[method],
			QueryText:  normalized,
			ReportHTML: html,
		}); err != nil {
			slog.Warn("persist search", "error", err)
		}
	}

	writePage(w, "Results", html)
}

func (s *webServer) getSequenceHandler(w http.ResponseWriter, r *http.Request) {
	ids := retrieval.DedupeIDs(strings.Fields(r.URL.Query().Get("id")))
	dbNames := strings.Fields(r.URL.Query().Get("db"))
	if len(ids) == 0 || len(dbNames) == 0 {
		http.Error(w, "id and db query parameters are required", http.StatusBadRequest)
		return
	}

	req := retrieval.Request{IDs: ids, Databases: dbNames}
	res, err := retrieval.Fetch(r.Context(), nameFetcher{databases: s.databases, fetcher: s.fetcher}, req)
	if err != nil {
		slog.Error("sequence retrieval failed", "error", err)
		http.Error(w, "sequence retrieval failed", http.StatusInternalServerError)
		return
	}

	writePage(w, "Retrieved sequences", retrieval.RenderHTML(req, res))
}

// nameFetcher resolves the user-facing database names of a retrieval request
// to on-disk paths before delegating to the blastdbcmd-backed fetcher.
type nameFetcher struct {
	databases []database.Database
	fetcher   blast.Fetcher
}

func (f nameFetcher) Fetch(ctx context.Context, ids []string, name string) (string, error) {
	db, ok := database.Find(f.databases, name)
	if !ok {
		return "", fmt.Errorf("unknown database %q", name)
	}
	return f.fetcher.Fetch(ctx, ids, db.Path)
}

func (s *webServer) searchByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid search id", http.StatusBadRequest)
		return
	}
	search, err := s.store.GetSearch(id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("load search", "id", id, "error", err)
		http.Error(w, "could not load search", http.StatusInternalServerError)
		return
	}
	writePage(w, "Results", search.ReportHTML)
}

func (s *webServer) listSearchesHandler(w http.ResponseWriter, r *http.Request) {
	searches, err := s.store.ListSearches(50)
	if err != nil {
		slog.Error("list searches", "error", err)
		http.Error(w, "could not list searches", http.StatusInternalServerError)
		return
	}
	if searches == nil {
		searches = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, searches)
}

func (s *webServer) databasesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.databases)
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func serverInfoHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    "sequenceserver",
		"version": version.Current(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode JSON response", "error", err)
	}
}
