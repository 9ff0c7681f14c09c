package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/cds-portal/recipes"
)

type apiError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RecipesAPIHandler exposes the configured recipe searcher (GET /api/recipes?query=).
func (s *Server) RecipesAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), s.config.GetRecipeSearchTimeout())
		defer cancel()

		results, err := s.searcher.Search(ctx, r.URL.Query().Get("query"))
		if err != nil {
			s.recorder.RecordSearch("unavailable")
			logError(r.Method, r.URL.Path, err)
			writeJSON(w, http.StatusServiceUnavailable, apiError{Error: "recipe search unavailable"})
			return
		}
		s.recorder.RecordSearch("ok")

		if recipes.ParseSortMode(r.URL.Query().Get("sort")) == recipes.SortRating {
			recipes.SortByRating(results)
		}
		if results == nil {
			results = []recipes.Recipe{}
		}
		writeJSON(w, http.StatusOK, results)
	}
}

// HealthHandler reports liveness and the number of live portal sessions.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"sessions": s.portals.Len(),
		})
	}
}
