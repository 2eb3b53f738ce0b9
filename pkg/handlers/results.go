package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/Utgast/cabletherm/internal/store"
)

// ResultsHandler serves stored solve results: GET /results/{id} for one
// run, GET /results?limit=N for the latest runs.
type ResultsHandler struct {
	store *store.Store
}

// NewResultsHandler creates a results handler over the audit store.
func NewResultsHandler(s *store.Store) *ResultsHandler {
	return &ResultsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
func (h *ResultsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setupCORS(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/results")
	id = strings.TrimPrefix(id, "/")

	if id == "" {
		h.serveRecent(w, r)
		return
	}

	result, ok, err := h.store.Result(r.Context(), id)
	if err != nil {
		writeError(w, "Result lookup failed", http.StatusInternalServerError)
		return
	}
	if !ok {
		writeError(w, "Unknown request id", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

func (h *ResultsHandler) serveRecent(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	results, err := h.store.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, "Result lookup failed", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"count":   len(results),
		"results": results,
	})
}
