package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Utgast/cabletherm"
	"github.com/Utgast/cabletherm/internal/catalog"
)

// CatalogHandler serves the cable construction catalog and the material
// registry: GET /catalog lists names, GET /catalog/{name} returns one spec.
type CatalogHandler struct {
	catalog  *catalog.Catalog
	registry *cabletherm.Registry
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(cat *catalog.Catalog, reg *cabletherm.Registry) *CatalogHandler {
	return &CatalogHandler{catalog: cat, registry: reg}
}

// ServeHTTP implements the http.Handler interface.
func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setupCORS(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/catalog")
	name = strings.TrimPrefix(name, "/")

	if name == "" {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"cables":    h.catalog.Names(),
			"materials": h.registry.Names(),
		})
		return
	}

	spec, err := h.catalog.Spec(name)
	if err != nil {
		writeError(w, "Unknown cable", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(spec)
}
