package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Utgast/cabletherm/internal/utils"
	"github.com/Utgast/cabletherm/pkg/config"
	"github.com/Utgast/cabletherm/pkg/models"
	"github.com/Utgast/cabletherm/pkg/worker"
)

// SolveHandler accepts a single solve request, queues it on the worker pool
// and acknowledges with 202 plus the request id. Clients pick the result up
// via the results endpoint, the websocket stream, or the webhook.
type SolveHandler struct {
	cfg  *config.Config
	pool *worker.Pool
}

// NewSolveHandler creates a solve handler.
func NewSolveHandler(cfg *config.Config, pool *worker.Pool) *SolveHandler {
	return &SolveHandler{cfg: cfg, pool: pool}
}

// ServeHTTP implements the http.Handler interface.
func (h *SolveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setupCORS(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if req.Mode == "" {
		writeError(w, "No solve mode given", http.StatusBadRequest)
		return
	}

	requestID := utils.GenerateID()
	h.pool.SubmitJob(models.WorkItem{
		RequestID: requestID,
		Request:   req,
		StartTime: time.Now(),
	})

	if !h.cfg.Quiet {
		log.Printf("solve request accepted - ID: %s, mode: %s", requestID, req.Mode)
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":    true,
		"request_id": requestID,
		"message":    "Solve started",
	})
}

// setupCORS sets the shared response headers.
func setupCORS(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
