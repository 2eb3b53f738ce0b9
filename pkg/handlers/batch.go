package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Utgast/cabletherm/internal/utils"
	"github.com/Utgast/cabletherm/pkg/config"
	"github.com/Utgast/cabletherm/pkg/models"
	"github.com/Utgast/cabletherm/pkg/worker"
)

// BatchHandler accepts a set of solve requests in one submission, fanning
// them out to the worker pool under a shared batch id.
type BatchHandler struct {
	cfg  *config.Config
	pool *worker.Pool
}

// NewBatchHandler creates a batch handler.
func NewBatchHandler(cfg *config.Config, pool *worker.Pool) *BatchHandler {
	return &BatchHandler{cfg: cfg, pool: pool}
}

// ServeHTTP implements the http.Handler interface.
func (h *BatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setupCORS(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var batch models.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		writeError(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if len(batch.Requests) == 0 {
		writeError(w, "No requests provided in batch", http.StatusBadRequest)
		return
	}
	if batch.BatchID == "" {
		batch.BatchID = utils.GenerateID()
	}

	log.Printf("batch accepted - ID: %s, requests: %d", batch.BatchID, len(batch.Requests))

	ids := make([]string, 0, len(batch.Requests))
	for i, req := range batch.Requests {
		requestID := fmt.Sprintf("%s-%03d", batch.BatchID, i)
		ids = append(ids, requestID)
		h.pool.SubmitJob(models.WorkItem{
			RequestID: requestID,
			Request:   req,
			StartTime: time.Now(),
		})
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":     true,
		"batch_id":    batch.BatchID,
		"request_ids": ids,
		"message":     "Batch solve started",
	})
}
