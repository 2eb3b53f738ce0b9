package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Utgast/cabletherm"
	"github.com/Utgast/cabletherm/internal/catalog"
	"github.com/Utgast/cabletherm/internal/processing"
	"github.com/Utgast/cabletherm/internal/store"
	"github.com/Utgast/cabletherm/pkg/config"
	"github.com/Utgast/cabletherm/pkg/handlers"
	"github.com/Utgast/cabletherm/pkg/hub"
	"github.com/Utgast/cabletherm/pkg/models"
	"github.com/Utgast/cabletherm/pkg/profiling"
	"github.com/Utgast/cabletherm/pkg/webhook"
	"github.com/Utgast/cabletherm/pkg/worker"
)

// Server is the HTTP rating service with all dependencies wired: solver
// pool, result store, websocket hub, webhook client and profiler.
type Server struct {
	config        *config.Config
	serverConfig  *config.ServerConfig
	catalog       *catalog.Catalog
	store         *store.Store
	hub           *hub.Hub
	workerPool    *worker.Pool
	webhookClient *webhook.Client
	httpServer    *http.Server
	profiler      *profiling.Profiler
	middleware    *profiling.Middleware
}

// Options holds configuration for creating a server.
type Options struct {
	Config       *config.Config
	ServerConfig *config.ServerConfig
	Catalog      *catalog.Catalog
}

// New creates a server instance. The result store is opened here; New fails
// if the database path is unusable.
func New(opts Options) (*Server, error) {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.ServerConfig == nil {
		opts.ServerConfig = config.DefaultServerConfig()
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.New(cabletherm.DefaultRegistry())
	}

	st, err := store.New(opts.ServerConfig.DBPath)
	if err != nil {
		return nil, fmt.Errorf("server: open store: %w", err)
	}

	s := &Server{
		config:        opts.Config,
		serverConfig:  opts.ServerConfig,
		catalog:       opts.Catalog,
		store:         st,
		hub:           hub.New(),
		webhookClient: webhook.NewClient(opts.ServerConfig.WebhookURL, opts.Config),
		profiler:      profiling.New(opts.ServerConfig),
		middleware:    profiling.NewMiddleware(opts.ServerConfig.EnableProfiling),
	}

	processor := processing.New(opts.Catalog, opts.Config)
	s.workerPool = worker.New(worker.Options{
		Workers:   opts.ServerConfig.WorkerCount,
		Processor: processor.Process,
		Sink:      s.handleResult,
	})

	s.setupRoutes()
	return s, nil
}

// handleResult fans a finished solve out to the store, the websocket
// subscribers and the webhook endpoint.
func (s *Server) handleResult(res models.WorkResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.store.SaveResult(ctx, res.Result); err != nil {
		log.Printf("save result %s: %v", res.RequestID, err)
	}

	s.hub.Broadcast(res.Result)

	go func() {
		if err := s.webhookClient.Send(res.Result); err != nil {
			log.Printf("webhook %s: %v", res.RequestID, err)
		}
	}()
}

// setupRoutes configures HTTP routes and handlers.
func (s *Server) setupRoutes() {
	mux := http.NewServeMux()

	solveHandler := handlers.NewSolveHandler(s.config, s.workerPool)
	batchHandler := handlers.NewBatchHandler(s.config, s.workerPool)
	resultsHandler := handlers.NewResultsHandler(s.store)
	catalogHandler := handlers.NewCatalogHandler(s.catalog, cabletherm.DefaultRegistry())

	mux.Handle("/solve", s.middleware.ProfiledHandler("solve-single", solveHandler))
	mux.Handle("/solve/batch", s.middleware.ProfiledHandler("solve-batch", batchHandler))
	mux.Handle("/results", resultsHandler)
	mux.Handle("/results/", resultsHandler)
	mux.Handle("/catalog", catalogHandler)
	mux.Handle("/catalog/", catalogHandler)
	mux.Handle("/ws", s.hub)
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/debug/gc", s.gcHandler)
	mux.HandleFunc("/debug/memory", s.memoryHandler)

	s.httpServer = &http.Server{
		Addr:         ":" + s.serverConfig.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// healthHandler provides a simple health check endpoint.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","clients":%d,"timestamp":"%s"}`,
		s.hub.ClientCount(), time.Now().Format(time.RFC3339))
}

// gcHandler triggers garbage collection and returns stats.
func (s *Server) gcHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	profiling.ForceGC()
	stats := profiling.GetGCStats()

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"gc_runs":%d,"pause_total_ms":%.3f,"cpu_percent":%.2f,"timestamp":"%s"}`,
		stats.NumGC,
		float64(stats.PauseTotal.Nanoseconds())/1e6,
		stats.GCCPUPercent,
		time.Now().Format(time.RFC3339))
}

// memoryHandler logs current memory statistics.
func (s *Server) memoryHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	profiling.LogGCStats()

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"message":"Memory stats logged","timestamp":"%s"}`,
		time.Now().Format(time.RFC3339))
}

// Start runs the hub, the profiler and the HTTP listener. It blocks until
// the listener stops.
func (s *Server) Start() error {
	go s.hub.Run()

	if err := s.profiler.Start(); err != nil {
		log.Printf("failed to start profiler: %v", err)
	}

	log.Printf("starting HTTP server on port %s", s.serverConfig.Port)
	log.Printf("  - solve:   http://localhost:%s/solve", s.serverConfig.Port)
	log.Printf("  - batch:   http://localhost:%s/solve/batch", s.serverConfig.Port)
	log.Printf("  - results: http://localhost:%s/results", s.serverConfig.Port)
	log.Printf("  - catalog: http://localhost:%s/catalog", s.serverConfig.Port)
	log.Printf("  - stream:  ws://localhost:%s/ws", s.serverConfig.Port)
	log.Printf("  - health:  http://localhost:%s/health", s.serverConfig.Port)

	return s.httpServer.ListenAndServe()
}

// Shutdown stops the listener, the workers and the supporting services in
// dependency order: no new jobs, drain workers, close the sinks.
func (s *Server) Shutdown() error {
	log.Println("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}

	s.workerPool.Shutdown()
	s.hub.Stop()

	if err := s.profiler.Stop(); err != nil {
		log.Printf("profiler shutdown error: %v", err)
	}
	if err := s.store.Close(); err != nil {
		log.Printf("store close error: %v", err)
	}

	log.Println("server shutdown complete")
	return nil
}
