package profiling

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof" // registers pprof handlers on DefaultServeMux
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Utgast/cabletherm/pkg/config"
)

// Profiler manages the pprof profiling server on its own port.
type Profiler struct {
	config *config.ServerConfig
	server *http.Server
}

// New creates a profiler instance.
func New(cfg *config.ServerConfig) *Profiler {
	return &Profiler{config: cfg}
}

// Start starts the profiling server when enabled.
func (p *Profiler) Start() error {
	if !p.config.EnableProfiling {
		log.Println("profiling disabled")
		return nil
	}

	runtime.SetBlockProfileRate(1)
	runtime.SetMutexProfileFraction(1)

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", http.DefaultServeMux.ServeHTTP)
	mux.HandleFunc("/debug/info", p.infoHandler)

	p.server = &http.Server{
		Addr:    ":" + p.config.ProfilingPort,
		Handler: mux,
	}

	log.Printf("starting profiling server on port %s", p.config.ProfilingPort)

	go func() {
		if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("profiling server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully stops the profiling server.
func (p *Profiler) Stop() error {
	if p.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("profiling server shutdown error: %w", err)
	}
	log.Println("profiling server stopped")
	return nil
}

// infoHandler provides runtime information.
func (p *Profiler) infoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{
  "timestamp": "%s",
  "goroutines": %d,
  "gomaxprocs": %d,
  "num_cpu": %d,
  "version": "%s",
  "memory": {
    "alloc_mb": %.2f,
    "sys_mb": %.2f,
    "heap_objects": %d
  },
  "gc": {
    "num_gc": %d,
    "pause_total_ns": %d
  }
}`, time.Now().Format(time.RFC3339), runtime.NumGoroutine(), runtime.GOMAXPROCS(0),
		runtime.NumCPU(), runtime.Version(),
		bToMb(m.Alloc), bToMb(m.Sys), m.HeapObjects,
		m.NumGC, m.PauseTotalNs)
}

// bToMb converts bytes to megabytes.
func bToMb(b uint64) float64 {
	return float64(b) / 1024 / 1024
}
