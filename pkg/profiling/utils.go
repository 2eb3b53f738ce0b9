package profiling

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

// GCStats provides garbage collection statistics.
type GCStats struct {
	NumGC        uint32
	PauseTotal   time.Duration
	PauseRecent  time.Duration
	LastGC       time.Time
	GCCPUPercent float64
}

// GetGCStats returns current garbage collection statistics.
func GetGCStats() GCStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	var recentPause time.Duration
	if m.NumGC > 0 {
		recentPause = time.Duration(m.PauseNs[(m.NumGC+255)%256])
	}

	return GCStats{
		NumGC:        m.NumGC,
		PauseTotal:   time.Duration(m.PauseTotalNs),
		PauseRecent:  recentPause,
		LastGC:       time.Unix(0, int64(m.LastGC)),
		GCCPUPercent: m.GCCPUFraction * 100,
	}
}

// LogGCStats logs garbage collection statistics.
func LogGCStats() {
	stats := GetGCStats()
	log.Printf("GC: runs=%d, totalPause=%.2fms, recentPause=%.2fus, cpu=%.2f%%, lastGC=%s",
		stats.NumGC,
		float64(stats.PauseTotal.Nanoseconds())/1e6,
		float64(stats.PauseRecent.Nanoseconds())/1e3,
		stats.GCCPUPercent,
		stats.LastGC.Format("15:04:05"))
}

// ForceGC triggers garbage collection and logs statistics.
func ForceGC() {
	before := GetGCStats()
	runtime.GC()
	after := GetGCStats()

	log.Printf("forced GC: %d to %d runs, pause: %.2fus",
		before.NumGC, after.NumGC,
		float64(after.PauseRecent.Nanoseconds())/1e3)
}
