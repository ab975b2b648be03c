package infrastructure

import (
	"runtime"
	"time"
)

// RuntimeSnapshot is what the readiness endpoint reports about the process.
// Workbooks are parsed fully in memory, so heap size is the number to watch.
type RuntimeSnapshot struct {
	Goroutines int
	HeapAlloc  uint64
	HeapSys    uint64
	NumGC      uint32
	Uptime     time.Duration
}

// ReadRuntime samples the Go runtime for a process started at start.
func ReadRuntime(start time.Time) RuntimeSnapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return RuntimeSnapshot{
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  ms.HeapAlloc,
		HeapSys:    ms.HeapSys,
		NumGC:      ms.NumGC,
		Uptime:     time.Since(start),
	}
}

// Map renders the snapshot for a JSON health response.
func (s RuntimeSnapshot) Map() map[string]interface{} {
	const mb = 1 << 20
	return map[string]interface{}{
		"goroutines":     s.Goroutines,
		"heap_alloc_mb":  s.HeapAlloc / mb,
		"heap_sys_mb":    s.HeapSys / mb,
		"gc_cycles":      s.NumGC,
		"uptime_seconds": int64(s.Uptime.Seconds()),
	}
}
