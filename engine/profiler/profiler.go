package profiler

import (
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"
)

// FrameStats is one interval's worth of frame rate and memory statistics.
type FrameStats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64 // MB allocated per second over the interval
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64 // longest GC pause within the interval
	SysMB       float64
	Counters    []Counter
}

// Counter is a named gauge sampled at the end of each interval, such as the number of
// meshes resident on the GPU.
type Counter struct {
	Name  string
	Value int
}

func (s FrameStats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		s.FPS, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)
	for _, c := range s.Counters {
		fmt.Fprintf(&sb, " | %s: %d", c.Name, c.Value)
	}
	return sb.String()
}

type counterSource struct {
	name   string
	sample func() int
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	counters       []counterSource
	last           FrameStats
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// SetInterval changes how often statistics are computed and logged.
//
// Parameters:
//   - interval: the reporting interval; values <= 0 are ignored
func (p *Profiler) SetInterval(interval time.Duration) {
	if interval > 0 {
		p.updateInterval = interval
	}
}

// AddCounter registers a gauge sampled and reported with every interval.
//
// Parameters:
//   - name: the label printed in the log line
//   - sample: returns the current value
func (p *Profiler) AddCounter(name string, sample func() int) {
	p.counters = append(p.counters, counterSource{name: name, sample: sample})
}

// Last returns the statistics of the most recent completed interval.
func (p *Profiler) Last() FrameStats {
	return p.last
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	p.last = p.sample(elapsed)
	log.Printf("[Profiler] %s", p.last)

	p.frameCount = 0
	p.lastTime = now
	return true
}

// sample reads the runtime memory statistics and builds the FrameStats for an interval.
func (p *Profiler) sample(elapsed time.Duration) FrameStats {
	runtime.ReadMemStats(&p.memStats)

	stats := FrameStats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     p.memStats.NumGC,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}

	if gcCount := p.memStats.NumGC; gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		stats.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			stats.MaxPauseUs = max(stats.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	for _, c := range p.counters {
		stats.Counters = append(stats.Counters, Counter{Name: c.name, Value: c.sample()})
	}

	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return stats
}
