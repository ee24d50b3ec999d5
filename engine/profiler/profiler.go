package profiler

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Stats is one reporting window of frame and memory statistics.
type Stats struct {
	// Frames is the number of ticks in the window.
	Frames int
	// FPS is Frames divided by the window length.
	FPS float64
	// HeapMB is the live heap at the end of the window.
	HeapMB float64
	// AllocRateMB is the heap allocation rate over the window, in MB/s.
	AllocRateMB float64
	// GCCount is the total number of completed collections.
	GCCount uint32
	// MaxPause is the longest collection pause within the window.
	MaxPause time.Duration
}

// Profiler tracks frame rate and memory statistics of a draw loop.
// Stats are logged at a configurable interval.
type Profiler struct {
	logger         *zap.Logger
	now            func() time.Time
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// ProfilerOption configures a Profiler created by NewProfiler.
type ProfilerOption func(*Profiler)

// WithInterval sets the reporting interval. Defaults to 1 second.
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithLogger sets the logger stats are written to. A nil logger, the default, discards them.
func WithLogger(l *zap.Logger) ProfilerOption {
	return func(p *Profiler) {
		if l == nil {
			l = zap.NewNop()
		}
		p.logger = l.Named("profiler")
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:         zap.NewNop(),
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	runtime.ReadMemStats(&p.memStats)
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return p
}

// Tick should be called once per frame. When the interval has elapsed it closes the window,
// logs its Stats at debug level and starts a new one.
//
// Returns:
//   - bool: true if a window was closed this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	gcCount := p.memStats.NumGC

	// PauseNs is a circular buffer of the last 256 pauses.
	var maxPause uint64
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		maxPause = max(maxPause, p.memStats.PauseNs[i%256])
	}

	p.last = Stats{
		Frames:      p.frameCount,
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     gcCount,
		MaxPause:    time.Duration(maxPause),
	}
	p.logger.Debug("frame stats",
		zap.Int("frames", p.last.Frames),
		zap.Float64("fps", p.last.FPS),
		zap.Float64("heapMB", p.last.HeapMB),
		zap.Float64("allocRateMB", p.last.AllocRateMB),
		zap.Uint32("gc", p.last.GCCount),
		zap.Duration("maxPause", p.last.MaxPause),
	)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the Stats of the most recently closed window.
func (p *Profiler) Last() Stats {
	return p.last
}
