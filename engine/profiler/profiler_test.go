package profiler

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func TestProfiler_Tick(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	clock := &fakeClock{t: time.Unix(100, 0)}
	p := NewProfiler(WithClock(clock.now), WithInterval(500*time.Millisecond), WithLogger(zap.New(core)))

	for range 9 {
		clock.t = clock.t.Add(50 * time.Millisecond)
		if p.Tick() {
			t.Fatal("window closed before the interval elapsed")
		}
	}
	clock.t = clock.t.Add(50 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("window not closed after the interval elapsed")
	}

	s := p.Last()
	if s.Frames != 10 {
		t.Errorf("Frames = %d, want 10", s.Frames)
	}
	if s.FPS != 20 {
		t.Errorf("FPS = %v, want 20", s.FPS)
	}
	if logs.FilterMessage("frame stats").Len() != 1 {
		t.Errorf("logged %d frame stats entries, want 1", logs.FilterMessage("frame stats").Len())
	}
	if got := logs.All()[0].LoggerName; got != "profiler" {
		t.Errorf("logger name = %q, want profiler", got)
	}

	// the next window starts empty
	clock.t = clock.t.Add(time.Second)
	if !p.Tick() || p.Last().Frames != 1 {
		t.Errorf("second window = %+v, want 1 frame", p.Last())
	}
}

func TestProfiler_Defaults(t *testing.T) {
	p := NewProfiler(WithInterval(-time.Second))
	if p.updateInterval != time.Second {
		t.Errorf("interval = %v, want 1s", p.updateInterval)
	}
	if (p.Last() != Stats{}) {
		t.Error("Last is not zero before the first window")
	}
}

func TestProfiler_NilLogger(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithLogger(nil), WithClock(clock.now))
	clock.t = clock.t.Add(2 * time.Second)
	if !p.Tick() {
		t.Error("window not closed after the interval elapsed")
	}
}
