package daemon

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"screenshotd/internal/config"
	"screenshotd/internal/encoder"
	"screenshotd/internal/raster"
	"screenshotd/internal/storage"
	"screenshotd/internal/trace"
)

// Grabber returns one raw frame per call. *display.Session satisfies it;
// tests substitute synthetic frames.
type Grabber interface {
	Capture() (*raster.Frame, error)
}

// SaveInfo records the most recent successful save.
type SaveInfo struct {
	Path string    `json:"path"`
	At   time.Time `json:"at"`
}

// Stats is a snapshot of loop counters for the status endpoint.
type Stats struct {
	Captures   uint64        `json:"captures"`
	Failures   uint64        `json:"failures"`
	Skipped    uint64        `json:"skipped"`
	IntervalNS time.Duration `json:"interval_ns"`
	WorkNS     time.Duration `json:"work_ns"` // cumulative time spent in cycles
	LastSave   SaveInfo      `json:"last_save"`
}

// Daemon runs the capture, normalize, encode, store loop. Everything in a
// cycle happens sequentially on the one goroutine that called Run; exactly
// one frame is in flight at any time.
type Daemon struct {
	grab     Grabber
	paths    *storage.Allocator
	enc      *encoder.PNG
	interval time.Duration
	detect   *detector // nil unless SkipUnchanged

	now func() time.Time

	captures  atomic.Uint64
	failures  atomic.Uint64
	skipped   atomic.Uint64
	workNanos atomic.Uint64

	mu       sync.RWMutex
	lastSave SaveInfo
}

// New wires a daemon from the loaded configuration.
func New(grab Grabber, cfg *config.Config) *Daemon {
	d := &Daemon{
		grab:     grab,
		paths:    storage.NewAllocator(cfg.BaseDir, nil),
		enc:      encoder.NewPNG(),
		interval: cfg.Interval,
		now:      time.Now,
	}
	if cfg.SkipUnchanged {
		d.detect = newDetector(MaxHashDistance)
	}
	return d
}

// Run executes one cycle immediately, then one per interval tick until ctx
// is cancelled. Ticks come from a fixed cadence rather than a sleep after
// each cycle, so work duration does not accumulate as drift; a cycle that
// outlasts the interval simply drops the missed ticks. The production
// context is never cancelled; the process runs until killed.
func (d *Daemon) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.cycle(ctx)
		}
	}
}

// cycle performs one capture iteration. Any failure is counted, logged,
// and abandoned without retry; the next tick proceeds independently.
func (d *Daemon) cycle(ctx context.Context) {
	ctx, span := trace.StartSpan(ctx, "capture_cycle")
	defer span.End()
	log := trace.Logger(ctx)

	start := time.Now()
	defer func() {
		d.workNanos.Add(uint64(time.Since(start)))
	}()

	// Directories are created here even if the capture below fails.
	path, err := d.paths.Allocate(d.now())
	if err != nil {
		d.fail(log, "allocate capture path", err)
		return
	}
	span.SetAttr("path", path)

	frame, err := d.grab.Capture()
	if err != nil {
		d.fail(log, "capture frame", err)
		return
	}

	if d.detect != nil {
		img, err := frame.Image()
		if err != nil {
			d.fail(log, "normalize frame", err)
			return
		}
		if d.detect.Unchanged(img) {
			d.skipped.Add(1)
			log.Debug("screen unchanged, skipping save")
			return
		}
	}

	if err := d.enc.EncodeFile(path, frame.Width, frame.Height, frame.ReadRow); err != nil {
		d.fail(log, "encode png", err)
		return
	}

	d.captures.Add(1)
	d.mu.Lock()
	d.lastSave = SaveInfo{Path: path, At: d.now()}
	d.mu.Unlock()
	log.Info("saved screenshot", "path", path)
}

func (d *Daemon) fail(log *slog.Logger, op string, err error) {
	d.failures.Add(1)
	log.Error(op+" failed", "error", err)
}

// Stats returns a consistent snapshot of the loop counters.
func (d *Daemon) Stats() Stats {
	d.mu.RLock()
	last := d.lastSave
	d.mu.RUnlock()
	return Stats{
		Captures:   d.captures.Load(),
		Failures:   d.failures.Load(),
		Skipped:    d.skipped.Load(),
		IntervalNS: d.interval,
		WorkNS:     time.Duration(d.workNanos.Load()),
		LastSave:   last,
	}
}
