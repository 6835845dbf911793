// Package scroll drives the orbit mapper from page scroll and viewport input.
//
// A Driver holds the latest scroll progress and viewport width (last write
// wins), evaluates the mapper once per tick and forwards changed frames to a
// Sink. The mapper and sink are captured at construction; nothing about the
// mapping lives in package-level state.
package scroll

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/teslashibe/go-orbit/internal/log"
	"github.com/teslashibe/go-orbit/pkg/orbit"
	"github.com/teslashibe/go-orbit/pkg/responsive"
)

// Defaults for NewDriver.
const (
	DefaultRate          = 16 * time.Millisecond // ~60Hz, one animation frame
	DefaultDeadZone      = 1e-4
	DefaultViewportWidth = 1280
)

// Update is one frame handed to the renderer.
type Update struct {
	Seq   uint64
	Frame orbit.Frame
	Class responsive.Class
}

// Sink consumes frames. It is the renderer port.
type Sink interface {
	Render(u Update) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(u Update) error

// Render calls f(u).
func (f SinkFunc) Render(u Update) error {
	return f(u)
}

// Stats are the driver's diagnostic counters.
type Stats struct {
	Ticks     uint64 `json:"ticks"`
	Skipped   uint64 `json:"skipped"`
	Published uint64 `json:"published"`
	Errors    uint64 `json:"errors"`
}

// Option configures a Driver.
type Option func(*Driver)

// WithRate sets the tick interval used by Run.
func WithRate(rate time.Duration) Option {
	return func(d *Driver) {
		if rate > 0 {
			d.rate = rate
		}
	}
}

// WithDeadZone sets the minimum per-axis pose change that is worth publishing.
func WithDeadZone(v float64) Option {
	return func(d *Driver) {
		if v >= 0 {
			d.deadZone = v
		}
	}
}

// WithViewportWidth sets the initial viewport width.
func WithViewportWidth(px int) Option {
	return func(d *Driver) {
		d.width = px
	}
}

// WithLogger replaces the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// Driver evaluates the mapper for the most recent input and publishes frames.
type Driver struct {
	mapper *orbit.Mapper
	sink   Sink
	logger *slog.Logger

	rate     time.Duration
	deadZone float64

	// Input, last write wins.
	inMu     sync.RWMutex
	progress float64
	width    int

	// Evaluation state, owned by whoever is stepping.
	stepMu  sync.Mutex
	last    Update
	hasLast bool
	stats   Stats
}

// NewDriver returns a driver that feeds mapper output into sink.
func NewDriver(mapper *orbit.Mapper, sink Sink, opts ...Option) *Driver {
	d := &Driver{
		mapper:   mapper,
		sink:     sink,
		rate:     DefaultRate,
		deadZone: DefaultDeadZone,
		width:    DefaultViewportWidth,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.Component("scroll")
	}
	return d
}

// SetProgress records the latest scroll progress. Values outside [0,1] are
// accepted and clamped by the mapper.
func (d *Driver) SetProgress(p float64) {
	d.inMu.Lock()
	d.progress = p
	d.inMu.Unlock()
}

// SetViewportWidth records the latest viewport width in logical pixels.
func (d *Driver) SetViewportWidth(px int) {
	d.inMu.Lock()
	d.width = px
	d.inMu.Unlock()
}

// Input returns the latest progress and viewport width.
func (d *Driver) Input() (progress float64, widthPx int) {
	d.inMu.RLock()
	defer d.inMu.RUnlock()
	return d.progress, d.width
}

// Run ticks until ctx is cancelled.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.rate)
	defer ticker.Stop()

	d.logger.Info("scroll driver started", "hz", math.Round(1/d.rate.Seconds()))

	for {
		select {
		case <-ctx.Done():
			s := d.Stats()
			d.logger.Info("scroll driver stopped",
				"ticks", s.Ticks, "published", s.Published, "skipped", s.Skipped)
			return nil
		case <-ticker.C:
			d.Step()
		}
	}
}

// Step evaluates the current input once. It reports the evaluated update and
// whether it was published to the sink.
func (d *Driver) Step() (Update, bool) {
	progress, width := d.Input()
	frame, class := d.mapper.MapWidth(progress, width)

	d.stepMu.Lock()
	defer d.stepMu.Unlock()

	d.stats.Ticks++
	u := Update{Seq: d.stats.Published + 1, Frame: frame, Class: class}

	if d.hasLast && !d.changed(u) {
		d.stats.Skipped++
		return u, false
	}

	if err := d.sink.Render(u); err != nil {
		d.stats.Errors++
		if d.stats.Errors%100 == 1 {
			d.logger.Warn("render failed", "err", err, "errors", d.stats.Errors)
		}
		return u, false
	}

	d.stats.Published++
	d.last = u
	d.hasLast = true

	if d.stats.Published%500 == 0 {
		d.logger.Debug("scroll heartbeat",
			"ticks", d.stats.Ticks,
			"skipped", d.stats.Skipped,
			"progress", frame.Progress,
			"active", frame.ActiveID)
	}
	return u, true
}

// Latest returns the last published update.
func (d *Driver) Latest() (Update, bool) {
	d.stepMu.Lock()
	defer d.stepMu.Unlock()
	return d.last, d.hasLast
}

// Stats returns a snapshot of the counters.
func (d *Driver) Stats() Stats {
	d.stepMu.Lock()
	defer d.stepMu.Unlock()
	return d.stats
}

// changed reports whether u differs enough from the last published frame.
func (d *Driver) changed(u Update) bool {
	prev := d.last
	if u.Class != prev.Class || u.Frame.ActiveID != prev.Frame.ActiveID {
		return true
	}

	a, b := prev.Frame.Pose, u.Frame.Pose
	diff := max(
		math.Abs(a.X-b.X), math.Abs(a.Y-b.Y), math.Abs(a.Z-b.Z),
		math.Abs(a.LookAt.X-b.LookAt.X), math.Abs(a.LookAt.Y-b.LookAt.Y), math.Abs(a.LookAt.Z-b.LookAt.Z),
	)
	if d.deadZone == 0 {
		return diff > 0
	}
	return diff >= d.deadZone
}
