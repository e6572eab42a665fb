// Package firmware wires the scan, debounce, layout and report stages into
// the periodic tick, and serializes the tick against the USB interrupts.
package firmware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Alia5/matrixfw/debounce"
	"github.com/Alia5/matrixfw/layout"
	"github.com/Alia5/matrixfw/matrix"
	"github.com/Alia5/matrixfw/report"
)

// ErrDimension is returned by New when the layout does not fit the matrix.
var ErrDimension = errors.New("layout and matrix dimensions differ")

// Scanner produces one raw grid per call.
type Scanner interface {
	Scan() (matrix.Grid, error)
	Rows() int
	Cols() int
}

// Config represents the pipeline configuration.
type Config struct {
	TickRate   int   `help:"Scan ticks per second" default:"1000" env:"MATRIXFW_TICK_RATE"`
	Cooldown   uint8 `help:"Scans a key ignores after an accepted transition" default:"5" env:"MATRIXFW_DEBOUNCE_COOLDOWN"`
	MaxRetries int   `help:"Busy retries when writing a report before it is deferred to the next tick" default:"1000" env:"MATRIXFW_MAX_RETRIES"`
}

// TickPeriod is the time budget of one tick.
func (c Config) TickPeriod() time.Duration {
	if c.TickRate <= 0 {
		return time.Millisecond
	}
	return time.Second / time.Duration(c.TickRate)
}

// Stats counts pipeline activity since start.
type Stats struct {
	Ticks    uint64
	Events   uint64
	Reports  uint64
	Deferred uint64
	Overruns uint64
}

// Option configures a Firmware.
type Option func(*Firmware)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(f *Firmware) {
		f.logger = l
	}
}

// Firmware owns the pipeline state. Only the tick touches the scanner,
// debouncer and resolver; the transport is shared with the interrupts.
type Firmware struct {
	cfg       Config
	logger    *slog.Logger
	scanner   Scanner
	debouncer *debounce.Debouncer
	resolver  *layout.Resolver
	usb       *Resource[Transport]
	unsent    bool

	ticks, events, reports, deferred, overruns atomic.Uint64
}

// New builds the pipeline. A layout that does not match the scanner's
// dimensions is a fatal configuration error.
func New(cfg Config, scanner Scanner, l *layout.Layout, usb *Resource[Transport], opts ...Option) (*Firmware, error) {
	if l.Rows() != scanner.Rows() || l.Cols() != scanner.Cols() {
		return nil, fmt.Errorf("%w: layout %dx%d, matrix %dx%d", ErrDimension, l.Rows(), l.Cols(), scanner.Rows(), scanner.Cols())
	}
	f := &Firmware{
		cfg:       cfg,
		logger:    slog.New(slog.DiscardHandler),
		scanner:   scanner,
		debouncer: debounce.New(scanner.Rows(), scanner.Cols(), cfg.Cooldown),
		resolver:  layout.NewResolver(l),
		usb:       usb,
	}
	for _, o := range opts {
		o(f)
	}
	return f, nil
}

// Tick runs one scan through the pipeline. A report is offered to the
// transport after every event and once more at the end of the tick.
// Only scanner failures are returned; they are fatal.
func (f *Firmware) Tick() error {
	f.ticks.Add(1)
	grid, err := f.scanner.Scan()
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	for ev := range f.debouncer.Events(grid) {
		f.events.Add(1)
		changes := f.resolver.Apply(ev)
		f.logger.Debug("key event",
			"coord", ev.Coord.String(),
			"dir", ev.Dir.String(),
			"changes", len(changes),
			"layers", f.resolver.ActiveLayers())
		f.send()
	}
	f.resolver.Tick()
	f.send()
	return nil
}

func (f *Firmware) send() {
	r := report.Build(f.resolver.Keycodes())
	changed, written := SendReport(f.usb, r, f.cfg.MaxRetries, f.unsent)
	if !changed && !f.unsent {
		return
	}
	if written {
		f.reports.Add(1)
		f.unsent = false
		return
	}
	// Endpoint stayed busy; the next send retries even if the report is
	// unchanged by then.
	f.unsent = true
	f.deferred.Add(1)
	f.logger.Debug("report deferred, endpoint busy", "report", r.String())
}

// USBInterrupt services the USB stack. It is the body of both USB
// interrupt handlers and touches nothing but the transport.
func (f *Firmware) USBInterrupt() {
	f.usb.WithExclusiveAccess(func(t Transport) {
		t.Poll()
	})
}

// Run ticks once per value received from ticks until ctx is done or a tick
// fails. A tick that outlasts the configured period is logged as an
// overrun.
func (f *Firmware) Run(ctx context.Context, ticks <-chan time.Time) error {
	period := f.cfg.TickPeriod()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticks:
			start := time.Now()
			if err := f.Tick(); err != nil {
				f.logger.Error("tick failed", "error", err)
				return err
			}
			if elapsed := time.Since(start); elapsed > period {
				f.overruns.Add(1)
				f.logger.Warn("tick overran its period", "elapsed", elapsed, "period", period)
			}
		}
	}
}

// ServeInterrupts runs USBInterrupt for every value received from irq
// until ctx is done.
func (f *Firmware) ServeInterrupts(ctx context.Context, irq <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-irq:
			f.USBInterrupt()
		}
	}
}

// Stats returns a snapshot of the counters.
func (f *Firmware) Stats() Stats {
	return Stats{
		Ticks:    f.ticks.Load(),
		Events:   f.events.Load(),
		Reports:  f.reports.Load(),
		Deferred: f.deferred.Load(),
		Overruns: f.overruns.Load(),
	}
}

// ActiveLayers returns the held layers, oldest first. It must only be
// called from the goroutine that ticks.
func (f *Firmware) ActiveLayers() []int {
	return f.resolver.ActiveLayers()
}
