package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Alia5/matrixfw/device/keyboard"
	"github.com/Alia5/matrixfw/firmware"
	"github.com/Alia5/matrixfw/internal/log"
	"github.com/Alia5/matrixfw/keymap"
	"github.com/Alia5/matrixfw/matrix"
	"github.com/Alia5/matrixfw/report"
	"github.com/Alia5/matrixfw/sim"

	"github.com/google/uuid"
)

// Run simulates the keyboard: a virtual switch board is scanned by the
// firmware and a virtual host polls the report endpoint.
type Run struct {
	Firmware firmware.Config `embed:"" prefix:"fw."`
	USB      keyboard.Config `embed:"" prefix:"usb."`

	Scenario     string        `arg:"" optional:"" help:"Scenario file to replay (json, yaml or toml)"`
	Ticks        int           `help:"Stop after this many ticks; 0 stops after the scenario, or never without one" default:"0" env:"MATRIXFW_TICKS"`
	Tail         int           `help:"Ticks to keep running after the last scenario step" default:"50"`
	Fast         bool          `help:"Tick as fast as possible instead of in real time"`
	Watch        bool          `help:"Replay the scenario again whenever its file changes"`
	PollInterval time.Duration `help:"Host polling interval of the report endpoint" default:"1ms" env:"MATRIXFW_POLL_INTERVAL"`
}

// Summary is the outcome of a simulation.
type Summary struct {
	Stats firmware.Stats
	// Reports holds every report the host read, in order.
	Reports []report.Report
}

// Run is called by Kong when the run command is executed.
func (r *Run) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.execute(ctx, logger, rawLogger)
}

func (r *Run) execute(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	if r.Watch {
		return r.watch(ctx, logger, rawLogger)
	}
	return r.simulateLogged(ctx, logger, rawLogger)
}

func (r *Run) simulateLogged(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	logger = logger.With("run", uuid.NewString())
	sum, err := r.Simulate(ctx, logger, rawLogger)
	if err != nil {
		logger.Error("simulation failed", "error", err)
		return err
	}
	logger.Info("simulation finished",
		"ticks", sum.Stats.Ticks,
		"events", sum.Stats.Events,
		"reports", sum.Stats.Reports,
		"deferred", sum.Stats.Deferred,
		"overruns", sum.Stats.Overruns)
	return nil
}

// Outcome converts the summary into the variables scenario expectations
// are evaluated against.
func (s Summary) Outcome() sim.Outcome {
	out := sim.Outcome{
		Ticks:    s.Stats.Ticks,
		Events:   s.Stats.Events,
		Reports:  s.Stats.Reports,
		Deferred: s.Stats.Deferred,
		Overruns: s.Stats.Overruns,
		Host:     make([]string, len(s.Reports)),
		Last:     report.Report{}.String(),
	}
	for i, rep := range s.Reports {
		out.Host[i] = rep.String()
	}
	if n := len(s.Reports); n > 0 {
		out.Last = out.Host[n-1]
	}
	return out
}

type hostRecorder struct {
	mu      sync.Mutex
	logger  *slog.Logger
	raw     log.RawLogger
	reports []report.Report
}

func (h *hostRecorder) receive(b []byte) {
	h.raw.Log(false, b)
	var rep report.Report
	if err := rep.UnmarshalBinary(b); err != nil {
		h.logger.Warn("host dropped malformed report", "len", len(b), "error", err)
		return
	}
	h.mu.Lock()
	h.reports = append(h.reports, rep)
	h.mu.Unlock()
	h.logger.Info("host report", "keys", rep.String())
	h.logger.Log(context.Background(), log.LevelTrace, "host report bytes", "hex", fmt.Sprintf("% x", b))
}

func (h *hostRecorder) snapshot() []report.Report {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]report.Report(nil), h.reports...)
}

// Simulate builds the firmware around the reference keymap and runs it
// until the scenario is done, the tick limit is hit, or ctx is cancelled.
func (r *Run) Simulate(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) (Summary, error) {
	lay, err := keymap.New()
	if err != nil {
		return Summary{}, fmt.Errorf("reference keymap: %w", err)
	}
	board := sim.NewBoard(keymap.Rows, keymap.Cols)
	m, err := matrix.New(board.RowPins(), board.ColPins())
	if err != nil {
		return Summary{}, err
	}

	var sc *sim.Scenario
	if r.Scenario != "" {
		if sc, err = sim.Load(r.Scenario); err != nil {
			return Summary{}, err
		}
		if err := sc.Validate(m.Rows(), m.Cols()); err != nil {
			return Summary{}, err
		}
		logger.Info("loaded scenario", "name", sc.Name, "steps", len(sc.Steps), "file", r.Scenario)
	}

	host := &hostRecorder{logger: logger, raw: rawLogger}
	kb := keyboard.New(r.USB)
	kb.SetHostSink(host.receive)
	kb.SetLEDCallback(func(st keyboard.LEDState) {
		logger.Info("host LEDs", "caps", st.CapsLock, "num", st.NumLock, "scroll", st.ScrollLock)
	})

	fw, err := firmware.New(r.Firmware, m, lay, firmware.NewResource[firmware.Transport](kb), firmware.WithLogger(logger))
	if err != nil {
		return Summary{}, err
	}

	total := r.Ticks
	if total == 0 && sc != nil {
		total = sc.Ticks() + r.Tail
	}
	apply := func(tick int) {
		if sc != nil {
			sc.Apply(board, tick)
		}
	}

	logger.Info("starting firmware",
		"rows", m.Rows(), "cols", m.Cols(), "layers", lay.Layers(),
		"tickPeriod", r.Firmware.TickPeriod(), "fast", r.Fast, "ticks", total)

	if r.Fast {
		err = r.runFast(ctx, fw, apply, total)
	} else {
		err = r.runRealtime(ctx, fw, apply, total)
	}
	sum := Summary{Stats: fw.Stats(), Reports: host.snapshot()}
	if err != nil {
		return sum, err
	}
	if sc != nil && ctx.Err() == nil {
		if err := sc.Check(sum.Outcome()); err != nil {
			return sum, err
		}
		if len(sc.Expect) > 0 {
			logger.Info("scenario expectations hold", "count", len(sc.Expect))
		}
	}
	return sum, nil
}

// runFast ticks back to back, letting the host poll once after each tick.
func (r *Run) runFast(ctx context.Context, fw *firmware.Firmware, apply func(int), total int) error {
	for tick := 0; total == 0 || tick < total; tick++ {
		if ctx.Err() != nil {
			return nil
		}
		apply(tick)
		if err := fw.Tick(); err != nil {
			return err
		}
		fw.USBInterrupt()
	}
	return nil
}

// runRealtime drives the tick from a timer and the USB interrupt from a
// second timer, each on its own goroutine.
func (r *Run) runRealtime(ctx context.Context, fw *firmware.Firmware, apply func(int), total int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	poll := r.PollInterval
	if poll <= 0 {
		poll = time.Millisecond
	}
	irq := time.NewTicker(poll)
	defer irq.Stop()
	go fw.ServeInterrupts(ctx, irq.C)

	timer := time.NewTicker(r.Firmware.TickPeriod())
	defer timer.Stop()
	ticks := make(chan time.Time)
	go func() {
		defer cancel()
		for tick := 0; total == 0 || tick < total; tick++ {
			select {
			case <-ctx.Done():
				return
			case t := <-timer.C:
				apply(tick)
				select {
				case ticks <- t:
				case <-ctx.Done():
					return
				}
			}
		}
		// Let the host read what the last tick produced.
		select {
		case <-ctx.Done():
		case <-time.After(2 * poll):
		}
	}()

	return fw.Run(ctx, ticks)
}
