package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Alia5/matrixfw/device/keyboard"
	"github.com/Alia5/matrixfw/firmware"
	"github.com/Alia5/matrixfw/internal/log"
	"github.com/Alia5/matrixfw/keycode"
	"github.com/Alia5/matrixfw/report"
	"github.com/Alia5/matrixfw/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hold Mod3 and tap the key that is AltGr+Minus on that layer.
const symbolScenario = `
name: altgr symbol
steps:
  - {tick: 0, row: 2, col: 1, pressed: true}
  - {tick: 10, row: 2, col: 3, pressed: true, bounce: 3}
  - {tick: 20, row: 2, col: 3, pressed: false}
  - {tick: 30, row: 2, col: 1, pressed: false}
expect:
  - "events == 4"
  - "'[RightAlt Minus]' in host"
  - "last == '[]'"
`

func newRun(t *testing.T, scenario string) *Run {
	t.Helper()
	r := &Run{
		Firmware: firmware.Config{TickRate: 1000, Cooldown: 5, MaxRetries: 1000},
		USB:      keyboard.Config{QueueDepth: 1, VendorID: 0x1209, ProductID: 0x8000},
		Tail:     10,
		Fast:     true,
	}
	if scenario != "" {
		r.Scenario = filepath.Join(t.TempDir(), "scenario.yaml")
		require.NoError(t, os.WriteFile(r.Scenario, []byte(scenario), 0o644))
	}
	return r
}

func TestSimulateFast(t *testing.T) {
	r := newRun(t, symbolScenario)
	var logs, raw bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sum, err := r.Simulate(context.Background(), logger, log.NewRaw(&raw))
	require.NoError(t, err)

	sc, err := sim.Decode(bytes.NewBufferString(symbolScenario), "yaml")
	require.NoError(t, err)
	assert.Equal(t, uint64(sc.Ticks()+r.Tail), sum.Stats.Ticks)
	assert.Equal(t, uint64(4), sum.Stats.Events)
	assert.Equal(t, uint64(2), sum.Stats.Reports)
	assert.Zero(t, sum.Stats.Deferred)

	require.Len(t, sum.Reports, 2)
	assert.Equal(t, report.Report{Modifiers: keycode.ModRightAlt, Keys: [report.MaxKeys]keycode.Code{keycode.KeyMinus}}, sum.Reports[0])
	assert.Equal(t, report.Report{}, sum.Reports[1])

	assert.Contains(t, logs.String(), "host report")
	assert.Contains(t, logs.String(), "loaded scenario")
	assert.Contains(t, logs.String(), "scenario expectations hold")
	assert.Contains(t, raw.String(), "D->H packet: 8 bytes")
}

func TestSimulateTickLimit(t *testing.T) {
	r := newRun(t, "")
	r.Ticks = 25

	sum, err := r.Simulate(context.Background(), slog.New(slog.DiscardHandler), log.NewRaw(nil))
	require.NoError(t, err)
	assert.Equal(t, uint64(25), sum.Stats.Ticks)
	assert.Zero(t, sum.Stats.Events)
	assert.Empty(t, sum.Reports)
}

func TestSimulateRejectsBadScenario(t *testing.T) {
	r := newRun(t, "steps:\n  - {tick: 0, row: 42, col: 0, pressed: true}\n")
	_, err := r.Simulate(context.Background(), slog.New(slog.DiscardHandler), log.NewRaw(nil))
	assert.ErrorIs(t, err, sim.ErrScenario)
}

func TestSimulateFailedExpectation(t *testing.T) {
	r := newRun(t, symbolScenario+"  - \"deferred > 0\"\n")
	sum, err := r.Simulate(context.Background(), slog.New(slog.DiscardHandler), log.NewRaw(nil))
	require.ErrorIs(t, err, sim.ErrExpectation)
	assert.Contains(t, err.Error(), "deferred > 0")
	assert.Len(t, sum.Reports, 2, "summary is returned with the failure")
}

func TestSummaryOutcome(t *testing.T) {
	sum := Summary{
		Stats:   firmware.Stats{Ticks: 3, Events: 2, Reports: 1},
		Reports: []report.Report{{Keys: [report.MaxKeys]keycode.Code{keycode.KeyA}}},
	}
	out := sum.Outcome()
	assert.Equal(t, []string{"[A]"}, out.Host)
	assert.Equal(t, "[A]", out.Last)
	assert.Equal(t, uint64(2), out.Events)

	assert.Equal(t, "[]", Summary{}.Outcome().Last)
}

func TestSimulateRealtime(t *testing.T) {
	r := newRun(t, symbolScenario)
	r.Fast = false
	r.PollInterval = 250 * time.Microsecond

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	sum, err := r.Simulate(ctx, slog.New(slog.DiscardHandler), log.NewRaw(nil))
	require.NoError(t, err)
	require.NoError(t, ctx.Err(), "scenario should finish before the timeout")

	assert.Equal(t, uint64(4), sum.Stats.Events)
	require.NotEmpty(t, sum.Reports)
	assert.Equal(t, report.Report{}, sum.Reports[len(sum.Reports)-1])
}

func TestSimulateStopsOnCancel(t *testing.T) {
	r := newRun(t, "")
	r.Fast = false

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := r.Simulate(ctx, slog.New(slog.DiscardHandler), log.NewRaw(nil))
	assert.NoError(t, err)
}

func TestExampleScenarios(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "examples", "scenarios", "*"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			r := newRun(t, "")
			r.Scenario = f
			sum, err := r.Simulate(context.Background(), slog.New(slog.DiscardHandler), log.NewRaw(nil))
			require.NoError(t, err)
			require.NotEmpty(t, sum.Reports)
			assert.Equal(t, report.Report{}, sum.Reports[len(sum.Reports)-1], "every scenario ends with all keys up")
		})
	}
}
