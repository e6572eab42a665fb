package firmware_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Alia5/matrixfw/device/keyboard"
	"github.com/Alia5/matrixfw/firmware"
	"github.com/Alia5/matrixfw/keycode"
	"github.com/Alia5/matrixfw/layout"
	"github.com/Alia5/matrixfw/matrix"
	"github.com/Alia5/matrixfw/report"
	"github.com/Alia5/matrixfw/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cooldown = 2

var holdFn = matrix.Coord{Row: 1, Col: 3}

func testLayout(t *testing.T) *layout.Layout {
	t.Helper()
	K, L, S, T := layout.K, layout.L, layout.S, layout.Trans
	l, err := layout.New(2, 4, [][][]layout.Action{
		{
			{K(keycode.KeyA), K(keycode.KeyB), K(keycode.KeyC), K(keycode.KeyD)},
			{K(keycode.KeyE), K(keycode.KeyF), K(keycode.KeyG), L(1)},
		},
		{
			{K(keycode.KeyX), S(keycode.KeyGrave), T, T},
			{T, T, T, T},
		},
	})
	require.NoError(t, err)
	return l
}

type rig struct {
	board *sim.Board
	kb    *keyboard.Keyboard
	fw    *firmware.Firmware
	host  []report.Report
}

func newRig(t *testing.T, depth, retries int) *rig {
	t.Helper()
	r := &rig{board: sim.NewBoard(2, 4)}
	m, err := matrix.New(r.board.RowPins(), r.board.ColPins())
	require.NoError(t, err)

	r.kb = keyboard.New(keyboard.Config{QueueDepth: depth})
	r.kb.SetHostSink(func(b []byte) {
		var rep report.Report
		require.NoError(t, rep.UnmarshalBinary(b))
		r.host = append(r.host, rep)
	})

	cfg := firmware.Config{TickRate: 1000, Cooldown: cooldown, MaxRetries: retries}
	r.fw, err = firmware.New(cfg, m, testLayout(t), firmware.NewResource[firmware.Transport](r.kb))
	require.NoError(t, err)
	return r
}

// tick runs one scan and lets the host read everything queued.
func (r *rig) tick(t *testing.T) {
	t.Helper()
	require.NoError(t, r.fw.Tick())
	for r.kb.Pending() > 0 {
		r.fw.USBInterrupt()
	}
}

func (r *rig) settle(t *testing.T) {
	t.Helper()
	for i := 0; i <= cooldown; i++ {
		r.tick(t)
	}
}

func (r *rig) last() report.Report {
	if len(r.host) == 0 {
		return report.Report{}
	}
	return r.host[len(r.host)-1]
}

func TestDimensionMismatchIsFatal(t *testing.T) {
	b := sim.NewBoard(3, 4)
	m, err := matrix.New(b.RowPins(), b.ColPins())
	require.NoError(t, err)
	kb := keyboard.New(keyboard.Config{})
	_, err = firmware.New(firmware.Config{}, m, testLayout(t), firmware.NewResource[firmware.Transport](kb))
	assert.ErrorIs(t, err, firmware.ErrDimension)
}

func TestChordAppearsAndClearsTogether(t *testing.T) {
	r := newRig(t, 16, 10)

	r.board.Press(holdFn)
	r.settle(t)
	assert.Equal(t, []int{1}, r.fw.ActiveLayers())
	assert.Empty(t, r.host, "holding a layer sends nothing")

	r.board.Press(matrix.Coord{Row: 0, Col: 1})
	r.tick(t)
	require.Len(t, r.host, 1)
	assert.Equal(t, [report.Size]byte{keycode.ModLeftShift, 0, byte(keycode.KeyGrave), 0, 0, 0, 0, 0}, r.last().Bytes())
	r.settle(t)

	r.board.Release(matrix.Coord{Row: 0, Col: 1})
	r.tick(t)
	require.Len(t, r.host, 2)
	assert.Equal(t, report.Report{}, r.last())
}

func TestSixKeyCap(t *testing.T) {
	r := newRig(t, 16, 10)
	keys := []matrix.Coord{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 0, Col: 3},
		{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2},
	}
	for _, c := range keys {
		r.board.Press(c)
	}
	r.settle(t)

	full := r.last()
	assert.Equal(t, [report.MaxKeys]keycode.Code{
		keycode.KeyA, keycode.KeyB, keycode.KeyC, keycode.KeyD, keycode.KeyE, keycode.KeyF,
	}, full.Keys)
	assert.False(t, full.Pressed(keycode.KeyG))

	r.board.Release(matrix.Coord{Row: 0, Col: 2})
	r.tick(t)
	assert.Equal(t, [report.MaxKeys]keycode.Code{
		keycode.KeyA, keycode.KeyB, keycode.KeyD, keycode.KeyE, keycode.KeyF, keycode.KeyG,
	}, r.last().Keys)
}

func TestReleaseAfterLayerChange(t *testing.T) {
	r := newRig(t, 16, 10)
	a := matrix.Coord{Row: 0, Col: 0}

	r.board.Press(a)
	r.settle(t)
	assert.True(t, r.last().Pressed(keycode.KeyA))

	r.board.Press(holdFn)
	r.settle(t)
	r.board.Release(a)
	r.settle(t)

	assert.Equal(t, report.Report{}, r.last())
	for _, rep := range r.host {
		assert.False(t, rep.Pressed(keycode.KeyX))
	}
}

func TestBusyEndpointDefersReport(t *testing.T) {
	r := newRig(t, 1, 3)
	r.board.Press(matrix.Coord{Row: 0, Col: 0})
	r.board.Press(matrix.Coord{Row: 0, Col: 1})

	// Nobody polls during this tick: [A] goes out, [A B] stays pending.
	require.NoError(t, r.fw.Tick())
	st := r.fw.Stats()
	assert.Equal(t, uint64(2), st.Events)
	assert.Equal(t, uint64(1), st.Reports)
	assert.Equal(t, uint64(2), st.Deferred)

	r.fw.USBInterrupt()
	require.Len(t, r.host, 1)
	assert.Equal(t, []keycode.Code{keycode.KeyA, 0, 0, 0, 0, 0}, r.host[0].Keys[:])

	// The next tick has no events but still delivers the deferred report.
	r.tick(t)
	require.Len(t, r.host, 2)
	assert.True(t, r.last().Pressed(keycode.KeyB))
	assert.Equal(t, uint64(2), r.fw.Stats().Reports)

	r.tick(t)
	assert.Len(t, r.host, 2, "unchanged report is not resent")
}

func TestScanFailureIsFatal(t *testing.T) {
	r := newRig(t, 1, 3)
	r.board.FailCol(2, errors.New("open circuit"))

	err := r.fw.Tick()
	assert.ErrorIs(t, err, matrix.ErrPin)

	ticks := make(chan time.Time, 1)
	ticks <- time.Now()
	err = r.fw.Run(context.Background(), ticks)
	assert.ErrorIs(t, err, matrix.ErrPin)
}

type fakeTransport struct {
	busy    int
	writes  int
	polls   int
	pending []report.Report
}

func (f *fakeTransport) SetPendingReport(r report.Report) bool {
	f.pending = append(f.pending, r)
	return true
}

func (f *fakeTransport) Write(b []byte) int {
	f.writes++
	if f.busy > 0 {
		f.busy--
		return 0
	}
	return len(b)
}

func (f *fakeTransport) Poll() { f.polls++ }

func TestSendReportRetries(t *testing.T) {
	cases := []struct {
		name       string
		busy       int
		retries    int
		written    bool
		wantWrites int
	}{
		{"free", 0, 5, true, 1},
		{"busy then free", 3, 5, true, 4},
		{"busy past the bound", 10, 5, false, 6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ft := &fakeTransport{busy: c.busy}
			res := firmware.NewResource[firmware.Transport](ft)
			changed, written := firmware.SendReport(res, report.Report{Modifiers: 1}, c.retries, false)
			assert.True(t, changed)
			assert.Equal(t, c.written, written)
			assert.Equal(t, c.wantWrites, ft.writes)
		})
	}
}

func TestUSBInterruptOnlyPolls(t *testing.T) {
	b := sim.NewBoard(2, 4)
	m, err := matrix.New(b.RowPins(), b.ColPins())
	require.NoError(t, err)
	ft := &fakeTransport{}
	fw, err := firmware.New(firmware.Config{}, m, testLayout(t), firmware.NewResource[firmware.Transport](ft))
	require.NoError(t, err)

	b.Press(matrix.Coord{Row: 0, Col: 0})
	fw.USBInterrupt()
	fw.USBInterrupt()
	assert.Equal(t, 2, ft.polls)
	assert.Zero(t, ft.writes)
	assert.Empty(t, ft.pending)
	assert.Zero(t, fw.Stats().Ticks)
}

func TestRunWithConcurrentInterrupts(t *testing.T) {
	r := newRig(t, 1, 1000)
	var mu sync.Mutex
	var got []report.Report
	r.kb.SetHostSink(func(b []byte) {
		var rep report.Report
		_ = rep.UnmarshalBinary(b)
		mu.Lock()
		got = append(got, rep)
		mu.Unlock()
	})
	last := func() (report.Report, int) {
		mu.Lock()
		defer mu.Unlock()
		if len(got) == 0 {
			return report.Report{}, 0
		}
		return got[len(got)-1], len(got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tick := time.NewTicker(time.Millisecond)
	defer tick.Stop()
	irq := time.NewTicker(250 * time.Microsecond)
	defer irq.Stop()

	done := make(chan error, 1)
	go func() { done <- r.fw.Run(ctx, tick.C) }()
	go r.fw.ServeInterrupts(ctx, irq.C)

	r.board.Press(matrix.Coord{Row: 0, Col: 3})
	assert.Eventually(t, func() bool {
		rep, _ := last()
		return rep.Pressed(keycode.KeyD)
	}, 2*time.Second, time.Millisecond)

	r.board.Release(matrix.Coord{Row: 0, Col: 3})
	assert.Eventually(t, func() bool {
		rep, n := last()
		return n == 2 && rep == report.Report{}
	}, 2*time.Second, time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
	assert.GreaterOrEqual(t, r.fw.Stats().Ticks, uint64(cooldown+2))
}

func TestTickPeriod(t *testing.T) {
	assert.Equal(t, time.Millisecond, firmware.Config{TickRate: 1000}.TickPeriod())
	assert.Equal(t, 4*time.Millisecond, firmware.Config{TickRate: 250}.TickPeriod())
	assert.Equal(t, time.Millisecond, firmware.Config{}.TickPeriod())
}
