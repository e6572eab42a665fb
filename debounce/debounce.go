// Package debounce turns successive matrix scans into discrete press and
// release events.
//
// The policy is eager: the first transition seen at a coordinate is
// accepted at once and the coordinate is then deaf for a fixed number of
// scans, swallowing contact bounce. Only observed transitions are ever
// emitted.
package debounce

import (
	"iter"

	"github.com/Alia5/matrixfw/matrix"
)

// DefaultCooldown is the number of scans a coordinate ignores after an
// accepted transition.
const DefaultCooldown = 5

// Direction of a switch transition.
type Direction uint8

const (
	Press Direction = iota
	Release
)

func (d Direction) String() string {
	if d == Press {
		return "press"
	}
	return "release"
}

// Event is one accepted transition.
type Event struct {
	Coord matrix.Coord
	Dir   Direction
}

type keyState struct {
	accepted bool
	cooldown uint8
}

// Debouncer holds the per-coordinate accepted state and cooldown.
type Debouncer struct {
	cols     int
	cooldown uint8
	keys     []keyState
}

// New returns a debouncer for a rows x cols matrix in which every switch
// starts released.
func New(rows, cols int, cooldown uint8) *Debouncer {
	return &Debouncer{
		cols:     cols,
		cooldown: cooldown,
		keys:     make([]keyState, rows*cols),
	}
}

// Events walks raw in scan order and yields the accepted transitions.
//
// The sequence advances the debouncer as it is consumed and can be ranged
// over once; later ranges yield nothing. If the consumer stops early, the
// remaining coordinates only have their cooldowns advanced and any pending
// transitions are picked up by the next scan.
func (d *Debouncer) Events(raw matrix.Grid) iter.Seq[Event] {
	used := false
	return func(yield func(Event) bool) {
		if used {
			return
		}
		used = true
		emit := true
		for i := range d.keys {
			k := &d.keys[i]
			if k.cooldown > 0 {
				k.cooldown--
				continue
			}
			if !emit {
				continue
			}
			c := matrix.Coord{Row: i / d.cols, Col: i % d.cols}
			closed := raw.Get(c)
			if closed == k.accepted {
				continue
			}
			k.accepted = closed
			k.cooldown = d.cooldown
			ev := Event{Coord: c, Dir: Release}
			if closed {
				ev.Dir = Press
			}
			if !yield(ev) {
				emit = false
			}
		}
	}
}

// Pressed reports the last accepted state at c.
func (d *Debouncer) Pressed(c matrix.Coord) bool {
	return d.keys[c.Index(d.cols)].accepted
}
