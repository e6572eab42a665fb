package layout

import (
	"iter"
	"slices"

	"github.com/Alia5/matrixfw/debounce"
	"github.com/Alia5/matrixfw/keycode"
	"github.com/Alia5/matrixfw/matrix"
)

// Change is one keycode entering (+1) or leaving (-1) the held set.
type Change struct {
	Code  keycode.Code
	Delta int8
}

type keyState struct {
	held   bool
	action Action
}

// Resolver tracks which layers are held and which action each pressed
// coordinate was bound to when it went down.
//
// Layers are ordered by activation: the most recently held layer is
// consulted first, then older ones, then the base layer.
type Resolver struct {
	layout  *Layout
	stack   []int
	keys    []keyState
	changes []Change
}

// NewResolver returns a resolver with no keys held and only the base layer
// active.
func NewResolver(l *Layout) *Resolver {
	n := l.rows * l.cols
	return &Resolver{
		layout: l,
		stack:  make([]int, 0, n),
		keys:   make([]keyState, n),
	}
}

// Lookup returns the action c resolves to under the current layer stack.
func (r *Resolver) Lookup(c matrix.Coord) Action {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if a := r.layout.At(r.stack[i], c); a.kind != KindTransparent {
			return a
		}
	}
	return r.layout.At(0, c)
}

// Apply feeds one event through the resolver and returns the keycodes it
// added or removed. The returned slice is reused by the next call.
//
// A release always undoes exactly what the matching press did, whatever
// layers were engaged in between. Releases without a press and repeated
// presses are ignored.
func (r *Resolver) Apply(ev debounce.Event) []Change {
	r.changes = r.changes[:0]
	c := ev.Coord
	if c.Row < 0 || c.Row >= r.layout.rows || c.Col < 0 || c.Col >= r.layout.cols {
		return r.changes
	}
	k := &r.keys[c.Index(r.layout.cols)]

	switch ev.Dir {
	case debounce.Press:
		if k.held {
			return r.changes
		}
		a := r.Lookup(c)
		*k = keyState{held: true, action: a}
		switch a.kind {
		case KindLayerHold:
			r.stack = append(r.stack, a.layer)
		case KindKey, KindChord:
			for _, code := range a.codes {
				r.changes = append(r.changes, Change{Code: code, Delta: 1})
			}
		}
	case debounce.Release:
		if !k.held {
			return r.changes
		}
		a := k.action
		*k = keyState{}
		switch a.kind {
		case KindLayerHold:
			// Holds may overlap in any order, so remove by value: the most
			// recent activation of that layer goes.
			for i := len(r.stack) - 1; i >= 0; i-- {
				if r.stack[i] == a.layer {
					r.stack = slices.Delete(r.stack, i, i+1)
					break
				}
			}
		case KindKey, KindChord:
			for _, code := range a.codes {
				r.changes = append(r.changes, Change{Code: code, Delta: -1})
			}
		}
	}
	return r.changes
}

// Tick is the per-scan hook of the resolver. Nothing in the supported
// action set depends on time, so it has no effect.
func (r *Resolver) Tick() {}

// Keycodes yields the held keycodes in scan order of their coordinates and,
// within a chord, in chord order.
func (r *Resolver) Keycodes() iter.Seq[keycode.Code] {
	return func(yield func(keycode.Code) bool) {
		for _, k := range r.keys {
			if !k.held {
				continue
			}
			for _, code := range k.action.codes {
				if !yield(code) {
					return
				}
			}
		}
	}
}

// ActiveLayers returns the held layers, oldest first.
func (r *Resolver) ActiveLayers() []int {
	return slices.Clone(r.stack)
}

// Held returns the number of coordinates currently pressed.
func (r *Resolver) Held() int {
	n := 0
	for _, k := range r.keys {
		if k.held {
			n++
		}
	}
	return n
}
