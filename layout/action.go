package layout

import (
	"fmt"
	"strings"

	"github.com/Alia5/matrixfw/keycode"
)

// Kind discriminates the variants of Action.
type Kind uint8

const (
	KindNoOp Kind = iota
	KindTransparent
	KindKey
	KindChord
	KindLayerHold
)

// Action is what a coordinate does on a given layer.
// The zero value is NoOp.
type Action struct {
	kind  Kind
	codes []keycode.Code
	layer int
}

var (
	// NoOp does nothing on press or release.
	NoOp = Action{kind: KindNoOp}
	// Trans defers to the next active layer below at the same coordinate.
	Trans = Action{kind: KindTransparent}
)

// K sends a single key.
func K(code keycode.Code) Action {
	return Action{kind: KindKey, codes: []keycode.Code{code}}
}

// M sends several keys pressed and released together, in the given order.
func M(codes ...keycode.Code) Action {
	return Action{kind: KindChord, codes: codes}
}

// S is the shifted variant of code.
func S(code keycode.Code) Action {
	return M(keycode.KeyLeftShift, code)
}

// L activates layer while the key is held.
func L(layer int) Action {
	return Action{kind: KindLayerHold, layer: layer}
}

func (a Action) Kind() Kind { return a.kind }

// Codes returns the keycodes a Key or Chord contributes, in order.
func (a Action) Codes() []keycode.Code { return a.codes }

// Layer returns the target of a LayerHold.
func (a Action) Layer() int { return a.layer }

func (a Action) String() string {
	switch a.kind {
	case KindTransparent:
		return "Trans"
	case KindKey:
		return a.codes[0].String()
	case KindChord:
		parts := make([]string, len(a.codes))
		for i, c := range a.codes {
			parts[i] = c.String()
		}
		return strings.Join(parts, "+")
	case KindLayerHold:
		return fmt.Sprintf("L%d", a.layer)
	default:
		return "NoOp"
	}
}
