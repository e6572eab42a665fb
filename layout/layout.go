// Package layout resolves debounced switch events into keycodes through a
// stack of momentarily held layers.
package layout

import (
	"errors"
	"fmt"

	"github.com/Alia5/matrixfw/matrix"
)

var (
	ErrNoLayers        = errors.New("layout has no layers")
	ErrDimension       = errors.New("layout dimensions do not match the matrix")
	ErrTransparentBase = errors.New("base layer contains a transparent action")
	ErrShortChord      = errors.New("chord needs at least two keycodes")
	ErrBadLayer        = errors.New("layer hold targets an invalid layer")
)

// Layout is an immutable Action table indexed by layer, row and column.
// Layer 0 is the base layer and holds no Trans cell.
type Layout struct {
	rows, cols int
	layers     [][][]Action
}

// New validates layers against a rows x cols matrix.
func New(rows, cols int, layers [][][]Action) (*Layout, error) {
	if len(layers) == 0 {
		return nil, ErrNoLayers
	}
	for li, layer := range layers {
		if len(layer) != rows {
			return nil, fmt.Errorf("%w: layer %d has %d rows, want %d", ErrDimension, li, len(layer), rows)
		}
		for ri, row := range layer {
			if len(row) != cols {
				return nil, fmt.Errorf("%w: layer %d row %d has %d columns, want %d", ErrDimension, li, ri, len(row), cols)
			}
			for ci, a := range row {
				at := matrix.Coord{Row: ri, Col: ci}
				switch a.kind {
				case KindTransparent:
					if li == 0 {
						return nil, fmt.Errorf("%w at %s", ErrTransparentBase, at)
					}
				case KindChord:
					if len(a.codes) < 2 {
						return nil, fmt.Errorf("%w: layer %d at %s", ErrShortChord, li, at)
					}
				case KindLayerHold:
					if a.layer <= 0 || a.layer >= len(layers) {
						return nil, fmt.Errorf("%w: layer %d at %s targets %d", ErrBadLayer, li, at, a.layer)
					}
				}
			}
		}
	}
	return &Layout{rows: rows, cols: cols, layers: layers}, nil
}

func (l *Layout) Rows() int   { return l.rows }
func (l *Layout) Cols() int   { return l.cols }
func (l *Layout) Layers() int { return len(l.layers) }

// At returns the action bound to c on layer.
func (l *Layout) At(layer int, c matrix.Coord) Action {
	return l.layers[layer][c.Row][c.Col]
}
