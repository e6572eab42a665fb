// Package matrix scans a row/column switch matrix.
//
// Rows are driven one at a time: the selected row is pulled low, every
// column is sampled (a closed switch pulls its column low through the
// row), and the row is released high again before the next one is
// selected. Rows are never driven simultaneously.
package matrix

import (
	"errors"
	"fmt"
)

var (
	ErrNoPins = errors.New("matrix needs at least one row and one column pin")
	ErrPin    = errors.New("pin access failed")
)

// OutputPin is a row line.
type OutputPin interface {
	SetHigh() error
	SetLow() error
}

// InputPin is a pulled-up column line.
type InputPin interface {
	IsLow() (bool, error)
}

// Option configures a Matrix.
type Option func(*Matrix)

// WithSettle installs a hook that runs after a row is driven and before
// the columns are sampled, giving the lines time to settle.
func WithSettle(f func()) Option {
	return func(m *Matrix) {
		m.settle = f
	}
}

// Matrix owns the row and column pins of the keyboard.
type Matrix struct {
	rows   []OutputPin
	cols   []InputPin
	settle func()
	grid   Grid
}

// New returns a Matrix with every row driven inactive.
func New(rows []OutputPin, cols []InputPin, opts ...Option) (*Matrix, error) {
	if len(rows) == 0 || len(cols) == 0 {
		return nil, ErrNoPins
	}
	m := &Matrix{
		rows:   rows,
		cols:   cols,
		settle: func() {},
		grid:   NewGrid(len(rows), len(cols)),
	}
	for _, o := range opts {
		o(m)
	}
	for i, r := range rows {
		if err := r.SetHigh(); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrPin, i, err)
		}
	}
	return m, nil
}

func (m *Matrix) Rows() int { return len(m.rows) }
func (m *Matrix) Cols() int { return len(m.cols) }

// Scan samples every switch and returns the resulting grid.
func (m *Matrix) Scan() (Grid, error) {
	for ri, row := range m.rows {
		if err := row.SetLow(); err != nil {
			return Grid{}, fmt.Errorf("%w: row %d: %v", ErrPin, ri, err)
		}
		m.settle()
		for ci, col := range m.cols {
			low, err := col.IsLow()
			if err != nil {
				_ = row.SetHigh()
				return Grid{}, fmt.Errorf("%w: row %d col %d: %v", ErrPin, ri, ci, err)
			}
			m.grid.Set(Coord{Row: ri, Col: ci}, low)
		}
		if err := row.SetHigh(); err != nil {
			return Grid{}, fmt.Errorf("%w: row %d: %v", ErrPin, ri, err)
		}
	}
	return m.grid, nil
}
