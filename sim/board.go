// Package sim provides a virtual switch matrix and replayable input
// scenarios so the firmware pipeline can run without hardware.
package sim

import (
	"sync"

	"github.com/Alia5/matrixfw/matrix"
)

// Board is a virtual keyboard PCB: a grid of switches wired between row
// lines (outputs, active low) and pulled-up column lines (inputs).
// It is safe for concurrent use.
type Board struct {
	mu       sync.Mutex
	rowCount int
	colCount int
	closed   []bool
	rowLow   []bool
	maxLow   int
	rowErr   map[int]error
	colErr   map[int]error
	rowPins  []matrix.OutputPin
	colPins  []matrix.InputPin
}

// NewBoard returns a board with every switch open and every row released.
func NewBoard(rows, cols int) *Board {
	b := &Board{
		rowCount: rows,
		colCount: cols,
		closed:   make([]bool, rows*cols),
		rowLow:   make([]bool, rows),
		rowErr:   map[int]error{},
		colErr:   map[int]error{},
	}
	for i := 0; i < rows; i++ {
		b.rowPins = append(b.rowPins, rowPin{b: b, i: i})
	}
	for i := 0; i < cols; i++ {
		b.colPins = append(b.colPins, colPin{b: b, i: i})
	}
	return b
}

// RowPins returns the row lines in matrix order.
func (b *Board) RowPins() []matrix.OutputPin { return b.rowPins }

// ColPins returns the column lines in matrix order.
func (b *Board) ColPins() []matrix.InputPin { return b.colPins }

func (b *Board) Rows() int { return b.rowCount }
func (b *Board) Cols() int { return b.colCount }

// Set opens or closes the switch at c.
func (b *Board) Set(c matrix.Coord, closed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed[c.Index(b.colCount)] = closed
}

func (b *Board) Press(c matrix.Coord)   { b.Set(c, true) }
func (b *Board) Release(c matrix.Coord) { b.Set(c, false) }

// Closed reports whether the switch at c is currently closed.
func (b *Board) Closed(c matrix.Coord) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed[c.Index(b.colCount)]
}

// MaxActiveRows returns the largest number of rows that were driven low at
// the same time since the board was created.
func (b *Board) MaxActiveRows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.maxLow
}

// FailRow makes every write to row i fail with err. A nil err clears it.
func (b *Board) FailRow(i int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.rowErr, i)
		return
	}
	b.rowErr[i] = err
}

// FailCol makes every read of column i fail with err. A nil err clears it.
func (b *Board) FailCol(i int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		delete(b.colErr, i)
		return
	}
	b.colErr[i] = err
}

type rowPin struct {
	b *Board
	i int
}

func (p rowPin) SetHigh() error { return p.b.drive(p.i, false) }
func (p rowPin) SetLow() error  { return p.b.drive(p.i, true) }

type colPin struct {
	b *Board
	i int
}

func (p colPin) IsLow() (bool, error) { return p.b.sample(p.i) }

func (b *Board) drive(row int, low bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.rowErr[row]; err != nil {
		return err
	}
	b.rowLow[row] = low
	n := 0
	for _, l := range b.rowLow {
		if l {
			n++
		}
	}
	b.maxLow = max(b.maxLow, n)
	return nil
}

func (b *Board) sample(col int) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.colErr[col]; err != nil {
		return false, err
	}
	for r, low := range b.rowLow {
		if low && b.closed[r*b.colCount+col] {
			return true, nil
		}
	}
	return false, nil
}
