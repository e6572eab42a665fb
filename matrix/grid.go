package matrix

import "fmt"

// Coord identifies one physical switch by its row and column line.
type Coord struct {
	Row int
	Col int
}

// Index returns the row-major position of c in a matrix with cols columns.
func (c Coord) Index(cols int) int {
	return c.Row*cols + c.Col
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Grid is a snapshot of the contact state of every switch.
// A Grid returned by Matrix.Scan is overwritten by the next scan.
type Grid struct {
	rows, cols int
	cells      []bool
}

// NewGrid returns an all-released grid.
func NewGrid(rows, cols int) Grid {
	return Grid{rows: rows, cols: cols, cells: make([]bool, rows*cols)}
}

func (g Grid) Rows() int { return g.rows }
func (g Grid) Cols() int { return g.cols }

// Get reports whether the switch at c is closed.
func (g Grid) Get(c Coord) bool {
	return g.cells[c.Index(g.cols)]
}

// Set records the contact state at c.
func (g Grid) Set(c Coord, closed bool) {
	g.cells[c.Index(g.cols)] = closed
}

// Pressed returns the closed coordinates in scan order.
func (g Grid) Pressed() []Coord {
	var out []Coord
	for i, v := range g.cells {
		if v {
			out = append(out, Coord{Row: i / g.cols, Col: i % g.cols})
		}
	}
	return out
}
