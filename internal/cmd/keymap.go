package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Alia5/matrixfw/keymap"
	"github.com/Alia5/matrixfw/layout"
	"github.com/Alia5/matrixfw/matrix"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

var layerNames = map[int]string{
	keymap.Base:  "base",
	keymap.Shift: "shift",
	keymap.Mod3:  "mod3",
	keymap.Mod4:  "mod4",
	keymap.Fn:    "fn",
}

// Keymap prints the reference layout one layer at a time.
type Keymap struct {
	Layer int `help:"Only print this layer; -1 prints all" default:"-1"`

	Out io.Writer `kong:"-"`
}

func (k *Keymap) Run() error {
	lay, err := keymap.New()
	if err != nil {
		return err
	}
	out := k.Out
	if out == nil {
		out = os.Stdout
	}
	if k.Layer >= lay.Layers() {
		return fmt.Errorf("%w: %d", layout.ErrBadLayer, k.Layer)
	}
	for n := range lay.Layers() {
		if k.Layer >= 0 && n != k.Layer {
			continue
		}
		if err := printLayer(out, lay, n); err != nil {
			return err
		}
	}
	return nil
}

func printLayer(w io.Writer, lay *layout.Layout, n int) error {
	headers := make([]string, lay.Cols()+1)
	headers[0] = "row"
	for col := range lay.Cols() {
		headers[col+1] = "c" + strconv.Itoa(col)
	}
	rows := make([][]string, lay.Rows())
	for row := range lay.Rows() {
		cells := make([]string, lay.Cols()+1)
		cells[0] = "r" + strconv.Itoa(row)
		for col := range lay.Cols() {
			cells[col+1] = actionLabel(lay.At(n, matrix.Coord{Row: row, Col: col}))
		}
		rows[row] = cells
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == ltable.HeaderRow, col == 0:
				return headerStyle
			case rows[row][col] == "___" || rows[row][col] == "xxx":
				return mutedStyle
			}
			return cellStyle
		})

	_, err := fmt.Fprintf(w, "layer %d (%s)\n%s\n\n", n, layerNames[n], t.Render())
	return err
}

func actionLabel(a layout.Action) string {
	switch a.Kind() {
	case layout.KindNoOp:
		return "xxx"
	case layout.KindTransparent:
		return "___"
	}
	return a.String()
}
