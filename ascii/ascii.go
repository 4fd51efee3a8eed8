// Package ascii turns raw camera frames into terminal glyph grids:
// luminance sampling, error-diffusion dithering, glyph-ramp mapping.
package ascii

// Cell is one rendered character cell: the glyph plus the quantized
// brightness level it encodes.
type Cell struct {
	Ch    rune
	Level int
}

// Grid is a row-major matrix of cells sized to the terminal viewport.
// Grids are snapshots; the pipeline never mutates one it has handed out.
type Grid struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// NewGrid allocates an empty grid.
func NewGrid(cols, rows int) Grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return Grid{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
}

// At returns the cell at column x, row y.
func (g Grid) At(x, y int) Cell {
	return g.Cells[y*g.Cols+x]
}

// Empty reports whether the grid has no cells.
func (g Grid) Empty() bool {
	return g.Cols == 0 || g.Rows == 0
}

// Equal reports whether two grids have identical geometry and cells.
func (g Grid) Equal(other Grid) bool {
	if g.Cols != other.Cols || g.Rows != other.Rows {
		return false
	}
	for i := range g.Cells {
		if g.Cells[i] != other.Cells[i] {
			return false
		}
	}
	return true
}
