package ascii

import (
	"fmt"

	"glance/capture"
)

// Converter runs the Sample → Dither → glyph-map chain at a fixed target
// geometry. Scratch buffers are reused between frames; the returned Grid
// is always a fresh snapshot and never aliases converter state.
type Converter struct {
	ramp  Ramp
	cols  int
	rows  int
	lum   []uint8
	level []int
	carry []float32
}

// NewConverter builds a converter for the given ramp. SetSize must be
// called before the first Convert.
func NewConverter(ramp Ramp) *Converter {
	return &Converter{ramp: ramp}
}

// SetSize retargets the converter to a new viewport. The next Convert
// recomputes the full grid; nothing from the previous geometry survives.
func (c *Converter) SetSize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c.cols, c.rows = cols, rows
	cells := cols * rows
	if cap(c.lum) < cells {
		c.lum = make([]uint8, cells)
		c.level = make([]int, cells)
		c.carry = make([]float32, cells)
	}
	c.lum = c.lum[:cells]
	c.level = c.level[:cells]
	c.carry = c.carry[:cells]
}

// Size returns the current target geometry.
func (c *Converter) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Ramp returns the glyph ramp the converter maps levels through.
func (c *Converter) Ramp() Ramp {
	return c.ramp
}

// Convert turns one frame into a display grid at the current geometry.
func (c *Converter) Convert(f capture.Frame) (Grid, error) {
	if c.cols < 1 || c.rows < 1 {
		return Grid{}, fmt.Errorf("convert: size not set")
	}
	if err := Sample(f, c.cols, c.rows, c.lum); err != nil {
		return Grid{}, err
	}
	if err := Dither(c.lum, c.cols, c.rows, c.ramp.Len(), c.level, c.carry); err != nil {
		return Grid{}, err
	}

	g := NewGrid(c.cols, c.rows)
	for i, level := range c.level {
		g.Cells[i] = Cell{Ch: c.ramp.Glyph(level), Level: level}
	}
	return g, nil
}
