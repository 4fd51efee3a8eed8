package ascii

import (
	"fmt"

	"glance/capture"
)

// Sample partitions the frame into cols×rows rectangular regions and
// writes each region's mean luminance into dst (row-major, len cols*rows).
// Region sizes come from integer division with the remainder folded into
// the last region per dimension, so the regions tile the frame exactly.
// A dimension with zero-sized cells (grid larger than frame) switches
// every cell in it to nearest-pixel lookup, the last cell included; the
// remainder never widens a degenerate region to the whole frame.
// Runs in time linear in the frame's pixel count.
func Sample(f capture.Frame, cols, rows int, dst []uint8) error {
	if cols < 1 || rows < 1 {
		return fmt.Errorf("sample: bad grid %dx%d", cols, rows)
	}
	if !f.Valid() {
		return fmt.Errorf("sample: invalid %dx%d frame (%d bytes)", f.Width, f.Height, len(f.Pix))
	}
	if len(dst) < cols*rows {
		return fmt.Errorf("sample: dst too small: %d < %d", len(dst), cols*rows)
	}

	cellW := f.Width / cols
	cellH := f.Height / rows

	for r := 0; r < rows; r++ {
		y0 := r * cellH
		y1 := y0 + cellH
		if r == rows-1 && cellH > 0 {
			y1 = f.Height
		}
		for c := 0; c < cols; c++ {
			x0 := c * cellW
			x1 := x0 + cellW
			if c == cols-1 && cellW > 0 {
				x1 = f.Width
			}
			dst[r*cols+c] = regionMean(f, x0, y0, x1, y1, c, r, cols, rows)
		}
	}
	return nil
}

func regionMean(f capture.Frame, x0, y0, x1, y1, c, r, cols, rows int) uint8 {
	if x1 <= x0 || y1 <= y0 {
		// Grid larger than the frame in some dimension: fall back to the
		// nearest source pixel instead of dividing by zero.
		return pixelLuma(f, nearestIndex(c, cols, f.Width), nearestIndex(r, rows, f.Height))
	}

	var sum, count int
	if f.Format == capture.FormatGray8 {
		for y := y0; y < y1; y++ {
			row := y * f.Width
			for x := x0; x < x1; x++ {
				sum += int(f.Pix[row+x])
			}
		}
	} else {
		for y := y0; y < y1; y++ {
			row := y * f.Width
			for x := x0; x < x1; x++ {
				off := (row + x) * 3
				sum += lumaRGB(f.Pix[off], f.Pix[off+1], f.Pix[off+2])
			}
		}
	}
	count = (x1 - x0) * (y1 - y0)
	return uint8(sum / count)
}

func nearestIndex(cell, cells, size int) int {
	idx := cell * size / cells
	if idx >= size {
		idx = size - 1
	}
	return idx
}

func pixelLuma(f capture.Frame, x, y int) uint8 {
	if f.Format == capture.FormatGray8 {
		return f.Pix[y*f.Width+x]
	}
	off := (y*f.Width + x) * 3
	return uint8(lumaRGB(f.Pix[off], f.Pix[off+1], f.Pix[off+2]))
}

// lumaRGB is the BT.601 weighted sum in integer form.
func lumaRGB(r, g, b byte) int {
	return (299*int(r) + 587*int(g) + 114*int(b)) / 1000
}
