package ascii

import "fmt"

// diffusionWeights is the Floyd–Steinberg kernel: the quantization
// residual of a cell is split among its not-yet-visited neighbors in
// row-major scan order. The weights sum to 1.
var diffusionWeights = []struct {
	dx, dy int
	w      float32
}{
	{1, 0, 7.0 / 16},
	{-1, 1, 3.0 / 16},
	{0, 1, 5.0 / 16},
	{1, 1, 1.0 / 16},
}

// Dither quantizes a luminance grid to levels in [0, levels-1] using
// error diffusion. The carry buffer is zeroed on every call, so each
// frame is dithered independently: a static scene converges to a stable
// image instead of accumulating drift across frames or resizes. Fully
// deterministic for identical input.
func Dither(lum []uint8, cols, rows, levels int, dst []int, carry []float32) error {
	cells := cols * rows
	if cols < 1 || rows < 1 {
		return fmt.Errorf("dither: bad grid %dx%d", cols, rows)
	}
	if levels < 2 {
		return fmt.Errorf("dither: need at least 2 levels, got %d", levels)
	}
	if len(lum) < cells || len(dst) < cells || len(carry) < cells {
		return fmt.Errorf("dither: buffer too small for %d cells", cells)
	}

	for i := 0; i < cells; i++ {
		carry[i] = 0
	}

	step := float32(255) / float32(levels-1)
	for y := 0; y < rows; y++ {
		row := y * cols
		for x := 0; x < cols; x++ {
			i := row + x
			v := float32(lum[i]) + carry[i]
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			level := int(v/step + 0.5)
			if level > levels-1 {
				level = levels - 1
			}
			dst[i] = level

			residual := v - float32(level)*step
			for _, d := range diffusionWeights {
				nx, ny := x+d.dx, y+d.dy
				if nx < 0 || nx >= cols || ny >= rows {
					continue
				}
				carry[ny*cols+nx] += residual * d.w
			}
		}
	}
	return nil
}
