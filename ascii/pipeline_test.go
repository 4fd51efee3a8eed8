package ascii

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestConverter(t *testing.T, cols, rows int) *Converter {
	t.Helper()
	ramp, err := RampByName("classic", false)
	require.NoError(t, err)
	c := NewConverter(ramp)
	c.SetSize(cols, rows)
	return c
}

func TestConvertProducesFullGrid(t *testing.T) {
	c := newTestConverter(t, 20, 10)
	f := grayFrame(160, 120, func(x, y int) uint8 { return uint8((x + y) & 0xff) })

	g, err := c.Convert(f)
	require.NoError(t, err)
	require.Equal(t, 20, g.Cols)
	require.Equal(t, 10, g.Rows)
	require.Len(t, g.Cells, 200)
	for _, cell := range g.Cells {
		require.NotZero(t, cell.Ch)
	}
}

func TestConvertDeterministic(t *testing.T) {
	c := newTestConverter(t, 16, 12)
	f := grayFrame(128, 96, func(x, y int) uint8 { return uint8((x*3 + y*5) & 0xff) })

	a, err := c.Convert(f)
	require.NoError(t, err)
	b, err := c.Convert(f)
	require.NoError(t, err)
	require.True(t, a.Equal(b))
}

func TestConvertSnapshotDoesNotAlias(t *testing.T) {
	c := newTestConverter(t, 8, 8)
	dark := grayFrame(64, 64, func(x, y int) uint8 { return 10 })
	light := grayFrame(64, 64, func(x, y int) uint8 { return 245 })

	first, err := c.Convert(dark)
	require.NoError(t, err)
	keep := make([]Cell, len(first.Cells))
	copy(keep, first.Cells)

	_, err = c.Convert(light)
	require.NoError(t, err)
	require.Equal(t, keep, first.Cells)
}

func TestConvertMidGrayStaysClose(t *testing.T) {
	c := newTestConverter(t, 40, 20)
	f := grayFrame(320, 240, func(x, y int) uint8 { return 128 })

	g, err := c.Convert(f)
	require.NoError(t, err)

	step := 255.0 / float64(c.Ramp().Len()-1)
	var sum float64
	for _, cell := range g.Cells {
		sum += float64(cell.Level) * step
	}
	require.InDelta(t, 128, sum/float64(len(g.Cells)), 2)
}

func TestConvertMidGrayBalanced(t *testing.T) {
	// A solid 50%-gray 2x2 frame on a 2x2 grid dithers to a
	// checkerboard-like pattern: row and column level sums stay within
	// one ramp level of each other.
	c := newTestConverter(t, 2, 2)
	f := grayFrame(2, 2, func(x, y int) uint8 { return 128 })

	g, err := c.Convert(f)
	require.NoError(t, err)

	row0 := g.At(0, 0).Level + g.At(1, 0).Level
	row1 := g.At(0, 1).Level + g.At(1, 1).Level
	col0 := g.At(0, 0).Level + g.At(0, 1).Level
	col1 := g.At(1, 0).Level + g.At(1, 1).Level
	require.InDelta(t, row0, row1, 1)
	require.InDelta(t, col0, col1, 1)
}

func TestSetSizeRetargets(t *testing.T) {
	c := newTestConverter(t, 10, 5)
	f := grayFrame(100, 50, func(x, y int) uint8 { return 77 })

	g, err := c.Convert(f)
	require.NoError(t, err)
	require.Equal(t, 10, g.Cols)

	c.SetSize(30, 15)
	g, err = c.Convert(f)
	require.NoError(t, err)
	require.Equal(t, 30, g.Cols)
	require.Equal(t, 15, g.Rows)
	require.Len(t, g.Cells, 450)

	// Shrinking reuses the larger buffers without stale cells leaking in.
	c.SetSize(4, 3)
	g, err = c.Convert(f)
	require.NoError(t, err)
	require.Len(t, g.Cells, 12)
}

func TestConvertWithoutSizeFails(t *testing.T) {
	ramp, err := RampByName("classic", false)
	require.NoError(t, err)
	c := NewConverter(ramp)
	_, err = c.Convert(grayFrame(8, 8, func(x, y int) uint8 { return 0 }))
	require.Error(t, err)
}
