package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"glance/ascii"
)

func simScreen(t *testing.T, cols, rows int) (*TermScreen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	scr := NewWithScreen(sim)
	require.NoError(t, scr.Init())
	sim.SetSize(cols, rows)
	t.Cleanup(scr.Fini)
	return scr, sim
}

func TestTranslateKey(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want Key
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), KeyUp},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), KeyDown},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), KeyEnter},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), KeyEsc},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), KeyQuit},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), KeyQuit},
		{tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), KeyQuit},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), KeySpace},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), KeyOther},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), KeyOther},
	}
	for _, c := range cases {
		require.Equal(t, c.want, translateKey(c.ev))
	}
}

func TestDrawGridWritesCells(t *testing.T) {
	scr, sim := simScreen(t, 10, 4)

	g := ascii.NewGrid(4, 2)
	glyphs := []rune("@#%:.=-+")
	for i := range g.Cells {
		g.Cells[i] = ascii.Cell{Ch: glyphs[i], Level: i}
	}
	scr.DrawGrid(g)
	scr.Show()

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			mainc, _, _, _ := sim.GetContent(x, y)
			require.Equal(t, g.At(x, y).Ch, mainc, "cell %d,%d", x, y)
		}
	}
}

func TestPrintClipsAtEdge(t *testing.T) {
	scr, sim := simScreen(t, 5, 2)

	scr.Print(3, 0, "abcdef")
	scr.Print(0, 5, "offscreen")
	scr.Show()

	mainc, _, _, _ := sim.GetContent(3, 0)
	require.Equal(t, 'a', mainc)
	mainc, _, _, _ = sim.GetContent(4, 0)
	require.Equal(t, 'b', mainc)
}

func TestEventPumpDeliversKeys(t *testing.T) {
	scr, sim := simScreen(t, 10, 4)

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	for ev := range scr.Events() {
		if ke, ok := ev.(KeyEvent); ok {
			require.Equal(t, KeyQuit, ke.Key)
			return
		}
	}
	t.Fatal("no key event delivered")
}
