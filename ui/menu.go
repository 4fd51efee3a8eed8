package ui

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"glance/ascii"
)

var menuLines = []string{
	"glance",
	"",
	"live camera to ascii, in your terminal",
	"",
	"controls",
	"  up/down   select camera",
	"  enter     open camera",
	"  space     pause / resume",
	"  esc       back",
	"  q         quit",
	"",
	"known limitations",
	"  framerate drops as the window or camera resolution grows",
	"  the image aspect ratio is not maintained",
	"  scaling the view means resizing the terminal or its font",
	"",
	"press any key to list cameras",
}

func drawMenu(s Screen) {
	s.Clear()
	cols, rows := s.Size()
	top := rows/2 - len(menuLines)/2
	if top < 0 {
		top = 0
	}
	for i, line := range menuLines {
		x := cols/2 - runewidth.StringWidth(line)/2
		if x < 0 {
			x = 0
		}
		s.Print(x, top+i, line)
	}
	s.Show()
}

func drawCameraList(s Screen, st State) {
	s.Clear()
	cols, _ := s.Size()
	s.Print(1, 0, "cameras")
	if len(st.Cameras) == 0 {
		s.Print(1, 2, "no cameras found")
	}
	for i, cam := range st.Cameras {
		label := runewidth.Truncate(cam.Label, cols-4, "…")
		line := fmt.Sprintf("  %s", label)
		if i == st.Selected {
			s.PrintHighlight(1, 2+i, "> "+label)
		} else {
			s.Print(1, 2+i, line)
		}
	}
	if st.Notice != "" {
		s.Print(1, 3+len(st.Cameras), runewidth.Truncate(st.Notice, cols-2, "…"))
	}
	s.Show()
}

func drawFrame(s Screen, g ascii.Grid, st State, fps float64) {
	s.Clear()
	s.DrawGrid(g)
	cols, rows := s.Size()
	if st.Kind == StatePaused {
		label := " PAUSED "
		x := cols/2 - runewidth.StringWidth(label)/2
		if x < 0 {
			x = 0
		}
		s.PrintHighlight(x, rows/2, label)
	}
	if rows > 1 {
		status := fmt.Sprintf(" %s  %.0f fps ", st.Active.Label, fps)
		s.Print(0, rows-1, runewidth.Truncate(status, cols, ""))
	}
	s.Show()
}
