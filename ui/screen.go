// Package ui drives the terminal: the tcell-backed screen, the app state
// machine and the render loop that keeps the glyph stream moving.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	runewidth "github.com/mattn/go-runewidth"

	"glance/ascii"
)

// Key identifies the control keys the app reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyQuit
	KeyUp
	KeyDown
	KeyEnter
	KeySpace
	KeyEsc
)

// Event is either a KeyEvent or a ResizeEvent delivered by the backend.
type Event interface {
	isEvent()
}

// KeyEvent carries one translated key press.
type KeyEvent struct {
	Key Key
}

// ResizeEvent carries the new viewport size in character cells.
type ResizeEvent struct {
	Cols int
	Rows int
}

func (KeyEvent) isEvent()    {}
func (ResizeEvent) isEvent() {}

// Screen abstracts the cell-based display/input backend. Draw calls only
// stage content; Show flushes one frame worth of changes at once.
type Screen interface {
	Init() error
	Fini()
	Size() (cols, rows int)
	Clear()
	DrawGrid(g ascii.Grid)
	Print(x, y int, text string)
	PrintHighlight(x, y int, text string)
	Show()
	Events() <-chan Event
}

// TermScreen implements Screen on top of tcell.
type TermScreen struct {
	screen tcell.Screen
	events chan Event
}

// NewTermScreen allocates a screen bound to the real terminal.
func NewTermScreen() (*TermScreen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("screen: %w", err)
	}
	return &TermScreen{screen: s}, nil
}

// NewWithScreen wraps an existing tcell screen, e.g. a simulation screen
// in tests.
func NewWithScreen(s tcell.Screen) *TermScreen {
	return &TermScreen{screen: s}
}

func (t *TermScreen) Init() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	t.screen.HideCursor()
	t.events = make(chan Event, 8)
	go t.pump()
	return nil
}

// Fini restores the terminal. tcell unwinds the alternate screen and raw
// mode; the event pump ends once PollEvent starts returning nil.
func (t *TermScreen) Fini() {
	t.screen.Fini()
}

func (t *TermScreen) Size() (int, int) {
	return t.screen.Size()
}

func (t *TermScreen) Clear() {
	t.screen.Clear()
}

func (t *TermScreen) DrawGrid(g ascii.Grid) {
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			t.screen.SetContent(x, y, g.At(x, y).Ch, nil, tcell.StyleDefault)
		}
	}
}

func (t *TermScreen) Print(x, y int, text string) {
	t.print(x, y, text, tcell.StyleDefault)
}

func (t *TermScreen) PrintHighlight(x, y int, text string) {
	t.print(x, y, text, tcell.StyleDefault.Reverse(true))
}

func (t *TermScreen) print(x, y int, text string, style tcell.Style) {
	cols, rows := t.screen.Size()
	if y < 0 || y >= rows {
		return
	}
	for _, r := range text {
		if x >= cols {
			return
		}
		t.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func (t *TermScreen) Show() {
	t.screen.Show()
}

func (t *TermScreen) Events() <-chan Event {
	return t.events
}

// pump translates tcell events until the screen is finalized.
func (t *TermScreen) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			close(t.events)
			return
		}
		switch e := ev.(type) {
		case *tcell.EventKey:
			t.events <- KeyEvent{Key: translateKey(e)}
		case *tcell.EventResize:
			w, h := e.Size()
			t.events <- ResizeEvent{Cols: w, Rows: h}
		}
	}
}

func translateKey(e *tcell.EventKey) Key {
	switch e.Key() {
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyEscape:
		return KeyEsc
	case tcell.KeyCtrlC:
		return KeyQuit
	case tcell.KeyRune:
		switch e.Rune() {
		case 'q', 'Q':
			return KeyQuit
		case ' ':
			return KeySpace
		}
	}
	return KeyOther
}

var _ Screen = (*TermScreen)(nil)
