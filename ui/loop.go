package ui

import (
	"context"
	"errors"
	"time"

	"glance/ascii"
	"glance/capture"
	"glance/logs"
)

// LoopOptions tune the render loop. Zero values get defaults from NewLoop.
type LoopOptions struct {
	FPS          int
	Ramp         ascii.Ramp
	FrameTimeout time.Duration
	MaxTimeouts  int
}

// Loop owns the app state, the open source and the render cadence. All
// state transitions happen on the loop goroutine; the capture goroutine
// only touches the frame slot and the error channel.
type Loop struct {
	screen   Screen
	provider capture.Provider
	opts     LoopOptions

	state State
	conv  *ascii.Converter
	slot  frameSlot

	src         capture.Source
	stopCapture chan struct{}
	captureDone chan struct{}
	captureErr  chan error

	lastGrid  ascii.Grid
	lastFrame capture.Frame
	lastSeq   uint64

	fps       float64
	fpsFrames int
	fpsSince  time.Time
}

func NewLoop(screen Screen, provider capture.Provider, opts LoopOptions) *Loop {
	if opts.FPS <= 0 {
		opts.FPS = 24
	}
	if opts.FrameTimeout <= 0 {
		opts.FrameTimeout = time.Second
	}
	if opts.MaxTimeouts <= 0 {
		opts.MaxTimeouts = 20
	}
	if opts.Ramp.Len() == 0 {
		opts.Ramp, _ = ascii.RampByName("classic", false)
	}
	return &Loop{
		screen:     screen,
		provider:   provider,
		opts:       opts,
		state:      State{Kind: StateMenu},
		conv:       ascii.NewConverter(opts.Ramp),
		captureErr: make(chan error, 1),
		fpsSince:   time.Now(),
	}
}

// Run drives the app until quit, ctx cancellation or display failure.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stopViewing()

	l.draw()
	tick := time.NewTicker(time.Second / time.Duration(l.opts.FPS))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-l.screen.Events():
			if !ok {
				return errors.New("display backend closed")
			}
			switch e := ev.(type) {
			case KeyEvent:
				if quit := l.handleKey(e.Key); quit {
					return nil
				}
			case ResizeEvent:
				cols, rows := l.viewport()
				l.reconvertIfResized(cols, rows)
				l.draw()
			}
		case err := <-l.captureErr:
			l.handleCaptureError(err)
		case <-tick.C:
			l.renderTick()
		}
	}
}

// handleKey runs one transition and its commands, then redraws.
// Returns true when the app should quit.
func (l *Loop) handleKey(k Key) bool {
	next, cmds := Transition(l.state, k)
	l.state = next
	for _, cmd := range cmds {
		switch cmd.Kind {
		case CmdQuit:
			return true
		case CmdEnumerate:
			cams, err := l.provider.Enumerate()
			if err != nil {
				logs.Err(err, "enumerate failed")
				l.state.Notice = "camera discovery failed: " + err.Error()
				l.state.Cameras = nil
			} else {
				l.state.Cameras = cams
			}
			if l.state.Selected >= len(l.state.Cameras) {
				l.state.Selected = 0
			}
		case CmdOpenSource:
			src, err := l.provider.Open(cmd.Camera)
			if err != nil {
				logs.Err(err, "open failed")
				l.state = FailOpen(l.state, err)
				break
			}
			logs.V("opened %s", cmd.Camera.ID)
			l.startCapture(src)
		case CmdCloseSource:
			l.stopViewing()
		}
	}
	l.draw()
	return false
}

// handleCaptureError tears the stream down and drops back to the list.
// Errors that race a deliberate close are ignored.
func (l *Loop) handleCaptureError(err error) {
	if l.state.Kind != StateViewing && l.state.Kind != StatePaused {
		return
	}
	logs.Err(err, "capture stopped")
	l.stopViewing()
	l.state = FailCapture(l.state, err)
	l.draw()
}

// renderTick converts the newest frame if one arrived since the last
// tick, otherwise repaints the last grid so the picture stays stable.
// Paused views stop consuming frames but still track the viewport.
func (l *Loop) renderTick() {
	if l.state.Kind != StateViewing && l.state.Kind != StatePaused {
		return
	}
	cols, rows := l.viewport()
	if l.state.Kind == StatePaused {
		l.reconvertIfResized(cols, rows)
		l.draw()
		return
	}
	f, seq := l.slot.snapshot()
	if seq == l.lastSeq || !f.Valid() {
		l.reconvertIfResized(cols, rows)
		l.draw()
		return
	}
	l.conv.SetSize(cols, rows)
	g, err := l.conv.Convert(f)
	if err != nil {
		logs.Err(err, "convert failed")
		return
	}
	l.lastGrid = g
	l.lastFrame = f
	l.lastSeq = seq
	l.countFrame()
	l.draw()
}

// viewport is the drawable grid geometry: the screen minus the status row.
func (l *Loop) viewport() (cols, rows int) {
	cols, rows = l.screen.Size()
	if rows > 1 {
		rows--
	}
	return cols, rows
}

// reconvertIfResized recomputes the grid from the held frame when the
// viewport changed, so the display never shows a partially scaled grid.
func (l *Loop) reconvertIfResized(cols, rows int) {
	if !l.lastFrame.Valid() {
		return
	}
	if l.lastGrid.Cols == cols && l.lastGrid.Rows == rows {
		return
	}
	l.conv.SetSize(cols, rows)
	g, err := l.conv.Convert(l.lastFrame)
	if err != nil {
		logs.Err(err, "reconvert failed")
		return
	}
	l.lastGrid = g
}

func (l *Loop) countFrame() {
	l.fpsFrames++
	if d := time.Since(l.fpsSince); d >= time.Second {
		l.fps = float64(l.fpsFrames) / d.Seconds()
		l.fpsFrames = 0
		l.fpsSince = time.Now()
	}
}

func (l *Loop) draw() {
	switch l.state.Kind {
	case StateMenu:
		drawMenu(l.screen)
	case StateCameraList:
		drawCameraList(l.screen, l.state)
	case StateViewing, StatePaused:
		drawFrame(l.screen, l.lastGrid, l.state, l.fps)
	}
}

// startCapture pulls frames off src into the slot until told to stop.
// A run of consecutive timeouts is treated as the stream ending.
func (l *Loop) startCapture(src capture.Source) {
	l.src = src
	l.stopCapture = make(chan struct{})
	l.captureDone = make(chan struct{})
	stop, done := l.stopCapture, l.captureDone

	go func() {
		defer close(done)
		timeouts := 0
		for {
			select {
			case <-stop:
				return
			default:
			}
			f, err := src.NextFrame(l.opts.FrameTimeout)
			switch {
			case err == nil:
				timeouts = 0
				l.slot.publish(f)
			case errors.Is(err, capture.ErrTimeout):
				timeouts++
				if timeouts >= l.opts.MaxTimeouts {
					l.reportCaptureError(capture.ErrStreamEnded)
					return
				}
			default:
				l.reportCaptureError(err)
				return
			}
		}
	}()
}

func (l *Loop) reportCaptureError(err error) {
	select {
	case l.captureErr <- err:
	default:
	}
}

// stopViewing closes the open source and clears everything derived from
// it. Safe to call when nothing is open. The source is closed before
// waiting so a capture goroutine blocked in NextFrame unblocks at once
// instead of holding the loop for a full frame timeout.
func (l *Loop) stopViewing() {
	if l.src == nil {
		return
	}
	close(l.stopCapture)
	if err := l.src.Close(); err != nil {
		logs.Err(err, "close source")
	}
	<-l.captureDone
	l.src = nil
	l.stopCapture = nil
	l.captureDone = nil
	select {
	case <-l.captureErr:
	default:
	}
	l.slot.reset()
	l.lastGrid = ascii.Grid{}
	l.lastFrame = capture.Frame{}
	l.lastSeq = 0
	l.fps = 0
	l.fpsFrames = 0
	l.fpsSince = time.Now()
}
