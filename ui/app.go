package ui

import (
	"fmt"

	"glance/capture"
)

// StateKind enumerates the app's top-level modes.
type StateKind int

const (
	StateMenu StateKind = iota
	StateCameraList
	StateViewing
	StatePaused
)

func (k StateKind) String() string {
	switch k {
	case StateMenu:
		return "menu"
	case StateCameraList:
		return "camera-list"
	case StateViewing:
		return "viewing"
	case StatePaused:
		return "paused"
	}
	return "unknown"
}

// State is the single app-wide state value. It is passed through the
// control loop rather than stored globally; Transition never mutates its
// input.
type State struct {
	Kind     StateKind
	Cameras  []capture.Descriptor
	Selected int
	Active   capture.Descriptor
	Notice   string
}

// CommandKind enumerates the side effects a transition requests.
type CommandKind int

const (
	CmdEnumerate CommandKind = iota
	CmdOpenSource
	CmdCloseSource
	CmdQuit
)

// Command is one side effect for the loop to execute, in order.
type Command struct {
	Kind   CommandKind
	Camera capture.Descriptor
}

// Transition is the pure state machine: current state plus one key press
// yields the next state and the side effects to run. Exactly one source
// is open at a time; every path out of Viewing/Paused that is not a
// pause toggle emits CmdCloseSource.
func Transition(s State, k Key) (State, []Command) {
	if k == KeyQuit {
		var cmds []Command
		if s.Kind == StateViewing || s.Kind == StatePaused {
			cmds = append(cmds, Command{Kind: CmdCloseSource})
		}
		return s, append(cmds, Command{Kind: CmdQuit})
	}

	switch s.Kind {
	case StateMenu:
		// Any key leaves the menu; the camera list is enumerated fresh.
		next := s
		next.Kind = StateCameraList
		next.Selected = 0
		next.Notice = ""
		return next, []Command{{Kind: CmdEnumerate}}

	case StateCameraList:
		next := s
		switch k {
		case KeyUp:
			if next.Selected > 0 {
				next.Selected--
			}
			return next, nil
		case KeyDown:
			if next.Selected < len(next.Cameras)-1 {
				next.Selected++
			}
			return next, nil
		case KeyEnter:
			if len(next.Cameras) == 0 {
				next.Notice = "no cameras found"
				return next, nil
			}
			cam := next.Cameras[next.Selected]
			next.Kind = StateViewing
			next.Active = cam
			next.Notice = ""
			return next, []Command{{Kind: CmdOpenSource, Camera: cam}}
		case KeyEsc:
			next.Kind = StateMenu
			next.Notice = ""
			return next, nil
		}
		return next, nil

	case StateViewing:
		next := s
		switch k {
		case KeySpace:
			next.Kind = StatePaused
			return next, nil
		case KeyEsc:
			next.Kind = StateCameraList
			next.Active = capture.Descriptor{}
			return next, []Command{{Kind: CmdCloseSource}}
		}
		return next, nil

	case StatePaused:
		next := s
		switch k {
		case KeySpace:
			next.Kind = StateViewing
			return next, nil
		case KeyEsc:
			next.Kind = StateCameraList
			next.Active = capture.Descriptor{}
			return next, []Command{{Kind: CmdCloseSource}}
		}
		return next, nil
	}
	return s, nil
}

// FailOpen reverts an attempted open: back to the camera list with the
// failure annotated inline on the entry that refused to start.
func FailOpen(s State, err error) State {
	next := s
	next.Kind = StateCameraList
	next.Active = capture.Descriptor{}
	next.Notice = fmt.Sprintf("could not open camera: %v", err)
	if next.Selected >= 0 && next.Selected < len(next.Cameras) {
		cams := make([]capture.Descriptor, len(next.Cameras))
		copy(cams, next.Cameras)
		cams[next.Selected].Label += " (unavailable)"
		next.Cameras = cams
	}
	return next
}

// FailCapture handles a stream dying mid-view: back to the camera list
// with the error visible. The loop closes the source before calling this.
func FailCapture(s State, err error) State {
	next := s
	next.Kind = StateCameraList
	next.Active = capture.Descriptor{}
	next.Notice = fmt.Sprintf("stream lost: %v", err)
	return next
}
