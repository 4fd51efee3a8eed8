// Package capture abstracts camera access behind a small provider/source
// pair so the rest of the application never talks to video hardware
// directly.
package capture

import (
	"errors"
	"time"
)

// PixelFormat identifies the sample layout of a Frame's Pix buffer.
type PixelFormat int

const (
	// FormatRGB24 stores three bytes per pixel: R, G, B.
	FormatRGB24 PixelFormat = iota
	// FormatGray8 stores one luminance byte per pixel.
	FormatGray8
)

// Frame is an immutable snapshot of one captured image. It is never
// mutated after creation; pipeline stages hand it over by value.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
	Format PixelFormat
	Stamp  time.Time
}

// Valid reports whether the frame geometry matches its pixel buffer.
func (f Frame) Valid() bool {
	if f.Width <= 0 || f.Height <= 0 {
		return false
	}
	need := f.Width * f.Height
	if f.Format == FormatRGB24 {
		need *= 3
	}
	return len(f.Pix) >= need
}

// Descriptor identifies one selectable camera.
type Descriptor struct {
	ID    string
	Label string
}

var (
	// ErrDeviceUnavailable means the camera could not be opened.
	ErrDeviceUnavailable = errors.New("capture: device unavailable")
	// ErrTimeout means no frame arrived within the wait bound.
	ErrTimeout = errors.New("capture: frame wait timed out")
	// ErrStreamEnded means the provider closed the stream unexpectedly.
	ErrStreamEnded = errors.New("capture: stream ended")
)

// Source is an open camera stream. NextFrame blocks up to timeout waiting
// for the provider to produce data. Close is idempotent, safe to call
// after the underlying provider has already failed, and may be called
// while NextFrame is blocked; a pending wait then returns ErrStreamEnded
// no later than its timeout.
type Source interface {
	NextFrame(timeout time.Duration) (Frame, error)
	Close() error
}

// Provider enumerates cameras and opens them. Enumerate performs a fresh
// scan on every call.
type Provider interface {
	Enumerate() ([]Descriptor, error)
	Open(d Descriptor) (Source, error)
}
