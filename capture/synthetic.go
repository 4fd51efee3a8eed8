package capture

import (
	"fmt"
	"sync"
	"time"
)

const (
	syntheticWidth    = 320
	syntheticHeight   = 240
	syntheticInterval = 33 * time.Millisecond
)

// SyntheticProvider yields software-generated frames: a drifting diagonal
// gradient over a gray-step calibration strip. It backs the --synthetic
// flag, unsupported platforms, and the tests; OpenErr and FailAfter
// script failures for the latter.
type SyntheticProvider struct {
	Width     int
	Height    int
	Interval  time.Duration
	OpenErr   error
	FailAfter int
}

// NewSyntheticProvider returns a provider with the default geometry and
// cadence.
func NewSyntheticProvider() *SyntheticProvider {
	return &SyntheticProvider{
		Width:    syntheticWidth,
		Height:   syntheticHeight,
		Interval: syntheticInterval,
	}
}

func (p *SyntheticProvider) Enumerate() ([]Descriptor, error) {
	return []Descriptor{{ID: "synthetic:0", Label: "Test pattern"}}, nil
}

func (p *SyntheticProvider) Open(d Descriptor) (Source, error) {
	if p.OpenErr != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDeviceUnavailable, d.ID, p.OpenErr)
	}
	return &syntheticSource{
		width:     p.Width,
		height:    p.Height,
		interval:  p.Interval,
		failAfter: p.FailAfter,
		next:      time.Now(),
		done:      make(chan struct{}),
	}, nil
}

type syntheticSource struct {
	width     int
	height    int
	interval  time.Duration
	failAfter int

	mu     sync.Mutex
	count  int
	next   time.Time
	closed bool

	done      chan struct{}
	closeOnce sync.Once
}

func (s *syntheticSource) NextFrame(timeout time.Duration) (Frame, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Frame{}, ErrStreamEnded
	}
	if s.failAfter > 0 && s.count >= s.failAfter {
		s.mu.Unlock()
		return Frame{}, ErrStreamEnded
	}
	wait := time.Until(s.next)
	s.mu.Unlock()

	if wait > timeout {
		select {
		case <-time.After(timeout):
			return Frame{}, ErrTimeout
		case <-s.done:
			return Frame{}, ErrStreamEnded
		}
	}
	if wait > 0 {
		select {
		case <-time.After(wait):
		case <-s.done:
			return Frame{}, ErrStreamEnded
		}
	}

	s.mu.Lock()
	phase := s.count
	s.count++
	s.next = time.Now().Add(s.interval)
	s.mu.Unlock()

	return Frame{
		Width:  s.width,
		Height: s.height,
		Pix:    renderTestPattern(s.width, s.height, phase),
		Format: FormatGray8,
		Stamp:  time.Now(),
	}, nil
}

func (s *syntheticSource) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.done)
	})
	return nil
}

// renderTestPattern draws a diagonal gradient that drifts with phase, with
// a stepped gray bar strip along the bottom eighth of the frame.
func renderTestPattern(width, height, phase int) []byte {
	pix := make([]byte, width*height)
	barTop := height - height/8
	if barTop <= 0 {
		barTop = height
	}
	for y := 0; y < height; y++ {
		row := y * width
		if y >= barTop {
			// Eight-step gray staircase, dark to light.
			for x := 0; x < width; x++ {
				step := x * 8 / width
				pix[row+x] = byte(step * 255 / 7)
			}
			continue
		}
		for x := 0; x < width; x++ {
			pix[row+x] = byte((x + y + phase*3) & 0xff)
		}
	}
	return pix
}
