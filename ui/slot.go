package ui

import (
	"sync"
	"time"

	"glance/capture"
)

// frameSlot is a single-cell exchange between the capture goroutine and
// the render loop. The writer always overwrites; the reader takes the
// newest frame and uses the sequence number to tell stale from fresh.
// Frames that arrive faster than the render tick are silently dropped.
type frameSlot struct {
	mu        sync.Mutex
	frame     capture.Frame
	seq       uint64
	updatedAt time.Time
}

func (s *frameSlot) publish(f capture.Frame) {
	s.mu.Lock()
	s.frame = f
	s.seq++
	s.updatedAt = time.Now()
	s.mu.Unlock()
}

func (s *frameSlot) snapshot() (capture.Frame, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame, s.seq
}

func (s *frameSlot) reset() {
	s.mu.Lock()
	s.frame = capture.Frame{}
	s.seq = 0
	s.updatedAt = time.Time{}
	s.mu.Unlock()
}
