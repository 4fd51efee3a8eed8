//go:build darwin

package capture

import (
	"context"
	"fmt"
	"time"

	gocam "github.com/svanichkin/gocam"

	"glance/logs"
)

// avfProvider captures through AVFoundation via gocam. gocam only drives
// the system default device, so enumeration reports a single descriptor.
type avfProvider struct{}

// SystemProvider returns the platform camera provider.
func SystemProvider() Provider {
	return avfProvider{}
}

func (avfProvider) Enumerate() ([]Descriptor, error) {
	return []Descriptor{{ID: "avf:default", Label: "Default camera (AVFoundation)"}}, nil
}

func (avfProvider) Open(d Descriptor) (Source, error) {
	ctx, cancel := context.WithCancel(context.Background())
	frames, err := gocam.StartStream(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: %s: %v", ErrDeviceUnavailable, d.ID, err)
	}
	logs.V("[avf] %s open", d.ID)
	return &avfSource{frames: frames, cancel: cancel}, nil
}

type avfSource struct {
	frames <-chan gocam.Frame
	cancel context.CancelFunc
}

func (s *avfSource) NextFrame(timeout time.Duration) (Frame, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case f, ok := <-s.frames:
		if !ok {
			return Frame{}, ErrStreamEnded
		}
		if f.Width <= 0 || f.Height <= 0 || len(f.Data) < f.Width*f.Height*3 {
			return Frame{}, ErrTimeout
		}
		return Frame{
			Width:  f.Width,
			Height: f.Height,
			Pix:    f.Data,
			Format: FormatRGB24,
			Stamp:  time.Now(),
		}, nil
	case <-timer.C:
		return Frame{}, ErrTimeout
	}
}

func (s *avfSource) Close() error {
	s.cancel()
	return nil
}
