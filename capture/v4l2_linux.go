//go:build linux

package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/blackjack/webcam"

	"glance/logs"
)

const (
	v4l2RequestWidth  = 320
	v4l2RequestHeight = 240
)

// v4l2Provider scans /dev for video nodes and opens them through the
// kernel V4L2 interface.
type v4l2Provider struct {
	devDir string
	sysDir string
}

// SystemProvider returns the platform camera provider.
func SystemProvider() Provider {
	return &v4l2Provider{devDir: "/dev", sysDir: "/sys/class/video4linux"}
}

func (p *v4l2Provider) Enumerate() ([]Descriptor, error) {
	matches, err := filepath.Glob(filepath.Join(p.devDir, "video*"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", p.devDir, err)
	}
	sort.Strings(matches)

	descs := make([]Descriptor, 0, len(matches))
	for _, path := range matches {
		descs = append(descs, Descriptor{ID: path, Label: p.deviceLabel(path)})
	}
	logs.V("[v4l2] enumerated %d device(s)", len(descs))
	return descs, nil
}

// deviceLabel reads the friendly card name from sysfs and falls back to
// the device path when the attribute is missing.
func (p *v4l2Provider) deviceLabel(devPath string) string {
	node := filepath.Base(devPath)
	raw, err := os.ReadFile(filepath.Join(p.sysDir, node, "name"))
	name := strings.TrimSpace(string(raw))
	if err != nil || name == "" {
		return devPath
	}
	return fmt.Sprintf("%s (%s)", name, devPath)
}

func (p *v4l2Provider) Open(d Descriptor) (Source, error) {
	cam, err := webcam.Open(d.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDeviceUnavailable, d.ID, err)
	}

	format, width, height, err := negotiateYUYV(cam)
	if err != nil {
		_ = cam.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrDeviceUnavailable, d.ID, err)
	}
	if err := cam.StartStreaming(); err != nil {
		_ = cam.Close()
		return nil, fmt.Errorf("%w: %s: start streaming: %v", ErrDeviceUnavailable, d.ID, err)
	}
	logs.V("[v4l2] %s open, format %08x %dx%d", d.ID, format, width, height)

	return &v4l2Source{cam: cam, width: int(width), height: int(height)}, nil
}

// negotiateYUYV picks a YUYV frame format near the requested size. The
// pipeline only consumes luminance, and YUYV carries the Y plane directly.
func negotiateYUYV(cam *webcam.Webcam) (webcam.PixelFormat, uint32, uint32, error) {
	for format, desc := range cam.GetSupportedFormats() {
		if !strings.Contains(desc, "YUYV") {
			continue
		}
		f, w, h, err := cam.SetImageFormat(format, v4l2RequestWidth, v4l2RequestHeight)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("set image format: %w", err)
		}
		return f, w, h, nil
	}
	return 0, 0, 0, fmt.Errorf("no YUYV format offered")
}

type v4l2Source struct {
	mu     sync.Mutex
	cam    *webcam.Webcam
	closed bool
	width  int
	height int
}

func (s *v4l2Source) NextFrame(timeout time.Duration) (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Frame{}, ErrStreamEnded
	}

	// WaitForFrame has one-second granularity; round up so a sub-second
	// bound still waits at all.
	secs := uint32((timeout + time.Second - 1) / time.Second)
	if secs == 0 {
		secs = 1
	}
	err := s.cam.WaitForFrame(secs)
	switch err.(type) {
	case nil:
	case *webcam.Timeout:
		return Frame{}, ErrTimeout
	default:
		return Frame{}, fmt.Errorf("%w: %v", ErrStreamEnded, err)
	}

	buf, err := s.cam.ReadFrame()
	if err != nil {
		return Frame{}, fmt.Errorf("%w: read frame: %v", ErrStreamEnded, err)
	}
	if len(buf) < s.width*s.height*2 {
		return Frame{}, ErrTimeout
	}
	return Frame{
		Width:  s.width,
		Height: s.height,
		Pix:    yuyvToGray(buf, s.width, s.height),
		Format: FormatGray8,
		Stamp:  time.Now(),
	}, nil
}

func (s *v4l2Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	_ = s.cam.StopStreaming()
	return s.cam.Close()
}

// yuyvToGray lifts the Y plane out of packed YUYV (Y0 U Y1 V).
func yuyvToGray(buf []byte, width, height int) []byte {
	total := width * height
	gray := make([]byte, total)
	for i := 0; i < total; i++ {
		gray[i] = buf[i*2]
	}
	return gray
}
