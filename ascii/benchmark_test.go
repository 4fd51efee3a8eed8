package ascii

import (
	"testing"

	"glance/capture"
)

// Benchmarks the full frame-to-grid conversion at a typical capture size
// and terminal geometry. The whole chain has to stay comfortably under
// one render tick (~41ms at 24 fps).

func benchFrame(w, h int) capture.Frame {
	pix := make([]byte, w*h)
	for i := range pix {
		pix[i] = byte((i*7 + i/w*13) & 0xff)
	}
	return capture.Frame{Width: w, Height: h, Pix: pix, Format: capture.FormatGray8}
}

func BenchmarkConvert(b *testing.B) {
	ramp, err := RampByName("classic", false)
	if err != nil {
		b.Fatalf("ramp: %v", err)
	}
	c := NewConverter(ramp)
	c.SetSize(80, 24)
	f := benchFrame(640, 480)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Convert(f); err != nil {
			b.Fatalf("convert failed: %v", err)
		}
	}
}

func BenchmarkSample(b *testing.B) {
	f := benchFrame(640, 480)
	dst := make([]uint8, 80*24)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Sample(f, 80, 24, dst); err != nil {
			b.Fatalf("sample failed: %v", err)
		}
	}
}

func BenchmarkDither(b *testing.B) {
	lum := make([]uint8, 80*24)
	for i := range lum {
		lum[i] = uint8((i * 29) & 0xff)
	}
	dst := make([]int, len(lum))
	carry := make([]float32, len(lum))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Dither(lum, 80, 24, 10, dst, carry); err != nil {
			b.Fatalf("dither failed: %v", err)
		}
	}
}
