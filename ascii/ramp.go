package ascii

import (
	"fmt"
	"sort"
	"strings"
)

// Glyph ramps ordered from sparse/light to dense/dark. "classic" is the
// traditional ten-step ASCII ramp; "blocks" uses Unicode shade blocks;
// "dense" trades flicker for tonal resolution.
var ramps = map[string]string{
	"classic": " .:-=+*#%@",
	"blocks":  " ░▒▓█",
	"dense":   " .,:;i1tfLCG08@",
}

// Ramp maps quantized brightness levels to glyphs. It is immutable and
// safe for concurrent use.
type Ramp struct {
	glyphs []rune
}

// RampByName looks up a named ramp, optionally reversed so dense glyphs
// stand for bright cells (useful on dark-on-light terminals).
func RampByName(name string, invert bool) (Ramp, error) {
	s, ok := ramps[name]
	if !ok {
		return Ramp{}, fmt.Errorf("unknown ramp %q (have: %s)", name, strings.Join(rampNames(), ", "))
	}
	glyphs := []rune(s)
	if invert {
		for i, j := 0, len(glyphs)-1; i < j; i, j = i+1, j-1 {
			glyphs[i], glyphs[j] = glyphs[j], glyphs[i]
		}
	}
	return Ramp{glyphs: glyphs}, nil
}

// Len returns the number of brightness levels the ramp distinguishes.
func (r Ramp) Len() int {
	return len(r.glyphs)
}

// Glyph returns the character for a quantized level, clamping levels
// outside [0, Len-1].
func (r Ramp) Glyph(level int) rune {
	if level < 0 {
		level = 0
	}
	if level >= len(r.glyphs) {
		level = len(r.glyphs) - 1
	}
	return r.glyphs[level]
}

func rampNames() []string {
	names := make([]string, 0, len(ramps))
	for name := range ramps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
