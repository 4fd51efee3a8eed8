// Package conf parses the command line and resolves filesystem paths.
// glance keeps no configuration file; flags are the whole surface.
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
)

const (
	// DefaultFPS is the render tick rate when --fps is not given.
	DefaultFPS = 24
	minFPS     = 1
	maxFPS     = 60
)

// Options aggregates all CLI flags.
type Options struct {
	Verbose     bool
	ShowVersion bool
	FPS         int
	RampName    string
	Invert      bool
	Synthetic   bool
}

// ParseCLI parses args (without the program name) into Options. It only
// validates what it owns; the ramp name is checked where ramps live.
func ParseCLI(args []string) (*Options, error) {
	opts := &Options{}

	fs := flag.NewFlagSet("glance", flag.ContinueOnError)
	fs.SortFlags = false
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVar(&opts.ShowVersion, "version", false, "print version and exit")
	fs.IntVar(&opts.FPS, "fps", DefaultFPS, "render ticks per second")
	fs.StringVar(&opts.RampName, "ramp", "classic", "glyph ramp: classic, blocks or dense")
	fs.BoolVar(&opts.Invert, "invert", false, "reverse the glyph ramp (dark terminals)")
	fs.BoolVar(&opts.Synthetic, "synthetic", false, "use the built-in test pattern instead of a camera")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("unexpected positional arguments: %v", rest)
	}
	if opts.FPS < minFPS || opts.FPS > maxFPS {
		return nil, fmt.Errorf("fps %d out of range [%d, %d]", opts.FPS, minFPS, maxFPS)
	}
	opts.RampName = strings.ToLower(strings.TrimSpace(opts.RampName))
	return opts, nil
}

// LogPath resolves the log file location: $XDG_STATE_HOME/glance/glance.log,
// falling back to ~/.local/state and finally the working directory.
func LogPath() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); dir != "" {
		return filepath.Join(dir, "glance", "glance.log")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "glance", "glance.log")
	}
	return "glance.log"
}
