package conf

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCLIDefaults(t *testing.T) {
	opts, err := ParseCLI(nil)
	require.NoError(t, err)
	require.False(t, opts.Verbose)
	require.False(t, opts.ShowVersion)
	require.Equal(t, DefaultFPS, opts.FPS)
	require.Equal(t, "classic", opts.RampName)
	require.False(t, opts.Invert)
	require.False(t, opts.Synthetic)
}

func TestParseCLIFlags(t *testing.T) {
	opts, err := ParseCLI([]string{"-v", "--fps", "12", "--ramp", "Blocks", "--invert", "--synthetic"})
	require.NoError(t, err)
	require.True(t, opts.Verbose)
	require.Equal(t, 12, opts.FPS)
	require.Equal(t, "blocks", opts.RampName, "ramp names are case-folded")
	require.True(t, opts.Invert)
	require.True(t, opts.Synthetic)
}

func TestParseCLIFPSRange(t *testing.T) {
	_, err := ParseCLI([]string{"--fps", "0"})
	require.Error(t, err)
	_, err = ParseCLI([]string{"--fps", "61"})
	require.Error(t, err)
	_, err = ParseCLI([]string{"--fps", "60"})
	require.NoError(t, err)
	_, err = ParseCLI([]string{"--fps", "1"})
	require.NoError(t, err)
}

func TestParseCLIRejectsPositionalArgs(t *testing.T) {
	_, err := ParseCLI([]string{"camera0"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "camera0")
}

func TestParseCLIUnknownFlag(t *testing.T) {
	_, err := ParseCLI([]string{"--color"})
	require.Error(t, err)
}

func TestLogPathHonorsXDGStateHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	require.Equal(t, filepath.Join(dir, "glance", "glance.log"), LogPath())
}
