package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"glance/ascii"
	"glance/capture"
	"glance/conf"
	"glance/logs"
	"glance/ui"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "[glance] %v\n", err)
		os.Exit(1)
	}
}

func run() (err error) {
	opts, err := conf.ParseCLI(os.Args[1:])
	if err != nil {
		return err
	}
	if opts.ShowVersion {
		printVersion()
		return nil
	}

	ramp, err := ascii.RampByName(opts.RampName, opts.Invert)
	if err != nil {
		return err
	}

	logPath := conf.LogPath()
	closeLog, logErr := logs.Init(logPath, opts.Verbose)
	if closeLog != nil {
		defer closeLog()
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		if logErr == nil {
			fmt.Fprintf(os.Stderr, "[glance] logs: %s\n", logPath)
		} else {
			fmt.Fprintf(os.Stderr, "[glance] log file disabled (%v)\n", logErr)
		}
	}
	logs.V("glance %s starting", appVersion())

	appCtx, appCancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer appCancel()

	var provider capture.Provider = capture.SystemProvider()
	if opts.Synthetic {
		provider = capture.NewSyntheticProvider()
	}

	screen, err := ui.NewTermScreen()
	if err != nil {
		return fmt.Errorf("terminal init failed: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init failed: %w", err)
	}
	defer screen.Fini()

	loop := ui.NewLoop(screen, provider, ui.LoopOptions{
		FPS:          opts.FPS,
		Ramp:         ramp,
		FrameTimeout: time.Second,
	})
	if err := loop.Run(appCtx); err != nil {
		if errors.Is(err, context.Canceled) {
			logs.V("interrupted, shutting down")
			return nil
		}
		return err
	}
	return nil
}

func appVersion() string {
	v := strings.TrimSpace(version)
	if v == "" {
		v = "dev"
	}
	if bi, ok := debug.ReadBuildInfo(); ok && v == "dev" {
		if ver := strings.TrimSpace(bi.Main.Version); ver != "" && ver != "(devel)" {
			return ver
		}
		if derived := vcsVersion(bi); derived != "" {
			return derived
		}
	}
	return v
}

func vcsVersion(bi *debug.BuildInfo) string {
	revision := buildInfoSetting(bi, "vcs.revision")
	if revision == "" {
		return ""
	}
	short := revision
	if len(short) > 12 {
		short = short[:12]
	}
	dirty := ""
	if buildInfoSetting(bi, "vcs.modified") == "true" {
		dirty = "+dirty"
	}
	if ts := buildInfoSetting(bi, "vcs.time"); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			return fmt.Sprintf("v0.0.0-%s-%s%s", t.UTC().Format("20060102150405"), short, dirty)
		}
	}
	return short + dirty
}

func buildInfoSetting(bi *debug.BuildInfo, key string) string {
	for _, setting := range bi.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

func printVersion() {
	fmt.Printf("glance %s\n", appVersion())
}
