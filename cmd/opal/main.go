package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/leterax/opal/pkg/app"
	"github.com/leterax/opal/pkg/log"
)

var (
	bindingsPath = flag.String("bindings", "", "key bindings file (.yaml, .yml or .toml), reloaded on change")
	recordPath   = flag.String("record", "", "record input to this file")
	replayPath   = flag.String("replay", "", "replay input recorded with -record")
	width        = flag.Int("width", 1280, "window width")
	height       = flag.Int("height", 720, "window height")
	vsync        = flag.Bool("vsync", true, "wait for vertical sync")
	noOverlay    = flag.Bool("nooverlay", false, "hide the statistics overlay")
	logLevel     = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir       = flag.String("logdir", "", "log file directory")
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir)
	fmt.Printf("Logging to %s\n", lg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := app.New(app.Options{
		Title:        "opal",
		Width:        *width,
		Height:       *height,
		VSync:        *vsync,
		Overlay:      !*noOverlay,
		Camera:       true,
		BindingsPath: *bindingsPath,
		RecordPath:   *recordPath,
		ReplayPath:   *replayPath,
	}, lg)
	if err != nil {
		lg.Errorf("Failed to start: %v", err)
		os.Exit(1)
	}

	runErr := a.Run(ctx)
	if err := a.Close(); err != nil {
		lg.Errorf("Shutdown: %v", err)
	}
	if runErr != nil {
		lg.Errorf("%v", runErr)
		os.Exit(1)
	}
}
