package main

import (
	"context"
	"flag"
	"os"
	"runtime"

	"github.com/leterax/opal/pkg/app"
	"github.com/leterax/opal/pkg/log"
)

func init() {
	// This is needed to ensure that the OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	logLevel := flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir := flag.String("logdir", "", "log file directory")
	flag.Parse()

	lg := log.New(*logLevel, *logDir)

	a, err := app.New(app.Options{Title: "opal - cube", VSync: true}, lg)
	if err != nil {
		lg.Errorf("Failed to start: %v", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(context.Background()); err != nil {
		lg.Errorf("%v", err)
	}
}
