// Package app runs the window event loop and wires the input manager,
// camera, scene and overlay together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/opal/internal/openglhelper"
	"github.com/leterax/opal/pkg/bindings"
	"github.com/leterax/opal/pkg/input"
	"github.com/leterax/opal/pkg/log"
	"github.com/leterax/opal/pkg/overlay"
	"github.com/leterax/opal/pkg/render"
	"github.com/leterax/opal/pkg/stats"
)

// Radians of field of view per scroll step.
const zoomStep = 0.05

type Options struct {
	Title         string
	Width, Height int
	VSync         bool

	// Overlay shows the statistics panel.
	Overlay bool
	// Camera enables keyboard and mouse control of the camera. Without it
	// the view stays at StartPose.
	Camera    bool
	StartPose render.Pose

	// Optional bindings file, reloaded when it changes.
	BindingsPath string
	// Optional input recording written during the run, or replayed in
	// place of live input. Both require Camera.
	RecordPath string
	ReplayPath string

	// Applied while the mouse is captured.
	LookSensitivity float32
	StatsInterval   time.Duration
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "opal"
	}
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.StartPose == (render.Pose{}) {
		o.StartPose = render.PoseLookingAt(mgl32.Vec3{2, 1.5, 3}, mgl32.Vec3{})
	}
	if o.LookSensitivity <= 0 {
		o.LookSensitivity = render.DefaultLookSensitivity
	}
	if o.StatsInterval <= 0 {
		o.StatsInterval = 10 * time.Second
	}
	return o
}

func (o Options) validate() error {
	if !o.Camera && (o.RecordPath != "" || o.ReplayPath != "" || o.BindingsPath != "") {
		return errors.New("bindings, recording and replay require camera control")
	}
	if o.BindingsPath != "" && !bindings.Supported(o.BindingsPath) {
		return fmt.Errorf("%s: bindings must be .yaml, .yml or .toml", o.BindingsPath)
	}
	if o.RecordPath != "" && o.RecordPath == o.ReplayPath {
		return fmt.Errorf("%s: cannot record and replay the same file", o.RecordPath)
	}
	return nil
}

// App owns every per-run component. It must be created and run on the
// main thread.
type App struct {
	opts Options
	lg   *log.Logger

	window     *openglhelper.Window
	scene      *render.Scene
	projection *render.Projection
	overlay    *overlay.Overlay

	input  *input.Manager
	camera *render.CameraController
	view   render.Pose

	recordFile *os.File
	recorder   *input.Recorder
	replayFile *os.File
	player     *input.Player

	frames *stats.FrameStats
	frame  uint64
	events []input.Event
}

func New(opts Options, lg *log.Logger) (*App, error) {
	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	a := &App{
		opts:   opts,
		lg:     lg,
		view:   opts.StartPose,
		frames: stats.NewFrameStats(stats.DefaultWindow),
	}
	if err := a.init(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init() error {
	var err error
	a.window, err = openglhelper.NewWindow(a.opts.Width, a.opts.Height, a.opts.Title, a.opts.VSync)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	a.lg.Info("window created", slog.String("gl_version", a.window.GLVersion()),
		slog.Int("width", a.opts.Width), slog.Int("height", a.opts.Height))
	a.window.SetEventHandler(func(ev input.Event) {
		a.events = append(a.events, ev)
	})

	if a.scene, err = render.NewScene(); err != nil {
		return err
	}
	a.projection = render.NewProjection(a.window.FramebufferSize())

	if a.opts.Overlay {
		if a.overlay, err = overlay.New(a.lg); err != nil {
			return err
		}
	}

	if !a.opts.Camera {
		return nil
	}

	b := bindings.Default()
	if a.opts.BindingsPath != "" {
		if b, err = bindings.Load(a.opts.BindingsPath); err != nil {
			return err
		}
		a.lg.Infof("%s: loaded bindings", a.opts.BindingsPath)
	}
	a.input = input.NewManager()
	a.camera = render.NewCameraController(a.opts.StartPose, b)

	if a.opts.RecordPath != "" {
		if a.recordFile, err = os.Create(a.opts.RecordPath); err != nil {
			return err
		}
		if a.recorder, err = input.NewRecorder(a.recordFile); err != nil {
			return err
		}
		a.lg.Infof("%s: recording input", a.opts.RecordPath)
	}
	if a.opts.ReplayPath != "" {
		if a.replayFile, err = os.Open(a.opts.ReplayPath); err != nil {
			return err
		}
		if a.player, err = input.NewPlayer(a.replayFile); err != nil {
			return err
		}
		a.lg.Infof("%s: replaying input", a.opts.ReplayPath)
	}
	return nil
}

// Run drives the event loop until the window is closed, the exit action
// fires or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var reload <-chan bindings.Bindings
	if a.opts.BindingsPath != "" {
		var err error
		if reload, err = bindings.Watch(ctx, a.opts.BindingsPath, a.lg); err != nil {
			a.lg.Warnf("%s: hot reload disabled: %v", a.opts.BindingsPath, err)
		}
	}

	var cpu *stats.CPUSampler
	if a.opts.Overlay {
		cpu = stats.StartCPUSampler(ctx, a.lg)
		defer func() {
			cancel()
			cpu.Wait()
		}()
	}

	last := a.window.Time()
	lastLog := time.Now()
	for !a.window.ShouldClose() && ctx.Err() == nil {
		select {
		case b, ok := <-reload:
			if ok {
				a.camera.SetBindings(b)
			}
		default:
		}

		now := a.window.Time()
		dt := float32(now - last)
		last = now
		a.frames.Add(time.Duration(float64(dt) * float64(time.Second)))

		if err := a.step(dt); err != nil {
			return err
		}
		if a.recorder != nil {
			if err := a.recorder.Flush(); err != nil {
				return fmt.Errorf("%s: %w", a.opts.RecordPath, err)
			}
		}
		a.draw(dt, cpu)
		a.window.SwapBuffers()
		a.frame++

		if time.Since(lastLog) > a.opts.StatsInterval {
			a.lg.Info("performance", slog.Any("stats", a.frames), slog.Any("cpu", cpu))
			a.window.SetTitle(fmt.Sprintf("%s (%.0f fps)", a.opts.Title, a.frames.Summary().FPS))
			lastLog = time.Now()
		}
	}

	a.lg.Info("exiting", slog.Uint64("frames", a.frame), slog.Any("stats", a.frames))
	return nil
}

// step gathers this frame's events and updates the camera from them.
func (a *App) step(dt float32) error {
	a.events = a.events[:0]
	a.window.PollEvents()

	events := a.events
	if a.player != nil {
		replayed, err := a.player.Next(a.frame)
		if err != nil {
			return fmt.Errorf("%s: %w", a.opts.ReplayPath, err)
		}
		events = a.replace(events, replayed)
		if a.player.Done() {
			a.lg.Infof("%s: replay finished, switching to live input", a.opts.ReplayPath)
			a.closePlayer()
		}
	}

	for _, ev := range events {
		if err := a.handle(ev); err != nil {
			return err
		}
	}

	if a.camera == nil {
		return nil
	}

	if a.input.IsJustPressed(input.KeyC) {
		a.window.ToggleMouseCaptured()
		a.lg.Debugf("mouse captured: %v", a.window.IsMouseCaptured())
	}
	if a.window.IsMouseCaptured() {
		a.camera.LookSensitivity = a.opts.LookSensitivity
	} else {
		a.camera.LookSensitivity = 0
	}

	var exit bool
	a.view, exit = a.camera.Update(a.input, dt)
	if exit {
		a.window.SetShouldClose(true)
	}
	a.input.AdvanceFrame()
	return nil
}

// replace drops the live input events while a replay is running; window
// lifecycle events still come from the live window.
func (a *App) replace(live, replayed []input.Event) []input.Event {
	out := live[:0]
	for _, ev := range live {
		switch ev.(type) {
		case input.CloseRequested, input.Resized:
			out = append(out, ev)
		}
	}
	for _, ev := range replayed {
		if _, ok := ev.(input.Resized); !ok {
			out = append(out, ev)
		}
	}
	return out
}

func (a *App) handle(ev input.Event) error {
	switch e := ev.(type) {
	case input.CloseRequested:
		a.window.SetShouldClose(true)
	case input.Resized:
		a.projection.Resize(e.Width, e.Height)
	case input.KeyDown:
		// Without camera control there are no bindings, so Escape closes.
		if a.camera == nil && e.Key == input.KeyEscape {
			a.window.SetShouldClose(true)
		}
	case input.Scroll:
		if a.camera != nil {
			a.projection.SetFOV(a.projection.FOV() - e.DY*zoomStep)
		}
	}

	if a.input != nil {
		a.input.Record(ev)
	}
	if a.recorder != nil {
		if err := a.recorder.Write(a.frame, ev); err != nil {
			return fmt.Errorf("%s: %w", a.opts.RecordPath, err)
		}
	}
	return nil
}

func (a *App) draw(dt float32, cpu *stats.CPUSampler) {
	a.window.Clear(a.scene.Background)
	a.scene.Draw(a.view.ViewMatrix(), a.projection.Matrix(), a.view.Position)

	if a.overlay == nil {
		return
	}
	panel := overlay.Panel{
		Frames: a.frames.Frames(),
		Frame:  a.frames.Summary(),
		CPU:    cpu.Percent(),
	}
	if a.camera != nil {
		pose := a.view
		panel.Pose = &pose
		panel.Held = a.input.HeldKeys()
		if a.player != nil {
			panel.Notes = append(panel.Notes, "replaying input")
		}
		if a.recorder != nil {
			panel.Notes = append(panel.Notes, fmt.Sprintf("recording (%d events)", a.recorder.Count()))
		}
	}

	w, h := a.window.Size()
	fw, fh := a.window.FramebufferSize()
	a.overlay.Frame([2]float32{float32(w), float32(h)}, [2]float32{float32(fw), float32(fh)}, dt,
		func() { overlay.DrawStats(panel) })
}

func (a *App) closePlayer() {
	if a.player != nil {
		a.player.Close()
		a.player = nil
	}
	if a.replayFile != nil {
		a.replayFile.Close()
		a.replayFile = nil
	}
}

// Close releases everything New created. It is safe to call on a
// partially initialized App.
func (a *App) Close() error {
	var errs []error
	if a.recorder != nil {
		errs = append(errs, a.recorder.Close())
	}
	if a.recordFile != nil {
		errs = append(errs, a.recordFile.Close())
	}
	a.closePlayer()

	if a.overlay != nil {
		a.overlay.Dispose()
	}
	if a.scene != nil {
		a.scene.Delete()
	}
	if a.window != nil {
		a.window.Close()
	}
	return errors.Join(errs...)
}
