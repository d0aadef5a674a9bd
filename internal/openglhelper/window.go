package openglhelper

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/opal/pkg/input"
)

// Window handles GLFW window creation and management
type Window struct {
	glfwWindow    *glfw.Window
	width         int
	height        int
	title         string
	mouseCaptured bool

	handler func(input.Event)

	// Last cursor position, for turning absolute positions into deltas.
	cursorX, cursorY float64
	haveCursor       bool
}

// NewWindow creates a new GLFW window with an OpenGL 4.6 core context. It
// must be called from the main thread.
func NewWindow(width, height int, title string, vsync bool) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	glfwWindow, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create GLFW window: %w", err)
	}

	glfwWindow.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		glfwWindow.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	w := &Window{
		glfwWindow: glfwWindow,
		width:      width,
		height:     height,
		title:      title,
	}
	glfwWindow.SetKeyCallback(w.keyCallback)
	glfwWindow.SetCursorPosCallback(w.cursorPosCallback)
	glfwWindow.SetScrollCallback(w.scrollCallback)
	glfwWindow.SetCloseCallback(w.closeCallback)
	glfwWindow.SetFramebufferSizeCallback(w.framebufferSizeCallback)
	glfwWindow.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
	})

	return w, nil
}

// SetEventHandler registers the function that receives the window's input
// and lifecycle events. Events are delivered from PollEvents on the calling
// thread.
func (w *Window) SetEventHandler(h func(input.Event)) {
	w.handler = h
}

func (w *Window) emit(ev input.Event) {
	if w.handler != nil {
		w.handler(ev)
	}
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, _ glfw.ModifierKey) {
	// Auto-repeat does not change whether a key is held.
	switch action {
	case glfw.Press:
		w.emit(input.KeyDown{ScanCode: input.ScanCode(scancode), Key: input.Key(key)})
	case glfw.Release:
		w.emit(input.KeyUp{ScanCode: input.ScanCode(scancode), Key: input.Key(key)})
	}
}

func (w *Window) cursorPosCallback(_ *glfw.Window, x, y float64) {
	if !w.haveCursor {
		w.cursorX, w.cursorY = x, y
		w.haveCursor = true
		return
	}
	dx, dy := x-w.cursorX, y-w.cursorY
	w.cursorX, w.cursorY = x, y
	w.emit(input.PointerMotion{DX: float32(dx), DY: float32(dy)})
}

func (w *Window) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	w.emit(input.Scroll{DX: float32(xoff), DY: float32(yoff)})
}

func (w *Window) closeCallback(_ *glfw.Window) {
	w.emit(input.CloseRequested{})
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	w.emit(input.Resized{Width: width, Height: height})
}

// Clear clears the color and depth buffers
func (w *Window) Clear(color mgl32.Vec4) {
	gl.ClearColor(color.X(), color.Y(), color.Z(), color.W())
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (w *Window) SwapBuffers() {
	w.glfwWindow.SwapBuffers()
}

// PollEvents processes pending events, invoking the event handler for each.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) ShouldClose() bool {
	return w.glfwWindow.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.glfwWindow.SetShouldClose(v)
}

// Close destroys the window and releases GLFW
func (w *Window) Close() {
	w.glfwWindow.Destroy()
	glfw.Terminate()
}

// Size returns the window dimensions in screen coordinates
func (w *Window) Size() (width, height int) {
	return w.width, w.height
}

// FramebufferSize returns the drawable size in pixels, which differs from
// Size on high-DPI displays.
func (w *Window) FramebufferSize() (width, height int) {
	return w.glfwWindow.GetFramebufferSize()
}

func (w *Window) SetTitle(title string) {
	w.title = title
	w.glfwWindow.SetTitle(title)
}

// Time returns seconds since GLFW was initialized
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

// GLVersion returns the version string of the current context
func (w *Window) GLVersion() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// SetMouseCaptured hides the cursor and switches to unbounded relative
// motion, or restores the normal cursor.
func (w *Window) SetMouseCaptured(captured bool) {
	w.mouseCaptured = captured
	// The cursor jumps when the mode changes; don't report that as motion.
	w.haveCursor = false

	if captured {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			w.glfwWindow.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
	} else {
		w.glfwWindow.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (w *Window) ToggleMouseCaptured() {
	w.SetMouseCaptured(!w.mouseCaptured)
}

func (w *Window) IsMouseCaptured() bool {
	return w.mouseCaptured
}
