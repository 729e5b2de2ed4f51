package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glzoom/fractal"
	"github.com/stewi1014/glzoom/loop"
	"github.com/stewi1014/glzoom/programs"
)

func glfwMain(ctx context.Context, cfg fractal.Config, width, height int) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw.Init failed: %w", err)
	}
	defer glfw.Terminate()

	program, err := programs.ForPrecision(cfg.Precision)
	if err != nil {
		return err
	}

	state := loop.NewState(cfg, width, height)
	clock := loop.NewPausableClock(glfwClock())

	w, err := NewGLFWWindow(width, height, program, state, clock)
	if err != nil {
		return err
	}
	defer w.Destroy()

	return loop.Run(ctx, w, clock, state)
}

// glfwClock reads glfw's timer, restarted from zero.
func glfwClock() loop.Clock {
	glfw.SetTime(0)
	return loop.ClockFunc(func() time.Duration {
		return time.Duration(glfw.GetTime() * float64(time.Second))
	})
}

func NewGLFWWindow(
	width, height int,
	program programs.Program,
	state *loop.State,
	clock *loop.PausableClock,
) (*GLFWWindow, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	window, err := glfw.CreateWindow(
		width,
		height,
		"GLZoom",
		nil,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}

	w := &GLFWWindow{
		Window: window,
		state:  state,
		clock:  clock,
	}

	w.MakeContextCurrent()
	err = gl.Init()
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("gl.Init failed: %w", err)
	}
	log.Println("OpenGL version", gl.GoStr(gl.GetString(gl.VERSION)))
	glfw.SwapInterval(1)

	w.renderer, err = NewRenderer(program)
	if err != nil {
		window.Destroy()
		return nil, err
	}

	w.SetFramebufferSizeCallback(w.resize)
	w.SetKeyCallback(w.key)
	w.SetMouseButtonCallback(w.button)
	w.SetCursorPosCallback(w.cursor)

	fbWidth, fbHeight := w.GetFramebufferSize()
	state.Resize(fbWidth, fbHeight)
	return w, nil
}

// GLFWWindow presents frames in a glfw window.
type GLFWWindow struct {
	*glfw.Window
	renderer *Renderer
	state    *loop.State
	clock    *loop.PausableClock

	dragging bool
	dragPos  mgl64.Vec2
}

func (w *GLFWWindow) PollEvents() {
	glfw.PollEvents()
}

func (w *GLFWWindow) Present(u programs.Uniforms) error {
	if err := w.renderer.Draw(u); err != nil {
		return err
	}
	w.SwapBuffers()
	return nil
}

func (w *GLFWWindow) Destroy() {
	w.MakeContextCurrent()
	w.renderer.Delete()
	w.Window.Destroy()
}

func (w *GLFWWindow) resize(_ *glfw.Window, width, height int) {
	w.state.Resize(width, height)
}

func (w *GLFWWindow) key(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	switch key {
	case glfw.KeyEscape:
		w.SetShouldClose(true)
	case glfw.KeySpace:
		w.clock.Toggle()
		log.Printf("paused: %v", w.clock.Paused())
	}
}

func (w *GLFWWindow) button(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}

	w.dragging = action == glfw.Press
	if w.dragging {
		w.dragPos = w.cursorPos()
	}
}

func (w *GLFWWindow) cursor(_ *glfw.Window, _, _ float64) {
	if !w.dragging {
		return
	}

	pos := w.cursorPos()
	w.state.Pan(pos.Sub(w.dragPos))
	w.dragPos = pos
}

// cursorPos is the cursor in normalized screen units, y up.
func (w *GLFWWindow) cursorPos() mgl64.Vec2 {
	x, y := w.GetCursorPos()
	width, height := w.GetSize()
	if width <= 0 || height <= 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{
		x/float64(width)*2 - 1,
		1 - y/float64(height)*2,
	}
}
