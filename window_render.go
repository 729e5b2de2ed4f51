package main

import (
	"context"
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glzoom/fractal"
	"github.com/stewi1014/glzoom/loop"
	"github.com/stewi1014/glzoom/programs"
)

// frameInterval is how often the GTK backend queues a render, in milliseconds.
const frameInterval = 16

func gtkMain(ctx context.Context, cfg fractal.Config, width, height int) error {
	gtk.Init(nil)
	app, err := gtk.ApplicationNew("com.github.stewi1014.glzoom", glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return fmt.Errorf("gtk.ApplicationNew failed: %w", err)
	}

	program, err := programs.ForPrecision(cfg.Precision)
	if err != nil {
		return err
	}

	iconPixbuf, _ := gdk.PixbufNewFromBytesOnly(icon)

	appContext, appQuit := context.WithCancelCause(ctx)
	app.Connect("activate", func() {
		state := loop.NewState(cfg, width, height)
		clock := loop.NewPausableClock(loop.WallClock())

		renderWindow := NewRenderWindow(app, program, state, clock, appContext, appQuit)
		if renderWindow == nil {
			return
		}
		renderWindow.SetDefaultSize(width, height)
		renderWindow.Connect("destroy", func() {
			appQuit(nil)
		})
		renderWindow.SetTitle("GLZoom")
		if iconPixbuf != nil {
			renderWindow.SetIcon(iconPixbuf)
		}
	})

	go func() {
		<-appContext.Done()
		glib.IdleAdd(app.Quit)
	}()
	app.Run(nil)
	appQuit(nil)
	return context.Cause(appContext)
}

func NewRenderWindow(
	app *gtk.Application,
	program programs.Program,
	state *loop.State,
	clock *loop.PausableClock,
	ctx context.Context,
	quit context.CancelCauseFunc,
) *RenderWindow {
	var err error
	w := &RenderWindow{
		program: program,
		state:   state,
		clock:   clock,
		ctx:     ctx,
		quit:    quit,
	}

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.gla, err = gtk.GLAreaNew()
	if err != nil {
		quit(fmt.Errorf("gtk.GLAreaNew: %w", err))
		return nil
	}

	w.gla.SetRequiredVersion(4, 6)
	w.gla.Connect("realize", w.glaRealize)
	w.gla.Connect("render", w.glaRender)
	w.gla.Connect("unrealize", w.glaUnrealize)

	w.gla.SetEvents(
		int(gdk.BUTTON_PRESS_MASK) |
			int(gdk.BUTTON_RELEASE_MASK) |
			int(gdk.POINTER_MOTION_MASK),
	)
	w.gla.Connect("resize", w.resize)
	w.gla.Connect("button-press-event", w.button)
	w.gla.Connect("button-release-event", w.button)
	w.gla.Connect("motion-notify-event", w.motion)
	w.Connect("key-press-event", w.key)

	w.Add(w.gla)
	w.ShowAll()

	glib.TimeoutAdd(frameInterval, func() bool {
		if w.ctx.Err() != nil {
			return false
		}
		w.gla.QueueRender()
		return true
	})

	return w
}

// RenderWindow presents frames in a GTK GLArea.
type RenderWindow struct {
	*gtk.ApplicationWindow
	gla      *gtk.GLArea
	renderer *Renderer
	program  programs.Program

	state *loop.State
	clock *loop.PausableClock

	dragging bool
	dragPos  mgl64.Vec2
	skipped  loop.FrameErrors

	ctx  context.Context
	quit context.CancelCauseFunc
}

func (w *RenderWindow) glaRealize(gla *gtk.GLArea) {
	defer CatchPanicToContext(w.quit)
	gla.MakeCurrent()

	err := gl.Init()
	if err != nil {
		w.quit(fmt.Errorf("gl.Init: %w", err))
		return
	}
	log.Println("OpenGL version", gl.GoStr(gl.GetString(gl.VERSION)))

	w.renderer, err = NewRenderer(w.program)
	if err != nil {
		log.Println(err)
		NewErrorDialog(w.ApplicationWindow, err)
		w.quit(err)
	}
}

func (w *RenderWindow) glaRender(gla *gtk.GLArea) {
	defer CatchPanicToContext(w.quit)
	if w.renderer == nil {
		return
	}

	u := w.state.Tick(w.clock.Elapsed())

	gla.AttachBuffers()
	w.skipped.Report(w.renderer.Draw(u))
}

func (w *RenderWindow) glaUnrealize(gla *gtk.GLArea) {
	if w.renderer == nil {
		return
	}
	gla.MakeCurrent()
	w.renderer.Delete()
	w.renderer = nil
}

func (w *RenderWindow) resize(gla *gtk.GLArea, width, height int) {
	w.state.Resize(width, height)
}

// pointerPos converts widget coordinates to normalized screen units, y up.
func (w *RenderWindow) pointerPos(x, y float64) mgl64.Vec2 {
	width, height := w.gla.GetAllocatedWidth(), w.gla.GetAllocatedHeight()
	if width <= 0 || height <= 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{
		x/float64(width)*2 - 1,
		1 - y/float64(height)*2,
	}
}

func (w *RenderWindow) button(gla *gtk.GLArea, event *gdk.Event) {
	button := gdk.EventButtonNewFromEvent(event)
	if button.ButtonVal() != 1 {
		return
	}

	if button.Type() == gdk.EVENT_BUTTON_PRESS {
		w.dragging = true
		w.dragPos = w.pointerPos(button.X(), button.Y())
	} else if button.Type() == gdk.EVENT_BUTTON_RELEASE {
		w.dragging = false
	}
}

func (w *RenderWindow) motion(gla *gtk.GLArea, event *gdk.Event) {
	if !w.dragging {
		return
	}

	pos := w.pointerPos(gdk.EventMotionNewFromEvent(event).MotionVal())
	w.state.Pan(pos.Sub(w.dragPos))
	w.dragPos = pos
}

func (w *RenderWindow) key(win *gtk.ApplicationWindow, event *gdk.Event) {
	switch gdk.EventKeyNewFromEvent(event).KeyVal() {
	case gdk.KEY_Escape:
		w.Close()
	case gdk.KEY_space:
		w.clock.Toggle()
		log.Printf("paused: %v", w.clock.Paused())
	}
}
