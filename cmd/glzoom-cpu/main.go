// Command glzoom-cpu renders the zoom on the host, shading pixels in
// parallel goroutines, and shows the frames in an ebiten window.
package main

import (
	"context"
	"errors"
	"flag"
	"image"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/stewi1014/glzoom/fractal"
	"github.com/stewi1014/glzoom/loop"
	"github.com/stewi1014/glzoom/programs"
)

func main() {
	cfg := fractal.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	width := flag.Int("width", 960, "window width in pixels")
	height := flag.Int("height", 640, "window height in pixels")
	downscale := flag.Int("downscale", 2, "render at 1/n of the window resolution")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *downscale < 1 {
		*downscale = 1
	}

	program, err := programs.ForPrecision(cfg.Precision)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := &game{
		ctx:          ctx,
		program:      program,
		state:        loop.NewState(cfg, *width / *downscale, *height / *downscale),
		clock:        loop.NewPausableClock(loop.WallClock()),
		downscale:    *downscale,
		buff:         image.NewRGBA(image.Rect(0, 0, 1, 1)),
		layoutWidth:  *width / *downscale,
		layoutHeight: *height / *downscale,
	}

	log.Printf("%v precision stays sharp to zoom %.1f", cfg.Precision, g.state.SafeZoom())

	ebiten.SetWindowTitle("GLZoom (cpu)")
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

type game struct {
	ctx       context.Context
	program   programs.Program
	state     *loop.State
	clock     *loop.PausableClock
	downscale int

	uniforms programs.Uniforms
	buff     *image.RGBA
	skipped  loop.FrameErrors

	layoutWidth, layoutHeight int

	dragging bool
	dragPos  mgl64.Vec2
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.clock.Toggle()
		log.Printf("paused: %v", g.clock.Paused())
	}
	g.drag()

	g.uniforms = g.state.Tick(g.clock.Elapsed())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	size := screen.Bounds().Size()

	img, err := g.program.GetImage(g.uniforms, size.X, size.Y)
	if err == nil {
		err = programs.Render(g.ctx, img, g.buff)
	}
	if g.skipped.Report(err) {
		screen.WritePixels(g.buff.Pix)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	width, height := outsideWidth/g.downscale, outsideHeight/g.downscale
	if width != g.layoutWidth || height != g.layoutHeight {
		g.layoutWidth, g.layoutHeight = width, height
		g.state.Resize(width, height)
	}
	return max(width, 1), max(height, 1)
}

func (g *game) drag() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = false
		return
	}

	pos := g.cursorPos()
	if g.dragging {
		g.state.Pan(pos.Sub(g.dragPos))
	}
	g.dragging = true
	g.dragPos = pos
}

// cursorPos is the cursor in normalized screen units, y up.
func (g *game) cursorPos() mgl64.Vec2 {
	x, y := ebiten.CursorPosition()
	width, height := g.state.Size()
	return mgl64.Vec2{
		(float64(x)+0.5)/float64(width)*2 - 1,
		1 - (float64(y)+0.5)/float64(height)*2,
	}
}
