package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/stewi1014/glzoom/fractal"
)

const debug = true

//go:embed icon.png
var icon []byte

func init() {
	// glfw and GTK must stay on the main thread
	runtime.LockOSThread()
}

type options struct {
	backend       string
	width, height int
	snapshot      string
	at            time.Duration
	antialias     float64
}

func parseFlags(args []string) (fractal.Config, options, error) {
	cfg := fractal.DefaultConfig()
	opts := options{}

	fs := flag.NewFlagSet("glzoom", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	fs.StringVar(&opts.backend, "backend", "glfw", "presentation backend: glfw or gtk")
	fs.IntVar(&opts.width, "width", 1200, "window or snapshot width in pixels")
	fs.IntVar(&opts.height, "height", 800, "window or snapshot height in pixels")
	fs.StringVar(&opts.snapshot, "snapshot", "", "render one frame to this PNG file instead of opening a window")
	fs.DurationVar(&opts.at, "at", 10*time.Second, "elapsed time of the snapshot frame")
	fs.Float64Var(&opts.antialias, "antialias", 0, "snapshot antialias sample distance in pixels, 0 disables")

	if err := fs.Parse(args); err != nil {
		return cfg, opts, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, opts, err
	}
	if opts.width <= 0 || opts.height <= 0 {
		return cfg, opts, fmt.Errorf("size %vx%v must be positive", opts.width, opts.height)
	}
	return cfg, opts, nil
}

func main() {
	cfg, opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	mainContext, mainQuit := context.WithCancelCause(ctx)
	defer mainQuit(nil)

	log.Printf(
		"%v precision stays sharp to zoom %.1f at %v pixels high",
		cfg.Precision, cfg.Precision.SafeZoom(cfg.ScaleBase, opts.height, cfg.Center), opts.height,
	)

	switch {
	case opts.snapshot != "":
		err = save(mainContext, cfg, SaveOptions{
			Name:      opts.snapshot,
			Width:     opts.width,
			Height:    opts.height,
			Antialias: float32(opts.antialias),
			At:        opts.at,
		})
	case opts.backend == "glfw":
		err = glfwMain(mainContext, cfg, opts.width, opts.height)
	case opts.backend == "gtk":
		err = gtkMain(mainContext, cfg, opts.width, opts.height)
	default:
		err = fmt.Errorf("unknown backend %q", opts.backend)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		log.Println(err)
		stop()
		os.Exit(1)
	}
}
