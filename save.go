package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/stewi1014/glzoom/fractal"
	"github.com/stewi1014/glzoom/loop"
	"github.com/stewi1014/glzoom/programs"
)

type SaveOptions struct {
	Name          string
	Width, Height int
	Antialias     float32
	At            time.Duration
}

// save renders the frame shown after opts.At on the host and writes it as a
// PNG. A partial file is removed if rendering fails or is cancelled.
func save(ctx context.Context, cfg fractal.Config, opts SaveOptions) (err error) {
	state := loop.NewState(cfg, opts.Width, opts.Height)
	uniforms := state.Tick(opts.At)

	program, err := programs.ForPrecision(cfg.Precision)
	if err != nil {
		return err
	}

	image, err := program.GetImage(uniforms, opts.Width, opts.Height)
	if err != nil {
		return err
	}
	if opts.Antialias > 0 {
		image = programs.AntiAlias9x(image, opts.Antialias)
	}

	file, err := os.Create(opts.Name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(file.Name())
		}
	}()

	start := time.Now()
	if err := programs.WritePNG(ctx, file, image); err != nil {
		return fmt.Errorf("saving %v: %w", opts.Name, err)
	}

	view, params := state.View(), state.Params()
	log.Printf(
		"saved %v (%vx%v, zoom %.2f, %.0f iterations) in %v",
		opts.Name, opts.Width, opts.Height, view.Zoom, params.MaxIterations, time.Since(start),
	)
	return nil
}
