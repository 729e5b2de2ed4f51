package main

import (
	"context"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/stewi1014/glzoom/fractal"
)

func TestParseFlags(t *testing.T) {
	cfg, opts, err := parseFlags([]string{
		"-backend", "gtk",
		"-precision", "single",
		"-snapshot", "out.png",
		"-at", "3s",
		"-width", "320",
	})
	if err != nil {
		t.Fatal(err)
	}
	if opts.backend != "gtk" || opts.snapshot != "out.png" || opts.at != 3*time.Second {
		t.Fatalf("options = %+v", opts)
	}
	if opts.width != 320 || opts.height != 800 {
		t.Fatalf("size = %vx%v", opts.width, opts.height)
	}
	if cfg.Precision != fractal.Single {
		t.Fatalf("precision = %v", cfg.Precision)
	}
}

func TestParseFlagsRejects(t *testing.T) {
	for _, args := range [][]string{
		{"-width", "0"},
		{"-iter-growth", "1"},
		{"-precision", "quad"},
	} {
		if _, _, err := parseFlags(args); err == nil {
			t.Errorf("parseFlags(%q) succeeded", args)
		}
	}
	if _, _, err := parseFlags([]string{"-h"}); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("parseFlags(-h) = %v, want flag.ErrHelp", err)
	}
}

func TestCatchPanicToContext(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())
	func() {
		defer CatchPanicToContext(cancel)
		panic("shader exploded")
	}()

	err := context.Cause(ctx)
	if err == nil || !strings.Contains(err.Error(), "shader exploded") {
		t.Fatalf("cause = %v", err)
	}
	if !strings.Contains(err.Error(), "goroutine") {
		t.Fatalf("cause carries no stack: %v", err)
	}
}
