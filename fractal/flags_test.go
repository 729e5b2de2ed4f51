package fractal

import (
	"flag"
	"io"
	"testing"
)

func TestRegisterFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.RegisterFlags(fs)

	err := fs.Parse([]string{
		"-zoom-speed", "0.5",
		"-threshold", "16",
		"-center-re", "-1.25",
		"-precision", "single",
		"-colouring", "bands",
		"-smooth",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.ZoomSpeed != 0.5 || cfg.Threshold != 16 || cfg.Center[0] != -1.25 {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.Center[1] != SeahorseSpiral[1] {
		t.Fatalf("unset flag changed center-im to %v", cfg.Center[1])
	}
	if cfg.Precision != Single || cfg.Colouring != Bands || !cfg.Smooth {
		t.Fatalf("flag values not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestRegisterFlagsRejectsUnknownPrecision(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.RegisterFlags(fs)

	if err := fs.Parse([]string{"-precision", "half"}); err == nil {
		t.Fatal("Parse accepted precision half")
	}
	if cfg.Precision != Double {
		t.Fatalf("precision = %v after a rejected flag", cfg.Precision)
	}
}
