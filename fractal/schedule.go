package fractal

import (
	"math"
	"time"
)

// Schedule derives zoom, iteration cap and colour ramp from elapsed time.
//
// Zoom grows linearly in time; combined with Scale this magnifies the view
// exponentially. The iteration cap follows
//
//	K * log10(Growth^zoom * C)^Power
//
// which keeps detail near the boundary resolved while growing sub-linearly
// in zoom.
type Schedule struct {
	ZoomSpeed float64
	K         float64
	Growth    float64
	C         float64
	Power     float64
}

// Zoom returns the zoom level after elapsed time. Negative durations are
// treated as zero.
func (s Schedule) Zoom(elapsed time.Duration) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed.Seconds() * s.ZoomSpeed
}

// Iterations returns the iteration cap for a zoom level.
func (s Schedule) Iterations(zoom float64) float32 {
	if zoom < 0 {
		zoom = 0
	}
	// log10(Growth^zoom * C) without forming Growth^zoom, which overflows.
	magnitude := zoom*math.Log10(s.Growth) + math.Log10(s.C)
	return float32(s.K * math.Pow(magnitude, s.Power))
}

// Params returns the render parameters for a zoom level. The ramp tracks the
// iteration cap so the gradient spans every reachable count.
func (s Schedule) Params(zoom float64, threshold float32) RenderParams {
	iterations := s.Iterations(zoom)
	return RenderParams{
		MaxIterations: iterations,
		Threshold:     threshold,
		Ramp:          iterations,
	}
}

// At is Zoom followed by Params.
func (s Schedule) At(elapsed time.Duration, threshold float32) (float64, RenderParams) {
	zoom := s.Zoom(elapsed)
	return zoom, s.Params(zoom, threshold)
}
