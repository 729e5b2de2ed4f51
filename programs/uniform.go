package programs

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glzoom/fractal"
)

// Uniforms is the per-frame parameter snapshot handed to a program.
// Fields are uploaded to the shader uniform named by the tag.
type Uniforms struct {
	Resolution mgl32.Vec2 `uniform:"resolution"`
	Aspect     float32    `uniform:"aspect"`
	Scale      float64    `uniform:"scale"`
	Center     mgl64.Vec2 `uniform:"center"`
	Iterations float32    `uniform:"iterations"`
	Threshold  float32    `uniform:"threshold"`
	Ramp       float32    `uniform:"ramp"`
	Colouring  int32      `uniform:"colouring"`
	Smoothing  int32      `uniform:"smoothing"`
}

// NewUniforms builds the snapshot for one frame.
func NewUniforms(
	view fractal.ViewState,
	params fractal.RenderParams,
	cfg fractal.Config,
	width, height int,
) Uniforms {
	u := Uniforms{
		Resolution: mgl32.Vec2{float32(width), float32(height)},
		Aspect:     view.Aspect,
		Scale:      view.Scale(cfg.ScaleBase),
		Center:     view.Center,
		Iterations: params.MaxIterations,
		Threshold:  params.Threshold,
		Ramp:       params.Ramp,
		Colouring:  int32(cfg.Colouring),
	}
	if cfg.Smooth {
		u.Smoothing = 1
	}
	return u
}

// Params recovers the escape parameters the snapshot was built from.
func (u Uniforms) Params() fractal.RenderParams {
	return fractal.RenderParams{
		MaxIterations: u.Iterations,
		Threshold:     u.Threshold,
		Ramp:          u.Ramp,
	}
}

func (u Uniforms) colour(res fractal.IterationResult) mgl32.Vec3 {
	return fractal.Colouring(u.Colouring).Apply(res, u.Ramp)
}
