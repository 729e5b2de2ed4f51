package fractal

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// ViewState is the running view of the plane. Zoom only grows while the
// frame loop runs.
type ViewState struct {
	Zoom   float64
	Center mgl64.Vec2
	Aspect float32
}

// Scale returns the half-height of the visible plane window at the given zoom.
// base must be in (0,1), so the window shrinks exponentially with zoom.
func Scale(zoom, base float64) float64 {
	return math.Pow(base, zoom)
}

// Scale is Scale(v.Zoom, base).
func (v ViewState) Scale(base float64) float64 {
	return Scale(v.Zoom, base)
}

// MapPixel maps a normalized pixel position p in [-1,1]² onto the complex
// plane. Only the horizontal axis is corrected for aspect.
func MapPixel(p mgl64.Vec2, aspect float32, scale float64, center mgl64.Vec2) mgl64.Vec2 {
	p[0] *= float64(aspect)
	return p.Mul(scale).Add(center)
}

// UnmapPoint is the inverse of MapPixel. It is undefined once scale has
// underflowed to zero.
func UnmapPoint(c mgl64.Vec2, aspect float32, scale float64, center mgl64.Vec2) mgl64.Vec2 {
	p := c.Sub(center).Mul(1 / scale)
	p[0] /= float64(aspect)
	return p
}

// MapPixel32 is MapPixel in single precision.
func MapPixel32(p mgl32.Vec2, aspect, scale float32, center mgl32.Vec2) mgl32.Vec2 {
	p[0] *= aspect
	return p.Mul(scale).Add(center)
}

// ValidAspect reports whether aspect can be used to map pixels.
func ValidAspect(aspect float32) bool {
	a := float64(aspect)
	return a > 0 && !math.IsInf(a, 0)
}

// AspectRatio returns width/height, or ok=false when the viewport is degenerate.
func AspectRatio(width, height int) (aspect float32, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, false
	}
	aspect = float32(width) / float32(height)
	return aspect, ValidAspect(aspect)
}
