package fractal

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultThreshold is the squared escape radius.
const DefaultThreshold = 32

// RenderParams are the per-frame evaluation parameters derived from zoom.
type RenderParams struct {
	MaxIterations float32
	Threshold     float32
	Ramp          float32
}

// IterationResult is the outcome of evaluating one point.
// Count is always in [0, MaxIterations].
type IterationResult struct {
	Escaped bool
	Count   float32
}

// iterationLimit is the number of orbit updates allowed for a float cap.
func iterationLimit(maxIterations float32) int {
	m := float64(maxIterations)
	if !(m > 0) {
		return 0
	}
	if m >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Ceil(m))
}

// Escape iterates z <- z² + c from z = 0 and reports whether the orbit left
// the disk of squared radius threshold within maxIterations updates.
//
// The magnitude test runs before each update, so the recorded count is the
// index of the first orbit point outside the disk. A magnitude that overflows
// or turns NaN counts as escaped.
//
// With smooth set, escaped points get the normalized iteration count
// n + 1 - log2(log|z| / log sqrt(threshold)) instead of n.
func Escape(c mgl64.Vec2, maxIterations, threshold float32, smooth bool) IterationResult {
	limit := iterationLimit(maxIterations)
	th := float64(threshold)

	var zr, zi float64
	for n := 0; n < limit; n++ {
		zr2, zi2 := zr*zr, zi*zi
		m := zr2 + zi2
		if !(m <= th) {
			return escaped(n, m, th, maxIterations, smooth)
		}
		zr, zi = zr2-zi2+c[0], 2*zr*zi+c[1]
	}

	return IterationResult{Count: clampCount(maxIterations, maxIterations)}
}

// Escape32 is Escape in single precision, matching the float shader.
func Escape32(c mgl32.Vec2, maxIterations, threshold float32, smooth bool) IterationResult {
	limit := iterationLimit(maxIterations)

	var zr, zi float32
	for n := 0; n < limit; n++ {
		zr2, zi2 := zr*zr, zi*zi
		m := zr2 + zi2
		if !(m <= threshold) {
			return escaped(n, float64(m), float64(threshold), maxIterations, smooth)
		}
		zr, zi = zr2-zi2+c[0], 2*zr*zi+c[1]
	}

	return IterationResult{Count: clampCount(maxIterations, maxIterations)}
}

func escaped(n int, m, threshold float64, maxIterations float32, smooth bool) IterationResult {
	count := float64(n)
	if smooth && threshold > 1 && !math.IsInf(m, 0) && !math.IsNaN(m) {
		nu := count + 1 - math.Log2(math.Log(m)/math.Log(threshold))
		if !math.IsNaN(nu) {
			count = nu
		}
	}
	return IterationResult{
		Escaped: true,
		Count:   clampCount(float32(count), maxIterations),
	}
}

func clampCount(count, maxIterations float32) float32 {
	if !(maxIterations > 0) {
		return 0
	}
	if !(count > 0) {
		return 0
	}
	if count > maxIterations {
		return maxIterations
	}
	return count
}
