package fractal

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Colouring selects how iteration counts become colours.
type Colouring int

const (
	// HueRamp walks the hue wheel from 0 to the ramp value.
	HueRamp Colouring = iota
	// Bands cycles red, green and blue by integer count.
	Bands
)

var bandColours = [3]mgl32.Vec3{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

func (c Colouring) String() string {
	switch c {
	case HueRamp:
		return "ramp"
	case Bands:
		return "bands"
	}
	return fmt.Sprintf("Colouring(%d)", int(c))
}

// Set implements flag.Value.
func (c *Colouring) Set(s string) error {
	switch s {
	case "ramp", "hsl":
		*c = HueRamp
	case "bands", "mod3":
		*c = Bands
	default:
		return fmt.Errorf("%w: unknown colouring %q", ErrInvalidConfig, s)
	}
	return nil
}

// Apply colours an evaluated point.
func (c Colouring) Apply(res IterationResult, ramp float32) mgl32.Vec3 {
	if c == Bands {
		return Banded(res.Count)
	}
	return Colour(res.Count, ramp)
}

// Colour maps count/ramp onto the hue wheel at full saturation and half
// lightness. Points that never escaped sit at t=1, which is red again.
func Colour(count, ramp float32) mgl32.Vec3 {
	return HSL(rampPosition(count, ramp), 1, 0.5)
}

func rampPosition(count, ramp float32) float32 {
	t := count / ramp
	if !(t > 0) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Banded returns one of three colours chosen by the integer part of count.
func Banded(count float32) mgl32.Vec3 {
	if !(count > 0) || math.IsInf(float64(count), 0) {
		return bandColours[0]
	}
	return bandColours[int64(count)%3]
}

// HSL converts hue, saturation and lightness, each in [0,1], to RGB.
// Channels are evaluated in float64 so the hue wheel's sextant edges land
// exactly on the primaries.
func HSL(h, s, l float32) mgl32.Vec3 {
	if s == 0 {
		return mgl32.Vec3{l, l, l}
	}

	hue, sat, light := float64(h), float64(s), float64(l)
	var q float64
	if light < 0.5 {
		q = light * (1 + sat)
	} else {
		q = light + sat - light*sat
	}
	p := 2*light - q

	return mgl32.Vec3{
		mgl32.Clamp(float32(hueToChannel(p, q, hue+1.0/3)), 0, 1),
		mgl32.Clamp(float32(hueToChannel(p, q, hue)), 0, 1),
		mgl32.Clamp(float32(hueToChannel(p, q, hue-1.0/3)), 0, 1),
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}
