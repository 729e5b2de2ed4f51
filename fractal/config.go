package fractal

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// SeahorseSpiral is a point on the boundary near seahorse valley whose
// neighbourhood stays detailed at any depth.
var SeahorseSpiral = mgl64.Vec2{-0.743643887037151, 0.131825904205330}

// Config holds the load-time tunables of the renderer.
type Config struct {
	ZoomSpeed float64
	ScaleBase float64

	IterationK      float64
	IterationGrowth float64
	IterationC      float64
	IterationPower  float64

	Threshold float32
	Center    mgl64.Vec2

	Precision Precision
	Colouring Colouring
	Smooth    bool
}

func DefaultConfig() Config {
	return Config{
		ZoomSpeed: 2,
		ScaleBase: 0.75,

		IterationK:      50,
		IterationGrowth: 1.125,
		IterationC:      256,
		IterationPower:  1.25,

		Threshold: DefaultThreshold,
		Center:    SeahorseSpiral,

		Precision: Double,
		Colouring: HueRamp,
	}
}

func (c Config) Schedule() Schedule {
	return Schedule{
		ZoomSpeed: c.ZoomSpeed,
		K:         c.IterationK,
		Growth:    c.IterationGrowth,
		C:         c.IterationC,
		Power:     c.IterationPower,
	}
}

// Validate reports the first tunable outside the range where the schedule
// stays finite and monotonic.
func (c Config) Validate() error {
	switch {
	case !finite(c.ZoomSpeed) || c.ZoomSpeed < 0:
		return fmt.Errorf("%w: zoom speed %v must be >= 0", ErrInvalidConfig, c.ZoomSpeed)
	case !(c.ScaleBase > 0 && c.ScaleBase < 1):
		return fmt.Errorf("%w: scale base %v must be in (0,1)", ErrInvalidConfig, c.ScaleBase)
	case !finite(c.IterationK) || c.IterationK <= 0:
		return fmt.Errorf("%w: iteration k %v must be > 0", ErrInvalidConfig, c.IterationK)
	case !finite(c.IterationGrowth) || c.IterationGrowth <= 1:
		return fmt.Errorf("%w: iteration growth %v must be > 1", ErrInvalidConfig, c.IterationGrowth)
	case !finite(c.IterationC) || c.IterationC <= 1:
		return fmt.Errorf("%w: iteration constant %v must be > 1", ErrInvalidConfig, c.IterationC)
	case !finite(c.IterationPower) || c.IterationPower <= 0:
		return fmt.Errorf("%w: iteration power %v must be > 0", ErrInvalidConfig, c.IterationPower)
	case !finite(float64(c.Threshold)) || c.Threshold <= 0:
		return fmt.Errorf("%w: threshold %v must be > 0", ErrInvalidConfig, c.Threshold)
	case !finite(c.Center[0]) || !finite(c.Center[1]):
		return fmt.Errorf("%w: center %v is not finite", ErrInvalidConfig, c.Center)
	case c.Precision != Single && c.Precision != Double:
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Precision)
	case c.Colouring != HueRamp && c.Colouring != Bands:
		return fmt.Errorf("%w: %v", ErrInvalidConfig, c.Colouring)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
