package fractal

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Precision is the float width used for plane coordinates and the orbit.
type Precision int

const (
	Single Precision = iota
	Double
)

// safeZoomUlps is how many units in the last place a pixel step must span
// before neighbouring pixels start collapsing onto the same coordinate.
const safeZoomUlps = 4

func (p Precision) String() string {
	switch p {
	case Single:
		return "single"
	case Double:
		return "double"
	}
	return fmt.Sprintf("Precision(%d)", int(p))
}

// Set implements flag.Value.
func (p *Precision) Set(s string) error {
	switch s {
	case "single", "float", "f32", "32":
		*p = Single
	case "double", "f64", "64":
		*p = Double
	default:
		return fmt.Errorf("%w: unknown precision %q", ErrInvalidConfig, s)
	}
	return nil
}

// Epsilon is the machine epsilon of the precision.
func (p Precision) Epsilon() float64 {
	if p == Single {
		return float64(math.Nextafter32(1, 2) - 1)
	}
	return math.Nextafter(1, 2) - 1
}

// SafeZoom returns the deepest zoom at which a viewport height pixels tall,
// centred on center, still has distinct coordinates for adjacent pixels.
// Past it the image breaks into blocks; much further on Scale underflows and
// the view degenerates to a single point.
func (p Precision) SafeZoom(base float64, height int, center mgl64.Vec2) float64 {
	if height < 1 {
		height = 1
	}
	magnitude := math.Max(center.Len(), 1)

	// a pixel step is 2*scale/height; solve for base^zoom
	scale := safeZoomUlps * p.Epsilon() * magnitude * float64(height) / 2
	if scale >= 1 {
		return 0
	}
	return math.Log(scale) / math.Log(base)
}
