package fractal

import (
	"flag"
	"strconv"
)

// RegisterFlags binds every tunable in c to a command line flag, using the
// current values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Float64Var(&c.ZoomSpeed, "zoom-speed", c.ZoomSpeed, "zoom units per second")
	fs.Float64Var(&c.ScaleBase, "scale-base", c.ScaleBase, "plane window shrink factor per zoom unit, in (0,1)")
	fs.Float64Var(&c.IterationK, "iter-k", c.IterationK, "iteration law multiplier k")
	fs.Float64Var(&c.IterationGrowth, "iter-growth", c.IterationGrowth, "iteration law growth base")
	fs.Float64Var(&c.IterationC, "iter-c", c.IterationC, "iteration law constant C")
	fs.Float64Var(&c.IterationPower, "iter-power", c.IterationPower, "iteration law exponent p")
	fs.Var((*float32Value)(&c.Threshold), "threshold", "squared escape radius")
	fs.Float64Var(&c.Center[0], "center-re", c.Center[0], "real part of the zoom target")
	fs.Float64Var(&c.Center[1], "center-im", c.Center[1], "imaginary part of the zoom target")
	fs.Var(&c.Precision, "precision", "orbit precision: single or double")
	fs.Var(&c.Colouring, "colouring", "colouring: ramp or bands")
	fs.BoolVar(&c.Smooth, "smooth", c.Smooth, "use the normalized (fractional) iteration count")
}

type float32Value float32

func (f *float32Value) Set(s string) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	*f = float32Value(v)
	return nil
}

func (f *float32Value) String() string {
	return strconv.FormatFloat(float64(*f), 'g', -1, 32)
}
