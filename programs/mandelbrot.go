package programs

import (
	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glzoom/fractal"
)

//go:embed shaders/mandelbrot.frag
var mandelbrotFragment string

//go:embed shaders/mandelbrot64.frag
var mandelbrot64Fragment string

func init() {
	NewProgram(Program{
		Name:           "mandelbrot",
		Precision:      fractal.Single,
		VertexShader:   defaultVertexShader,
		FragmentShader: mandelbrotFragment,
		GetPixel: func(uniforms Uniforms, pos mgl32.Vec2) mgl32.Vec3 {
			c := fractal.MapPixel32(
				pos,
				uniforms.Aspect,
				float32(uniforms.Scale),
				mgl32.Vec2{float32(uniforms.Center[0]), float32(uniforms.Center[1])},
			)
			params := uniforms.Params()
			res := fractal.Escape32(c, params.MaxIterations, params.Threshold, uniforms.Smoothing != 0)
			return uniforms.colour(res)
		},
	})

	NewProgram(Program{
		Name:           "mandelbrot64",
		Precision:      fractal.Double,
		VertexShader:   defaultVertexShader,
		FragmentShader: mandelbrot64Fragment,
		GetPixel: func(uniforms Uniforms, pos mgl32.Vec2) mgl32.Vec3 {
			c := fractal.MapPixel(
				mgl64.Vec2{float64(pos[0]), float64(pos[1])},
				uniforms.Aspect,
				uniforms.Scale,
				uniforms.Center,
			)
			params := uniforms.Params()
			res := fractal.Escape(c, params.MaxIterations, params.Threshold, uniforms.Smoothing != 0)
			return uniforms.colour(res)
		},
	})
}
