package programs

import (
	_ "embed"
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/glzoom/fractal"
)

var (
	ErrNoCPUImplementation = errors.New("program does not have a CPU implementation")
	ErrNoProgram           = errors.New("no program loaded")
)

//go:embed default.vert
var defaultVertexShader string

func NumPrograms() int {
	return len(programs)
}

func GetProgram(i int) Program {
	return programs[i]
}

// ForPrecision returns the program evaluating the orbit at precision p.
func ForPrecision(p fractal.Precision) (Program, error) {
	for _, program := range programs {
		if program.Precision == p {
			return program, nil
		}
	}
	return Program{}, fmt.Errorf("%w for %v precision", ErrNoProgram, p)
}

func NewProgram(p Program) error {
	for _, existing := range programs {
		if existing.Name == p.Name {
			return fmt.Errorf("program %q already registered", p.Name)
		}
	}
	programs = append(programs, p)
	return nil
}

var programs []Program

// PixelFunc shades a normalized position in [-1,1]², y pointing up.
type PixelFunc func(uniforms Uniforms, pos mgl32.Vec2) mgl32.Vec3

type Program struct {
	Name           string
	Precision      fractal.Precision
	VertexShader   string
	FragmentShader string
	GetPixel       PixelFunc
}

func (p *Program) GetImage(uniforms Uniforms, width, height int) (Image, error) {
	if p.GetPixel == nil {
		return nil, ErrNoCPUImplementation
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image size %vx%v is empty", width, height)
	}

	return &programImage{
		uniforms:  uniforms,
		bounds:    image.Rect(0, 0, width, height),
		pixelFunc: p.GetPixel,
	}, nil
}

type Image interface {
	GetPixel(mgl32.Vec2) mgl32.Vec3
	Bounds() image.Rectangle
}

type programImage struct {
	uniforms  Uniforms
	bounds    image.Rectangle
	pixelFunc PixelFunc
}

func (i *programImage) GetPixel(pos mgl32.Vec2) mgl32.Vec3 {
	return i.pixelFunc(i.uniforms, pos)
}

func (i *programImage) Bounds() image.Rectangle {
	return i.bounds
}

// PixelPosition returns the normalized position of the centre of pixel (x, y)
// within bounds. Image rows run downwards, the plane's imaginary axis up.
func PixelPosition(x, y int, bounds image.Rectangle) mgl32.Vec2 {
	w, h := float32(bounds.Dx()), float32(bounds.Dy())
	return mgl32.Vec2{
		(float32(x-bounds.Min.X)+0.5)/w*2 - 1,
		1 - (float32(y-bounds.Min.Y)+0.5)/h*2,
	}
}
