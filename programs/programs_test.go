package programs

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/glzoom/fractal"
)

func testUniforms(center mgl64.Vec2, width, height int) Uniforms {
	cfg := fractal.DefaultConfig()
	cfg.Center = center
	aspect, _ := fractal.AspectRatio(width, height)
	view := fractal.ViewState{Center: center, Aspect: aspect}
	return NewUniforms(view, cfg.Schedule().Params(0, cfg.Threshold), cfg, width, height)
}

func TestForPrecision(t *testing.T) {
	for _, p := range []fractal.Precision{fractal.Single, fractal.Double} {
		program, err := ForPrecision(p)
		if err != nil {
			t.Fatalf("ForPrecision(%v): %v", p, err)
		}
		if program.Precision != p {
			t.Fatalf("ForPrecision(%v) returned %v program", p, program.Precision)
		}
		if !strings.Contains(program.FragmentShader, "outputColor") {
			t.Fatalf("%s fragment shader not embedded", program.Name)
		}
		if !strings.Contains(program.VertexShader, "vert") {
			t.Fatalf("%s vertex shader not embedded", program.Name)
		}
	}

	if _, err := ForPrecision(fractal.Precision(9)); !errors.Is(err, ErrNoProgram) {
		t.Fatalf("ForPrecision(9) = %v, want ErrNoProgram", err)
	}
	if err := NewProgram(GetProgram(0)); err == nil {
		t.Fatal("registering a duplicate program succeeded")
	}
	if NumPrograms() != 2 {
		t.Fatalf("NumPrograms() = %v, want 2", NumPrograms())
	}
}

func TestInsideSetIsRed(t *testing.T) {
	u := testUniforms(mgl64.Vec2{}, 64, 64)
	for i := 0; i < NumPrograms(); i++ {
		program := GetProgram(i)
		c := program.GetPixel(u, mgl32.Vec2{0, 0})
		if !closeColour(c, mgl32.Vec3{1, 0, 0}, 1e-5) {
			t.Errorf("%s: origin coloured %v, want red", program.Name, c)
		}
	}
}

func TestPrecisionsAgreeWhenShallow(t *testing.T) {
	single, _ := ForPrecision(fractal.Single)
	double, _ := ForPrecision(fractal.Double)

	const size = 32
	bounds := image.Rect(0, 0, size, size)
	u := testUniforms(mgl64.Vec2{-0.5, 0}, size, size)

	mismatched := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			pos := PixelPosition(x, y, bounds)
			if !closeColour(single.GetPixel(u, pos), double.GetPixel(u, pos), 1e-3) {
				mismatched++
			}
		}
	}
	if mismatched > size*size/10 {
		t.Fatalf("%d of %d pixels differ between precisions", mismatched, size*size)
	}
}

func TestPixelPosition(t *testing.T) {
	bounds := image.Rect(0, 0, 4, 2)
	if p := PixelPosition(0, 0, bounds); p != (mgl32.Vec2{-0.75, 0.5}) {
		t.Errorf("top left = %v", p)
	}
	if p := PixelPosition(3, 1, bounds); p != (mgl32.Vec2{0.75, -0.5}) {
		t.Errorf("bottom right = %v", p)
	}

	offset := image.Rect(10, 20, 14, 22)
	if PixelPosition(10, 20, offset) != PixelPosition(0, 0, bounds) {
		t.Error("position depends on bounds origin")
	}
}

func TestGetImage(t *testing.T) {
	program, _ := ForPrecision(fractal.Double)
	if _, err := program.GetImage(Uniforms{}, 0, 10); err == nil {
		t.Error("GetImage accepted an empty size")
	}

	bare := Program{Name: "bare"}
	if _, err := bare.GetImage(Uniforms{}, 10, 10); !errors.Is(err, ErrNoCPUImplementation) {
		t.Errorf("GetImage without GetPixel = %v", err)
	}
}

func TestRenderMatchesImage(t *testing.T) {
	program, _ := ForPrecision(fractal.Double)
	u := testUniforms(mgl64.Vec2{-0.5, 0}, 40, 30)

	img, err := program.GetImage(u, 40, 30)
	if err != nil {
		t.Fatal(err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if err := Render(context.Background(), img, dst); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if dst.Bounds().Dx() != 40 || dst.Bounds().Dy() != 30 {
		t.Fatalf("Render left dst at %v", dst.Bounds())
	}

	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			want := color.RGBAModel.Convert(pixelAt(img, x, y))
			if got := dst.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderCancelled(t *testing.T) {
	program, _ := ForPrecision(fractal.Single)
	img, _ := program.GetImage(testUniforms(mgl64.Vec2{}, 64, 64), 64, 64)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Render(ctx, img, image.NewRGBA(img.Bounds()))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Render = %v, want context.Canceled", err)
	}
}

type flatImage mgl32.Vec3

func (f flatImage) GetPixel(mgl32.Vec2) mgl32.Vec3 { return mgl32.Vec3(f) }
func (f flatImage) Bounds() image.Rectangle      { return image.Rect(0, 0, 8, 8) }

func TestAntiAlias9x(t *testing.T) {
	flat := flatImage{0.25, 0.5, 1}
	aa := AntiAlias9x(flat, 0.5)
	if c := aa.GetPixel(mgl32.Vec2{}); !c.ApproxEqualThreshold(mgl32.Vec3(flat), 1e-6) {
		t.Fatalf("antialiased flat image = %v", c)
	}
	if aa.Bounds() != flat.Bounds() {
		t.Fatal("antialias changed bounds")
	}
}

func TestChannel(t *testing.T) {
	for _, tc := range []struct {
		in   float32
		want uint8
	}{{-1, 0}, {0, 0}, {0.5, 128}, {1, 255}, {2, 255}} {
		if got := channel(tc.in); got != tc.want {
			t.Errorf("channel(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestWritePNG(t *testing.T) {
	program, _ := ForPrecision(fractal.Double)
	img, _ := program.GetImage(testUniforms(mgl64.Vec2{-0.5, 0}, 24, 16), 24, 16)

	var buf bytes.Buffer
	if err := WritePNG(context.Background(), &buf, img); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if decoded.Bounds() != image.Rect(0, 0, 24, 16) {
		t.Fatalf("decoded bounds %v", decoded.Bounds())
	}
	want := color.RGBAModel.Convert(pixelAt(img, 5, 7))
	if got := color.RGBAModel.Convert(decoded.At(5, 7)); got != want {
		t.Fatalf("pixel = %v, want %v", got, want)
	}
}

func closeColour(a, b mgl32.Vec3, tol float32) bool {
	for i := range a {
		if d := a[i] - b[i]; d > tol || d < -tol {
			return false
		}
	}
	return true
}

func pixelAt(img Image, x, y int) color.NRGBA {
	return toNRGBA(img.GetPixel(PixelPosition(x, y, img.Bounds())))
}

func TestUniformsParams(t *testing.T) {
	cfg := fractal.DefaultConfig()
	params := cfg.Schedule().Params(12, cfg.Threshold)
	u := NewUniforms(fractal.ViewState{Zoom: 12, Aspect: 1}, params, cfg, 10, 10)
	if got := u.Params(); got != params {
		t.Fatalf("Params() = %+v, want %+v", got, params)
	}
}
