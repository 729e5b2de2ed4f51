package programs

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

// rowsPerChunk is the height of the horizontal band each render goroutine
// takes at a time.
const rowsPerChunk = 16

// AntiAlias9x samples 9 posititions for each sampled position,
// returning the average colour.
//
// antialias is the number of pixels apart the sampled locations are.
func AntiAlias9x(img Image, antialias float32) Image {
	if antialias == 0 {
		log.Println("image uselessly antialiased with distance of 0")
	}

	return &antialias9xImage{
		Image: img,
		offset: mgl32.Vec2{
			antialias * 2 / float32(img.Bounds().Dx()),
			antialias * 2 / float32(img.Bounds().Dy()),
		},
	}
}

type antialias9xImage struct {
	Image
	offset mgl32.Vec2
}

func (i *antialias9xImage) GetPixel(pos mgl32.Vec2) mgl32.Vec3 {
	ox, oy := i.offset[0], i.offset[1]
	avg := mgl32.Vec3{}
	for _, dx := range [3]float32{-ox, 0, ox} {
		for _, dy := range [3]float32{-oy, 0, oy} {
			avg = avg.Add(i.Image.GetPixel(mgl32.Vec2{pos[0] + dx, pos[1] + dy}))
		}
	}
	return avg.Mul(1 / float32(9))
}

// Render shades every pixel of img into dst, which must have the same
// size. Bands of rows are shaded in parallel; a cancelled context stops the
// render between rows and its error is returned.
func Render(ctx context.Context, img Image, dst *image.RGBA) error {
	bounds := img.Bounds()
	if dst.Bounds().Size() != bounds.Size() {
		dst.Rect = image.Rectangle{Max: bounds.Size()}
		dst.Stride = 4 * bounds.Dx()
		if cap(dst.Pix) < dst.Stride*bounds.Dy() {
			dst.Pix = make([]uint8, dst.Stride*bounds.Dy())
		}
		dst.Pix = dst.Pix[:dst.Stride*bounds.Dy()]
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for chunkMin := bounds.Min.Y; chunkMin < bounds.Max.Y; chunkMin += rowsPerChunk {
		chunkMax := min(chunkMin+rowsPerChunk, bounds.Max.Y)

		g.Go(func() error {
			for y := chunkMin; y < chunkMax; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}

				row := dst.Pix[(y-bounds.Min.Y)*dst.Stride:]
				for x := bounds.Min.X; x < bounds.Max.X; x++ {
					c := toNRGBA(img.GetPixel(PixelPosition(x, y, bounds)))
					i := (x - bounds.Min.X) * 4
					row[i+0] = c.R
					row[i+1] = c.G
					row[i+2] = c.B
					row[i+3] = c.A
				}
			}
			return nil
		})
	}

	return g.Wait()
}

// WritePNG renders img and encodes it to w.
func WritePNG(ctx context.Context, w io.Writer, img Image) error {
	buff := image.NewRGBA(img.Bounds())
	if err := Render(ctx, img, buff); err != nil {
		return err
	}
	return png.Encode(w, buff)
}

func toNRGBA(c mgl32.Vec3) color.NRGBA {
	return color.NRGBA{
		R: channel(c[0]),
		G: channel(c[1]),
		B: channel(c[2]),
		A: 0xff,
	}
}

func channel(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}
