package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PixelBuffer holds the rendered colors, each channel in [0, 1]
type PixelBuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 at the top
}

// NewPixelBuffer allocates a black buffer
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color of pixel (x, y)
func (b *PixelBuffer) At(x, y int) core.Vec3 {
	return b.Pixels[y*b.Width+x]
}

// Set stores the color of pixel (x, y)
func (b *PixelBuffer) Set(x, y int, c core.Vec3) {
	b.Pixels[y*b.Width+x] = c
}

// ToRGBA converts the buffer to an 8-bit image, truncating c*255
func (b *PixelBuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(b.At(x, y)))
		}
	}
	return img
}

// AverageLuminance returns the mean luminance over all pixels
func (b *PixelBuffer) AverageLuminance() float64 {
	if len(b.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range b.Pixels {
		total += c.Luminance()
	}
	return total / float64(len(b.Pixels))
}

func vec3ToColor(c core.Vec3) color.RGBA {
	c = c.Clamp(0, 1)
	return color.RGBA{
		R: uint8(c.X * 255),
		G: uint8(c.Y * 255),
		B: uint8(c.Z * 255),
		A: 255,
	}
}
