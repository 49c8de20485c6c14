package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ImageTexture provides color from a decoded 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 is the top of the image
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Sample looks up the texel nearest to (u, v).
//
// u runs left to right and v top to bottom. Both are clamped to [0, 1] and
// scaled by (size - 1), so u = 1 selects the last column.
func (t *ImageTexture) Sample(u, v float64) core.Vec3 {
	if t == nil || len(t.Pixels) == 0 {
		return core.Vec3{}
	}

	x := int(clampUnit(u) * float64(t.Width-1))
	y := int(clampUnit(v) * float64(t.Height-1))

	return t.Pixels[y*t.Width+x]
}

// At returns the texel at integer coordinates
func (t *ImageTexture) At(x, y int) core.Vec3 {
	return t.Pixels[y*t.Width+x]
}

// clampUnit also maps NaN to 0
func clampUnit(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
