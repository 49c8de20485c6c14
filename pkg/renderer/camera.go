package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// ViewingDistance is the distance from the eye to the image plane
	ViewingDistance = 3.0

	// DOFJitter is the edge length of the cube the eye is jittered in
	DOFJitter = 0.075
)

// Camera generates primary rays through the pixel centers of an image
// plane placed ViewingDistance in front of the eye
type Camera struct {
	eye            core.Vec3
	upperLeft      core.Vec3
	deltaU, deltaV core.Vec3
	width, height  int
}

// NewCamera builds the image plane for a camera configuration.
// The configuration must have passed scene validation.
func NewCamera(cfg scene.CameraConfig) *Camera {
	h := 2 * ViewingDistance * math.Tan(cfg.VFov*math.Pi/360)
	w := h * float64(cfg.Width) / float64(cfg.Height)

	u := cfg.ViewDir.Cross(cfg.UpDir).Normalize()
	v := u.Cross(cfg.ViewDir).Normalize()

	upperLeft := cfg.Eye.
		Add(cfg.ViewDir.Multiply(ViewingDistance)).
		Subtract(u.Multiply(w / 2)).
		Add(v.Multiply(h / 2))

	return &Camera{
		eye:       cfg.Eye,
		upperLeft: upperLeft,
		deltaU:    u.Multiply(w / float64(cfg.Width)),
		deltaV:    v.Multiply(h / float64(cfg.Height)),
		width:     cfg.Width,
		height:    cfg.Height,
	}
}

// PixelCenter returns the point on the image plane at the center of pixel
// (x, y), with y growing downward
func (c *Camera) PixelCenter(x, y int) core.Vec3 {
	return c.upperLeft.
		Add(c.deltaU.Multiply(float64(x) + 0.5)).
		Subtract(c.deltaV.Multiply(float64(y) + 0.5))
}

// PrimaryRay returns the ray from the eye through the center of pixel (x, y)
func (c *Camera) PrimaryRay(x, y int) core.Ray {
	return core.NewRay(c.eye, c.PixelCenter(x, y).Subtract(c.eye))
}

// JitteredRay moves the eye to a random point inside a cube of edge
// DOFJitter and aims at the same pixel center
func (c *Camera) JitteredRay(x, y int, sampler core.Sampler) core.Ray {
	origin := c.eye.Add(core.SampleInCube(sampler.Get3D(), DOFJitter/2))
	return core.NewRay(origin, c.PixelCenter(x, y).Subtract(origin))
}

// Size returns the image dimensions in pixels
func (c *Camera) Size() (width, height int) {
	return c.width, c.height
}
