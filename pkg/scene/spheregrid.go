package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a size x size grid of rainbow-colored glossy
// spheres. Large grids are the BVH stress case.
func NewSphereGridScene(size int) *Scene {
	if size < 1 {
		size = 10
	}
	extent := float64(size - 1)

	s := New(NewCameraConfig(
		core.NewVec3(extent/2, extent*0.6+1, extent*1.5+4), // eye
		core.NewVec3(0, -0.55, -1),                         // view direction
		core.NewVec3(0, 1, 0),                              // up
		40,
		480, 270,
	), core.NewVec3(0.05, 0.05, 0.08))

	white := core.NewVec3(1, 1, 1)
	ground := s.AddMaterial(material.NewMaterial(core.NewVec3(0.6, 0.6, 0.6), white, 0.1, 0.6, 0.2, 10, 1, 1.2))
	s.AddTriangles(NewGroundQuad(core.NewVec3(extent/2, 0, extent/2), extent*4+10, ground, geometry.NoTexture))

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			hue := float64(row*size+col) / float64(size*size) * 360
			color := oklchToRGB(0.7, 0.15, hue)
			mat := s.AddMaterial(material.NewMaterial(color, white, 0.1, 0.7, 0.4, 60, 1, 1.8))
			s.AddPrimitive(geometry.NewSphere(core.NewVec3(float64(col), 0.4, float64(row)), 0.4, mat))
		}
	}

	s.AddPointLight(lights.NewPointLight(core.NewVec3(extent/2, extent+5, extent+5), core.NewVec3(0.9, 0.9, 0.9)))
	s.AddDirectionalLight(lights.NewDirectionalLight(core.NewVec3(1, -1, -0.5), core.NewVec3(0.25, 0.25, 0.3)))

	return s
}
