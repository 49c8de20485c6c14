package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight is an omnidirectional light at a position, optionally
// attenuated by 1/(c1 + c2*d + c3*d²)
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3

	attenuated bool
	c1, c2, c3 float64
}

// NewPointLight creates an unattenuated point light
func NewPointLight(position, color core.Vec3) *PointLight {
	return &PointLight{Position: position, Color: color}
}

// NewAttenuatedPointLight creates a point light with quadratic distance falloff
func NewAttenuatedPointLight(position, color core.Vec3, c1, c2, c3 float64) *PointLight {
	return &PointLight{
		Position:   position,
		Color:      color,
		attenuated: true,
		c1:         c1,
		c2:         c2,
		c3:         c3,
	}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Attenuated reports whether distance falloff applies
func (pl *PointLight) Attenuated() bool {
	return pl.attenuated
}

// Coefficients returns c1, c2, c3 of the falloff polynomial
func (pl *PointLight) Coefficients() (c1, c2, c3 float64) {
	return pl.c1, pl.c2, pl.c3
}

// Attenuate returns the falloff factor at point, or 1 when unattenuated
func (pl *PointLight) Attenuate(point core.Vec3) float64 {
	if !pl.attenuated {
		return 1
	}
	d := point.Distance(pl.Position)
	return 1.0 / (pl.c1 + pl.c2*d + pl.c3*d*d)
}

// Sample aims at the light position
func (pl *PointLight) Sample(point core.Vec3) LightSample {
	return LightSample{
		Direction:   pl.Position.Subtract(point).Normalize(),
		Target:      pl.Position,
		Color:       pl.Color,
		Attenuation: pl.Attenuate(point),
	}
}
