package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// DirectionalLight is an infinitely distant light shining along Direction
type DirectionalLight struct {
	Direction core.Vec3 // Normalized direction the light travels
	Color     core.Vec3
}

// NewDirectionalLight creates a directional light; direction is normalized
func NewDirectionalLight(direction, color core.Vec3) *DirectionalLight {
	return &DirectionalLight{
		Direction: direction.Normalize(),
		Color:     color,
	}
}

func (dl *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// Sample points against the light's travel direction. The shadow target is
// a finite stand-in for the light, DirectionalShadowDistance away.
func (dl *DirectionalLight) Sample(point core.Vec3) LightSample {
	toLight := dl.Direction.Negate()
	return LightSample{
		Direction:   toLight,
		Target:      point.Add(toLight.Multiply(DirectionalShadowDistance)),
		Color:       dl.Color,
		Attenuation: 1,
	}
}
