package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
)

// DirectionalShadowDistance is how far along the reversed light direction
// the shadow target of a directional light is placed
const DirectionalShadowDistance = 25.0

// Light interface for sources that contribute Phong direct lighting
type Light interface {
	Type() LightType

	// Sample evaluates the light toward a shading point.
	// Returns LightSample with direction FROM shading point TO light
	Sample(point core.Vec3) LightSample
}

// LightSample contains the per-point terms the integrator needs from a light
type LightSample struct {
	Direction   core.Vec3 // Unit direction from shading point to light
	Target      core.Vec3 // Point shadow rays are aimed at
	Color       core.Vec3 // Light intensity/color
	Attenuation float64   // Distance falloff factor, 1 when unattenuated
}
