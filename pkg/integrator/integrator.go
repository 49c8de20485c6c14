package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the unclamped color seen along a primary ray.
	// Stochastic features draw only from sampler.
	RayColor(ray core.Ray, sampler core.Sampler) core.Vec3
}

// Config contains the shading configuration
type Config struct {
	MaxDepth         int     // Reflection/refraction recursion limit
	SoftShadows      bool    // Jittered multi-sample shadows instead of a single shadow ray
	ShadowSamples    int     // Shadow rays per light when SoftShadows is set
	ShadowJitter     float64 // Half-width of the cube the light position is jittered in
	RefractionOffset float64 // Distance transmitted rays start past the surface
}

// DefaultConfig returns the classic Whitted settings: depth 8, hard shadows
func DefaultConfig() Config {
	return Config{
		MaxDepth:         8,
		SoftShadows:      false,
		ShadowSamples:    50,
		ShadowJitter:     0.25,
		RefractionOffset: 1e-4,
	}
}
