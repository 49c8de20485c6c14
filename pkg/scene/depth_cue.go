package scene

import "github.com/df07/go-whitted-raytracer/pkg/core"

// DepthCue blends colors toward a fog color with distance.
//
// Scene files may define it and it is stored on the scene, but the Whitted
// integrator does not apply it to traced colors.
type DepthCue struct {
	Color   core.Vec3
	AMax    float64 // Blend factor at or below DistMin
	AMin    float64 // Blend factor at or beyond DistMax
	DistMax float64
	DistMin float64
}

// DefaultDepthCue returns the identity cue: a = 1 at every distance
func DefaultDepthCue() DepthCue {
	return DepthCue{AMax: 1, AMin: 1, DistMax: 1, DistMin: 0}
}

// Factor returns the blend factor a at distance d
func (dc DepthCue) Factor(d float64) float64 {
	switch {
	case d <= dc.DistMin:
		return dc.AMax
	case d >= dc.DistMax:
		return dc.AMin
	default:
		return dc.AMin + (dc.AMax-dc.AMin)*(dc.DistMax-d)/(dc.DistMax-dc.DistMin)
	}
}

// Apply returns a*color + (1-a)*fog for the factor a at distance d
func (dc DepthCue) Apply(color core.Vec3, d float64) core.Vec3 {
	a := dc.Factor(d)
	return color.Multiply(a).Add(dc.Color.Multiply(1 - a))
}
