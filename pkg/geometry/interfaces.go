package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NoTexture marks a primitive or hit without a bound texture
const NoTexture = -1

// Primitive is the closed set of intersectable scene objects.
// Sphere and Triangle are the only implementations.
type Primitive interface {
	// Bounds returns the axis-aligned bounding box of the primitive
	Bounds() core.AABB
	// Centroid is the point used to order primitives during BVH construction
	Centroid() core.Vec3
	// Intersect returns the nearest hit in front of the ray origin
	Intersect(ray core.Ray) RaycastHit
	MaterialIndex() int
	TextureIndex() int

	primitive()
}

// RaycastHit describes the result of a nearest-hit query. A miss has
// Distance = +Inf so results can be compared by distance alone.
type RaycastHit struct {
	Hit           bool
	Distance      float64
	Point         core.Vec3
	Normal        core.Vec3
	MaterialIndex int
	TextureIndex  int
	U, V          float64
	Primitive     Primitive // Primitive that was hit, nil on a miss
}

// NoHit returns the empty raycast result
func NoHit() RaycastHit {
	return RaycastHit{
		Distance:     math.Inf(1),
		TextureIndex: NoTexture,
	}
}
