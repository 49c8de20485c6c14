package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material int
	Texture  int
}

// NewSphere creates a new untextured sphere
func NewSphere(center core.Vec3, radius float64, material int) *Sphere {
	return NewTexturedSphere(center, radius, material, NoTexture)
}

// NewTexturedSphere creates a sphere bound to a texture index
func NewTexturedSphere(center core.Vec3, radius float64, material, texture int) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
		Texture:  texture,
	}
}

// Intersect finds the near intersection of the ray with the sphere.
//
// Only the near root is considered, so rays starting inside the sphere or
// reaching only its far side report no hit.
func (s *Sphere) Intersect(ray core.Ray) RaycastHit {
	hit := NoHit()

	// Parameter of the point on the ray closest to the center
	t := s.Center.Subtract(ray.Origin).Dot(ray.Direction)
	closest := ray.At(t)
	y := s.Center.Subtract(closest).Length()
	if y >= s.Radius {
		return hit
	}

	x := math.Sqrt(s.Radius*s.Radius - y*y)
	t1 := t - x
	if !(t1 > 0) {
		return hit
	}

	hit.Hit = true
	hit.Distance = t1
	hit.Point = ray.At(t1)
	hit.Normal = hit.Point.Subtract(s.Center).Normalize()
	hit.MaterialIndex = s.Material
	hit.TextureIndex = s.Texture
	hit.Primitive = s

	if s.Texture != NoTexture {
		hit.U, hit.V = sphericalUV(hit.Normal)
	}

	return hit
}

// sphericalUV maps a unit normal to longitude/latitude texture coordinates
func sphericalUV(n core.Vec3) (u, v float64) {
	theta := math.Atan2(n.X, n.Z)
	phi := math.Acos(max(-1, min(1, n.Y)))
	return (theta + math.Pi) / (2 * math.Pi), phi / math.Pi
}

// Bounds returns the axis-aligned bounding box for this sphere
func (s *Sphere) Bounds() core.AABB {
	return core.NewAABBFromSphere(s.Center, s.Radius)
}

// Centroid returns the sphere center
func (s *Sphere) Centroid() core.Vec3 {
	return s.Center
}

func (s *Sphere) MaterialIndex() int { return s.Material }
func (s *Sphere) TextureIndex() int  { return s.Texture }

func (s *Sphere) primitive() {}
