package core

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromSphere creates the symmetric box center ± radius
func NewAABBFromSphere(center Vec3, radius float64) AABB {
	r := NewVec3(radius, radius, radius)
	return AABB{Min: center.Subtract(r), Max: center.Add(r)}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	lo := points[0]
	hi := points[0]
	for _, point := range points[1:] {
		lo = lo.Min(point)
		hi = hi.Max(point)
	}

	return AABB{Min: lo, Max: hi}
}

// IntersectsRay tests the ray against the box using the slab method.
//
// An axis with an exactly zero direction component rejects immediately when
// the origin lies outside that slab. NaN intermediates produced by degenerate
// boxes compare false and therefore report no intersection.
func (aabb AABB) IntersectsRay(ray Ray) bool {
	o, d := ray.Origin, ray.Direction
	if d.X == 0 && (o.X < aabb.Min.X || o.X > aabb.Max.X) {
		return false
	}
	if d.Y == 0 && (o.Y < aabb.Min.Y || o.Y > aabb.Max.Y) {
		return false
	}
	if d.Z == 0 && (o.Z < aabb.Min.Z || o.Z > aabb.Max.Z) {
		return false
	}

	inv := d.Reciprocal()

	tx1 := (aabb.Min.X - o.X) * inv.X
	tx2 := (aabb.Max.X - o.X) * inv.X
	ty1 := (aabb.Min.Y - o.Y) * inv.Y
	ty2 := (aabb.Max.Y - o.Y) * inv.Y
	tz1 := (aabb.Min.Z - o.Z) * inv.Z
	tz2 := (aabb.Max.Z - o.Z) * inv.Z

	tStart := max(min(tx1, tx2), min(ty1, ty2), min(tz1, tz2))
	tEnd := min(max(tx1, tx2), max(ty1, ty2), max(tz1, tz2))

	return tStart <= tEnd && tEnd >= 0
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
// Ties resolve to the earliest axis.
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	longest := max(size.X, size.Y, size.Z)
	switch longest {
	case size.X:
		return 0
	case size.Y:
		return 1
	default:
		return 2
	}
}

// IsValid returns true if min <= max on every axis
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && aabb.Min.Y <= other.Min.Y && aabb.Min.Z <= other.Min.Z &&
		aabb.Max.X >= other.Max.X && aabb.Max.Y >= other.Max.Y && aabb.Max.Z >= other.Max.Z
}
