package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices, with
// optional per-vertex normals and texture coordinates
type Triangle struct {
	V0, V1, V2 core.Vec3    // The three vertices
	Normals    [3]core.Vec3 // Per-vertex normals, valid when HasNormals
	TexCoords  [3]core.Vec2 // Per-vertex texture coordinates, valid when HasTexCoords
	Material   int
	Texture    int

	HasNormals   bool
	HasTexCoords bool

	normal core.Vec3 // Cached unit face normal
	d      float64   // Cached plane offset: dot(normal, p) + d = 0
	bbox   core.AABB // Cached bounding box
}

// TriangleOption configures optional triangle attributes
type TriangleOption func(*Triangle)

// WithNormals attaches per-vertex normals
func WithNormals(n0, n1, n2 core.Vec3) TriangleOption {
	return func(t *Triangle) {
		t.Normals = [3]core.Vec3{n0, n1, n2}
		t.HasNormals = true
	}
}

// WithTexCoords attaches per-vertex texture coordinates and the texture they index
func WithTexCoords(texture int, uv0, uv1, uv2 core.Vec2) TriangleOption {
	return func(t *Triangle) {
		t.TexCoords = [3]core.Vec2{uv0, uv1, uv2}
		t.HasTexCoords = true
		t.Texture = texture
	}
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material int, opts ...TriangleOption) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
		Texture:  NoTexture,
	}
	for _, opt := range opts {
		opt(t)
	}

	// Precompute plane and bounding box for efficiency
	t.normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	t.d = -t.normal.Dot(v0)
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)

	return t
}

// Intersect tests the ray against the triangle's plane and then solves for
// barycentric coordinates of the plane hit.
//
// Comparisons are written so NaN (degenerate triangles, rays parallel to the
// plane) falls through to a miss.
func (t *Triangle) Intersect(ray core.Ray) RaycastHit {
	hit := NoHit()

	dist := -(t.normal.Dot(ray.Origin) + t.d) / t.normal.Dot(ray.Direction)
	if !(dist >= 0) {
		return hit
	}

	p := ray.At(dist)
	alpha, beta, gamma := t.Barycentric(p)
	if !inUnit(alpha) || !inUnit(beta) || !inUnit(gamma) {
		return hit
	}

	hit.Hit = true
	hit.Distance = ray.Origin.Distance(p)
	hit.Point = p
	hit.MaterialIndex = t.Material
	hit.Primitive = t

	if t.HasNormals {
		hit.Normal = t.Normals[0].Multiply(alpha).
			Add(t.Normals[1].Multiply(beta)).
			Add(t.Normals[2].Multiply(gamma)).
			Normalize()
	} else {
		hit.Normal = t.normal
	}

	if t.HasTexCoords {
		hit.U = alpha*t.TexCoords[0].X + beta*t.TexCoords[1].X + gamma*t.TexCoords[2].X
		hit.V = alpha*t.TexCoords[0].Y + beta*t.TexCoords[1].Y + gamma*t.TexCoords[2].Y
		hit.TextureIndex = t.Texture
	}

	return hit
}

func inUnit(x float64) bool {
	return x >= 0 && x <= 1
}

// Barycentric returns the (alpha, beta, gamma) weights of p with respect to
// the triangle's vertices. p is assumed to lie in the triangle's plane.
func (t *Triangle) Barycentric(p core.Vec3) (alpha, beta, gamma float64) {
	e1 := t.V1.Subtract(t.V0)
	e2 := t.V2.Subtract(t.V0)
	ep := p.Subtract(t.V0)
	d11, d12, d22 := e1.LengthSquared(), e1.Dot(e2), e2.LengthSquared()
	dp1, dp2 := ep.Dot(e1), ep.Dot(e2)
	denom := d11*d22 - d12*d12
	beta = (d22*dp1 - d12*dp2) / denom
	gamma = (d11*dp2 - d12*dp1) / denom
	return 1 - beta - gamma, beta, gamma
}

// Bounds returns the axis-aligned bounding box for this triangle
func (t *Triangle) Bounds() core.AABB {
	return t.bbox
}

// Centroid returns the average of the three vertices
func (t *Triangle) Centroid() core.Vec3 {
	return t.V0.Add(t.V1).Add(t.V2).Divide(3)
}

// Normal returns the triangle's unit face normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// PlaneOffset returns d in the plane equation dot(normal, p) + d = 0
func (t *Triangle) PlaneOffset() float64 {
	return t.d
}

func (t *Triangle) MaterialIndex() int { return t.Material }
func (t *Triangle) TextureIndex() int  { return t.Texture }

func (t *Triangle) primitive() {}
