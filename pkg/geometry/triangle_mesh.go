package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	// ErrBadFaceCount is returned when face indices are not a multiple of 3
	ErrBadFaceCount = errors.New("face indices must be a multiple of 3")
	// ErrFaceIndex is returned when a face references a missing vertex attribute
	ErrFaceIndex = errors.New("face index out of bounds")
)

// TriangleMesh is indexed triangle data that expands into individual
// triangles. Triangles are flattened into the scene's BVH rather than kept
// behind a nested hierarchy.
type TriangleMesh struct {
	Vertices  []core.Vec3
	Faces     []int       // Each group of 3 indices forms a triangle
	Normals   []core.Vec3 // Optional, one per vertex
	TexCoords []core.Vec2 // Optional, one per vertex
}

// TriangleMeshOptions contains optional parameters for triangle expansion
type TriangleMeshOptions struct {
	Texture  int        // Texture bound to triangles with texture coordinates
	Rotation *core.Vec3 // Optional rotation (radians around X, Y, Z) applied to vertices
	Center   *core.Vec3 // Optional center point for rotation
}

// Triangles expands the mesh into triangles sharing one material.
// options may be nil.
func (m *TriangleMesh) Triangles(material int, options *TriangleMeshOptions) ([]*Triangle, error) {
	if len(m.Faces)%3 != 0 {
		return nil, fmt.Errorf("%d indices: %w", len(m.Faces), ErrBadFaceCount)
	}

	texture := NoTexture
	vertices := m.Vertices
	normals := m.Normals
	if options != nil {
		texture = options.Texture
		if options.Rotation != nil {
			center := core.Vec3{}
			if options.Center != nil {
				center = *options.Center
			}
			vertices = make([]core.Vec3, len(m.Vertices))
			for i, v := range m.Vertices {
				vertices[i] = rotateVertex(v.Subtract(center), *options.Rotation).Add(center)
			}
			if normals != nil {
				normals = make([]core.Vec3, len(m.Normals))
				for i, n := range m.Normals {
					normals[i] = rotateVertex(n, *options.Rotation)
				}
			}
		}
	}

	triangles := make([]*Triangle, 0, len(m.Faces)/3)
	for i := 0; i < len(m.Faces); i += 3 {
		idx := [3]int{m.Faces[i], m.Faces[i+1], m.Faces[i+2]}
		for _, j := range idx {
			if j < 0 || j >= len(vertices) {
				return nil, fmt.Errorf("face %d vertex %d: %w", i/3, j, ErrFaceIndex)
			}
		}

		var opts []TriangleOption
		if normals != nil {
			if !inRange(idx, len(normals)) {
				return nil, fmt.Errorf("face %d normals: %w", i/3, ErrFaceIndex)
			}
			opts = append(opts, WithNormals(normals[idx[0]], normals[idx[1]], normals[idx[2]]))
		}
		if m.TexCoords != nil && texture != NoTexture {
			if !inRange(idx, len(m.TexCoords)) {
				return nil, fmt.Errorf("face %d texture coordinates: %w", i/3, ErrFaceIndex)
			}
			opts = append(opts, WithTexCoords(texture, m.TexCoords[idx[0]], m.TexCoords[idx[1]], m.TexCoords[idx[2]]))
		}

		triangles = append(triangles, NewTriangle(vertices[idx[0]], vertices[idx[1]], vertices[idx[2]], material, opts...))
	}

	return triangles, nil
}

func inRange(idx [3]int, n int) bool {
	for _, j := range idx {
		if j < 0 || j >= n {
			return false
		}
	}
	return true
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	if rotation.X != 0 {
		cos, sin := math.Cos(rotation.X), math.Sin(rotation.X)
		vertex = core.NewVec3(vertex.X, vertex.Y*cos-vertex.Z*sin, vertex.Y*sin+vertex.Z*cos)
	}
	if rotation.Y != 0 {
		cos, sin := math.Cos(rotation.Y), math.Sin(rotation.Y)
		vertex = core.NewVec3(vertex.X*cos+vertex.Z*sin, vertex.Y, -vertex.X*sin+vertex.Z*cos)
	}
	if rotation.Z != 0 {
		cos, sin := math.Cos(rotation.Z), math.Sin(rotation.Z)
		vertex = core.NewVec3(vertex.X*cos-vertex.Y*sin, vertex.X*sin+vertex.Y*cos, vertex.Z)
	}
	return vertex
}
