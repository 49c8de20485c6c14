package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewTriangleMeshScene creates a scene showcasing triangle mesh geometry:
// a rotated box, a pyramid and a smooth-shaded icosahedron
func NewTriangleMeshScene() *Scene {
	s := New(NewCameraConfig(
		core.NewVec3(0, 2, 6),   // Position camera to see the meshes
		core.NewVec3(0, -1, -6), // Look at the center of the scene
		core.NewVec3(0, 1, 0),
		45,
		480, 270,
	), core.NewVec3(0.5, 0.7, 1.0))

	white := core.NewVec3(1, 1, 1)
	ground := s.AddMaterial(material.NewMaterial(core.NewVec3(0.7, 0.7, 0.7), white, 0.15, 0.8, 0, 1, 1, 1))
	redGloss := s.AddMaterial(material.NewMaterial(core.NewVec3(0.8, 0.2, 0.2), white, 0.1, 0.7, 0.5, 40, 1, 2.5))
	blue := s.AddMaterial(material.NewMaterial(core.NewVec3(0.2, 0.3, 0.8), white, 0.1, 0.8, 0.2, 20, 1, 1.3))
	gold := s.AddMaterial(material.NewMaterial(core.NewVec3(0.8, 0.6, 0.2), core.NewVec3(1, 0.85, 0.5), 0.1, 0.6, 0.7, 80, 1, 4))

	s.AddTriangles(NewGroundQuad(core.NewVec3(0, 0, 0), 20, ground, geometry.NoTexture))

	addMesh(s, createBoxMesh(core.NewVec3(-2, 0.5, 0), core.NewVec3(1, 1, 1)), redGloss, core.NewVec3(0, math.Pi/6, 0), core.NewVec3(-2, 0.5, 0))
	addMesh(s, createPyramidMesh(core.NewVec3(0, 1, 0), 1.5, 2.0), blue, core.NewVec3(0, math.Pi/4, 0), core.NewVec3(0, 1, 0))
	addMesh(s, createIcosahedronMesh(core.NewVec3(2, 0.8, 0), 0.8), gold, core.NewVec3(0, math.Pi/3, 0), core.NewVec3(2, 0.8, 0))

	s.AddPointLight(lights.NewPointLight(core.NewVec3(2, 6, 3), core.NewVec3(0.8, 0.75, 0.7)))
	s.AddPointLight(lights.NewPointLight(core.NewVec3(-3, 4, 2), core.NewVec3(0.3, 0.35, 0.4)))

	return s
}

func addMesh(s *Scene, mesh *geometry.TriangleMesh, mat int, rotation, center core.Vec3) {
	tris, err := mesh.Triangles(mat, &geometry.TriangleMeshOptions{
		Texture:  geometry.NoTexture,
		Rotation: &rotation,
		Center:   &center,
	})
	if err != nil {
		// Built-in meshes are well formed
		panic(err)
	}
	s.AddTriangles(tris)
}

// createBoxMesh creates a triangle mesh representing a box
func createBoxMesh(center, size core.Vec3) *geometry.TriangleMesh {
	h := size.Multiply(0.5)
	vertices := []core.Vec3{
		center.Add(core.NewVec3(-h.X, -h.Y, -h.Z)), // 0: left-bottom-back
		center.Add(core.NewVec3(+h.X, -h.Y, -h.Z)), // 1: right-bottom-back
		center.Add(core.NewVec3(+h.X, +h.Y, -h.Z)), // 2: right-top-back
		center.Add(core.NewVec3(-h.X, +h.Y, -h.Z)), // 3: left-top-back
		center.Add(core.NewVec3(-h.X, -h.Y, +h.Z)), // 4: left-bottom-front
		center.Add(core.NewVec3(+h.X, -h.Y, +h.Z)), // 5: right-bottom-front
		center.Add(core.NewVec3(+h.X, +h.Y, +h.Z)), // 6: right-top-front
		center.Add(core.NewVec3(-h.X, +h.Y, +h.Z)), // 7: left-top-front
	}

	// 12 triangles, 2 per face, wound so face normals point outward
	faces := []int{
		0, 2, 1, 0, 3, 2, // Back face (Z-)
		4, 5, 6, 4, 6, 7, // Front face (Z+)
		0, 4, 7, 0, 7, 3, // Left face (X-)
		1, 2, 6, 1, 6, 5, // Right face (X+)
		0, 1, 5, 0, 5, 4, // Bottom face (Y-)
		3, 7, 6, 3, 6, 2, // Top face (Y+)
	}

	return &geometry.TriangleMesh{Vertices: vertices, Faces: faces}
}

// createPyramidMesh creates a triangle mesh representing a square pyramid
func createPyramidMesh(center core.Vec3, baseSize, height float64) *geometry.TriangleMesh {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	vertices := []core.Vec3{
		center.Add(core.NewVec3(-halfBase, -halfHeight, -halfBase)), // 0: left-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, -halfBase)), // 1: right-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, +halfBase)), // 2: right-front
		center.Add(core.NewVec3(-halfBase, -halfHeight, +halfBase)), // 3: left-front
		center.Add(core.NewVec3(0, +halfHeight, 0)),                 // 4: apex
	}

	faces := []int{
		0, 1, 2, 0, 2, 3, // Base
		1, 0, 4, // back face
		2, 1, 4, // right face
		3, 2, 4, // front face
		0, 3, 4, // left face
	}

	return &geometry.TriangleMesh{Vertices: vertices, Faces: faces}
}

// createIcosahedronMesh creates an icosahedron with per-vertex normals
// pointing away from its center, so it shades like a sphere
func createIcosahedronMesh(center core.Vec3, radius float64) *geometry.TriangleMesh {
	phi := (1.0 + math.Sqrt(5)) / 2.0

	unit := []core.Vec3{
		core.NewVec3(-1, phi, 0), core.NewVec3(1, phi, 0),
		core.NewVec3(-1, -phi, 0), core.NewVec3(1, -phi, 0),
		core.NewVec3(0, -1, phi), core.NewVec3(0, 1, phi),
		core.NewVec3(0, -1, -phi), core.NewVec3(0, 1, -phi),
		core.NewVec3(phi, 0, -1), core.NewVec3(phi, 0, 1),
		core.NewVec3(-phi, 0, -1), core.NewVec3(-phi, 0, 1),
	}

	vertices := make([]core.Vec3, len(unit))
	normals := make([]core.Vec3, len(unit))
	for i, v := range unit {
		n := v.Normalize()
		normals[i] = n
		vertices[i] = center.Add(n.Multiply(radius))
	}

	faces := []int{
		// 5 faces around point 0
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		// 5 adjacent faces
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		// 5 faces around point 3
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		// 5 adjacent faces
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return &geometry.TriangleMesh{Vertices: vertices, Faces: faces, Normals: normals}
}
