package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewGroundQuad creates a horizontal square at the given center as two
// triangles with normals pointing up (0,1,0). When texture is not
// geometry.NoTexture the quad is mapped to the full [0,1]² texture space.
func NewGroundQuad(center core.Vec3, size float64, mat, texture int) []*geometry.Triangle {
	h := size / 2
	v0 := core.NewVec3(center.X-h, center.Y, center.Z+h)
	v1 := core.NewVec3(center.X+h, center.Y, center.Z+h)
	v2 := core.NewVec3(center.X+h, center.Y, center.Z-h)
	v3 := core.NewVec3(center.X-h, center.Y, center.Z-h)

	mesh := &geometry.TriangleMesh{
		Vertices: []core.Vec3{v0, v1, v2, v3},
		Faces:    []int{0, 1, 2, 0, 2, 3},
		TexCoords: []core.Vec2{
			core.NewVec2(0, 1), core.NewVec2(1, 1), core.NewVec2(1, 0), core.NewVec2(0, 0),
		},
	}
	tris, _ := mesh.Triangles(mat, &geometry.TriangleMeshOptions{Texture: texture})
	return tris
}

// NewDefaultScene creates the classic Whitted arrangement: a glass sphere and
// a mirror sphere over a checkerboard floor
func NewDefaultScene() *Scene {
	s := New(NewCameraConfig(
		core.NewVec3(0, 1.2, 4),    // eye
		core.NewVec3(0, -0.15, -1), // view direction
		core.NewVec3(0, 1, 0),      // up
		45,
		400, 225,
	), core.NewVec3(0.45, 0.6, 0.85))

	white := core.NewVec3(1, 1, 1)

	floor := s.AddMaterial(material.NewMaterial(white, white, 0.2, 0.8, 0.1, 10, 1, 1))
	glass := s.AddMaterial(material.NewMaterial(core.NewVec3(0.9, 0.95, 1), white, 0.02, 0.05, 0.6, 80, 0.1, 1.5))
	mirror := s.AddMaterial(material.NewMaterial(core.NewVec3(0.8, 0.8, 0.8), white, 0.05, 0.2, 0.8, 120, 1, 8))
	red := s.AddMaterial(material.NewMaterial(core.NewVec3(0.8, 0.15, 0.1), white, 0.15, 0.75, 0.3, 30, 1, 1.3))

	checker := s.AddTexture(material.NewCheckerboardTexture(256, 256, 32,
		core.NewVec3(0.9, 0.9, 0.2), // Yellow
		core.NewVec3(0.8, 0.1, 0.1), // Red
	))

	s.AddTriangles(NewGroundQuad(core.NewVec3(0, 0, -2), 12, floor, checker))
	s.AddPrimitive(
		geometry.NewSphere(core.NewVec3(-0.6, 0.8, -0.8), 0.6, glass),
		geometry.NewSphere(core.NewVec3(0.9, 0.7, -2.2), 0.7, mirror),
		geometry.NewSphere(core.NewVec3(-1.8, 0.4, -3), 0.4, red),
	)

	s.AddPointLight(lights.NewAttenuatedPointLight(core.NewVec3(3, 6, 3), core.NewVec3(1, 1, 0.95), 0.8, 0.02, 0.005))
	s.AddDirectionalLight(lights.NewDirectionalLight(core.NewVec3(-0.3, -1, -0.4), core.NewVec3(0.3, 0.3, 0.35)))

	return s
}
