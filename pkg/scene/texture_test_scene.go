package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewTextureTestScene creates a scene demonstrating texture mapping on
// spheres (spherical UV) and triangles (interpolated UV)
func NewTextureTestScene() *Scene {
	s := New(NewCameraConfig(
		core.NewVec3(0, 2, 10),
		core.NewVec3(0, -1, -10),
		core.NewVec3(0, 1, 0),
		50,
		480, 270,
	), core.NewVec3(0.1, 0.1, 0.12))

	white := core.NewVec3(1, 1, 1)
	matte := s.AddMaterial(material.NewMaterial(white, white, 0.2, 0.8, 0.2, 20, 1, 1))

	checkerboard := s.AddTexture(material.NewCheckerboardTexture(256, 256, 32,
		core.NewVec3(0.9, 0.9, 0.9), // White
		core.NewVec3(0.2, 0.2, 0.8), // Blue
	))
	gradient := s.AddTexture(material.NewGradientTexture(256, 256,
		core.NewVec3(1.0, 0.2, 0.2), // Red (top)
		core.NewVec3(0.2, 1.0, 0.2), // Green (bottom)
	))
	fine := s.AddTexture(material.NewCheckerboardTexture(512, 512, 16,
		core.NewVec3(0.7, 0.3, 0.2), // Brick
		core.NewVec3(0.9, 0.9, 0.8), // Mortar
	))

	s.AddTriangles(NewGroundQuad(core.NewVec3(0, 0, 0), 16, matte, fine))
	s.AddPrimitive(
		geometry.NewTexturedSphere(core.NewVec3(-2.5, 1.2, 0), 1.2, matte, checkerboard),
		geometry.NewTexturedSphere(core.NewVec3(0, 1.2, -1), 1.2, matte, gradient),
	)

	// Upright textured quad
	panel := &geometry.TriangleMesh{
		Vertices: []core.Vec3{
			core.NewVec3(1.5, 0, 0), core.NewVec3(4, 0, 0), core.NewVec3(4, 2.5, 0), core.NewVec3(1.5, 2.5, 0),
		},
		Faces:     []int{0, 1, 2, 0, 2, 3},
		TexCoords: []core.Vec2{core.NewVec2(0, 1), core.NewVec2(1, 1), core.NewVec2(1, 0), core.NewVec2(0, 0)},
	}
	tris, _ := panel.Triangles(matte, &geometry.TriangleMeshOptions{Texture: checkerboard})
	s.AddTriangles(tris)

	s.AddPointLight(lights.NewPointLight(core.NewVec3(0, 8, 8), core.NewVec3(0.9, 0.9, 0.9)))

	return s
}
