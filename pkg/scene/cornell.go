package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCornellScene creates a Cornell box built from triangles, with a glass
// and a mirror sphere, lit by an attenuated point light below the ceiling
func NewCornellScene() *Scene {
	// Cornell box dimensions (standard 555x555x555 units)
	const boxSize = 555.0

	s := New(NewCameraConfig(
		core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, 1, 0),
		40,
		400, 400,
	), core.NewVec3(0, 0, 0))

	black := core.NewVec3(0, 0, 0)
	white := core.NewVec3(1, 1, 1)

	wallWhite := s.AddMaterial(material.NewMaterial(core.NewVec3(0.73, 0.73, 0.73), black, 0.1, 0.9, 0, 1, 1, 1))
	wallRed := s.AddMaterial(material.NewMaterial(core.NewVec3(0.65, 0.05, 0.05), black, 0.1, 0.9, 0, 1, 1, 1))
	wallGreen := s.AddMaterial(material.NewMaterial(core.NewVec3(0.12, 0.45, 0.15), black, 0.1, 0.9, 0, 1, 1, 1))
	glass := s.AddMaterial(material.NewMaterial(white, white, 0, 0.05, 0.5, 100, 0.05, 1.5))
	mirror := s.AddMaterial(material.NewMaterial(core.NewVec3(0.9, 0.9, 0.9), white, 0.05, 0.1, 0.8, 200, 1, 20))

	corners := []core.Vec3{
		core.NewVec3(0, 0, 0),                   // 0: left-bottom-front
		core.NewVec3(boxSize, 0, 0),             // 1: right-bottom-front
		core.NewVec3(boxSize, boxSize, 0),       // 2: right-top-front
		core.NewVec3(0, boxSize, 0),             // 3: left-top-front
		core.NewVec3(0, 0, boxSize),             // 4: left-bottom-back
		core.NewVec3(boxSize, 0, boxSize),       // 5: right-bottom-back
		core.NewVec3(boxSize, boxSize, boxSize), // 6: right-top-back
		core.NewVec3(0, boxSize, boxSize),       // 7: left-top-back
	}

	walls := []struct {
		faces []int
		mat   int
	}{
		{[]int{0, 4, 5, 0, 5, 1}, wallWhite}, // Floor
		{[]int{3, 2, 6, 3, 6, 7}, wallWhite}, // Ceiling
		{[]int{4, 7, 6, 4, 6, 5}, wallWhite}, // Back wall
		{[]int{0, 3, 7, 0, 7, 4}, wallRed},   // Left wall
		{[]int{1, 5, 6, 1, 6, 2}, wallGreen}, // Right wall
	}
	for _, wall := range walls {
		mesh := &geometry.TriangleMesh{Vertices: corners, Faces: wall.faces}
		tris, _ := mesh.Triangles(wall.mat, nil)
		s.AddTriangles(tris)
	}

	s.AddPrimitive(
		geometry.NewSphere(core.NewVec3(190, 90, 190), 90, glass),
		geometry.NewSphere(core.NewVec3(370, 120, 370), 120, mirror),
	)

	s.AddPointLight(lights.NewAttenuatedPointLight(core.NewVec3(278, 540, 278), core.NewVec3(1, 1, 1), 1, 0.0005, 0.000002))

	return s
}
