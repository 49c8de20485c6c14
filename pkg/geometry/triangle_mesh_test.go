package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func quadMesh() *TriangleMesh {
	return &TriangleMesh{
		Vertices: []core.Vec3{
			core.NewVec3(0, 0, 0),
			core.NewVec3(1, 0, 0),
			core.NewVec3(1, 1, 0),
			core.NewVec3(0, 1, 0),
		},
		Faces: []int{0, 1, 2, 0, 2, 3},
	}
}

func TestTriangleMesh_Triangles(t *testing.T) {
	tris, err := quadMesh().Triangles(2, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(tris) != 2 {
		t.Fatalf("Expected 2 triangles, got %d", len(tris))
	}
	for i, tri := range tris {
		if tri.Material != 2 {
			t.Errorf("Triangle %d: expected material 2, got %d", i, tri.Material)
		}
		if tri.HasNormals || tri.HasTexCoords {
			t.Errorf("Triangle %d: expected no optional attributes", i)
		}
	}
	if tris[1].V2 != core.NewVec3(0, 1, 0) {
		t.Errorf("Unexpected second triangle vertex %v", tris[1].V2)
	}
}

func TestTriangleMesh_Attributes(t *testing.T) {
	mesh := quadMesh()
	up := core.NewVec3(0, 0, 1)
	mesh.Normals = []core.Vec3{up, up, up, up}
	mesh.TexCoords = []core.Vec2{
		core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(1, 1), core.NewVec2(0, 1),
	}

	// Texture coordinates are ignored without a texture to sample
	tris, err := mesh.Triangles(0, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !tris[0].HasNormals || tris[0].HasTexCoords {
		t.Errorf("Expected normals only, got normals=%v texcoords=%v", tris[0].HasNormals, tris[0].HasTexCoords)
	}

	tris, err = mesh.Triangles(0, &TriangleMeshOptions{Texture: 1})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !tris[0].HasTexCoords || tris[0].Texture != 1 {
		t.Errorf("Expected textured triangle, got %+v", tris[0])
	}
}

func TestTriangleMesh_Rotation(t *testing.T) {
	rotation := core.NewVec3(0, math.Pi/2, 0)
	center := core.NewVec3(0, 0, 0)
	tris, err := quadMesh().Triangles(0, &TriangleMeshOptions{Texture: NoTexture, Rotation: &rotation, Center: &center})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// 90° around Y maps +x to -z
	if !vecNear(tris[0].V1, core.NewVec3(0, 0, -1)) {
		t.Errorf("Expected rotated vertex (0,0,-1), got %v", tris[0].V1)
	}
	if !vecNear(tris[0].Normal(), core.NewVec3(1, 0, 0)) {
		t.Errorf("Expected rotated face normal (1,0,0), got %v", tris[0].Normal())
	}
}

func TestTriangleMesh_Errors(t *testing.T) {
	tests := []struct {
		name string
		mesh *TriangleMesh
		want error
	}{
		{
			name: "partial face",
			mesh: &TriangleMesh{Vertices: quadMesh().Vertices, Faces: []int{0, 1}},
			want: ErrBadFaceCount,
		},
		{
			name: "vertex out of range",
			mesh: &TriangleMesh{Vertices: quadMesh().Vertices, Faces: []int{0, 1, 4}},
			want: ErrFaceIndex,
		},
		{
			name: "missing normals",
			mesh: &TriangleMesh{Vertices: quadMesh().Vertices, Faces: []int{0, 1, 3}, Normals: []core.Vec3{{}, {}}},
			want: ErrFaceIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.mesh.Triangles(0, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}
}
