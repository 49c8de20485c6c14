package loaders

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// quadDocument builds a glTF document with a single indexed quad
func quadDocument(withNormals bool) *gltf.Document {
	doc := gltf.NewDocument()

	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	attrs := map[string]int{
		gltf.POSITION:   modeler.WritePosition(doc, positions),
		gltf.TEXCOORD_0: modeler.WriteTextureCoord(doc, [][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}),
	}
	if withNormals {
		attrs[gltf.NORMAL] = modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	}

	doc.Meshes = []*gltf.Mesh{{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})),
			Attributes: attrs,
		}},
	}}
	return doc
}

func TestMeshFromGLTF(t *testing.T) {
	mesh, err := MeshFromGLTF(quadDocument(true))
	if err != nil {
		t.Fatalf("MeshFromGLTF failed: %v", err)
	}

	if len(mesh.Vertices) != 4 {
		t.Fatalf("Expected 4 vertices, got %d", len(mesh.Vertices))
	}
	if mesh.Vertices[2] != core.NewVec3(1, 1, 0) {
		t.Errorf("Vertex 2 = %v, want (1,1,0)", mesh.Vertices[2])
	}

	expectedFaces := []int{0, 1, 2, 0, 2, 3}
	if len(mesh.Faces) != len(expectedFaces) {
		t.Fatalf("Expected %d face indices, got %d", len(expectedFaces), len(mesh.Faces))
	}
	for i, want := range expectedFaces {
		if mesh.Faces[i] != want {
			t.Errorf("Face index %d = %d, want %d", i, mesh.Faces[i], want)
		}
	}

	if len(mesh.Normals) != 4 || mesh.Normals[0] != core.NewVec3(0, 0, 1) {
		t.Errorf("Unexpected normals %v", mesh.Normals)
	}
	if len(mesh.TexCoords) != 4 || mesh.TexCoords[3] != core.NewVec2(0, 0) {
		t.Errorf("Unexpected texture coordinates %v", mesh.TexCoords)
	}

	// The resulting mesh must be buildable into triangles
	tris, err := mesh.Triangles(0, nil)
	if err != nil {
		t.Fatalf("Triangles failed: %v", err)
	}
	if len(tris) != 2 {
		t.Errorf("Expected 2 triangles, got %d", len(tris))
	}
}

func TestMeshFromGLTF_NoNormals(t *testing.T) {
	mesh, err := MeshFromGLTF(quadDocument(false))
	if err != nil {
		t.Fatalf("MeshFromGLTF failed: %v", err)
	}
	if mesh.Normals != nil {
		t.Errorf("Expected no normals, got %v", mesh.Normals)
	}
	if len(mesh.TexCoords) != 4 {
		t.Errorf("Expected texture coordinates to be kept, got %d", len(mesh.TexCoords))
	}
}

func TestMeshFromGLTF_Empty(t *testing.T) {
	if _, err := MeshFromGLTF(gltf.NewDocument()); !errors.Is(err, ErrNoGeometry) {
		t.Errorf("Expected ErrNoGeometry, got %v", err)
	}
}

func TestLoadGLTF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.glb")
	if err := gltf.SaveBinary(quadDocument(true), path); err != nil {
		t.Fatalf("SaveBinary failed: %v", err)
	}

	mesh, err := LoadGLTF(path)
	if err != nil {
		t.Fatalf("LoadGLTF failed: %v", err)
	}
	if len(mesh.Faces) != 6 {
		t.Errorf("Expected 2 triangles, got %d indices", len(mesh.Faces))
	}

	if _, err := LoadGLTF("/nonexistent/path.glb"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}
