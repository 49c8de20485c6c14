package loaders

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// ErrNoGeometry is returned when a glTF document holds no triangle primitives
var ErrNoGeometry = errors.New("no triangle geometry")

// LoadGLTF loads a glTF (.gltf) or binary glTF (.glb) file as a single
// triangle mesh
func LoadGLTF(path string) (*geometry.TriangleMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := MeshFromGLTF(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debugf("loaded glTF %s: %d vertices, %d triangles", path, len(mesh.Vertices), len(mesh.Faces)/3)
	return mesh, nil
}

// MeshFromGLTF merges every triangle primitive of every mesh in doc.
//
// Node transforms are not applied. Normals and texture coordinates are kept
// only when every merged primitive provides them. glTF's counter-clockwise
// winding and top-left UV origin match the triangle conventions used here.
func MeshFromGLTF(doc *gltf.Document) (*geometry.TriangleMesh, error) {
	mesh := &geometry.TriangleMesh{}
	hasNormals, hasTexCoords := true, true
	var normals []core.Vec3
	var texCoords []core.Vec2

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				// Skip non-triangle primitives (lines, points, etc)
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: read positions: %w", m.Name, err)
			}

			base := len(mesh.Vertices)
			for _, p := range positions {
				mesh.Vertices = append(mesh.Vertices, vec3From32(p))
			}

			if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok && hasNormals {
				data, err := modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read normals: %w", m.Name, err)
				}
				for _, n := range data {
					normals = append(normals, vec3From32(n))
				}
			} else {
				hasNormals = false
			}

			if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok && hasTexCoords {
				data, err := modeler.ReadTextureCoord(doc, doc.Accessors[uvIdx], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read uvs: %w", m.Name, err)
				}
				for _, uv := range data {
					texCoords = append(texCoords, core.NewVec2(float64(uv[0]), float64(uv[1])))
				}
			} else {
				hasTexCoords = false
			}

			if prim.Indices != nil {
				indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read indices: %w", m.Name, err)
				}
				for i := 0; i+2 < len(indices); i += 3 {
					mesh.Faces = append(mesh.Faces,
						base+int(indices[i]), base+int(indices[i+1]), base+int(indices[i+2]))
				}
			} else {
				// No indices, assume sequential triangles
				for i := 0; i+2 < len(positions); i += 3 {
					mesh.Faces = append(mesh.Faces, base+i, base+i+1, base+i+2)
				}
			}
		}
	}

	if len(mesh.Faces) == 0 {
		return nil, ErrNoGeometry
	}
	if hasNormals && len(normals) == len(mesh.Vertices) {
		mesh.Normals = normals
	}
	if hasTexCoords && len(texCoords) == len(mesh.Vertices) {
		mesh.TexCoords = texCoords
	}
	return mesh, nil
}

func vec3From32(v [3]float32) core.Vec3 {
	return core.NewVec3(float64(v[0]), float64(v[1]), float64(v[2]))
}
