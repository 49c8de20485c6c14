package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// ErrBadPLY is wrapped by every PLY decoding error
var ErrBadPLY = errors.New("malformed PLY")

// plyProperty is a property definition from the PLY header
type plyProperty struct {
	Name      string
	Type      string // Scalar type, or element type for lists
	IsList    bool
	CountType string // For list properties, the type of the count
}

// plyElement is an element block (vertex, face, ...) from the PLY header
type plyElement struct {
	Name  string
	Count int
	Props []plyProperty
}

// plyHeader represents the parsed header of a PLY file
type plyHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Elements []plyElement
}

// LoadPLY loads a PLY file as a triangle mesh
func LoadPLY(filename string) (*geometry.TriangleMesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	logger.Debugf("loaded PLY %s: %d vertices, %d triangles", filename, len(mesh.Vertices), len(mesh.Faces)/3)
	return mesh, nil
}

// ReadPLY decodes ASCII or binary PLY data. Vertex positions, normals
// (nx ny nz) and texture coordinates (u v, s t or texture_u texture_v) are
// read; polygonal faces are fan-triangulated. Other elements are skipped.
func ReadPLY(r io.Reader) (*geometry.TriangleMesh, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, err
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		values = &plyASCIIReader{tokens: newTokenReader(reader)}
	case "binary_little_endian":
		values = &plyBinaryReader{r: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &plyBinaryReader{r: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrBadPLY, header.Format)
	}

	mesh := &geometry.TriangleMesh{}
	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = readPLYVertices(values, element, mesh)
		case "face":
			err = readPLYFaces(values, element, mesh)
		default:
			err = skipPLYElement(values, element)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: element %s: %v", ErrBadPLY, element.Name, err)
		}
	}

	return mesh, nil
}

// parsePLYHeader reads up to and including the end_header line
func parsePLYHeader(reader *bufio.Reader) (*plyHeader, error) {
	header := &plyHeader{}
	first := true

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: header: %v", ErrBadPLY, err)
		}
		parts := strings.Fields(line)

		if first {
			if len(parts) != 1 || parts[0] != "ply" {
				return nil, fmt.Errorf("%w: missing magic number", ErrBadPLY)
			}
			first = false
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid format line", ErrBadPLY)
			}
			header.Format = parts[1]
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid element line", ErrBadPLY)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count: %s", ErrBadPLY, parts[2])
			}
			header.Elements = append(header.Elements, plyElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("%w: property before element", ErrBadPLY)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Props = append(current.Props, prop)
		case "comment", "obj_info":
		default:
			return nil, fmt.Errorf("%w: unknown header keyword %q", ErrBadPLY, parts[0])
		}
	}
}

// parsePLYProperty parses the fields after "property"
func parsePLYProperty(parts []string) (plyProperty, error) {
	if len(parts) >= 4 && parts[0] == "list" {
		if plyTypeSize(parts[1]) == 0 || plyTypeSize(parts[2]) == 0 {
			return plyProperty{}, fmt.Errorf("%w: unknown list types %s %s", ErrBadPLY, parts[1], parts[2])
		}
		return plyProperty{Name: parts[3], Type: parts[2], IsList: true, CountType: parts[1]}, nil
	}
	if len(parts) != 2 || plyTypeSize(parts[0]) == 0 {
		return plyProperty{}, fmt.Errorf("%w: invalid property definition %v", ErrBadPLY, parts)
	}
	return plyProperty{Name: parts[1], Type: parts[0]}, nil
}

// plyTypeSize returns the byte size of a scalar type, or 0 if unknown
func plyTypeSize(dataType string) int {
	switch dataType {
	case "char", "uchar", "int8", "uint8":
		return 1
	case "short", "ushort", "int16", "uint16":
		return 2
	case "int", "uint", "int32", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

func readPLYVertices(values plyValueReader, element plyElement, mesh *geometry.TriangleMesh) error {
	index := make(map[string]int, len(element.Props))
	for i, prop := range element.Props {
		index[prop.Name] = i
	}
	lookup := func(names ...string) (int, bool) {
		for _, name := range names {
			if i, ok := index[name]; ok {
				return i, true
			}
		}
		return 0, false
	}

	px, okX := lookup("x")
	py, okY := lookup("y")
	pz, okZ := lookup("z")
	if !okX || !okY || !okZ {
		return errors.New("vertex element lacks x, y, z")
	}
	nx, okNX := lookup("nx")
	ny, okNY := lookup("ny")
	nz, okNZ := lookup("nz")
	hasNormals := okNX && okNY && okNZ
	tu, okU := lookup("u", "s", "texture_u")
	tv, okV := lookup("v", "t", "texture_v")
	hasTexCoords := okU && okV

	mesh.Vertices = make([]core.Vec3, element.Count)
	if hasNormals {
		mesh.Normals = make([]core.Vec3, element.Count)
	}
	if hasTexCoords {
		mesh.TexCoords = make([]core.Vec2, element.Count)
	}

	row := make([]float64, len(element.Props))
	for v := 0; v < element.Count; v++ {
		for i, prop := range element.Props {
			if prop.IsList {
				if err := skipPLYList(values, prop); err != nil {
					return err
				}
				continue
			}
			val, err := values.read(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", v, err)
			}
			row[i] = val
		}

		mesh.Vertices[v] = core.NewVec3(row[px], row[py], row[pz])
		if hasNormals {
			mesh.Normals[v] = core.NewVec3(row[nx], row[ny], row[nz])
		}
		if hasTexCoords {
			mesh.TexCoords[v] = core.NewVec2(row[tu], row[tv])
		}
	}
	return nil
}

func readPLYFaces(values plyValueReader, element plyElement, mesh *geometry.TriangleMesh) error {
	for f := 0; f < element.Count; f++ {
		for _, prop := range element.Props {
			isIndices := prop.IsList && (prop.Name == "vertex_indices" || prop.Name == "vertex_index")
			if !isIndices {
				if err := skipPLYProperty(values, prop); err != nil {
					return err
				}
				continue
			}

			count, err := values.read(prop.CountType)
			if err != nil {
				return fmt.Errorf("face %d: %w", f, err)
			}
			if count < 0 {
				return fmt.Errorf("face %d: negative vertex count", f)
			}
			polygon := make([]int, int(count))
			for i := range polygon {
				idx, err := values.read(prop.Type)
				if err != nil {
					return fmt.Errorf("face %d: %w", f, err)
				}
				polygon[i] = int(idx)
			}

			// Fan triangulation
			for i := 1; i+1 < len(polygon); i++ {
				mesh.Faces = append(mesh.Faces, polygon[0], polygon[i], polygon[i+1])
			}
		}
	}
	return nil
}

func skipPLYElement(values plyValueReader, element plyElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Props {
			if err := skipPLYProperty(values, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipPLYProperty(values plyValueReader, prop plyProperty) error {
	if prop.IsList {
		return skipPLYList(values, prop)
	}
	_, err := values.read(prop.Type)
	return err
}

func skipPLYList(values plyValueReader, prop plyProperty) error {
	count, err := values.read(prop.CountType)
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		if _, err := values.read(prop.Type); err != nil {
			return err
		}
	}
	return nil
}

// plyValueReader reads one scalar of the given PLY type as float64
type plyValueReader interface {
	read(dataType string) (float64, error)
}

type plyASCIIReader struct {
	tokens *tokenReader
}

func (r *plyASCIIReader) read(string) (float64, error) {
	return r.tokens.nextFloat()
}

type plyBinaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (r *plyBinaryReader) read(dataType string) (float64, error) {
	size := plyTypeSize(dataType)
	b := r.buf[:size]
	if _, err := io.ReadFull(r.r, b); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(r.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(r.order.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(r.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(r.order.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(r.order.Uint32(b))), nil
	default:
		return math.Float64frombits(r.order.Uint64(b)), nil
	}
}
