package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var logger = log.New("loaders")

var (
	// ErrMissingKey is returned when a required scene key is absent
	ErrMissingKey = errors.New("missing")
	// ErrBadValue is returned for too few or unparsable values
	ErrBadValue = errors.New("bad value")
	// ErrOutOfRange is returned when a color or coefficient leaves [0, 1]
	ErrOutOfRange = material.ErrOutOfRange
	// ErrBadIndex is returned when a face references a missing vertex
	// attribute or an object precedes the first mtlcolor
	ErrBadIndex = errors.New("bad index")
)

// SceneError reports the scene key that failed to load
type SceneError struct {
	Key  string // Scene file keyword, e.g. "mtlcolor"
	Line int    // 1-based line number, 0 when the key is missing entirely
	Err  error
}

func (e *SceneError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s is not properly defined (line %d: %v)", e.Key, e.Line, e.Err)
	}
	return fmt.Sprintf("%s is not properly defined (%v)", e.Key, e.Err)
}

func (e *SceneError) Unwrap() error {
	return e.Err
}

// directive is one non-empty, non-comment line of a scene file
type directive struct {
	key    string
	line   int
	values []string
}

// boundDirective is an object directive with the material and texture
// that were current when it appeared
type boundDirective struct {
	directive
	material int
	texture  int
}

// sceneParser collects directives, then builds the scene once every
// vertex is known so faces may reference vertices declared later
type sceneParser struct {
	baseDir   string
	unique    map[string]directive
	materials []directive
	textures  []directive
	spheres   []boundDirective
	lights    []directive
	vertices  []directive
	normals   []directive
	texCoords []directive
	faces     []boundDirective
	meshes    []boundDirective
}

// LoadScene reads and validates a scene file. Relative texture and mesh
// paths are resolved against the scene file's directory.
func LoadScene(path string) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	return ParseScene(file, filepath.Dir(path))
}

// ParseScene parses the scene description format:
//
//	eye x y z              viewdir x y z         updir x y z
//	vfov degrees           imsize width height   bkgcolor r g b
//	depthcueing r g b amax amin distmax distmin
//	mtlcolor Odr Odg Odb Osr Osg Osb ka kd ks n opacity ior
//	texture file.ppm|none
//	sphere cx cy cz r
//	light x y z w r g b [c1 c2 c3]   (w = 0 directional, 1 point)
//	attlight x y z w r g b c1 c2 c3
//	v x y z    vn x y z    vt u v
//	f v1 v2 v3   (each as v, v/vt, v//vn or v/vt/vn, 1-based)
//	mesh file.ply|file.gltf|file.glb [rx ry rz [cx cy cz]]
//
// Objects use the most recent mtlcolor and texture. Lines starting with '#'
// are comments.
func ParseScene(r io.Reader, baseDir string) (*scene.Scene, error) {
	p := &sceneParser{
		baseDir: baseDir,
		unique:  make(map[string]directive),
	}

	materialIdx, textureIdx := -1, geometry.NoTexture

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		d := directive{key: fields[0], line: lineNum, values: fields[1:]}
		bound := boundDirective{directive: d, material: materialIdx, texture: textureIdx}

		switch d.key {
		case "mtlcolor":
			p.materials = append(p.materials, d)
			materialIdx = len(p.materials) - 1
		case "texture":
			if len(d.values) == 1 && d.values[0] == "none" {
				textureIdx = geometry.NoTexture
				continue
			}
			p.textures = append(p.textures, d)
			textureIdx = len(p.textures) - 1
		case "sphere":
			p.spheres = append(p.spheres, bound)
		case "light", "attlight":
			p.lights = append(p.lights, d)
		case "v":
			p.vertices = append(p.vertices, d)
		case "vn":
			p.normals = append(p.normals, d)
		case "vt":
			p.texCoords = append(p.texCoords, d)
		case "f":
			p.faces = append(p.faces, bound)
		case "mesh":
			p.meshes = append(p.meshes, bound)
		case "eye", "viewdir", "updir", "vfov", "imsize", "bkgcolor", "depthcueing":
			p.unique[d.key] = d
		default:
			logger.Warningf("line %d: ignoring unknown key %q", lineNum, d.key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}

	return p.build()
}

// build validates directives in a fixed key order so the first reported
// error does not depend on line order
func (p *sceneParser) build() (*scene.Scene, error) {
	camera, err := p.camera()
	if err != nil {
		return nil, err
	}

	bkg, err := p.required("bkgcolor", 3)
	if err != nil {
		return nil, err
	}
	background, err := parseColor(bkg, 0)
	if err != nil {
		return nil, err
	}

	s := scene.New(camera, background)

	if d, ok := p.unique["depthcueing"]; ok {
		if s.DepthCue, err = parseDepthCue(d); err != nil {
			return nil, err
		}
	}

	if len(p.materials) == 0 {
		return nil, &SceneError{Key: "mtlcolor", Err: ErrMissingKey}
	}
	for _, d := range p.materials {
		m, err := parseMaterial(d)
		if err != nil {
			return nil, err
		}
		s.AddMaterial(m)
	}

	for _, d := range p.textures {
		if len(d.values) < 1 {
			return nil, &SceneError{Key: d.key, Line: d.line, Err: ErrBadValue}
		}
		tex, err := LoadImage(p.resolve(d.values[0]))
		if err != nil {
			return nil, &SceneError{Key: d.key, Line: d.line, Err: err}
		}
		s.AddTexture(tex)
	}

	for _, d := range p.spheres {
		sphere, err := parseSphere(d)
		if err != nil {
			return nil, err
		}
		s.AddPrimitive(sphere)
	}

	for _, d := range p.lights {
		if err := addLight(s, d); err != nil {
			return nil, err
		}
	}

	vertices, err := parseVectors(p.vertices, 3)
	if err != nil {
		return nil, err
	}
	normals, err := parseVectors(p.normals, 3)
	if err != nil {
		return nil, err
	}
	texCoords, err := parseVectors(p.texCoords, 2)
	if err != nil {
		return nil, err
	}

	for _, d := range p.faces {
		tri, err := parseFace(d, vertices, normals, texCoords)
		if err != nil {
			return nil, err
		}
		s.AddPrimitive(tri)
	}

	for _, d := range p.meshes {
		if err := p.addMesh(s, d); err != nil {
			return nil, err
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	spheres, triangles := s.PrimitiveCounts()
	logger.Infof("loaded scene: %d spheres, %d triangles, %d materials, %d textures, %d lights",
		spheres, triangles, len(s.Materials), len(s.Textures), len(s.PointLights)+len(s.DirectionalLights))
	return s, nil
}

func (p *sceneParser) camera() (scene.CameraConfig, error) {
	var cam scene.CameraConfig

	vectors := make(map[string]core.Vec3, 3)
	for _, key := range []string{"eye", "viewdir", "updir"} {
		d, err := p.required(key, 3)
		if err != nil {
			return cam, err
		}
		v, err := parseVec3(d, 0)
		if err != nil {
			return cam, err
		}
		if key != "eye" && v.IsZero() {
			return cam, &SceneError{Key: key, Line: d.line, Err: fmt.Errorf("%w: zero length", ErrBadValue)}
		}
		vectors[key] = v
	}

	d, err := p.required("vfov", 1)
	if err != nil {
		return cam, err
	}
	vfov, err := parseFloats(d, 0, 1)
	if err != nil {
		return cam, err
	}
	if !(vfov[0] > 0 && vfov[0] < 180) {
		return cam, &SceneError{Key: d.key, Line: d.line, Err: fmt.Errorf("%w: vfov must lie in (0, 180)", ErrBadValue)}
	}

	d, err = p.required("imsize", 2)
	if err != nil {
		return cam, err
	}
	width, errW := strconv.Atoi(d.values[0])
	height, errH := strconv.Atoi(d.values[1])
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		return cam, &SceneError{Key: d.key, Line: d.line, Err: fmt.Errorf("%w: size must be positive integers", ErrBadValue)}
	}

	if vectors["viewdir"].Cross(vectors["updir"]).IsZero() {
		updir := p.unique["updir"]
		return cam, &SceneError{Key: "updir", Line: updir.line, Err: fmt.Errorf("%w: parallel to viewdir", ErrBadValue)}
	}

	return scene.NewCameraConfig(vectors["eye"], vectors["viewdir"], vectors["updir"], vfov[0], width, height), nil
}

// required returns the directive for a unique key with at least n values
func (p *sceneParser) required(key string, n int) (directive, error) {
	d, ok := p.unique[key]
	if !ok {
		return d, &SceneError{Key: key, Err: ErrMissingKey}
	}
	if len(d.values) < n {
		return d, &SceneError{Key: key, Line: d.line, Err: fmt.Errorf("%w: need %d values, got %d", ErrBadValue, n, len(d.values))}
	}
	return d, nil
}

func (p *sceneParser) resolve(path string) string {
	if filepath.IsAbs(path) || p.baseDir == "" {
		return path
	}
	return filepath.Join(p.baseDir, path)
}

func (p *sceneParser) addMesh(s *scene.Scene, d boundDirective) error {
	fail := func(err error) error {
		return &SceneError{Key: d.key, Line: d.line, Err: err}
	}
	if d.material < 0 {
		return fail(fmt.Errorf("%w: mesh before any mtlcolor", ErrBadIndex))
	}
	if len(d.values) != 1 && len(d.values) != 4 && len(d.values) != 7 {
		return fail(fmt.Errorf("%w: expected file [rx ry rz [cx cy cz]]", ErrBadValue))
	}

	path := p.resolve(d.values[0])
	var mesh *geometry.TriangleMesh
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ply":
		mesh, err = LoadPLY(path)
	case ".gltf", ".glb":
		mesh, err = LoadGLTF(path)
	default:
		err = fmt.Errorf("%w: unsupported mesh format %s", ErrBadValue, filepath.Ext(path))
	}
	if err != nil {
		return fail(err)
	}

	options := &geometry.TriangleMeshOptions{Texture: d.texture}
	if len(d.values) >= 4 {
		rot, err := parseVec3(d.directive, 1)
		if err != nil {
			return err
		}
		rot = rot.Multiply(math.Pi / 180)
		options.Rotation = &rot
	}
	if len(d.values) == 7 {
		center, err := parseVec3(d.directive, 4)
		if err != nil {
			return err
		}
		options.Center = &center
	}

	tris, err := mesh.Triangles(d.material, options)
	if err != nil {
		return fail(err)
	}
	s.AddTriangles(tris)
	return nil
}

func parseFloats(d directive, offset, n int) ([]float64, error) {
	if len(d.values) < offset+n {
		return nil, &SceneError{Key: d.key, Line: d.line, Err: fmt.Errorf("%w: need %d values, got %d", ErrBadValue, offset+n, len(d.values))}
	}
	out := make([]float64, n)
	for i := range out {
		v, err := strconv.ParseFloat(d.values[offset+i], 64)
		if err != nil {
			return nil, &SceneError{Key: d.key, Line: d.line, Err: fmt.Errorf("%w: %q", ErrBadValue, d.values[offset+i])}
		}
		out[i] = v
	}
	return out, nil
}

func parseVec3(d directive, offset int) (core.Vec3, error) {
	f, err := parseFloats(d, offset, 3)
	if err != nil {
		return core.Vec3{}, err
	}
	return core.NewVec3(f[0], f[1], f[2]), nil
}

// parseColor reads an RGB triple with every channel in [0, 1]
func parseColor(d directive, offset int) (core.Vec3, error) {
	c, err := parseVec3(d, offset)
	if err != nil {
		return c, err
	}
	for _, ch := range []float64{c.X, c.Y, c.Z} {
		if ch < 0 || ch > 1 {
			return c, &SceneError{Key: d.key, Line: d.line, Err: fmt.Errorf("color %v: %w", c, ErrOutOfRange)}
		}
	}
	return c, nil
}

func parseDepthCue(d directive) (scene.DepthCue, error) {
	var dc scene.DepthCue
	color, err := parseColor(d, 0)
	if err != nil {
		return dc, err
	}
	f, err := parseFloats(d, 3, 4)
	if err != nil {
		return dc, err
	}
	amax, amin, distmax, distmin := f[0], f[1], f[2], f[3]
	if amax < 0 || amax > 1 || amin < 0 || amin > 1 {
		return dc, &SceneError{Key: d.key, Line: d.line, Err: fmt.Errorf("amax %v amin %v: %w", amax, amin, ErrOutOfRange)}
	}
	if distmax < distmin {
		return dc, &SceneError{Key: d.key, Line: d.line, Err: fmt.Errorf("%w: distmax less than distmin", ErrBadValue)}
	}
	return scene.DepthCue{Color: color, AMax: amax, AMin: amin, DistMax: distmax, DistMin: distmin}, nil
}

func parseMaterial(d directive) (material.Material, error) {
	f, err := parseFloats(d, 0, 12)
	if err != nil {
		return material.Material{}, err
	}
	m := material.NewMaterial(
		core.NewVec3(f[0], f[1], f[2]),
		core.NewVec3(f[3], f[4], f[5]),
		f[6], f[7], f[8], f[9], f[10], f[11])
	if err := m.Validate(); err != nil {
		return m, &SceneError{Key: d.key, Line: d.line, Err: err}
	}
	return m, nil
}

func parseSphere(d boundDirective) (*geometry.Sphere, error) {
	if d.material < 0 {
		return nil, &SceneError{Key: d.key, Line: d.line, Err: fmt.Errorf("%w: sphere before any mtlcolor", ErrBadIndex)}
	}
	f, err := parseFloats(d.directive, 0, 4)
	if err != nil {
		return nil, err
	}
	center := core.NewVec3(f[0], f[1], f[2])
	if d.texture != geometry.NoTexture {
		return geometry.NewTexturedSphere(center, f[3], d.material, d.texture), nil
	}
	return geometry.NewSphere(center, f[3], d.material), nil
}

func addLight(s *scene.Scene, d directive) error {
	f, err := parseFloats(d, 0, 7)
	if err != nil {
		return err
	}
	pos := core.NewVec3(f[0], f[1], f[2])
	color := core.NewVec3(f[4], f[5], f[6])
	if f[3] != 0 && f[3] != 1 {
		return &SceneError{Key: d.key, Line: d.line, Err: fmt.Errorf("%w: w must be 0 or 1", ErrBadValue)}
	}
	if color.X < 0 || color.Y < 0 || color.Z < 0 {
		return &SceneError{Key: d.key, Line: d.line, Err: fmt.Errorf("%w: negative color", ErrBadValue)}
	}

	if f[3] == 0 {
		s.AddDirectionalLight(lights.NewDirectionalLight(pos, color))
		return nil
	}

	// Coefficients that are missing, unparsable or negative leave the light unattenuated
	if c, err := parseFloats(d, 7, 3); err == nil && c[0] >= 0 && c[1] >= 0 && c[2] >= 0 {
		s.AddPointLight(lights.NewAttenuatedPointLight(pos, color, c[0], c[1], c[2]))
		return nil
	}
	if d.key == "attlight" {
		logger.Warningf("line %d: attlight without valid coefficients is unattenuated", d.line)
	}
	s.AddPointLight(lights.NewPointLight(pos, color))
	return nil
}

// parseVectors parses v/vn/vt lines; vt yields Z = 0
func parseVectors(ds []directive, n int) ([]core.Vec3, error) {
	out := make([]core.Vec3, len(ds))
	for i, d := range ds {
		f, err := parseFloats(d, 0, n)
		if err != nil {
			return nil, err
		}
		out[i].X, out[i].Y = f[0], f[1]
		if n == 3 {
			out[i].Z = f[2]
		}
	}
	return out, nil
}

// parseFace builds a triangle from the first three vertex references
func parseFace(d boundDirective, vertices, normals, texCoords []core.Vec3) (*geometry.Triangle, error) {
	fail := func(err error) error {
		return &SceneError{Key: d.key, Line: d.line, Err: err}
	}
	if d.material < 0 {
		return nil, fail(fmt.Errorf("%w: face before any mtlcolor", ErrBadIndex))
	}
	if len(d.values) < 3 {
		return nil, fail(fmt.Errorf("%w: need 3 vertices, got %d", ErrBadValue, len(d.values)))
	}

	var v, vn [3]core.Vec3
	var vt [3]core.Vec2
	withNormals, withTexCoords := 0, 0

	for i := 0; i < 3; i++ {
		parts := strings.Split(d.values[i], "/")
		if len(parts) > 3 {
			return nil, fail(fmt.Errorf("%w: %q", ErrBadValue, d.values[i]))
		}

		idx, err := faceIndex(parts[0], len(vertices))
		if err != nil {
			return nil, fail(err)
		}
		v[i] = vertices[idx]

		if len(parts) > 1 && parts[1] != "" {
			idx, err := faceIndex(parts[1], len(texCoords))
			if err != nil {
				return nil, fail(err)
			}
			vt[i] = core.NewVec2(texCoords[idx].X, texCoords[idx].Y)
			withTexCoords++
		}
		if len(parts) > 2 && parts[2] != "" {
			idx, err := faceIndex(parts[2], len(normals))
			if err != nil {
				return nil, fail(err)
			}
			vn[i] = normals[idx]
			withNormals++
		}
	}

	if (withNormals != 0 && withNormals != 3) || (withTexCoords != 0 && withTexCoords != 3) {
		return nil, fail(fmt.Errorf("%w: vertices mix attribute forms", ErrBadValue))
	}

	var opts []geometry.TriangleOption
	if withNormals == 3 {
		opts = append(opts, geometry.WithNormals(vn[0], vn[1], vn[2]))
	}
	if withTexCoords == 3 && d.texture != geometry.NoTexture {
		opts = append(opts, geometry.WithTexCoords(d.texture, vt[0], vt[1], vt[2]))
	}
	return geometry.NewTriangle(v[0], v[1], v[2], d.material, opts...), nil
}

// faceIndex converts a 1-based reference into a slice index
func faceIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadValue, s)
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("%w: %d of %d", ErrBadIndex, i, n)
	}
	return i - 1, nil
}
