package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidScene is wrapped by every error Validate returns
var ErrInvalidScene = errors.New("invalid scene")

// CameraConfig contains the viewing parameters of a scene
type CameraConfig struct {
	Eye     core.Vec3 // Eye position
	ViewDir core.Vec3 // Normalized viewing direction
	UpDir   core.Vec3 // Normalized up direction
	VFov    float64   // Vertical field of view in degrees
	Width   int       // Image width in pixels
	Height  int       // Image height in pixels
}

// NewCameraConfig creates a camera configuration, normalizing both directions
func NewCameraConfig(eye, viewDir, upDir core.Vec3, vfov float64, width, height int) CameraConfig {
	return CameraConfig{
		Eye:     eye,
		ViewDir: viewDir.Normalize(),
		UpDir:   upDir.Normalize(),
		VFov:    vfov,
		Width:   width,
		Height:  height,
	}
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera            CameraConfig
	Background        core.Vec3
	Materials         []material.Material
	Textures          []*material.ImageTexture
	Primitives        []geometry.Primitive
	PointLights       []*lights.PointLight
	DirectionalLights []*lights.DirectionalLight
	DepthCue          DepthCue

	BVH *geometry.BVH // Acceleration structure, built by ConstructBVH
}

// New creates an empty scene with the given camera and background
func New(camera CameraConfig, background core.Vec3) *Scene {
	return &Scene{
		Camera:     camera,
		Background: background,
		DepthCue:   DefaultDepthCue(),
	}
}

// AddMaterial appends a material and returns its index
func (s *Scene) AddMaterial(m material.Material) int {
	s.Materials = append(s.Materials, m)
	return len(s.Materials) - 1
}

// AddTexture appends a texture and returns its index
func (s *Scene) AddTexture(t *material.ImageTexture) int {
	s.Textures = append(s.Textures, t)
	return len(s.Textures) - 1
}

// AddPrimitive appends primitives to the scene
func (s *Scene) AddPrimitive(prims ...geometry.Primitive) {
	s.Primitives = append(s.Primitives, prims...)
}

// AddTriangles appends triangles to the scene
func (s *Scene) AddTriangles(tris []*geometry.Triangle) {
	for _, tri := range tris {
		s.Primitives = append(s.Primitives, tri)
	}
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(light *lights.PointLight) {
	s.PointLights = append(s.PointLights, light)
}

// AddDirectionalLight adds a directional light to the scene
func (s *Scene) AddDirectionalLight(light *lights.DirectionalLight) {
	s.DirectionalLights = append(s.DirectionalLights, light)
}

// Lights returns every light, point lights first
func (s *Scene) Lights() []lights.Light {
	all := make([]lights.Light, 0, len(s.PointLights)+len(s.DirectionalLights))
	for _, l := range s.PointLights {
		all = append(all, l)
	}
	for _, l := range s.DirectionalLights {
		all = append(all, l)
	}
	return all
}

// ConstructBVH builds the acceleration structure from the current primitives.
// It must be called again if primitives change.
func (s *Scene) ConstructBVH() {
	s.BVH = geometry.NewBVH(s.Primitives)
}

// Raycast returns the nearest hit along ray, skipping ignore (which may be nil).
// Before ConstructBVH it always reports no hit.
func (s *Scene) Raycast(ray core.Ray, ignore geometry.Primitive) geometry.RaycastHit {
	return s.BVH.Query(ray, ignore)
}

// Material returns the material a hit refers to
func (s *Scene) Material(hit geometry.RaycastHit) material.Material {
	return s.Materials[hit.MaterialIndex]
}

// Albedo resolves the diffuse color at a hit: the bound texture sampled at
// the hit's (u, v) when present, otherwise the material's flat diffuse color
func (s *Scene) Albedo(hit geometry.RaycastHit) core.Vec3 {
	if hit.TextureIndex != geometry.NoTexture {
		return s.Textures[hit.TextureIndex].Sample(hit.U, hit.V)
	}
	return s.Materials[hit.MaterialIndex].Diffuse
}

// Validate checks camera parameters and that every primitive references an
// existing material and texture
func (s *Scene) Validate() error {
	cam := s.Camera
	switch {
	case cam.Width <= 0 || cam.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d must be positive", ErrInvalidScene, cam.Width, cam.Height)
	case !(cam.VFov > 0):
		return fmt.Errorf("%w: vfov %v must be positive", ErrInvalidScene, cam.VFov)
	case cam.ViewDir.IsZero():
		return fmt.Errorf("%w: view direction is zero", ErrInvalidScene)
	case cam.UpDir.IsZero():
		return fmt.Errorf("%w: up direction is zero", ErrInvalidScene)
	case cam.ViewDir.Cross(cam.UpDir).IsZero():
		return fmt.Errorf("%w: view and up directions are parallel", ErrInvalidScene)
	}

	for i, m := range s.Materials {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("%w: material %d: %w", ErrInvalidScene, i, err)
		}
	}

	for i, t := range s.Textures {
		if t == nil || t.Width <= 0 || t.Height <= 0 || len(t.Pixels) != t.Width*t.Height {
			return fmt.Errorf("%w: texture %d is malformed", ErrInvalidScene, i)
		}
	}

	for i, p := range s.Primitives {
		if !p.Bounds().IsValid() {
			return fmt.Errorf("%w: primitive %d has degenerate bounds", ErrInvalidScene, i)
		}
		if m := p.MaterialIndex(); m < 0 || m >= len(s.Materials) {
			return fmt.Errorf("%w: primitive %d references material %d of %d", ErrInvalidScene, i, m, len(s.Materials))
		}
		if t := p.TextureIndex(); t != geometry.NoTexture && (t < 0 || t >= len(s.Textures)) {
			return fmt.Errorf("%w: primitive %d references texture %d of %d", ErrInvalidScene, i, t, len(s.Textures))
		}
	}

	return nil
}

// PrimitiveCounts returns the number of spheres and triangles in the scene
func (s *Scene) PrimitiveCounts() (spheres, triangles int) {
	for _, p := range s.Primitives {
		switch p.(type) {
		case *geometry.Sphere:
			spheres++
		case *geometry.Triangle:
			triangles++
		}
	}
	return spheres, triangles
}
