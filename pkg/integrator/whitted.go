package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// WhittedIntegrator implements recursive Whitted-style ray tracing: Phong
// direct lighting with shadow rays, plus Fresnel-weighted mirror reflection
// and refraction up to a fixed depth.
//
// It only reads the scene, so one integrator can serve concurrent callers
// as long as each passes its own sampler.
type WhittedIntegrator struct {
	scene  *scene.Scene
	lights []lights.Light
	config Config
}

// NewWhittedIntegrator creates an integrator over a scene whose BVH has been built
func NewWhittedIntegrator(s *scene.Scene, config Config) *WhittedIntegrator {
	return &WhittedIntegrator{
		scene:  s,
		lights: s.Lights(),
		config: config,
	}
}

// RayColor implements Integrator
func (w *WhittedIntegrator) RayColor(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return w.TraceRay(ray, sampler)
}

// TraceRay shades a ray from depth 0 with nothing excluded.
// sampler may be nil when soft shadows are disabled.
func (w *WhittedIntegrator) TraceRay(ray core.Ray, sampler core.Sampler) core.Vec3 {
	return w.TraceRayDepth(ray, 0, nil, sampler)
}

// TraceRayDepth shades a ray at the given recursion depth, skipping ignore
// when finding the nearest hit. The result is not clamped.
func (w *WhittedIntegrator) TraceRayDepth(ray core.Ray, depth int, ignore geometry.Primitive, sampler core.Sampler) core.Vec3 {
	hit := w.scene.Raycast(ray, ignore)
	if !hit.Hit {
		return w.scene.Background
	}

	mat := w.scene.Material(hit)
	albedo := w.scene.Albedo(hit)

	I := ray.Direction.Negate()
	N := hit.Normal

	// A back-facing normal means the ray is leaving the surface
	leaving := !(I.Dot(N) > 0)
	if leaving {
		N = N.Negate()
	}

	color := albedo.Multiply(mat.Ka)

	for _, light := range w.lights {
		ls := light.Sample(hit.Point)
		s := w.Visibility(hit.Point, ls.Target, hit.Primitive, sampler)
		if s == 0 {
			continue
		}
		ds := phong(ls.Direction, N, I, albedo, mat)
		color = color.Add(ls.Color.MultiplyVec(ds).Multiply(s * ls.Attenuation))
	}

	if depth >= w.config.MaxDepth {
		return color
	}

	cosI := N.Dot(I)
	fr := Fresnel(cosI, mat.IOR)

	if fr != 0 {
		R := N.Multiply(2 * cosI).Subtract(I)
		reflected := w.TraceRayDepth(core.NewRay(hit.Point, R), depth+1, hit.Primitive, sampler)
		color = color.Add(reflected.Multiply(fr))
	}

	if weight := (1 - fr) * (1 - mat.Opacity); weight != 0 {
		ni, nt := mat.IOR, material.IORAir
		if leaving {
			ni, nt = material.IORAir, mat.IOR
		}
		if T, ok := Refract(I, N, ni/nt); ok {
			origin := hit.Point.Add(T.Multiply(w.config.RefractionOffset))
			transmitted := w.TraceRayDepth(core.NewRay(origin, T), depth+1, nil, sampler)
			color = color.Add(transmitted.Multiply(weight))
		}
	}

	return color
}

// phong returns the diffuse plus specular response to a unit-intensity light
// in direction L, before light color, shadowing and attenuation
func phong(L, N, I, albedo core.Vec3, mat material.Material) core.Vec3 {
	H := L.Add(I).Normalize()
	diffuse := albedo.Multiply(mat.Kd * math.Max(0, N.Dot(L)))
	specular := mat.Specular.Multiply(mat.Ks * math.Pow(math.Max(0, N.Dot(H)), mat.N))
	return diffuse.Add(specular)
}

// Fresnel returns Schlick's approximation of the reflected fraction,
// F0 + (1-F0)(1-cosθ)^5 with F0 = ((ior-1)/(ior+1))²
func Fresnel(cosTheta, ior float64) float64 {
	f0 := material.Material{IOR: ior}.F0()
	return f0 + (1-f0)*math.Pow(1-cosTheta, 5)
}

// Refract bends the incident direction I (pointing away from the surface,
// on the same side as N) through a boundary with relative index eta = ni/nt.
// It reports false on total internal reflection.
func Refract(I, N core.Vec3, eta float64) (core.Vec3, bool) {
	cosI := N.Dot(I)
	disc := 1 - eta*eta*(1-cosI*cosI)
	if !(disc >= 0) {
		return core.Vec3{}, false
	}
	T := N.Negate().Multiply(math.Sqrt(disc)).Add(N.Multiply(cosI).Subtract(I).Multiply(eta))
	return T, true
}

// Visibility returns the fraction of light from lightPos reaching point.
//
// With hard shadows a single ray is cast and an occluder lets through
// 1 - opacity. With soft shadows the light position is jittered inside a
// cube and each sample is either blocked or not. Only hits closer than the
// (jittered) light count as occluders.
func (w *WhittedIntegrator) Visibility(point, lightPos core.Vec3, ignore geometry.Primitive, sampler core.Sampler) float64 {
	if !w.config.SoftShadows {
		hit, blocked := w.occluder(point, lightPos, ignore)
		if !blocked {
			return 1
		}
		return min(1, 1-w.scene.Materials[hit.MaterialIndex].Opacity)
	}

	n := max(w.config.ShadowSamples, 1)
	visible := 0
	for i := 0; i < n; i++ {
		target := lightPos.Add(core.SampleInCube(sampler.Get3D(), w.config.ShadowJitter))
		if _, blocked := w.occluder(point, target, ignore); !blocked {
			visible++
		}
	}
	return float64(visible) / float64(n)
}

// occluder casts a shadow ray toward target and reports the nearest hit
// lying before it
func (w *WhittedIntegrator) occluder(point, target core.Vec3, ignore geometry.Primitive) (geometry.RaycastHit, bool) {
	toLight := target.Subtract(point)
	hit := w.scene.Raycast(core.NewRay(point, toLight), ignore)
	return hit, hit.Hit && hit.Distance < toLight.Length()
}
