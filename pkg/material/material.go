package material

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// IORAir is the index of refraction assumed outside every surface
const IORAir = 1.0

// ErrOutOfRange is returned when a color channel or coefficient leaves [0, 1]
var ErrOutOfRange = errors.New("value out of range [0, 1]")

// Material holds the Phong parameters of a surface.
// Materials are immutable once added to a scene and are referenced by index.
type Material struct {
	Diffuse  core.Vec3 // Od, the flat diffuse color
	Specular core.Vec3 // Os, the specular highlight color
	Ka       float64   // Ambient coefficient
	Kd       float64   // Diffuse coefficient
	Ks       float64   // Specular coefficient
	N        float64   // Specular exponent
	Opacity  float64   // 1 is fully opaque
	IOR      float64   // Index of refraction
}

// NewMaterial creates a material from its Phong parameters
func NewMaterial(diffuse, specular core.Vec3, ka, kd, ks, n, opacity, ior float64) Material {
	return Material{
		Diffuse:  diffuse,
		Specular: specular,
		Ka:       ka,
		Kd:       kd,
		Ks:       ks,
		N:        n,
		Opacity:  opacity,
		IOR:      ior,
	}
}

// Validate checks that both colors and the three Phong coefficients lie in [0, 1]
func (m Material) Validate() error {
	if !colorInRange(m.Diffuse) {
		return fmt.Errorf("diffuse color %v: %w", m.Diffuse, ErrOutOfRange)
	}
	if !colorInRange(m.Specular) {
		return fmt.Errorf("specular color %v: %w", m.Specular, ErrOutOfRange)
	}
	for _, k := range []struct {
		name  string
		value float64
	}{{"ka", m.Ka}, {"kd", m.Kd}, {"ks", m.Ks}} {
		if !inUnit(k.value) {
			return fmt.Errorf("%s %v: %w", k.name, k.value, ErrOutOfRange)
		}
	}
	return nil
}

// F0 returns the Schlick reflectance at normal incidence, ((ior-1)/(ior+1))²
func (m Material) F0() float64 {
	r := (m.IOR - 1) / (m.IOR + 1)
	return r * r
}

func colorInRange(c core.Vec3) bool {
	return inUnit(c.X) && inUnit(c.Y) && inUnit(c.Z)
}

func inUnit(x float64) bool {
	return x >= 0 && x <= 1
}
