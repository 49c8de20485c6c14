package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func unitTriangle(opts ...TriangleOption) *Triangle {
	return NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		1, opts...)
}

func TestTriangle_Precomputed(t *testing.T) {
	tri := NewTriangle(core.NewVec3(0, 0, 2), core.NewVec3(1, 0, 2), core.NewVec3(0, 1, 2), 0)
	if !vecNear(tri.Normal(), core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected face normal (0,0,1), got %v", tri.Normal())
	}
	if tri.PlaneOffset() != -2 {
		t.Errorf("Expected plane offset -2, got %v", tri.PlaneOffset())
	}
	if !vecNear(tri.Centroid(), core.NewVec3(1.0/3, 1.0/3, 2)) {
		t.Errorf("Unexpected centroid %v", tri.Centroid())
	}
}

func TestTriangle_Intersect(t *testing.T) {
	tri := unitTriangle()

	tests := []struct {
		name      string
		ray       core.Ray
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "Ray hits triangle interior",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray hits from below",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -2), core.NewVec3(0, 0, 1)),
			shouldHit: true,
			expectedT: 2.0,
		},
		{
			name:      "Ray hits triangle edge",
			ray:       core.NewRay(core.NewVec3(0.5, 0, 1), core.NewVec3(0, 0, -1)),
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray misses outside hypotenuse",
			ray:       core.NewRay(core.NewVec3(0.75, 0.75, 1), core.NewVec3(0, 0, -1)),
			shouldHit: false,
		},
		{
			name:      "Plane behind origin",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "Ray parallel to plane",
			ray:       core.NewRay(core.NewVec3(-1, 0.25, 1), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
		{
			name:      "Ray inside plane",
			ray:       core.NewRay(core.NewVec3(-1, 0.25, 0), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := tri.Intersect(tt.ray)
			if hit.Hit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, hit.Hit)
			}
			if tt.shouldHit && math.Abs(hit.Distance-tt.expectedT) > tolerance {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.Distance)
			}
		})
	}
}

func TestTriangle_BarycentricAtHit(t *testing.T) {
	tri := unitTriangle()
	hit := tri.Intersect(core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)))
	if !hit.Hit {
		t.Fatal("Expected hit")
	}
	if !vecNear(hit.Point, core.NewVec3(0.25, 0.25, 0)) {
		t.Errorf("Expected point (0.25,0.25,0), got %v", hit.Point)
	}

	alpha, beta, gamma := tri.Barycentric(hit.Point)
	if math.Abs(alpha+beta+gamma-1) > tolerance {
		t.Errorf("Expected weights to sum to 1, got %v", alpha+beta+gamma)
	}
	for _, w := range []float64{alpha, beta, gamma} {
		if w < 0 || w > 1 {
			t.Errorf("Weight %v outside [0,1]", w)
		}
	}
	if math.Abs(beta-0.25) > tolerance || math.Abs(gamma-0.25) > tolerance {
		t.Errorf("Expected beta=gamma=0.25, got %v %v", beta, gamma)
	}
}

func TestTriangle_InterpolatedAttributes(t *testing.T) {
	up := core.NewVec3(0, 0, 1)
	tilted := core.NewVec3(1, 0, 1).Normalize()
	tri := unitTriangle(
		WithNormals(up, tilted, up),
		WithTexCoords(4, core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0, 1)),
	)

	hit := tri.Intersect(core.NewRay(core.NewVec3(0.5, 0.25, 1), core.NewVec3(0, 0, -1)))
	if !hit.Hit {
		t.Fatal("Expected hit")
	}
	if math.Abs(hit.Normal.Length()-1) > tolerance {
		t.Errorf("Expected unit interpolated normal, got length %v", hit.Normal.Length())
	}
	if hit.Normal.X <= 0 {
		t.Errorf("Expected normal tilted toward +x, got %v", hit.Normal)
	}
	// With uv equal to (x, y) at the vertices, interpolation reproduces the hit position
	if math.Abs(hit.U-0.5) > tolerance || math.Abs(hit.V-0.25) > tolerance {
		t.Errorf("Expected uv (0.5, 0.25), got (%v, %v)", hit.U, hit.V)
	}
	if hit.TextureIndex != 4 {
		t.Errorf("Expected texture 4, got %d", hit.TextureIndex)
	}
}

func TestTriangle_FlatNormalWithoutVertexNormals(t *testing.T) {
	tri := unitTriangle()
	hit := tri.Intersect(core.NewRay(core.NewVec3(0.1, 0.1, -1), core.NewVec3(0, 0, 1)))
	if !hit.Hit {
		t.Fatal("Expected hit")
	}
	// The face normal is reported as-is, even when seen from behind
	if !vecNear(hit.Normal, core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected face normal (0,0,1), got %v", hit.Normal)
	}
	if hit.TextureIndex != NoTexture {
		t.Errorf("Expected no texture, got %d", hit.TextureIndex)
	}
}

func TestTriangle_DegenerateIsMiss(t *testing.T) {
	// Collinear vertices: zero area, zero normal, zero denominator
	tri := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), 0)
	hit := tri.Intersect(core.NewRay(core.NewVec3(0.5, 1, 0), core.NewVec3(0, -1, 0)))
	if hit.Hit {
		t.Errorf("Expected degenerate triangle to report no hit, got %+v", hit)
	}
}
