package core

import (
	"math"
	"testing"
)

func TestAABB_IntersectsRay(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{"straight through", NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)), true},
		{"parallel outside slab", NewRay(NewVec3(-5, 5, 0), NewVec3(1, 0, 0)), false},
		{"pointing away", NewRay(NewVec3(-5, 0, 0), NewVec3(-1, 0, 0)), false},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(0, 1, 0)), true},
		{"diagonal hit", NewRay(NewVec3(-5, -5, -5), NewVec3(1, 1, 1)), true},
		{"diagonal miss", NewRay(NewVec3(-5, 5, 0), NewVec3(1, 1, 0)), false},
		{"origin on slab boundary", NewRay(NewVec3(-5, 1, 0), NewVec3(1, 0, 0)), false},
		{"box behind origin", NewRay(NewVec3(5, 0, 0), NewVec3(1, 0, 0)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.IntersectsRay(tt.ray); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAABB_IntersectsRayFlatBox(t *testing.T) {
	// Bound of a triangle lying in the z=0 plane
	flat := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 0, 0), NewVec3(0, 1, 0))
	ray := NewRay(NewVec3(0.25, 0.25, 1), NewVec3(0, 0, -1))
	if !flat.IntersectsRay(ray) {
		t.Error("Expected ray to hit flat box")
	}

	degenerate := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 0))
	across := NewRay(NewVec3(0.5, 0.5, -1), NewVec3(0, 0, 1))
	if !degenerate.IntersectsRay(across) {
		t.Error("Expected perpendicular ray to hit degenerate box")
	}

	// A ray travelling inside the plane of a flat box produces 0*Inf = NaN
	// and comes out as a miss.
	inPlane := NewRay(NewVec3(-1, 0.5, 0), NewVec3(1, 0, 0))
	if degenerate.IntersectsRay(inPlane) {
		t.Error("Expected in-plane ray to miss degenerate box")
	}
}

func TestAABB_Constructors(t *testing.T) {
	s := NewAABBFromSphere(NewVec3(1, 2, 3), 2)
	if s.Min != NewVec3(-1, 0, 1) || s.Max != NewVec3(3, 4, 5) {
		t.Errorf("Unexpected sphere bound %v %v", s.Min, s.Max)
	}

	p := NewAABBFromPoints(NewVec3(1, -2, 3), NewVec3(-1, 5, 0), NewVec3(0, 0, 9))
	if p.Min != NewVec3(-1, -2, 0) || p.Max != NewVec3(1, 5, 9) {
		t.Errorf("Unexpected point bound %v %v", p.Min, p.Max)
	}
	if !p.IsValid() {
		t.Error("Expected valid bound")
	}

	u := s.Union(p)
	if !u.Contains(s) || !u.Contains(p) {
		t.Errorf("Union %v %v does not contain both inputs", u.Min, u.Max)
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		name     string
		size     Vec3
		expected int
	}{
		{"x longest", NewVec3(3, 1, 1), 0},
		{"y longest", NewVec3(1, 3, 1), 1},
		{"z longest", NewVec3(1, 1, 3), 2},
		{"x and y tie", NewVec3(2, 2, 1), 0},
		{"y and z tie", NewVec3(1, 2, 2), 1},
		{"cube", NewVec3(1, 1, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := NewAABB(Vec3{}, tt.size)
			if got := box.LongestAxis(); got != tt.expected {
				t.Errorf("Expected axis %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestAABB_NaNIsMiss(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	nanRay := Ray{Origin: NewVec3(math.NaN(), 0, 0), Direction: NewVec3(1, 0, 0)}
	if box.IntersectsRay(nanRay) {
		t.Error("Expected NaN ray to miss")
	}
}
