package material

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestMaterial_Validate(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	white := core.NewVec3(1, 1, 1)

	tests := []struct {
		name    string
		mat     Material
		wantErr bool
	}{
		{"valid", NewMaterial(red, white, 0.1, 0.7, 0.2, 20, 1, 1.5), false},
		{"diffuse above one", NewMaterial(core.NewVec3(1.1, 0, 0), white, 0.1, 0.7, 0.2, 20, 1, 1), true},
		{"negative specular", NewMaterial(red, core.NewVec3(0, -0.1, 0), 0.1, 0.7, 0.2, 20, 1, 1), true},
		{"ka out of range", NewMaterial(red, white, 1.5, 0.7, 0.2, 20, 1, 1), true},
		{"ks negative", NewMaterial(red, white, 0.1, 0.7, -0.2, 20, 1, 1), true},
		// n, opacity and ior are not range-checked
		{"large exponent", NewMaterial(red, white, 0.1, 0.7, 0.2, 500, 0.2, 2.4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mat.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrOutOfRange) {
				t.Errorf("Expected ErrOutOfRange, got %v", err)
			}
		})
	}
}

func TestMaterial_F0(t *testing.T) {
	tests := []struct {
		ior      float64
		expected float64
	}{
		{1.0, 0},
		{1.5, 0.04},
		{2.0, 1.0 / 9},
	}

	for _, tt := range tests {
		m := Material{IOR: tt.ior}
		if got := m.F0(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("ior %v: expected F0 %v, got %v", tt.ior, tt.expected, got)
		}
	}
}
