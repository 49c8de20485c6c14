package cmd

import (
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func sphereScene() *scene.Scene {
	s := scene.New(scene.NewCameraConfig(
		core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), core.NewVec3(0, 1, 0), 90, 3, 3,
	), core.NewVec3(0.2, 0.2, 0.2))
	white := core.NewVec3(1, 1, 1)
	mat := s.AddMaterial(material.NewMaterial(white, white, 0.1, 0.8, 0.1, 10, 1, 1.5))
	s.AddPrimitive(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, mat))
	s.ConstructBVH()
	return s
}

func property(props [][2]string, key string) (string, bool) {
	for _, p := range props {
		if p[0] == key {
			return p[1], true
		}
	}
	return "", false
}

func TestParsePixel(t *testing.T) {
	tests := []struct {
		input       string
		x, y        int
		expectError bool
	}{
		{"3,4", 3, 4, false},
		{" 10 , 0 ", 10, 0, false},
		{"3", 0, 0, true},
		{"a,b", 0, 0, true},
		{"1.5,2", 0, 0, true},
	}

	for _, tt := range tests {
		x, y, err := parsePixel(tt.input)
		if tt.expectError {
			if err == nil {
				t.Errorf("parsePixel(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil || x != tt.x || y != tt.y {
			t.Errorf("parsePixel(%q) = %d, %d, %v; want %d, %d", tt.input, x, y, err, tt.x, tt.y)
		}
	}
}

func TestPixelProperties(t *testing.T) {
	s := sphereScene()

	center := pixelProperties(s, 1, 1)
	if v, _ := property(center, "hit"); v != "true" {
		t.Fatalf("Center pixel should hit the sphere: %v", center)
	}
	if v, _ := property(center, "geometry"); v != "sphere" {
		t.Errorf("geometry = %q, want sphere", v)
	}
	if v, _ := property(center, "distance"); v != "4.000000" {
		t.Errorf("distance = %q, want 4.000000", v)
	}
	if v, _ := property(center, "ior"); v != "1.5" {
		t.Errorf("ior = %q, want 1.5", v)
	}
	if _, ok := property(center, "texture"); ok {
		t.Error("Untextured hit should not report a texture")
	}

	corner := pixelProperties(s, 0, 0)
	if v, _ := property(corner, "hit"); v != "false" {
		t.Errorf("Corner pixel should miss: %v", corner)
	}
}

func TestVerifyBVH(t *testing.T) {
	for _, id := range []string{"default", "triangle-mesh", "sphere-grid"} {
		t.Run(id, func(t *testing.T) {
			s, ok := scene.BuiltinScene(id)
			if !ok {
				t.Fatalf("Missing built-in scene %q", id)
			}
			s.ConstructBVH()

			if mismatches := verifyBVH(s, 400, 7); mismatches != 0 {
				t.Errorf("BVH disagreed with brute force on %d rays", mismatches)
			}
		})
	}
}

func TestStatsTables(t *testing.T) {
	s := sphereScene()

	sceneTable := sceneStatsTable(s)
	for _, want := range []string{"Spheres", "3x3", "Materials"} {
		if !strings.Contains(sceneTable, want) {
			t.Errorf("Scene table missing %q:\n%s", want, sceneTable)
		}
	}

	if !strings.Contains(sceneTable, "Bounds center") || !strings.Contains(sceneTable, "(0, 0, -5)") {
		t.Errorf("Scene table missing bounds center:\n%s", sceneTable)
	}

	s.AddPointLight(lights.NewAttenuatedPointLight(core.NewVec3(0, 5, 0), core.NewVec3(1, 1, 1), 1, 0.5, 0.25))
	s.AddPointLight(lights.NewPointLight(core.NewVec3(0, -5, 0), core.NewVec3(1, 1, 1)))
	s.AddDirectionalLight(lights.NewDirectionalLight(core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)))
	lightTable := lightsTable(s)
	for _, want := range []string{"1 0.5 0.25", "none", "directional"} {
		if !strings.Contains(lightTable, want) {
			t.Errorf("Lights table missing %q:\n%s", want, lightTable)
		}
	}

	bvhTable := bvhStatsTable(s.BVH.Stats())
	if !strings.Contains(bvhTable, "Max depth") {
		t.Errorf("BVH table missing header:\n%s", bvhTable)
	}
}
