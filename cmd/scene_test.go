package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

const testSceneFile = `eye 0 0 0
viewdir 0 0 -1
updir 0 1 0
vfov 90
imsize 8 6
bkgcolor 0 0 0
mtlcolor 1 1 1 1 1 1 0.1 0.9 0 1 1 1
sphere 0 0 -5 1
light 0 5 0 1 1 1 1
`

func TestLoadScene(t *testing.T) {
	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "ball.txt")
	if err := os.WriteFile(sceneFile, []byte(testSceneFile), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		arg         string
		expectError bool
		width       int
	}{
		{"scene file", sceneFile, false, 8},
		{"built-in scene", "default", false, 400},
		{"built-in with prefix", "builtin:cornell-box", false, 0},
		{"prefix skips files", builtinPrefix + sceneFile, true, 0},
		{"unknown scene", "nonexistent", true, 0},
		{"empty scene name", "", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, err := loadScene(tt.arg)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene %q, got none", tt.arg)
				}
				if sc != nil {
					t.Errorf("Expected nil scene for %q", tt.arg)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene %q: %v", tt.arg, err)
			}
			if sc.Camera.Width <= 0 || sc.Camera.Height <= 0 {
				t.Errorf("Scene image size should be positive, got %dx%d", sc.Camera.Width, sc.Camera.Height)
			}
			if tt.width != 0 && sc.Camera.Width != tt.width {
				t.Errorf("Width = %d, want %d", sc.Camera.Width, tt.width)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		arg, out, expected string
	}{
		{"scenes/ball.txt", "", "scenes/ball.ppm"},
		{"ball", "", "ball.ppm"},
		{"builtin:cornell-box", "", "cornell-box.ppm"},
		{"scenes/ball.txt", "render.png", "render.png"},
	}

	for _, tt := range tests {
		if got := outputPath(tt.arg, tt.out); got != tt.expected {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.arg, tt.out, got, tt.expected)
		}
	}
}
