package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()
}

// TestLoadImage creates a test PNG and verifies loading
func TestLoadImage(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.png")

	// Create a simple 2x2 test image
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	writePNG(t, testFile, img)

	tex, err := LoadImage(testFile)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if tex.Width != 2 || tex.Height != 2 || len(tex.Pixels) != 4 {
		t.Fatalf("Expected 2x2 texture, got %dx%d with %d pixels", tex.Width, tex.Height, len(tex.Pixels))
	}

	// Row-major, row 0 at the top
	expected := []core.Vec3{
		core.NewVec3(1, 1, 1),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
	}
	for i, want := range expected {
		if tex.Pixels[i] != want {
			t.Errorf("Pixel %d: expected %v, got %v", i, want, tex.Pixels[i])
		}
	}
}

func TestLoadImage_PPM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.ppm")
	if err := os.WriteFile(path, []byte("P3\n1 1\n255\n255 0 51\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tex, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if tex.At(0, 0) != core.NewVec3(1, 0, 0.2) {
		t.Errorf("Unexpected texel %v", tex.At(0, 0))
	}
}

// TestLoadImageNotFound verifies error handling for missing files
func TestLoadImageNotFound(t *testing.T) {
	if _, err := LoadImage("nonexistent.png"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
	if _, err := LoadImage("texture.bmp"); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("Expected ErrUnsupportedImage, got %v", err)
	}
}

func TestSaveImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{10, 20, 30, 255})
	img.SetRGBA(1, 0, color.RGBA{255, 128, 0, 255})

	dir := t.TempDir()

	ppmPath := filepath.Join(dir, "out.ppm")
	if err := SaveImage(ppmPath, img); err != nil {
		t.Fatalf("SaveImage(ppm) failed: %v", err)
	}
	data, err := os.ReadFile(ppmPath)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "P3\n2 1\n255\n10 20 30\n255 128 0\n"; got != want {
		t.Errorf("PPM output = %q, want %q", got, want)
	}

	pngPath := filepath.Join(dir, "out.PNG")
	if err := SaveImage(pngPath, img); err != nil {
		t.Fatalf("SaveImage(png) failed: %v", err)
	}
	data, err = os.ReadFile(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Error("Expected PNG signature")
	}
}
