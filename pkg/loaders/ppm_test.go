package loaders

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestReadPPM(t *testing.T) {
	input := `P3
# a comment line
2 2 # trailing comment
4
4 0 0   0 4 0
0 0 4   2 2 2
`
	tex, err := ReadPPM(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPPM failed: %v", err)
	}
	if tex.Width != 2 || tex.Height != 2 {
		t.Fatalf("Expected 2x2, got %dx%d", tex.Width, tex.Height)
	}

	expected := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(0.5, 0.5, 0.5),
	}
	for i, want := range expected {
		if tex.Pixels[i] != want {
			t.Errorf("Pixel %d = %v, want %v", i, tex.Pixels[i], want)
		}
	}
}

func TestReadPPM_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"binary magic", "P6\n1 1\n255\n"},
		{"zero width", "P3\n0 1\n255\n"},
		{"bad max", "P3\n1 1\n0\n0 0 0"},
		{"truncated pixels", "P3\n2 1\n255\n1 2 3 4"},
		{"non-numeric", "P3\n1 1\n255\n1 x 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadPPM(strings.NewReader(tt.input)); !errors.Is(err, ErrBadPPM) {
				t.Errorf("Expected ErrBadPPM, got %v", err)
			}
		})
	}
}

func TestWritePPM_RoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 100), uint8(y * 200), 17, 255})
		}
	}

	var buf bytes.Buffer
	if err := WritePPM(&buf, img); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	tex, err := ReadPPM(&buf)
	if err != nil {
		t.Fatalf("ReadPPM failed: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			c := img.RGBAAt(x, y)
			want := core.NewVec3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
			if got := tex.At(x, y); got != want {
				t.Errorf("Pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}
