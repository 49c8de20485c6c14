package loaders

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrUnsupportedImage is returned for image files with an unknown extension
var ErrUnsupportedImage = errors.New("unsupported image format")

// LoadImage loads a PPM, PNG or JPEG file as a texture, chosen by extension
func LoadImage(filename string) (*material.ImageTexture, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ppm", ".png", ".jpg", ".jpeg":
	default:
		return nil, fmt.Errorf("%s: %w", filename, ErrUnsupportedImage)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if ext == ".ppm" {
		tex, err := ReadPPM(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		return tex, nil
	}

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage converts a decoded image to a texture with channels in [0, 1]
func TextureFromImage(img image.Image) *material.ImageTexture {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return material.NewImageTexture(width, height, pixels)
}

// SaveImage writes img to filename as PNG when the extension is .png and as
// P3 PPM otherwise
func SaveImage(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(filename), ".png") {
		err = png.Encode(file, img)
	} else {
		err = WritePPM(file, img)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}
	return file.Close()
}
