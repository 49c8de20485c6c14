package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrBadPPM is wrapped by every PPM decoding error
var ErrBadPPM = errors.New("malformed PPM")

// ReadPPM decodes an ASCII (P3) PPM image into a texture.
// Channel values are divided by the header's maximum value.
func ReadPPM(r io.Reader) (*material.ImageTexture, error) {
	tokens := newTokenReader(r)

	magic, err := tokens.next()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header: %v", ErrBadPPM, err)
	}
	if magic != "P3" {
		return nil, fmt.Errorf("%w: unsupported magic %q", ErrBadPPM, magic)
	}

	header := make([]int, 3)
	for i := range header {
		header[i], err = tokens.nextInt()
		if err != nil {
			return nil, fmt.Errorf("%w: header: %v", ErrBadPPM, err)
		}
	}
	width, height, maxVal := header[0], header[1], header[2]
	if width <= 0 || height <= 0 || maxVal <= 0 {
		return nil, fmt.Errorf("%w: invalid header %dx%d max %d", ErrBadPPM, width, height, maxVal)
	}

	norm := float64(maxVal)
	pixels := make([]core.Vec3, width*height)
	for i := range pixels {
		var rgb [3]float64
		for c := range rgb {
			v, err := tokens.nextInt()
			if err != nil {
				return nil, fmt.Errorf("%w: pixel %d: %v", ErrBadPPM, i, err)
			}
			rgb[c] = float64(v) / norm
		}
		pixels[i] = core.NewVec3(rgb[0], rgb[1], rgb[2])
	}

	return material.NewImageTexture(width, height, pixels), nil
}

// WritePPM encodes an image as ASCII (P3) PPM with one pixel per line
func WritePPM(w io.Writer, img image.Image) error {
	bw := bufio.NewWriter(w)
	bounds := img.Bounds()

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r>>8, g>>8, b>>8); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// tokenReader splits a stream into whitespace-separated tokens, dropping
// '#' comments that run to the end of a line
type tokenReader struct {
	scanner *bufio.Scanner
}

func newTokenReader(r io.Reader) *tokenReader {
	scanner := bufio.NewScanner(r)
	scanner.Split(scanTokens)
	return &tokenReader{scanner: scanner}
}

func (t *tokenReader) next() (string, error) {
	if !t.scanner.Scan() {
		if err := t.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return t.scanner.Text(), nil
}

func (t *tokenReader) nextInt() (int, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(tok)
}

func (t *tokenReader) nextFloat() (float64, error) {
	tok, err := t.next()
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(tok, 64)
}

// scanTokens is bufio.ScanWords with '#' comments removed
func scanTokens(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) {
		switch {
		case isSpace(data[start]):
			start++
		case data[start] == '#':
			end := start
			for end < len(data) && data[end] != '\n' {
				end++
			}
			if end == len(data) && !atEOF {
				// Need the rest of the comment line
				return start, nil, nil
			}
			start = end
		default:
			for i := start; i < len(data); i++ {
				if isSpace(data[i]) {
					return i + 1, data[start:i], nil
				}
			}
			if atEOF {
				return len(data), data[start:], nil
			}
			return start, nil, nil
		}
	}
	return start, nil, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}
