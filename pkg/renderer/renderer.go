package renderer

import (
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var logger = log.New("renderer")

// Config contains the pixel-loop configuration
type Config struct {
	DepthOfField bool  // Average DOFSamples jittered-eye rays per pixel
	DOFSamples   int   // Rays per pixel when DepthOfField is set
	NumWorkers   int   // Concurrent tiles (0 = use CPU count, 1 = sequential)
	TileSize     int   // Edge length of a tile in pixels
	Seed         int64 // Base seed; tile i samples from Seed+i
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		DepthOfField: false,
		DOFSamples:   20,
		NumWorkers:   0,
		TileSize:     32,
		Seed:         1,
	}
}

// Renderer drives an integrator over every pixel of the scene camera
type Renderer struct {
	scene      *scene.Scene
	camera     *Camera
	integrator integrator.Integrator
	config     Config
}

// NewRenderer creates a renderer for a validated scene whose BVH has been built
func NewRenderer(s *scene.Scene, integ integrator.Integrator, config Config) *Renderer {
	return &Renderer{
		scene:      s,
		camera:     NewCamera(s.Camera),
		integrator: integ,
		config:     config,
	}
}

// Camera returns the camera primary rays are generated from
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// Render traces every pixel and returns the clamped image.
//
// Tiles are rendered concurrently but each one samples from its own seeded
// generator and writes a disjoint region of the buffer, so the result does
// not depend on the worker count or scheduling.
func (r *Renderer) Render() (*PixelBuffer, RenderStats) {
	width, height := r.camera.Size()
	buffer := NewPixelBuffer(width, height)
	tiles := NewTileGrid(width, height, r.config.TileSize)

	workers := r.config.NumWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	logger.Infof("rendering %dx%d in %d tiles with %d workers", width, height, len(tiles), workers)

	stats := RenderStats{
		TotalPixels: width * height,
		Tiles:       len(tiles),
		Workers:     workers,
		TileStats:   make([]TileStats, len(tiles)),
	}

	start := time.Now()

	var g errgroup.Group
	g.SetLimit(workers)
	for _, tile := range tiles {
		tile := tile
		g.Go(func() error {
			stats.TileStats[tile.ID] = r.RenderTile(tile, buffer)
			return nil
		})
	}
	// Tile rendering cannot fail
	_ = g.Wait()

	stats.Duration = time.Since(start)
	for _, ts := range stats.TileStats {
		stats.PrimaryRays += ts.PrimaryRays
	}

	logger.Infof("rendered %d primary rays in %v", stats.PrimaryRays, stats.Duration)
	return buffer, stats
}

// RenderTile renders the pixels of one tile into buffer
func (r *Renderer) RenderTile(tile Tile, buffer *PixelBuffer) TileStats {
	start := time.Now()
	sampler := core.NewSeededSampler(r.config.Seed + int64(tile.ID))
	rays := 0

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			color, n := r.RenderPixel(x, y, sampler)
			buffer.Set(x, y, color)
			rays += n
		}
	}

	ts := TileStats{
		ID:          tile.ID,
		Bounds:      tile.Bounds,
		PrimaryRays: rays,
		Duration:    time.Since(start),
	}
	if log.Enabled(log.Debug) {
		logger.Debugf("tile %d %v done in %v", tile.ID, tile.Bounds, ts.Duration)
	}
	return ts
}

// RenderPixel returns the clamped color of pixel (x, y) and the number of
// primary rays traced for it
func (r *Renderer) RenderPixel(x, y int, sampler core.Sampler) (core.Vec3, int) {
	if !r.config.DepthOfField {
		color := r.integrator.RayColor(r.camera.PrimaryRay(x, y), sampler)
		return color.Clamp(0, 1), 1
	}

	n := max(r.config.DOFSamples, 1)
	var sum core.Vec3
	for i := 0; i < n; i++ {
		sum = sum.Add(r.integrator.RayColor(r.camera.JitteredRay(x, y, sampler), sampler))
	}
	return sum.Multiply(1/float64(n)).Clamp(0, 1), n
}
