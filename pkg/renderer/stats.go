package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about a finished render
type RenderStats struct {
	TotalPixels int           // Pixels written
	PrimaryRays int           // Camera rays traced, counting every DOF sample
	Tiles       int           // Number of tiles
	Workers     int           // Goroutines allowed to render concurrently
	Duration    time.Duration // Wall-clock render time
	TileStats   []TileStats   // Per-tile breakdown, indexed by tile ID
}

// TileStats records the work done for one tile
type TileStats struct {
	ID          int
	Bounds      image.Rectangle
	PrimaryRays int
	Duration    time.Duration
}

// RaysPerSecond returns the primary-ray throughput of the render
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.PrimaryRays) / s.Duration.Seconds()
}

// SlowestTile returns the tile that took longest to render
func (s RenderStats) SlowestTile() (TileStats, bool) {
	if len(s.TileStats) == 0 {
		return TileStats{}, false
	}
	slowest := s.TileStats[0]
	for _, ts := range s.TileStats[1:] {
		if ts.Duration > slowest.Duration {
			slowest = ts
		}
	}
	return slowest, true
}
