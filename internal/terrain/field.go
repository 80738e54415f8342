// Package terrain provides the elevation field the river network is draped
// over: a Perlin-noise heightmap with bilinear height sampling and a
// central-difference slope query. Both queries are pure for a fixed seed.
package terrain

import (
	"math"

	"riverflow/internal/core"

	"github.com/aquilax/go-perlin"
)

const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3
)

// Config controls heightfield generation.
type Config struct {
	// Size is the world-space extent of the terrain along x and z. The field
	// covers [0, Size] on both axes.
	Size float64 `yaml:"size"`
	// Resolution is the number of grid cells along each axis.
	Resolution int `yaml:"resolution"`
	// HeightScale is the elevation of the tallest possible sample.
	HeightScale float64 `yaml:"height_scale"`
	// NoiseScale stretches the noise domain; smaller values give broader hills.
	NoiseScale float64 `yaml:"noise_scale"`
	Seed       int64   `yaml:"seed"`
}

// DefaultConfig returns the standard terrain configuration.
func DefaultConfig() Config {
	return Config{
		Size:        40,
		Resolution:  128,
		HeightScale: 6,
		NoiseScale:  0.08,
		Seed:        1337,
	}
}

// Field is a sampled heightmap over a square world region.
type Field struct {
	cfg  Config
	grid *core.FloatGrid
	step float64
}

// New generates a heightfield from the provided configuration.
func New(cfg Config) *Field {
	if cfg.Size <= 0 {
		cfg.Size = DefaultConfig().Size
	}
	if cfg.Resolution <= 0 {
		cfg.Resolution = DefaultConfig().Resolution
	}
	if cfg.HeightScale < 0 {
		cfg.HeightScale = 0
	}
	if cfg.NoiseScale <= 0 {
		cfg.NoiseScale = DefaultConfig().NoiseScale
	}

	n := cfg.Resolution + 1
	f := &Field{
		cfg:  cfg,
		grid: core.NewFloatGrid(n, n),
		step: cfg.Size / float64(cfg.Resolution),
	}

	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, cfg.Seed)
	vals := f.grid.Values()
	for gz := 0; gz < n; gz++ {
		for gx := 0; gx < n; gx++ {
			wx := float64(gx) * f.step
			wz := float64(gz) * f.step
			// Noise2D sits in roughly [-1, 1]; remap to [0, HeightScale].
			raw := noise.Noise2D(wx*cfg.NoiseScale, wz*cfg.NoiseScale)
			vals[f.grid.Index(gx, gz)] = (raw + 1) * 0.5 * cfg.HeightScale
		}
	}
	return f
}

// Config returns the configuration the field was generated from.
func (f *Field) Config() Config { return f.cfg }

// Heights exposes the raw sample grid, row-major with (Resolution+1) samples
// per side. Used by the renderer to shade the terrain.
func (f *Field) Heights() ([]float64, int) { return f.grid.Values(), f.grid.W }

// Height returns the bilinearly interpolated elevation at world position
// (x, z). Positions outside the field clamp to the border.
func (f *Field) Height(x, z float64) float64 {
	fx := x / f.step
	fz := z / f.step
	gx := int(math.Floor(fx))
	gz := int(math.Floor(fz))
	tx := core.Clamp(fx-float64(gx), 0, 1)
	tz := core.Clamp(fz-float64(gz), 0, 1)

	h00 := f.grid.At(gx, gz)
	h10 := f.grid.At(gx+1, gz)
	h01 := f.grid.At(gx, gz+1)
	h11 := f.grid.At(gx+1, gz+1)

	top := core.Lerp(h00, h10, tx)
	bot := core.Lerp(h01, h11, tx)
	return core.Lerp(top, bot, tz)
}

// Gradient returns the uphill slope vector at (x, z) via central differences.
// The caller negates it to walk downhill.
func (f *Field) Gradient(x, z float64) core.Vec2 {
	eps := f.step
	dx := (f.Height(x+eps, z) - f.Height(x-eps, z)) / (2 * eps)
	dz := (f.Height(x, z+eps) - f.Height(x, z-eps)) / (2 * eps)
	return core.Vec2{X: dx, Z: dz}
}
