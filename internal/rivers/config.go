package rivers

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Params holds the tunable shaping and simulation values for a river scene.
type Params struct {
	// Path shaping.
	Give            float64 `yaml:"give"`
	LateralGravity  float64 `yaml:"lateral_gravity"`
	PathSmoothing   float64 `yaml:"path_smoothing"`
	RelaxIterations int     `yaml:"relax_iterations"`
	SmoothingPasses int     `yaml:"smoothing_passes"`

	// Width profile.
	BaseWidth float64 `yaml:"base_width"`
	NodeWidth float64 `yaml:"node_width"`
	MidWidth  float64 `yaml:"mid_width"`

	// Particle motion.
	WobbleAmount    float64 `yaml:"wobble_amount"`
	WobbleSpeed     float64 `yaml:"wobble_speed"`
	WobbleFrequency float64 `yaml:"wobble_frequency"`
	ParticleCount   int     `yaml:"particle_count"`
	ParticleSpeed   float64 `yaml:"particle_speed"`
	TrailLength     int     `yaml:"trail_length"`
	FlowRate        float64 `yaml:"flow_rate"`
}

// Config describes a complete river scene.
type Config struct {
	Seed   int64  `yaml:"seed"`
	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Seed: 1337,
		Params: Params{
			Give:            0.7,
			LateralGravity:  0.5,
			PathSmoothing:   0.5,
			RelaxIterations: 14,
			SmoothingPasses: 2,
			BaseWidth:       1.0,
			NodeWidth:       0.35,
			MidWidth:        1.0,
			WobbleAmount:    0.12,
			WobbleSpeed:     1.0,
			WobbleFrequency: 2.0,
			ParticleCount:   20000,
			ParticleSpeed:   0.25,
			TrailLength:     8,
			FlowRate:        1.0,
		},
	}
}

// sanitize clamps every field to its documented range, falling back to the
// defaults where a value cannot be repaired.
func (c *Config) sanitize() {
	def := DefaultConfig().Params
	p := &c.Params

	p.Give = clamp01(p.Give)
	p.LateralGravity = clamp01(p.LateralGravity)
	p.PathSmoothing = clamp01(p.PathSmoothing)
	if p.RelaxIterations < 1 {
		p.RelaxIterations = def.RelaxIterations
	}
	if p.SmoothingPasses < 0 {
		p.SmoothingPasses = 0
	}
	if p.BaseWidth <= 0 {
		p.BaseWidth = def.BaseWidth
	}
	if p.NodeWidth <= 0 {
		p.NodeWidth = def.NodeWidth
	}
	if p.MidWidth <= 0 {
		p.MidWidth = def.MidWidth
	}
	if p.WobbleAmount < 0 {
		p.WobbleAmount = 0
	}
	if p.WobbleSpeed < 0 {
		p.WobbleSpeed = 0
	}
	if p.WobbleFrequency < 0 {
		p.WobbleFrequency = 0
	}
	if p.ParticleCount < 1 {
		p.ParticleCount = def.ParticleCount
	}
	if p.ParticleSpeed <= 0 {
		p.ParticleSpeed = def.ParticleSpeed
	}
	if p.TrailLength < 2 {
		p.TrailLength = def.TrailLength
	}
	if p.FlowRate < 0 {
		p.FlowRate = 0
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	floatKeys := map[string]*float64{
		"give":             &c.Params.Give,
		"lateral_gravity":  &c.Params.LateralGravity,
		"path_smoothing":   &c.Params.PathSmoothing,
		"base_width":       &c.Params.BaseWidth,
		"node_width":       &c.Params.NodeWidth,
		"mid_width":        &c.Params.MidWidth,
		"wobble_amount":    &c.Params.WobbleAmount,
		"wobble_speed":     &c.Params.WobbleSpeed,
		"wobble_frequency": &c.Params.WobbleFrequency,
		"particle_speed":   &c.Params.ParticleSpeed,
		"flow_rate":        &c.Params.FlowRate,
	}
	for key, dst := range floatKeys {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = parsed
			}
		}
	}
	intKeys := map[string]*int{
		"relax_iterations": &c.Params.RelaxIterations,
		"smoothing_passes": &c.Params.SmoothingPasses,
		"particle_count":   &c.Params.ParticleCount,
		"trail_length":     &c.Params.TrailLength,
	}
	for key, dst := range intKeys {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil {
				*dst = parsed
			}
		}
	}
	c.sanitize()
	return c
}

// LoadFile reads a YAML configuration file, overlaying it on the defaults.
func LoadFile(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.sanitize()
	return c, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
