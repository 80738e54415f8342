package app

import "flag"

// Config represents the command-line parameters for the application.
type Config struct {
	ConfigPath string
	Scale      int
	TPS        int
	Seed       int64
	Demo       bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 6, TPS: 60, Seed: 1337, Demo: true}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "path to a YAML scene configuration")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per terrain cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for terrain and simulation")
	fs.BoolVar(&c.Demo, "demo", c.Demo, "seed a starter river network")
}
