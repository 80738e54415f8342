package rivers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsSane(t *testing.T) {
	c := DefaultConfig()
	c.sanitize()
	require.Equal(t, DefaultConfig(), c, "defaults must survive sanitization unchanged")
}

func TestFromMapOverrides(t *testing.T) {
	c := FromMap(map[string]string{
		"seed":             "42",
		"give":             "0.25",
		"relax_iterations": "7",
		"particle_count":   "500",
		"trail_length":     "6",
	})

	require.Equal(t, int64(42), c.Seed)
	require.Equal(t, 0.25, c.Params.Give)
	require.Equal(t, 7, c.Params.RelaxIterations)
	require.Equal(t, 500, c.Params.ParticleCount)
	require.Equal(t, 6, c.Params.TrailLength)
}

func TestFromMapClampsAndIgnoresJunk(t *testing.T) {
	def := DefaultConfig()
	c := FromMap(map[string]string{
		"give":            "3.5",
		"lateral_gravity": "-1",
		"trail_length":    "1",
		"particle_count":  "not-a-number",
	})

	require.Equal(t, 1.0, c.Params.Give)
	require.Equal(t, 0.0, c.Params.LateralGravity)
	require.Equal(t, def.Params.TrailLength, c.Params.TrailLength, "trail length below 2 falls back")
	require.Equal(t, def.Params.ParticleCount, c.Params.ParticleCount)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "river.yaml")
	body := []byte(`
seed: 7
params:
  give: 0.4
  lateral_gravity: 0.9
  particle_count: 1000
  wobble_amount: 0
`)
	require.NoError(t, os.WriteFile(path, body, 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, int64(7), c.Seed)
	require.Equal(t, 0.4, c.Params.Give)
	require.Equal(t, 0.9, c.Params.LateralGravity)
	require.Equal(t, 1000, c.Params.ParticleCount)
	require.Equal(t, 0.0, c.Params.WobbleAmount)
	// Unspecified keys keep their defaults.
	require.Equal(t, DefaultConfig().Params.TrailLength, c.Params.TrailLength)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
