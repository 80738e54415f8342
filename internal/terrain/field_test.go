package terrain

import (
	"math"
	"testing"
)

func TestFieldDeterministicForSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolution = 32
	cfg.Seed = 99

	a := New(cfg)
	b := New(cfg)

	ha, _ := a.Heights()
	hb, _ := b.Heights()
	if len(ha) == 0 {
		t.Fatal("field must allocate height samples")
	}
	for i := range ha {
		if ha[i] != hb[i] {
			t.Fatalf("sample %d differs between identically seeded fields", i)
		}
	}

	cfg.Seed = 100
	c := New(cfg)
	hc, _ := c.Heights()
	same := true
	for i := range ha {
		if ha[i] != hc[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds should produce different fields")
	}
}

func TestHeightStaysInRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolution = 32
	f := New(cfg)

	for x := 0.0; x <= cfg.Size; x += cfg.Size / 17 {
		for z := 0.0; z <= cfg.Size; z += cfg.Size / 17 {
			h := f.Height(x, z)
			if h < 0 || h > cfg.HeightScale {
				t.Fatalf("height %f at (%f, %f) outside [0, %f]", h, x, z, cfg.HeightScale)
			}
		}
	}
}

func TestHeightClampsOutsideField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolution = 16
	f := New(cfg)

	inside := f.Height(0, 0)
	outside := f.Height(-50, -50)
	if inside != outside {
		t.Fatalf("out-of-range queries must clamp to the border: %f != %f", inside, outside)
	}
}

func TestGradientMatchesHeightDifferences(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolution = 64
	f := New(cfg)

	x, z := cfg.Size/3, cfg.Size/2
	g := f.Gradient(x, z)

	eps := cfg.Size / float64(cfg.Resolution)
	wantX := (f.Height(x+eps, z) - f.Height(x-eps, z)) / (2 * eps)
	wantZ := (f.Height(x, z+eps) - f.Height(x, z-eps)) / (2 * eps)

	if math.Abs(g.X-wantX) > 1e-9 || math.Abs(g.Z-wantZ) > 1e-9 {
		t.Fatalf("gradient (%f, %f) does not match central differences (%f, %f)", g.X, g.Z, wantX, wantZ)
	}
}

func TestZeroHeightScaleIsFlat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolution = 16
	cfg.HeightScale = 0
	f := New(cfg)

	if h := f.Height(cfg.Size/2, cfg.Size/2); h != 0 {
		t.Fatalf("flat field should be zero everywhere, got %f", h)
	}
	g := f.Gradient(cfg.Size/2, cfg.Size/2)
	if g.X != 0 || g.Z != 0 {
		t.Fatalf("flat field should have zero slope, got (%f, %f)", g.X, g.Z)
	}
}
