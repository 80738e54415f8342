package render

import "testing"

func TestHeightColorEndpoints(t *testing.T) {
	r, g, b := heightColor(0)
	lo := terrainPalette[0]
	if r != lo.r || g != lo.g || b != lo.b {
		t.Fatalf("low endpoint color mismatch: got (%d,%d,%d)", r, g, b)
	}

	r, g, b = heightColor(1)
	hi := terrainPalette[len(terrainPalette)-1]
	if r != hi.r || g != hi.g || b != hi.b {
		t.Fatalf("high endpoint color mismatch: got (%d,%d,%d)", r, g, b)
	}
}

func TestFillTerrainRGBA(t *testing.T) {
	heights := []float64{0, 5, 10}
	buf := make([]byte, 4*len(heights))
	fillTerrainRGBA(buf, heights, 0, 10)

	for i := range heights {
		if buf[i*4+3] != 0xff {
			t.Fatalf("pixel %d must be opaque", i)
		}
	}

	lo := terrainPalette[0]
	if buf[0] != lo.r || buf[1] != lo.g || buf[2] != lo.b {
		t.Fatalf("lowest sample should use the first palette stop")
	}
}

func TestFillTerrainRGBAZeroSpan(t *testing.T) {
	heights := []float64{3, 3}
	buf := make([]byte, 8)
	fillTerrainRGBA(buf, heights, 3, 3)

	lo := terrainPalette[0]
	if buf[0] != lo.r || buf[4] != lo.r {
		t.Fatalf("zero-span fields should shade with the lowest stop, got %d and %d, want %d", buf[0], buf[4], lo.r)
	}
}
