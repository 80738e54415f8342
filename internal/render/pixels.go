package render

// heightStop is one color stop of the terrain palette.
type heightStop struct {
	at      float64
	r, g, b uint8
}

// Valley green through dry tan up to bare rock.
var terrainPalette = []heightStop{
	{at: 0.0, r: 44, g: 96, b: 52},
	{at: 0.45, r: 118, g: 128, b: 70},
	{at: 0.75, r: 158, g: 134, b: 96},
	{at: 1.0, r: 232, g: 232, b: 228},
}

// heightColor maps a normalized elevation in [0, 1] onto the palette.
func heightColor(t float64) (uint8, uint8, uint8) {
	if t <= terrainPalette[0].at {
		s := terrainPalette[0]
		return s.r, s.g, s.b
	}
	for i := 1; i < len(terrainPalette); i++ {
		hi := terrainPalette[i]
		if t > hi.at {
			continue
		}
		lo := terrainPalette[i-1]
		f := (t - lo.at) / (hi.at - lo.at)
		lerp := func(a, b uint8) uint8 {
			return uint8(float64(a) + (float64(b)-float64(a))*f)
		}
		return lerp(lo.r, hi.r), lerp(lo.g, hi.g), lerp(lo.b, hi.b)
	}
	s := terrainPalette[len(terrainPalette)-1]
	return s.r, s.g, s.b
}

// fillTerrainRGBA shades height samples into RGBA pixels in buf. Heights are
// normalized against [hmin, hmax]; a zero span renders the lowest stop.
func fillTerrainRGBA(buf []byte, heights []float64, hmin, hmax float64) {
	span := hmax - hmin
	for i, h := range heights {
		t := 0.0
		if span > 0 {
			t = (h - hmin) / span
		}
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		r, g, b := heightColor(t)
		base := i * 4
		buf[base+0] = r
		buf[base+1] = g
		buf[base+2] = b
		buf[base+3] = 0xff
	}
}
