package core

// FloatGrid stores a 2D grid of scalar samples in row-major order. It backs
// the terrain heightfield.
type FloatGrid struct {
	W, H int
	data []float64
}

// NewFloatGrid allocates a grid with the given dimensions.
func NewFloatGrid(w, h int) *FloatGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FloatGrid{W: w, H: h, data: make([]float64, w*h)}
}

// Values exposes the backing slice so callers can read/write samples directly.
func (g *FloatGrid) Values() []float64 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *FloatGrid) Index(x, y int) int { return y*g.W + x }

// ClampCoords limits the provided coordinates to the grid bounds.
func (g *FloatGrid) ClampCoords(x, y int) (int, int) {
	if x < 0 {
		x = 0
	} else if x >= g.W {
		x = g.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= g.H {
		y = g.H - 1
	}
	return x, y
}

// At returns the sample at (x, y), clamping out-of-range coordinates to the
// border.
func (g *FloatGrid) At(x, y int) float64 {
	x, y = g.ClampCoords(x, y)
	return g.data[y*g.W+x]
}

// Set stores v at (x, y). Out-of-range coordinates are ignored.
func (g *FloatGrid) Set(x, y int, v float64) {
	if x < 0 || x >= g.W || y < 0 || y >= g.H {
		return
	}
	g.data[y*g.W+x] = v
}

// Clear fills the grid with zeros.
func (g *FloatGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
