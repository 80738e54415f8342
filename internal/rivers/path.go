package rivers

import (
	"math"
	"sort"

	"riverflow/internal/core"
)

// Oracle is the terrain elevation contract the path builder samples against.
// Both queries must be pure for a fixed terrain.
type Oracle interface {
	// Height returns the terrain elevation at world position (x, z).
	Height(x, z float64) float64
	// Gradient returns the uphill slope vector at (x, z).
	Gradient(x, z float64) core.Vec2
}

// EdgeID identifies an edge for the lifetime of a graph.
type EdgeID uint64

const (
	// pathSamples is the fixed number of samples per edge path.
	pathSamples = 24

	// tensionWeight and gravityWeight blend the two relaxation forces.
	tensionWeight = 0.3
	gravityWeight = 0.5

	// minHorizontalSpan is the shortest endpoint separation that still
	// produces a usable channel.
	minHorizontalSpan = 0.3

	// A path is buried when more than penetrationRatioLimit of its samples
	// sit below the terrain and the deepest one by more than
	// penetrationDepthMin.
	penetrationRatioLimit = 0.6
	penetrationDepthMin   = 0.25

	// foldLengthFactor catches paths that collapsed onto themselves: total
	// length below this fraction of the endpoint span is pathological.
	foldLengthFactor = 0.5
)

// Edge is a generated river channel between two nodes. It is immutable after
// construction; topology or endpoint changes build a replacement.
type Edge struct {
	ID   EdgeID
	From NodeID
	To   NodeID

	points  []core.Vec3
	lateral []core.Vec2
	widths  []float64
	arc     []float64

	valid    bool
	horizLen float64
	pathLen  float64
}

// Valid reports whether the edge survived geometric validation. Invalid
// edges stay in the graph for inspection but never carry particles.
func (e *Edge) Valid() bool { return e.valid }

// Points exposes the generated samples for rendering and debugging.
func (e *Edge) Points() []core.Vec3 { return e.points }

// HorizontalLength returns the straight-line endpoint distance in the plane.
func (e *Edge) HorizontalLength() float64 { return e.horizLen }

// PathLength returns the total 3D length of the generated path.
func (e *Edge) PathLength() float64 { return e.pathLen }

// buildEdge runs the full path pipeline: seed, relax, smooth, drape,
// validate, annotate. It runs once per edge creation or endpoint change and
// never from the frame step.
func buildEdge(id EdgeID, from, to *Node, o Oracle, p Params) *Edge {
	e := &Edge{ID: id, From: from.ID, To: to.ID}

	a := core.Vec2{X: from.X, Z: from.Z}
	b := core.Vec2{X: to.X, Z: to.Z}
	e.horizLen = b.Sub(a).Len()

	if e.horizLen < minHorizontalSpan {
		// Degenerate endpoints: skip the pipeline entirely.
		e.points = []core.Vec3{{X: from.X, Y: from.Y, Z: from.Z}, {X: to.X, Y: to.Y, Z: to.Z}}
		e.lateral = []core.Vec2{{X: 1}, {X: 1}}
		e.widths = []float64{widthProfile(0, p), widthProfile(1, p)}
		e.arc = []float64{0, 1}
		e.valid = false
		return e
	}

	flat := seedSamples(a, b)
	relax(flat, o, p, e.horizLen)
	smooth(flat, p)
	e.points = drape(flat, from.Y, to.Y, o, p)
	e.valid = validate(e.points, o, e.horizLen)
	e.annotate(p)
	return e
}

// seedSamples places pathSamples points uniformly along the straight
// horizontal segment from a to b. Height is ignored until draping.
func seedSamples(a, b core.Vec2) []core.Vec2 {
	pts := make([]core.Vec2, pathSamples)
	for i := range pts {
		t := float64(i) / float64(pathSamples-1)
		pts[i] = core.Vec2{X: core.Lerp(a.X, b.X, t), Z: core.Lerp(a.Z, b.Z, t)}
	}
	return pts
}

// relax iterates tension (pull toward neighbor average) against lateral
// gravity (pull toward local downhill). Endpoints stay pinned. The gravity
// step scales with sample spacing so shaping is independent of edge length.
func relax(pts []core.Vec2, o Oracle, p Params, span float64) {
	if p.LateralGravity <= 0 && p.RelaxIterations <= 0 {
		return
	}
	spacing := span / float64(len(pts)-1)
	next := make([]core.Vec2, len(pts))
	copy(next, pts)
	for iter := 0; iter < p.RelaxIterations; iter++ {
		for i := 1; i < len(pts)-1; i++ {
			avg := pts[i-1].Add(pts[i+1]).Scale(0.5)
			move := avg.Sub(pts[i]).Scale(tensionWeight)

			if p.LateralGravity > 0 {
				down := o.Gradient(pts[i].X, pts[i].Z).Scale(-1).Normalized()
				move = move.Add(down.Scale(gravityWeight * p.LateralGravity * spacing))
			}
			next[i] = pts[i].Add(move)
		}
		copy(pts[1:len(pts)-1], next[1:len(pts)-1])
	}
}

// smooth applies Laplacian passes to the interior samples, blending each
// toward its neighbor average by the smoothing coefficient.
func smooth(pts []core.Vec2, p Params) {
	if p.SmoothingPasses <= 0 || p.PathSmoothing <= 0 {
		return
	}
	next := make([]core.Vec2, len(pts))
	copy(next, pts)
	for pass := 0; pass < p.SmoothingPasses; pass++ {
		for i := 1; i < len(pts)-1; i++ {
			avg := pts[i-1].Add(pts[i+1]).Scale(0.5)
			next[i] = pts[i].Add(avg.Sub(pts[i]).Scale(p.PathSmoothing))
		}
		copy(pts[1:len(pts)-1], next[1:len(pts)-1])
	}
}

// drape lifts the 2D samples into 3D, blending each between the straight
// interpolated endpoint height and the raw terrain height by the give
// coefficient.
func drape(pts []core.Vec2, fromY, toY float64, o Oracle, p Params) []core.Vec3 {
	out := make([]core.Vec3, len(pts))
	for i, pt := range pts {
		t := float64(i) / float64(len(pts)-1)
		lineY := core.Lerp(fromY, toY, t)
		terrY := o.Height(pt.X, pt.Z)
		out[i] = core.Vec3{X: pt.X, Y: core.Lerp(lineY, terrY, p.Give), Z: pt.Z}
	}
	return out
}

// validate classifies the generated samples. Degeneracy is data, not an
// error: the result only sets the validity flag.
func validate(pts []core.Vec3, o Oracle, horizLen float64) bool {
	if horizLen < minHorizontalSpan {
		return false
	}

	buried := 0
	maxDepth := 0.0
	pathLen := 0.0
	for i, pt := range pts {
		depth := o.Height(pt.X, pt.Z) - pt.Y
		if depth > 0 {
			buried++
			if depth > maxDepth {
				maxDepth = depth
			}
		}
		if i > 0 {
			pathLen += pt.Sub(pts[i-1]).Len()
		}
	}

	ratio := float64(buried) / float64(len(pts))
	if ratio > penetrationRatioLimit && maxDepth > penetrationDepthMin {
		return false
	}
	if pathLen < foldLengthFactor*horizLen {
		return false
	}
	return true
}

// annotate fills the lateral vectors, width profile, and arc-length
// parameters, and caches the total path length.
func (e *Edge) annotate(p Params) {
	n := len(e.points)
	e.lateral = make([]core.Vec2, n)
	e.widths = make([]float64, n)
	e.arc = make([]float64, n)

	for i := 0; i < n; i++ {
		lo := i - 1
		hi := i + 1
		if lo < 0 {
			lo = 0
		}
		if hi >= n {
			hi = n - 1
		}
		tangent := e.points[hi].Sub(e.points[lo]).Horizontal().Normalized()
		lat := tangent.Perp()
		if lat.Len() < 1e-12 {
			lat = core.Vec2{X: 1}
		}
		e.lateral[i] = lat
		e.widths[i] = widthProfile(float64(i)/float64(n-1), p)
	}

	total := 0.0
	for i := 1; i < n; i++ {
		total += e.points[i].Sub(e.points[i-1]).Len()
		e.arc[i] = total
	}
	e.pathLen = total
	if total > 0 {
		for i := 1; i < n; i++ {
			e.arc[i] /= total
		}
	} else {
		for i := 1; i < n; i++ {
			e.arc[i] = float64(i) / float64(n-1)
		}
	}
	e.arc[n-1] = 1
}

// widthProfile is the half-sine channel width: narrow at both nodes, widest
// at the midpoint, scaled by the overall base width.
func widthProfile(t float64, p Params) float64 {
	t = core.Clamp(t, 0, 1)
	return p.BaseWidth * core.Lerp(p.NodeWidth, p.MidWidth, math.Sin(math.Pi*t))
}

// PointAt returns the point at arc-length-normalized parameter t, displaced
// along the interpolated lateral vector by lateral times the local width.
// t outside [0,1] is clamped. Deterministic and allocation-free; this is the
// only read path the particle simulation uses.
func (e *Edge) PointAt(t, lateral float64) core.Vec3 {
	t = core.Clamp(t, 0, 1)
	n := len(e.points)
	if n == 0 {
		return core.Vec3{}
	}
	if n == 1 {
		return e.points[0]
	}

	i := sort.SearchFloat64s(e.arc, t)
	if i < 1 {
		i = 1
	}
	if i >= n {
		i = n - 1
	}
	t0, t1 := e.arc[i-1], e.arc[i]
	f := 0.0
	if t1 > t0 {
		f = (t - t0) / (t1 - t0)
	}

	pt := core.LerpVec3(e.points[i-1], e.points[i], f)
	if lateral == 0 {
		return pt
	}

	lat := core.Vec2{
		X: core.Lerp(e.lateral[i-1].X, e.lateral[i].X, f),
		Z: core.Lerp(e.lateral[i-1].Z, e.lateral[i].Z, f),
	}.Normalized()
	off := lateral * core.Lerp(e.widths[i-1], e.widths[i], f)
	pt.X += lat.X * off
	pt.Z += lat.Z * off
	return pt
}
