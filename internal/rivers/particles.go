package rivers

import (
	"math"

	"riverflow/internal/core"
	rng "riverflow/pkg/core"
)

const (
	// maxBaseOffset bounds the static lateral offset draw. The actual world
	// displacement is this times the local channel width.
	maxBaseOffset = 0.5

	// Per-particle intrinsic speed jitter around the configured speed.
	speedJitterMin = 0.6
	speedJitterMax = 1.4
)

// particle is one flowing agent. All fields are overwritten in place on
// respawn; nothing is ever reallocated after construction.
type particle struct {
	edge     int // index into the current valid-edge snapshot, -1 when unassigned
	progress float64
	speed    float64
	base     float64
	phase    float64
	head     int // ring index of the oldest trail slot
}

// Simulation advances a fixed population of particles along the valid edges
// of a river network. The population, position buffer, and trail storage are
// allocated once at construction; Step performs no allocation.
type Simulation struct {
	params Params
	rng    *rng.RNG

	particles []particle
	positions []core.Vec3
	trails    []core.Vec3 // count * TrailLength ring slots

	edges    []*Edge
	sources  []*Edge
	outgoing map[NodeID][]*Edge
	index    map[EdgeID]int

	elapsed float64
}

// NewSimulation allocates the population for the given parameters and seed.
func NewSimulation(p Params, seed int64) *Simulation {
	s := &Simulation{
		params:    p,
		rng:       rng.NewRNG(seed),
		particles: make([]particle, p.ParticleCount),
		positions: make([]core.Vec3, p.ParticleCount),
		trails:    make([]core.Vec3, p.ParticleCount*p.TrailLength),
		index:     make(map[EdgeID]int),
	}
	s.initPopulation()
	return s
}

// initPopulation draws per-particle intrinsic values. Every particle starts
// unassigned and respawns onto a source edge on its first step.
func (s *Simulation) initPopulation() {
	for i := range s.particles {
		p := &s.particles[i]
		p.edge = -1
		p.progress = 0
		p.speed = s.params.ParticleSpeed * s.rng.Range(speedJitterMin, speedJitterMax)
		p.base = s.rng.Range(-maxBaseOffset, maxBaseOffset)
		p.phase = s.rng.Range(0, 2*math.Pi)
		p.head = 0
	}
}

// Reset reseeds the RNG and restarts the population from scratch.
func (s *Simulation) Reset(seed int64) {
	s.rng = rng.NewRNG(seed)
	s.elapsed = 0
	s.initPopulation()
}

// Count returns the fixed population size.
func (s *Simulation) Count() int { return len(s.particles) }

// Positions exposes the per-particle position buffer updated by Step. The
// renderer reads it directly; the simulation never resizes it.
func (s *Simulation) Positions() []core.Vec3 { return s.positions }

// TrailLength returns the fixed number of trail slots per particle.
func (s *Simulation) TrailLength() int { return s.params.TrailLength }

// TrailInto copies particle i's trail into dst, oldest first, and returns
// the number of points written. dst must hold at least TrailLength entries.
func (s *Simulation) TrailInto(i int, dst []core.Vec3) int {
	l := s.params.TrailLength
	base := i * l
	p := &s.particles[i]
	for k := 0; k < l; k++ {
		dst[k] = s.trails[base+(p.head+k)%l]
	}
	return l
}

// SetParams swaps in new motion parameters. Structural fields (count, trail
// length) are fixed at construction and ignored here.
func (s *Simulation) SetParams(p Params) {
	p.ParticleCount = s.params.ParticleCount
	p.TrailLength = s.params.TrailLength
	s.params = p
}

// SetNetwork installs a new valid-edge snapshot. Particles riding an edge
// that survived keep flowing; particles whose edge disappeared or turned
// invalid are unassigned and respawn on the next step.
func (s *Simulation) SetNetwork(valid, sources []*Edge, outgoing map[NodeID][]*Edge) {
	clear(s.index)
	for i, e := range valid {
		s.index[e.ID] = i
	}
	for i := range s.particles {
		p := &s.particles[i]
		if p.edge < 0 {
			continue
		}
		id := s.edges[p.edge].ID
		if idx, ok := s.index[id]; ok {
			p.edge = idx
		} else {
			p.edge = -1
		}
	}
	s.edges = valid
	s.sources = sources
	s.outgoing = outgoing
}

// Step advances every particle by dt seconds. Particles are independent of
// one another; the loop allocates nothing.
func (s *Simulation) Step(dt float64) {
	s.elapsed += dt
	if len(s.edges) == 0 {
		return
	}

	wobble := s.params.WobbleAmount > 0
	wt := s.elapsed * s.params.WobbleSpeed * s.params.WobbleFrequency

	for i := range s.particles {
		p := &s.particles[i]

		if p.edge < 0 {
			s.respawn(i, p)
			continue
		}

		p.progress += p.speed * s.params.FlowRate * dt

		fresh := false
		for p.progress >= 1 && !fresh {
			carry := p.progress - 1
			choices := s.outgoing[s.edges[p.edge].To]
			if len(choices) > 0 {
				// Branch split: pick a continuation uniformly and carry the
				// overshoot onto it. The trail stays; positions are
				// continuous through the shared node.
				next := choices[s.rng.IntN(len(choices))]
				p.edge = s.index[next.ID]
				p.progress = carry
			} else {
				// Sink: restart from a source edge.
				s.respawn(i, p)
				fresh = true
			}
		}
		if fresh || p.edge < 0 {
			continue
		}

		off := p.base
		if wobble {
			off += s.params.WobbleAmount * math.Sin(p.phase+wt)
		}
		pos := s.edges[p.edge].PointAt(p.progress, off)
		s.positions[i] = pos
		s.pushTrail(i, p, pos)
	}
}

// respawn places the particle at the start of a uniformly chosen source edge
// and floods its trail with the spawn position so no segment spans the jump
// from its previous location. The lateral base offset is redrawn on every
// respawn so no particle keeps a persistent bias across lifetimes.
func (s *Simulation) respawn(i int, p *particle) {
	if len(s.sources) == 0 {
		p.edge = -1
		return
	}
	e := s.sources[s.rng.IntN(len(s.sources))]
	p.edge = s.index[e.ID]
	p.progress = 0
	p.base = s.rng.Range(-maxBaseOffset, maxBaseOffset)
	p.phase = s.rng.Range(0, 2*math.Pi)
	p.head = 0

	pos := e.PointAt(0, p.base)
	s.positions[i] = pos
	base := i * s.params.TrailLength
	for k := 0; k < s.params.TrailLength; k++ {
		s.trails[base+k] = pos
	}
}

// pushTrail overwrites the oldest ring slot with pos and rotates the head.
func (s *Simulation) pushTrail(i int, p *particle, pos core.Vec3) {
	base := i * s.params.TrailLength
	s.trails[base+p.head] = pos
	p.head = (p.head + 1) % s.params.TrailLength
}
