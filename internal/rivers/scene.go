package rivers

import (
	"riverflow/internal/core"
)

// Scene ties the elevation oracle, the flow graph, and the particle
// simulation together and enforces the frame discipline: graph mutations are
// queued through Edit and applied between frames, never during one, so a
// step never observes a partially mutated network.
type Scene struct {
	cfg    Config
	oracle Oracle
	graph  *Graph
	sim    *Simulation

	edits   []func(*Graph) error
	dirty   bool
	onError func(error)
}

// NewScene constructs a scene over the given oracle.
func NewScene(cfg Config, o Oracle) *Scene {
	cfg.sanitize()
	s := &Scene{
		cfg:    cfg,
		oracle: o,
		graph:  NewGraph(o, cfg.Params),
		sim:    NewSimulation(cfg.Params, cfg.Seed),
	}
	s.refresh()
	return s
}

// Graph exposes the network for read-only inspection (rendering, debug).
// Mutations must go through Edit.
func (s *Scene) Graph() *Graph { return s.graph }

// Simulation exposes the particle population for the renderer.
func (s *Scene) Simulation() *Simulation { return s.sim }

// Config returns the scene's configuration.
func (s *Scene) Config() Config { return s.cfg }

// OnEditError installs a callback invoked for every queued edit that fails
// (typically a cycle rejection surfaced to the editor).
func (s *Scene) OnEditError(fn func(error)) { s.onError = fn }

// Edit queues a graph mutation to run before the next frame step. The
// closure may call any Graph mutation method; its error, if any, is passed
// to the OnEditError callback when the queue drains.
func (s *Scene) Edit(fn func(*Graph) error) {
	s.edits = append(s.edits, fn)
}

// ApplyEdits drains the edit queue immediately. Step calls it first thing;
// tests and headless tools may call it directly between steps.
func (s *Scene) ApplyEdits() {
	if len(s.edits) == 0 {
		return
	}
	for _, fn := range s.edits {
		if err := fn(s.graph); err != nil && s.onError != nil {
			s.onError(err)
		}
	}
	s.edits = s.edits[:0]
	s.dirty = true
}

// Step applies pending edits, refreshes the simulation's edge snapshot if
// anything changed, and advances the particles by dt seconds.
func (s *Scene) Step(dt float64) {
	s.ApplyEdits()
	if s.dirty {
		s.refresh()
		s.dirty = false
	}
	s.sim.Step(dt)
}

// Reset restarts the particle population with the given seed. A zero seed
// falls back to the configured one. The network is left as edited.
func (s *Scene) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.ApplyEdits()
	s.sim.Reset(seed)
	s.refresh()
	s.dirty = false
}

// refresh hands the simulation a fresh snapshot of the valid network.
func (s *Scene) refresh() {
	valid := s.graph.ValidEdges()
	outgoing := make(map[NodeID][]*Edge, s.graph.NodeCount())
	for _, e := range valid {
		outgoing[e.From] = append(outgoing[e.From], e)
	}
	s.sim.SetNetwork(valid, s.graph.SourceEdges(), outgoing)
}

// reshape pushes updated params into the graph, rebuilds every path, and
// marks the snapshot stale. Used by the live parameter setters.
func (s *Scene) reshape() {
	s.graph.SetParams(s.cfg.Params)
	s.graph.Rebuild()
	s.dirty = true
}

// ParameterControls lists the HUD-adjustable values.
func (s *Scene) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "give", Label: "Give", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "lateral_gravity", Label: "Lateral gravity", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "path_smoothing", Label: "Path smoothing", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "relax_iterations", Label: "Relax iterations", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 64, HasMin: true, HasMax: true},
		{Key: "smoothing_passes", Label: "Smoothing passes", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 16, HasMin: true, HasMax: true},
		{Key: "mid_width", Label: "Mid width", Type: core.ParamTypeFloat, Step: 0.1, Min: 0.1, HasMin: true},
		{Key: "wobble_amount", Label: "Wobble amount", Type: core.ParamTypeFloat, Step: 0.02, Min: 0, HasMin: true},
		{Key: "flow_rate", Label: "Flow rate", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, Max: 4, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a float tunable by key, clamping to its range.
// Shaping keys trigger a full path rebuild; motion keys apply immediately.
func (s *Scene) SetFloatParameter(key string, value float64) bool {
	p := &s.cfg.Params
	switch key {
	case "give":
		p.Give = clamp01(value)
	case "lateral_gravity":
		p.LateralGravity = clamp01(value)
	case "path_smoothing":
		p.PathSmoothing = clamp01(value)
	case "mid_width":
		if value < 0.1 {
			value = 0.1
		}
		p.MidWidth = value
	case "wobble_amount":
		if value < 0 {
			value = 0
		}
		p.WobbleAmount = value
		s.sim.SetParams(*p)
		return true
	case "flow_rate":
		p.FlowRate = core.Clamp(value, 0, 4)
		s.sim.SetParams(*p)
		return true
	default:
		return false
	}
	s.sim.SetParams(*p)
	s.reshape()
	return true
}

// SetIntParameter updates an integer tunable by key, clamping to its range.
func (s *Scene) SetIntParameter(key string, value int) bool {
	p := &s.cfg.Params
	switch key {
	case "relax_iterations":
		if value < 1 {
			value = 1
		}
		if value > 64 {
			value = 64
		}
		p.RelaxIterations = value
	case "smoothing_passes":
		if value < 0 {
			value = 0
		}
		if value > 16 {
			value = 16
		}
		p.SmoothingPasses = value
	default:
		return false
	}
	s.reshape()
	return true
}
