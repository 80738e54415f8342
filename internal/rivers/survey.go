package rivers

// NetworkStats captures telemetry from a generated network used for tuning
// shaping parameters.
type NetworkStats struct {
	// Edges counts every stored edge, valid or not.
	Edges int
	// ValidEdges counts the edges usable by the simulation.
	ValidEdges int
	// SourceEdges counts the valid upstream spawn edges.
	SourceEdges int
	// MeanElongation is the mean ratio of 3D path length to horizontal
	// endpoint span across the valid edges. 1 means perfectly straight;
	// meandering channels trend higher.
	MeanElongation float64
	// MaxElongation is the largest such ratio observed.
	MaxElongation float64
}

// Survey walks the graph and summarizes how the current shaping parameters
// played out. It is a pure read; tuning tools call it after Rebuild.
func Survey(g *Graph) NetworkStats {
	s := NetworkStats{
		Edges:       g.EdgeCount(),
		SourceEdges: len(g.SourceEdges()),
	}
	sum := 0.0
	for _, e := range g.ValidEdges() {
		s.ValidEdges++
		if e.HorizontalLength() <= 0 {
			continue
		}
		r := e.PathLength() / e.HorizontalLength()
		sum += r
		if r > s.MaxElongation {
			s.MaxElongation = r
		}
	}
	if s.ValidEdges > 0 {
		s.MeanElongation = sum / float64(s.ValidEdges)
	}
	return s
}
