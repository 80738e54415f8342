package rivers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSurveyCountsAndElongation(t *testing.T) {
	g := newFlatGraph()
	a := g.AddNode(0, 0)
	b := g.AddNode(5, 0)
	c := g.AddNode(10, 0)
	d := g.AddNode(10.1, 0.05) // degenerate partner for c
	_, _ = g.AddEdge(a, b)
	_, _ = g.AddEdge(b, c)
	_, _ = g.AddEdge(c, d)

	s := Survey(g)
	require.Equal(t, 3, s.Edges)
	require.Equal(t, 2, s.ValidEdges)
	require.Equal(t, 1, s.SourceEdges)

	// Straight flat channels do not meander.
	require.InDelta(t, 1.0, s.MeanElongation, 1e-6)
	require.InDelta(t, 1.0, s.MaxElongation, 1e-6)
}

func TestSurveyEmptyGraph(t *testing.T) {
	s := Survey(newFlatGraph())
	require.Zero(t, s.Edges)
	require.Zero(t, s.ValidEdges)
	require.Zero(t, s.MeanElongation)
}
