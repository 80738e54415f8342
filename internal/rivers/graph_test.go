package rivers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newFlatGraph() *Graph {
	p := DefaultConfig().Params
	p.Give = 0
	p.LateralGravity = 0
	return NewGraph(flatOracle{}, p)
}

func TestAddEdgeRejectsCycle(t *testing.T) {
	g := newFlatGraph()
	a := g.AddNode(0, 0)
	b := g.AddNode(5, 0)
	c := g.AddNode(10, 0)

	_, err := g.AddEdge(a, b)
	require.NoError(t, err)
	_, err = g.AddEdge(b, c)
	require.NoError(t, err)

	_, err = g.AddEdge(c, a)
	require.ErrorIs(t, err, ErrCycle)
	require.Equal(t, 2, g.EdgeCount(), "rejected edge must leave the graph unmutated")
}

func TestAddEdgeRejectsSelfLoopAndDuplicate(t *testing.T) {
	g := newFlatGraph()
	a := g.AddNode(0, 0)
	b := g.AddNode(5, 0)

	_, err := g.AddEdge(a, a)
	require.ErrorIs(t, err, ErrSelfLoop)

	_, err = g.AddEdge(a, b)
	require.NoError(t, err)
	_, err = g.AddEdge(a, b)
	require.ErrorIs(t, err, ErrDuplicateEdge)
}

func TestAddEdgeRejectsUnknownNode(t *testing.T) {
	g := newFlatGraph()
	a := g.AddNode(0, 0)

	_, err := g.AddEdge(a, NodeID(999))
	require.ErrorIs(t, err, ErrUnknownNode)
	_, err = g.AddEdge(NodeID(999), a)
	require.ErrorIs(t, err, ErrUnknownNode)
}

func TestRemoveNodeCascades(t *testing.T) {
	g := newFlatGraph()
	a := g.AddNode(0, 0)
	b := g.AddNode(5, 0)
	c := g.AddNode(10, 0)
	_, err := g.AddEdge(a, b)
	require.NoError(t, err)
	_, err = g.AddEdge(b, c)
	require.NoError(t, err)

	g.RemoveNode(b)

	require.Nil(t, g.Node(b))
	require.Equal(t, 0, g.EdgeCount(), "every edge touching the node must go")

	// The survivors can reconnect without tripping stale indexes.
	_, err = g.AddEdge(a, c)
	require.NoError(t, err)
}

func TestSourceEdges(t *testing.T) {
	g := newFlatGraph()
	a := g.AddNode(0, 0)
	b := g.AddNode(5, 0)
	c := g.AddNode(10, 0)
	d := g.AddNode(0, 6)
	_, _ = g.AddEdge(a, b)
	_, _ = g.AddEdge(b, c)
	_, _ = g.AddEdge(d, b)

	sources := g.SourceEdges()
	require.Len(t, sources, 2)
	for _, e := range sources {
		require.Contains(t, []NodeID{a, d}, e.From)
	}
}

func TestValidEdgesExcludesDegenerate(t *testing.T) {
	g := newFlatGraph()
	a := g.AddNode(0, 0)
	b := g.AddNode(0.1, 0) // below the minimum horizontal span

	_, err := g.AddEdge(a, b)
	require.NoError(t, err, "geometric degeneracy is not an insertion error")
	require.Equal(t, 1, g.EdgeCount(), "invalid edges stay stored for inspection")
	require.Empty(t, g.ValidEdges())
	require.Empty(t, g.SourceEdges())
}

func TestMoveNodeRegeneratesIncidentEdges(t *testing.T) {
	g := newFlatGraph()
	a := g.AddNode(0, 0)
	b := g.AddNode(5, 0)
	c := g.AddNode(10, 0)
	_, _ = g.AddEdge(a, b)
	_, _ = g.AddEdge(b, c)

	require.NoError(t, g.MoveNode(b, 5, 4))

	for _, e := range g.ValidEdges() {
		pts := e.Points()
		if e.From == b {
			require.InDelta(t, 4, pts[0].Z, 1e-9)
		}
		if e.To == b {
			require.InDelta(t, 4, pts[len(pts)-1].Z, 1e-9)
		}
	}

	require.ErrorIs(t, g.MoveNode(NodeID(999), 0, 0), ErrUnknownNode)
}

func TestRebuildAppliesNewParams(t *testing.T) {
	o := ridgeOracle{span: 6, height: 0.4}
	p := DefaultConfig().Params
	p.Give = 0
	p.LateralGravity = 0
	g := NewGraph(o, p)
	a := g.AddNode(0, 0)
	b := g.AddNode(6, 0)
	_, err := g.AddEdge(a, b)
	require.NoError(t, err)

	// With give=0 the path ignores the ridge entirely.
	g.Edges(func(e *Edge) {
		for _, pt := range e.Points() {
			require.InDelta(t, 0, pt.Y, 1e-9)
		}
	})

	p.Give = 1
	g.SetParams(p)
	g.Rebuild()

	// After the rebuild every sample drapes onto the ridge.
	g.Edges(func(e *Edge) {
		for _, pt := range e.Points() {
			require.InDelta(t, o.Height(pt.X, pt.Z), pt.Y, 1e-9)
		}
	})
}

func TestValidOutgoing(t *testing.T) {
	g := newFlatGraph()
	a := g.AddNode(0, 0)
	b := g.AddNode(5, 0)
	c := g.AddNode(10, 0)
	d := g.AddNode(10, 5)
	_, _ = g.AddEdge(a, b)
	_, _ = g.AddEdge(b, c)
	_, _ = g.AddEdge(b, d)

	out := g.ValidOutgoing(b)
	require.Len(t, out, 2)
	require.Empty(t, g.ValidOutgoing(c))
}
