package rivers

import (
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// NodeID identifies a node for the lifetime of a graph.
type NodeID uint64

// Node is a river junction placed on the terrain. Elevation is sampled once
// at creation and again whenever the node moves.
type Node struct {
	ID NodeID
	X  float64
	Y  float64
	Z  float64
}

// Graph edit failures. Geometry problems are never errors; they end up as
// invalid edges instead.
var (
	ErrUnknownNode   = errors.New("rivers: unknown node")
	ErrSelfLoop      = errors.New("rivers: edge endpoints are the same node")
	ErrDuplicateEdge = errors.New("rivers: edge already exists")
	ErrCycle         = errors.New("rivers: edge would close a cycle")
)

// Graph owns the river network: nodes, directed edges, and the acyclicity
// invariant. Edges are kept in insertion order. Incidence is derived from an
// index rebuilt on mutation rather than stored on the nodes.
type Graph struct {
	oracle Oracle
	params Params

	nodes  map[NodeID]*Node
	edges  []*Edge
	nextID uint64

	outgoing map[NodeID][]int
	incoming map[NodeID][]int
}

// NewGraph constructs an empty graph that builds paths against the given
// oracle with the given shaping parameters.
func NewGraph(o Oracle, p Params) *Graph {
	return &Graph{
		oracle:   o,
		params:   p,
		nodes:    make(map[NodeID]*Node),
		outgoing: make(map[NodeID][]int),
		incoming: make(map[NodeID][]int),
	}
}

// Params returns the shaping parameters paths are currently built with.
func (g *Graph) Params() Params { return g.params }

// SetParams replaces the shaping parameters. Existing paths keep their old
// shape until Rebuild is called.
func (g *Graph) SetParams(p Params) { g.params = p }

// AddNode samples the terrain at (x, z) and stores a new node. Never fails.
func (g *Graph) AddNode(x, z float64) NodeID {
	g.nextID++
	id := NodeID(g.nextID)
	g.nodes[id] = &Node{ID: id, X: x, Y: g.oracle.Height(x, z), Z: z}
	return id
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id NodeID) *Node { return g.nodes[id] }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Nodes calls fn for every node, in no particular order.
func (g *Graph) Nodes(fn func(*Node)) {
	for _, n := range g.nodes {
		fn(n)
	}
}

// AddEdge inserts a directed edge from src to dst, generating its path. It
// rejects unknown endpoints, self-loops, duplicates, and any edge that would
// close a directed cycle, leaving the graph unmutated on failure. The edge is
// stored whether or not its path validated; invalid edges are simply excluded
// from the simulation's view.
func (g *Graph) AddEdge(src, dst NodeID) (EdgeID, error) {
	from, ok := g.nodes[src]
	if !ok {
		return 0, ErrUnknownNode
	}
	to, ok := g.nodes[dst]
	if !ok {
		return 0, ErrUnknownNode
	}
	if src == dst {
		return 0, ErrSelfLoop
	}
	for _, i := range g.outgoing[src] {
		if g.edges[i].To == dst {
			return 0, ErrDuplicateEdge
		}
	}
	if g.reaches(dst, src) {
		return 0, ErrCycle
	}

	g.nextID++
	e := buildEdge(EdgeID(g.nextID), from, to, g.oracle, g.params)
	g.edges = append(g.edges, e)
	g.reindex()
	return e.ID, nil
}

// reaches reports whether a directed path exists from start to goal. Used
// once per edge insertion; network edits are rare relative to frame cost, so
// a plain DFS is enough.
func (g *Graph) reaches(start, goal NodeID) bool {
	if start == goal {
		return true
	}
	visited := map[NodeID]bool{start: true}
	stack := []NodeID{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, i := range g.outgoing[n] {
			next := g.edges[i].To
			if next == goal {
				return true
			}
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// RemoveNode deletes the node and every edge touching it.
func (g *Graph) RemoveNode(id NodeID) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)
	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.From != id && e.To != id {
			kept = append(kept, e)
		}
	}
	g.edges = kept
	g.reindex()
}

// MoveNode repositions a node, re-samples its elevation, and regenerates
// every incident edge.
func (g *Graph) MoveNode(id NodeID, x, z float64) error {
	n, ok := g.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	n.X = x
	n.Z = z
	n.Y = g.oracle.Height(x, z)
	for i, e := range g.edges {
		if e.From == id || e.To == id {
			g.edges[i] = buildEdge(e.ID, g.nodes[e.From], g.nodes[e.To], g.oracle, g.params)
		}
	}
	g.reindex()
	return nil
}

// Rebuild regenerates every edge path, in parallel across edges. Used when
// the terrain or the shaping parameters change; never called from the frame
// step.
func (g *Graph) Rebuild() {
	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for i := range g.edges {
		i := i
		eg.Go(func() error {
			e := g.edges[i]
			g.edges[i] = buildEdge(e.ID, g.nodes[e.From], g.nodes[e.To], g.oracle, g.params)
			return nil
		})
	}
	_ = eg.Wait()
}

// Edges calls fn for every edge in insertion order, valid or not.
func (g *Graph) Edges(fn func(*Edge)) {
	for _, e := range g.edges {
		fn(e)
	}
}

// EdgeCount returns the number of stored edges, valid or not.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// ValidEdges returns the edges usable by the simulation, in insertion order.
// This is the only edge set the particle simulation may consume.
func (g *Graph) ValidEdges() []*Edge {
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if e.valid {
			out = append(out, e)
		}
	}
	return out
}

// SourceEdges returns the valid edges whose source node has no incoming
// edges: the true upstream ends of the network, used to respawn particles.
func (g *Graph) SourceEdges() []*Edge {
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if e.valid && len(g.incoming[e.From]) == 0 {
			out = append(out, e)
		}
	}
	return out
}

// ValidOutgoing returns the valid edges leaving the given node.
func (g *Graph) ValidOutgoing(id NodeID) []*Edge {
	idx := g.outgoing[id]
	out := make([]*Edge, 0, len(idx))
	for _, i := range idx {
		if g.edges[i].valid {
			out = append(out, g.edges[i])
		}
	}
	return out
}

// reindex rebuilds the incidence index after any edge-list mutation.
func (g *Graph) reindex() {
	clear(g.outgoing)
	clear(g.incoming)
	for i, e := range g.edges {
		g.outgoing[e.From] = append(g.outgoing[e.From], i)
		g.incoming[e.To] = append(g.incoming[e.To], i)
	}
}
