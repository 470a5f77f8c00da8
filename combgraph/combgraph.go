// Package combgraph defines the interfaces the octilinear grid and the
// penalty engine consume from the input ("comb") graph of transit stops
// and inter-stop links. Construction of a comb graph from GTFS/OSM data
// is explicitly out of scope for this module (SPEC_FULL.md §1); this
// package only declares the contract and ships a small in-memory
// reference implementation used by this module's own tests and demo
// command.
package combgraph

import "github.com/transitgrid/octiloom/geo"

// Edge is one inter-stop link of the comb graph.
type Edge interface {
	// OtherEnd returns the endpoint of this edge that is not n.
	OtherEnd(n Node) Node
	// ID is a stable identifier, used for membership tests and as the
	// reservation token recorded on grid edges.
	ID() string
}

// EdgeOrdering is the cyclic sequence of edges incident to a comb node,
// listed in clockwise order. Dist(a, b) counts the number of steps
// clockwise from a to b (0 if a == b); Has reports membership.
type EdgeOrdering interface {
	Has(e Edge) bool
	Dist(a, b Edge) int
	Len() int
	At(i int) Edge
}

// Node is one transit stop of the comb graph.
type Node interface {
	ID() string
	Geom() geo.Point
	EdgeOrdering() EdgeOrdering
	AdjacentEdges() []Edge
}

//*******************************************
// reference in-memory implementation
//*******************************************

type simpleEdge struct {
	id   string
	a, b *simpleNode
}

func (e *simpleEdge) ID() string { return e.id }
func (e *simpleEdge) OtherEnd(n Node) Node {
	if n == Node(e.a) {
		return e.b
	}
	if n == Node(e.b) {
		return e.a
	}
	panic("combgraph: OtherEnd called with a node not incident to this edge")
}

type cyclicOrdering struct {
	edges []Edge
	pos   map[Edge]int
}

func (o *cyclicOrdering) Has(e Edge) bool {
	_, ok := o.pos[e]
	return ok
}
func (o *cyclicOrdering) Dist(a, b Edge) int {
	if a == b {
		return 0
	}
	pa, pb := o.pos[a], o.pos[b]
	d := pb - pa
	if d < 0 {
		d += len(o.edges)
	}
	return d
}
func (o *cyclicOrdering) Len() int       { return len(o.edges) }
func (o *cyclicOrdering) At(i int) Edge  { return o.edges[i] }

type simpleNode struct {
	id       string
	geom     geo.Point
	ordering *cyclicOrdering
}

func (n *simpleNode) ID() string                   { return n.id }
func (n *simpleNode) Geom() geo.Point               { return n.geom }
func (n *simpleNode) EdgeOrdering() EdgeOrdering    { return n.ordering }
func (n *simpleNode) AdjacentEdges() []Edge         { return n.ordering.edges }

// Builder assembles a small in-memory comb graph for tests and demos.
// Edges added to a node are kept in insertion order and treated as
// already being in clockwise order — callers responsible for the
// geometry (the demo command, tests) are expected to add them that way.
type Builder struct {
	nodes map[string]*simpleNode
	edges []*simpleEdge
}

func NewBuilder() *Builder {
	return &Builder{nodes: make(map[string]*simpleNode)}
}

func (b *Builder) AddNode(id string, geom geo.Point) Node {
	n := &simpleNode{id: id, geom: geom, ordering: &cyclicOrdering{pos: make(map[Edge]int)}}
	b.nodes[id] = n
	return n
}

func (b *Builder) AddEdge(id string, a, b2 Node) Edge {
	an := a.(*simpleNode)
	bn := b2.(*simpleNode)
	e := &simpleEdge{id: id, a: an, b: bn}
	b.edges = append(b.edges, e)
	for _, n := range [2]*simpleNode{an, bn} {
		n.ordering.pos[Edge(e)] = len(n.ordering.edges)
		n.ordering.edges = append(n.ordering.edges, Edge(e))
	}
	return e
}

func (b *Builder) Node(id string) Node {
	return b.nodes[id]
}
