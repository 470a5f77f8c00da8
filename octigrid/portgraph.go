package octigrid

import "github.com/transitgrid/octiloom/combgraph"

//*******************************************
// port-level traversal surface for outer routers
//*******************************************

// PortStep is one edge out of a port: either a bend (intra-cell) step
// staying on the same center, or a traversal (inter-cell) step moving
// to the mirrored port of a neighbour.
type PortStep struct {
	To   *Port
	Edge *GridEdge
}

// Steps returns every grid edge leaving p usable by a shortest-path
// search: the center's bend edges to its other ports (skipping the
// disallowed sharp-turn pairs, which were never created) and, if
// present, the single inter-cell traversal edge in p's direction.
func (g *GridGraph) Steps(p *Port) []PortStep {
	c := p.Owner
	d1 := p.Dir

	steps := make([]PortStep, 0, 7)
	for d2 := Direction(0); d2 < 8; d2++ {
		if d2 == d1 {
			continue
		}
		if e := c.intraCell[d1][d2]; e != nil {
			steps = append(steps, PortStep{To: c.ports[d2], Edge: e})
		}
	}
	if e := c.interCell[d1]; e != nil {
		if neigh := g.Neighbour(c.X, c.Y, d1); neigh != nil {
			steps = append(steps, PortStep{To: neigh.ports[d1.Opposite()], Edge: e})
		}
	}
	return steps
}

// SinkEdge returns the port-to-center sink edge for direction d of c,
// the adapter used when a router enters or exits the grid at c.
func (c *Center) SinkEdge(d Direction) *GridEdge {
	return c.portToCenter[d]
}

// Reserve records that comb edge ce is routed through e.
func (e *GridEdge) Reserve(ce combgraph.Edge) {
	e.reserve(ce)
}

// Unreserve removes ce from e's reserved-edges set.
func (e *GridEdge) Unreserve(ce combgraph.Edge) {
	e.unreserve(ce)
}

// IsReserved reports whether any comb edge currently reserves e.
func (e *GridEdge) IsReserved() bool {
	return len(e.Reserved) > 0
}
