package octigrid

import (
	"github.com/transitgrid/octiloom/combgraph"
	"github.com/transitgrid/octiloom/geo"
	. "github.com/transitgrid/octiloom/util"
)

//*******************************************
// open / close (I3, I4, P5, P6)
//*******************************************

// CloseNode marks n closed and closes every inter-cell edge incident to
// one of its ports (I3). Intra-cell bend edges are left untouched.
// Idempotent (P5).
func (g *GridGraph) CloseNode(n *Center) {
	if n.Closed {
		return
	}
	for d := Direction(0); d < 8; d++ {
		if e := n.interCell[d]; e != nil {
			e.Closed = true
		}
	}
	n.Closed = true
}

// OpenNode is the idempotent inverse of CloseNode: each incident
// inter-cell edge is reopened only if its reserved-edges set is empty
// (I4, P6) and its far endpoint isn't itself closed.
func (g *GridGraph) OpenNode(n *Center) {
	if !n.Closed {
		return
	}
	for d := Direction(0); d < 8; d++ {
		e := n.interCell[d]
		if e == nil {
			continue
		}
		neigh := g.Neighbour(n.X, n.Y, d)
		if neigh == nil || neigh.Closed {
			continue
		}
		if len(e.Reserved) == 0 {
			e.Closed = false
		}
	}
	n.Closed = false
}

// CloseNodeSink sets every port-to-center edge of n to infinite cost,
// preventing the router from treating n as a routing endpoint.
func (g *GridGraph) CloseNodeSink(n *Center) {
	for d := Direction(0); d < 8; d++ {
		n.portToCenter[d].RawCost = posInf
	}
}

// OpenNodeSink sets every port-to-center edge of n to cost, admitting n
// as a routing endpoint with uniform sink cost.
func (g *GridGraph) OpenNodeSink(n *Center, cost float64) {
	for d := Direction(0); d < 8; d++ {
		n.portToCenter[d].RawCost = cost
	}
}

//*******************************************
// balance edge (P7)
//*******************************************

// BalanceEdge is called by the router on each consecutive pair of
// centers along a freshly-committed path: it permanently removes the
// traversal edge between a and b from future use and, for a diagonal
// step, also closes the crossing diagonal so two diagonal routings
// can never visually cross through the same cell corner.
func (g *GridGraph) BalanceEdge(a, b *Center) {
	if a == b {
		return
	}
	var dir Direction = -1
	for d := Direction(0); d < 8; d++ {
		if g.Neighbour(a.X, a.Y, d) == b {
			dir = d
			break
		}
	}
	if dir == -1 {
		panic(newPreconditionError("balance-edge: %v and %v are not grid-adjacent", a, b))
	}

	e := a.interCell[dir]
	e.RawCost = posInf

	g.CloseNode(a)
	g.CloseNode(b)

	if dir.IsDiagonal() {
		na := g.Neighbour(a.X, a.Y, (dir+7)%8)
		nb := g.Neighbour(a.X, a.Y, (dir+1)%8)
		if na != nil && nb != nil {
			if crossEdge := g.InterCellEdge(na, nb); crossEdge != nil {
				crossEdge.RawCost = posInf
				crossEdge.Closed = true
			}
		}
	}
}

//*******************************************
// candidates / spatial index
//*******************************************

// Candidate is one result of CandidatesFor: a center and its distance
// to the query point.
type Candidate struct {
	Center *Center
	Dist   float64
}

// CandidatesFor returns every open center within maxD of p, ordered by
// ascending distance (a min-heap drained into a slice; this module's
// grid is itself a regular bucket spatial index, so the "index query"
// is simply the bounding box of cell coordinates within maxD).
func (g *GridGraph) CandidatesFor(p geo.Point, maxD float64) []Candidate {
	pq := NewPriorityQueue[*Center, float64](8)

	cellRadius := int(maxD/g.cellSize) + 1
	cx := int((p[0] - g.bbox.Min[0]) / g.cellSize)
	cy := int((p[1] - g.bbox.Min[1]) / g.cellSize)

	for y := cy - cellRadius; y <= cy+cellRadius; y++ {
		for x := cx - cellRadius; x <= cx+cellRadius; x++ {
			c := g.Node(x, y)
			if c == nil || c.Closed {
				continue
			}
			d := geo.Dist(c.Geom, p)
			if d < maxD {
				pq.Enqueue(c, d)
			}
		}
	}

	result := make([]Candidate, 0, pq.Length())
	for {
		c, ok := pq.Dequeue()
		if !ok {
			break
		}
		result = append(result, Candidate{Center: c, Dist: geo.Dist(c.Geom, p)})
	}
	return result
}

//*******************************************
// settlement map
//*******************************************

// Settle records that cn is committed to represent node n, growing the
// settlement map monotonically; settling the same comb node twice is a
// PreconditionViolation.
func (g *GridGraph) Settle(n combgraph.Node, cn *Center) {
	if g.settled.ContainsKey(n) {
		panic(newPreconditionError("comb node %s already settled", n.ID()))
	}
	g.settled.Set(n, cn)
}

func (g *GridGraph) IsSettled(n combgraph.Node) bool {
	return g.settled.ContainsKey(n)
}

// GridNodeFrom returns the pre-committed grid node for n if settled,
// else the single nearest open candidate within maxDis (or nil).
func (g *GridGraph) GridNodeFrom(n combgraph.Node, maxDis float64) *Center {
	if g.IsSettled(n) {
		return g.settled.Get(n)
	}
	cands := g.CandidatesFor(n.Geom(), maxDis)
	if len(cands) == 0 {
		return nil
	}
	return cands[0].Center
}

// GridNodesTo returns every open candidate center for n within maxDis,
// or the singleton settled center if n is already settled.
func (g *GridGraph) GridNodesTo(n combgraph.Node, maxDis float64) []*Center {
	if g.IsSettled(n) {
		return []*Center{g.settled.Get(n)}
	}
	cands := g.CandidatesFor(n.Geom(), maxDis)
	result := make([]*Center, len(cands))
	for i, c := range cands {
		result[i] = c.Center
	}
	return result
}
