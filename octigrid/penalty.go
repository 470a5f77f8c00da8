package octigrid

import (
	"math"

	"github.com/transitgrid/octiloom/combgraph"
	"github.com/transitgrid/octiloom/geo"
	"golang.org/x/exp/slog"
)

//*******************************************
// penalty & reversible cost engine (component C)
//*******************************************

// PenaltyVector computes the combined spacing, topological-block and
// bearing-deviation cost for routing comb edge e out of n, which
// currently stands in for comb node u. It is the sum the router feeds
// into Apply before running its shortest-path search.
func (g *GridGraph) PenaltyVector(u combgraph.Node, e combgraph.Edge, n *Center) NodeCost {
	outgoing := g.settledOutgoing(u, n)

	spacing := g.spacingPenalty(u, e, outgoing)
	topo := g.topoBlockPenalty(u, e, outgoing)
	bearing := g.bearingPenalty(u, e)

	return spacing.Plus(topo).Plus(bearing)
}

// settledOutgoing is the §4.3.1 scan: for each direction out of n,
// which comb edge (if any) already reserves the inter-cell edge in
// that direction.
func (g *GridGraph) settledOutgoing(u combgraph.Node, n *Center) [8]combgraph.Edge {
	var out [8]combgraph.Edge
	for d := Direction(0); d < 8; d++ {
		ce := n.interCell[d]
		if ce == nil || len(ce.Reserved) == 0 {
			continue
		}
		for _, f := range ce.Reserved {
			out[d] = f
			break
		}
	}
	return out
}

//*******************************************
// spacing penalty (4.3.2)
//*******************************************

// spacingPenalty distributes e's incident direction away from the
// already-routed incident edges of u, favouring the angular midpoint
// between neighbours (optim = 8/k - 1) and hard-blocking the directions
// those neighbours already occupy.
func (g *GridGraph) spacingPenalty(u combgraph.Node, e combgraph.Edge, outgoing [8]combgraph.Edge) NodeCost {
	var c NodeCost

	ordering := u.EdgeOrdering()
	if !ordering.Has(e) {
		slog.Warn("spacing penalty invoked for edge not in node's ordering", "node", u.ID())
		return c
	}

	k := ordering.Len()
	if k == 0 {
		return c
	}
	optim := float64(8/k - 1)

	for i := Direction(0); i < 8; i++ {
		f := outgoing[i]
		if f == nil {
			continue
		}

		dCw := ordering.Dist(f, e) - 1
		dCCw := ordering.Dist(e, f) - 1

		dd := math.Mod(math.Mod(float64(2*dCw+1), 8)*optim, 8)
		ddd := math.Mod(6-dd, 8)

		if dd > 0 {
			for j := 1; j <= int(dd)+1; j++ {
				v := (2*g.pens.P45 - 1) * (1 - float64(j-1)/dd)
				slot := (i + Direction(j)) % 8
				c.Add(slot, v)
			}
		}
		if ddd > 0 {
			for j := 1; j <= int(ddd)+1; j++ {
				v := (2*g.pens.P45 - 1) * (1 - float64(j-1)/ddd)
				slot := (i + 8 - Direction(j)) % 8
				c.Add(slot, v)
			}
		}

		// hard-block the directions f itself occupies, within the
		// clockwise/counter-clockwise windows up to dCw/dCCw.
		for s := 0; s <= dCw; s++ {
			c.Close((i + Direction(s)) % 8)
		}
		for s := 0; s <= dCCw; s++ {
			c.Close((i + 8 - Direction(s)) % 8)
		}
	}

	return c
}

//*******************************************
// topological-block penalty (4.3.3)
//*******************************************

// topoBlockPenalty closes directions whose grid sector would violate
// the cyclic ordering of u's incident edges: for every two
// already-routed edges at directions i < j, if e does not lie between
// them in the comb node's ordering (db < da), every direction strictly
// between i and j is closed. Only the sector from i up to j is
// examined; the sector wrapping from j back round to i is never closed.
func (g *GridGraph) topoBlockPenalty(u combgraph.Node, e combgraph.Edge, outgoing [8]combgraph.Edge) NodeCost {
	var c NodeCost

	ordering := u.EdgeOrdering()
	if !ordering.Has(e) {
		return c
	}

	for i := Direction(0); i < 8; i++ {
		oi := outgoing[i]
		if oi == nil {
			continue
		}
		for j := i + 1; j < 8; j++ {
			oj := outgoing[j]
			if oj == nil {
				continue
			}
			if oi == oj {
				break
			}

			da := ordering.Dist(oi, e)
			db := ordering.Dist(oj, e)
			if db < da {
				for d := i + 1; d < j; d++ {
					c.Close(d)
				}
			}
		}
	}

	return c
}

//*******************************************
// out-degree bearing deviation (4.3.4)
//*******************************************

// bearingPenalty softly prefers grid directions close to the geographic
// bearing from u to e's other endpoint.
func (g *GridGraph) bearingPenalty(u combgraph.Node, e combgraph.Edge) NodeCost {
	var c NodeCost

	other := e.OtherEnd(u)
	angRad := geo.AngleBetween(u.Geom(), other.Geom())
	alpha := angRad*180/math.Pi + 90
	alpha = math.Mod(alpha, 360)
	if alpha < 0 {
		alpha += 360
	}

	for i := Direction(0); i < 8; i++ {
		diff := math.Abs(alpha - 45*float64(i))
		if 360-diff < diff {
			diff = 360 - diff
		}
		c.Add(i, 0.1*diff)
	}

	return c
}

//*******************************************
// reversible application (4.3.5)
//*******************************************

// Apply adds addC to the raw costs (and closes directions marked by the
// sentinel) of the inter-cell edges incident to n, returning the
// inverse vector needed to undo exactly this change.
func (g *GridGraph) Apply(n *Center, addC NodeCost) NodeCost {
	var inv NodeCost
	for d := Direction(0); d < 8; d++ {
		v := addC[d]
		if v == 0 {
			continue
		}
		e := n.interCell[d]
		if e == nil {
			continue
		}
		if addC.IsClosed(d) {
			if e.Closed {
				inv[d] = 0
				continue
			}
			e.Closed = true
			neigh := g.Neighbour(n.X, n.Y, d)
			if neigh != nil {
				g.CloseNode(neigh)
			}
			inv[d] = v
		} else {
			e.RawCost += v
			inv[d] = v
		}
	}
	return inv
}

// Unapply inverts a vector previously returned by Apply, restoring
// every touched edge's raw cost and closed flag (P4).
func (g *GridGraph) Unapply(n *Center, invC NodeCost) {
	for d := Direction(0); d < 8; d++ {
		v := invC[d]
		if v == 0 {
			continue
		}
		e := n.interCell[d]
		if e == nil {
			continue
		}
		if invC.IsClosed(d) {
			e.Closed = false
			neigh := g.Neighbour(n.X, n.Y, d)
			if neigh != nil {
				g.OpenNode(neigh)
			}
		} else {
			e.RawCost -= v
		}
	}
}
