package octigrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/transitgrid/octiloom/combgraph"
	"github.com/transitgrid/octiloom/geo"
)

// S2 / P4: apply followed by unapply restores raw cost and closed flag.
func TestApplyUnapplyRoundTrip(t *testing.T) {
	g := newTestGrid(3, 3)
	n := g.Node(1, 1)

	before := make(map[Direction]float64, 8)
	closedBefore := make(map[Direction]bool, 8)
	for d := Direction(0); d < 8; d++ {
		if e := n.interCell[d]; e != nil {
			before[d] = e.RawCost
			closedBefore[d] = e.Closed
		}
	}

	var add NodeCost
	add.Add(N, 0.5)
	add.Add(E, 1.0)
	add.Close(S)

	inv := g.Apply(n, add)
	g.Unapply(n, inv)

	for d := Direction(0); d < 8; d++ {
		if e := n.interCell[d]; e != nil {
			assert.Equal(t, before[d], e.RawCost, "direction %d raw cost", d)
			assert.Equal(t, closedBefore[d], e.Closed, "direction %d closed flag", d)
		}
	}
}

// S6: spacing penalty optimum, four incident edges with three already
// routed at directions 0, 2, 4; the fourth's minimum (before hard
// blocks) should fall at direction 6.
func TestSpacingPenaltyOptimum(t *testing.T) {
	g := newTestGrid(5, 5)
	n := g.Node(2, 2)

	b := combgraph.NewBuilder()
	u := b.AddNode("u", geo.Point{2, 2})
	v1 := b.AddNode("v1", geo.Point{2, 3})
	v2 := b.AddNode("v2", geo.Point{3, 2})
	v3 := b.AddNode("v3", geo.Point{2, 1})
	v4 := b.AddNode("v4", geo.Point{1, 2})

	e1 := b.AddEdge("e1", u, v1)
	e2 := b.AddEdge("e2", u, v2)
	e3 := b.AddEdge("e3", u, v3)
	e4 := b.AddEdge("e4", u, v4)

	// route e1, e2, e3 at directions N, E, S respectively.
	n.interCell[N].Reserve(e1)
	n.interCell[E].Reserve(e2)
	n.interCell[S].Reserve(e3)

	outgoing := g.settledOutgoing(u, n)
	cost := g.spacingPenalty(u, e4, outgoing)

	minDir := Direction(0)
	minVal := cost[0]
	for d := Direction(1); d < 8; d++ {
		if !cost.IsClosed(d) && (cost.IsClosed(minDir) || cost[d] < minVal) {
			minDir, minVal = d, cost[d]
		}
	}
	assert.Equal(t, W, minDir)
}

// S6 (odd degree): optim must use integer division (8/k - 1), not
// float division — at k=3 these diverge (1 vs 1.667) and the wrong one
// shifts every dd/ddd slot. Two edges already routed at N, E; the
// third's minimum (before hard blocks) must fall at S with value 0.
func TestSpacingPenaltyOptimumOddDegree(t *testing.T) {
	g := newTestGrid(5, 5)
	n := g.Node(2, 2)

	b := combgraph.NewBuilder()
	u := b.AddNode("u", geo.Point{2, 2})
	v1 := b.AddNode("v1", geo.Point{2, 3})
	v2 := b.AddNode("v2", geo.Point{3, 2})
	v3 := b.AddNode("v3", geo.Point{2, 1})

	e1 := b.AddEdge("e1", u, v1)
	e2 := b.AddEdge("e2", u, v2)
	e3 := b.AddEdge("e3", u, v3)

	n.interCell[N].Reserve(e1)
	n.interCell[E].Reserve(e2)

	outgoing := g.settledOutgoing(u, n)
	cost := g.spacingPenalty(u, e3, outgoing)

	assert.True(t, cost.IsClosed(N))
	assert.True(t, cost.IsClosed(NE))
	assert.True(t, cost.IsClosed(E))
	assert.InDelta(t, 0.0, cost.Get(S), 1e-9)
	assert.InDelta(t, 20.0/3.0, cost.Get(SE), 1e-9)
	assert.InDelta(t, 8.0/3.0, cost.Get(SW), 1e-9)
	assert.InDelta(t, 16.0/3.0, cost.Get(W), 1e-9)
	assert.InDelta(t, 8.0, cost.Get(NW), 1e-9)

	minDir := Direction(0)
	minVal := cost[0]
	for d := Direction(1); d < 8; d++ {
		if !cost.IsClosed(d) && (cost.IsClosed(minDir) || cost[d] < minVal) {
			minDir, minVal = d, cost[d]
		}
	}
	assert.Equal(t, S, minDir)
}

// MissingEdgeOrdering: spacing penalty on an edge absent from the
// node's ordering returns a zero vector instead of panicking.
func TestSpacingPenaltyMissingEdge(t *testing.T) {
	g := newTestGrid(3, 3)
	n := g.Node(1, 1)

	b := combgraph.NewBuilder()
	u := b.AddNode("u", geo.Point{1, 1})
	v := b.AddNode("v", geo.Point{2, 1})
	x := b.AddNode("x", geo.Point{0, 0})
	y := b.AddNode("y", geo.Point{0, 1})
	b.AddEdge("e1", u, v)
	foreign := b.AddEdge("foreign", x, y)

	cost := g.spacingPenalty(u, foreign, g.settledOutgoing(u, n))
	assert.Equal(t, NodeCost{}, cost)
}
