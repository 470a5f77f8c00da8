package octigrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/transitgrid/octiloom/combgraph"
	"github.com/transitgrid/octiloom/geo"
)

func testPenalties() Penalties {
	return Penalties{
		VerticalPen: 1, HorizontalPen: 1, DiagonalPen: 1.4,
		P0: 0, P135: 1, P90: 2, P45: 3,
	}
}

func newTestGrid(w, h int) *GridGraph {
	bbox := geo.NewBound(geo.Point{0, 0}, geo.Point{float64(w), float64(h)})
	return NewGridGraph(bbox, w, h, 1, 0.25, testPenalties())
}

// P1: construction invariants.
func TestConstructionInvariants(t *testing.T) {
	g := newTestGrid(3, 3)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			c := g.Node(x, y)
			for d := Direction(0); d < 8; d++ {
				assert.NotNil(t, c.Port(d))
				assert.Equal(t, float64(1e308), c.portToCenter[d].RawCost)
			}

			bendCount := 0
			for d1 := Direction(0); d1 < 8; d1++ {
				for d2 := d1 + 1; d2 < 8; d2++ {
					if c.intraCell[d1][d2] != nil {
						bendCount++
					}
				}
			}
			assert.Equal(t, 20, bendCount)

			for d := Direction(0); d < 8; d++ {
				n := g.Neighbour(x, y, d)
				if n == nil {
					continue
				}
				e := c.interCell[d]
				assert.NotNil(t, e)
				assert.Same(t, e, n.interCell[d.Opposite()])
			}
		}
	}
}

// P2: bend-cost symmetry (rotated direction pairs cost the same).
func TestBendCostSymmetry(t *testing.T) {
	g := newTestGrid(3, 3)
	c := g.Node(1, 1)

	base := c.intraCell[N][E].RawCost
	for k := Direction(1); k < 8; k++ {
		d1 := (N + k) % 8
		d2 := (E + k) % 8
		assert.Equal(t, base, c.intraCell[d1][d2].RawCost)
	}
}

// P10: shallower bends cost strictly less under p_0 < p_135 < p_90 < p_45.
func TestBendPenaltyOrdering(t *testing.T) {
	g := newTestGrid(3, 3)
	c := g.Node(1, 1)

	straight := c.intraCell[N][S].RawCost  // angular distance 4
	obtuse := c.intraCell[N][SE].RawCost   // angular distance 3
	right := c.intraCell[N][E].RawCost     // angular distance 2

	assert.Less(t, straight, obtuse)
	assert.Less(t, obtuse, right)
}

// S1: straight path across a 3x3 grid costs exactly two traversal hops
// plus one straight (opposite-port) bend at the intermediate cell.
func TestStraightPathCost(t *testing.T) {
	g := newTestGrid(3, 3)

	a := g.Node(0, 0)
	mid := g.Node(1, 0)
	b := g.Node(2, 0)

	hop1 := g.InterCellEdge(a, mid).RawCost
	hop2 := g.InterCellEdge(mid, b).RawCost
	straightBend := mid.intraCell[W][E].RawCost

	assert.Equal(t, 1.0, hop1)
	assert.Equal(t, 1.0, hop2)
	assert.Equal(t, g.pens.P45-g.pens.P135, straightBend)
	assert.Equal(t, 4.0, hop1+hop2+straightBend) // matches S1: 2 traversal hops + one straight bend
}

// P5: close/open idempotence.
func TestCloseOpenIdempotent(t *testing.T) {
	g := newTestGrid(3, 3)
	n := g.Node(1, 1)

	g.CloseNode(n)
	g.CloseNode(n)
	assert.True(t, n.Closed)
	for d := Direction(0); d < 8; d++ {
		if e := n.interCell[d]; e != nil {
			assert.True(t, e.Closed)
		}
	}

	g.OpenNode(n)
	g.OpenNode(n)
	assert.False(t, n.Closed)
}

// P3: the grid heuristic never overestimates the true shortest-path
// cost. For (0,0) -> (2,2), two hops is the minimum possible (dx=dy=2)
// and the only two-hop path is two consecutive NE diagonal steps
// (entering (1,1) at its SW port and leaving at its NE port), so that
// path's cost is the true shortest-path cost for this pair.
func TestHeuristicAdmissible(t *testing.T) {
	g := newTestGrid(5, 5)

	a := g.Node(0, 0)
	mid := g.Node(1, 1)
	b := g.Node(2, 2)

	hop1 := g.InterCellEdge(a, mid).RawCost
	hop2 := g.InterCellEdge(mid, b).RawCost
	bend := mid.intraCell[SW][NE].RawCost
	trueShortest := hop1 + hop2 + bend

	h := g.Heuristic(a.X, a.Y, b.X, b.Y)
	assert.LessOrEqual(t, h, trueShortest)
}

// P6: reserved-edges safety.
func TestReservedEdgeSafety(t *testing.T) {
	g := newTestGrid(3, 3)
	a := g.Node(1, 1)
	b := g.Node(2, 1)

	e := g.InterCellEdge(a, b)
	e.Reserve(dummyEdge{"e1"})

	g.CloseNode(a)
	g.OpenNode(a)

	assert.True(t, e.Closed, "a reserved edge must stay closed across open-node")
}

// P7: balance-edge closes the crossing diagonal.
func TestBalanceEdgeDiagonalBlock(t *testing.T) {
	g := newTestGrid(3, 3)
	a := g.Node(0, 0)
	b := g.Node(1, 1)

	g.BalanceEdge(a, b)

	na := g.Node(1, 0)
	nb := g.Node(0, 1)
	crossEdge := g.InterCellEdge(na, nb)
	assert.NotNil(t, crossEdge)
	assert.True(t, crossEdge.Closed)
}

// S4 / P-candidates: closed centers are filtered out of CandidatesFor.
func TestCandidatesFiltering(t *testing.T) {
	g := newTestGrid(3, 3)
	target := g.Node(1, 1)
	g.CloseNode(target)

	cands := g.CandidatesFor(target.Geom, 2)
	for _, c := range cands {
		assert.NotSame(t, target, c.Center)
	}
	assert.NotEmpty(t, cands)
	assert.LessOrEqual(t, cands[0].Dist, cands[len(cands)-1].Dist)
}

type dummyEdge struct{ id string }

func (d dummyEdge) ID() string                         { return d.id }
func (d dummyEdge) OtherEnd(n combgraph.Node) combgraph.Node { return nil }
