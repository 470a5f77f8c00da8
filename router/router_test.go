package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/transitgrid/octiloom/combgraph"
	"github.com/transitgrid/octiloom/geo"
	"github.com/transitgrid/octiloom/octigrid"
)

func testGrid(w, h int) *octigrid.GridGraph {
	bbox := geo.NewBound(geo.Point{0, 0}, geo.Point{float64(w), float64(h)})
	pens := octigrid.Penalties{
		VerticalPen: 1, HorizontalPen: 1, DiagonalPen: 1.4,
		P0: 0, P135: 1, P90: 2, P45: 3,
	}
	return octigrid.NewGridGraph(bbox, w, h, 1, 0.25, pens)
}

// S7: a three-node comb graph u-v-w routed edge by edge lands each
// edge on a disjoint set of grid edges; no double reservation.
func TestRouteCombTwoEdges(t *testing.T) {
	g := testGrid(8, 8)

	b := combgraph.NewBuilder()
	u := b.AddNode("u", geo.Point{1, 4})
	v := b.AddNode("v", geo.Point{4, 4})
	w := b.AddNode("w", geo.Point{7, 4})
	e1 := b.AddEdge("e1", u, v)
	e2 := b.AddEdge("e2", v, w)

	opts := Options{MaxDis: 1.5, MaxRetries: 3, SinkCost: 0}

	res1, err := RouteComb(g, u, e1, opts)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(res1.Path), 2)

	res2, err := RouteComb(g, v, e2, opts)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(res2.Path), 2)

	reserved1 := map[*octigrid.GridEdge]bool{}
	for i := 0; i < len(res1.Path)-1; i++ {
		e := g.InterCellEdge(res1.Path[i], res1.Path[i+1])
		require.NotNil(t, e)
		reserved1[e] = true
	}
	for i := 0; i < len(res2.Path)-1; i++ {
		e := g.InterCellEdge(res2.Path[i], res2.Path[i+1])
		require.NotNil(t, e)
		assert.False(t, reserved1[e], "edge reused by both comb edges")
	}
}

func TestRouteCombNoCandidate(t *testing.T) {
	g := testGrid(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			g.CloseNode(g.Node(x, y))
		}
	}

	b := combgraph.NewBuilder()
	u := b.AddNode("u", geo.Point{0, 0})
	v := b.AddNode("v", geo.Point{2, 2})
	e := b.AddEdge("e", u, v)

	_, err := RouteComb(g, u, e, Options{MaxDis: 0.5, MaxRetries: 1, SinkCost: 0})
	assert.ErrorIs(t, err, ErrNoCandidate)
}
