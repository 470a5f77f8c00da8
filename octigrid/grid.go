// Package octigrid implements the octilinear grid graph (component B)
// and its penalty/reversible-cost engine (component C): an augmented
// square lattice where every cell owns a center and eight direction-
// tagged ports, with turn-cost edges between ports of one cell and
// traversal-cost edges between mirrored ports of adjacent cells.
package octigrid

import (
	"github.com/google/uuid"
	"github.com/transitgrid/octiloom/combgraph"
	"github.com/transitgrid/octiloom/geo"
	. "github.com/transitgrid/octiloom/util"
	"golang.org/x/exp/slog"
)

//*******************************************
// penalties config
//*******************************************

// Penalties holds the base traversal costs and bend penalties the grid
// is built with. The bend penalties must satisfy P0 < P135 < P90 < P45
// (I5): a sharper turn is always strictly more expensive than a
// shallower one. Grid construction asserts this and panics on failure.
type Penalties struct {
	VerticalPen   float64 `yaml:"vertical_pen"`
	HorizontalPen float64 `yaml:"horizontal_pen"`
	DiagonalPen   float64 `yaml:"diagonal_pen"`

	P0   float64 `yaml:"p_0"`
	P135 float64 `yaml:"p_135"`
	P90  float64 `yaml:"p_90"`
	P45  float64 `yaml:"p_45"`
}

func (p Penalties) assertValid() {
	if !(p.P0 < p.P135 && p.P135 < p.P90 && p.P90 < p.P45) {
		panic(newPreconditionError("bend-cost invariant violated: require p_0 < p_135 < p_90 < p_45, got %v", p))
	}
}

//*******************************************
// node / port / edge
//*******************************************

// Center is one grid cell: its integer coordinates, world-space
// position, closed flag, and its eight port children.
type Center struct {
	X, Y   int
	Geom   geo.Point
	Closed bool

	ports [8]*Port

	// portToCenter[d] is the sink edge between ports[d] and this center.
	portToCenter [8]*GridEdge
	// intraCell[d1][d2] is the bend edge between ports d1 and d2 of this
	// center (nil when d1==d2 or |d1-d2| is an adjacent-direction pair,
	// per I1/the construction rule that forbids sharp 45-degree turns).
	intraCell [8][8]*GridEdge
	// interCell[d] is the traversal edge reaching the mirrored port of
	// the neighbour in direction d, nil if that neighbour doesn't exist.
	interCell [8]*GridEdge
}

func (c *Center) Port(d Direction) *Port {
	return c.ports[d]
}

// Port is a direction-tagged satellite node of a center.
type Port struct {
	Owner *Center
	Dir   Direction
	Geom  geo.Point
}

// GridEdge is one edge of the grid: a sink (port-to-center), bend
// (intra-cell) or traversal (inter-cell) edge. RawCost is the
// modifiable cost; Closed is tracked separately and makes the edge
// impassable regardless of RawCost (I3/I4). Reserved lists the comb
// edges currently routed through this grid edge.
type GridEdge struct {
	Kind    EdgeKind
	RawCost float64
	Closed  bool
	Reserved map[string]combgraph.Edge
}

type EdgeKind byte

const (
	PortToCenter EdgeKind = iota
	IntraCellBend
	InterCell
)

// Cost returns the edge's current traversable cost, or +Inf if closed.
func (e *GridEdge) Cost() float64 {
	if e.Closed {
		return posInf
	}
	return e.RawCost
}

func (e *GridEdge) reserve(ce combgraph.Edge) {
	if e.Reserved == nil {
		e.Reserved = make(map[string]combgraph.Edge, 1)
	}
	e.Reserved[ce.ID()] = ce
}
func (e *GridEdge) unreserve(ce combgraph.Edge) {
	delete(e.Reserved, ce.ID())
}

const posInf = 1e308 // sentinel "infinite" cost; large enough to dominate any sum of finite penalties without risking overflow in +Inf arithmetic

//*******************************************
// grid graph (component B)
//*******************************************

// GridGraph is the octilinear grid: a W x H array of centers, each with
// eight ports, built once at construction and mutated only through the
// documented reversible/monotone operations afterwards.
type GridGraph struct {
	ID uuid.UUID

	bbox     geo.Bound
	cellSize float64
	spacer   float64
	pens     Penalties

	width, height int
	centers       []*Center // row-major, index = y*width+x

	settled Dict[combgraph.Node, *Center]
}

// NewGridGraph builds the full grid (centers, ports, intra- and
// inter-cell edges, initial traversal costs) over bbox, with width x
// height cells of size cellSize, spacer clamped to <= cellSize/2.
func NewGridGraph(bbox geo.Bound, width, height int, cellSize, spacer float64, pens Penalties) *GridGraph {
	pens.assertValid()
	if spacer > cellSize/2 {
		slog.Warn("spacer exceeds half the cell size, clamping", "spacer", spacer, "clamped", cellSize/2)
		spacer = cellSize / 2
	}

	g := &GridGraph{
		ID:       uuid.New(),
		bbox:     bbox,
		cellSize: cellSize,
		spacer:   spacer,
		pens:     pens,
		width:    width,
		height:   height,
		centers:  make([]*Center, width*height),
		settled:  NewDict[combgraph.Node, *Center](16),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.centers[g.index(x, y)] = g.buildCenter(x, y)
		}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.wireInterCellEdges(x, y)
		}
	}
	g.writeInitialCosts()

	slog.Info("built octilinear grid", "id", g.ID, "width", width, "height", height)
	return g
}

func (g *GridGraph) index(x, y int) int { return y*g.width + x }

func (g *GridGraph) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// buildCenter allocates one cell's center, its eight ports, their sink
// edges, and the 20 intra-cell bend edges (construction step 3).
func (g *GridGraph) buildCenter(x, y int) *Center {
	px := g.bbox.Min[0] + float64(x)*g.cellSize
	py := g.bbox.Min[1] + float64(y)*g.cellSize

	c := &Center{X: x, Y: y, Geom: geo.Point{px, py}}

	for d := Direction(0); d < 8; d++ {
		off := dirOffsets[d]
		port := &Port{
			Owner: c,
			Dir:   d,
			Geom:  geo.Point{px + float64(off[0])*g.spacer, py + float64(off[1])*g.spacer},
		}
		c.ports[d] = port
		c.portToCenter[d] = &GridEdge{Kind: PortToCenter, RawCost: posInf}
	}

	c0 := g.pens.P45 - g.pens.P135
	c135 := g.pens.P45
	c90 := g.pens.P45 - g.pens.P135 + g.pens.P90

	for d1 := Direction(0); d1 < 8; d1++ {
		for d2 := d1 + 1; d2 < 8; d2++ {
			dist := angularDist(d1, d2)
			if dist == 1 {
				continue // sharp 45-degree turn: no edge, per §3
			}
			var pen float64
			switch dist {
			case 4:
				pen = c0
			case 3:
				pen = c135
			case 2:
				pen = c90
			}
			e := &GridEdge{Kind: IntraCellBend, RawCost: pen}
			c.intraCell[d1][d2] = e
			c.intraCell[d2][d1] = e
		}
	}

	return c
}

// wireInterCellEdges adds the traversal edge from (x,y) in every
// direction to its neighbour's mirrored port, idempotently: calling
// this twice (once from each side) is a no-op the second time.
func (g *GridGraph) wireInterCellEdges(x, y int) {
	c := g.Node(x, y)
	if c == nil {
		return
	}
	for d := Direction(0); d < 8; d++ {
		if c.interCell[d] != nil {
			continue
		}
		n := g.Neighbour(x, y, d)
		if n == nil {
			continue
		}
		e := &GridEdge{Kind: InterCell}
		c.interCell[d] = e
		n.interCell[d.Opposite()] = e
	}
}

func (g *GridGraph) writeInitialCosts() {
	for _, c := range g.centers {
		for d := Direction(0); d < 8; d++ {
			e := c.interCell[d]
			if e == nil {
				continue
			}
			switch {
			case d.IsVertical():
				e.RawCost = g.pens.VerticalPen
			case d.IsHorizontal():
				e.RawCost = g.pens.HorizontalPen
			default:
				e.RawCost = g.pens.DiagonalPen
			}
		}
	}
}

//*******************************************
// accessors
//*******************************************

// Node returns the center at (x, y), or nil if out of bounds.
func (g *GridGraph) Node(x, y int) *Center {
	if !g.inBounds(x, y) {
		return nil
	}
	return g.centers[g.index(x, y)]
}

// Neighbour returns the center adjacent to (x, y) in direction d, or
// nil if that cell is outside the grid.
func (g *GridGraph) Neighbour(x, y int, d Direction) *Center {
	off := dirOffsets[d]
	return g.Node(x+off[0], y+off[1])
}

// InterCellEdge returns the traversal edge between centers a and b, if
// they are grid-adjacent, trying all eight mirrored port pairs.
func (g *GridGraph) InterCellEdge(a, b *Center) *GridEdge {
	for d := Direction(0); d < 8; d++ {
		if g.Neighbour(a.X, a.Y, d) == b {
			return a.interCell[d]
		}
	}
	return nil
}

// Heuristic returns an admissible lower bound on the grid-path cost
// between two cells (P3): minHops times the cheapest traversal cost,
// plus the cheapest possible bend-cost floor for the intermediate hops.
func (g *GridGraph) Heuristic(xa, ya, xb, yb int) float64 {
	if xa == xb && ya == yb {
		return 0
	}
	dx, dy := xb-xa, yb-ya
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	minHops := dx
	if dy > minHops {
		minHops = dy
	}

	minTraversal := g.pens.VerticalPen
	if g.pens.HorizontalPen < minTraversal {
		minTraversal = g.pens.HorizontalPen
	}
	if g.pens.DiagonalPen < minTraversal {
		minTraversal = g.pens.DiagonalPen
	}

	edgeCost := float64(minHops) * minTraversal
	hopCost := float64(minHops-1) * (g.pens.P45 - g.pens.P135)
	return edgeCost + hopCost
}

func (g *GridGraph) Width() int  { return g.width }
func (g *GridGraph) Height() int { return g.height }
func (g *GridGraph) Bounds() geo.Bound { return g.bbox }
