// Package router is the reference outer router the core delegates its
// search-control policy to (SPEC_FULL.md §1, §4.2A): it is sufficient
// to drive one comb edge end to end in this module's own tests and
// demo command, but does not implement retry/backoff policy beyond a
// single bounded radius-growth loop.
package router

import (
	"errors"

	"github.com/transitgrid/octiloom/combgraph"
	"github.com/transitgrid/octiloom/octigrid"
	. "github.com/transitgrid/octiloom/util"
	"golang.org/x/exp/slog"
)

// ErrNoCandidate is returned when either endpoint of a comb edge has no
// open grid node within the configured search radius.
var ErrNoCandidate = errors.New("router: no open grid candidate within search radius")

// ErrNoPath is returned when a candidate pair exists but no open path
// connects them.
var ErrNoPath = errors.New("router: no open path between source and target")

// Options controls a single RouteComb attempt.
type Options struct {
	// MaxDis is the initial candidate search radius.
	MaxDis float64
	// MaxRetries bounds the radius-growth loop; each retry doubles
	// MaxDis. RouteComb gives up and returns ErrNoCandidate once
	// exhausted. A failed path search is not retried: it returns ErrNoPath.
	MaxRetries int
	// SinkCost is the cost used to open the source/target centers as
	// routing endpoints for the duration of the search (§4.2 "sink
	// adapter").
	SinkCost float64
}

// Result is the outcome of a successful RouteComb call: the sequence
// of distinct grid centers the path passes through, in order.
type Result struct {
	Path []*octigrid.Center
}

// RouteComb embeds comb edge e (running from u to its other endpoint)
// into g: it picks a source/target grid node via g's candidate query,
// applies (C)'s penalty vectors at both ends, runs a Dijkstra/A* search
// over the grid's open port graph, reserves the winning path and calls
// BalanceEdge on each consecutive pair of centers. Every applied
// penalty vector is unwound before returning, on both the success and
// the failure path (§7 rollback policy).
func RouteComb(g *octigrid.GridGraph, u combgraph.Node, e combgraph.Edge, opts Options) (Result, error) {
	v := e.OtherEnd(u)

	maxDis := opts.MaxDis
	var src, tgt *octigrid.Center
	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		src = g.GridNodeFrom(u, maxDis)
		tgt = g.GridNodeFrom(v, maxDis)
		if src != nil && tgt != nil {
			break
		}
		maxDis *= 2
	}
	if src == nil || tgt == nil {
		return Result{}, ErrNoCandidate
	}

	// A settled endpoint was closed by BalanceEdge when an earlier comb
	// edge was committed there. Reopen it for this search (OpenNode keeps
	// edges reserved by earlier comb edges closed, I4) and close it again
	// if the search fails.
	var reopened []*octigrid.Center
	for _, c := range [2]*octigrid.Center{src, tgt} {
		if c.Closed {
			g.OpenNode(c)
			reopened = append(reopened, c)
		}
	}

	// LIFO unwind stack of applied penalty inverses, per §4.3.6/§7.
	type undo struct {
		n   *octigrid.Center
		inv octigrid.NodeCost
	}
	var stack []undo
	rollback := func() {
		for i := len(stack) - 1; i >= 0; i-- {
			g.Unapply(stack[i].n, stack[i].inv)
		}
	}

	g.OpenNodeSink(src, opts.SinkCost)
	g.OpenNodeSink(tgt, opts.SinkCost)
	defer g.CloseNodeSink(src)
	defer g.CloseNodeSink(tgt)

	srcPen := g.PenaltyVector(u, e, src)
	inv := g.Apply(src, srcPen)
	stack = append(stack, undo{src, inv})

	tgtPen := g.PenaltyVector(v, e, tgt)
	inv = g.Apply(tgt, tgtPen)
	stack = append(stack, undo{tgt, inv})

	path, err := shortestPath(g, src, tgt)
	if err != nil {
		rollback()
		for _, c := range reopened {
			g.CloseNode(c)
		}
		return Result{}, err
	}

	if !g.IsSettled(u) {
		g.Settle(u, src)
	}
	if !g.IsSettled(v) {
		g.Settle(v, tgt)
	}

	for i := 0; i < len(path)-1; i++ {
		edge := g.InterCellEdge(path[i], path[i+1])
		if edge != nil {
			edge.Reserve(e)
		}
	}
	for i := 0; i < len(path)-1; i++ {
		g.BalanceEdge(path[i], path[i+1])
	}

	rollback()

	slog.Info("routed comb edge", "edge", e.ID(), "hops", len(path)-1)
	return Result{Path: path}, nil
}

//*******************************************
// port-level shortest path
//*******************************************

type pqItem struct {
	port *octigrid.Port
	dist float64
}

// shortestPath runs a Dijkstra search (with the admissible grid
// heuristic folded into the priority as a tie-breaking bias, per
// SPEC_FULL.md §4.2A) over the port graph from every port of src to any
// port of tgt, following the teacher's PriorityQueue-based loop idiom
// (algorithm/range_dijkstra.go). Returns the sequence of distinct
// centers visited, src and tgt included.
func shortestPath(g *octigrid.GridGraph, src, tgt *octigrid.Center) ([]*octigrid.Center, error) {
	dist := NewDict[*octigrid.Port, float64](64)
	prev := NewDict[*octigrid.Port, *octigrid.Port](64)
	visited := NewDict[*octigrid.Port, bool](64)

	pq := NewPriorityQueue[*octigrid.Port, float64](64)

	for d := octigrid.Direction(0); d < 8; d++ {
		p := src.Port(d)
		sink := src.SinkEdge(d)
		c := sink.Cost()
		if c >= 1e300 {
			continue
		}
		dist.Set(p, c)
		pq.Enqueue(p, c+g.Heuristic(src.X, src.Y, tgt.X, tgt.Y))
	}

	var goal *octigrid.Port
	for {
		p, ok := pq.Dequeue()
		if !ok {
			break
		}
		if visited.ContainsKey(p) {
			continue
		}
		visited.Set(p, true)

		if p.Owner == tgt {
			sink := tgt.SinkEdge(p.Dir)
			c := sink.Cost()
			if c < 1e300 {
				goal = p
				break
			}
		}

		d0 := dist.Get(p)
		for _, step := range g.Steps(p) {
			ec := step.Edge.Cost()
			if ec >= 1e300 {
				continue
			}
			nd := d0 + ec
			if old, ok2 := dist.Get(step.To), dist.ContainsKey(step.To); !ok2 || nd < old {
				dist.Set(step.To, nd)
				prev.Set(step.To, p)
				pq.Enqueue(step.To, nd+g.Heuristic(step.To.Owner.X, step.To.Owner.Y, tgt.X, tgt.Y))
			}
		}
	}

	if goal == nil {
		return nil, ErrNoPath
	}

	var ports []*octigrid.Port
	for p := goal; p != nil; {
		ports = append(ports, p)
		var ok bool
		p, ok = prev.Get(p), prev.ContainsKey(p)
		if !ok {
			break
		}
	}
	// reverse into forward order
	for i, j := 0, len(ports)-1; i < j; i, j = i+1, j-1 {
		ports[i], ports[j] = ports[j], ports[i]
	}

	centers := make([]*octigrid.Center, 0, len(ports))
	for _, p := range ports {
		if len(centers) == 0 || centers[len(centers)-1] != p.Owner {
			centers = append(centers, p.Owner)
		}
	}
	return centers, nil
}
