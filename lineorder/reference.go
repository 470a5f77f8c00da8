package lineorder

//*******************************************
// reference in-memory bundled-graph implementation
//*******************************************

// The reference implementation below is used by this module's own
// tests and demo command; a real renderer supplies its own Graph
// backed by the actual routed comb graph (§1 "out of scope external
// collaborators").

type refETG struct {
	id     string
	order  int
	dir    bool
	wasCut bool
}

func (e *refETG) ID() string   { return e.id }
func (e *refETG) Order() int   { return e.order }
func (e *refETG) Dir() bool    { return e.dir }
func (e *refETG) WasCut() bool { return e.wasCut }

// NewETG creates a reference ETG reference for a Line's Relatives list.
func NewETG(id string, order int, dir, wasCut bool) ETG {
	return &refETG{id: id, order: order, dir: dir, wasCut: wasCut}
}

type refLine struct {
	id        string
	relatives []ETG
}

func (l *refLine) ID() string          { return l.id }
func (l *refLine) Relatives() []ETG    { return l.relatives }

// NewLine creates a reference Line with the given collapsed relatives.
func NewLine(id string, relatives ...ETG) Line {
	return &refLine{id: id, relatives: relatives}
}

type refSegment struct {
	id       string
	card     int
	lines    []Line
	dir      bool
	frontDir bool
}

func (s *refSegment) ID() string          { return s.id }
func (s *refSegment) Cardinality() int    { return s.card }
func (s *refSegment) Lines() []Line       { return s.lines }
func (s *refSegment) Dir() bool           { return s.dir }
func (s *refSegment) FrontDir() bool      { return s.frontDir }
func (s *refSegment) String() string      { return s.id }

type refNode struct {
	id       string
	segments []Segment
}

func (n *refNode) ID() string            { return n.id }
func (n *refNode) Segments() []Segment   { return n.segments }

// Builder assembles a small reference bundled graph: nodes (junctions)
// each holding an adjacency list of segments, segments each holding an
// ordered line list. LinePairs/EdgePartners/EdgePartnerPairs are
// derived purely from line membership, which is sufficient for the
// common case of two or three segments meeting at a junction.
type Builder struct {
	nodes          map[string]*refNode
	segments       map[string]*refSegment
	sameSegPenalty int
	diffSegPenalty int
	splitPenalty   int
}

func NewBuilder(sameSegPenalty, diffSegPenalty, splittingPenalty int) *Builder {
	return &Builder{
		nodes:          make(map[string]*refNode),
		segments:       make(map[string]*refSegment),
		sameSegPenalty: sameSegPenalty,
		diffSegPenalty: diffSegPenalty,
		splitPenalty:   splittingPenalty,
	}
}

func (b *Builder) node(id string) *refNode {
	n, ok := b.nodes[id]
	if !ok {
		n = &refNode{id: id}
		b.nodes[id] = n
	}
	return n
}

// AddSegment creates a segment of cardinality k carrying lines, dir and
// frontDir flags (§4.4 extraction front/back rule), incident to the two
// named junctions.
func (b *Builder) AddSegment(id string, k int, lines []Line, dir, frontDir bool, nodeA, nodeB string) Segment {
	s := &refSegment{id: id, card: k, lines: lines, dir: dir, frontDir: frontDir}
	b.segments[id] = s
	for _, nid := range [2]string{nodeA, nodeB} {
		n := b.node(nid)
		n.segments = append(n.segments, s)
	}
	return s
}

func (b *Builder) Build() Graph {
	return &refGraph{b: b}
}

type refGraph struct{ b *Builder }

func (g *refGraph) Nodes() []Node {
	out := make([]Node, 0, len(g.b.nodes))
	for _, n := range g.b.nodes {
		out = append(out, n)
	}
	return out
}

// LinePairs returns every unordered pair of distinct lines s carries
// that also appears together in some other segment incident to a
// shared junction.
func (g *refGraph) LinePairs(s Segment) []LinePair {
	lines := s.Lines()
	var pairs []LinePair
	for i := 0; i < len(lines); i++ {
		for j := i + 1; j < len(lines); j++ {
			if g.sharedWithNeighbour(s, lines[i], lines[j]) {
				pairs = append(pairs, LinePair{L1: lines[i], L2: lines[j]})
			}
		}
	}
	return pairs
}

func (g *refGraph) sharedWithNeighbour(s Segment, l1, l2 Line) bool {
	for _, n := range g.b.nodes {
		if !containsSegment(n.segments, s) {
			continue
		}
		for _, other := range n.segments {
			if other == s {
				continue
			}
			if hasLine(other, l1) && hasLine(other, l2) {
				return true
			}
		}
	}
	return false
}

func (g *refGraph) EdgePartners(n Node, a Segment, lp LinePair) []Segment {
	var out []Segment
	for _, s := range n.Segments() {
		if s == a {
			continue
		}
		if hasLine(s, lp.L1) && hasLine(s, lp.L2) {
			out = append(out, s)
		}
	}
	return out
}

func (g *refGraph) EdgePartnerPairs(n Node, a Segment, lp LinePair) [][2]Segment {
	var single []Segment
	for _, s := range n.Segments() {
		if s == a {
			continue
		}
		if hasLine(s, lp.L1) != hasLine(s, lp.L2) {
			single = append(single, s)
		}
	}
	var out [][2]Segment
	for i := 0; i < len(single); i++ {
		for j := i + 1; j < len(single); j++ {
			if hasLine(single[i], lp.L1) && hasLine(single[j], lp.L2) {
				out = append(out, [2]Segment{single[i], single[j]})
			} else if hasLine(single[j], lp.L1) && hasLine(single[i], lp.L2) {
				out = append(out, [2]Segment{single[j], single[i]})
			}
		}
	}
	return out
}

func (g *refGraph) SameSegPenalty(n Node) int   { return g.b.sameSegPenalty }
func (g *refGraph) DiffSegPenalty(n Node) int   { return g.b.diffSegPenalty }
func (g *refGraph) SplittingPenalty(n Node) int { return g.b.splitPenalty }

func containsSegment(segs []Segment, s Segment) bool {
	for _, s2 := range segs {
		if s2 == s {
			return true
		}
	}
	return false
}

func hasLine(s Segment, l Line) bool {
	for _, l2 := range s.Lines() {
		if l2 == l {
			return true
		}
	}
	return false
}
