package lineorder

import (
	"errors"
	"fmt"

	"github.com/draffensperger/golp"
)

// ErrUnsolvable marks an ILP that the backend could not solve to
// (sub)optimality: infeasible model or solver error. Fatal for the
// component (§7 "Unsolvable").
var ErrUnsolvable = errors.New("lineorder: ilp solve did not return a feasible solution")

// Model is one solved-per-connected-component ILP instance. Its
// lifecycle is build -> update (implicit, via Build) -> solve ->
// extract -> dispose, mapped directly onto golp's
// NewLP/AddConstraint/Solve/Variables/Delete (§4.4A).
type Model struct {
	g      Graph
	oracle CrossesOracle

	segments map[string]Segment
	colIndex map[string]int
	objCoef  []float64
	rows     []row

	lp *golp.LP
}

type row struct {
	coef map[int]float64
	typ  golp.ConstraintType
	rhs  float64
}

// NewModel creates an unsolved model over g. If oracle is nil,
// DefaultCrosses is used.
func NewModel(g Graph, oracle CrossesOracle) *Model {
	if oracle == nil {
		oracle = DefaultCrosses{}
	}
	return &Model{
		g:        g,
		oracle:   oracle,
		segments: make(map[string]Segment),
		colIndex: make(map[string]int),
	}
}

func (m *Model) col(key string, objCoef float64) int {
	if c, ok := m.colIndex[key]; ok {
		return c
	}
	c := len(m.objCoef)
	m.colIndex[key] = c
	m.objCoef = append(m.objCoef, objCoef)
	return c
}

func (m *Model) addRow(coef map[int]float64, typ golp.ConstraintType, rhs float64) {
	m.rows = append(m.rows, row{coef: coef, typ: typ, rhs: rhs})
}

//*******************************************
// build
//*******************************************

func xKey(s Segment, l Line, pos int) string {
	return fmt.Sprintf("x|%s|%s|%d", s.ID(), l.ID(), pos)
}

// Build translates g into decision/assignment variables and the
// slot-exclusive, line-unique and crossing-indicator constraints
// (§4.4). It must be called exactly once, before Solve.
func (m *Model) Build() {
	for _, n := range m.g.Nodes() {
		for _, s := range n.Segments() {
			m.segments[s.ID()] = s
		}
	}

	for _, s := range m.segments {
		m.buildAssignmentVars(s)
	}
	for _, n := range m.g.Nodes() {
		for _, a := range n.Segments() {
			for _, lp := range m.g.LinePairs(a) {
				m.buildSameSegmentCrossings(n, a, lp)
				m.buildDiffSegmentCrossings(n, a, lp)
			}
		}
	}
}

// buildAssignmentVars creates x(s,l,p) for every line/position pair of
// s and the two hard constraints over them.
func (m *Model) buildAssignmentVars(s Segment) {
	k := s.Cardinality()
	lines := s.Lines()

	slotCols := make([][]int, k)
	lineCols := make(map[string][]int, len(lines))

	for _, l := range lines {
		for p := 0; p < k; p++ {
			col := m.col(xKey(s, l, p), 0)
			slotCols[p] = append(slotCols[p], col)
			lineCols[l.ID()] = append(lineCols[l.ID()], col)
		}
	}

	// slot-exclusive: every slot holds exactly one line.
	for p := 0; p < k; p++ {
		coef := make(map[int]float64, len(slotCols[p]))
		for _, c := range slotCols[p] {
			coef[c] = 1
		}
		m.addRow(coef, golp.EQ, 1)
	}
	// line-unique: every line occupies exactly one slot.
	for _, cols := range lineCols {
		coef := make(map[int]float64, len(cols))
		for _, c := range cols {
			coef[c] = 1
		}
		m.addRow(coef, golp.EQ, 1)
	}
}

// buildSameSegmentCrossings adds a dec variable and constraint for
// every position-combination of lp's two lines between a and each
// partner segment b that would cross (§4.4 "same-segment crossing
// indicator").
func (m *Model) buildSameSegmentCrossings(n Node, a Segment, lp LinePair) {
	weight := float64(m.g.SameSegPenalty(n) * len(lp.L1.Relatives()) * len(lp.L2.Relatives()))

	for _, b := range m.g.EdgePartners(n, a, lp) {
		ka, kb := a.Cardinality(), b.Cardinality()
		for pA := 0; pA < ka; pA++ {
			for pAPrime := 0; pAPrime < kb; pAPrime++ {
				for pB := 0; pB < ka; pB++ {
					if pB == pA {
						continue
					}
					for pBPrime := 0; pBPrime < kb; pBPrime++ {
						if pBPrime == pAPrime {
							continue
						}
						if !m.oracle.SameSegment(a, b, pA, pAPrime, pB, pBPrime) {
							continue
						}
						key := fmt.Sprintf("dsame|%s|%s|%s|%s|%s|%d|%d|%d|%d",
							n.ID(), a.ID(), b.ID(), lp.L1.ID(), lp.L2.ID(), pA, pAPrime, pB, pBPrime)
						dec := m.col(key, weight)

						coef := map[int]float64{
							m.col(xKey(a, lp.L1, pA), 0):       1,
							m.col(xKey(b, lp.L1, pAPrime), 0):  1,
							m.col(xKey(a, lp.L2, pB), 0):       1,
							m.col(xKey(b, lp.L2, pBPrime), 0):  1,
							dec: -1,
						}
						m.addRow(coef, golp.LE, 3)
					}
				}
			}
		}
	}
}

// buildDiffSegmentCrossings adds a dec variable and constraint for
// every position pair of lp's two lines within a that, diverging into
// partner segments b and c, would cross (§4.4 "different-segment
// crossing indicator").
func (m *Model) buildDiffSegmentCrossings(n Node, a Segment, lp LinePair) {
	weight := float64(m.g.DiffSegPenalty(n) * len(lp.L1.Relatives()) * len(lp.L2.Relatives()))

	for _, bc := range m.g.EdgePartnerPairs(n, a, lp) {
		b, c := bc[0], bc[1]
		ka := a.Cardinality()
		for pA := 0; pA < ka; pA++ {
			for pB := 0; pB < ka; pB++ {
				if pB == pA {
					continue
				}
				if !m.oracle.DiffSegment(n, a, b, c, pA, pB) {
					continue
				}
				key := fmt.Sprintf("ddiff|%s|%s|%s|%s|%s|%s|%d|%d",
					n.ID(), a.ID(), b.ID(), c.ID(), lp.L1.ID(), lp.L2.ID(), pA, pB)
				dec := m.col(key, weight)

				coef := map[int]float64{
					m.col(xKey(a, lp.L1, pA), 0): 1,
					m.col(xKey(a, lp.L2, pB), 0): 1,
					dec: -1,
				}
				m.addRow(coef, golp.LE, 1)
			}
		}
	}
}

//*******************************************
// solve
//*******************************************

// Solve hands the built model to the lp_solve backend, minimizing the
// weighted sum of the crossing indicator variables.
func (m *Model) Solve() error {
	cols := len(m.objCoef)
	m.lp = golp.NewLP(0, cols)

	m.lp.SetObjFn(m.objCoef)
	m.lp.SetMinim()
	for c := 0; c < cols; c++ {
		m.lp.SetBinary(c, true)
	}
	for _, r := range m.rows {
		dense := make([]float64, cols)
		for c, v := range r.coef {
			dense[c] = v
		}
		m.lp.AddConstraint(dense, r.typ, r.rhs)
	}

	ret := m.lp.Solve()
	if ret != golp.OPTIMAL && ret != golp.SUBOPTIMAL {
		return ErrUnsolvable
	}
	return nil
}

// Dispose releases the native lp_solve instance backing the model.
func (m *Model) Dispose() {
	if m.lp != nil {
		m.lp.Delete()
		m.lp = nil
	}
}

//*******************************************
// extract
//*******************************************

// Extract reads the solved model's variable assignment and produces a
// HierarOrderCfg (§4.4 "Solution extraction"). Solve must have
// returned nil first.
func (m *Model) Extract() (*HierarOrderCfg, error) {
	vals := m.lp.Variables()
	cfg := newHierarOrderCfg()

	for _, s := range m.segments {
		k := s.Cardinality()
		for p := 0; p < k; p++ {
			line, ok := m.lineAtSlot(s, p, vals)
			if !ok {
				return nil, fmt.Errorf("lineorder: no line assigned to %s slot %d", s.ID(), p)
			}
			front := s.Dir() == s.FrontDir()
			for _, rel := range line.Relatives() {
				cfg.insert(rel.ID(), rel.Order(), line.ID(), front)
			}
		}
	}
	return cfg, nil
}

func (m *Model) lineAtSlot(s Segment, p int, vals []float64) (Line, bool) {
	var found Line
	count := 0
	for _, l := range s.Lines() {
		col, ok := m.colIndex[xKey(s, l, p)]
		if !ok {
			continue
		}
		if vals[col] > 0.5 {
			found = l
			count++
		}
	}
	return found, count == 1
}
