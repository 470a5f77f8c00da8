package lineorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S5: two parallel bundles a, b with K=2 and two shared lines, one
// junction n; the optimal solve must find the non-crossing assignment
// (dec=0) and keep both segments' line order consistent.
func TestILPSmallestCase(t *testing.T) {
	l1 := NewLine("l1", NewETG("etg-a", 0, true, false), NewETG("etg-b", 0, true, false))
	l2 := NewLine("l2", NewETG("etg-a", 1, true, false), NewETG("etg-b", 1, true, false))

	b := NewBuilder(1, 1, 1)
	a := b.AddSegment("a", 2, []Line{l1, l2}, true, true, "n", "m1")
	bb := b.AddSegment("b", 2, []Line{l1, l2}, true, true, "n", "m2")
	_ = a
	_ = bb

	g := b.Build()

	m := NewModel(g, nil)
	m.Build()
	require.NoError(t, m.Solve())
	defer m.Dispose()

	cfg, err := m.Extract()
	require.NoError(t, err)

	posA := cfg.Positions("etg-a", 0)
	posB := cfg.Positions("etg-a", 1)
	assert.NotEmpty(t, posA)
	assert.NotEmpty(t, posB)
	assert.NotEqual(t, posA, posB)

	// non-crossing with K=2: each line holds the same slot in a and b.
	vals := m.lp.Variables()
	for _, l := range []Line{l1, l2} {
		for p := 0; p < 2; p++ {
			inA := vals[m.colIndex[xKey(a, l, p)]] > 0.5
			inB := vals[m.colIndex[xKey(bb, l, p)]] > 0.5
			assert.Equal(t, inA, inB, "line %s slot %d", l.ID(), p)
		}
	}
}

// P8: every slot holds exactly one line and every line occupies
// exactly one slot in the solved model.
func TestSlotExclusiveLineUnique(t *testing.T) {
	l1 := NewLine("l1", NewETG("etg", 0, true, false))
	l2 := NewLine("l2", NewETG("etg", 1, true, false))
	l3 := NewLine("l3", NewETG("etg", 2, true, false))

	b := NewBuilder(1, 1, 1)
	b.AddSegment("s", 3, []Line{l1, l2, l3}, true, true, "n1", "n2")
	g := b.Build()

	m := NewModel(g, nil)
	m.Build()
	require.NoError(t, m.Solve())
	defer m.Dispose()

	vals := m.lp.Variables()
	seg := m.segments["s"]
	for p := 0; p < seg.Cardinality(); p++ {
		count := 0
		for _, l := range seg.Lines() {
			if vals[m.colIndex[xKey(seg, l, p)]] > 0.5 {
				count++
			}
		}
		assert.Equal(t, 1, count, "slot %d", p)
	}
	for _, l := range seg.Lines() {
		count := 0
		for p := 0; p < seg.Cardinality(); p++ {
			if vals[m.colIndex[xKey(seg, l, p)]] > 0.5 {
				count++
			}
		}
		assert.Equal(t, 1, count, "line %s", l.ID())
	}
}
