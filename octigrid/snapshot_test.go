package octigrid

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// cost snapshots round-trip through a file: a cost mutated on one grid
// and saved must come back unchanged on a freshly constructed grid of
// the same topology.
func TestCostSnapshotRoundTrip(t *testing.T) {
	g := newTestGrid(3, 3)
	a := g.Node(1, 1)
	a.interCell[E].RawCost = 7.5
	a.interCell[S].RawCost = 2.25

	file := filepath.Join(t.TempDir(), "snapshot.bin")
	g.SaveCostSnapshot(file)

	g2 := newTestGrid(3, 3)
	LoadCostSnapshot(g2, file)

	a2 := g2.Node(1, 1)
	assert.Equal(t, 7.5, a2.interCell[E].RawCost)
	assert.Equal(t, 2.25, a2.interCell[S].RawCost)
}
