package octigrid

import "github.com/transitgrid/octiloom/util"

//*******************************************
// grid cost snapshot persistence
//*******************************************

// SaveCostSnapshot writes every inter-cell edge's current raw cost to
// file as a flat binary array, ordered by center index and then
// direction (an edge at the grid boundary, which has none, is recorded
// as -1). Lets a caller persist a routed grid's accumulated edge costs
// between runs instead of re-deriving them from scratch.
func (g *GridGraph) SaveCostSnapshot(file string) {
	costs := util.NewArray[float64](len(g.centers) * 8)
	for i, c := range g.centers {
		for d := Direction(0); d < 8; d++ {
			idx := int32(i*8 + int(d))
			if e := c.interCell[d]; e != nil {
				costs.Set(idx, e.RawCost)
			} else {
				costs.Set(idx, -1)
			}
		}
	}
	util.WriteArrayToFile(costs, file)
}

// LoadCostSnapshot restores edge raw costs previously written by
// SaveCostSnapshot onto g. g's topology (width, height, cell size) must
// match the grid the snapshot was taken from; centers are visited in
// the same order SaveCostSnapshot wrote them in.
func LoadCostSnapshot(g *GridGraph, file string) {
	costs := util.ReadArrayFromFile[float64](file)
	for i, c := range g.centers {
		for d := Direction(0); d < 8; d++ {
			idx := int32(i*8 + int(d))
			v := costs.Get(idx)
			if e := c.interCell[d]; e != nil && v >= 0 {
				e.RawCost = v
			}
		}
	}
}
