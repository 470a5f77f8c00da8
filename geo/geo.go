// Package geo is the thin geometry shim the grid and penalty engine are
// built against. Point/bbox arithmetic itself is delegated to orb, the
// published vector-geometry package the teacher's OSM/GTFS ingestion
// already depends on transitively; this package only adds the one
// primitive orb doesn't carry (bearing between two points).
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

type Point = orb.Point

type Bound = orb.Bound

func NewBound(min, max Point) Bound {
	return orb.Bound{Min: min, Max: max}
}

func Dist(a, b Point) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleBetween returns the angle in radians of the vector from a to b,
// measured counter-clockwise from the positive x-axis, in (-pi, pi].
func AngleBetween(a, b Point) float64 {
	return math.Atan2(b[1]-a[1], b[0]-a[0])
}
