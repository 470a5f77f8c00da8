package octigrid

import "math"

//*******************************************
// node cost vector (component A)
//*******************************************

// closedSentinel is the magnitude written into a NodeCost slot to mark
// "close this direction" rather than add to its cost. Any value <= -1
// is read back as the sentinel; the exact magnitude is preserved across
// apply/unapply so undo can tell a sentinel slot from an additive one.
const closedSentinel = -math.MaxFloat64

// NodeCost is a fixed 8-slot cost accumulator indexed by Direction.
// Slots either hold an additive penalty (> -1) or the closed sentinel
// (<= -1), never something in between: Add clamps callers away from the
// ambiguous zone so only the explicit Close path can write a sentinel.
type NodeCost [8]float64

// Get returns the value at direction d, panicking with
// InvalidDirectionError if d is out of range.
func (c NodeCost) Get(d Direction) float64 {
	if d < 0 || d > 7 {
		panic(&InvalidDirectionError{Direction: int(d)})
	}
	return c[d]
}

// Set writes v at direction d unconditionally, including sentinel
// values; used internally by penalty code that has already decided to
// close a direction.
func (c *NodeCost) Set(d Direction, v float64) {
	if d < 0 || d > 7 {
		panic(&InvalidDirectionError{Direction: int(d)})
	}
	c[d] = v
}

// Add adds v to the value at direction d, clamping the result so it
// can never fall into the closed-sentinel range by accident (Saturation
// in SPEC_FULL.md §7): only Close may write a value <= -1.
func (c *NodeCost) Add(d Direction, v float64) {
	if d < 0 || d > 7 {
		panic(&InvalidDirectionError{Direction: int(d)})
	}
	if c[d] <= -1 {
		// already closed; closing takes priority over any additive penalty
		return
	}
	nv := c[d] + v
	if nv <= -1 {
		nv = -0.999999
	}
	c[d] = nv
}

// Close marks direction d as closed (impassable).
func (c *NodeCost) Close(d Direction) {
	c.Set(d, closedSentinel)
}

// IsClosed reports whether the value at d is the closed sentinel.
func (c NodeCost) IsClosed(d Direction) bool {
	return c.Get(d) <= -1
}

// Negate returns a vector with every slot negated, preserving the
// closed-sentinel magnitude (used when constructing an inverse).
func (c NodeCost) Negate() NodeCost {
	var r NodeCost
	for d := Direction(0); d < 8; d++ {
		if c.IsClosed(d) {
			r[d] = c[d]
		} else {
			r[d] = -c[d]
		}
	}
	return r
}

// Plus returns the slot-wise sum of c and other. Summing two closed
// slots keeps the sentinel; summing a closed slot with anything else
// also keeps the sentinel, since closure always wins.
func (c NodeCost) Plus(other NodeCost) NodeCost {
	var r NodeCost
	for d := Direction(0); d < 8; d++ {
		if c.IsClosed(d) || other.IsClosed(d) {
			r[d] = closedSentinel
			continue
		}
		r[d] = c[d] + other[d]
	}
	return r
}
