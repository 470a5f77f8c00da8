package lineorder

// CrossesOracle decides whether a particular slot assignment makes two
// lines cross at a junction (§4.4 "Crosses predicate"). It is treated
// as an oracle by Model: same-segment crossings are geometric between
// two bundles sharing both endpoints at n, different-segment crossings
// are between a bundle and two of its neighbours that the two lines
// diverge into.
type CrossesOracle interface {
	// SameSegment reports whether assigning l1 to (posA, posB) and l2
	// to (otherA, otherB) in segments a and b (both incident to the
	// same two junctions) makes their segments between a and b cross.
	SameSegment(a, b Segment, posA, posB, otherA, otherB int) bool

	// DiffSegment reports whether, at junction n, assigning l1 to posA
	// and l2 to posB within segment a, where l1 continues into b and
	// l2 continues into c, makes the two emerging segments cross.
	DiffSegment(n Node, a, b, c Segment, posA, posB int) bool
}

// DefaultCrosses is the reference oracle for the common case: two
// segments meeting at a junction with no richer geometry than the
// lines' own slot order. Callers with access to real junction geometry
// (actual emerging angles, bend geometry) should supply their own
// oracle instead; this one only reasons from slot positions.
type DefaultCrosses struct{}

// SameSegment treats a and b as parallel "rungs" of a ladder diagram:
// ell1 and ell2 cross between a and b iff their relative order flips
// from one end to the other.
func (DefaultCrosses) SameSegment(a, b Segment, posA, posB, otherA, otherB int) bool {
	return (posA < otherA) != (posB < otherB)
}

// DiffSegment treats the order EdgePartnerPairs returned (b before c)
// as the intended angular order of the two target segments around n:
// a crossing occurs when the slot order at a disagrees with that
// target order.
func (DefaultCrosses) DiffSegment(n Node, a, b, c Segment, posA, posB int) bool {
	return posA >= posB
}
