package bvh

import (
	"golang.org/x/exp/slices"
)

// AxisPredicate orders item indices by the position of their bounding boxes
// along a single axis. Items are compared by min+max along the axis, which
// orders them by their box centroid. Ties are broken by item index so the
// resulting order does not depend on the stability of the sort algorithm.
type AxisPredicate[S Scalar, B any, PB Box[S, B]] struct {
	boxes []B
	axis  int
}

// Create a predicate that orders items indexing into boxes along axis.
func NewAxisPredicate[S Scalar, B any, PB Box[S, B]](boxes []B, axis int) AxisPredicate[S, B, PB] {
	return AxisPredicate[S, B, PB]{boxes: boxes, axis: axis}
}

// Compare two item indices. It returns a negative number if item a sorts
// before b, a positive number if it sorts after b and 0 only if a == b.
func (p AxisPredicate[S, B, PB]) Compare(a, b int) int {
	ka, kb := p.key(a), p.key(b)
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Returns true if item a sorts before item b.
func (p AxisPredicate[S, B, PB]) Less(a, b int) bool {
	return p.Compare(a, b) < 0
}

// Sort a list of item indices in place.
func (p AxisPredicate[S, B, PB]) Sort(items []int) {
	slices.SortFunc(items, p.Compare)
}

func (p AxisPredicate[S, B, PB]) key(item int) S {
	lo, hi := PB(&p.boxes[item]).Bounds(p.axis)
	return lo + hi
}
