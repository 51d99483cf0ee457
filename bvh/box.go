package bvh

import (
	"golang.org/x/exp/constraints"
)

// Scalar is the coordinate type of the partitioned bounding boxes.
type Scalar interface {
	constraints.Float
}

// The Box interface is implemented by pointers to axis-aligned bounding boxes
// that can be partitioned. B is the box value type; the partitioner stores
// and accumulates boxes by value and operates on them through *B.
type Box[S Scalar, B any] interface {
	*B

	// Reset the box to an empty state so that the next Insert call yields
	// the inserted box.
	Invalidate()

	// Grow the box so it also contains other.
	Insert(other *B)

	// Half of the box surface area. Empty boxes must report 0.
	HalfSurfaceArea() S

	// The box min/max coordinates along an axis.
	Bounds(axis int) (lo, hi S)

	// The number of spatial dimensions; constant for a box type.
	Dimension() int
}
