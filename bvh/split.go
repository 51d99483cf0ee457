package bvh

// NoAxis is the axis reported by leaf decisions.
const NoAxis = -1

// Reason describes why a partition call produced its decision.
type Reason uint8

const (
	// The range is split at the reported pivot.
	SplitFound Reason = iota

	// The range holds no more items than the configured max leaf size.
	LeafBySize

	// Splitting the range is not cheaper than intersecting all its items.
	LeafByCost

	// The range bbox has no usable surface area (all items coincide or are
	// collinear) or the split cost is not a finite number.
	LeafByDegenerateBox

	numReasons
)

// Get a human readable description of a reason.
func (r Reason) String() string {
	switch r {
	case SplitFound:
		return "split"
	case LeafBySize:
		return "leaf (size)"
	case LeafByCost:
		return "leaf (cost)"
	case LeafByDegenerateBox:
		return "leaf (degenerate bbox)"
	}
	return "unknown"
}

// Split is the outcome of partitioning a range [begin, end).
type Split[S Scalar] struct {
	// The first item of the right child; equal to end for leaf decisions.
	Pivot int

	// The axis the range was ordered by; NoAxis for leaf decisions.
	Axis int

	Reason Reason

	// The SAH cost of making the range a leaf and the cost of the best
	// split found. Both are zero for LeafBySize decisions and SplitCost is
	// zero for LeafByDegenerateBox decisions.
	LeafCost  S
	SplitCost S
}

// Returns true if the range should become a leaf.
func (s Split[S]) IsLeaf() bool {
	return s.Reason != SplitFound
}
