package bvh

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned when a partitioner is created with an
// unusable configuration.
var ErrInvalidConfig = errors.New("bvh: invalid partitioner config")

// Config defines the partitioner cost model. Both costs are relative weights.
type Config[S Scalar] struct {
	// Ranges with at most this many items are never split.
	MaxLeafSize int

	// The cost of traversing an interior node.
	InteriorTraversalCost S

	// The cost of intersecting a single item.
	IntersectionCost S
}

// Get a config with unit traversal and intersection costs.
func DefaultConfig[S Scalar](maxLeafSize int) Config[S] {
	return Config[S]{
		MaxLeafSize:           maxLeafSize,
		InteriorTraversalCost: 1,
		IntersectionCost:      1,
	}
}

// Validate the config.
func (c Config[S]) Validate() error {
	if c.MaxLeafSize < 1 {
		return fmt.Errorf("%w: max leaf size must be at least 1; got %d", ErrInvalidConfig, c.MaxLeafSize)
	}
	if !isFinite(c.InteriorTraversalCost) || c.InteriorTraversalCost <= 0 {
		return fmt.Errorf("%w: interior traversal cost must be a positive number; got %v", ErrInvalidConfig, c.InteriorTraversalCost)
	}
	if !isFinite(c.IntersectionCost) || c.IntersectionCost <= 0 {
		return fmt.Errorf("%w: intersection cost must be a positive number; got %v", ErrInvalidConfig, c.IntersectionCost)
	}
	return nil
}

// SAHPartitioner splits ranges of items using the surface area heuristic.
//
// The partitioner owns a permutation of the item indices. Partition calls
// reorder the indices inside the range they are given and never touch the
// bounding boxes themselves, which are supplied by the caller on every call.
//
// Partition and PartitionWith calls on overlapping ranges must not run
// concurrently. Partition also uses a scratch buffer owned by the
// partitioner and must never be called concurrently; concurrent callers
// working on disjoint ranges should use PartitionWith with a Scratch each.
type SAHPartitioner[S Scalar, B any, PB Box[S, B]] struct {
	cfg Config[S]
	dim int

	indices     []int
	initialized bool

	scratch Scratch[S]
}

// Create a new partitioner.
func NewSAHPartitioner[S Scalar, B any, PB Box[S, B]](cfg Config[S]) (*SAHPartitioner[S, B, PB], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &SAHPartitioner[S, B, PB]{
		cfg: cfg,
		dim: PB(new(B)).Dimension(),
	}, nil
}

// Config returns the partitioner cost model.
func (p *SAHPartitioner[S, B, PB]) Config() Config[S] {
	return p.cfg
}

// Initialize the partitioner for size items. The item ordering is reset to
// the identity permutation.
func (p *SAHPartitioner[S, B, PB]) Initialize(size int) {
	if size < 0 {
		panic(fmt.Sprintf("bvh: cannot initialize partitioner with %d items", size))
	}

	if cap(p.indices) >= size {
		p.indices = p.indices[:size]
	} else {
		p.indices = make([]int, size)
	}
	for i := range p.indices {
		p.indices[i] = i
	}
	p.initialized = true
}

// Compute the union of the bounding boxes of the items in [begin, end).
// An empty range yields an invalidated box.
func (p *SAHPartitioner[S, B, PB]) ComputeBBox(boxes []B, begin, end int) B {
	p.checkBounds(begin, end)

	var bbox B
	PB(&bbox).Invalidate()
	for _, item := range p.indices[begin:end] {
		PB(&bbox).Insert(&boxes[item])
	}
	return bbox
}

// Partition the items in [begin, end) using the partitioner scratch buffer.
// See PartitionWith for details.
func (p *SAHPartitioner[S, B, PB]) Partition(boxes []B, begin, end int, bbox *B) Split[S] {
	return p.PartitionWith(&p.scratch, boxes, begin, end, bbox)
}

// Partition the items in [begin, end) into two sets. The bbox argument must
// be the union of the item boxes in the range as returned by ComputeBBox.
//
// The range must contain at least two items; violating this is a programming
// error and causes a panic.
//
// If the returned split is a leaf, its Pivot equals end and the range
// ordering is unspecified. Otherwise the items in [begin, Pivot) and
// [Pivot, end) form the two children and the range is ordered along Axis.
func (p *SAHPartitioner[S, B, PB]) PartitionWith(scratch *Scratch[S], boxes []B, begin, end int, bbox *B) Split[S] {
	p.checkBounds(begin, end)

	count := end - begin
	if count < 2 {
		panic(fmt.Sprintf("bvh: cannot partition range [%d, %d) with less than 2 items", begin, end))
	}

	// Don't split ranges that are small enough to become leafs.
	if count <= p.cfg.MaxLeafSize {
		return Split[S]{Pivot: end, Axis: NoAxis, Reason: LeafBySize}
	}

	// Without a usable bbox area the split cost cannot be normalized.
	leafCost := S(count) * p.cfg.IntersectionCost
	area := PB(bbox).HalfSurfaceArea()
	if !isFinite(area) || area <= 0 {
		return Split[S]{Pivot: end, Axis: NoAxis, Reason: LeafByDegenerateBox, LeafCost: leafCost}
	}

	leftAreas := scratch.ensure(count - 1)
	items := p.indices[begin:end]

	bestCost := S(math.Inf(1))
	bestAxis := NoAxis
	bestPivot := 0

	var acc B
	for axis := 0; axis < p.dim; axis++ {
		NewAxisPredicate[S, B, PB](boxes, axis).Sort(items)

		// Left-to-right sweep
		PB(&acc).Invalidate()
		for i := 0; i < count-1; i++ {
			PB(&acc).Insert(&boxes[items[i]])
			leftAreas[i] = PB(&acc).HalfSurfaceArea()
		}

		// Right-to-left sweep; the pivot i leaves i items on the left.
		PB(&acc).Invalidate()
		for i := count - 1; i > 0; i-- {
			PB(&acc).Insert(&boxes[items[i]])

			leftCost := leftAreas[i-1] * S(i)
			rightCost := PB(&acc).HalfSurfaceArea() * S(count-i)
			if splitCost := leftCost + rightCost; splitCost < bestCost {
				bestCost = splitCost
				bestAxis = axis
				bestPivot = i
			}
		}
	}

	splitCost := p.cfg.InteriorTraversalCost + bestCost/area*p.cfg.IntersectionCost
	if bestAxis == NoAxis || !isFinite(splitCost) {
		return Split[S]{Pivot: end, Axis: NoAxis, Reason: LeafByDegenerateBox, LeafCost: leafCost}
	}

	if leafCost <= splitCost {
		return Split[S]{Pivot: end, Axis: NoAxis, Reason: LeafByCost, LeafCost: leafCost, SplitCost: splitCost}
	}

	// The range is already ordered by the last scanned axis.
	if bestAxis != p.dim-1 {
		NewAxisPredicate[S, B, PB](boxes, bestAxis).Sort(items)
	}

	return Split[S]{
		Pivot:     begin + bestPivot,
		Axis:      bestAxis,
		Reason:    SplitFound,
		LeafCost:  leafCost,
		SplitCost: splitCost,
	}
}

// ItemOrdering returns the current item permutation. The returned slice is
// owned by the partitioner and must not be modified.
func (p *SAHPartitioner[S, B, PB]) ItemOrdering() []int {
	return p.indices
}

func (p *SAHPartitioner[S, B, PB]) checkBounds(begin, end int) {
	if !p.initialized {
		panic("bvh: partitioner used before Initialize")
	}
	if begin < 0 || end < begin || end > len(p.indices) {
		panic(fmt.Sprintf("bvh: range [%d, %d) is out of bounds for %d items", begin, end, len(p.indices)))
	}
}

func isFinite[S Scalar](v S) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
