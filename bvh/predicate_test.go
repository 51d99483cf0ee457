package bvh

import (
	"reflect"
	"testing"

	"github.com/threedslider/appleseed/types"
)

func TestAxisPredicateOrdering(t *testing.T) {
	boxes := []types.AABB3{
		types.NewAABB3(types.XYZ(4, 0, 0), types.XYZ(5, 1, 1)),
		types.NewAABB3(types.XYZ(0, 2, 0), types.XYZ(1, 3, 1)),
		types.NewAABB3(types.XYZ(2, 1, 0), types.XYZ(3, 2, 1)),
		// Same centroid as item 2 along x but wider
		types.NewAABB3(types.XYZ(1, 0, 0), types.XYZ(4, 1, 1)),
	}

	type spec struct {
		axis     int
		expOrder []int
	}
	specs := []spec{
		{0, []int{1, 2, 3, 0}},
		{1, []int{0, 3, 2, 1}},
		// All items share the same z extents; ties resolve by index
		{2, []int{0, 1, 2, 3}},
	}

	for index, s := range specs {
		items := []int{3, 1, 0, 2}
		NewAxisPredicate[float32, types.AABB3](boxes, s.axis).Sort(items)
		if !reflect.DeepEqual(items, s.expOrder) {
			t.Fatalf("[spec %d] expected order %v; got %v", index, s.expOrder, items)
		}
	}
}

func TestAxisPredicateCompare(t *testing.T) {
	boxes := []types.AABB3{
		types.NewAABB3(types.XYZ(0, 0, 0), types.XYZ(2, 1, 1)),
		types.NewAABB3(types.XYZ(0.5, 0, 0), types.XYZ(1.5, 1, 1)),
		types.NewAABB3(types.XYZ(3, 0, 0), types.XYZ(4, 1, 1)),
	}
	pred := NewAxisPredicate[float32, types.AABB3](boxes, 0)

	type spec struct {
		a, b   int
		expCmp int
	}
	specs := []spec{
		{0, 0, 0},
		{0, 1, -1},
		{1, 0, 1},
		{0, 2, -1},
		{2, 1, 1},
	}

	for index, s := range specs {
		if got := pred.Compare(s.a, s.b); got != s.expCmp {
			t.Fatalf("[spec %d] expected Compare(%d, %d) to be %d; got %d", index, s.a, s.b, s.expCmp, got)
		}
		if got := pred.Less(s.a, s.b); got != (s.expCmp < 0) {
			t.Fatalf("[spec %d] expected Less(%d, %d) to be %t; got %t", index, s.a, s.b, s.expCmp < 0, got)
		}
	}
}

func TestAxisPredicateIsDeterministic(t *testing.T) {
	boxes := make([]types.AABB3, 64)
	for i := range boxes {
		// Only 4 distinct boxes so most comparisons are ties.
		offset := float32(i % 4)
		boxes[i] = types.NewAABB3(types.XYZ(offset, 0, 0), types.XYZ(offset+1, 1, 1))
	}

	pred := NewAxisPredicate[float32, types.AABB3](boxes, 0)

	forward := make([]int, len(boxes))
	backward := make([]int, len(boxes))
	for i := range forward {
		forward[i] = i
		backward[i] = len(boxes) - 1 - i
	}
	pred.Sort(forward)
	pred.Sort(backward)

	if !reflect.DeepEqual(forward, backward) {
		t.Fatalf("expected identical orderings regardless of input order; got %v and %v", forward, backward)
	}
	for i := 1; i < len(forward); i++ {
		if pred.Compare(forward[i-1], forward[i]) >= 0 {
			t.Fatalf("expected items %d and %d to be strictly ordered", forward[i-1], forward[i])
		}
	}
}
