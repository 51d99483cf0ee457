package types

import (
	"github.com/chewxy/math32"
)

// AABB3 is a 3D axis-aligned bounding box.
type AABB3 struct {
	Min Vec3
	Max Vec3
}

// Create a 3D box from its min/max corners.
func NewAABB3(min, max Vec3) AABB3 {
	return AABB3{Min: min, Max: max}
}

// Create the smallest 3D box containing all points. The box is left in an
// invalid state if no points are specified.
func AABB3FromPoints(points ...Vec3) AABB3 {
	var box AABB3
	box.Invalidate()
	for _, p := range points {
		box.Min = MinVec3(box.Min, p)
		box.Max = MaxVec3(box.Max, p)
	}
	return box
}

// Reset the box to an empty state. Inserting a box into an empty box yields
// the inserted box.
func (b *AABB3) Invalidate() {
	inf := math32.Inf(1)
	b.Min = Vec3{inf, inf, inf}
	b.Max = Vec3{-inf, -inf, -inf}
}

// Grow the box so it also contains other.
func (b *AABB3) Insert(other *AABB3) {
	b.Min = MinVec3(b.Min, other.Min)
	b.Max = MaxVec3(b.Max, other.Max)
}

// Returns true if the box has min <= max along every axis.
func (b *AABB3) IsValid() bool {
	for axis := 0; axis < 3; axis++ {
		if math32.IsNaN(b.Min[axis]) || math32.IsNaN(b.Max[axis]) || b.Min[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}

// Get the box side lengths.
func (b *AABB3) Extent() Vec3 {
	return b.Max.Sub(b.Min)
}

// Get the box center.
func (b *AABB3) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Get half of the box surface area. Invalid boxes have a zero area.
func (b *AABB3) HalfSurfaceArea() float32 {
	if !b.IsValid() {
		return 0
	}
	e := b.Extent()
	return e[0]*e[1] + e[1]*e[2] + e[2]*e[0]
}

// Get the box extents along an axis.
func (b *AABB3) Bounds(axis int) (lo, hi float32) {
	return b.Min[axis], b.Max[axis]
}

// Get the number of box dimensions.
func (b *AABB3) Dimension() int {
	return 3
}

// AABB2 is a 2D axis-aligned bounding box.
type AABB2 struct {
	Min Vec2
	Max Vec2
}

// Create a 2D box from its min/max corners.
func NewAABB2(min, max Vec2) AABB2 {
	return AABB2{Min: min, Max: max}
}

// Reset the box to an empty state.
func (b *AABB2) Invalidate() {
	inf := math32.Inf(1)
	b.Min = Vec2{inf, inf}
	b.Max = Vec2{-inf, -inf}
}

// Grow the box so it also contains other.
func (b *AABB2) Insert(other *AABB2) {
	b.Min = MinVec2(b.Min, other.Min)
	b.Max = MaxVec2(b.Max, other.Max)
}

// Returns true if the box has min <= max along every axis.
func (b *AABB2) IsValid() bool {
	for axis := 0; axis < 2; axis++ {
		if math32.IsNaN(b.Min[axis]) || math32.IsNaN(b.Max[axis]) || b.Min[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}

// Get the box side lengths.
func (b *AABB2) Extent() Vec2 {
	return b.Max.Sub(b.Min)
}

// Get half of the box perimeter, the 2D analogue of the surface area.
func (b *AABB2) HalfSurfaceArea() float32 {
	if !b.IsValid() {
		return 0
	}
	e := b.Extent()
	return e[0] + e[1]
}

// Get the box extents along an axis.
func (b *AABB2) Bounds(axis int) (lo, hi float32) {
	return b.Min[axis], b.Max[axis]
}

// Get the number of box dimensions.
func (b *AABB2) Dimension() int {
	return 2
}
