package types

import (
	"testing"
)

func TestAABB3Insert(t *testing.T) {
	var box AABB3
	box.Invalidate()
	if box.IsValid() {
		t.Fatal("expected invalidated box to be invalid")
	}
	if area := box.HalfSurfaceArea(); area != 0 {
		t.Fatalf("expected invalid box to have zero area; got %f", area)
	}

	other := NewAABB3(XYZ(-1, 0, 2), XYZ(1, 1, 3))
	box.Insert(&other)
	if box != other {
		t.Fatalf("expected inserting into an empty box to yield %v; got %v", other, box)
	}

	other = NewAABB3(XYZ(0, -2, 0), XYZ(4, 0, 1))
	box.Insert(&other)
	exp := NewAABB3(XYZ(-1, -2, 0), XYZ(4, 1, 3))
	if box != exp {
		t.Fatalf("expected union to be %v; got %v", exp, box)
	}
}

func TestAABB3HalfSurfaceArea(t *testing.T) {
	type spec struct {
		box     AABB3
		expArea float32
	}
	specs := []spec{
		{NewAABB3(XYZ(0, 0, 0), XYZ(1, 1, 1)), 3},
		{NewAABB3(XYZ(0, 0, 0), XYZ(1, 2, 3)), 11},
		{NewAABB3(XYZ(1, 1, 1), XYZ(1, 1, 1)), 0},
		{NewAABB3(XYZ(0, 0, 0), XYZ(4, 2, 0)), 8},
	}

	for index, s := range specs {
		if area := s.box.HalfSurfaceArea(); area != s.expArea {
			t.Fatalf("[spec %d] expected half surface area %f; got %f", index, s.expArea, area)
		}
	}
}

func TestAABB3FromPoints(t *testing.T) {
	box := AABB3FromPoints(XYZ(1, 5, -1), XYZ(-2, 0, 0), XYZ(0, 1, 3))
	exp := NewAABB3(XYZ(-2, 0, -1), XYZ(1, 5, 3))
	if box != exp {
		t.Fatalf("expected box %v; got %v", exp, box)
	}

	if c := box.Center(); c != XYZ(-0.5, 2.5, 1) {
		t.Fatalf("expected center (-0.5, 2.5, 1); got %v", c)
	}

	lo, hi := box.Bounds(1)
	if lo != 0 || hi != 5 {
		t.Fatalf("expected y bounds [0, 5]; got [%f, %f]", lo, hi)
	}

	if empty := AABB3FromPoints(); empty.IsValid() {
		t.Fatal("expected box without points to be invalid")
	}
}

func TestAABB2(t *testing.T) {
	var box AABB2
	box.Invalidate()

	a := NewAABB2(XY(0, 0), XY(1, 1))
	b := NewAABB2(XY(2, -1), XY(3, 0))
	box.Insert(&a)
	box.Insert(&b)

	exp := NewAABB2(XY(0, -1), XY(3, 1))
	if box != exp {
		t.Fatalf("expected union to be %v; got %v", exp, box)
	}
	if area := box.HalfSurfaceArea(); area != 5 {
		t.Fatalf("expected half perimeter 5; got %f", area)
	}
	if box.Dimension() != 2 {
		t.Fatalf("expected dimension 2; got %d", box.Dimension())
	}
}
