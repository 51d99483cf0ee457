package bvh

// Scratch holds the working memory of a partition call: the half surface
// area of the left-to-right accumulated box at each sweep position. A scratch
// buffer grows to fit the largest range it has been used for and never
// shrinks, so it can be reused across every partition call of a build.
//
// A Scratch must not be shared by concurrent partition calls.
type Scratch[S Scalar] struct {
	leftAreas []S
}

// Create a scratch buffer with room for ranges of up to capacity+1 items.
func NewScratch[S Scalar](capacity int) *Scratch[S] {
	return &Scratch[S]{leftAreas: make([]S, max(capacity, 0))}
}

// Len returns the number of sweep slots currently allocated.
func (s *Scratch[S]) Len() int {
	return len(s.leftAreas)
}

// Ensure that at least size slots are allocated and return them.
func (s *Scratch[S]) ensure(size int) []S {
	if len(s.leftAreas) < size {
		s.leftAreas = make([]S, size)
	}
	return s.leftAreas[:size]
}
