package fractal

import "math"

// Point is a position in screen space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p offset by the given direction and distance.
func (p Point) Add(angle, length float64) Point {
	return Point{
		X: p.X + math.Cos(angle)*length,
		Y: p.Y + math.Sin(angle)*length,
	}
}

func (p Point) finite() bool {
	return finite(p.X) && finite(p.Y)
}

// Branch is the geometric state of one recursion node. Branches are passed by
// value: a child is always a fresh copy derived from its parent.
type Branch struct {
	Origin Point
	Angle  float64
	Length float64
	Depth  uint32
}

// Step emits the line for b and derives the next branch along the chain.
// The depth is decremented before the terminal check, so a branch created
// with depth D yields exactly D lines. ok is false once the chain ends, or
// when the next branch would no longer be finite.
// Step must not be called on a branch with zero depth.
func (b Branch) Step(lengthFactor, angleDelta float64) (start, end Point, next Branch, ok bool) {
	end = b.Origin.Add(b.Angle, b.Length)
	depth := b.Depth - 1
	if depth == 0 {
		return b.Origin, end, Branch{}, false
	}

	next = Branch{
		Origin: end,
		Angle:  b.Angle + angleDelta,
		Length: b.Length * lengthFactor,
		Depth:  depth,
	}
	if !next.finite() {
		return b.Origin, end, Branch{}, false
	}

	return b.Origin, end, next, true
}

// Turn returns a copy of b rotated by delta.
func (b Branch) Turn(delta float64) Branch {
	b.Angle += delta
	return b
}

func (b Branch) finite() bool {
	return b.Origin.finite() && finite(b.Angle) && finite(b.Length)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
