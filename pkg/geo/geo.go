// Package geo provides the 2D vector, line and angle primitives used by the
// quad tree and boundary code.
//
// All functions are pure: they take and return values, hold no state, and
// never panic on degenerate input. Near-vertical lines are represented by
// substituting a tiny non-zero denominator rather than a dedicated
// infinite-slope case; see [LineThrough] for the tradeoff.
package geo

import "math"

// Epsilon is the tolerance used by the on-segment and angle-betweenness
// predicates.
const Epsilon = 1e-6

// tinySlope replaces a zero denominator when constructing or inverting a
// line. This keeps vertical lines representable in slope/intercept form at
// the cost of a small positional error far from the reference point.
const tinySlope = 1e-11

// Point is a position or vector in the plane.
type Point struct {
	X, Y float64
}

// Sub returns the vector from b to a, i.e. a - b.
func Sub(a, b Point) Point {
	return Point{a.X - b.X, a.Y - b.Y}
}

// Add returns the sum of all given vectors.
func Add(vs ...Point) Point {
	var sum Point
	for _, v := range vs {
		sum.X += v.X
		sum.Y += v.Y
	}
	return sum
}

// Scale returns the vector v scaled by s.
func Scale(s float64, v Point) Point {
	return Point{s * v.X, s * v.Y}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Normalize returns the unit vector in the direction of v.
// The zero vector normalizes to (0, 1).
func Normalize(v Point) Point {
	d := Distance(Point{}, v)
	if d == 0 {
		return Point{0, 1}
	}
	return Point{v.X / d, v.Y / d}
}

// Angle returns the angle in radians of the vector from a to b,
// in the range (-π, π].
func Angle(a, b Point) float64 {
	v := Sub(b, a)
	return math.Atan2(v.Y, v.X)
}

// IsBetween reports whether p lies on the segment from a to b,
// within [Epsilon]. Endpoints count as between.
func IsBetween(p, a, b Point) bool {
	return math.Abs(Distance(a, b)-Distance(a, p)-Distance(b, p)) < Epsilon
}

// Midpoint returns the point half way between a and b.
func Midpoint(a, b Point) Point {
	return Point{0.5 * (a.X + b.X), 0.5 * (a.Y + b.Y)}
}

// TriangleArea returns the area of the triangle a-b-c using Heron's formula.
// Degenerate (collinear) triangles yield zero.
func TriangleArea(a, b, c Point) float64 {
	la := Distance(b, c)
	lb := Distance(a, c)
	lc := Distance(a, b)
	s := (la + lb + lc) / 2
	h := s * (s - la) * (s - lb) * (s - lc)
	if h <= 0 {
		return 0
	}
	return math.Sqrt(h)
}

// IsAngleBetween reports whether angle lies within the arc spanned by
// headingA and headingB. The angle is first normalized into (-π, π]; all
// differences are folded into [0, π] so the test is independent of winding.
func IsAngleBetween(angle, headingA, headingB float64) bool {
	if angle > math.Pi {
		angle -= 2 * math.Pi
	}
	fold := func(d float64) float64 {
		d = math.Abs(d)
		if d > math.Pi {
			d = 2*math.Pi - d
		}
		return d
	}
	da := fold(headingA - angle)
	db := fold(headingB - angle)
	dab := fold(headingA - headingB)
	return da+db-Epsilon <= dab
}

// Gaussian evaluates a*exp(-(x-b)²/(2c²)), the bell curve with scale a,
// centre b and sigma c.
func Gaussian(x, a, b, c float64) float64 {
	return a * math.Exp(-((x - b) * (x - b) / (2 * c * c)))
}
