package geo

import "math"

// Line is an infinite line in slope/intercept form: y = A*x + B.
// Vertical lines are approximated with a near-zero run (see tinySlope),
// so every line in this package has a finite slope.
type Line struct {
	A float64 // slope
	B float64 // y intercept
}

// LineThrough returns the line through two points. When the points share an
// x coordinate the run is replaced with a tiny non-zero value, producing a
// steep but finite slope.
func LineThrough(p0, p1 Point) Line {
	v := Sub(p1, p0)
	if v.X == 0 {
		v.X = tinySlope
	}
	a := v.Y / v.X
	return Line{A: a, B: p0.Y - p0.X*a}
}

// LineAt returns the line through p with the given heading in radians.
func LineAt(p Point, radians float64) Line {
	return LineThrough(p, Point{p.X + math.Cos(radians), p.Y + math.Sin(radians)})
}

// Perpendicular returns the line through p perpendicular to l.
// A horizontal l is nudged to a tiny slope first so the result stays finite.
func Perpendicular(l Line, p Point) Line {
	a0 := l.A
	if a0 == 0 {
		a0 = tinySlope
	}
	a := -1 / a0
	return Line{A: a, B: p.Y - p.X*a}
}

// Intersect returns the intersection of two lines. Lines with equal slope
// are parallel (or identical) and do not intersect; ok is false.
func Intersect(l0, l1 Line) (Point, bool) {
	if l0.A == l1.A {
		return Point{}, false
	}
	x := (l1.B - l0.B) / (l0.A - l1.A)
	return Point{X: x, Y: l0.A*x + l0.B}, true
}

// PerpendicularDistance returns the shortest distance from p to l.
func PerpendicularDistance(l Line, p Point) float64 {
	hit, ok := Intersect(l, Perpendicular(l, p))
	if !ok {
		return 0
	}
	return Distance(p, hit)
}
