package quad

import (
	"math"
	"sort"

	"github.com/quadplan/quadplan/pkg/geo"
)

// Corner numbering increments anticlockwise and is reindexed by the quad's
// rotation before lookup. Corner 0-1 is edge 0, 1-2 is edge 1, and so on.

// Coordinate returns the corner at the given index (taken mod 4).
//
// A quad with a below counterpart delegates to it: an upper storey's
// footprint always matches the storey beneath. A root returns its stored
// corner. Any other quad derives the corner from its parent: two of its
// corners are the parent's own, the other two are the endpoints of the
// parent's division line, which pair depending on whether this is the left
// or right child. Derived corners are memoized until the next cache clean.
func (q *Quad) Coordinate(index int) geo.Point {
	if b := q.Below(); b != nil {
		return b.Coordinate(index)
	}
	idx := mod4(index + q.Rotation())
	if q.node[idx] != nil {
		return *q.node[idx]
	}
	if q.parent == nil {
		// A bare root with no assigned corners has no geometry.
		return geo.Point{}
	}

	var res geo.Point
	switch q.Position() {
	case "l":
		switch idx {
		case 0:
			res = q.parent.Coordinate(0)
		case 1:
			res = q.parent.CoordinateA()
		case 2:
			res = q.parent.CoordinateB()
		case 3:
			res = q.parent.Coordinate(3)
		}
	case "r":
		switch idx {
		case 0:
			res = q.parent.CoordinateA()
		case 1:
			res = q.parent.Coordinate(1)
		case 2:
			res = q.parent.Coordinate(2)
		case 3:
			res = q.parent.CoordinateB()
		}
	}
	p := res
	q.node[idx] = &p
	return res
}

// CoordinateA returns the first endpoint of this quad's division line: the
// interpolation of corners 0 and 1 by division ratio 0. Returns the zero
// point for a leaf. A divided below counterpart takes precedence, keeping
// division lines coincident across storeys.
func (q *Quad) CoordinateA() geo.Point {
	if !q.Divided() {
		return geo.Point{}
	}
	if b := q.Below(); b != nil && b.Divided() {
		return b.CoordinateA()
	}
	t := q.division[0]
	c0, c1 := q.Coordinate(0), q.Coordinate(1)
	return geo.Point{
		X: c0.X*(1-t) + c1.X*t,
		Y: c0.Y*(1-t) + c1.Y*t,
	}
}

// CoordinateB returns the second endpoint of this quad's division line:
// the interpolation of corners 3 and 2 by division ratio 1.
// The mirror of [Quad.CoordinateA].
func (q *Quad) CoordinateB() geo.Point {
	if !q.Divided() {
		return geo.Point{}
	}
	if b := q.Below(); b != nil && b.Divided() {
		return b.CoordinateB()
	}
	t := q.division[1]
	c3, c2 := q.Coordinate(3), q.Coordinate(2)
	return geo.Point{
		X: c3.X*(1-t) + c2.X*t,
		Y: c3.Y*(1-t) + c2.Y*t,
	}
}

// CoordinateOffset returns the corner at index, moved by offset along the
// bisector of that corner's angle: positive moves outside the quad,
// negative inside. An offset of 0 is identical to [Quad.Coordinate].
func (q *Quad) CoordinateOffset(index int, offset float64) geo.Point {
	if offset == 0 {
		return q.Coordinate(index)
	}
	b := q.Coordinate(index)
	c := q.Coordinate(index + 1)
	theta2 := 0.5 * q.Angle(index)
	angleNew := geo.Angle(b, c) + theta2
	v := geo.Scale(offset/math.Sin(theta2), geo.Point{X: math.Cos(angleNew), Y: math.Sin(angleNew)})
	return geo.Sub(b, v)
}

// Centroid returns the average of the four corners.
func (q *Quad) Centroid() geo.Point {
	var sum geo.Point
	for i := range 4 {
		sum = geo.Add(sum, q.Coordinate(i))
	}
	return geo.Scale(0.25, sum)
}

// Area returns the quad's area, computed as two triangles.
func (q *Quad) Area() float64 {
	return geo.TriangleArea(q.Coordinate(0), q.Coordinate(1), q.Coordinate(2)) +
		geo.TriangleArea(q.Coordinate(0), q.Coordinate(2), q.Coordinate(3))
}

// Length returns the length of the edge from corner index to index+1.
func (q *Quad) Length(index int) float64 {
	return geo.Distance(q.Coordinate(index), q.Coordinate(index+1))
}

// NarrowestLength returns the shortest of the four edge lengths.
func (q *Quad) NarrowestLength() float64 {
	return q.Length(q.EdgesByLength()[0])
}

// EdgesByLength returns the four edge indices ordered shortest first.
func (q *Quad) EdgesByLength() []int {
	ids := []int{0, 1, 2, 3}
	sort.SliceStable(ids, func(i, j int) bool {
		return q.Length(ids[i]) < q.Length(ids[j])
	})
	return ids
}

// Aspect returns the aspect ratio of the quad, always >= 1.0.
func (q *Quad) Aspect() float64 {
	aspect := (q.Length(0) + q.Length(2)) / (q.Length(1) + q.Length(3))
	if aspect > 0 && aspect < 1 {
		aspect = 1 / aspect
	}
	return aspect
}

// Angle returns the interior angle at the given corner, in radians.
func (q *Quad) Angle(index int) float64 {
	a := q.Length(index)
	b := q.Length(index - 1)
	c := geo.Distance(q.Coordinate(index+1), q.Coordinate(index-1))
	return math.Acos((a*a + b*b - c*c) / (2 * a * b))
}

// Bearing returns the outward bearing perpendicular to an edge in radians:
// 0 is due east, π/2 due north.
func (q *Quad) Bearing(index int) float64 {
	v := geo.Sub(q.Coordinate(index+1), q.Coordinate(index))
	return math.Mod(math.Atan2(v.Y, v.X)-math.Pi/2+4*math.Pi, 2*math.Pi)
}

// Middle returns the midpoint of an edge, half way up the storey:
// the planar point plus its height above datum.
func (q *Quad) Middle(index int) (geo.Point, float64) {
	m := geo.Midpoint(q.Coordinate(index), q.Coordinate(index+1))
	return m, q.Elevation() + 0.5*q.Height()
}

// Min returns the lower-left corner of the bounding box.
// The point may lie outside the quad.
func (q *Quad) Min() geo.Point {
	m := q.Coordinate(0)
	for i := 1; i < 4; i++ {
		c := q.Coordinate(i)
		m.X = math.Min(m.X, c.X)
		m.Y = math.Min(m.Y, c.Y)
	}
	return m
}

// Max returns the upper-right corner of the bounding box.
func (q *Quad) Max() geo.Point {
	m := q.Coordinate(0)
	for i := 1; i < 4; i++ {
		c := q.Coordinate(i)
		m.X = math.Max(m.X, c.X)
		m.Y = math.Max(m.Y, c.Y)
	}
	return m
}

// Orientation returns a unit vector parallel to this quad's division line.
func (q *Quad) Orientation() geo.Point {
	return geo.Normalize(geo.Sub(q.CoordinateB(), q.CoordinateA()))
}

// OrientationPerpendicular returns a unit vector perpendicular to this
// quad's division line.
func (q *Quad) OrientationPerpendicular() geo.Point {
	o := q.Orientation()
	return geo.Point{X: -o.Y, Y: o.X}
}

// AreaMatch pairs a quad with how closely its area matches a reference:
// the ratio is always >= 1, with 1 an exact match.
type AreaMatch struct {
	Ratio float64
	Quad  *Quad
}

// ByArea returns every quad on this storey and the storeys above, sorted
// by how near its area is to ref. The best match comes first.
func (q *Quad) ByArea(ref float64) []AreaMatch {
	if ref == 0 {
		ref = 0.0001
	}
	roots := append([]*Quad{q.Root()}, q.LevelsAbove()...)
	var out []AreaMatch
	for _, r := range roots {
		for _, c := range r.Children() {
			ratio := c.Area() / ref
			if ratio < 1 {
				ratio = 1 / ratio
			}
			out = append(out, AreaMatch{Ratio: ratio, Quad: c})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ratio < out[j].Ratio })
	return out
}
