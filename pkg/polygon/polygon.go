// Package polygon implements a small 2D polygon value type over an ordered
// point list: bounding box, area, centroid, winding test, perimeter and
// point containment. Derived values are memoized on first access, so a
// Polygon should be treated as immutable once queried; the only mutators
// are the winding reorientation methods, which reset the memo.
package polygon

import (
	"math"

	"github.com/quadplan/quadplan/pkg/geo"
)

// BBox is an axis-aligned bounding box.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Polygon is a closed polygon defined by an ordered list of vertices.
// The first vertex is not repeated at the end.
type Polygon struct {
	points []geo.Point

	bbox      *BBox
	area      *float64
	centroid  *geo.Point
	clockwise *bool
}

// New creates a polygon from the given vertices. The slice is not copied;
// callers must not modify it afterwards.
func New(points []geo.Point) *Polygon {
	return &Polygon{points: points}
}

// Order returns the polygon order: the number of vertices minus one.
func (p *Polygon) Order() int { return len(p.points) - 1 }

// Points returns the vertex list.
func (p *Polygon) Points() []geo.Point { return p.points }

// Point returns the vertex at index i and true, or a zero point and false
// when i is out of range.
func (p *Polygon) Point(i int) (geo.Point, bool) {
	if i < 0 || i >= len(p.points) {
		return geo.Point{}, false
	}
	return p.points[i], true
}

// PointsAt returns the vertices at the given indices, skipping any index
// out of range. This is the batch companion to [Polygon.Point].
func (p *Polygon) PointsAt(indices []int) []geo.Point {
	out := make([]geo.Point, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(p.points) {
			out = append(out, p.points[i])
		}
	}
	return out
}

// Bounds returns the axis-aligned bounding box.
func (p *Polygon) Bounds() BBox {
	if p.bbox == nil {
		b := BBox{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
		for _, pt := range p.points {
			b.MinX = math.Min(b.MinX, pt.X)
			b.MinY = math.Min(b.MinY, pt.Y)
			b.MaxX = math.Max(b.MaxX, pt.X)
			b.MaxY = math.Max(b.MaxY, pt.Y)
		}
		p.bbox = &b
	}
	return *p.bbox
}

// Area returns the enclosed area, always non-negative regardless of winding.
func (p *Polygon) Area() float64 {
	if p.area == nil {
		a := math.Abs(p.signedArea())
		p.area = &a
	}
	return *p.area
}

// signedArea is the shoelace sum: positive for counter-clockwise winding.
func (p *Polygon) signedArea() float64 {
	var sum float64
	n := len(p.points)
	for i := range n {
		a, b := p.points[i], p.points[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Centroid returns the area centroid of the polygon.
func (p *Polygon) Centroid() geo.Point {
	if p.centroid == nil {
		var cx, cy float64
		n := len(p.points)
		for i := range n {
			a, b := p.points[i], p.points[(i+1)%n]
			cross := a.X*b.Y - b.X*a.Y
			cx += (a.X + b.X) * cross
			cy += (a.Y + b.Y) * cross
		}
		sa := p.signedArea()
		c := geo.Point{X: cx / (6 * sa), Y: cy / (6 * sa)}
		p.centroid = &c
	}
	return *p.centroid
}

// IsClockwise reports whether the vertices wind clockwise.
func (p *Polygon) IsClockwise() bool {
	if p.clockwise == nil {
		cw := p.signedArea() < 0
		p.clockwise = &cw
	}
	return *p.clockwise
}

// Clockwise reverses the vertex order if needed so the winding is clockwise.
func (p *Polygon) Clockwise() {
	if !p.IsClockwise() {
		p.reverse()
	}
}

// CounterClockwise reverses the vertex order if needed so the winding is
// counter-clockwise.
func (p *Polygon) CounterClockwise() {
	if p.IsClockwise() {
		p.reverse()
	}
}

func (p *Polygon) reverse() {
	for i, j := 0, len(p.points)-1; i < j; i, j = i+1, j-1 {
		p.points[i], p.points[j] = p.points[j], p.points[i]
	}
	p.bbox, p.area, p.centroid, p.clockwise = nil, nil, nil, nil
}

// Perimeter returns the total edge length, including the closing edge.
func (p *Polygon) Perimeter() float64 {
	var sum float64
	n := len(p.points)
	for i := range n {
		sum += geo.Distance(p.points[i], p.points[(i+1)%n])
	}
	return sum
}

// Contains reports whether pt lies inside the polygon, using the even-odd
// ray casting rule. Points exactly on an edge may land on either side.
func (p *Polygon) Contains(pt geo.Point) bool {
	inside := false
	n := len(p.points)
	for i := range n {
		a, b := p.points[i], p.points[(i+1)%n]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
