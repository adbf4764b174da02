package quad

import (
	"math"

	"github.com/quadplan/quadplan/pkg/geo"
)

// CleanCache invalidates derived state after a structural change: corner
// caches wherever geometry is derived rather than authoritative (any quad
// with a parent or a below counterpart), the id cache everywhere, children
// recursively, and — from an unparented root only — the storeys above.
// Every structural mutation calls this before returning.
func (q *Quad) CleanCache() {
	if q.parent != nil || q.Below() != nil {
		q.node = [4]*geo.Point{}
		q.elevation = nil
		q.perimeter = nil
	}
	q.idCache = nil
	if q.parent == nil && q.above != nil {
		q.above.CleanCache()
	}
	if !q.Divided() {
		return
	}
	q.Left().CleanCache()
	q.Right().CleanCache()
}

// Divide splits the quad in two, allocating two fresh leaf children.
// The two ratios position the division line's endpoints along edges 0-1
// and 3-2; nil ratios default to [0.5, 0.5]. Dividing an already-divided
// quad replaces the ratios but allocates nothing and returns false.
func (q *Quad) Divide(ratios []float64) bool {
	if len(ratios) == 2 {
		q.division = []float64{ratios[0], ratios[1]}
	} else {
		q.division = []float64{0.5, 0.5}
	}
	q.CleanCache()
	if len(q.children) > 0 {
		return false
	}
	q.children = []*Quad{{parent: q}, {parent: q}}
	return true
}

// Undivide collapses the quad back to a leaf, recursively undividing
// descendants first. When a divided counterpart exists on the storey
// above, this quad's division ratios are re-applied to it so the storeys'
// internal layout stays consistent. Fails on a leaf.
func (q *Quad) Undivide() bool {
	if !q.Divided() {
		return false
	}
	q.Left().Undivide()
	q.Right().Undivide()
	if a := q.Above(); a != nil && a.Divided() {
		a.Divide(q.division)
	}
	q.children = nil
	q.CleanCache()
	return true
}

// Swap exchanges the left and right children in place.
// Fails on a leaf.
func (q *Quad) Swap() bool {
	if !q.Divided() {
		return false
	}
	q.children[0], q.children[1] = q.children[1], q.children[0]
	q.CleanCache()
	return true
}

// Clone returns a deep copy of this subtree as an independent, detached
// root. Corner coordinates are fixed into absolute values first, so the
// copy's geometry no longer depends on a former parent or storey beneath;
// its rotation folds into the stored corners. Clone never mutates the
// source tree; use [Quad.Detach] for the destructive variant.
func (q *Quad) Clone() *Quad {
	var snap [4]geo.Point
	for i := range snap {
		snap[i] = q.Coordinate(i)
	}
	n := q.copyTree(nil)
	if q.parent != nil || q.Below() != nil {
		for i := range snap {
			c := snap[i]
			n.node[i] = &c
		}
		n.rotation = 0
	}
	n.CleanCache()
	return n
}

// copyTree deep-copies the subtree rooted at q, attaching it to parent.
// Vertical links are not carried over.
func (q *Quad) copyTree(parent *Quad) *Quad {
	n := &Quad{
		parent:    parent,
		rotation:  q.rotation,
		typ:       q.typ,
		Style:     q.Style,
		WallInner: q.WallInner,
		WallOuter: q.WallOuter,
		perimeter: q.perimeter,
	}
	for i, c := range q.node {
		if c != nil {
			p := *c
			n.node[i] = &p
		}
	}
	if q.division != nil {
		n.division = append([]float64(nil), q.division...)
	}
	if q.elevation != nil {
		e := *q.elevation
		n.elevation = &e
	}
	if q.height != nil {
		h := *q.height
		n.height = &h
	}
	for _, c := range q.children {
		n.children = append(n.children, c.copyTree(n))
	}
	return n
}

// Detach copies this subtree like [Quad.Clone], then removes the original
// from its tree: for a child, the parent's children (sibling included) are
// destroyed and the stack's lowest root is collapsed to a single leaf; for
// a stacked root, the vertical link below is severed and the remaining
// stack collapsed likewise.
func (q *Quad) Detach() *Quad {
	n := q.Clone()
	switch {
	case q.parent != nil:
		p := q.parent
		if p.Left() == q {
			p.Right().Undivide()
		} else if p.Right() == q {
			p.Left().Undivide()
		}
		p.children = nil
		lowest := p.Root().Lowest()
		lowest.DelAbove()
		lowest.Undivide()
	case q.below != nil:
		b := q.below
		b.above = nil
		q.below = nil
		lowest := b.Root().Lowest()
		lowest.DelAbove()
		lowest.Undivide()
	}
	return n
}

// Crossover exchanges the entire subtree and division state between two
// quads, leaving each quad's position, parent, corner coordinates and
// vertical links where they were. Fails without mutating when either quad
// is an ancestor of the other, which would make a tree contain itself.
func (q *Quad) Crossover(other *Quad) bool {
	if other == nil {
		return false
	}
	for _, p := range other.Parents() {
		if p == q {
			return false
		}
	}
	for _, p := range q.Parents() {
		if p == other {
			return false
		}
	}

	in := other.Clone()
	out := q.Clone()
	q.adoptContent(in)
	other.adoptContent(out)
	q.CleanCache()
	other.CleanCache()
	return true
}

// adoptContent moves src's subtree and division state onto q. src must be
// a detached clone; its children are re-parented, never shared.
func (q *Quad) adoptContent(src *Quad) {
	q.children = src.children
	for _, c := range q.children {
		c.parent = q
	}
	q.division = src.division
	q.rotation = src.rotation
	q.typ = src.typ
	q.Style = src.Style
	q.WallInner = src.WallInner
	q.WallOuter = src.WallOuter
	src.children = nil
}

// Collapse removes a division whose children have become too narrow: when
// either child's narrowest edge is shorter than width, that child's
// subtree is discarded, the other child's content takes over this quad,
// and the result is re-straightened. Returns false when the quad is a
// leaf or both children are wide enough.
func (q *Quad) Collapse(width float64) bool {
	if !q.Divided() {
		return false
	}
	keep := (*Quad)(nil)
	switch {
	case q.Left().NarrowestLength() < width:
		keep = q.Right().Clone()
	case q.Right().NarrowestLength() < width:
		keep = q.Left().Clone()
	default:
		return false
	}
	q.Undivide()
	q.Crossover(keep)
	q.StraightenRecursive(0)
	return true
}

// straightenCut intersects a line through coordinate A with the given
// orientation against the edge from corner 3 to corner 2, returning the
// full edge vector and the partial vector up to the intersection. ok is
// false when the lines are parallel.
func (q *Quad) straightenCut(orientation geo.Point) (full, partial geo.Point, ok bool) {
	a := q.CoordinateA()
	line1 := geo.LineThrough(a, geo.Sub(a, orientation))
	line2 := geo.LineThrough(q.Coordinate(2), q.Coordinate(3))
	hit, ok := geo.Intersect(line1, line2)
	if !ok {
		return geo.Point{}, geo.Point{}, false
	}
	full = geo.Sub(q.Coordinate(2), q.Coordinate(3))
	partial = geo.Sub(hit, q.Coordinate(3))
	return full, partial, true
}

// Straighten re-projects this quad's division line so it aligns with the
// parent's division: parallel for rotations 0 and 2, perpendicular
// otherwise. The division pivots around coordinate A; only the second
// ratio changes. Fails on a root, a leaf, or when the straightened line
// would leave the quad (ratio outside (0,1)).
func (q *Quad) Straighten() bool {
	if q.parent == nil || !q.Divided() {
		return false
	}
	var orientation geo.Point
	if r := q.Rotation(); r == 0 || r == 2 {
		orientation = q.parent.Orientation()
	} else {
		orientation = q.parent.OrientationPerpendicular()
	}
	full, partial, ok := q.straightenCut(orientation)
	if !ok {
		return false
	}
	var division float64
	if math.Abs(full.X) < math.Abs(full.Y) {
		division = partial.Y / full.Y
	} else {
		division = partial.X / full.X
	}
	if !(division > 0 && division < 1) {
		return false
	}
	q.division[1] = division
	q.CleanCache()
	return true
}

// StraightenRoot aligns a root's division line with one of its four outer
// edges, chosen by reference (0..3); depending on rotation the result is
// parallel or perpendicular to that edge. Fails on a non-root, a leaf, or
// when the new ratio falls outside (0,1).
func (q *Quad) StraightenRoot(reference int) bool {
	if !q.Divided() || q.parent != nil {
		return false
	}
	orientation := geo.Normalize(geo.Sub(q.Coordinate(reference), q.Coordinate(reference+1)))
	if reference == 0 || reference == 2 {
		orientation = geo.Point{X: -orientation.Y, Y: orientation.X}
	}
	full, partial, ok := q.straightenCut(orientation)
	if !ok {
		return false
	}
	var division float64
	if full.X == 0 {
		division = partial.Y / full.Y
	} else {
		division = partial.X / full.X
	}
	if !(division > 0 && division < 1) {
		return false
	}
	q.division[1] = division
	q.CleanCache()
	return true
}

// StraightenRecursive applies [Quad.Straighten] to every quad in this
// subtree, [Quad.StraightenRoot] with the given reference edge to roots,
// and continues into the storeys above. Apply to the root to guarantee
// the whole tree is straightened.
func (q *Quad) StraightenRecursive(reference int) bool {
	for _, c := range q.Children() {
		if c.parent != nil {
			c.Straighten()
		} else {
			c.StraightenRoot(reference)
			if a := c.Above(); a != nil {
				a.StraightenRecursive(reference)
			}
		}
	}
	return true
}

// Shift translates the whole stack by (x, y) in plan and z in elevation.
// The translation applies to the lowest storey's root, which owns the
// authoritative corners; everything else rederives from it.
func (q *Quad) Shift(x, y, z float64) bool {
	root := q.Root().Lowest()
	for i := range root.node {
		if root.node[i] != nil {
			root.node[i].X += x
			root.node[i].Y += y
		}
	}
	if z != 0 {
		e := root.Elevation() + z
		root.elevation = &e
	}
	root.CleanCache()
	return true
}
