// Package quad models architectural floor-plan space as a recursively
// subdivided quadrilateral binary tree.
//
// A Quad is a four-sided unit of space. Dividing it produces exactly two
// children; leaves are occupiable rooms, branches are containers. A root
// quad carries four explicit corner points, and every descendant derives
// its corners lazily from its parent's corners and division line. Multiple
// trees stack vertically into building storeys through above/below links
// between roots; an upper storey always shares the footprint of the storey
// beneath it.
//
// Structural operations return a bool: false means the request was invalid
// or geometrically degenerate and nothing was mutated. Nothing in this
// package panics on bad structure.
//
// Quads are not safe for concurrent use: every operation, including
// read-only traversal, touches per-node caches. Callers must serialize all
// access to a tree and its vertical stack.
package quad

import (
	"github.com/quadplan/quadplan/pkg/geo"
	"github.com/quadplan/quadplan/pkg/polygon"
)

// DefaultHeight is the storey height used when none has been set.
const DefaultHeight = 3.0

// Quad is one node of the binary space-partition tree.
// The zero value is a bare, unrooted leaf; most callers start from
// [NewRoot].
type Quad struct {
	parent *Quad
	above  *Quad // set only on roots
	below  *Quad // set only on roots

	children []*Quad // nil or exactly two

	node      [4]*geo.Point // corner cache, nil until derived
	rotation  int
	division  []float64 // nil or exactly two ratios in (0,1)
	elevation *float64
	height    *float64

	typ       string
	Style     string
	WallInner bool
	WallOuter bool

	perimeter *polygon.Polygon

	diag    Diagnostics
	idCache *string
}

// NewRoot creates a root quad from four corner points in anticlockwise
// order, at the given floor elevation and with the given storey height.
func NewRoot(corners [4]geo.Point, elevation, height float64) *Quad {
	q := &Quad{elevation: &elevation, height: &height}
	for i := range corners {
		c := corners[i]
		q.node[i] = &c
	}
	return q
}

// Divided reports whether the quad has been divided into two children.
// It holds iff exactly two children exist and a division ratio pair is set.
func (q *Quad) Divided() bool {
	return len(q.children) == 2 && len(q.division) == 2
}

// Left returns the first child, or nil for a leaf.
func (q *Quad) Left() *Quad {
	if q.Divided() {
		return q.children[0]
	}
	return nil
}

// Right returns the second child, or nil for a leaf.
func (q *Quad) Right() *Quad {
	if q.Divided() {
		return q.children[1]
	}
	return nil
}

// Parent returns the parent quad, or nil for a root.
func (q *Quad) Parent() *Quad { return q.parent }

// Root walks up to the root of this quad's tree.
func (q *Quad) Root() *Quad {
	if q.parent != nil {
		return q.parent.Root()
	}
	return q
}

// Position reports whether this quad is the left ("l") or right ("r")
// child of its parent, or "" for a root.
func (q *Quad) Position() string {
	if q.parent == nil {
		return ""
	}
	if q.parent.Left() == q {
		return "l"
	}
	if q.parent.Right() == q {
		return "r"
	}
	return ""
}

// ID returns the path address of this quad relative to its tree root:
// "" for the root, then one 'l' or 'r' per level. The string is usable
// with [Quad.ByID]. The value is cached until the next structural change.
func (q *Quad) ID() string {
	if q.parent == nil {
		return ""
	}
	if q.idCache == nil {
		id := q.parent.ID() + q.Position()
		q.idCache = &id
	}
	return *q.idCache
}

// Type returns the free-form type tag of this quad ("" when unset).
func (q *Quad) Type() string { return q.typ }

// SetType sets the free-form type tag.
func (q *Quad) SetType(t string) { q.typ = t }

// Division returns the two division ratios, or nil for a leaf.
// The slice is live; use [Quad.Divide] to change it.
func (q *Quad) Division() []float64 { return q.division }

// Rotation returns the quarter-turn rotation in {0,1,2,3}. Rotation is a
// property of the lowest storey: a quad with a below counterpart reads
// through to it.
func (q *Quad) Rotation() int {
	if b := q.Below(); b != nil {
		return b.Rotation()
	}
	return q.rotation
}

// SetRotation sets this quad's own rotation, normalized mod 4.
func (q *Quad) SetRotation(r int) {
	q.rotation = ((r % 4) + 4) % 4
	q.CleanCache()
}

// Rotate turns the quad a quarter turn anticlockwise; children move along.
func (q *Quad) Rotate() bool {
	q.SetRotation(q.rotation + 1)
	return true
}

// Unrotate turns the quad a quarter turn clockwise; children move along.
func (q *Quad) Unrotate() bool {
	q.SetRotation(q.rotation - 1)
	return true
}

// Height returns this storey's height, stored on the root,
// or [DefaultHeight] when unset.
func (q *Quad) Height() float64 {
	r := q.Root()
	if r.height != nil {
		return *r.height
	}
	return DefaultHeight
}

// SetHeight sets the storey height on this quad's root.
func (q *Quad) SetHeight(h float64) {
	r := q.Root()
	r.height = &h
}

// Elevation returns the floor elevation of this storey. For a stacked
// storey this is the elevation of the storey beneath plus its height;
// only the lowest root stores an explicit value (0 when unset).
func (q *Quad) Elevation() float64 {
	r := q.Root()
	if r.below == nil {
		if r.elevation != nil {
			return *r.elevation
		}
		return 0
	}
	return r.below.Elevation() + r.below.Height()
}

// Perimeter returns the site perimeter polygon, which is stored on the
// lowest root. Nil when never set.
func (q *Quad) Perimeter() *polygon.Polygon {
	r := q.Root()
	if r.below == nil {
		return r.perimeter
	}
	return r.below.Perimeter()
}

// SetPerimeter stores the site perimeter polygon on the lowest root.
func (q *Quad) SetPerimeter(p *polygon.Polygon) {
	q.Root().Lowest().perimeter = p
}

// Footprint returns this quad's four corners as a polygon value, useful
// for cross-checking area and containment against the polygon package.
func (q *Quad) Footprint() *polygon.Polygon {
	pts := make([]geo.Point, 4)
	for i := range pts {
		pts[i] = q.Coordinate(i)
	}
	return polygon.New(pts)
}

// Leafs returns all leaf quads of this subtree, in left-to-right order.
// An undivided quad returns itself.
func (q *Quad) Leafs() []*Quad {
	if !q.Divided() {
		return []*Quad{q}
	}
	return append(q.Left().Leafs(), q.Right().Leafs()...)
}

// Branches returns all branch quads of this subtree in pre-order.
// As a special case an undivided root counts as a branch of its own.
func (q *Quad) Branches() []*Quad {
	if !q.Divided() {
		if q.parent == nil {
			return []*Quad{q}
		}
		return nil
	}
	out := []*Quad{q}
	out = append(out, q.Left().Branches()...)
	return append(out, q.Right().Branches()...)
}

// Children returns this quad and every descendant, in pre-order.
func (q *Quad) Children() []*Quad {
	if !q.Divided() {
		return []*Quad{q}
	}
	out := []*Quad{q}
	out = append(out, q.Left().Children()...)
	return append(out, q.Right().Children()...)
}

// Parents returns the chain of ancestors, nearest first, ending at the root.
func (q *Quad) Parents() []*Quad {
	var out []*Quad
	for p := q.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// ByID resolves a path address (see [Quad.ID]) from this quad's tree root.
// Characters other than 'l' and 'r' are ignored. Returns nil when the path
// leads beyond a leaf.
func (q *Quad) ByID(id string) *Quad {
	return q.Root().byRelativeID(id)
}

func (q *Quad) byRelativeID(id string) *Quad {
	rel := make([]byte, 0, len(id))
	for i := 0; i < len(id); i++ {
		if id[i] == 'l' || id[i] == 'r' {
			rel = append(rel, id[i])
		}
	}
	if !q.Divided() && len(rel) == 0 {
		return nil
	}
	cur := q
	for _, c := range rel {
		if !cur.Divided() {
			return nil
		}
		if c == 'l' {
			cur = cur.Left()
		} else {
			cur = cur.Right()
		}
	}
	return cur
}

// Fail records a non-fatal diagnostic message on this quad.
func (q *Quad) Fail(msg string) { q.diag.Append(msg) }

// FailReset clears accumulated diagnostics.
func (q *Quad) FailReset() { q.diag.Reset() }

// Failures returns the accumulated diagnostic messages.
func (q *Quad) Failures() []string { return q.diag.Messages() }

// Diag exposes the diagnostics value itself.
func (q *Quad) Diag() *Diagnostics { return &q.diag }

func mod4(i int) int { return ((i % 4) + 4) % 4 }
