package quad

import (
	"math"
	"sort"

	"github.com/quadplan/quadplan/pkg/geo"
)

// Outer boundary ids for the four edges of a root quad.
// Interior boundaries are identified by the id of the branch whose
// division produced them.
const (
	OuterA = "a"
	OuterB = "b"
	OuterC = "c"
	OuterD = "d"
)

// OuterIDs lists the four outer boundary ids in edge order.
var OuterIDs = [4]string{OuterA, OuterB, OuterC, OuterD}

// BoundaryID resolves which boundary the given edge of this quad lies on.
// The walk goes upward: a left child's edge 1 and a right child's edge 3
// lie on the parent's own division line, so the answer is the parent's id;
// any other edge continues one level up. At the root the four outer ids
// apply. The edge index is taken after rotation, like [Quad.Coordinate].
func (q *Quad) BoundaryID(edge int) string {
	idx := mod4(edge + q.Rotation())
	if q.parent == nil {
		return OuterIDs[idx]
	}
	if q.Position() == "l" && idx == 1 {
		return q.parent.ID()
	}
	if q.Position() == "r" && idx == 3 {
		return q.parent.ID()
	}
	return q.parent.BoundaryID(idx)
}

// Attachment records that one edge of a leaf quad lies on a boundary.
type Attachment struct {
	Quad *Quad
	Edge int
}

// Boundary is the set of leaf quads abutting one straight division line or
// one outer wall, from either or both sides, in no particular order.
// Boundaries are built fresh by [Quad.CalcBoundaries] and become stale on
// any structural change to the tree.
type Boundary struct {
	attachments []Attachment
}

// AddEdge attaches a quad to this boundary, recording which of its edges
// (0..3) lies on it.
func (b *Boundary) AddEdge(q *Quad, edge int) {
	b.attachments = append(b.attachments, Attachment{Quad: q, Edge: edge})
}

// Attachments returns the attachment list.
func (b *Boundary) Attachments() []Attachment { return b.attachments }

// Len returns the number of attachments.
func (b *Boundary) Len() int { return len(b.attachments) }

// ID returns the boundary id shared by all attachments, resolved through
// the first one, or "" for an empty boundary.
func (b *Boundary) ID() string {
	if len(b.attachments) == 0 {
		return ""
	}
	a := b.attachments[0]
	return a.Quad.BoundaryID(a.Edge)
}

// IsValid reports whether every attachment resolves to the same boundary
// id. A false result means the tree changed after the boundary was built.
func (b *Boundary) IsValid() bool {
	id := b.ID()
	for _, a := range b.attachments {
		if a.Quad.BoundaryID(a.Edge) != id {
			return false
		}
	}
	return true
}

// TotalLength returns the full length of the underlying division line,
// looked up on the branch quad that owns it. Zero for outer boundaries
// and empty boundaries.
func (b *Boundary) TotalLength() float64 {
	if len(b.attachments) == 0 {
		return 0
	}
	owner := b.attachments[0].Quad.ByID(b.ID())
	if owner == nil || !owner.Divided() {
		return 0
	}
	return geo.Distance(owner.CoordinateA(), owner.CoordinateB())
}

// findEdges locates the recorded edge index for each of the two quads.
func (b *Boundary) findEdges(qa, qb *Quad) (ea, eb int, okA, okB bool) {
	for _, a := range b.attachments {
		if a.Quad == qa {
			ea, okA = a.Edge, true
		}
		if a.Quad == qb {
			eb, okB = a.Edge, true
		}
	}
	return ea, eb, okA, okB
}

// Overlap returns the length of boundary shared by two attached quads.
//
// The maximum pairwise distance among the four endpoint combinations of
// the two edges is the total span both edges cover laid end to end. A span
// no longer than either single edge means the shorter edge is contained in
// the longer, and the overlap is the shorter edge's length; otherwise the
// edges overlap by lenA + lenB - span. Returns 0 when either quad is not
// attached here, or when its own boundary id for the recorded edge
// disagrees with this boundary's id; values never go below 0.
func (b *Boundary) Overlap(qa, qb *Quad) float64 {
	ea, eb, okA, okB := b.findEdges(qa, qb)
	if !okA || !okB {
		return 0
	}
	id := b.ID()
	if qa.BoundaryID(ea) != id || qb.BoundaryID(eb) != id {
		return 0
	}

	la := qa.Length(ea)
	lb := qb.Length(eb)
	ca0, ca1 := qa.Coordinate(ea), qa.Coordinate(ea+1)
	cb0, cb1 := qb.Coordinate(eb), qb.Coordinate(eb+1)

	span := math.Max(
		math.Max(geo.Distance(ca0, cb0), geo.Distance(ca0, cb1)),
		math.Max(geo.Distance(ca1, cb0), geo.Distance(ca1, cb1)),
	)

	if span <= lb {
		return la
	}
	if span <= la {
		return lb
	}
	return math.Max(la+lb-span, 0)
}

// Coordinates returns the two points bounding the segment shared by two
// overlapping quads. The endpoint pair achieving the maximum span leaves
// the two remaining endpoints as the shared segment; containment falls
// back to the smaller edge's own endpoints. The two points are ordered by
// comparing the segment's bearing against the bearing between the quads'
// centroids, so direction is stable for a given pair. ok is false when the
// quads are not attached, disagree on the boundary id, or do not overlap.
func (b *Boundary) Coordinates(qa, qb *Quad) (c0, c1 geo.Point, ok bool) {
	ea, eb, okA, okB := b.findEdges(qa, qb)
	if !okA || !okB {
		return geo.Point{}, geo.Point{}, false
	}
	id := b.ID()
	if qa.BoundaryID(ea) != id || qb.BoundaryID(eb) != id {
		return geo.Point{}, geo.Point{}, false
	}
	if b.Overlap(qa, qb) <= 0 {
		return geo.Point{}, geo.Point{}, false
	}

	la := qa.Length(ea)
	lb := qb.Length(eb)
	ca0, ca1 := qa.Coordinate(ea), qa.Coordinate(ea+1)
	cb0, cb1 := qb.Coordinate(eb), qb.Coordinate(eb+1)

	// The endpoints not part of the max-span pair bound the shared segment.
	span := geo.Distance(ca0, cb0)
	selA, selB := ea+1, eb+1
	srcA, srcB := qa, qb

	if d := geo.Distance(ca0, cb1); d > span {
		span, selA, selB = d, ea+1, eb
	}
	if d := geo.Distance(ca1, cb0); d > span {
		span, selA, selB = d, ea, eb+1
	}
	if d := geo.Distance(ca1, cb1); d > span {
		span, selA, selB = d, ea, eb
	}

	// Full containment: the smaller edge is the shared segment itself.
	if span < lb {
		selA, selB = ea, ea+1
		srcB = qa
	}
	if span < la {
		selA, selB = eb, eb+1
		srcA = qb
	}

	c0 = srcA.Coordinate(selA)
	c1 = srcB.Coordinate(selB)

	radQuads := geo.Angle(qa.Centroid(), qb.Centroid())
	radEdge := geo.Angle(c1, c0)
	if radEdge-radQuads > math.Pi {
		return c0, c1, true
	}
	return c1, c0, true
}

// BearingBetween returns the bearing in radians along the wall between
// two attached quads, directed so qa lies on its left: subtract π/2 for
// the direction the wall faces seen from qa. ok is false when the quads
// share no segment.
func (b *Boundary) BearingBetween(qa, qb *Quad) (float64, bool) {
	c0, c1, ok := b.Coordinates(qa, qb)
	if !ok {
		return 0, false
	}
	centroid := qa.Centroid()
	angle := math.Mod(geo.Angle(centroid, c0)-geo.Angle(centroid, c1)+4*math.Pi, 2*math.Pi)
	wall := math.Mod(geo.Angle(c0, c1)+4*math.Pi, 2*math.Pi)
	if angle < math.Pi/2 {
		wall = math.Mod(geo.Angle(c1, c0)+4*math.Pi, 2*math.Pi)
	}
	return wall, true
}

// Middle returns the midpoint of the segment shared by two attached
// quads, half way up qa's storey. ok is false when the quads share no
// segment.
func (b *Boundary) Middle(qa, qb *Quad) (geo.Point, float64, bool) {
	c0, c1, ok := b.Coordinates(qa, qb)
	if !ok {
		return geo.Point{}, 0, false
	}
	return geo.Midpoint(c0, c1), qa.Elevation() + 0.5*qa.Height(), true
}

// Pairs returns every combination of two attached quads with a positive
// overlap on this boundary. The enumeration is O(n²) in the number of
// attachments, which stays small for real floor plans.
func (b *Boundary) Pairs() [][2]*Quad {
	var pairs [][2]*Quad
	for i := 0; i < len(b.attachments)-1; i++ {
		qa := b.attachments[i].Quad
		for j := i + 1; j < len(b.attachments); j++ {
			qb := b.attachments[j].Quad
			if b.Overlap(qa, qb) > 0 {
				pairs = append(pairs, [2]*Quad{qa, qb})
			}
		}
	}
	return pairs
}

// PairsByLength returns [Boundary.Pairs] sorted ascending by overlap.
func (b *Boundary) PairsByLength() [][2]*Quad {
	pairs := b.Pairs()
	sort.SliceStable(pairs, func(i, j int) bool {
		return b.Overlap(pairs[i][0], pairs[i][1]) < b.Overlap(pairs[j][0], pairs[j][1])
	})
	return pairs
}
