package quad

import (
	"github.com/quadplan/quadplan/pkg/geo"
	"github.com/quadplan/quadplan/pkg/graph"
)

// Edge property keys used by [Quad.Graph].
const (
	PropWeight      = "weight"      // centroid distance between the two rooms
	PropCoordinates = "coordinates" // [2]geo.Point bounding the shared segment
	PropWidth       = "width"       // overlap length along the boundary
	PropLabel       = "label"       // free-form label, initially ""
)

// CalcBoundaries groups this tree's leaves by the boundary each of their
// edges lies on: one Boundary per branch id plus the four outer ids.
// Boundaries are computed fresh on every call and are not kept in sync
// with later tree mutations; recompute after any structural change.
func (q *Quad) CalcBoundaries() map[string]*Boundary {
	boundaries := make(map[string]*Boundary)
	for _, br := range q.Branches() {
		boundaries[br.ID()] = &Boundary{}
	}
	for _, id := range OuterIDs {
		boundaries[id] = &Boundary{}
	}
	for _, leaf := range q.Leafs() {
		for edge := range 4 {
			boundaries[leaf.BoundaryID(edge)].AddEdge(leaf, edge)
		}
	}
	return boundaries
}

// Graph builds the circulation graph of this tree: an undirected graph
// whose nodes are leaf quads and whose edges join leaves sharing a wall
// segment at least threshold long. This topology is completely different
// from the binary tree of the structure. Each edge carries the centroid
// distance as weight, the shared-segment endpoints, the overlap width,
// and an empty label.
func (q *Quad) Graph(threshold float64) *graph.Graph[*Quad] {
	g := graph.New[*Quad]()
	for _, leaf := range q.Leafs() {
		g.AddNode(leaf, nil)
	}
	for _, boundary := range q.CalcBoundaries() {
		for _, pair := range boundary.Pairs() {
			qa, qb := pair[0], pair[1]
			overlap := boundary.Overlap(qa, qb)
			if overlap < threshold {
				continue
			}
			c0, c1, ok := boundary.Coordinates(qa, qb)
			if !ok {
				continue
			}
			g.AddEdge(qa, qb, graph.Properties{
				PropWeight:      geo.Distance(qa.Centroid(), qb.Centroid()),
				PropCoordinates: [2]geo.Point{c0, c1},
				PropWidth:       overlap,
				PropLabel:       "",
			})
		}
	}
	return g
}

// CornersInUse returns the smallest consecutive run of corner indices that
// covers every wall this quad shares with the given neighbours in the
// graph, i.e. the corners where a stair cannot go. Indices wrap mod 4;
// when no shorter run covers the shared walls, all four corners are in
// use.
func (q *Quad) CornersInUse(g *graph.Graph[*Quad], neighbours []*Quad) []int {
	walls := make([][2]geo.Point, 0, len(neighbours))
	for _, n := range neighbours {
		v, ok := g.EdgeProperty(q, n, PropCoordinates)
		if !ok {
			continue
		}
		if w, ok := v.([2]geo.Point); ok {
			walls = append(walls, w)
		}
	}

	var corners [4]geo.Point
	for i := range corners {
		corners[i] = q.Coordinate(i)
	}

	onWall := func(i int, wall [2]geo.Point) bool {
		return geo.IsBetween(corners[mod4(i)], wall[0], wall[1])
	}
	// covered reports whether every wall touches the run of n corners
	// starting at i: a wall counts when one of the run's corners lies on
	// it, or one of its endpoints lies between consecutive run corners.
	covered := func(i, n int) bool {
		for _, wall := range walls {
			hit := false
			for k := 0; k < n && !hit; k++ {
				hit = onWall(i+k, wall)
			}
			for k := 0; k+1 < n && !hit; k++ {
				a, b := corners[mod4(i+k)], corners[mod4(i+k+1)]
				hit = geo.IsBetween(wall[0], a, b) || geo.IsBetween(wall[1], a, b)
			}
			if !hit {
				return false
			}
		}
		return true
	}

	for n := 1; n <= 3; n++ {
		for i := range 4 {
			if covered(i, n) {
				run := make([]int, n)
				for k := range run {
					run[k] = mod4(i + k)
				}
				return run
			}
		}
	}
	return []int{0, 1, 2, 3}
}
