// Package pkg provides the core libraries for Quadplan floor-plan analysis.
//
// # Overview
//
// Quadplan models architectural floor plans as binary space-partition trees:
// a rectangular plot is divided recursively into two parts until every leaf
// is a room. Storeys stack vertically on the same footprint, and the shared
// walls between rooms yield an adjacency graph used for doorway placement
// and circulation analysis.
//
// The typical data flow:
//
//	TOML plan definition
//	         ↓
//	    [plan] package (build the tree, snapshot it)
//	         ↓
//	    [quad] package (divide, stack, aggregate boundaries)
//	         ↓
//	    [graph] package (room adjacency graph)
//	         ↓
//	    [render] package (DOT → SVG/PNG via Graphviz)
//
// # Main Packages
//
// [geo] - Planar geometry primitives: points, lines, bearings, distances,
// and segment containment tests.
//
// [polygon] - Simple polygons with area, centroid, and point-in-polygon
// queries, used for room footprints.
//
// [quad] - The binary quad tree itself: division, rotation, vertical
// stacking, genetic-style operators (crossover, collapse, straighten), and
// boundary aggregation between rooms.
//
// [graph] - A small undirected graph container with edge properties,
// generic over any comparable node type.
//
// [plan] - TOML plan definitions, build orchestration, JSON snapshots, and
// graph export.
//
// [render] - DOT generation with pinned room positions and Graphviz
// rendering to SVG and PNG.
//
// # Infrastructure
//
// [pipeline] - The shared build → graph → render runner used by both the
// CLI and the HTTP server, with per-artifact caching.
//
// [cache] - Artifact caching keyed by snapshot hash, with file, Redis, and
// null backends.
//
// [store] - Plan persistence with file and MongoDB backends.
//
// [observability] - Optional hooks for pipeline and cache instrumentation.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Quick Start
//
// Build a plan and derive its adjacency graph:
//
//	def, _ := plan.Load("villa.toml")
//	root, _ := def.Build()
//	g := root.Graph(1.0)
//	for _, e := range g.Edges() {
//	    fmt.Println(e.U.ID(), "-", e.V.ID())
//	}
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...        # All tests
//	go test ./pkg/quad/...   # Specific package
//	go test -run Example     # Examples only
package pkg
