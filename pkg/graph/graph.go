// Package graph provides a small undirected graph container with attribute
// maps on nodes and edges. It backs the room-adjacency graph derived from a
// quad tree, but is generic over any comparable node type.
//
// All operations are total: adding an existing node or edge is a no-op
// (edge properties are merged rather than replaced), and queries on unknown
// nodes return zero values. The container is not safe for concurrent use
// without external synchronization.
package graph

import (
	"maps"
	"sort"
)

// Properties stores arbitrary key-value pairs attached to an edge.
type Properties map[string]any

// Edge is an unordered pair of nodes. Edges are stored once per pair;
// (u, v) and (v, u) address the same edge.
type Edge[N comparable] struct {
	U, V N
}

// Graph is an undirected graph over nodes of type N.
// The zero value is not usable - use [New].
type Graph[N comparable] struct {
	neighbors map[N]map[N]struct{}
	attrs     map[N][]string
	props     map[Edge[N]]Properties
	edges     []Edge[N]
}

// New creates an empty graph.
func New[N comparable]() *Graph[N] {
	return &Graph[N]{
		neighbors: make(map[N]map[N]struct{}),
		attrs:     make(map[N][]string),
		props:     make(map[Edge[N]]Properties),
	}
}

// AddNode declares a node with an optional attribute list.
// Adding a node that already exists is a no-op; the original attributes are
// kept.
func (g *Graph[N]) AddNode(n N, attrs []string) {
	if _, ok := g.neighbors[n]; ok {
		return
	}
	g.neighbors[n] = make(map[N]struct{})
	g.attrs[n] = attrs
}

// HasNode reports whether n has been added to the graph.
func (g *Graph[N]) HasNode(n N) bool {
	_, ok := g.neighbors[n]
	return ok
}

// NodeAttrs returns the attribute list given to [Graph.AddNode], or nil.
func (g *Graph[N]) NodeAttrs(n N) []string { return g.attrs[n] }

// AddEdge connects u and v, declaring either endpoint as a node if needed,
// and merges props into the edge's property map. Repeated calls for the
// same unordered pair update properties without duplicating the edge.
// A self-edge produces a single neighbor link.
func (g *Graph[N]) AddEdge(u, v N, props Properties) {
	g.AddNode(u, nil)
	g.AddNode(v, nil)

	if !g.HasEdge(u, v) {
		g.neighbors[u][v] = struct{}{}
		if u != v {
			g.neighbors[v][u] = struct{}{}
		}
		g.edges = append(g.edges, Edge[N]{U: u, V: v})
	}
	g.mergeProps(u, v, props)
}

func (g *Graph[N]) mergeProps(u, v N, props Properties) {
	if props == nil {
		return
	}
	for _, e := range []Edge[N]{{U: u, V: v}, {U: v, V: u}} {
		p, ok := g.props[e]
		if !ok {
			p = make(Properties, len(props))
			g.props[e] = p
		}
		maps.Copy(p, props)
		if u == v {
			break
		}
	}
}

// HasEdge reports whether u and v are connected.
func (g *Graph[N]) HasEdge(u, v N) bool {
	_, ok := g.neighbors[u][v]
	return ok
}

// Neighbors returns the set of nodes adjacent to n.
func (g *Graph[N]) Neighbors(n N) []N {
	out := make([]N, 0, len(g.neighbors[n]))
	for m := range g.neighbors[n] {
		out = append(out, m)
	}
	return out
}

// Degree returns the number of neighbors of n.
func (g *Graph[N]) Degree(n N) int { return len(g.neighbors[n]) }

// EdgeProperty returns the value stored under key for the edge u-v.
// ok is false when the edge does not exist or the key is absent.
func (g *Graph[N]) EdgeProperty(u, v N, key string) (any, bool) {
	p, ok := g.props[Edge[N]{U: u, V: v}]
	if !ok {
		return nil, false
	}
	val, ok := p[key]
	return val, ok
}

// EdgeProperties returns the property map for the edge u-v, or nil.
// The returned map is live; modifications affect the graph.
func (g *Graph[N]) EdgeProperties(u, v N) Properties {
	return g.props[Edge[N]{U: u, V: v}]
}

// Nodes returns all nodes. The order is not guaranteed.
func (g *Graph[N]) Nodes() []N {
	out := make([]N, 0, len(g.neighbors))
	for n := range g.neighbors {
		out = append(out, n)
	}
	return out
}

// Edges returns all edges in insertion order, one entry per unordered pair.
func (g *Graph[N]) Edges() []Edge[N] {
	out := make([]Edge[N], len(g.edges))
	copy(out, g.edges)
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph[N]) NodeCount() int { return len(g.neighbors) }

// EdgeCount returns the number of distinct unordered edges.
func (g *Graph[N]) EdgeCount() int { return len(g.edges) }

// Clone returns a new graph with the same edges and copied property maps.
// Node attribute slices are shared with the original.
func (g *Graph[N]) Clone() *Graph[N] {
	out := New[N]()
	for n, attrs := range g.attrs {
		out.AddNode(n, attrs)
	}
	for _, e := range g.edges {
		out.AddEdge(e.U, e.V, g.props[e])
	}
	return out
}

// AveragePathLength returns the mean of the "weight" property over all edges
// incident to n. Edges without a numeric weight count as zero. Returns 0
// for an isolated or unknown node.
func (g *Graph[N]) AveragePathLength(n N) float64 {
	nbrs := g.neighbors[n]
	if len(nbrs) == 0 {
		return 0
	}
	var sum float64
	for m := range nbrs {
		if w, ok := g.EdgeProperty(n, m, "weight"); ok {
			if f, ok := w.(float64); ok {
				sum += f
			}
		}
	}
	return sum / float64(len(nbrs))
}

// SortedByAPL returns all nodes ordered by ascending average path length.
// Ties keep a deterministic relative order for a given graph state.
func (g *Graph[N]) SortedByAPL() []N {
	nodes := g.Nodes()
	sort.SliceStable(nodes, func(i, j int) bool {
		return g.AveragePathLength(nodes[i]) < g.AveragePathLength(nodes[j])
	})
	return nodes
}
