// Package render turns room-adjacency graphs into Graphviz drawings.
// Rooms keep their real floor-plan position: nodes are pinned at the room
// centroids and laid out with neato, so the drawing reads as a schematic
// of the actual plan rather than an abstract graph.
package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/quadplan/quadplan/pkg/graph"
	"github.com/quadplan/quadplan/pkg/quad"
)

// Options configures adjacency-graph rendering.
type Options struct {
	// Detailed includes the room type and area in node labels.
	// When false, only the path address is shown.
	Detailed bool

	// Scale multiplies plan coordinates into layout inches.
	// Zero means 0.5, which suits plans measured in metres.
	Scale float64
}

func (o Options) scale() float64 {
	if o.Scale == 0 {
		return 0.5
	}
	return o.Scale
}

// ToDOT converts a room-adjacency graph to Graphviz DOT. Node positions
// are pinned to the room centroids, and edge thickness follows the shared
// wall width. The result renders with [RenderSVG] or [RenderPNG].
func ToDOT(g *graph.Graph[*quad.Quad], opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodeID(nodes[i]) < nodeID(nodes[j]) })
	for _, n := range nodes {
		c := n.Centroid()
		s := opts.scale()
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(n, opts.Detailed)),
			fmt.Sprintf("pos=\"%.3f,%.3f!\"", c.X*s, c.Y*s),
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(n), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	edges := g.Edges()
	sort.Slice(edges, func(i, j int) bool {
		a := nodeID(edges[i].U) + " " + nodeID(edges[i].V)
		b := nodeID(edges[j].U) + " " + nodeID(edges[j].V)
		return a < b
	})
	for _, e := range edges {
		var attrs []string
		if v, ok := g.EdgeProperty(e.U, e.V, quad.PropWidth); ok {
			if w, ok := v.(float64); ok {
				attrs = append(attrs, fmt.Sprintf("penwidth=%.2f", penwidth(w)))
			}
		}
		fmt.Fprintf(&buf, "  %q -- %q", nodeID(e.U), nodeID(e.V))
		if len(attrs) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(attrs, ", "))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeID addresses a room across storeys: level prefix plus path id.
func nodeID(q *quad.Quad) string {
	return fmt.Sprintf("%d:%s", q.Level(), q.ID())
}

func fmtLabel(q *quad.Quad, detailed bool) string {
	id := q.ID()
	if id == "" {
		id = "plot"
	}
	if !detailed {
		return id
	}
	parts := []string{id}
	if t := q.Type(); t != "" {
		parts = append(parts, t)
	}
	parts = append(parts, fmt.Sprintf("%.1f m2", q.Area()))
	return strings.Join(parts, "\n")
}

// penwidth maps a wall width in metres to a stroke width in points,
// clamped so hairline overlaps stay visible and wide walls stay sane.
func penwidth(w float64) float64 {
	p := w
	if p < 0.5 {
		p = 0.5
	}
	if p > 8 {
		p = 8
	}
	return p
}
