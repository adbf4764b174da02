package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/quadplan/quadplan/pkg/geo"
	"github.com/quadplan/quadplan/pkg/graph"
	"github.com/quadplan/quadplan/pkg/quad"
)

type graphDoc struct {
	Nodes []graphNode `json:"nodes"`
	Edges []graphEdge `json:"edges"`
}

type graphNode struct {
	ID       string     `json:"id"`
	Type     string     `json:"type,omitempty"`
	Area     float64    `json:"area"`
	Centroid [2]float64 `json:"centroid"`
}

type graphEdge struct {
	From        string        `json:"from"`
	To          string        `json:"to"`
	Weight      float64       `json:"weight"`
	Width       float64       `json:"width"`
	Coordinates [2][2]float64 `json:"coordinates"`
	Label       string        `json:"label,omitempty"`
}

// WriteGraphJSON encodes a room-adjacency graph as JSON and writes it to
// w. Nodes are addressed by quad path id and sorted, edges likewise, so
// the output is stable for a given plan.
func WriteGraphJSON(g *graph.Graph[*quad.Quad], w io.Writer) error {
	doc := graphDoc{Nodes: []graphNode{}, Edges: []graphEdge{}}

	for _, n := range g.Nodes() {
		c := n.Centroid()
		doc.Nodes = append(doc.Nodes, graphNode{
			ID:       addr(n),
			Type:     n.Type(),
			Area:     n.Area(),
			Centroid: [2]float64{c.X, c.Y},
		})
	}
	sort.Slice(doc.Nodes, func(i, j int) bool { return doc.Nodes[i].ID < doc.Nodes[j].ID })

	for _, e := range g.Edges() {
		from, to := addr(e.U), addr(e.V)
		if to < from {
			from, to = to, from
			e.U, e.V = e.V, e.U
		}
		ge := graphEdge{From: from, To: to}
		if v, ok := g.EdgeProperty(e.U, e.V, quad.PropWeight); ok {
			ge.Weight, _ = v.(float64)
		}
		if v, ok := g.EdgeProperty(e.U, e.V, quad.PropWidth); ok {
			ge.Width, _ = v.(float64)
		}
		if v, ok := g.EdgeProperty(e.U, e.V, quad.PropCoordinates); ok {
			if seg, ok := v.([2]geo.Point); ok {
				ge.Coordinates = [2][2]float64{
					{seg[0].X, seg[0].Y},
					{seg[1].X, seg[1].Y},
				}
			}
		}
		if v, ok := g.EdgeProperty(e.U, e.V, quad.PropLabel); ok {
			ge.Label, _ = v.(string)
		}
		doc.Edges = append(doc.Edges, ge)
	}
	sort.Slice(doc.Edges, func(i, j int) bool {
		if doc.Edges[i].From != doc.Edges[j].From {
			return doc.Edges[i].From < doc.Edges[j].From
		}
		return doc.Edges[i].To < doc.Edges[j].To
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// ExportGraphJSON writes a room-adjacency graph to a JSON file at path.
func ExportGraphJSON(g *graph.Graph[*quad.Quad], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraphJSON(g, f)
}

// addr gives a quad a graph-wide address: its path id prefixed by its
// storey level, so rooms on different storeys never collide.
func addr(q *quad.Quad) string {
	return fmt.Sprintf("%d:%s", q.Level(), q.ID())
}
