package plan_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/quadplan/quadplan/pkg/geo"
	"github.com/quadplan/quadplan/pkg/plan"
	"github.com/quadplan/quadplan/pkg/quad"
)

func TestWriteGraphJSON(t *testing.T) {
	root := quad.NewRoot([4]geo.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}, 0, 3)
	root.Divide(nil)
	root.Left().SetType("hall")

	var buf bytes.Buffer
	if err := plan.WriteGraphJSON(root.Graph(1), &buf); err != nil {
		t.Fatalf("WriteGraphJSON: %v", err)
	}

	var doc struct {
		Nodes []struct {
			ID       string     `json:"id"`
			Type     string     `json:"type"`
			Area     float64    `json:"area"`
			Centroid [2]float64 `json:"centroid"`
		} `json:"nodes"`
		Edges []struct {
			From   string  `json:"from"`
			To     string  `json:"to"`
			Weight float64 `json:"weight"`
			Width  float64 `json:"width"`
		} `json:"edges"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := len(doc.Nodes); got != 2 {
		t.Fatalf("nodes = %d, want 2", got)
	}
	// Sorted by address, so the left room comes first.
	if got, want := doc.Nodes[0].ID, "0:l"; got != want {
		t.Errorf("first node id = %q, want %q", got, want)
	}
	if got, want := doc.Nodes[0].Type, "hall"; got != want {
		t.Errorf("first node type = %q, want %q", got, want)
	}
	if doc.Nodes[0].Area != 50 {
		t.Errorf("first node area = %g, want 50", doc.Nodes[0].Area)
	}
	if got := len(doc.Edges); got != 1 {
		t.Fatalf("edges = %d, want 1", got)
	}
	e := doc.Edges[0]
	if e.From != "0:l" || e.To != "0:r" {
		t.Errorf("edge = %s-%s, want 0:l-0:r", e.From, e.To)
	}
	if e.Weight != 5 || e.Width != 10 {
		t.Errorf("edge weight/width = %g/%g, want 5/10", e.Weight, e.Width)
	}
}

func TestWriteGraphJSONEmpty(t *testing.T) {
	root := quad.NewRoot([4]geo.Point{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}, 0, 3)

	var buf bytes.Buffer
	if err := plan.WriteGraphJSON(root.Graph(1), &buf); err != nil {
		t.Fatalf("WriteGraphJSON: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Empty arrays serialize as [], never null.
	if string(doc["edges"]) != "[]" {
		t.Errorf("edges = %s, want []", doc["edges"])
	}
}
