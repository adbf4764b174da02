package graph

import (
	"slices"
	"testing"
)

func TestAddNodeIdempotent(t *testing.T) {
	g := New[string]()
	g.AddNode("a", []string{"kitchen"})
	g.AddNode("a", []string{"bathroom"})

	if got := g.NodeCount(); got != 1 {
		t.Errorf("NodeCount() = %d, want 1", got)
	}
	if got := g.NodeAttrs("a"); len(got) != 1 || got[0] != "kitchen" {
		t.Errorf("NodeAttrs() = %v, want original attrs kept", got)
	}
}

func TestAddEdge(t *testing.T) {
	g := New[string]()
	g.AddEdge("a", "b", Properties{"weight": 2.0})

	if !g.HasEdge("a", "b") || !g.HasEdge("b", "a") {
		t.Error("edge not visible from both directions")
	}
	if got := g.NodeCount(); got != 2 {
		t.Errorf("NodeCount() = %d, want 2 (implicit nodes)", got)
	}
	if got := g.EdgeCount(); got != 1 {
		t.Errorf("EdgeCount() = %d, want 1", got)
	}
}

func TestAddEdgeMergesProperties(t *testing.T) {
	g := New[string]()
	g.AddEdge("a", "b", Properties{"weight": 2.0, "label": ""})
	g.AddEdge("b", "a", Properties{"weight": 3.0, "width": 1.5})

	if got := g.EdgeCount(); got != 1 {
		t.Fatalf("EdgeCount() = %d, want 1 (unordered pair)", got)
	}
	if w, _ := g.EdgeProperty("a", "b", "weight"); w != 3.0 {
		t.Errorf("weight = %v, want 3.0 (updated)", w)
	}
	if l, ok := g.EdgeProperty("a", "b", "label"); !ok || l != "" {
		t.Errorf("label = %v, %v, want \"\" kept after merge", l, ok)
	}
	// Properties readable under the reversed key too.
	if w, _ := g.EdgeProperty("b", "a", "width"); w != 1.5 {
		t.Errorf("reversed width = %v, want 1.5", w)
	}
}

func TestSelfEdge(t *testing.T) {
	g := New[string]()
	g.AddEdge("a", "a", Properties{"weight": 1.0})

	if got := g.Degree("a"); got != 1 {
		t.Errorf("Degree(self-edge) = %d, want 1", got)
	}
	if got := g.EdgeCount(); got != 1 {
		t.Errorf("EdgeCount() = %d, want 1", got)
	}
}

func TestNeighbors(t *testing.T) {
	g := New[string]()
	g.AddEdge("a", "b", nil)
	g.AddEdge("a", "c", nil)

	got := g.Neighbors("a")
	slices.Sort(got)
	if !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("Neighbors(a) = %v, want [b c]", got)
	}
	if got := g.Neighbors("missing"); len(got) != 0 {
		t.Errorf("Neighbors(missing) = %v, want empty", got)
	}
}

func TestEdgePropertyMissing(t *testing.T) {
	g := New[string]()
	g.AddEdge("a", "b", Properties{"weight": 1.0})

	if _, ok := g.EdgeProperty("a", "c", "weight"); ok {
		t.Error("EdgeProperty(missing edge) ok = true, want false")
	}
	if _, ok := g.EdgeProperty("a", "b", "nope"); ok {
		t.Error("EdgeProperty(missing key) ok = true, want false")
	}
}

func TestClone(t *testing.T) {
	g := New[string]()
	g.AddEdge("a", "b", Properties{"weight": 2.0})
	c := g.Clone()

	c.AddEdge("a", "b", Properties{"weight": 9.0})
	if w, _ := g.EdgeProperty("a", "b", "weight"); w != 2.0 {
		t.Errorf("original weight = %v after clone mutation, want 2.0", w)
	}
	if got := c.EdgeCount(); got != 1 {
		t.Errorf("clone EdgeCount() = %d, want 1", got)
	}
}

func TestAveragePathLength(t *testing.T) {
	g := New[string]()
	g.AddEdge("hall", "kitchen", Properties{"weight": 2.0})
	g.AddEdge("hall", "lounge", Properties{"weight": 4.0})

	if got := g.AveragePathLength("hall"); got != 3.0 {
		t.Errorf("AveragePathLength(hall) = %v, want 3.0", got)
	}
	if got := g.AveragePathLength("isolated"); got != 0 {
		t.Errorf("AveragePathLength(isolated) = %v, want 0", got)
	}
}

func TestSortedByAPL(t *testing.T) {
	g := New[string]()
	g.AddEdge("a", "b", Properties{"weight": 10.0})
	g.AddEdge("b", "c", Properties{"weight": 1.0})

	got := g.SortedByAPL()
	// c has APL 1, b has APL 5.5, a has APL 10.
	want := []string{"c", "b", "a"}
	if !slices.Equal(got, want) {
		t.Errorf("SortedByAPL() = %v, want %v", got, want)
	}
}
