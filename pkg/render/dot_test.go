package render_test

import (
	"strings"
	"testing"

	"github.com/quadplan/quadplan/pkg/geo"
	"github.com/quadplan/quadplan/pkg/quad"
	"github.com/quadplan/quadplan/pkg/render"
)

func plot() *quad.Quad {
	q := quad.NewRoot([4]geo.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}, 0, 3)
	q.Divide(nil)
	q.Left().SetType("hall")
	return q
}

func TestToDOT(t *testing.T) {
	q := plot()
	dot := render.ToDOT(q.Graph(1), render.Options{})

	for _, want := range []string{
		"graph G {",
		"layout=neato;",
		`"0:l"`,
		`"0:r"`,
		`"0:l" -- "0:r"`,
		`pos="1.250,2.500!"`,
		"penwidth=8.00",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "->") {
		t.Error("DOT contains directed edges, want undirected")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := render.ToDOT(plot().Graph(1), render.Options{Detailed: true})
	if !strings.Contains(dot, "hall") {
		t.Errorf("detailed DOT missing room type:\n%s", dot)
	}
	if !strings.Contains(dot, "50.0 m2") {
		t.Errorf("detailed DOT missing room area:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	q := plot()
	q.Right().Divide(nil)
	g := q.Graph(1)
	first := render.ToDOT(g, render.Options{})
	for range 5 {
		if got := render.ToDOT(g, render.Options{}); got != first {
			t.Fatal("ToDOT output varies between calls")
		}
	}
}
