package quad_test

import (
	"fmt"

	"github.com/quadplan/quadplan/pkg/geo"
	"github.com/quadplan/quadplan/pkg/quad"
)

func ExampleQuad_divide() {
	// A 10x10 plot split into a narrow hall and a larger room.
	plot := quad.NewRoot([4]geo.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}, 0, 3)
	plot.Divide([]float64{0.3, 0.3})
	plot.Left().SetType("hall")
	plot.Right().SetType("room")

	for _, leaf := range plot.Leafs() {
		fmt.Printf("%s %s area=%.0f\n", leaf.ID(), leaf.Type(), leaf.Area())
	}
	// Output:
	// l hall area=30
	// r room area=70
}

func ExampleQuad_Graph() {
	// Two rooms sharing a full-height wall become neighbours in the
	// adjacency graph.
	plot := quad.NewRoot([4]geo.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
	}, 0, 3)
	plot.Divide(nil)

	g := plot.Graph(1.0)
	fmt.Println("Rooms:", g.NodeCount())
	fmt.Println("Doorway candidates:", g.EdgeCount())

	width, _ := g.EdgeProperty(plot.Left(), plot.Right(), quad.PropWidth)
	fmt.Printf("Shared wall: %.0f\n", width)
	// Output:
	// Rooms: 2
	// Doorway candidates: 1
	// Shared wall: 10
}

func ExampleQuad_stack() {
	// Stack a second storey on the plot and read its derived elevation.
	plot := quad.NewRoot([4]geo.Point{
		{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 8, Y: 8}, {X: 0, Y: 8},
	}, 0, 3)
	plot.AddAbove()

	upper := plot.Above()
	fmt.Println("Levels:", upper.Level()+1)
	fmt.Printf("Upper floor at %.0fm\n", upper.Elevation())
	// Output:
	// Levels: 2
	// Upper floor at 3m
}
