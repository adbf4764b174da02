package quad_test

import (
	"math"
	"testing"

	"github.com/quadplan/quadplan/pkg/geo"
	"github.com/quadplan/quadplan/pkg/quad"
)

// square returns a 10x10 root at elevation 0 with the default height,
// corners anticlockwise from the origin.
func square() *quad.Quad {
	return quad.NewRoot([4]geo.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}, 0, quad.DefaultHeight)
}

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func pointAlmost(a, b geo.Point) bool { return almost(a.X, b.X) && almost(a.Y, b.Y) }

func TestNewRootCoordinates(t *testing.T) {
	q := square()
	want := [4]geo.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	for i, w := range want {
		if got := q.Coordinate(i); !pointAlmost(got, w) {
			t.Errorf("Coordinate(%d) = %v, want %v", i, got, w)
		}
	}
	if got := q.Area(); !almost(got, 100) {
		t.Errorf("Area() = %g, want 100", got)
	}
	if got := q.Centroid(); !pointAlmost(got, geo.Point{X: 5, Y: 5}) {
		t.Errorf("Centroid() = %v, want (5,5)", got)
	}
}

func TestDivideCoordinates(t *testing.T) {
	q := square()
	if !q.Divide(nil) {
		t.Fatal("Divide(nil) = false, want true")
	}
	if got, want := q.CoordinateA(), (geo.Point{X: 5, Y: 0}); !pointAlmost(got, want) {
		t.Errorf("CoordinateA() = %v, want %v", got, want)
	}
	if got, want := q.CoordinateB(), (geo.Point{X: 5, Y: 10}); !pointAlmost(got, want) {
		t.Errorf("CoordinateB() = %v, want %v", got, want)
	}

	left := q.Left()
	wantLeft := [4]geo.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 10}, {X: 0, Y: 10}}
	for i, w := range wantLeft {
		if got := left.Coordinate(i); !pointAlmost(got, w) {
			t.Errorf("left.Coordinate(%d) = %v, want %v", i, got, w)
		}
	}
	if got := left.Area(); !almost(got, 50) {
		t.Errorf("left.Area() = %g, want 50", got)
	}
	if got := q.Right().Area(); !almost(got, 50) {
		t.Errorf("right.Area() = %g, want 50", got)
	}
	if got, want := left.ID(), "l"; got != want {
		t.Errorf("left.ID() = %q, want %q", got, want)
	}
	if got, want := q.Right().ID(), "r"; got != want {
		t.Errorf("right.ID() = %q, want %q", got, want)
	}
}

func TestDivideRatios(t *testing.T) {
	q := square()
	q.Divide([]float64{0.3, 0.3})
	if got, want := q.CoordinateA(), (geo.Point{X: 3, Y: 0}); !pointAlmost(got, want) {
		t.Errorf("CoordinateA() = %v, want %v", got, want)
	}
	if got := q.Left().Area(); !almost(got, 30) {
		t.Errorf("left.Area() = %g, want 30", got)
	}
}

func TestDivideTwice(t *testing.T) {
	q := square()
	q.Divide(nil)
	left := q.Left()
	if q.Divide([]float64{0.2, 0.2}) {
		t.Error("second Divide = true, want false")
	}
	if q.Left() != left {
		t.Error("second Divide replaced the children")
	}
	if got := q.Division(); got[0] != 0.2 || got[1] != 0.2 {
		t.Errorf("Division() = %v, want [0.2 0.2]", got)
	}
}

func TestUndivide(t *testing.T) {
	q := square()
	if q.Undivide() {
		t.Error("Undivide on leaf = true, want false")
	}
	q.Divide(nil)
	q.Left().Divide(nil)
	if !q.Undivide() {
		t.Fatal("Undivide = false, want true")
	}
	if q.Divided() {
		t.Error("Divided() = true after Undivide")
	}
	if q.Left() != nil {
		t.Error("Left() != nil after Undivide")
	}
}

func TestRotation(t *testing.T) {
	q := square()
	q.SetRotation(5)
	if got := q.Rotation(); got != 1 {
		t.Fatalf("Rotation() after SetRotation(5) = %d, want 1", got)
	}
	if got, want := q.Coordinate(0), (geo.Point{X: 10, Y: 0}); !pointAlmost(got, want) {
		t.Errorf("Coordinate(0) at rotation 1 = %v, want %v", got, want)
	}
	before := q.Coordinate(0)
	for range 4 {
		q.Rotate()
	}
	if got := q.Rotation(); got != 1 {
		t.Errorf("Rotation() after four turns = %d, want 1", got)
	}
	if got := q.Coordinate(0); !pointAlmost(got, before) {
		t.Errorf("Coordinate(0) after four turns = %v, want %v", got, before)
	}
	q.Unrotate()
	if got := q.Rotation(); got != 0 {
		t.Errorf("Rotation() after Unrotate = %d, want 0", got)
	}
	q.SetRotation(-1)
	if got := q.Rotation(); got != 3 {
		t.Errorf("Rotation() after SetRotation(-1) = %d, want 3", got)
	}
}

func TestSwap(t *testing.T) {
	q := square()
	if q.Swap() {
		t.Error("Swap on leaf = true, want false")
	}
	q.Divide(nil)
	wasRight := q.Right()
	if !q.Swap() {
		t.Fatal("Swap = false, want true")
	}
	if q.Left() != wasRight {
		t.Error("Left() is not the former right child")
	}
	if got, want := q.Left().ID(), "l"; got != want {
		t.Errorf("swapped child ID() = %q, want %q", got, want)
	}
	if got, want := q.Left().Coordinate(0), (geo.Point{X: 0, Y: 0}); !pointAlmost(got, want) {
		t.Errorf("swapped child Coordinate(0) = %v, want %v", got, want)
	}
}

func TestIDAndByID(t *testing.T) {
	q := square()
	if q.ByID("") != nil {
		t.Error("ByID(\"\") on undivided root != nil")
	}
	q.Divide(nil)
	q.Left().Divide(nil)

	for _, tt := range []struct {
		id   string
		want *quad.Quad
	}{
		{"", q},
		{"l", q.Left()},
		{"r", q.Right()},
		{"ll", q.Left().Left()},
		{"lr", q.Left().Right()},
	} {
		if got := q.ByID(tt.id); got != tt.want {
			t.Errorf("ByID(%q) = %v, want %v", tt.id, got, tt.want)
		}
		if tt.want != nil && tt.want.ID() != tt.id {
			t.Errorf("ID() = %q, want %q", tt.want.ID(), tt.id)
		}
	}
	if got := q.ByID("rl"); got != nil {
		t.Errorf("ByID beyond a leaf = %v, want nil", got)
	}
	// Resolution works from any node of the tree, not just the root.
	if got := q.Left().Left().ByID("r"); got != q.Right() {
		t.Errorf("ByID from a leaf = %v, want the right child", got)
	}
}

func TestTraversal(t *testing.T) {
	q := square()
	q.Divide(nil)
	q.Left().Divide(nil)

	if got := len(q.Leafs()); got != 3 {
		t.Errorf("len(Leafs()) = %d, want 3", got)
	}
	if got := len(q.Branches()); got != 2 {
		t.Errorf("len(Branches()) = %d, want 2", got)
	}
	if got := len(q.Children()); got != 5 {
		t.Errorf("len(Children()) = %d, want 5", got)
	}
	if got := len(q.Left().Right().Parents()); got != 2 {
		t.Errorf("len(Parents()) = %d, want 2", got)
	}

	bare := square()
	if got := len(bare.Branches()); got != 1 {
		t.Errorf("undivided root len(Branches()) = %d, want 1", got)
	}
}

func TestStack(t *testing.T) {
	q := square()
	if !q.AddAbove() {
		t.Fatal("AddAbove = false, want true")
	}
	if q.AddAbove() {
		t.Error("second AddAbove = true, want false")
	}
	above := q.Above()
	if above == nil {
		t.Fatal("Above() = nil after AddAbove")
	}
	if above.Below() != q {
		t.Error("Above().Below() != q")
	}
	if got := above.Elevation(); !almost(got, 3) {
		t.Errorf("above.Elevation() = %g, want 3", got)
	}
	above.SetHeight(4)
	above.AddAbove()
	top := above.Above()
	if got := top.Elevation(); !almost(got, 7) {
		t.Errorf("top.Elevation() = %g, want 7", got)
	}
	if q.Highest() != top {
		t.Error("Highest() != top")
	}
	if top.Lowest() != q {
		t.Error("Lowest() != q")
	}
	if got := top.Level(); got != 2 {
		t.Errorf("top.Level() = %d, want 2", got)
	}
	if q.ByLevel(1) != above {
		t.Error("ByLevel(1) != above")
	}
	if q.ByLevel(5) != nil {
		t.Error("ByLevel(5) != nil")
	}

	// The upper storey shares the footprint of the storey beneath.
	for i := range 4 {
		if got, want := top.Coordinate(i), q.Coordinate(i); !pointAlmost(got, want) {
			t.Errorf("top.Coordinate(%d) = %v, want %v", i, got, want)
		}
	}

	if !above.DelAbove() {
		t.Error("DelAbove = false, want true")
	}
	if above.Above() != nil {
		t.Error("Above() != nil after DelAbove")
	}
}

func TestAboveResolvesByPath(t *testing.T) {
	q := square()
	q.Divide(nil)
	q.AddAbove()
	above := q.Above()
	above.Divide([]float64{0.4, 0.4})

	if got := q.Left().Above(); got != above.Left() {
		t.Errorf("left.Above() = %v, want the left child above", got)
	}
	// Division lines stay coincident across storeys: the lower storey
	// is authoritative.
	if got, want := above.CoordinateA(), q.CoordinateA(); !pointAlmost(got, want) {
		t.Errorf("above.CoordinateA() = %v, want %v", got, want)
	}
	if got, want := above.Left().Coordinate(1), q.Left().Coordinate(1); !pointAlmost(got, want) {
		t.Errorf("above left Coordinate(1) = %v, want %v", got, want)
	}

	above.Undivide()
	if got := q.Left().AboveMore(); got != above {
		t.Errorf("left.AboveMore() = %v, want the root above", got)
	}
	if got := q.Left().Above(); got != nil {
		t.Errorf("left.Above() = %v, want nil on a coarser storey", got)
	}
}

func TestCloneIndependence(t *testing.T) {
	q := square()
	q.Divide([]float64{0.3, 0.3})
	left := q.Left()
	c := left.Clone()

	if c.Parent() != nil {
		t.Fatal("clone has a parent")
	}
	for i := range 4 {
		if got, want := c.Coordinate(i), left.Coordinate(i); !pointAlmost(got, want) {
			t.Errorf("clone.Coordinate(%d) = %v, want %v", i, got, want)
		}
	}
	c.Divide(nil)
	if left.Divided() {
		t.Error("dividing the clone divided the source")
	}
	q.Divide([]float64{0.6, 0.6})
	if got, want := c.Coordinate(1), (geo.Point{X: 3, Y: 0}); !pointAlmost(got, want) {
		t.Errorf("clone.Coordinate(1) after source change = %v, want %v", got, want)
	}
}

func TestDetach(t *testing.T) {
	q := square()
	q.Divide(nil)
	left := q.Left()
	left.Divide(nil)
	d := left.Detach()

	if d.Parent() != nil {
		t.Fatal("detached copy has a parent")
	}
	if !d.Divided() {
		t.Error("detached copy lost its subtree")
	}
	if got, want := d.Coordinate(1), (geo.Point{X: 5, Y: 0}); !pointAlmost(got, want) {
		t.Errorf("detached Coordinate(1) = %v, want %v", got, want)
	}
	if q.Divided() {
		t.Error("source root still divided after Detach")
	}
}

func TestCrossover(t *testing.T) {
	q := square()
	q.Divide(nil)
	left, right := q.Left(), q.Right()
	left.Divide([]float64{0.3, 0.3})
	left.SetType("suite")

	if left.Crossover(nil) {
		t.Error("Crossover(nil) = true, want false")
	}
	if q.Crossover(left) {
		t.Error("Crossover with a descendant = true, want false")
	}
	if left.Crossover(q) {
		t.Error("Crossover with an ancestor = true, want false")
	}
	if q.Divided() != true || !left.Divided() {
		t.Fatal("refused crossover mutated the tree")
	}

	if !left.Crossover(right) {
		t.Fatal("Crossover between siblings = false, want true")
	}
	if left.Divided() {
		t.Error("left still divided after crossover")
	}
	if !right.Divided() {
		t.Error("right not divided after crossover")
	}
	if got := right.Division(); got[0] != 0.3 || got[1] != 0.3 {
		t.Errorf("right.Division() = %v, want [0.3 0.3]", got)
	}
	if got, want := right.Type(), "suite"; got != want {
		t.Errorf("right.Type() = %q, want %q", got, want)
	}
	if right.Left().Parent() != right {
		t.Error("crossed-over child not re-parented")
	}
	// Geometry follows position, not origin: the moved subtree now
	// derives from the right half.
	if got, want := right.Left().Coordinate(0), (geo.Point{X: 5, Y: 0}); !pointAlmost(got, want) {
		t.Errorf("right.Left().Coordinate(0) = %v, want %v", got, want)
	}
}

func TestCollapse(t *testing.T) {
	q := square()
	q.Divide(nil)
	if q.Collapse(1) {
		t.Error("Collapse with wide children = true, want false")
	}
	q.Undivide()

	q.Divide([]float64{0.05, 0.05})
	q.Right().SetType("hall")
	if !q.Collapse(1) {
		t.Fatal("Collapse = false, want true")
	}
	if q.Divided() {
		t.Error("root still divided after collapsing a leaf pair")
	}
	if got, want := q.Type(), "hall"; got != want {
		t.Errorf("Type() = %q, want %q: surviving content should take over", got, want)
	}
}

func TestShift(t *testing.T) {
	q := square()
	q.Divide(nil)
	q.AddAbove()
	q.Shift(3, 4, 2)

	if got, want := q.Coordinate(0), (geo.Point{X: 3, Y: 4}); !pointAlmost(got, want) {
		t.Errorf("Coordinate(0) = %v, want %v", got, want)
	}
	if got := q.Elevation(); !almost(got, 2) {
		t.Errorf("Elevation() = %g, want 2", got)
	}
	// Children and upper storeys rederive from the shifted root.
	if got, want := q.Left().Coordinate(1), (geo.Point{X: 8, Y: 4}); !pointAlmost(got, want) {
		t.Errorf("left.Coordinate(1) = %v, want %v", got, want)
	}
	if got, want := q.Above().Coordinate(0), (geo.Point{X: 3, Y: 4}); !pointAlmost(got, want) {
		t.Errorf("above.Coordinate(0) = %v, want %v", got, want)
	}
	if got := q.Above().Elevation(); !almost(got, 5) {
		t.Errorf("above.Elevation() = %g, want 5", got)
	}
}

func TestStraighten(t *testing.T) {
	q := square()
	q.Divide([]float64{0.3, 0.7})
	left := q.Left()
	left.Divide(nil)

	if q.Straighten() {
		t.Error("Straighten on a root = true, want false")
	}
	if !left.Straighten() {
		t.Fatal("Straighten = false, want true")
	}
	got := left.Orientation()
	want := q.Orientation()
	if !pointAlmost(got, want) {
		t.Errorf("left.Orientation() = %v, want parent's %v", got, want)
	}
}

func TestStraightenRoot(t *testing.T) {
	q := square()
	q.Divide([]float64{0.3, 0.7})
	if !q.StraightenRoot(0) {
		t.Fatal("StraightenRoot = false, want true")
	}
	if got := q.Division()[1]; math.Abs(got-0.3) > 1e-3 {
		t.Errorf("Division()[1] = %g, want 0.3", got)
	}
	if got, want := q.CoordinateB(), (geo.Point{X: 3, Y: 10}); math.Abs(got.X-want.X) > 1e-3 {
		t.Errorf("CoordinateB() = %v, want %v", got, want)
	}
}

func TestGeometry(t *testing.T) {
	q := quad.NewRoot([4]geo.Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 4},
		{X: 0, Y: 4},
	}, 0, quad.DefaultHeight)

	if got := q.Aspect(); !almost(got, 2.5) {
		t.Errorf("Aspect() = %g, want 2.5", got)
	}
	if got := q.NarrowestLength(); !almost(got, 4) {
		t.Errorf("NarrowestLength() = %g, want 4", got)
	}
	if got := q.EdgesByLength(); got[0] != 1 || got[1] != 3 {
		t.Errorf("EdgesByLength() = %v, want the two short edges first", got)
	}
	if got := q.Angle(0); !almost(got, math.Pi/2) {
		t.Errorf("Angle(0) = %g, want π/2", got)
	}
	if got := q.Bearing(1); !almost(got, 0) {
		t.Errorf("Bearing(1) = %g, want 0 (due east)", got)
	}
	if got := q.Bearing(0); !almost(got, 3*math.Pi/2) {
		t.Errorf("Bearing(0) = %g, want 3π/2 (due south)", got)
	}
	if got, want := q.Min(), (geo.Point{X: 0, Y: 0}); !pointAlmost(got, want) {
		t.Errorf("Min() = %v, want %v", got, want)
	}
	if got, want := q.Max(), (geo.Point{X: 10, Y: 4}); !pointAlmost(got, want) {
		t.Errorf("Max() = %v, want %v", got, want)
	}
	m, h := q.Middle(0)
	if !pointAlmost(m, geo.Point{X: 5, Y: 0}) || !almost(h, 1.5) {
		t.Errorf("Middle(0) = %v, %g, want (5,0), 1.5", m, h)
	}
	if got := q.Footprint().Area(); !almost(got, q.Area()) {
		t.Errorf("Footprint().Area() = %g, want %g", got, q.Area())
	}
}

func TestByArea(t *testing.T) {
	q := square()
	q.Divide([]float64{0.3, 0.3})
	matches := q.ByArea(70)
	if len(matches) != 3 {
		t.Fatalf("len(ByArea(70)) = %d, want 3", len(matches))
	}
	if matches[0].Quad != q.Right() {
		t.Errorf("ByArea(70) best match = %v, want the right child", matches[0].Quad)
	}
	if !almost(matches[0].Ratio, 1) {
		t.Errorf("best match ratio = %g, want 1", matches[0].Ratio)
	}
}

func TestDiagnostics(t *testing.T) {
	q := square()
	q.Fail("too narrow")
	q.Fail("bad aspect")
	if got := len(q.Failures()); got != 2 {
		t.Errorf("len(Failures()) = %d, want 2", got)
	}
	q.FailReset()
	if !q.Diag().Empty() {
		t.Error("Diag().Empty() = false after reset")
	}
}
