package geo

import (
	"math"
	"testing"
)

const tol = 1e-9

func almost(a, b float64) bool { return math.Abs(a-b) < tol }

func TestSubAddScale(t *testing.T) {
	if got := Sub(Point{3, 5}, Point{1, 2}); got != (Point{2, 3}) {
		t.Errorf("Sub() = %v, want {2 3}", got)
	}
	if got := Add(Point{1, 1}, Point{2, 3}, Point{-1, 0}); got != (Point{2, 4}) {
		t.Errorf("Add() = %v, want {2 4}", got)
	}
	if got := Scale(2, Point{1.5, -2}); got != (Point{3, -4}) {
		t.Errorf("Scale() = %v, want {3 -4}", got)
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(Point{0, 0}, Point{3, 4}); !almost(got, 5) {
		t.Errorf("Distance() = %v, want 5", got)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize(Point{3, 4}); !almost(got.X, 0.6) || !almost(got.Y, 0.8) {
		t.Errorf("Normalize({3 4}) = %v, want {0.6 0.8}", got)
	}
	// Zero vector has no direction; returns the conventional (0, 1).
	if got := Normalize(Point{}); got != (Point{0, 1}) {
		t.Errorf("Normalize(zero) = %v, want {0 1}", got)
	}
}

func TestIsBetween(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 0}
	if !IsBetween(Point{5, 0}, a, b) {
		t.Error("IsBetween(midpoint) = false, want true")
	}
	if !IsBetween(a, a, b) {
		t.Error("IsBetween(endpoint) = false, want true")
	}
	if IsBetween(Point{5, 1}, a, b) {
		t.Error("IsBetween(off-segment) = true, want false")
	}
	if IsBetween(Point{11, 0}, a, b) {
		t.Error("IsBetween(beyond end) = true, want false")
	}
}

func TestAngle(t *testing.T) {
	if got := Angle(Point{0, 0}, Point{1, 1}); !almost(got, math.Pi/4) {
		t.Errorf("Angle() = %v, want π/4", got)
	}
	if got := Angle(Point{0, 0}, Point{-1, 0}); !almost(got, math.Pi) {
		t.Errorf("Angle() = %v, want π", got)
	}
}

func TestTriangleArea(t *testing.T) {
	if got := TriangleArea(Point{0, 0}, Point{4, 0}, Point{0, 3}); !almost(got, 6) {
		t.Errorf("TriangleArea() = %v, want 6", got)
	}
	// Collinear points enclose nothing.
	if got := TriangleArea(Point{0, 0}, Point{1, 1}, Point{2, 2}); got != 0 {
		t.Errorf("TriangleArea(collinear) = %v, want 0", got)
	}
}

func TestLineThrough(t *testing.T) {
	l := LineThrough(Point{1, 2}, Point{3, 4})
	if !almost(l.A, 1) || !almost(l.B, 1) {
		t.Errorf("LineThrough() = %+v, want {A:1 B:1}", l)
	}

	// Vertical input yields a finite, very steep slope.
	v := LineThrough(Point{2, 0}, Point{2, 1})
	if math.Abs(v.A) < 1e9 {
		t.Errorf("vertical slope = %v, want very steep", v.A)
	}
}

func TestIntersect(t *testing.T) {
	l0 := LineThrough(Point{0, 0}, Point{1, 1})
	l1 := LineThrough(Point{0, 2}, Point{1, 1})
	p, ok := Intersect(l0, l1)
	if !ok {
		t.Fatal("Intersect() ok = false, want true")
	}
	if !almost(p.X, 1) || !almost(p.Y, 1) {
		t.Errorf("Intersect() = %v, want {1 1}", p)
	}

	// Equal slopes never intersect, even when the lines coincide.
	if _, ok := Intersect(l0, Line{A: l0.A, B: 5}); ok {
		t.Error("Intersect(parallel) ok = true, want false")
	}
	if _, ok := Intersect(l0, l0); ok {
		t.Error("Intersect(self) ok = true, want false")
	}
}

func TestPerpendicular(t *testing.T) {
	l := Line{A: 2, B: 0}
	p := Perpendicular(l, Point{0, 0})
	if !almost(p.A, -0.5) {
		t.Errorf("Perpendicular slope = %v, want -0.5", p.A)
	}
}

func TestPerpendicularDistance(t *testing.T) {
	l := Line{A: 0, B: 0} // the x axis
	if got := PerpendicularDistance(l, Point{3, 4}); !almost(got, 4) {
		t.Errorf("PerpendicularDistance() = %v, want 4", got)
	}
}

func TestIsAngleBetween(t *testing.T) {
	if !IsAngleBetween(0.4, 0.1, 0.7) {
		t.Error("IsAngleBetween(0.4, 0.1, 0.7) = false, want true")
	}
	if IsAngleBetween(1.0, 0.1, 0.7) {
		t.Error("IsAngleBetween(1.0, 0.1, 0.7) = true, want false")
	}
	// Angles above π are folded back into (-π, π].
	if !IsAngleBetween(2*math.Pi-0.1, -0.3, 0.3) {
		t.Error("IsAngleBetween near 2π = false, want true")
	}
}

func TestGaussian(t *testing.T) {
	if got := Gaussian(0, 1, 0, 1); !almost(got, 1) {
		t.Errorf("Gaussian(peak) = %v, want 1", got)
	}
	if got := Gaussian(1, 1, 0, 1); !almost(got, math.Exp(-0.5)) {
		t.Errorf("Gaussian(1σ) = %v, want e^-0.5", got)
	}
}
