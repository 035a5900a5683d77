package drawpath

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCurrentPoint(t *testing.T) {
	p := NewPath()
	if _, ok := p.CurrentPoint(); ok {
		t.Fatal("empty path should not have a current point")
	}
	p.Start(Point{1, 2})
	p.Line(Point{3, 4})
	if c, ok := p.CurrentPoint(); !ok || c != (Point{3, 4}) {
		t.Errorf("unexpected current point %v", c)
	}
	p.Stop(true)
	if c, _ := p.CurrentPoint(); c != (Point{1, 2}) {
		t.Errorf("closing should move back to start, got %v", c)
	}
	if s := p.String(); s != "M1.000,2.000 L3.000,4.000 Z" {
		t.Errorf("unexpected svg path %s", s)
	}
	p.Clear()
	if _, ok := p.CurrentPoint(); ok || p.Len() != 0 {
		t.Error("Clear should reset the path")
	}
}

func TestCopy(t *testing.T) {
	p := Line(0, 0, 1, 1)
	c := p.Copy()
	c.Line(Point{2, 2})
	if p.Len() != 2 || c.Len() != 3 {
		t.Errorf("copy should not share operations: %d %d", p.Len(), c.Len())
	}
}

func TestMatrix(t *testing.T) {
	m := Identity.Translate(10, 5).Scale(2, 3)
	x, y := m.Transform(1, 1)
	if !almostEqual(x, 12) || !almostEqual(y, 8) {
		t.Errorf("expected (12, 8), got (%f, %f)", x, y)
	}
	inv := m.Invert()
	x, y = inv.Transform(12, 8)
	if !almostEqual(x, 1) || !almostEqual(y, 1) {
		t.Errorf("expected (1, 1), got (%f, %f)", x, y)
	}

	r := Identity.Scale(2, 2).Rotate(math.Pi / 2)
	sx, sy := r.ScaleFactors()
	if !almostEqual(sx, 2) || !almostEqual(sy, 2) {
		t.Errorf("rotation should not change scale factors: %f %f", sx, sy)
	}
	x, y = r.Transform(1, 0)
	if !almostEqual(x, 0) || !almostEqual(y, 2) {
		t.Errorf("expected (0, 2), got (%f, %f)", x, y)
	}
}

func TestTransformPath(t *testing.T) {
	p := Rectangle(0, 0, 1, 1).Transform(Identity.Translate(1, 1).Scale(2, 2))
	b, ok := p.Bounds()
	if !ok || b != (Rect{1, 1, 2, 2}) {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestPolyline(t *testing.T) {
	xs, ys := []float64{0, 1, 2}, []float64{0, 1, 0}
	if p := Polyline(xs, ys, 0); p.Len() != 0 {
		t.Error("expected empty path for n = 0")
	}
	if p := Polyline(xs, ys, -2); p.Len() != 0 {
		t.Error("expected empty path for negative n")
	}
	if p := Polyline(xs, ys, 10); p.Len() != 3 {
		t.Errorf("n should be clamped, got %d ops", p.Len())
	}
}

func TestBounds(t *testing.T) {
	if _, ok := NewPath().Bounds(); ok {
		t.Error("empty path has no bounds")
	}

	p := NewPath()
	p.Start(Point{0, 0})
	p.CubeBezier(Point{0, 10}, Point{10, 10}, Point{10, 0})
	b, ok := p.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	// the extremum of the curve is at t = 0.5, y = 7.5
	if !almostEqual(b.H, 7.5) || !almostEqual(b.W, 10) {
		t.Errorf("unexpected bounds %v", b)
	}

	u := Rect{0, 0, 1, 1}.Union(Rect{2, 2, 1, 1})
	if u != (Rect{0, 0, 3, 3}) {
		t.Errorf("unexpected union %v", u)
	}
}
