package drawpath

// This file implements the transformation from
// high level shapes to their path equivalent

// Rectangle returns the closed path of the rectangle
// with top-left corner (x, y) and size (w, h).
func Rectangle(x, y, w, h float64) *Path {
	p := NewPath()
	p.Start(Point{x, y})
	p.Line(Point{x + w, y})
	p.Line(Point{x + w, y + h})
	p.Line(Point{x, y + h})
	p.Stop(true)
	return p
}

// Line returns the path of the segment between (x1, y1) and (x2, y2).
func Line(x1, y1, x2, y2 float64) *Path {
	p := NewPath()
	p.Start(Point{x1, y1})
	p.Line(Point{x2, y2})
	return p
}

// Polyline returns the (not closed) path going through the n first
// points given by xs and ys.
// An empty path is returned when n <= 0; n is also clamped to the
// length of the coordinates slices.
func Polyline(xs, ys []float64, n int) *Path {
	p := NewPath()
	if n > len(xs) {
		n = len(xs)
	}
	if n > len(ys) {
		n = len(ys)
	}
	if n <= 0 {
		return p
	}
	p.Start(Point{xs[0], ys[0]})
	for i := 1; i < n; i++ {
		p.Line(Point{xs[i], ys[i]})
	}
	return p
}
