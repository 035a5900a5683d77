package drawpath

import "math"

// compute the bounding box of a path, taking into account
// the extrema of bezier curves

// Rect is an axis aligned rectangle.
type Rect struct{ X, Y, W, H float64 }

// IsEmpty reports whether the rectangle has a zero or negative area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// Union returns the smallest rectangle containing r and other.
// Degenerate rectangles (lines, points) are still taken into account.
func (r Rect) Union(other Rect) Rect {
	minX, minY := math.Min(r.X, other.X), math.Min(r.Y, other.Y)
	maxX, maxY := math.Max(r.X+r.W, other.X+other.W), math.Max(r.Y+r.H, other.Y+other.H)
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// Path returns the closed path of the rectangle.
func (r Rect) Path() *Path { return Rectangle(r.X, r.Y, r.W, r.H) }

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// derivative of the cubic, as at^2 + bt + c
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// cubicExtent returns the bounding box of the cubic curve p0 -> p3.
func cubicExtent(p0, p1, p2, p3 Point) (min, max Point) {
	aX, bX, cX := cubicDerivative(p0.X, p1.X, p2.X, p3.X)
	aY, bY, cY := cubicDerivative(p0.Y, p1.Y, p2.Y, p3.Y)
	ts := append(quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)...)
	ts = append(ts, 0, 1)

	min = Point{math.Inf(1), math.Inf(1)}
	max = Point{math.Inf(-1), math.Inf(-1)}
	for _, t := range ts {
		// filter invalid value
		if !(0 <= t && t <= 1) {
			continue
		}
		x := bezierSpline(p0.X, p1.X, p2.X, p3.X, t)
		y := bezierSpline(p0.Y, p1.Y, p2.Y, p3.Y, t)
		min.X, min.Y = math.Min(min.X, x), math.Min(min.Y, y)
		max.X, max.Y = math.Max(max.X, x), math.Max(max.Y, y)
	}
	return min, max
}

// Bounds returns the bounding box of the path, and false
// if the path has no point.
func (p *Path) Bounds() (Rect, bool) {
	min := Point{math.Inf(1), math.Inf(1)}
	max := Point{math.Inf(-1), math.Inf(-1)}
	var last Point
	extend := func(a, b Point) {
		min.X, min.Y = math.Min(min.X, a.X), math.Min(min.Y, a.Y)
		max.X, max.Y = math.Max(max.X, b.X), math.Max(max.Y, b.Y)
	}
	seen := false
	for _, op := range p.ops {
		switch op := op.(type) {
		case MoveTo:
			last = Point(op)
			extend(last, last)
		case LineTo:
			last = Point(op)
			extend(last, last)
		case CubicTo:
			a, b := cubicExtent(last, op[0], op[1], op[2])
			extend(a, b)
			last = op[2]
		case Close:
			continue
		}
		seen = true
	}
	if !seen {
		return Rect{}, false
	}
	return Rect{min.X, min.Y, max.X - min.X, max.Y - min.Y}, true
}
