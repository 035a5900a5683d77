// Implements an abstract representation of
// drawing paths, which can then be consumed
// by painting drivers.
// A Path also tracks its current point, so that
// it can serve as the "current path" of a scene traversal.
package drawpath

import (
	"fmt"
	"strings"
)

// Point is a position in user space.
type Point struct{ X, Y float64 }

// Add returns the vector p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathCubicTo
	pathClose
)

// Operation groups the different path commands
type Operation interface {
	command() pathCommand
}

type MoveTo Point

type LineTo Point

type CubicTo [3]Point

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic operations.
// The zero value is an empty path without current point.
type Path struct {
	ops    []Operation
	start  Point // start of the current sub-path
	cur    Point
	hasCur bool
}

// NewPath returns an empty path, without current point.
func NewPath() *Path { return new(Path) }

// Ops returns the operations of the path.
// The returned slice must not be modified.
func (p *Path) Ops() []Operation { return p.ops }

// Len returns the number of operations in the path.
func (p *Path) Len() int { return len(p.ops) }

// CurrentPoint returns the end point of the last operation,
// and false if no point has been added yet.
func (p *Path) CurrentPoint() (Point, bool) { return p.cur, p.hasCur }

// ToSVGPath returns a string representation of the path
func (p *Path) ToSVGPath() string {
	chunks := make([]string, len(p.ops))
	for i, op := range p.ops {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", op.X, op.Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", op[0].X, op[0].Y,
				op[1].X, op[1].Y, op[2].X, op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p *Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice and forgets the current point.
func (p *Path) Clear() {
	p.ops = p.ops[:0]
	p.hasCur = false
}

// Start starts a new sub-path at the given point.
func (p *Path) Start(a Point) {
	p.ops = append(p.ops, MoveTo(a))
	p.start, p.cur, p.hasCur = a, a, true
}

// Line adds a linear segment to the current sub-path.
func (p *Path) Line(b Point) {
	p.ops = append(p.ops, LineTo(b))
	p.cur, p.hasCur = b, true
}

// CubeBezier adds a cubic segment to the current sub-path.
func (p *Path) CubeBezier(b, c, d Point) {
	p.ops = append(p.ops, CubicTo{b, c, d})
	p.cur, p.hasCur = d, true
}

// Stop joins the ends of the current sub-path if closeLoop is true.
// The current point then moves back to the start of the sub-path.
func (p *Path) Stop(closeLoop bool) {
	if closeLoop && p.hasCur {
		p.ops = append(p.ops, Close{})
		p.cur = p.start
	}
}

// Copy returns a deep copy of the path.
func (p *Path) Copy() *Path {
	out := *p
	out.ops = append([]Operation(nil), p.ops...)
	return &out
}

// Transform returns a copy of the path with every point mapped by m.
func (p *Path) Transform(m Matrix2D) *Path {
	out := &Path{ops: make([]Operation, len(p.ops)), hasCur: p.hasCur}
	for i, op := range p.ops {
		switch op := op.(type) {
		case MoveTo:
			out.ops[i] = MoveTo(m.TransformPoint(Point(op)))
		case LineTo:
			out.ops[i] = LineTo(m.TransformPoint(Point(op)))
		case CubicTo:
			out.ops[i] = CubicTo{m.TransformPoint(op[0]), m.TransformPoint(op[1]), m.TransformPoint(op[2])}
		case Close:
			out.ops[i] = op
		}
	}
	out.start = m.TransformPoint(p.start)
	out.cur = m.TransformPoint(p.cur)
	return out
}
