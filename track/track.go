// Package track implements a streaming curve: a scene graph node
// drawing a polyline through data points added over time,
// with bounded history and on-demand rescaling.
package track

import (
	"github.com/benoitkugler/plotdraw/drawobj"
	"github.com/benoitkugler/plotdraw/drawpath"
)

// PointKind tells how a data point is positioned.
type PointKind uint8

const (
	// Absolute points are multiplied by the track scale.
	Absolute PointKind = iota
	// Relative points are unscaled offsets from the previous vertex.
	Relative
)

func (k PointKind) String() string {
	switch k {
	case Absolute:
		return "Absolute"
	case Relative:
		return "Relative"
	default:
		return "<unknown PointKind>"
	}
}

// Track2D draws a curve through a series of data points.
// It owns the following node tree:
//
//	root (NewPath)
//	├── vertices (one Vertex child per point)
//	├── fill (the two baseline points closing the area, in fill mode)
//	└── terminator (StrokePath or FillPath)
//
// The data is guarded by the lock of the root node, so that adding
// points and rendering the track never interleave.
type Track2D struct {
	root       *drawobj.Node
	vertices   *drawobj.Node
	fill       *drawobj.Node
	terminator *drawobj.Node

	raw    []drawpath.Point
	kinds  []PointKind
	scaled []drawpath.Point

	// last evicted point, from which a leading
	// relative point is still offset
	anchor evicted

	xScale, yScale float64
	capacity       int
	fillMode       bool
	drawing        bool
}

type evicted struct {
	raw    drawpath.Point
	kind   PointKind
	scaled drawpath.Point
	set    bool
}

// New returns an empty track, stroking its curve, with unit scales
// and no capacity limit.
func New() *Track2D {
	tr := &Track2D{
		root:       drawobj.NewNamedNode("track"),
		vertices:   drawobj.NewNamedNode("vertices"),
		fill:       drawobj.NewNamedNode("fill"),
		terminator: drawobj.NewNamedNode("terminator"),
		xScale:     1,
		yScale:     1,
		drawing:    true,
	}
	tr.root.SetNewPath()
	tr.terminator.SetStrokePath()
	tr.root.AddChild(tr.vertices)
	tr.root.AddChild(tr.fill)
	tr.root.AddChild(tr.terminator)
	return tr
}

// Node returns the root of the track, to be inserted in a scene.
// Its style (color, line width, ...) applies to the curve.
func (tr *Track2D) Node() *drawobj.Node { return tr.root }

// Translate moves the track. The vertical offset is also the
// baseline closing the area in fill mode.
func (tr *Track2D) Translate(x, y float64) { tr.root.SetTranslate(x, y) }

func (tr *Track2D) baselineY() float64 {
	_, y, _ := tr.root.Translate()
	return y
}

// Add is a shortcut for AddPoint(x, y, Absolute).
func (tr *Track2D) Add(x, y float64) { tr.AddPoint(x, y, Absolute) }

// AddPoint appends a data point, evicting the oldest
// points if the capacity is exceeded.
func (tr *Track2D) AddPoint(x, y float64, kind PointKind) {
	baseline := tr.baselineY()

	tr.root.Lock()
	defer tr.root.Unlock()

	p := drawpath.Point{X: x, Y: y}
	var v drawpath.Point
	if kind == Relative {
		v = p
		if n := len(tr.scaled); n != 0 {
			v = tr.scaled[n-1].Add(p)
		}
	} else {
		v = drawpath.Point{X: tr.xScale * x, Y: tr.yScale * y}
	}
	tr.raw = append(tr.raw, p)
	tr.kinds = append(tr.kinds, kind)
	tr.scaled = append(tr.scaled, v)

	vertex := drawobj.NewNode()
	vertex.SetVertex(v.X, v.Y)
	tr.vertices.AddChild(vertex)

	tr.trim()
	tr.updateFill(baseline)
}

// trim evicts the oldest points above capacity
func (tr *Track2D) trim() {
	if tr.capacity <= 0 {
		return
	}
	evicted := 0
	for len(tr.raw) > tr.capacity {
		tr.anchor = evicted{raw: tr.raw[0], kind: tr.kinds[0], scaled: tr.scaled[0], set: true}
		tr.raw = tr.raw[1:]
		tr.kinds = tr.kinds[1:]
		tr.scaled = tr.scaled[1:]
		tr.vertices.RemoveFirst()
		evicted++
	}
	if evicted != 0 {
		drawobj.Logger().Debug("track points evicted", "count", evicted, "capacity", tr.capacity)
	}
}

// updateFill recomputes the baseline points closing the filled area.
func (tr *Track2D) updateFill(baseline float64) {
	tr.fill.ClearChildren()
	if !tr.fillMode || len(tr.scaled) == 0 {
		return
	}
	last, first := tr.scaled[len(tr.scaled)-1], tr.scaled[0]
	for _, x := range [2]float64{last.X, first.X} {
		pt := drawobj.NewNode()
		pt.SetVertex(x, baseline)
		tr.fill.AddChild(pt)
	}
}

// Rescale changes the scales applied to absolute points
// and recomputes every vertex from the raw data.
// A relative first point is offset from the last evicted point,
// which is itself rescaled if it was absolute.
func (tr *Track2D) Rescale(xScale, yScale float64) {
	baseline := tr.baselineY()

	tr.root.Lock()
	defer tr.root.Unlock()

	tr.xScale, tr.yScale = xScale, yScale
	if tr.anchor.set && tr.anchor.kind == Absolute {
		tr.anchor.scaled = drawpath.Point{X: xScale * tr.anchor.raw.X, Y: yScale * tr.anchor.raw.Y}
	}
	vertices := tr.vertices.Children()
	for i, p := range tr.raw {
		var v drawpath.Point
		switch {
		case tr.kinds[i] == Absolute:
			v = drawpath.Point{X: xScale * p.X, Y: yScale * p.Y}
		case i == 0 && tr.anchor.set:
			v = tr.anchor.scaled.Add(p)
		case i == 0:
			v = p
		default:
			v = tr.scaled[i-1].Add(p)
		}
		tr.scaled[i] = v
		vertices[i].SetVertex(v.X, v.Y)
	}
	tr.updateFill(baseline)
}

// Scale returns the current scales.
func (tr *Track2D) Scale() (xScale, yScale float64) {
	tr.root.Lock()
	defer tr.root.Unlock()
	return tr.xScale, tr.yScale
}

// Clear removes all the points. The fill and drawing
// modes are preserved.
func (tr *Track2D) Clear() {
	tr.root.Lock()
	defer tr.root.Unlock()
	tr.raw, tr.kinds, tr.scaled = nil, nil, nil
	tr.anchor = evicted{}
	tr.vertices.ClearChildren()
	tr.fill.ClearChildren()
}

func (tr *Track2D) updateTerminator() {
	if tr.fillMode {
		tr.terminator.SetFillPath()
	} else {
		tr.terminator.SetStrokePath()
	}
	tr.terminator.SetVisible(tr.drawing)
}

// SetFillMode fills the area between the curve and the baseline
// instead of stroking the curve.
func (tr *Track2D) SetFillMode(fill bool) {
	baseline := tr.baselineY()

	tr.root.Lock()
	defer tr.root.Unlock()
	tr.fillMode = fill
	tr.updateTerminator()
	tr.updateFill(baseline)
}

// SetDrawing disables (or enables) the drawing of the curve, while still
// accepting points. A hidden track only builds the current path.
func (tr *Track2D) SetDrawing(drawing bool) {
	tr.root.Lock()
	defer tr.root.Unlock()
	tr.drawing = drawing
	tr.updateTerminator()
}

// SetCapacity limits the number of points kept; 0 means no limit.
// Points above the new capacity are evicted immediately.
func (tr *Track2D) SetCapacity(capacity int) {
	baseline := tr.baselineY()

	tr.root.Lock()
	defer tr.root.Unlock()
	tr.capacity = capacity
	tr.trim()
	tr.updateFill(baseline)
}

// Len returns the number of points.
func (tr *Track2D) Len() int {
	tr.root.Lock()
	defer tr.root.Unlock()
	return len(tr.raw)
}

// Points returns a copy of the raw data points, and their kinds.
func (tr *Track2D) Points() ([]drawpath.Point, []PointKind) {
	tr.root.Lock()
	defer tr.root.Unlock()
	return append([]drawpath.Point(nil), tr.raw...), append([]PointKind(nil), tr.kinds...)
}

// Vertices returns a copy of the scaled vertices.
func (tr *Track2D) Vertices() []drawpath.Point {
	tr.root.Lock()
	defer tr.root.Unlock()
	return append([]drawpath.Point(nil), tr.scaled...)
}

// FillBaseline returns the points closing the filled area:
// empty, or the last and first vertices projected on the baseline.
func (tr *Track2D) FillBaseline() []drawpath.Point {
	tr.root.Lock()
	defer tr.root.Unlock()
	var out []drawpath.Point
	for _, child := range tr.fill.Children() {
		if v, ok := child.Op().(drawobj.Vertex); ok {
			out = append(out, drawpath.Point{X: v.X, Y: v.Y})
		}
	}
	return out
}

// Bounds returns the bounding box of the vertices,
// and false if the track is empty.
func (tr *Track2D) Bounds() (drawpath.Rect, bool) {
	tr.root.Lock()
	defer tr.root.Unlock()
	if len(tr.scaled) == 0 {
		return drawpath.Rect{}, false
	}
	xs := make([]float64, len(tr.scaled))
	ys := make([]float64, len(tr.scaled))
	for i, v := range tr.scaled {
		xs[i], ys[i] = v.X, v.Y
	}
	return drawpath.Polyline(xs, ys, len(xs)).Bounds()
}
