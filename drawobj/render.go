package drawobj

import (
	"github.com/benoitkugler/plotdraw/drawpath"
)

// Advance is the extent measured while rendering a node:
// the width (and height) taken by its content, in user units.
type Advance struct{ X, Y float64 }

func (a Advance) add(b Advance) Advance { return Advance{a.X + b.X, a.Y + b.Y} }

// Render draws n and its subtree into r, starting from the
// inherited state st and the current path (which may be nil).
// When measureOnly is true, nothing is drawn and only the
// returned advance is computed.
//
// The path pointer is passed down by value: a node starting a new
// path only affects its own subtree, whereas segments added to an
// existing path are seen by every node sharing it.
//
// The node is locked for the whole call, its subtree included.
func (n *Node) Render(r Renderer, st State, path *drawpath.Path, measureOnly bool) Advance {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.visible {
		return Advance{}
	}

	st = n.style.cascade(st)

	var adv Advance
	switch op := n.op.(type) {
	case Empty:
	case Text:
		if !measureOnly {
			r.Text(op.S, op.X, op.Y, &st)
		}
		adv.X = r.TextWidth(op.S, st.Font)
	case FloatingText:
		w := r.TextWidth(op.S, st.Font)
		if !measureOnly {
			if path == nil {
				path = drawpath.NewPath()
			}
			origin, _ := path.CurrentPoint()
			r.Text(op.S, origin.X, origin.Y, &st)
			path.Start(drawpath.Point{X: origin.X + w, Y: origin.Y})
		}
		adv.X = w
	case ComplexText:
		return n.renderComplexText(r, op, st, path, measureOnly)
	case Shape:
		if op.Path == nil || op.Path.Len() == 0 {
			break
		}
		if measureOnly {
			break
		}
		if op.Fill {
			r.Fill(op.Path, &st)
		} else {
			r.Stroke(op.Path, &st)
		}
	case NewPath:
		path = drawpath.NewPath()
	case Vertex:
		if path == nil {
			path = drawpath.NewPath()
		}
		addVertex(path, drawpath.Point{X: op.X, Y: op.Y})
	case RelativeVertex:
		if path == nil {
			path = drawpath.NewPath()
		}
		pt := drawpath.Point{X: op.X, Y: op.Y}
		if cur, ok := path.CurrentPoint(); ok {
			pt = cur.Add(pt)
		}
		addVertex(path, pt)
	case Curve:
		if path == nil {
			path = drawpath.NewPath()
		}
		if _, ok := path.CurrentPoint(); ok {
			path.CubeBezier(drawpath.Point{X: op.X1, Y: op.Y1}, drawpath.Point{X: op.X2, Y: op.Y2},
				drawpath.Point{X: op.X3, Y: op.Y3})
		} else {
			Logger().Debug("curve without current point", "node", n.name)
		}
	case StrokePath:
		if path != nil && !measureOnly {
			r.Stroke(path, &st)
		}
	case FillPath:
		if path != nil && !measureOnly {
			r.Fill(path, &st)
		}
	case ClosePath:
		if path != nil {
			path.Stop(true)
		}
	case Image:
		if op.Img != nil && !measureOnly {
			r.Image(op.Img, op.X, op.Y, &st)
		}
	}

	for _, child := range n.children {
		adv = adv.add(child.Render(r, st, path, measureOnly))
	}
	return adv
}

func addVertex(path *drawpath.Path, pt drawpath.Point) {
	if _, ok := path.CurrentPoint(); ok {
		path.Line(pt)
	} else {
		path.Start(pt)
	}
}

// renderComplexText measures the children, translated one after the
// other by the advance of the previous ones, then renders them
// with the translation required by the justification.
// Each child is rendered with its own path, starting at the origin,
// which locates the floating text it contains.
func (n *Node) renderComplexText(r Renderer, op ComplexText, st State, path *drawpath.Path, measureOnly bool) Advance {
	var total Advance
	for _, child := range n.children {
		child.SetTranslate(total.X, total.Y)
		total = total.add(child.Render(r, st, path, true))
	}

	x, y := op.X, op.Y
	if op.Floating && path != nil {
		if cur, ok := path.CurrentPoint(); ok {
			x, y = cur.X, cur.Y
		}
	}
	st.Transform = st.Transform.Translate(x-total.X*op.Justify.factor(), y)

	var adv Advance
	for _, child := range n.children {
		origin := drawpath.NewPath()
		origin.Start(drawpath.Point{})
		adv = adv.add(child.Render(r, st, origin, measureOnly))
	}
	return adv
}
