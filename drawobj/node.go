// Package drawobj implements a scene graph: a tree of drawing
// operations, each node carrying optional graphic state overrides
// which are inherited by its descendants.
//
// Nodes may be mutated by several goroutines while a render pass is
// running. Each node owns a mutex, held by every setter, every
// structural change and for the whole duration of its Render call
// (children included).
package drawobj

import (
	"image"
	"sync"

	"github.com/benoitkugler/plotdraw/drawpath"
	"go.jetify.com/typeid/v2"
)

// IDPrefix is the typeid prefix of node identifiers.
const IDPrefix = "node"

// Node is an element of the scene graph. It draws its own
// operation, then its children, in order.
// Children are owned by their parent: a node must not be
// added to two trees.
type Node struct {
	mu sync.Mutex

	id      string
	name    string
	visible bool

	op       Op
	children []*Node

	style overrides
}

// NewNode returns a visible node with an Empty operation.
func NewNode() *Node {
	return &Node{
		id:      typeid.MustGenerate(IDPrefix).String(),
		visible: true,
		op:      Empty{},
	}
}

// NewNamedNode is a convenience for NewNode followed by SetName.
func NewNamedNode(name string) *Node {
	n := NewNode()
	n.name = name
	return n
}

// Lock acquires the node mutex. Callers iterating over the children
// without using the methods of Node must hold it for the whole iteration.
func (n *Node) Lock() { n.mu.Lock() }

// Unlock releases the node mutex.
func (n *Node) Unlock() { n.mu.Unlock() }

// ID returns the unique identifier of the node.
func (n *Node) ID() string { return n.id }

func (n *Node) SetName(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.name = name
}

// Name returns the diagnostic name of the node.
func (n *Node) Name() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.name
}

// SetVisible hides or shows the node and its whole subtree.
func (n *Node) SetVisible(visible bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visible = visible
}

func (n *Node) Visible() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visible
}

// ------------------------------ children ------------------------------

// AddChild appends c to the children.
func (n *Node) AddChild(c *Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.children = append(n.children, c)
}

// AddChildFront inserts c before the other children.
func (n *Node) AddChildFront(c *Node) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.children = append(n.children, nil)
	copy(n.children[1:], n.children)
	n.children[0] = c
}

func (n *Node) removeAt(i int) *Node {
	c := n.children[i]
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	return c
}

// RemoveChild removes the first occurrence of c,
// and returns false if c is not a child of n.
func (n *Node) RemoveChild(c *Node) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, child := range n.children {
		if child == c {
			n.removeAt(i)
			return true
		}
	}
	return false
}

// RemoveChildID removes the direct child with the given identifier.
func (n *Node) RemoveChildID(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, child := range n.children {
		if child.id == id {
			n.removeAt(i)
			return true
		}
	}
	return false
}

// RemoveFirst removes and returns the first child, or nil.
func (n *Node) RemoveFirst() *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.children) == 0 {
		return nil
	}
	return n.removeAt(0)
}

// RemoveLast removes and returns the last child, or nil.
func (n *Node) RemoveLast() *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.children) == 0 {
		return nil
	}
	return n.removeAt(len(n.children) - 1)
}

// ClearChildren removes all the children.
func (n *Node) ClearChildren() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.children {
		n.children[i] = nil
	}
	n.children = n.children[:0]
}

// Children returns a copy of the children list.
func (n *Node) Children() []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*Node(nil), n.children...)
}

// Len returns the number of children.
func (n *Node) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.children)
}

// ------------------------------ operations ------------------------------

func (n *Node) setOp(op Op) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.op = op
}

// Op returns the current drawing operation.
func (n *Node) Op() Op {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.op
}

// SetEmpty removes the drawing operation: the node
// only applies its style to its children.
func (n *Node) SetEmpty() { n.setOp(Empty{}) }

// SetText draws s with its baseline starting at (x, y).
func (n *Node) SetText(s string, x, y float64) { n.setOp(Text{S: s, X: x, Y: y}) }

// SetFloatingText draws s at the current point.
func (n *Node) SetFloatingText(s string) { n.setOp(FloatingText{S: s}) }

// SetComplexText makes n a container laying out its children
// as a justified block anchored at (x, y).
func (n *Node) SetComplexText(justify Justify, x, y float64) {
	n.setOp(ComplexText{Justify: justify, X: x, Y: y})
}

// SetComplexTextMarkup is like SetComplexText, and also appends
// the node tree built from the markup text (see ParseMarkup).
func (n *Node) SetComplexTextMarkup(justify Justify, x, y float64, text string) {
	child := ParseMarkup(text)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.op = ComplexText{Justify: justify, X: x, Y: y}
	n.children = append(n.children, child)
}

// SetFloatingComplexText is like SetComplexTextMarkup, but the
// block is anchored at the current point of the path.
func (n *Node) SetFloatingComplexText(justify Justify, text string) {
	child := ParseMarkup(text)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.op = ComplexText{Justify: justify, Floating: true}
	n.children = append(n.children, child)
}

// DrawRect strokes the rectangle with top-left corner (x, y).
func (n *Node) DrawRect(x, y, w, h float64) {
	n.setOp(Shape{Path: drawpath.Rectangle(x, y, w, h)})
}

// DrawLine strokes the segment between (x1, y1) and (x2, y2).
func (n *Node) DrawLine(x1, y1, x2, y2 float64) {
	n.setOp(Shape{Path: drawpath.Line(x1, y1, x2, y2)})
}

// DrawPoly strokes the polyline through the n first points.
// Nothing is drawn if n <= 0.
func (n *Node) DrawPoly(xs, ys []float64, count int) {
	n.setOp(Shape{Path: polyline(xs, ys, count)})
}

// FillRect fills the rectangle with top-left corner (x, y).
func (n *Node) FillRect(x, y, w, h float64) {
	n.setOp(Shape{Path: drawpath.Rectangle(x, y, w, h), Fill: true})
}

// FillPoly fills the polygon defined by the n first points.
// Nothing is drawn if n <= 0.
func (n *Node) FillPoly(xs, ys []float64, count int) {
	n.setOp(Shape{Path: polyline(xs, ys, count), Fill: true})
}

func polyline(xs, ys []float64, count int) *drawpath.Path {
	if count <= 0 {
		Logger().Debug("degenerate polyline", "points", count)
	}
	return drawpath.Polyline(xs, ys, count)
}

// SetNewPath makes the children start from an empty path.
func (n *Node) SetNewPath() { n.setOp(NewPath{}) }

// SetVertex adds (x, y) to the current path.
func (n *Node) SetVertex(x, y float64) { n.setOp(Vertex{X: x, Y: y}) }

// SetRelativeVertex adds the current point offset by (x, y) to the current path.
func (n *Node) SetRelativeVertex(x, y float64) { n.setOp(RelativeVertex{X: x, Y: y}) }

// SetCurve adds a cubic bezier segment to the current path.
func (n *Node) SetCurve(x1, y1, x2, y2, x3, y3 float64) {
	n.setOp(Curve{X1: x1, Y1: y1, X2: x2, Y2: y2, X3: x3, Y3: y3})
}

// SetStrokePath strokes the current path.
func (n *Node) SetStrokePath() { n.setOp(StrokePath{}) }

// SetFillPath fills the current path.
func (n *Node) SetFillPath() { n.setOp(FillPath{}) }

// SetClosePath closes the current path.
func (n *Node) SetClosePath() { n.setOp(ClosePath{}) }

// SetImage draws img with its top-left corner at (x, y).
func (n *Node) SetImage(img image.Image, x, y float64) { n.setOp(Image{Img: img, X: x, Y: y}) }
