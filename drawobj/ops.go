package drawobj

import (
	"image"

	"github.com/benoitkugler/plotdraw/drawpath"
)

// Op is the drawing operation carried by a node.
// It is one of Empty, Text, FloatingText, ComplexText, Shape,
// NewPath, Vertex, RelativeVertex, Curve, StrokePath, FillPath,
// ClosePath or Image.
type Op interface {
	isOp()
}

// Empty draws nothing: the node only carries style and children.
type Empty struct{}

// Text draws a string with its baseline starting at (X, Y).
type Text struct {
	S    string
	X, Y float64
}

// FloatingText draws a string at the current point of the path
// (or at the origin), then advances the current point by the text width.
type FloatingText struct {
	S string
}

// Justify is the horizontal alignment of a ComplexText.
type Justify uint8

const (
	Left Justify = iota
	Right
	Center
)

// factor returns the fraction of the total width to shift left.
func (j Justify) factor() float64 {
	switch j {
	case Right:
		return 1
	case Center:
		return 0.5
	default:
		return 0
	}
}

func (j Justify) String() string {
	switch j {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Center:
		return "Center"
	default:
		return "<unknown Justify>"
	}
}

// ComplexText measures its children and lays them out as a justified
// unit anchored at (X, Y), or at the current point when Floating is true.
type ComplexText struct {
	Justify  Justify
	X, Y     float64
	Floating bool
}

// Shape draws or fills a precomputed path (rectangle, line or polyline).
type Shape struct {
	Path *drawpath.Path
	Fill bool
}

// NewPath discards the current path and starts an empty one.
type NewPath struct{}

// Vertex starts the current path at (X, Y), or draws a segment to it.
type Vertex struct{ X, Y float64 }

// RelativeVertex is a Vertex offset from the current point.
type RelativeVertex struct{ X, Y float64 }

// Curve appends a cubic segment from the current point, using
// the two control points and the end point.
type Curve struct{ X1, Y1, X2, Y2, X3, Y3 float64 }

// StrokePath strokes the current path.
type StrokePath struct{}

// FillPath fills the current path.
type FillPath struct{}

// ClosePath closes the current sub-path.
type ClosePath struct{}

// Image draws an image with its top-left corner at (X, Y).
type Image struct {
	Img  image.Image
	X, Y float64
}

func (Empty) isOp()          {}
func (Text) isOp()           {}
func (FloatingText) isOp()   {}
func (ComplexText) isOp()    {}
func (Shape) isOp()          {}
func (NewPath) isOp()        {}
func (Vertex) isOp()         {}
func (RelativeVertex) isOp() {}
func (Curve) isOp()          {}
func (StrokePath) isOp()     {}
func (FillPath) isOp()       {}
func (ClosePath) isOp()      {}
func (Image) isOp()          {}
