package drawobj

import (
	"image/color"

	"github.com/benoitkugler/plotdraw/drawpath"
)

// Font families understood by the backends.
const (
	FontMono  = "MONO"
	FontSans  = "SANS"
	FontSerif = "SERIF"
)

// Font describes the text font in effect.
type Font struct {
	Name   string // one of FontMono, FontSans, FontSerif
	Size   float64
	Bold   bool
	Italic bool
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	CapFlat CapMode = iota
	CapRound
	CapSquare
)

func (c CapMode) String() string {
	switch c {
	case CapFlat:
		return "Flat"
	case CapRound:
		return "Round"
	case CapSquare:
		return "Square"
	default:
		return "<unknown CapMode>"
	}
}

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	JoinMiter JoinMode = iota
	JoinRound
	JoinBevel
)

func (s JoinMode) String() string {
	switch s {
	case JoinMiter:
		return "Miter"
	case JoinRound:
		return "Round"
	case JoinBevel:
		return "Bevel"
	default:
		return "<unknown JoinMode>"
	}
}

// LineStyle selects one of the predefined dash patterns.
type LineStyle uint8

const (
	LineSolid LineStyle = iota
	LineDash
	LineDot
	LineDashDot
)

// Dash returns the dash pattern for a unit line width,
// or nil for a solid line.
func (l LineStyle) Dash() []float64 {
	switch l {
	case LineDash:
		return []float64{5, 5}
	case LineDot:
		return []float64{1, 3}
	case LineDashDot:
		return []float64{5, 3, 1, 3}
	default:
		return nil
	}
}

// Stroke groups the line parameters.
type Stroke struct {
	Width      float64
	Cap        CapMode
	Join       JoinMode
	MiterLimit float64
	Dash       []float64 // nil or empty for a solid line
	DashPhase  float64
}

// Clip is a clipping rectangle, expressed in the user space
// defined by Transform.
type Clip struct {
	Rect      drawpath.Rect
	Transform drawpath.Matrix2D
}

// DevicePath returns the clip rectangle in device space.
func (c *Clip) DevicePath() *drawpath.Path {
	return c.Rect.Path().Transform(c.Transform)
}

// State is the effective graphic state, resulting from the
// cascade of the overrides of a node and its ancestors.
// It is passed by value during a traversal and never stored on a node.
type State struct {
	Transform drawpath.Matrix2D
	Color     color.Color
	Clip      *Clip // nil for no clip
	Font      Font
	Stroke    Stroke
}

// DefaultState returns the state used at the root of a traversal:
// identity transform, black, no clip, 12pt sans serif font,
// and a solid line of width 1 with square caps and miter joins.
func DefaultState() State {
	return State{
		Transform: drawpath.Identity,
		Color:     color.Black,
		Font:      Font{Name: FontSans, Size: 12},
		Stroke: Stroke{
			Width:      1,
			Cap:        CapSquare,
			Join:       JoinMiter,
			MiterLimit: 10,
		},
	}
}
