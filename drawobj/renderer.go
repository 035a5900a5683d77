package drawobj

import (
	"image"

	"github.com/benoitkugler/plotdraw/drawpath"
)

// Renderer knows how to do the actual draw operations
// but doesn't need any scene graph knowledge.
// Points are given in user space: the backend is responsible
// for applying st.Transform, as well as the clip, color, font and
// stroke parameters found in st.
// A Renderer is used by one render pass at a time.
type Renderer interface {
	// Stroke draws the outline of p.
	Stroke(p *drawpath.Path, st *State)

	// Fill fills p using the non zero winding rule.
	Fill(p *drawpath.Path, st *State)

	// Text draws s with its baseline starting at (x, y).
	Text(s string, x, y float64, st *State)

	// Image draws img with its top-left corner at (x, y).
	Image(img image.Image, x, y float64, st *State)

	// TextWidth returns the advance of s rendered with f, in user units.
	TextWidth(s string, f Font) float64
}
