package drawobj

import (
	"image/color"

	"github.com/benoitkugler/plotdraw/drawpath"
)

// optional stores a value which may be left unset,
// so that "inherited" is distinct from "set to the default".
type optional[T any] struct {
	v   T
	set bool
}

func some[T any](v T) optional[T] { return optional[T]{v: v, set: true} }

// overrides are the graphic state changes applied by a node
// to itself and its descendants.
type overrides struct {
	scale     optional[drawpath.Point]
	unscaled  bool
	translate optional[drawpath.Point]
	rotate    optional[float64]
	color     optional[color.Color]
	clip      optional[drawpath.Rect]

	font optional[Font]
	// style bits, applied to the full font when set,
	// or OR'ed with the inherited style otherwise
	bold   bool
	italic bool
	// font deltas, used when no full font is set
	fontName  optional[string]
	fontScale optional[float64]
	fontY     optional[float64]

	lineWidth optional[float64]
	lineCap   optional[CapMode]
	lineJoin  optional[JoinMode]
	dash      optional[[]float64]
}

func (o *overrides) hasFontDelta() bool {
	return o.bold || o.italic || o.fontName.set || o.fontScale.set || o.fontY.set
}

// cascade applies the overrides on top of the inherited state.
// The returned state is always a new value; inherited is not modified.
func (o *overrides) cascade(inherited State) State {
	st := inherited
	if o.scale.set {
		st.Transform = st.Transform.Scale(o.scale.v.X, o.scale.v.Y)
	}
	if o.unscaled {
		// one user unit is one device unit, whatever the ancestors scaling
		sx, sy := st.Transform.ScaleFactors()
		if sx != 0 && sy != 0 {
			st.Transform = st.Transform.Scale(1/sx, 1/sy)
		}
	}
	if o.translate.set {
		st.Transform = st.Transform.Translate(o.translate.v.X, o.translate.v.Y)
	}
	if o.rotate.set {
		st.Transform = st.Transform.Rotate(o.rotate.v)
	}
	if o.color.set {
		st.Color = o.color.v
	}
	if o.clip.set {
		st.Clip = &Clip{Rect: o.clip.v, Transform: st.Transform}
	}

	if o.font.set {
		st.Font = o.font.v
		st.Font.Bold, st.Font.Italic = o.bold, o.italic
	} else if o.hasFontDelta() {
		old := inherited.Font
		f := old
		if o.fontName.set {
			f.Name = o.fontName.v
		}
		if o.fontScale.set {
			f.Size = old.Size * o.fontScale.v
		}
		f.Bold = old.Bold || o.bold
		f.Italic = old.Italic || o.italic
		st.Font = f
		if o.fontY.set {
			st.Transform = st.Transform.Translate(0, old.Size*o.fontY.v)
		}
	}

	if o.lineWidth.set {
		st.Stroke.Width = o.lineWidth.v
	}
	if o.lineCap.set {
		st.Stroke.Cap = o.lineCap.v
	}
	if o.lineJoin.set {
		st.Stroke.Join = o.lineJoin.v
	}
	if o.dash.set {
		// dashes grow with the line thickness
		var dash []float64
		if len(o.dash.v) != 0 {
			dash = make([]float64, len(o.dash.v))
			for i, d := range o.dash.v {
				dash[i] = d * st.Stroke.Width
			}
		}
		st.Stroke.Dash = dash
	}
	return st
}

// ------------------------------ setters ------------------------------

// SetScale multiplies the user space units.
func (n *Node) SetScale(x, y float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.scale = some(drawpath.Point{X: x, Y: y})
}

func (n *Node) ScaleOff() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.scale.set = false
}

// Scale returns the scale override, and false if it is not set.
func (n *Node) Scale() (x, y float64, ok bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style.scale.v.X, n.style.scale.v.Y, n.style.scale.set
}

// SetUnscaled cancels the scaling of the ancestors, so that
// one user unit maps to one device unit.
func (n *Node) SetUnscaled(unscaled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.unscaled = unscaled
}

func (n *Node) Unscaled() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style.unscaled
}

// SetTranslate moves the origin of the user space.
func (n *Node) SetTranslate(x, y float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.translate = some(drawpath.Point{X: x, Y: y})
}

func (n *Node) TranslateOff() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.translate.set = false
}

// Translate returns the translation override, and false if it is not set.
func (n *Node) Translate() (x, y float64, ok bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style.translate.v.X, n.style.translate.v.Y, n.style.translate.set
}

// SetRotate rotates the user space by theta radians.
func (n *Node) SetRotate(theta float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.rotate = some(theta)
}

func (n *Node) RotateOff() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.rotate.set = false
}

func (n *Node) Rotate() (float64, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style.rotate.v, n.style.rotate.set
}

func (n *Node) SetColor(c color.Color) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.color = some(c)
}

func (n *Node) ColorOff() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.color.set = false
}

// Color returns the color override, and false if it is not set.
func (n *Node) Color() (color.Color, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style.color.v, n.style.color.set
}

// SetClip restricts drawing to the given rectangle, expressed in
// the user space of the node (after its own transformations).
func (n *Node) SetClip(x, y, w, h float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.clip = some(drawpath.Rect{X: x, Y: y, W: w, H: h})
}

func (n *Node) ClipOff() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.clip.set = false
}

// SetFont replaces the inherited font, and sets the bold and italic
// flags from f. The other font deltas (SetFontScale, ...) are then ignored.
func (n *Node) SetFont(f Font) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.font = some(f)
	n.style.bold, n.style.italic = f.Bold, f.Italic
}

func (n *Node) FontOff() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.font = optional[Font]{}
}

// Font returns the full font override, with its current style bits,
// and false if it is not set.
func (n *Node) Font() (Font, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	f := n.style.font.v
	f.Bold, f.Italic = n.style.bold, n.style.italic
	return f, n.style.font.set
}

// SetFontBold makes the font bold: the full font if set,
// the inherited one otherwise.
func (n *Node) SetFontBold(bold bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.bold = bold
}

func (n *Node) FontBold() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style.bold
}

// SetFontItalic makes the font italic, as SetFontBold.
func (n *Node) SetFontItalic(italic bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.italic = italic
}

func (n *Node) FontItalic() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style.italic
}

// SetFontName changes the family of the inherited font.
func (n *Node) SetFontName(name string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.fontName = some(name)
}

func (n *Node) FontName() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style.fontName.v, n.style.fontName.set
}

// SetFontScale multiplies the size of the inherited font.
func (n *Node) SetFontScale(factor float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.fontScale = some(factor)
}

func (n *Node) FontScale() (float64, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style.fontScale.v, n.style.fontScale.set
}

// SetFontY moves the content vertically by factor times
// the size of the inherited font.
func (n *Node) SetFontY(factor float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.fontY = some(factor)
}

func (n *Node) FontY() (float64, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style.fontY.v, n.style.fontY.set
}

func (n *Node) SetLineWidth(width float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.lineWidth = some(width)
}

func (n *Node) LineWidthOff() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.lineWidth.set = false
}

func (n *Node) LineWidth() (float64, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style.lineWidth.v, n.style.lineWidth.set
}

func (n *Node) SetLineCap(c CapMode) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.lineCap = some(c)
}

func (n *Node) LineCapOff() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.lineCap.set = false
}

func (n *Node) LineCap() (CapMode, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style.lineCap.v, n.style.lineCap.set
}

func (n *Node) SetLineJoin(j JoinMode) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.lineJoin = some(j)
}

func (n *Node) LineJoinOff() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.lineJoin.set = false
}

func (n *Node) LineJoin() (JoinMode, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.style.lineJoin.v, n.style.lineJoin.set
}

// SetLineStyle uses one of the predefined dash patterns.
func (n *Node) SetLineStyle(style LineStyle) { n.SetDash(style.Dash()) }

// SetDash sets the dash pattern, expressed for a line of width 1:
// each entry is multiplied by the line width at render time.
// An empty pattern means a solid line.
func (n *Node) SetDash(dash []float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.dash = some(append([]float64(nil), dash...))
}

func (n *Node) LineStyleOff() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.style.dash = optional[[]float64]{}
}

// Dash returns a copy of the dash override, and false if it is not set.
func (n *Node) Dash() ([]float64, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]float64(nil), n.style.dash.v...), n.style.dash.set
}
