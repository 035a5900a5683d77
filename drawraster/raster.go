// Implements a raster backend to render scene graphs,
// by wrapping rasterx.
package drawraster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/plotdraw/drawobj"
	"github.com/benoitkugler/plotdraw/drawpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

var _ drawobj.Renderer = (*Renderer)(nil) // assert interface conformance

// Renderer draws into an RGBA image.
// Device units are pixels, with the origin at the top-left corner.
type Renderer struct {
	img    *image.RGBA
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance

	fonts *faceCache
}

// NewRenderer returns a renderer drawing into img.
func NewRenderer(img *image.RGBA) *Renderer {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	return &Renderer{
		img:    img,
		dasher: rasterx.NewDasher(w, h, scanner),
		filler: rasterx.NewFiller(w, h, scanner),
		fonts:  newFaceCache(),
	}
}

// New allocates a width x height image, filled with background.
func New(width, height int, background color.Color) *Renderer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return NewRenderer(img)
}

// RGBA returns the destination image.
func (rd *Renderer) RGBA() *image.RGBA { return rd.img }

// SavePNG encodes the destination image.
func (rd *Renderer) SavePNG(w io.Writer) error { return png.Encode(w, rd.img) }

func fToFixed(p drawpath.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

// adder is the common interface of rasterx.Filler and rasterx.Dasher
type adder interface {
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
	Stop(closeLoop bool)
}

// addPath sends p, mapped by m, to the rasterizer
func addPath(ad adder, p *drawpath.Path, m drawpath.Matrix2D) {
	var (
		start fixed.Point26_6 // of the current sub-path
		open  bool
	)
	// segments following a Close start back from the sub-path origin
	ensureOpen := func() {
		if !open {
			ad.Start(start)
			open = true
		}
	}
	for _, op := range p.Ops() {
		switch op := op.(type) {
		case drawpath.MoveTo:
			if open {
				ad.Stop(false)
			}
			start = fToFixed(m.TransformPoint(drawpath.Point(op)))
			ad.Start(start)
			open = true
		case drawpath.LineTo:
			ensureOpen()
			ad.Line(fToFixed(m.TransformPoint(drawpath.Point(op))))
		case drawpath.CubicTo:
			ensureOpen()
			ad.CubeBezier(fToFixed(m.TransformPoint(op[0])), fToFixed(m.TransformPoint(op[1])),
				fToFixed(m.TransformPoint(op[2])))
		case drawpath.Close:
			if open {
				ad.Stop(true)
				open = false
			}
		}
	}
	if open {
		ad.Stop(false)
	}
}

// clipRect returns the device rectangle to draw in, and false
// if nothing can be drawn
func (rd *Renderer) clipRect(st *drawobj.State) (image.Rectangle, bool) {
	if st.Clip == nil {
		return rd.img.Bounds(), true
	}
	b, ok := st.Clip.DevicePath().Bounds()
	if !ok {
		return image.Rectangle{}, false
	}
	r := image.Rect(int(math.Floor(b.X)), int(math.Floor(b.Y)),
		int(math.Ceil(b.X+b.W)), int(math.Ceil(b.Y+b.H))).Intersect(rd.img.Bounds())
	return r, !r.Empty()
}

// setup prepares the scanner shared by the filler and the dasher
func (rd *Renderer) setup(st *drawobj.State) bool {
	clip, ok := rd.clipRect(st)
	if !ok {
		return false
	}
	rd.filler.SetClip(clip)
	c := st.Color
	if c == nil {
		c = color.Black
	}
	rd.filler.SetColor(c)
	return true
}

// scaleFactor is the mean scaling of m, applied to lengths
// which are not points (line width, dashes)
func scaleFactor(m drawpath.Matrix2D) float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		drawobj.JoinMiter: rasterx.Miter,
		drawobj.JoinRound: rasterx.Round,
		drawobj.JoinBevel: rasterx.Bevel,
	}

	capToFunc = [...]rasterx.CapFunc{
		drawobj.CapFlat:   rasterx.ButtCap,
		drawobj.CapRound:  rasterx.RoundCap,
		drawobj.CapSquare: rasterx.SquareCap,
	}
)

func (rd *Renderer) setStroke(stroke drawobj.Stroke, m drawpath.Matrix2D) {
	f := scaleFactor(m)
	var dash []float64
	if len(stroke.Dash) != 0 {
		dash = make([]float64, len(stroke.Dash))
		for i, d := range stroke.Dash {
			dash[i] = d * f
		}
	}
	lineCap := capToFunc[stroke.Cap]
	rd.dasher.SetStroke(
		fixed.Int26_6(stroke.Width*f*64), fixed.Int26_6(stroke.MiterLimit*64),
		lineCap, lineCap, rasterx.FlatGap, joinToJoin[stroke.Join],
		dash, stroke.DashPhase*f,
	)
}

// Stroke implements drawobj.Renderer.
func (rd *Renderer) Stroke(p *drawpath.Path, st *drawobj.State) {
	if !rd.setup(st) {
		return
	}
	rd.dasher.Clear()
	rd.setStroke(st.Stroke, st.Transform)
	addPath(rd.dasher, p, st.Transform)
	rd.dasher.Draw()
}

// Fill implements drawobj.Renderer.
func (rd *Renderer) Fill(p *drawpath.Path, st *drawobj.State) {
	if !rd.setup(st) {
		return
	}
	rd.filler.Clear()
	rd.filler.SetWinding(true)
	addPath(rd.filler, p, st.Transform)
	rd.filler.Draw()
}

// Image implements drawobj.Renderer, using bilinear interpolation.
func (rd *Renderer) Image(img image.Image, x, y float64, st *drawobj.State) {
	clip, ok := rd.clipRect(st)
	if !ok {
		return
	}
	var dst draw.Image = rd.img
	if st.Clip != nil {
		dst = rd.img.SubImage(clip).(*image.RGBA)
	}
	min := img.Bounds().Min
	m := st.Transform.Translate(x-float64(min.X), y-float64(min.Y))
	s2d := f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
	draw.BiLinear.Transform(dst, s2d, img, img.Bounds(), draw.Over, nil)
}
