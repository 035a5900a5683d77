// Implements a PDF backend to render scene graphs,
// by wrapping github.com/jung-kurt/gofpdf.
package drawpdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/benoitkugler/plotdraw/drawobj"
	"github.com/benoitkugler/plotdraw/drawpath"
	"github.com/jung-kurt/gofpdf"
)

var _ drawobj.Renderer = (*Renderer)(nil) // assert interface conformance

// Renderer writes the draw operations on the current page of a PDF document.
// Device units are the document units, with the origin at the top-left
// corner of the page and the y axis pointing down.
// It is not safe for concurrent use.
type Renderer struct {
	pdf    *gofpdf.Fpdf
	images int // used to name the embedded images
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) *Renderer {
	return &Renderer{pdf: pdf}
}

// New starts a one page document of the given size, in points.
func New(width, height float64) *Renderer {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return NewRenderer(pdf)
}

// PDF returns the underlying document.
func (rd *Renderer) PDF() *gofpdf.Fpdf { return rd.pdf }

// Output writes the document to w.
func (rd *Renderer) Output(w io.Writer) error {
	if err := rd.pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// toPDFMatrix returns the matrix to use with Fpdf.Transform so
// that a point (x, y) given to gofpdf is drawn at m(x, y).
// gofpdf maps (x, y) to (k*x, k*(h-y)) in PDF space.
func (rd *Renderer) toPDFMatrix(m drawpath.Matrix2D) gofpdf.TransformMatrix {
	k := rd.pdf.GetConversionRatio()
	_, h := rd.pdf.GetPageSize()
	return gofpdf.TransformMatrix{
		A: m.A,
		B: -m.B,
		C: -m.C,
		D: m.D,
		E: k * (m.E + m.C*h),
		F: k * (h - m.D*h - m.F),
	}
}

// begin applies the clip and transform of st;
// it must be followed by a call to end.
func (rd *Renderer) begin(st *drawobj.State) {
	if st.Clip != nil {
		var points []gofpdf.PointType
		for _, op := range st.Clip.DevicePath().Ops() {
			switch op := op.(type) {
			case drawpath.MoveTo:
				points = append(points, gofpdf.PointType{X: op.X, Y: op.Y})
			case drawpath.LineTo:
				points = append(points, gofpdf.PointType{X: op.X, Y: op.Y})
			}
		}
		rd.pdf.ClipPolygon(points, false)
	}
	rd.pdf.TransformBegin()
	rd.pdf.Transform(rd.toPDFMatrix(st.Transform))
}

func (rd *Renderer) end(st *drawobj.State) {
	rd.pdf.TransformEnd()
	if st.Clip != nil {
		rd.pdf.ClipEnd()
	}
}

// toNRGBA returns the 8 bits non-premultiplied components of c
func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (rd *Renderer) setAlpha(c color.NRGBA) {
	rd.pdf.SetAlpha(float64(c.A)/0xff, "Normal")
}

var (
	capNames  = [...]string{drawobj.CapFlat: "butt", drawobj.CapRound: "round", drawobj.CapSquare: "square"}
	joinNames = [...]string{drawobj.JoinMiter: "miter", drawobj.JoinRound: "round", drawobj.JoinBevel: "bevel"}
)

func (rd *Renderer) setStroke(stroke drawobj.Stroke) {
	rd.pdf.SetLineWidth(stroke.Width)
	rd.pdf.SetLineCapStyle(capNames[stroke.Cap])
	rd.pdf.SetLineJoinStyle(joinNames[stroke.Join])
	dash := stroke.Dash
	if dash == nil {
		dash = []float64{}
	}
	rd.pdf.SetDashPattern(dash, stroke.DashPhase)
}

func (rd *Renderer) writePath(p *drawpath.Path) {
	for _, op := range p.Ops() {
		switch op := op.(type) {
		case drawpath.MoveTo:
			rd.pdf.MoveTo(op.X, op.Y)
		case drawpath.LineTo:
			rd.pdf.LineTo(op.X, op.Y)
		case drawpath.CubicTo:
			rd.pdf.CurveBezierCubicTo(op[0].X, op[0].Y, op[1].X, op[1].Y, op[2].X, op[2].Y)
		case drawpath.Close:
			rd.pdf.ClosePath()
		}
	}
}

// Stroke implements drawobj.Renderer.
func (rd *Renderer) Stroke(p *drawpath.Path, st *drawobj.State) {
	if p.Len() == 0 {
		return
	}
	c := toNRGBA(st.Color)
	rd.begin(st)
	defer rd.end(st)
	rd.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	rd.setAlpha(c)
	rd.setStroke(st.Stroke)
	rd.writePath(p)
	rd.pdf.DrawPath("D")
}

// Fill implements drawobj.Renderer, using the non zero winding rule.
func (rd *Renderer) Fill(p *drawpath.Path, st *drawobj.State) {
	if p.Len() == 0 {
		return
	}
	c := toNRGBA(st.Color)
	rd.begin(st)
	defer rd.end(st)
	rd.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	rd.setAlpha(c)
	rd.writePath(p)
	rd.pdf.DrawPath("F")
}

// family returns the core font used for f
func family(f drawobj.Font) (name, style string) {
	switch f.Name {
	case drawobj.FontMono:
		name = "Courier"
	case drawobj.FontSerif:
		name = "Times"
	default:
		name = "Helvetica"
	}
	if f.Bold {
		style += "B"
	}
	if f.Italic {
		style += "I"
	}
	return name, style
}

func (rd *Renderer) setFont(f drawobj.Font) {
	name, style := family(f)
	rd.pdf.SetFont(name, style, f.Size)
}

// Text implements drawobj.Renderer.
func (rd *Renderer) Text(s string, x, y float64, st *drawobj.State) {
	if s == "" || st.Font.Size <= 0 {
		return
	}
	c := toNRGBA(st.Color)
	rd.begin(st)
	defer rd.end(st)
	rd.setFont(st.Font)
	rd.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	rd.setAlpha(c)
	rd.pdf.Text(x, y, s)
}

// TextWidth implements drawobj.Renderer, using the metrics
// of the standard PDF fonts.
func (rd *Renderer) TextWidth(s string, f drawobj.Font) float64 {
	if s == "" || f.Size <= 0 {
		return 0
	}
	rd.setFont(f)
	return rd.pdf.GetStringWidth(s)
}

// Image implements drawobj.Renderer. The image is embedded as PNG,
// one pixel being one user unit.
func (rd *Renderer) Image(img image.Image, x, y float64, st *drawobj.State) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		drawobj.Logger().Warn("encoding image", "err", err)
		return
	}
	rd.images++
	name := fmt.Sprintf("img%d", rd.images)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	rd.pdf.RegisterImageOptionsReader(name, opts, &buf)

	b := img.Bounds()
	rd.begin(st)
	defer rd.end(st)
	rd.pdf.ImageOptions(name, x, y, float64(b.Dx()), float64(b.Dy()), false, opts, 0, "")
}
