package drawraster

import (
	"sync"

	"github.com/benoitkugler/plotdraw/drawobj"
	"github.com/benoitkugler/plotdraw/drawpath"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Text is drawn with the Go fonts: MONO uses Go Mono, the other
// families use the proportional Go font.

type styleKey struct {
	mono, bold, italic bool
}

var ttfs = map[styleKey][]byte{
	{false, false, false}: goregular.TTF,
	{false, true, false}:  gobold.TTF,
	{false, false, true}:  goitalic.TTF,
	{false, true, true}:   gobolditalic.TTF,
	{true, false, false}:  gomono.TTF,
	{true, true, false}:   gomonobold.TTF,
	{true, false, true}:   gomonoitalic.TTF,
	{true, true, true}:    gomonobolditalic.TTF,
}

func keyOf(f drawobj.Font) styleKey {
	return styleKey{mono: f.Name == drawobj.FontMono, bold: f.Bold, italic: f.Italic}
}

// faceCache lazily parses the fonts, and caches
// the faces for each size.
type faceCache struct {
	mu    sync.Mutex
	fonts map[styleKey]*sfnt.Font
	faces map[drawobj.Font]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{
		fonts: make(map[styleKey]*sfnt.Font),
		faces: make(map[drawobj.Font]font.Face),
	}
}

func (fc *faceCache) sfntFont(key styleKey) (*sfnt.Font, error) {
	if f, ok := fc.fonts[key]; ok {
		return f, nil
	}
	f, err := opentype.Parse(ttfs[key])
	if err != nil {
		return nil, err
	}
	fc.fonts[key] = f
	return f, nil
}

// withFace calls fn with the face for f and the underlying font.
// Faces are not safe for concurrent use: the cache is locked during fn.
func (fc *faceCache) withFace(f drawobj.Font, fn func(font.Face, *sfnt.Font) error) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	face, sf, err := fc.face(f)
	if err != nil {
		return err
	}
	return fn(face, sf)
}

func (fc *faceCache) face(f drawobj.Font) (font.Face, *sfnt.Font, error) {
	key := keyOf(f)
	f.Name = "" // only mono matters
	if key.mono {
		f.Name = drawobj.FontMono
	}
	sf, err := fc.sfntFont(key)
	if err != nil {
		return nil, nil, err
	}
	if face, ok := fc.faces[f]; ok {
		return face, sf, nil
	}
	// at 72 DPI, one point is one user unit
	face, err := opentype.NewFace(sf, &opentype.FaceOptions{Size: f.Size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, nil, err
	}
	fc.faces[f] = face
	return face, sf, nil
}

// TextWidth implements drawobj.Renderer. It is safe for concurrent use.
func (rd *Renderer) TextWidth(s string, f drawobj.Font) float64 {
	if f.Size <= 0 || s == "" {
		return 0
	}
	var w fixed.Int26_6
	err := rd.fonts.withFace(f, func(face font.Face, _ *sfnt.Font) error {
		w = font.MeasureString(face, s)
		return nil
	})
	if err != nil {
		drawobj.Logger().Warn("loading font", "font", f.Name, "err", err)
		return 0
	}
	return float64(w) / 64
}

func toPoint(p fixed.Point26_6, x, y float64) drawpath.Point {
	return drawpath.Point{X: x + float64(p.X)/64, Y: y + float64(p.Y)/64}
}

// outline returns the glyph outlines of s, with the baseline starting at (x, y),
// in user space.
func (rd *Renderer) outline(s string, x, y float64, f drawobj.Font) (*drawpath.Path, error) {
	out := drawpath.NewPath()
	err := rd.fonts.withFace(f, func(face font.Face, sf *sfnt.Font) error {
		return appendGlyphs(out, face, sf, s, x, y, fixed.Int26_6(f.Size*64))
	})
	return out, err
}

func appendGlyphs(out *drawpath.Path, face font.Face, sf *sfnt.Font, s string, x, y float64, ppem fixed.Int26_6) error {
	var (
		buf  sfnt.Buffer
		pen  fixed.Int26_6
		prev rune = -1
	)
	for _, r := range s {
		if prev >= 0 {
			pen += face.Kern(prev, r)
		}
		prev = r
		if gi, err := sf.GlyphIndex(&buf, r); err == nil && gi != 0 {
			segments, err := sf.LoadGlyph(&buf, gi, ppem, nil)
			if err != nil {
				return err
			}
			appendSegments(out, segments, x+float64(pen)/64, y)
		}
		if adv, ok := face.GlyphAdvance(r); ok {
			pen += adv
		}
	}
	return nil
}

// appendSegments adds a glyph outline, whose origin is at (ox, oy).
func appendSegments(out *drawpath.Path, segments sfnt.Segments, ox, oy float64) {
	var cur drawpath.Point
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			cur = toPoint(seg.Args[0], ox, oy)
			out.Start(cur)
		case sfnt.SegmentOpLineTo:
			cur = toPoint(seg.Args[0], ox, oy)
			out.Line(cur)
		case sfnt.SegmentOpQuadTo:
			// elevate to a cubic curve
			c, end := toPoint(seg.Args[0], ox, oy), toPoint(seg.Args[1], ox, oy)
			c1 := drawpath.Point{X: cur.X + 2./3*(c.X-cur.X), Y: cur.Y + 2./3*(c.Y-cur.Y)}
			c2 := drawpath.Point{X: end.X + 2./3*(c.X-end.X), Y: end.Y + 2./3*(c.Y-end.Y)}
			out.CubeBezier(c1, c2, end)
			cur = end
		case sfnt.SegmentOpCubeTo:
			cur = toPoint(seg.Args[2], ox, oy)
			out.CubeBezier(toPoint(seg.Args[0], ox, oy), toPoint(seg.Args[1], ox, oy), cur)
		}
	}
}

// Text implements drawobj.Renderer, by filling the glyph outlines.
func (rd *Renderer) Text(s string, x, y float64, st *drawobj.State) {
	if st.Font.Size <= 0 || s == "" {
		return
	}
	p, err := rd.outline(s, x, y, st.Font)
	if err != nil {
		drawobj.Logger().Warn("drawing text", "text", s, "err", err)
		return
	}
	rd.Fill(p, st)
}
