package main

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/benoitkugler/plotdraw/drawobj"
	"github.com/benoitkugler/plotdraw/track"
	"golang.org/x/net/html/charset"
)

const margin = 40

// scene is the demo picture: a framed streaming curve
// below a justified title.
type scene struct {
	root  *drawobj.Node
	title *drawobj.Node
	curve *track.Track2D

	width, height float64
}

func newScene(cfg *Config, title string) *scene {
	sc := &scene{
		root:   drawobj.NewNamedNode("scene"),
		title:  drawobj.NewNamedNode("title"),
		curve:  track.New(),
		width:  float64(cfg.Width),
		height: float64(cfg.Height),
	}
	sc.title.SetFontScale(1.5)
	sc.title.SetComplexTextMarkup(drawobj.Center, sc.width/2, margin-12, title)
	sc.root.AddChild(sc.title)

	plotH := sc.height - 2*margin
	frame := drawobj.NewNamedNode("frame")
	frame.SetColor(color.Gray{Y: 0x60})
	frame.DrawRect(margin, margin, sc.width-2*margin, plotH)
	sc.root.AddChild(frame)

	zero := drawobj.NewNamedNode("zero")
	zero.SetColor(color.Gray{Y: 0xa0})
	zero.SetLineStyle(drawobj.LineDashDot)
	zero.DrawLine(margin, sc.height/2, sc.width-margin, sc.height/2)
	sc.root.AddChild(zero)

	area := drawobj.NewNamedNode("area")
	area.SetClip(margin, margin, sc.width-2*margin, plotH)
	area.AddChild(sc.curve.Node())
	sc.root.AddChild(area)

	sc.curve.Node().SetColor(color.RGBA{R: 0x20, G: 0x50, B: 0xc0, A: 0xff})
	sc.curve.Node().SetLineWidth(2)
	sc.curve.Node().SetLineJoin(drawobj.JoinRound)
	sc.curve.Node().SetLineCap(drawobj.CapRound)
	sc.curve.SetCapacity(cfg.Capacity)
	// the visible samples span the frame, values in [-1, 1] fill it
	samples := cfg.Capacity
	if samples <= 0 {
		samples = cfg.Points
	}
	xScale := (sc.width - 2*margin) / float64(max(samples, 1))
	sc.curve.Rescale(xScale, -plotH/2)
	sc.curve.Translate(margin, sc.height/2)

	sc.legend()
	return sc
}

// legend draws a floating label at the end of a short sample line
func (sc *scene) legend() {
	legend := drawobj.NewNamedNode("legend")
	legend.SetNewPath()
	legend.SetTranslate(sc.width-margin-90, sc.height-margin/2)

	start := drawobj.NewNode()
	start.SetVertex(0, 0)
	sample := drawobj.NewNode()
	sample.SetRelativeVertex(20, 0)
	stroke := drawobj.NewNode()
	stroke.SetStrokePath()
	stroke.SetColor(color.RGBA{R: 0x20, G: 0x50, B: 0xc0, A: 0xff})
	stroke.SetLineWidth(2)
	gap := drawobj.NewNode()
	gap.SetRelativeVertex(6, 4)
	label := drawobj.NewNode()
	label.SetFloatingComplexText(drawobj.Left, "<font=mono>signal</font>")

	for _, n := range []*drawobj.Node{start, sample, stroke, gap, label} {
		legend.AddChild(n)
	}
	sc.root.AddChild(legend)
}

// setTitle replaces the title markup
func (sc *scene) setTitle(title string) {
	sc.title.ClearChildren()
	sc.title.SetComplexTextMarkup(drawobj.Center, sc.width/2, margin-12, title)
}

// follow shifts the curve so that its oldest point is on the left border
func (sc *scene) follow() {
	if b, ok := sc.curve.Bounds(); ok {
		sc.curve.Translate(margin-b.X, sc.height/2)
	}
}

// readTitle reads the title markup from a file encoded with
// the given charset label.
func readTitle(path, label string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	r, err := charset.NewReaderLabel(label, f)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", path, err)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
