package drawobj

import (
	"image/color"
	"testing"
)

func leafText(t *testing.T, n *Node) string {
	t.Helper()
	op, ok := n.Op().(FloatingText)
	if !ok {
		t.Fatalf("expected a text leaf, got %T", n.Op())
	}
	if n.Len() != 0 {
		t.Fatalf("leaf should not have children")
	}
	return op.S
}

func TestMarkupBold(t *testing.T) {
	n := ParseMarkup("<bold>hi</bold>")
	if !n.FontBold() {
		t.Error("expected bold")
	}
	children := n.Children()
	if len(children) != 1 {
		t.Fatalf("expected one child, got %d", len(children))
	}
	if s := leafText(t, children[0]); s != "hi" {
		t.Errorf("unexpected text %q", s)
	}
}

func TestMarkupSplit(t *testing.T) {
	n := ParseMarkup("a<italic>b</italic>c")
	if _, ok := n.Op().(Empty); !ok || n.FontItalic() {
		t.Fatal("root should be a plain container")
	}
	children := n.Children()
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	if s := leafText(t, children[0]); s != "a" {
		t.Errorf("unexpected text %q", s)
	}
	if !children[1].FontItalic() || children[1].Len() != 1 {
		t.Error("expected an italic node wrapping one child")
	}
	if s := leafText(t, children[1].Children()[0]); s != "b" {
		t.Errorf("unexpected text %q", s)
	}
	if s := leafText(t, children[2]); s != "c" {
		t.Errorf("unexpected text %q", s)
	}
}

func TestMarkupPlain(t *testing.T) {
	for _, text := range []string{"", "plain text", "a < b", "<bold"} {
		if s := leafText(t, ParseMarkup(text)); s != text {
			t.Errorf("expected %q, got %q", text, s)
		}
	}
}

func TestMarkupPayloads(t *testing.T) {
	n := ParseMarkup("<size=0.5>small</size>")
	if f, ok := n.FontScale(); !ok || f != 0.5 {
		t.Errorf("unexpected size %f", f)
	}
	n = ParseMarkup("<y= -0.3 >sup</y>")
	if f, ok := n.FontY(); !ok || f != -0.3 {
		t.Errorf("unexpected y %f", f)
	}
	n = ParseMarkup("<font=mono>code</font>")
	if name, ok := n.FontName(); !ok || name != FontMono {
		t.Errorf("unexpected font %s", name)
	}
	for _, text := range []string{"<color=0xff8000>c</color>", "<color=#FF8000>c</color>", "<color=16744448>c</color>"} {
		n = ParseMarkup(text)
		if c, ok := n.Color(); !ok || c != (color.RGBA{R: 0xff, G: 0x80, A: 0xff}) {
			t.Errorf("%s: unexpected color %v", text, c)
		}
	}

	// malformed values are ignored, the content is kept
	for _, text := range []string{"<size=big>x</size>", "<font=Arial>x</font>", "<color=red>x</color>", "<y>x</y>", "<size=>x</size>"} {
		n = ParseMarkup(text)
		_, sizeSet := n.FontScale()
		_, ySet := n.FontY()
		_, nameSet := n.FontName()
		_, colorSet := n.Color()
		if sizeSet || ySet || nameSet || colorSet {
			t.Errorf("%s: override should be skipped", text)
		}
		if n.Len() != 1 || leafText(t, n.Children()[0]) != "x" {
			t.Errorf("%s: content should be kept", text)
		}
	}
}

func TestMarkupUnterminated(t *testing.T) {
	n := ParseMarkup("<bold>to the end")
	if !n.FontBold() || leafText(t, n.Children()[0]) != "to the end" {
		t.Error("unterminated tag should extend to the end")
	}

	n = ParseMarkup("a<bold>b")
	children := n.Children()
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	if !children[1].FontBold() || leafText(t, children[1].Children()[0]) != "b" {
		t.Error("unexpected bold node")
	}
	if leafText(t, children[2]) != "" {
		t.Error("expected an empty trailing text")
	}
}

func TestMarkupNested(t *testing.T) {
	n := ParseMarkup("<bold><italic>x</italic></bold>")
	if !n.FontBold() {
		t.Fatal("expected bold")
	}
	inner := n.Children()[0]
	if !inner.FontItalic() || leafText(t, inner.Children()[0]) != "x" {
		t.Error("expected nested italic")
	}
}

func TestMarkupLastClosingTag(t *testing.T) {
	// the first opening tag is paired with the last closing tag
	n := ParseMarkup("<bold>a</bold>b<bold>c</bold>")
	if !n.FontBold() {
		t.Fatal("expected the whole text to be bold")
	}
	inner := n.Children()[0]
	children := inner.Children()
	if len(children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(children))
	}
	if leafText(t, children[0]) != "a</bold>b" {
		t.Errorf("unexpected first child %q", leafText(t, children[0]))
	}
}
