package drawobj

import (
	"image/color"
	"strconv"
	"strings"
)

// Text markup supports the following paired tags, which may be nested:
//
//	<bold> ... </bold>
//	<italic> ... </italic>
//	<font=NAME> ... </font>    NAME is MONO, SANS or SERIF
//	<size=NUM> ... </size>     multiplies the font size
//	<y=NUM> ... </y>           moves vertically by NUM times the font size
//	<color=0xRRGGBB> ... </color>
//
// It is not XML: there is no escaping, and an opening tag is always
// paired with the last occurrence of its closing tag.

type markupTag struct {
	open, close string
	valued      bool // expects a "=value" payload
	// apply sets the override on n, and returns false
	// if the payload is invalid
	apply func(n *Node, payload string) bool
}

// ordered by priority
var markupTags = [...]markupTag{
	{"<bold>", "</bold>", false, func(n *Node, _ string) bool { n.SetFontBold(true); return true }},
	{"<italic>", "</italic>", false, func(n *Node, _ string) bool { n.SetFontItalic(true); return true }},
	{"<font", "</font>", true, applyFontName},
	{"<size", "</size>", true, func(n *Node, payload string) bool {
		f, err := strconv.ParseFloat(payload, 64)
		if err != nil {
			return false
		}
		n.SetFontScale(f)
		return true
	}},
	{"<y", "</y>", true, func(n *Node, payload string) bool {
		f, err := strconv.ParseFloat(payload, 64)
		if err != nil {
			return false
		}
		n.SetFontY(f)
		return true
	}},
	{"<color", "</color>", true, func(n *Node, payload string) bool {
		c, err := parseColor(payload)
		if err != nil {
			return false
		}
		n.SetColor(c)
		return true
	}},
}

func applyFontName(n *Node, payload string) bool {
	for _, name := range [...]string{FontMono, FontSans, FontSerif} {
		if strings.EqualFold(payload, name) {
			n.SetFontName(name)
			return true
		}
	}
	return false
}

// parseColor accepts 0xRRGGBB, #RRGGBB, octal (leading 0)
// and decimal values. Only the 24 lower bits are used.
func parseColor(s string) (color.RGBA, error) {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if strings.HasPrefix(s, "#") {
		s = "0x" + s[1:]
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return color.RGBA{}, err
	}
	if neg {
		v = -v
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// payload returns the value of a tag header like "<size=2>",
// or false if there is no '=' or no value.
func payload(header string) (string, bool) {
	eq := strings.IndexByte(header, '=')
	if eq == -1 || len(header)-eq <= 2 {
		return "", false
	}
	return strings.TrimSpace(header[eq+1 : len(header)-1]), true
}

// ParseMarkup builds a node tree from a text using markup tags.
// Text without tags is returned as a FloatingText node, so that
// consecutive pieces of text are drawn one after the other.
// A tag spanning the whole text is applied to the returned node,
// which has the inner content as only child. Otherwise the text is
// split in (before, tag, after), parsed recursively as children
// of an Empty node. An unterminated tag extends to the end of the text.
// Malformed tag values are ignored.
func ParseMarkup(text string) *Node {
	node := NewNode()

	best, start := -1, -1
	for i, tag := range markupTags {
		idx := strings.Index(text, tag.open)
		if idx != -1 && (start == -1 || idx < start) {
			best, start = i, idx
		}
	}
	if best == -1 {
		node.op = FloatingText{S: text}
		return node
	}
	tag := markupTags[best]

	headerLen := strings.IndexByte(text[start:], '>') + 1
	if headerLen < 2 { // unterminated header: plain text
		node.op = FloatingText{S: text}
		return node
	}

	end := strings.LastIndex(text, tag.close)
	if end != -1 && end < start+headerLen {
		end = -1
	}

	if start == 0 && (end == -1 || end+len(tag.close) == len(text)) {
		if end == -1 {
			end = len(text)
		}
		header := text[:headerLen]
		if !tag.valued {
			tag.apply(node, "")
		} else if value, ok := payload(header); !ok || !tag.apply(node, value) {
			Logger().Debug("ignoring markup tag", "tag", header)
		}
		node.children = append(node.children, ParseMarkup(text[headerLen:end]))
		return node
	}

	after := len(text)
	if end != -1 {
		after = end + len(tag.close)
	}
	if start != 0 {
		node.children = append(node.children, ParseMarkup(text[:start]))
	}
	node.children = append(node.children, ParseMarkup(text[start:after]), ParseMarkup(text[after:]))
	return node
}
