package main

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/plotdraw/drawobj"
	"github.com/benoitkugler/plotdraw/drawraster"
)

func TestReadTitle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "title.txt")
	// "café" in ISO-8859-1
	if err := os.WriteFile(path, []byte("<bold>caf\xe9</bold>\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	title, err := readTitle(path, "latin1")
	if err != nil {
		t.Fatal(err)
	}
	if title != "<bold>café</bold>" {
		t.Errorf("unexpected title %q", title)
	}

	if _, err := readTitle(path, "not-a-charset"); err == nil {
		t.Error("expected an error for an unknown charset")
	}
}

func TestSceneStreaming(t *testing.T) {
	cfg := &Config{Width: 200, Height: 120, Points: 80, Capacity: 30, Title: "<italic>test</italic>"}
	sc := newScene(cfg, cfg.Title)
	for i := 0; i < cfg.Points; i++ {
		sc.curve.Add(float64(i), 0.5)
		sc.follow()
	}
	if sc.curve.Len() != 30 {
		t.Fatalf("unexpected length %d", sc.curve.Len())
	}
	b, _ := sc.curve.Bounds()
	_, _, ok := sc.curve.Node().Translate()
	if !ok {
		t.Fatal("curve should be translated")
	}
	x, _, _ := sc.curve.Node().Translate()
	if x+b.X != margin {
		t.Errorf("oldest point should be on the left border, got %f", x+b.X)
	}

	rd := drawraster.New(cfg.Width, cfg.Height, color.White)
	sc.setTitle("<bold>new</bold> title")
	sc.root.Render(rd, drawobj.DefaultState(), nil, false)
	if sc.title.Len() != 1 {
		t.Errorf("title should be replaced, got %d children", sc.title.Len())
	}
}
