package track

import (
	"image"
	"math/rand"
	"sync"
	"testing"

	"github.com/benoitkugler/plotdraw/drawobj"
	"github.com/benoitkugler/plotdraw/drawpath"
)

func checkLengths(t *testing.T, tr *Track2D) {
	t.Helper()
	raw, kinds := tr.Points()
	scaled := tr.Vertices()
	if len(raw) != len(scaled) || len(raw) != len(kinds) || len(raw) != tr.vertices.Len() {
		t.Fatalf("inconsistent lengths: %d %d %d %d", len(raw), len(kinds), len(scaled), tr.vertices.Len())
	}
}

func TestCapacity(t *testing.T) {
	tr := New()
	tr.SetCapacity(5)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		kind := Absolute
		if rng.Intn(2) == 0 {
			kind = Relative
		}
		tr.AddPoint(float64(i), rng.Float64(), kind)
		checkLengths(t, tr)
		if tr.Len() > 5 {
			t.Fatalf("capacity exceeded: %d", tr.Len())
		}
	}
	raw, _ := tr.Points()
	if raw[0].X != 45 || raw[4].X != 49 {
		t.Errorf("oldest points should be evicted first: %v", raw)
	}

	tr.SetCapacity(2)
	checkLengths(t, tr)
	if tr.Len() != 2 {
		t.Errorf("lowering the capacity should evict points, got %d", tr.Len())
	}
}

func TestAbsoluteScale(t *testing.T) {
	tr := New()
	tr.Rescale(2, -3)
	tr.Add(1.5, 4)
	if v := tr.Vertices()[0]; v != (drawpath.Point{X: 3, Y: -12}) {
		t.Errorf("unexpected vertex %v", v)
	}
}

func TestRelative(t *testing.T) {
	tr := New()
	tr.AddPoint(1, 2, Relative) // no predecessor: taken verbatim
	tr.Add(10, 10)
	tr.AddPoint(1, 2, Relative)
	exp := []drawpath.Point{{X: 1, Y: 2}, {X: 10, Y: 10}, {X: 11, Y: 12}}
	for i, v := range tr.Vertices() {
		if v != exp[i] {
			t.Errorf("vertex %d: expected %v, got %v", i, exp[i], v)
		}
	}
}

func TestRescale(t *testing.T) {
	tr := New()
	tr.Add(1, 1)
	tr.AddPoint(5, -1, Relative)
	tr.Add(2, 3)
	tr.AddPoint(1, 1, Relative)
	tr.AddPoint(1, 1, Relative)

	tr.Rescale(10, 100)
	raw, kinds := tr.Points()
	scaled := tr.Vertices()
	for i := range raw {
		var exp drawpath.Point
		if kinds[i] == Absolute {
			exp = drawpath.Point{X: 10 * raw[i].X, Y: 100 * raw[i].Y}
		} else {
			exp = scaled[i-1].Add(raw[i])
		}
		if scaled[i] != exp {
			t.Errorf("vertex %d: expected %v, got %v", i, exp, scaled[i])
		}
	}
	if scaled[4] != (drawpath.Point{X: 22, Y: 302}) {
		t.Errorf("unexpected last vertex %v", scaled[4])
	}
	if sx, sy := tr.Scale(); sx != 10 || sy != 100 {
		t.Errorf("unexpected scale %f %f", sx, sy)
	}

	// vertex nodes follow the rescale
	last := tr.vertices.Children()[4].Op().(drawobj.Vertex)
	if last.X != 22 || last.Y != 302 {
		t.Errorf("vertex node not updated: %v", last)
	}
}

func TestRescaleAfterEviction(t *testing.T) {
	tr := New()
	tr.SetCapacity(2)
	tr.Add(1, 1)
	tr.AddPoint(1, 0, Relative)
	tr.AddPoint(1, 0, Relative) // evicts (1, 1)

	check := func(exp ...drawpath.Point) {
		t.Helper()
		got := tr.Vertices()
		if len(got) != len(exp) {
			t.Fatalf("expected %v, got %v", exp, got)
		}
		for i := range exp {
			if got[i] != exp[i] {
				t.Errorf("vertex %d: expected %v, got %v", i, exp[i], got[i])
			}
		}
	}
	check(drawpath.Point{X: 2, Y: 1}, drawpath.Point{X: 3, Y: 1})

	// same scales: the curve does not move
	tr.Rescale(1, 1)
	check(drawpath.Point{X: 2, Y: 1}, drawpath.Point{X: 3, Y: 1})

	// the evicted absolute point is rescaled
	tr.Rescale(10, 10)
	check(drawpath.Point{X: 11, Y: 10}, drawpath.Point{X: 12, Y: 10})

	// an evicted relative point keeps its position
	tr.AddPoint(1, 0, Relative)
	tr.Rescale(10, 10)
	check(drawpath.Point{X: 12, Y: 10}, drawpath.Point{X: 13, Y: 10})

	tr.Clear()
	tr.AddPoint(3, 4, Relative)
	tr.Rescale(2, 2)
	check(drawpath.Point{X: 3, Y: 4})
}

func TestClear(t *testing.T) {
	tr := New()
	tr.SetFillMode(true)
	tr.Add(1, 1)
	tr.Add(2, 2)
	tr.Clear()
	checkLengths(t, tr)
	if tr.Len() != 0 || len(tr.FillBaseline()) != 0 {
		t.Error("Clear should remove every point")
	}

	tr.AddPoint(3, 4, Relative)
	if v := tr.Vertices()[0]; v != (drawpath.Point{X: 3, Y: 4}) {
		t.Errorf("cleared track should behave as a fresh one, got %v", v)
	}
	if !tr.fillMode {
		t.Error("Clear should preserve the fill mode")
	}
}

func TestFillBaseline(t *testing.T) {
	tr := New()
	tr.Translate(0, 50)
	tr.Add(1, 1)
	if len(tr.FillBaseline()) != 0 {
		t.Error("no baseline without fill mode")
	}
	tr.SetFillMode(true)
	tr.Add(4, 2)
	tr.Add(9, 3)
	exp := []drawpath.Point{{X: 9, Y: 50}, {X: 1, Y: 50}}
	got := tr.FillBaseline()
	if len(got) != 2 || got[0] != exp[0] || got[1] != exp[1] {
		t.Errorf("expected %v, got %v", exp, got)
	}
	if _, ok := tr.terminator.Op().(drawobj.FillPath); !ok {
		t.Error("terminator should fill")
	}
	tr.SetFillMode(false)
	if len(tr.FillBaseline()) != 0 {
		t.Error("baseline should be removed")
	}
}

type pathRecorder struct {
	mu             sync.Mutex
	strokes, fills []string
}

func (r *pathRecorder) Stroke(p *drawpath.Path, _ *drawobj.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strokes = append(r.strokes, p.String())
}

func (r *pathRecorder) Fill(p *drawpath.Path, _ *drawobj.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fills = append(r.fills, p.String())
}

func (r *pathRecorder) Text(string, float64, float64, *drawobj.State)      {}
func (r *pathRecorder) Image(image.Image, float64, float64, *drawobj.State) {}
func (r *pathRecorder) TextWidth(string, drawobj.Font) float64             { return 0 }

func TestRender(t *testing.T) {
	tr := New()
	tr.Add(0, 0)
	tr.Add(1, 2)
	tr.Add(2, 1)

	r := new(pathRecorder)
	tr.Node().Render(r, drawobj.DefaultState(), nil, false)
	if len(r.strokes) != 1 || r.strokes[0] != "M0.000,0.000 L1.000,2.000 L2.000,1.000" {
		t.Errorf("unexpected strokes %v", r.strokes)
	}

	tr.SetFillMode(true)
	r = new(pathRecorder)
	tr.Node().Render(r, drawobj.DefaultState(), nil, false)
	if len(r.fills) != 1 || r.fills[0] != "M0.000,0.000 L1.000,2.000 L2.000,1.000 L2.000,0.000 L0.000,0.000" {
		t.Errorf("unexpected fills %v", r.fills)
	}

	tr.SetDrawing(false)
	tr.Add(3, 3)
	r = new(pathRecorder)
	tr.Node().Render(r, drawobj.DefaultState(), nil, false)
	if len(r.fills)+len(r.strokes) != 0 {
		t.Error("hidden track should not draw")
	}
	if tr.Len() != 4 {
		t.Error("hidden track should accept points")
	}

	tr.SetDrawing(true)
	tr.SetFillMode(false)
	if b, ok := tr.Bounds(); !ok || b != (drawpath.Rect{X: 0, Y: 0, W: 3, H: 3}) {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestConcurrentIngestion(t *testing.T) {
	tr := New()
	tr.SetCapacity(20)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			tr.Add(float64(i), float64(i%7))
			if i%100 == 0 {
				tr.Rescale(1+float64(i)/100, 1)
			}
		}
	}()
	go func() {
		defer wg.Done()
		r := new(pathRecorder)
		for i := 0; i < 100; i++ {
			tr.Node().Render(r, drawobj.DefaultState(), nil, i%2 == 0)
		}
	}()
	wg.Wait()
	checkLengths(t, tr)
	if tr.Len() != 20 {
		t.Errorf("unexpected length %d", tr.Len())
	}
}
