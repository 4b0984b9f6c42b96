package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/tradenet/internal/graph"
	"pgregory.net/rapid"
)

func TestStrokeWidthMonotone(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := StrokeMapping{
			Base:  rapid.Float64Range(0, 5).Draw(t, "base"),
			Scale: rapid.Float64Range(0, 5).Draw(t, "scale"),
			Max:   rapid.Float64Range(1, 20).Draw(t, "max"),
		}
		a := rapid.Float64Range(0, 1e6).Draw(t, "a")
		b := rapid.Float64Range(0, 1e6).Draw(t, "b")
		if a > b {
			a, b = b, a
		}
		if wa, wb := m.Width(a), m.Width(b); wa > wb {
			t.Fatalf("width(%g)=%g > width(%g)=%g", a, wa, b, wb)
		}
	})
}

func TestStrokeWidthBounds(t *testing.T) {
	m := DefaultStroke()
	tests := []struct {
		weight float64
		want   float64
	}{
		{0, m.Base},
		{-3, m.Base},
		{math.NaN(), m.Base},
		{math.Inf(1), m.Max},
		{1e12, m.Max},
	}
	for _, tt := range tests {
		if got := m.Width(tt.weight); got != tt.want {
			t.Errorf("width(%g): expected %g, got %g", tt.weight, tt.want, got)
		}
	}
}

func TestProjectRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		vp := Viewport{
			Width:  rapid.Float64Range(10, 2000).Draw(t, "w"),
			Height: rapid.Float64Range(10, 2000).Draw(t, "h"),
			Scale:  rapid.Float64Range(0.1, 100).Draw(t, "scale"),
			Center: graph.Point{X: rapid.Float64Range(-10, 10).Draw(t, "cx"), Y: rapid.Float64Range(-10, 10).Draw(t, "cy")},
			Transform: Transform{
				Zoom: rapid.Float64Range(MinZoom, MaxZoom).Draw(t, "zoom"),
				PanX: rapid.Float64Range(-500, 500).Draw(t, "px"),
				PanY: rapid.Float64Range(-500, 500).Draw(t, "py"),
			},
		}
		p := graph.Point{X: rapid.Float64Range(-50, 50).Draw(t, "x"), Y: rapid.Float64Range(-50, 50).Draw(t, "y")}
		q := vp.Unproject(vp.Project(p))
		if math.Abs(p.X-q.X) > 1e-6 || math.Abs(p.Y-q.Y) > 1e-6 {
			t.Fatalf("round trip moved %+v to %+v", p, q)
		}
	})
}

func TestFit(t *testing.T) {
	pos := []graph.Point{{-1, -1}, {1, 1}, {3, -1}}
	vp := Fit(pos, 220, 120, 10, Identity())

	if vp.Center != (graph.Point{X: 1, Y: 0}) {
		t.Errorf("expected center (1, 0), got %+v", vp.Center)
	}
	// spans 4x2 into 200x100
	if vp.Scale != 50 {
		t.Errorf("expected scale 50, got %f", vp.Scale)
	}
	for _, p := range pos {
		px := vp.Project(p)
		if px.X < 10-1e-9 || px.X > 210+1e-9 || px.Y < 10-1e-9 || px.Y > 110+1e-9 {
			t.Errorf("point %+v projected outside padding: %+v", p, px)
		}
	}
}

func TestFitDegenerate(t *testing.T) {
	vp := Fit([]graph.Point{{2, 3}}, 100, 80, 10, Identity())
	if vp.Scale != 20 {
		t.Errorf("expected quarter of shorter side, got %f", vp.Scale)
	}
	if px := vp.Project(graph.Point{X: 2, Y: 3}); px != (Pixel{50, 40}) {
		t.Errorf("single node should sit at the center, got %+v", px)
	}

	if empty := Fit(nil, 100, 80, 10, Identity()); empty.Scale != 1 {
		t.Errorf("expected unit scale for no positions, got %f", empty.Scale)
	}
}

func TestZoomClamp(t *testing.T) {
	tr := Identity().ZoomBy(1000)
	if tr.Zoom != MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", MaxZoom, tr.Zoom)
	}
	tr = Identity().ZoomBy(0)
	if tr.Zoom != MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", MinZoom, tr.Zoom)
	}
}

func scenario(t *testing.T) (*graph.Graph, []graph.Point) {
	t.Helper()
	g, _ := graph.Build(
		[]string{"A", "B", "C"},
		[]graph.RawEdge{{"A", "B", 5}, {"B", "A", 1}, {"B", "C", 0}, {"C", "C", 2}},
		nil,
	)
	return g, []graph.Point{{0, 0}, {4, 0}, {4, 3}}
}

func TestDrawEmpty(t *testing.T) {
	s := Draw(graph.Empty(), nil, Viewport{Width: 100, Height: 100}, DefaultStyle(), NoHighlight())
	if !s.Empty() || len(s.Edges) != 0 {
		t.Errorf("expected empty scene, got %d nodes %d edges", len(s.Nodes), len(s.Edges))
	}
}

func TestDrawDoesNotMutatePositions(t *testing.T) {
	g, pos := scenario(t)
	before := append([]graph.Point(nil), pos...)
	Draw(g, pos, Fit(pos, 200, 200, 20, Identity()), DefaultStyle(), Highlight{Node: 1, Edge: 0})
	for i := range pos {
		if pos[i] != before[i] {
			t.Fatalf("position %d changed from %+v to %+v", i, before[i], pos[i])
		}
	}
}

func TestDrawEdges(t *testing.T) {
	g, pos := scenario(t)
	st := DefaultStyle()
	s := Draw(g, pos, Fit(pos, 200, 200, 20, Identity()), st, NoHighlight())

	if len(s.Edges) != 4 || len(s.Nodes) != 3 {
		t.Fatalf("expected 4 edges and 3 nodes, got %d and %d", len(s.Edges), len(s.Nodes))
	}
	ab, ba, bc, cc := s.Edges[0], s.Edges[1], s.Edges[2], s.Edges[3]

	if ab.Width <= ba.Width {
		t.Errorf("expected heavier edge wider: %f vs %f", ab.Width, ba.Width)
	}
	if bc.Width != st.Stroke.Base {
		t.Errorf("zero-weight edge should use the thinnest stroke, got %f", bc.Width)
	}
	if !ab.HasHead || !bc.HasHead {
		t.Error("straight edges should have arrowheads")
	}
	// A and B project onto y=40; the two directions sit on opposite sides.
	if (ab.From.Y-40)*(ba.From.Y-40) >= 0 {
		t.Errorf("expected parallel offsets on opposite sides, got %f and %f", ab.From.Y, ba.From.Y)
	}
	if !cc.Loop || cc.Radius <= 0 {
		t.Errorf("expected self-loop shape, got %+v", cc)
	}
	// The arrow tip of A->B points towards B.
	if ab.Head[0].X <= ab.From.X {
		t.Errorf("arrow tip %+v should be right of the tail %+v", ab.Head[0], ab.From)
	}
}

func TestDrawHighlight(t *testing.T) {
	g, pos := scenario(t)
	st := DefaultStyle()
	s := Draw(g, pos, Fit(pos, 200, 200, 20, Identity()), st, Highlight{Node: 2, Edge: 0})

	last := s.Edges[len(s.Edges)-1]
	if last.Index != 0 || !last.Highlight || last.Color != st.Palette.EdgeHighlight {
		t.Errorf("expected highlighted edge 0 drawn last, got %+v", last)
	}
	if !s.Nodes[2].Highlight || s.Nodes[2].Radius <= st.NodeRadius {
		t.Errorf("expected node C highlighted and enlarged, got %+v", s.Nodes[2])
	}
	if s.Nodes[0].Fill != st.Palette.Seller || s.Nodes[1].Fill != st.Palette.Buyer || s.Nodes[2].Fill != st.Palette.Balanced {
		t.Error("expected A colored as seller, B as buyer and C as balanced")
	}
}

func TestRasterize(t *testing.T) {
	g, pos := scenario(t)
	c := NewCanvas(40, 12)
	w, h := c.PixelSize()
	vp := Fit(pos, float64(w), float64(h), 6, Identity())
	Rasterize(c, Draw(g, pos, vp, BrailleStyle(), Highlight{Node: 0, Edge: -1}))

	out := c.String()
	if strings.Count(out, "\n") != 12 {
		t.Errorf("expected 12 rows, got %d", strings.Count(out, "\n"))
	}
	if !strings.Contains(out, "A") || !strings.Contains(out, "C") {
		t.Error("expected node labels in canvas output")
	}
	marked := false
	for _, row := range c.Marked {
		for _, m := range row {
			marked = marked || m
		}
	}
	if !marked {
		t.Error("expected highlighted node cells to be marked")
	}
}

func TestRasterizeSkipsOffscreenLabels(t *testing.T) {
	c := NewCanvas(20, 5)
	s := Scene{
		Width:  40,
		Height: 20,
		Labels: true,
		Nodes: []NodeShape{
			{ID: "X", Center: Pixel{X: 10, Y: -2}, Radius: 2},
			{ID: "Y", Center: Pixel{X: -1, Y: 10}, Radius: 2},
			{ID: "Z", Center: Pixel{X: 10, Y: 10}, Radius: 2},
		},
	}
	Rasterize(c, s)

	out := c.String()
	if strings.Contains(out, "X") || strings.Contains(out, "Y") {
		t.Errorf("expected no labels for off-canvas nodes, got\n%s", out)
	}
	if !strings.Contains(out, "Z") {
		t.Error("expected label for the visible node")
	}
}

func TestNegativeWeightDrawnThinnest(t *testing.T) {
	g, warnings := graph.Build([]string{"A", "B"}, []graph.RawEdge{{"A", "B", -4}}, nil)
	if len(warnings) != 1 || warnings[0].Kind != graph.WarnInvalidWeight {
		t.Fatalf("expected one invalid_weight warning, got %v", graph.Messages(warnings))
	}

	pos := []graph.Point{{0, 0}, {1, 0}}
	st := DefaultStyle()
	s := Draw(g, pos, Fit(pos, 200, 200, 20, Identity()), st, NoHighlight())
	if len(s.Edges) != 1 {
		t.Fatalf("expected 1 edge shape, got %d", len(s.Edges))
	}
	if e := s.Edges[0]; e.Width != st.Stroke.Base || e.Weight != 0 {
		t.Errorf("expected clamped edge at width %f, got width %f weight %f", st.Stroke.Base, e.Width, e.Weight)
	}
}

func TestWriteSVG(t *testing.T) {
	g, pos := scenario(t)
	var buf bytes.Buffer
	if err := WriteSVG(&buf, Draw(g, pos, Fit(pos, 300, 200, 20, Identity()), DefaultStyle(), NoHighlight())); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Error("expected an svg document")
	}
	if strings.Count(out, "<polygon") != 3 {
		t.Errorf("expected 3 arrowheads, got %d", strings.Count(out, "<polygon"))
	}
	if !strings.Contains(out, "A -&gt; B: 5") && !strings.Contains(out, "A -> B: 5") {
		t.Error("expected edge title")
	}
}

func TestWriteSVGEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, Draw(nil, nil, Viewport{Width: 50, Height: 50}, DefaultStyle(), NoHighlight())); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "no trades") {
		t.Error("expected placeholder text")
	}
}

func TestWritePNG(t *testing.T) {
	g, pos := scenario(t)
	var buf bytes.Buffer
	if err := WritePNG(&buf, Draw(g, pos, Fit(pos, 120, 80, 10, Identity()), DefaultStyle(), NoHighlight())); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("expected png signature")
	}
}

func TestWriteHTML(t *testing.T) {
	g, pos := scenario(t)
	var buf bytes.Buffer
	if err := WriteHTML(&buf, Draw(g, pos, Fit(pos, 400, 300, 20, Identity()), DefaultStyle(), NoHighlight()), "round 1"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "echarts") || !strings.Contains(out, "round 1") {
		t.Error("expected an echarts page with the title")
	}
}
