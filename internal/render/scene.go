package render

import (
	"image/color"
	"math"

	"github.com/san-kum/tradenet/internal/graph"
)

// Highlight marks the hovered node or edge. -1 means none.
type Highlight struct {
	Node int
	Edge int
}

func NoHighlight() Highlight { return Highlight{Node: -1, Edge: -1} }

type NodeShape struct {
	Index     int
	ID        string
	Center    Pixel
	Radius    float64
	Fill      color.RGBA
	Stroke    color.RGBA
	Highlight bool
	Sold      float64
	Bought    float64
}

type EdgeShape struct {
	Index     int
	Source    string
	Target    string
	Weight    float64
	Width     float64
	Color     color.RGBA
	Highlight bool

	// Straight edges run From -> To and carry an arrowhead at To when
	// HasHead is set. Head[0] is the tip.
	From, To Pixel
	HasHead  bool
	Head     [3]Pixel

	Loop   bool
	Center Pixel
	Radius float64
}

// Scene is a backend-neutral display list in pixel space. Edges are listed
// before nodes; a highlighted edge comes last among edges.
type Scene struct {
	Width, Height float64
	Background    color.RGBA
	Labels        bool
	LabelColor    color.RGBA
	Edges         []EdgeShape
	Nodes         []NodeShape
}

func (s Scene) Empty() bool { return len(s.Nodes) == 0 }

// Draw builds the scene for g at pos. It reads pos and never retains it.
func Draw(g *graph.Graph, pos []graph.Point, vp Viewport, st Style, hl Highlight) Scene {
	s := Scene{
		Width:      vp.Width,
		Height:     vp.Height,
		Background: st.Palette.Background,
		Labels:     st.Labels,
		LabelColor: st.Palette.Label,
	}
	if g == nil || g.Len() == 0 || len(pos) < g.Len() {
		return s
	}

	ppu := vp.PixelsPerUnit()
	s.Edges = make([]EdgeShape, 0, len(g.Edges))
	var top *EdgeShape
	for i := range g.Edges {
		shape := edgeShape(g, i, pos, vp, st, ppu)
		if i == hl.Edge {
			shape.Highlight = true
			shape.Color = st.Palette.EdgeHighlight
			shape.Width += 1.5
			top = &shape
			continue
		}
		s.Edges = append(s.Edges, shape)
	}
	if top != nil {
		s.Edges = append(s.Edges, *top)
	}

	s.Nodes = make([]NodeShape, g.Len())
	for i, n := range g.Nodes {
		sold, bought := g.Sold(i), g.Bought(i)
		shape := NodeShape{
			Index:  i,
			ID:     n.ID,
			Center: vp.Project(pos[i]),
			Radius: st.NodeRadius,
			Fill:   nodeFill(st.Palette, sold, bought),
			Stroke: st.Palette.NodeStroke,
			Sold:   sold,
			Bought: bought,
		}
		if i == hl.Node {
			shape.Highlight = true
			shape.Radius += 2
			shape.Stroke = st.Palette.NodeHighlight
		}
		s.Nodes[i] = shape
	}
	return s
}

func nodeFill(p Palette, sold, bought float64) color.RGBA {
	switch {
	case sold > bought:
		return p.Seller
	case bought > sold:
		return p.Buyer
	}
	return p.Balanced
}

func edgeShape(g *graph.Graph, i int, pos []graph.Point, vp Viewport, st Style, ppu float64) EdgeShape {
	e := g.Edges[i]
	shape := EdgeShape{
		Index:  i,
		Source: e.Source,
		Target: e.Target,
		Weight: e.Weight,
		Width:  st.Stroke.Width(e.Weight),
		Color:  st.Palette.Edge,
	}

	geo := Geometry(g, i, pos, st, ppu)
	if geo.Loop {
		shape.Loop = true
		shape.Center = vp.Project(geo.Center)
		shape.Radius = geo.Radius * ppu
		return shape
	}

	a, b := vp.Project(geo.A), vp.Project(geo.B)
	shape.From, shape.To = a, b

	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l <= 2*st.NodeRadius {
		return shape
	}
	ux, uy := dx/l, dy/l
	tip := Pixel{X: b.X - ux*st.NodeRadius, Y: b.Y - uy*st.NodeRadius}
	size := st.ArrowSize + shape.Width
	base := Pixel{X: tip.X - ux*size, Y: tip.Y - uy*size}
	nx, ny := -uy*size/2, ux*size/2

	shape.From = Pixel{X: a.X + ux*st.NodeRadius, Y: a.Y + uy*st.NodeRadius}
	shape.To = base
	shape.HasHead = true
	shape.Head = [3]Pixel{
		tip,
		{X: base.X + nx, Y: base.Y + ny},
		{X: base.X - nx, Y: base.Y - ny},
	}
	return shape
}
