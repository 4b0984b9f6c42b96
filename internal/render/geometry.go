package render

import (
	"math"

	"github.com/san-kum/tradenet/internal/graph"
)

// Pixel is a position on the drawing surface.
type Pixel struct {
	X, Y float64
}

// EdgeGeometry is the shape of one edge in simulation space. Rendering and
// hit-testing share it so that what is drawn is what can be hovered.
type EdgeGeometry struct {
	Loop bool

	// Segment from source to target, offset sideways when the reverse edge
	// exists so the pair renders as two parallel lines.
	A, B graph.Point

	// Self-loop circle.
	Center graph.Point
	Radius float64
}

// Geometry returns the shape of g.Edges[i] for the given positions. ppu is the
// current pixels-per-unit and converts pixel sizes in st to simulation units.
func Geometry(g *graph.Graph, i int, pos []graph.Point, st Style, ppu float64) EdgeGeometry {
	e := g.Edges[i]
	if ppu <= 0 {
		ppu = 1
	}
	a, b := pos[e.From], pos[e.To]

	if e.SelfLoop() {
		r := st.loopRadius() / ppu
		return EdgeGeometry{
			Loop:   true,
			Center: graph.Point{X: a.X, Y: a.Y - st.NodeRadius/ppu},
			Radius: r,
		}
	}

	geo := EdgeGeometry{A: a, B: b}
	if !g.HasReverse(i) {
		return geo
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return geo
	}
	off := st.ParallelOffset / ppu
	nx, ny := -dy/l*off, dx/l*off
	geo.A = graph.Point{X: a.X + nx, Y: a.Y + ny}
	geo.B = graph.Point{X: b.X + nx, Y: b.Y + ny}
	return geo
}
