package interact

import (
	"math"

	"github.com/san-kum/tradenet/internal/graph"
	"github.com/san-kum/tradenet/internal/render"
)

// HitParams are pointer tolerances in pixels.
type HitParams struct {
	// NodeSlack widens the hover disk of a node beyond its drawn radius.
	NodeSlack float64
	// EdgeThreshold is the largest perpendicular distance to an edge.
	EdgeThreshold float64
}

func DefaultHitParams() HitParams {
	return HitParams{NodeSlack: 3, EdgeThreshold: 4}
}

// HitTest resolves the pointer at px to a node or edge. A pointer inside a
// node's drawn disk always hits that node. Otherwise the nearest node within
// the slack radius and the nearest edge within the threshold compete and
// the nearer one wins; ties go to the node.
func HitTest(g *graph.Graph, pos []graph.Point, vp render.Viewport, st render.Style, hp HitParams, px render.Pixel) HoverTarget {
	if g == nil || g.Len() == 0 || len(pos) < g.Len() {
		return NoTarget()
	}
	ppu := vp.PixelsPerUnit()
	p := vp.Unproject(px)

	node, nodeDist := -1, math.Inf(1)
	for i, q := range pos[:g.Len()] {
		if d := math.Hypot(p.X-q.X, p.Y-q.Y); d < nodeDist {
			node, nodeDist = i, d
		}
	}
	drawn := st.NodeRadius / ppu
	if node >= 0 && nodeDist <= drawn {
		return nodeTarget(g, node)
	}
	if nodeDist > (st.NodeRadius+hp.NodeSlack)/ppu {
		node = -1
	}

	edge, edgeDist := -1, math.Inf(1)
	for i := range g.Edges {
		geo := render.Geometry(g, i, pos, st, ppu)
		var d float64
		if geo.Loop {
			d = math.Abs(math.Hypot(p.X-geo.Center.X, p.Y-geo.Center.Y) - geo.Radius)
		} else {
			d = SegmentDistance(p, geo.A, geo.B)
		}
		if d < edgeDist {
			edge, edgeDist = i, d
		}
	}
	if edgeDist > hp.EdgeThreshold/ppu {
		edge = -1
	}

	switch {
	case node >= 0 && (edge < 0 || nodeDist <= edgeDist):
		return nodeTarget(g, node)
	case edge >= 0:
		e := g.Edges[edge]
		return HoverTarget{Kind: HoverEdge, Index: edge, Source: e.Source, Target: e.Target, Weight: e.Weight}
	}
	return NoTarget()
}

func nodeTarget(g *graph.Graph, i int) HoverTarget {
	return HoverTarget{Kind: HoverNode, Index: i, ID: g.Nodes[i].ID}
}

// SegmentDistance is the distance from p to the segment ab.
func SegmentDistance(p, a, b graph.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}
