package layout

import (
	"math"

	"github.com/san-kum/tradenet/internal/graph"
)

// coincident is the distance below which two nodes have no usable direction.
const coincident = 1e-9

func (e *Engine) accumulateForces() {
	pos := e.state.Positions
	f := e.forces
	for i := range f {
		f[i] = graph.Point{}
	}

	// Repulsion: k / d^2 with d floored at MinDistance. Pinned nodes push
	// free nodes but never move themselves.
	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			if e.pinned[i] && e.pinned[j] {
				continue
			}
			dx, dy := pos[i].X-pos[j].X, pos[i].Y-pos[j].Y
			d := math.Hypot(dx, dy)
			var ux, uy float64
			if d < coincident {
				ux, uy = e.separation(i, j)
			} else {
				ux, uy = dx/d, dy/d
			}
			d = math.Max(d, e.params.MinDistance)
			mag := e.params.Repulsion / (d * d)
			f[i].X += ux * mag
			f[i].Y += uy * mag
			f[j].X -= ux * mag
			f[j].Y -= uy * mag
		}
	}

	// Attraction: log(1+w) * d along the edge.
	for _, edge := range e.g.Edges {
		if edge.SelfLoop() {
			continue
		}
		s, t := edge.From, edge.To
		k := e.params.Attraction * math.Log1p(edge.Weight)
		dx, dy := pos[t].X-pos[s].X, pos[t].Y-pos[s].Y
		f[s].X += dx * k
		f[s].Y += dy * k
		f[t].X -= dx * k
		f[t].Y -= dy * k
	}

	// Centering toward the origin.
	for i := range f {
		f[i].X -= e.params.Centering * pos[i].X
		f[i].Y -= e.params.Centering * pos[i].Y
	}
}

// separation picks a deterministic unit direction for a coincident pair.
func (e *Engine) separation(i, j int) (float64, float64) {
	angle := math.Pi * (1 + e.noise.Eval2(float64(i)*0.37, float64(j)*0.37))
	return math.Cos(angle), math.Sin(angle)
}
