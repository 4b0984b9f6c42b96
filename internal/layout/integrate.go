package layout

import (
	"math"

	"github.com/san-kum/tradenet/internal/graph"
)

// integrate performs one explicit Euler step on the free nodes and returns
// the resulting kinetic energy. Velocities are damped, then capped so no
// node moves more than MaxDisplacement, then scaled down uniformly if the
// energy would exceed ceiling.
func integrate(pos, vel, force []graph.Point, pinned []bool, p Params, ceiling float64) float64 {
	dt := p.Timestep
	maxSpeed := p.MaxDisplacement / dt

	ke := 0.0
	for i := range vel {
		if pinned[i] {
			continue
		}
		v := &vel[i]
		v.X = (v.X + force[i].X*dt) * p.Damping
		v.Y = (v.Y + force[i].Y*dt) * p.Damping
		speed := math.Hypot(v.X, v.Y)
		if math.IsNaN(speed) || math.IsInf(speed, 0) {
			v.X, v.Y = 0, 0
		} else if speed > maxSpeed {
			s := maxSpeed / speed
			v.X *= s
			v.Y *= s
		}
		ke += v.X*v.X + v.Y*v.Y
	}

	if ke > ceiling {
		s := math.Sqrt(ceiling / ke)
		ke = 0
		for i := range vel {
			if pinned[i] {
				continue
			}
			vel[i].X *= s
			vel[i].Y *= s
			ke += vel[i].X*vel[i].X + vel[i].Y*vel[i].Y
		}
		// Rounding in the rescale may land a hair above the ceiling.
		ke = math.Min(ke, ceiling)
	}

	for i := range pos {
		if pinned[i] {
			continue
		}
		pos[i].X += vel[i].X * dt
		pos[i].Y += vel[i].Y * dt
	}
	return ke
}
