// Package layout computes 2-D positions for a trading network with a
// force-directed model that advances one tick per animation frame.
//
// An [Engine] moves through three phases:
//
//	Seeding -> Iterating -> Converged
//
// Seeding runs once in [New]: fixed nodes are pinned at their positions,
// hinted nodes start at their hint and the rest are spread on a circle of
// radius RadiusScale*sqrt(n) in insertion order. Each [Engine.Step] applies
// repulsion, weight-scaled spring attraction, centering and damping, then
// integrates explicitly with a capped displacement.
//
// Kinetic energy never increases from one tick to the next while iterating,
// and the engine converges after at most MaxTicks ticks.
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. They are meant to be owned by a
// single frame loop.
package layout
