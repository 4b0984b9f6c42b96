package layout

import (
	"context"
	"io"
	"log/slog"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/san-kum/tradenet/internal/graph"
)

// Phase is the engine's position in its state machine.
type Phase int

const (
	Seeding Phase = iota
	Iterating
	Converged
)

func (p Phase) String() string {
	switch p {
	case Seeding:
		return "seeding"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	}
	return "unknown"
}

// Reason explains why an engine converged.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonEnergy
	ReasonBudget
	ReasonEmpty
	ReasonPinned
)

func (r Reason) String() string {
	switch r {
	case ReasonEnergy:
		return "energy below threshold"
	case ReasonBudget:
		return "tick budget exhausted"
	case ReasonEmpty:
		return "empty graph"
	case ReasonPinned:
		return "all nodes pinned"
	}
	return "none"
}

// noiseSeed keeps the separation of coincident nodes reproducible.
const noiseSeed = 0x7d3e

// Observer is notified after every tick.
type Observer interface {
	OnTick(tick int, kineticEnergy float64)
}

// Option configures an Engine.
type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

// SimulationState is the engine's exclusively owned working state.
type SimulationState struct {
	Positions     []graph.Point
	Velocities    []graph.Point
	KineticEnergy float64
	Tick          int
	Converged     bool
}

// Engine runs the force simulation for one graph.
type Engine struct {
	g         *graph.Graph
	params    Params
	state     SimulationState
	phase     Phase
	reason    Reason
	pinned    []bool
	free      int
	forces    []graph.Point
	ceiling   float64
	budget    int
	noise     opensimplex.Noise
	logger    *slog.Logger
	observers []Observer
}

// New adopts g and seeds initial positions. Invalid params fall back to
// DefaultParams.
func New(g *graph.Graph, params Params, opts ...Option) *Engine {
	if g == nil {
		g = graph.Empty()
	}
	e := &Engine{
		g:      g,
		params: params.orDefault(),
		noise:  opensimplex.New(noiseSeed),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.seed()
	return e
}

func (e *Engine) seed() {
	n := e.g.Len()
	e.phase = Seeding
	e.state = SimulationState{
		Positions:  make([]graph.Point, n),
		Velocities: make([]graph.Point, n),
	}
	e.pinned = make([]bool, n)
	e.forces = make([]graph.Point, n)

	radius := e.params.RadiusScale * math.Sqrt(float64(n))
	for i, node := range e.g.Nodes {
		switch {
		case node.Fixed && node.Hint != nil:
			e.state.Positions[i] = *node.Hint
			e.pinned[i] = true
		case node.Hint != nil:
			e.state.Positions[i] = *node.Hint
		default:
			angle := 2 * math.Pi * float64(i) / float64(n)
			e.state.Positions[i] = graph.Point{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
		}
		if !e.pinned[i] {
			e.free++
		}
	}

	e.logger.Debug("layout seeded", "nodes", n, "edges", len(e.g.Edges), "pinned", n-e.free)

	switch {
	case n == 0:
		e.converge(ReasonEmpty)
	case e.free == 0:
		e.converge(ReasonPinned)
	default:
		e.startIterating()
	}
}

func (e *Engine) startIterating() {
	e.phase = Iterating
	e.reason = ReasonNone
	e.state.Converged = false
	e.ceiling = math.Inf(1)
	e.budget = e.state.Tick + e.params.MaxTicks
}

func (e *Engine) converge(r Reason) {
	e.phase = Converged
	e.reason = r
	e.state.Converged = true
	e.logger.Debug("layout converged", "reason", r.String(), "tick", e.state.Tick, "energy", e.state.KineticEnergy)
}

// Step advances one tick and reports whether the engine has converged.
// Steps on a converged engine do nothing.
func (e *Engine) Step() bool {
	if e.phase != Iterating {
		return e.phase == Converged
	}

	e.accumulateForces()
	ke := integrate(e.state.Positions, e.state.Velocities, e.forces, e.pinned, e.params, e.ceiling)
	e.ceiling = ke
	e.state.KineticEnergy = ke
	e.state.Tick++

	for _, o := range e.observers {
		o.OnTick(e.state.Tick, ke)
	}

	switch {
	case ke < e.params.EnergyThreshold:
		e.converge(ReasonEnergy)
	case e.state.Tick >= e.budget:
		e.converge(ReasonBudget)
	}
	return e.phase == Converged
}

// Run steps until convergence or until ctx is done. It returns the number of
// ticks taken by this call.
func (e *Engine) Run(ctx context.Context) (int, error) {
	start := e.state.Tick
	for !e.Converged() {
		select {
		case <-ctx.Done():
			return e.state.Tick - start, ctx.Err()
		default:
		}
		e.Step()
	}
	return e.state.Tick - start, nil
}

// Recenter translates the free nodes so their centroid sits at the origin
// and resumes iterating with a fresh tick budget. Graphs with pinned nodes
// keep their frame of reference, so only the resume happens.
func (e *Engine) Recenter() {
	if e.free == 0 {
		return
	}
	if e.free == e.g.Len() {
		var cx, cy float64
		for _, p := range e.state.Positions {
			cx += p.X
			cy += p.Y
		}
		cx /= float64(e.free)
		cy /= float64(e.free)
		for i := range e.state.Positions {
			e.state.Positions[i].X -= cx
			e.state.Positions[i].Y -= cy
		}
	}
	for i := range e.state.Velocities {
		e.state.Velocities[i] = graph.Point{}
	}
	e.state.KineticEnergy = 0
	e.startIterating()
	e.logger.Debug("layout recentered", "tick", e.state.Tick)
}

// Positions returns a copy of the current positions indexed like Graph.Nodes.
func (e *Engine) Positions() []graph.Point {
	out := make([]graph.Point, len(e.state.Positions))
	copy(out, e.state.Positions)
	return out
}

// State returns a copy of the working state.
func (e *Engine) State() SimulationState {
	s := e.state
	s.Positions = e.Positions()
	s.Velocities = append([]graph.Point(nil), e.state.Velocities...)
	return s
}

func (e *Engine) Graph() *graph.Graph    { return e.g }
func (e *Engine) Params() Params         { return e.params }
func (e *Engine) Phase() Phase           { return e.phase }
func (e *Engine) Reason() Reason         { return e.reason }
func (e *Engine) Converged() bool        { return e.phase == Converged }
func (e *Engine) Tick() int              { return e.state.Tick }
func (e *Engine) KineticEnergy() float64 { return e.state.KineticEnergy }
func (e *Engine) Pinned(i int) bool      { return e.pinned[i] }
