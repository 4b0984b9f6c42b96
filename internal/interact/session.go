package interact

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/san-kum/tradenet/internal/graph"
	"github.com/san-kum/tradenet/internal/layout"
	"github.com/san-kum/tradenet/internal/metrics"
	"github.com/san-kum/tradenet/internal/render"
)

// Epoch identifies one adopted graph. Zero is never a live epoch.
type Epoch uint64

// traceCapacity bounds the energy samples kept per graph.
const traceCapacity = 512

type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithStyle(st render.Style) Option {
	return func(s *Session) { s.style = st }
}

func WithHitParams(hp HitParams) Option {
	return func(s *Session) { s.hit = hp }
}

// Session is the interaction state of one display surface.
type Session struct {
	ID uuid.UUID

	logger *slog.Logger
	params layout.Params
	style  render.Style
	hit    HitParams

	epoch    Epoch
	graph    *graph.Graph
	warnings []graph.Warning
	engine   *layout.Engine
	trace    *metrics.EnergyTrace

	width, height float64
	transform     render.Transform
	hover         HoverTarget

	subs    map[*Subscription]struct{}
	scene   render.Scene
	dirty   bool
	renders int
	closed  bool
}

// NewSession starts a session showing an empty graph.
func NewSession(params layout.Params, opts ...Option) *Session {
	s := &Session{
		ID:        uuid.New(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		params:    params,
		style:     render.DefaultStyle(),
		hit:       DefaultHitParams(),
		transform: render.Identity(),
		hover:     NoTarget(),
		subs:      make(map[*Subscription]struct{}),
		trace:     metrics.NewEnergyTrace(traceCapacity),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.ID.String())
	s.Adopt(graph.Empty(), nil)
	return s
}

// Adopt replaces the displayed graph. The previous engine and its state are
// dropped whole, every pointer subscription is released and a new epoch
// begins. Adopting on a closed session does nothing and returns 0.
func (s *Session) Adopt(g *graph.Graph, warnings []graph.Warning) Epoch {
	if s.closed {
		return 0
	}
	if g == nil {
		g = graph.Empty()
	}
	s.releaseAll()

	s.epoch++
	s.graph = g
	s.warnings = warnings
	s.trace.Reset()
	s.engine = layout.New(g, s.params, layout.WithLogger(s.logger), layout.WithObserver(s.trace))
	s.hover = NoTarget()
	s.dirty = true

	s.logger.Info("graph adopted", "epoch", s.epoch, "nodes", g.Len(), "edges", len(g.Edges), "warnings", len(warnings))
	for _, w := range warnings {
		s.logger.Warn(w.Message, "kind", w.Kind.String(), "epoch", s.epoch)
	}
	return s.epoch
}

// Frame runs one animation frame: a layout step while the engine is still
// iterating, then a render if anything changed. Frames for a stale epoch or
// a closed session are dropped and report false.
func (s *Session) Frame(epoch Epoch) bool {
	if !s.current(epoch) {
		s.logger.Debug("stale frame dropped", "frame_epoch", epoch, "epoch", s.epoch)
		return false
	}
	if !s.engine.Converged() {
		s.engine.Step()
		s.dirty = true
	}
	s.render()
	return true
}

// Animating reports whether further frames would advance the layout.
func (s *Session) Animating() bool {
	return !s.closed && !s.engine.Converged()
}

// Scene returns the latest scene, rendering first if state changed.
func (s *Session) Scene() render.Scene {
	s.render()
	return s.scene
}

func (s *Session) render() {
	if !s.dirty || s.closed {
		return
	}
	pos := s.engine.Positions()
	s.scene = render.Draw(s.graph, pos, s.viewport(pos), s.style, s.hover.Highlight())
	s.dirty = false
	s.renders++
}

func (s *Session) viewport(pos []graph.Point) render.Viewport {
	return render.Fit(pos, s.width, s.height, s.style.Padding, s.transform)
}

// Resize sets the pixel size of the surface.
func (s *Session) Resize(width, height float64) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.dirty = true
}

func (s *Session) SetTransform(t render.Transform) {
	if t == s.transform {
		return
	}
	s.transform = t
	s.dirty = true
}

func (s *Session) Transform() render.Transform { return s.transform }

// SetStyle swaps the render style; the next scene uses it.
func (s *Session) SetStyle(st render.Style) {
	if st == s.style {
		return
	}
	s.style = st
	s.dirty = true
}

func (s *Session) Style() render.Style { return s.style }

// Recenter moves the layout back to the origin and lets the engine settle
// again.
func (s *Session) Recenter() {
	if s.closed {
		return
	}
	s.engine.Recenter()
	s.dirty = true
}

func (s *Session) Epoch() Epoch                { return s.epoch }
func (s *Session) Graph() *graph.Graph         { return s.graph }
func (s *Session) Warnings() []graph.Warning   { return s.warnings }
func (s *Session) Engine() *layout.Engine      { return s.engine }
func (s *Session) Trace() *metrics.EnergyTrace { return s.trace }
func (s *Session) Hover() HoverTarget          { return s.hover }
func (s *Session) Closed() bool                { return s.closed }

// Renders counts how many scenes were built.
func (s *Session) Renders() int { return s.renders }

// Tooltip returns the payload for the current hover target.
func (s *Session) Tooltip() (Tooltip, bool) {
	return TooltipFor(s.graph, s.hover)
}

// Close tears the session down. Later frames, pointer events and adoptions
// are ignored.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.releaseAll()
	s.closed = true
	s.logger.Debug("session closed", "epoch", s.epoch)
}

func (s *Session) current(epoch Epoch) bool {
	return !s.closed && epoch == s.epoch
}

func (s *Session) setHover(h HoverTarget) bool {
	if h == s.hover {
		return false
	}
	s.hover = h
	s.dirty = true
	return true
}

func (s *Session) releaseAll() {
	for sub := range s.subs {
		sub.released = true
		delete(s.subs, sub)
	}
	if !s.hover.None() {
		s.hover = NoTarget()
		s.dirty = true
	}
}
