package graph

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/graph/simple"
)

// Option adjusts a build.
type Option func(*buildOptions)

type buildOptions struct {
	fixed    map[string]Point
	pinHints bool
}

// WithFixed pins the given nodes at the given positions. A fixed position
// overrides any layout hint for the same id.
func WithFixed(fixed map[string]Point) Option {
	return func(o *buildOptions) {
		o.fixed = fixed
	}
}

// WithPinnedHints treats every valid layout hint as a fixed position.
func WithPinnedHints(pin bool) Option {
	return func(o *buildOptions) {
		o.pinHints = pin
	}
}

// Build validates and normalizes a raw network. Node order is the first-seen
// order of nodes; edge order follows edges with dropped and merged entries
// removed. Hints for ids that are not nodes are ignored.
func Build(nodes []string, edges []RawEdge, hints map[string]Point, opts ...Option) (*Graph, []Warning) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	g := &Graph{
		Nodes:    make([]Node, 0, len(nodes)),
		Edges:    make([]Edge, 0, len(edges)),
		index:    make(map[string]int, len(nodes)),
		pairs:    make(map[[2]int]int, len(edges)),
		directed: simple.NewWeightedDirectedGraph(0, 0),
	}
	var warnings []Warning

	for _, id := range nodes {
		if id == "" {
			warnings = append(warnings, warnf(WarnEmptyID, "node with empty id ignored"))
			continue
		}
		if _, dup := g.index[id]; dup {
			warnings = append(warnings, warnf(WarnDuplicateNode, "duplicate node %s ignored", id))
			continue
		}
		n := Node{ID: id}
		if p, ok := o.fixed[id]; ok {
			if p.IsFinite() {
				n.Hint, n.Fixed = &Point{X: p.X, Y: p.Y}, true
			} else {
				warnings = append(warnings, warnf(WarnInvalidHint, "fixed position for %s is not finite; ignored", id))
			}
		}
		if p, ok := hints[id]; ok && !n.Fixed {
			if p.IsFinite() {
				n.Hint, n.Fixed = &Point{X: p.X, Y: p.Y}, o.pinHints
			} else {
				warnings = append(warnings, warnf(WarnInvalidHint, "layout hint for %s is not finite; ignored", id))
			}
		}
		g.index[id] = len(g.Nodes)
		g.directed.AddNode(simple.Node(int64(len(g.Nodes))))
		g.Nodes = append(g.Nodes, n)
	}

	for _, raw := range edges {
		from, okFrom := g.index[raw.From]
		to, okTo := g.index[raw.To]
		if !okFrom || !okTo {
			warnings = append(warnings, warnf(WarnUnknownNode, "edge %s->%s references unknown node", raw.From, raw.To))
			continue
		}
		w := raw.Weight
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			warnings = append(warnings, warnf(WarnInvalidWeight, "edge %s->%s has invalid weight %s; clamped to 0",
				raw.From, raw.To, strconv.FormatFloat(w, 'g', -1, 64)))
			w = 0
		}
		key := [2]int{from, to}
		if i, dup := g.pairs[key]; dup {
			warnings = append(warnings, warnf(WarnDuplicateEdge, "edge %s->%s duplicated; weights summed", raw.From, raw.To))
			sum := g.Edges[i].Weight + w
			if math.IsInf(sum, 1) {
				warnings = append(warnings, warnf(WarnInvalidWeight, "edge %s->%s summed weight overflows; clamped to %s",
					raw.From, raw.To, strconv.FormatFloat(math.MaxFloat64, 'g', -1, 64)))
				sum = math.MaxFloat64
			}
			g.Edges[i].Weight = sum
			continue
		}
		g.pairs[key] = len(g.Edges)
		g.Edges = append(g.Edges, Edge{Source: raw.From, Target: raw.To, Weight: w, From: from, To: to})
	}

	for _, e := range g.Edges {
		if e.SelfLoop() {
			continue
		}
		g.directed.SetWeightedEdge(g.directed.NewWeightedEdge(simple.Node(int64(e.From)), simple.Node(int64(e.To)), e.Weight))
	}

	return g, warnings
}
