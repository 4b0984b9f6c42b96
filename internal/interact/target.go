package interact

import "github.com/san-kum/tradenet/internal/render"

type HoverKind int

const (
	HoverNone HoverKind = iota
	HoverNode
	HoverEdge
)

func (k HoverKind) String() string {
	switch k {
	case HoverNode:
		return "node"
	case HoverEdge:
		return "edge"
	}
	return "none"
}

// HoverTarget is the entity under the pointer. Index refers to Graph.Nodes
// for nodes and Graph.Edges for edges.
type HoverTarget struct {
	Kind   HoverKind
	Index  int
	ID     string
	Source string
	Target string
	Weight float64
}

func NoTarget() HoverTarget { return HoverTarget{Kind: HoverNone, Index: -1} }

func (h HoverTarget) None() bool { return h.Kind == HoverNone }

// Highlight converts the target for the render layer.
func (h HoverTarget) Highlight() render.Highlight {
	hl := render.NoHighlight()
	switch h.Kind {
	case HoverNode:
		hl.Node = h.Index
	case HoverEdge:
		hl.Edge = h.Index
	}
	return hl
}
